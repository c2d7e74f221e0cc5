package experiment

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/MarkTee/Psych403-FinalProject/placement"
)

var testRegion = placement.Region{Width: 600, Height: 600, Margin: 200}

func newTestSequencer(d *fakeDisplay, c Clock) *Sequencer {
	return &Sequencer{
		Display:       d,
		Clock:         c,
		Rng:           rand.New(rand.NewSource(1)),
		Region:        testRegion,
		MinSeparation: 18,
		FixationTime:  time.Second,
		StimulusTime:  time.Second,
	}
}

// TestCountForKey verifies the digit remap
func TestCountForKey(t *testing.T) {
	tests := []struct {
		key   rune
		count int
		ok    bool
	}{
		{'0', 10, true},
		{'1', 1, true},
		{'5', 5, true},
		{'9', 9, true},
		{'a', 0, false},
		{' ', 0, false},
		{'\n', 0, false},
	}

	for _, tt := range tests {
		count, ok := CountForKey(tt.key)
		if ok != tt.ok || count != tt.count {
			t.Errorf("CountForKey(%q) = (%d, %v), want (%d, %v)",
				tt.key, count, ok, tt.count, tt.ok)
		}
	}
}

func TestSequencerTrialRecord(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	display := &fakeDisplay{
		capKeys:   []rune{0}, // stimulus cap elapses without a key
		awaitKeys: []rune{'7'},
	}
	display.onAwait = func() { clock.Advance(400 * time.Millisecond) }

	rec, err := newTestSequencer(display, clock).Run(2, 4, 7)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if rec.Block != 2 || rec.Trial != 4 {
		t.Errorf("Expected block 2 trial 4, got block %d trial %d", rec.Block, rec.Trial)
	}
	if rec.Actual != 7 || rec.Guessed != 7 || !rec.Correct {
		t.Errorf("Expected correct guess of 7, got actual=%d guessed=%d correct=%v",
			rec.Actual, rec.Guessed, rec.Correct)
	}
	if rec.RT < 0.399 || rec.RT > 0.401 {
		t.Errorf("Expected RT 0.4s, got %v", rec.RT)
	}
	if len(display.circles) != 7 {
		t.Errorf("Expected 7 circles drawn, got %d", len(display.circles))
	}
	if display.drains != 1 {
		t.Errorf("Expected fixation-phase input drain, got %d drains", display.drains)
	}
}

// TestSequencerZeroMeansTen verifies the 0 key scores as ten before comparison
func TestSequencerZeroMeansTen(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	display := &fakeDisplay{
		capKeys:   []rune{0},
		awaitKeys: []rune{'0'},
	}

	rec, err := newTestSequencer(display, clock).Run(1, 0, 10)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rec.Guessed != 10 {
		t.Errorf("Expected guessed=10 for key '0', got %d", rec.Guessed)
	}
	if !rec.Correct {
		t.Error("Expected '0' answer to be correct for 10 circles")
	}
}

func TestSequencerIncorrectGuess(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	display := &fakeDisplay{
		capKeys:   []rune{0},
		awaitKeys: []rune{'3'},
	}

	rec, err := newTestSequencer(display, clock).Run(1, 0, 5)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rec.Correct {
		t.Error("Expected guess 3 for 5 circles to be incorrect")
	}
	if rec.Guessed != 3 || rec.Actual != 5 {
		t.Errorf("Expected guessed=3 actual=5, got guessed=%d actual=%d", rec.Guessed, rec.Actual)
	}
}

// TestSequencerBufferedDigit verifies a digit pressed during the stimulus is
// used as the answer without a blocking wait, with near-zero RT
func TestSequencerBufferedDigit(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	display := &fakeDisplay{
		capKeys: []rune{'4'}, // key during stimulus display
	}

	rec, err := newTestSequencer(display, clock).Run(1, 0, 4)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if display.awaitCalls != 0 {
		t.Errorf("Expected no blocking wait when a digit was buffered, got %d AwaitKey calls",
			display.awaitCalls)
	}
	if rec.Guessed != 4 || !rec.Correct {
		t.Errorf("Expected buffered '4' to score correct, got guessed=%d correct=%v",
			rec.Guessed, rec.Correct)
	}
	if rec.RT != 0 {
		t.Errorf("Expected zero RT for buffered answer, got %v", rec.RT)
	}
}

// TestSequencerBufferedNonDigit verifies a non-digit key that ended the
// stimulus early is discarded and the blocking wait is used instead
func TestSequencerBufferedNonDigit(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	display := &fakeDisplay{
		capKeys:   []rune{'x'},
		awaitKeys: []rune{'2'},
	}

	rec, err := newTestSequencer(display, clock).Run(1, 0, 2)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if display.awaitCalls != 1 {
		t.Errorf("Expected fallback to blocking wait, got %d AwaitKey calls", display.awaitCalls)
	}
	if rec.Guessed != 2 || !rec.Correct {
		t.Errorf("Expected guessed=2 correct, got guessed=%d correct=%v", rec.Guessed, rec.Correct)
	}
}

// TestSequencerRTNeverNegative drives the clock backwards across the prompt
// and verifies the clamp
func TestSequencerRTNeverNegative(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	display := &fakeDisplay{
		capKeys:   []rune{0},
		awaitKeys: []rune{'1'},
	}
	display.onAwait = func() { clock.Advance(-time.Second) }

	rec, err := newTestSequencer(display, clock).Run(1, 0, 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rec.RT < 0 {
		t.Errorf("RT must never be negative, got %v", rec.RT)
	}
}

func TestSequencerPlacementInfeasible(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	display := &fakeDisplay{}

	seq := newTestSequencer(display, clock)
	seq.Region = placement.Region{Width: 200, Height: 200, Margin: 20}
	seq.MinSeparation = 40

	_, err := seq.Run(1, 0, 50)
	if !errors.Is(err, placement.ErrInfeasible) {
		t.Errorf("Expected ErrInfeasible to surface, got %v", err)
	}
}

type countingFeedback struct{ tones int }

func (f *countingFeedback) ResponseTone() { f.tones++ }

func TestSequencerFeedbackTone(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	display := &fakeDisplay{
		capKeys:   []rune{0},
		awaitKeys: []rune{'1'},
	}
	feedback := &countingFeedback{}

	seq := newTestSequencer(display, clock)
	seq.Feedback = feedback
	if _, err := seq.Run(1, 0, 1); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if feedback.tones != 1 {
		t.Errorf("Expected one feedback tone, got %d", feedback.tones)
	}
}
