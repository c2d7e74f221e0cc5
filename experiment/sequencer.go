package experiment

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/MarkTee/Psych403-FinalProject/placement"
)

// promptText asks for the participant's count. The 0 key stands for ten.
const promptText = "How many circles did you count?\nEnter a number from 0-9 (0 means 10)."

// Trial phases, strictly linear: each trial passes through all four exactly
// once and yields one TrialRecord.
type phase int

const (
	phaseFixation phase = iota
	phaseStimulus
	phasePrompt
	phaseCaptured
)

// Sequencer runs single trials: fixation, stimulus display, response
// capture, timing. One Sequencer serves the whole session; it holds no
// per-trial state between Run calls.
type Sequencer struct {
	Display  Display
	Clock    Clock
	Rng      *rand.Rand
	Feedback Feedback
	Log      *slog.Logger

	Region        placement.Region
	MinSeparation float64
	FixationTime  time.Duration
	StimulusTime  time.Duration
}

// Run executes one trial showing count circles and returns its record.
// Placement failures and operator aborts are the only errors that escape;
// invalid response keys are recovered internally by falling back to a
// blocking wait on the digit keys.
func (s *Sequencer) Run(block, trial, count int) (TrialRecord, error) {
	var (
		rec         TrialRecord
		buffered    rune
		hasBuffered bool
		promptShown time.Time
		key         rune
	)

	for ph := phaseFixation; ; ph++ {
		switch ph {
		case phaseFixation:
			s.Display.Clear()
			s.Display.DrawFrame()
			s.Display.DrawFixation()
			if err := s.Display.Present(); err != nil {
				return rec, err
			}
			if err := s.Display.Wait(s.FixationTime); err != nil {
				return rec, err
			}
			// Keys pressed up to this point are noise, not answers
			s.Display.DrainInput()

		case phaseStimulus:
			positions, err := placement.Generate(s.Rng, count, s.Region, s.MinSeparation)
			if err != nil {
				return rec, fmt.Errorf("trial %d/%d: %w", block, trial, err)
			}
			s.Display.Clear()
			s.Display.DrawFrame()
			for _, p := range positions {
				s.Display.DrawCircle(p)
			}
			if err := s.Display.Present(); err != nil {
				return rec, err
			}
			// Any key ends the stimulus early; a digit here is already
			// the answer
			buffered, hasBuffered, err = s.Display.WaitCap(s.StimulusTime)
			if err != nil {
				return rec, err
			}

		case phasePrompt:
			s.Display.Clear()
			s.Display.DrawFrame()
			s.Display.DrawText(promptText)
			if err := s.Display.Present(); err != nil {
				return rec, err
			}
			promptShown = s.Clock.Now()

			if hasBuffered {
				if _, ok := CountForKey(buffered); ok {
					key = buffered
					break
				}
				// Buffered key was not a valid digit; discard it
			}
			var err error
			key, err = s.Display.AwaitKey(ResponseKeys)
			if err != nil {
				return rec, err
			}

		case phaseCaptured:
			rt := s.Clock.Now().Sub(promptShown).Seconds()
			if rt < 0 {
				rt = 0
			}
			guessed, _ := CountForKey(key)
			rec = TrialRecord{
				Block:   block,
				Trial:   trial,
				Actual:  count,
				Guessed: guessed,
				Correct: guessed == count,
				RT:      rt,
			}
			if s.Feedback != nil {
				s.Feedback.ResponseTone()
			}
			if s.Log != nil {
				s.Log.Debug("trial complete",
					"block", block, "trial", trial,
					"actual", count, "guessed", guessed,
					"correct", rec.Correct, "rt", rt)
			}
			return rec, nil
		}
	}
}
