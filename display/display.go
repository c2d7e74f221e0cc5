// Package display renders the experiment on a terminal via tcell and feeds
// key events back to the trial sequencer. It implements experiment.Display.
//
// Stimulus positions arrive in stimulus-space coordinates (origin at the
// region center, y up, units from the original 600x600 pixel window) and are
// mapped to cells with a 2:1 aspect correction so layouts keep their shape.
package display

import (
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/MarkTee/Psych403-FinalProject/experiment"
	"github.com/MarkTee/Psych403-FinalProject/placement"
)

const (
	circleRune   = '●'
	fixationRune = '+'

	eventQueueSize = 100
)

var defaultStyle = tcell.StyleDefault.
	Foreground(tcell.ColorWhite).
	Background(tcell.ColorBlack)

var _ experiment.Display = (*Terminal)(nil)

// Terminal is the tcell-backed display surface.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event

	region placement.Region

	width, height  int
	scaleX, scaleY float64 // cells per stimulus-space unit
}

// New initializes the terminal screen for the given stimulus region.
func New(region placement.Region) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen, region)
}

func newTerminal(screen tcell.Screen, region placement.Region) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(defaultStyle)
	screen.HideCursor()

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, eventQueueSize),
		region: region,
	}
	t.resize()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			t.events <- ev
		}
	}()

	return t, nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// resize recomputes the stimulus-space transform for the current screen
// size. Terminal cells are roughly twice as tall as wide, so the horizontal
// scale doubles the vertical one to keep circles visually round.
func (t *Terminal) resize() {
	t.width, t.height = t.screen.Size()

	scaleY := float64(t.height-2) / t.region.Height
	if limit := float64(t.width-2) / (2 * t.region.Width); limit < scaleY {
		scaleY = limit
	}
	t.scaleY = scaleY
	t.scaleX = 2 * scaleY
}

// cellFor maps a stimulus-space position to screen cell coordinates.
func (t *Terminal) cellFor(p placement.Position) (int, int) {
	x := t.width/2 + int(math.Round(p.X*t.scaleX))
	y := t.height/2 - int(math.Round(p.Y*t.scaleY))
	return x, y
}

func (t *Terminal) Clear() {
	t.screen.Clear()
}

// DrawText centers a multi-line text block on the screen.
func (t *Terminal) DrawText(text string) {
	lines := strings.Split(text, "\n")
	top := t.height/2 - len(lines)/2
	for i, line := range lines {
		y := top + i
		x := t.width/2 - len(line)/2
		for j, r := range line {
			t.screen.SetContent(x+j, y, r, nil, defaultStyle)
		}
	}
}

func (t *Terminal) DrawFixation() {
	t.screen.SetContent(t.width/2, t.height/2, fixationRune, nil, defaultStyle)
}

func (t *Terminal) DrawCircle(p placement.Position) {
	x, y := t.cellFor(p)
	t.screen.SetContent(x, y, circleRune, nil, defaultStyle)
}

// DrawFrame draws the bounding frame around the stimulus region, sized as in
// the original experiment: region extent minus the margin.
func (t *Terminal) DrawFrame() {
	halfW := (t.region.Width - t.region.Margin) / 2
	halfH := (t.region.Height - t.region.Margin) / 2
	left, top := t.cellFor(placement.Position{X: -halfW, Y: halfH})
	right, bottom := t.cellFor(placement.Position{X: halfW, Y: -halfH})

	for x := left + 1; x < right; x++ {
		t.screen.SetContent(x, top, '─', nil, defaultStyle)
		t.screen.SetContent(x, bottom, '─', nil, defaultStyle)
	}
	for y := top + 1; y < bottom; y++ {
		t.screen.SetContent(left, y, '│', nil, defaultStyle)
		t.screen.SetContent(right, y, '│', nil, defaultStyle)
	}
	t.screen.SetContent(left, top, '┌', nil, defaultStyle)
	t.screen.SetContent(right, top, '┐', nil, defaultStyle)
	t.screen.SetContent(left, bottom, '└', nil, defaultStyle)
	t.screen.SetContent(right, bottom, '┘', nil, defaultStyle)
}

func (t *Terminal) Present() error {
	t.screen.Show()
	return nil
}

// abortKey reports whether the operator requested an abort.
func (t *Terminal) abortKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

// Wait pauses for d, discarding key presses.
func (t *Terminal) Wait(d time.Duration) error {
	_, _, err := t.wait(d, false)
	return err
}

// WaitCap pauses for at most d, ending early on any key press.
func (t *Terminal) WaitCap(d time.Duration) (rune, bool, error) {
	return t.wait(d, true)
}

func (t *Terminal) wait(d time.Duration, keyEnds bool) (rune, bool, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			return 0, false, nil
		case ev := <-t.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if t.abortKey(ev) {
					return 0, false, experiment.ErrAborted
				}
				if keyEnds {
					return ev.Rune(), true, nil
				}
			case *tcell.EventResize:
				t.resize()
				t.screen.Sync()
			}
		}
	}
}

// AwaitKey blocks until a key in allowed is pressed. An empty allow-list
// accepts any key.
func (t *Terminal) AwaitKey(allowed string) (rune, error) {
	for ev := range t.events {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if t.abortKey(ev) {
				return 0, experiment.ErrAborted
			}
			r := ev.Rune()
			if allowed == "" || strings.ContainsRune(allowed, r) {
				return r, nil
			}
		case *tcell.EventResize:
			t.resize()
			t.screen.Sync()
		}
	}
	return 0, experiment.ErrAborted
}

// DrainInput discards pending key presses without blocking.
func (t *Terminal) DrainInput() {
	for {
		select {
		case ev := <-t.events:
			if _, ok := ev.(*tcell.EventResize); ok {
				t.resize()
				t.screen.Sync()
			}
		default:
			return
		}
	}
}
