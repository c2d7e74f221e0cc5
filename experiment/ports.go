// Package experiment contains the trial state machine and block/session
// controller for the subitizing task. Rendering, timing, and audio are
// reached only through the narrow ports defined here so the whole run can be
// driven deterministically in tests.
package experiment

import (
	"errors"
	"time"

	"github.com/MarkTee/Psych403-FinalProject/placement"
)

// ErrAborted is returned when the operator ends the run early (Esc/Ctrl-C
// during any wait). Partial results are discarded.
var ErrAborted = errors.New("experiment: aborted by operator")

// Display is the drawing and input surface for one participant. Draw calls
// build up a frame off-screen; nothing is visible until Present. All waits
// are cooperative suspension points and return ErrAborted if the operator
// quits.
type Display interface {
	// Clear empties the pending frame.
	Clear()

	// DrawText queues a centered multi-line text block.
	DrawText(text string)

	// DrawFixation queues the central fixation cross.
	DrawFixation()

	// DrawCircle queues one stimulus at a stimulus-space position.
	DrawCircle(p placement.Position)

	// DrawFrame queues the bounding frame around the stimulus region.
	DrawFrame()

	// Present makes the pending frame visible.
	Present() error

	// Wait pauses for d. Keys pressed during the pause are consumed and
	// discarded.
	Wait(d time.Duration) error

	// WaitCap pauses for at most d, ending early on any key press. It
	// returns the key that ended the pause, if any.
	WaitCap(d time.Duration) (rune, bool, error)

	// AwaitKey blocks until a key in allowed is pressed and returns it.
	// An empty allow-list accepts any key.
	AwaitKey(allowed string) (rune, error)

	// DrainInput discards any pending key presses.
	DrainInput()
}

// Feedback receives response events for optional audio feedback. A nil
// Feedback is silent.
type Feedback interface {
	// ResponseTone is called once per captured response.
	ResponseTone()
}
