package experiment

import (
	"strings"
	"time"

	"github.com/MarkTee/Psych403-FinalProject/placement"
)

// fakeDisplay is a scripted Display for tests. Keys for WaitCap and
// AwaitKey are consumed from queues; hooks let tests advance a ManualClock
// while a wait is "in progress".
type fakeDisplay struct {
	// capKeys feeds WaitCap: one entry per stimulus phase, 0 meaning the
	// cap elapsed with no key press.
	capKeys []rune

	// awaitKeys feeds AwaitKey.
	awaitKeys []rune

	// onAwait runs before each AwaitKey returns, e.g. to advance a clock.
	onAwait func()

	// recorded activity
	presented  int
	circles    []placement.Position
	texts      []string
	drains     int
	awaitCalls int
}

func (d *fakeDisplay) Clear()                          {}
func (d *fakeDisplay) DrawText(text string)            { d.texts = append(d.texts, text) }
func (d *fakeDisplay) DrawFixation()                   {}
func (d *fakeDisplay) DrawCircle(p placement.Position) { d.circles = append(d.circles, p) }
func (d *fakeDisplay) DrawFrame()                      {}

func (d *fakeDisplay) Present() error {
	d.presented++
	return nil
}

func (d *fakeDisplay) Wait(time.Duration) error { return nil }

func (d *fakeDisplay) WaitCap(time.Duration) (rune, bool, error) {
	if len(d.capKeys) == 0 {
		return 0, false, nil
	}
	key := d.capKeys[0]
	d.capKeys = d.capKeys[1:]
	if key == 0 {
		return 0, false, nil
	}
	return key, true, nil
}

func (d *fakeDisplay) AwaitKey(allowed string) (rune, error) {
	d.awaitCalls++
	if d.onAwait != nil {
		d.onAwait()
	}
	if allowed == "" {
		// Instructions / end screen: any key, script not consumed
		return ' ', nil
	}
	if len(d.awaitKeys) == 0 {
		panic("fakeDisplay: response key script exhausted")
	}
	key := d.awaitKeys[0]
	d.awaitKeys = d.awaitKeys[1:]
	if !strings.ContainsRune(allowed, key) {
		panic("fakeDisplay: scripted key not in allow-list")
	}
	return key, nil
}

func (d *fakeDisplay) DrainInput() { d.drains++ }
