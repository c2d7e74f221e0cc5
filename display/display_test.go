package display

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/MarkTee/Psych403-FinalProject/experiment"
	"github.com/MarkTee/Psych403-FinalProject/placement"
)

var testRegion = placement.Region{Width: 600, Height: 600, Margin: 200}

func newSimTerminal(t *testing.T, width, height int) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := newTerminal(screen, testRegion)
	if err != nil {
		t.Fatalf("newTerminal failed: %v", err)
	}
	screen.SetSize(width, height)
	term.resize()
	t.Cleanup(term.Close)
	return term
}

func TestCellForCenterAndAspect(t *testing.T) {
	term := newSimTerminal(t, 120, 40)

	cx, cy := term.cellFor(placement.Position{X: 0, Y: 0})
	if cx != term.width/2 || cy != term.height/2 {
		t.Errorf("Origin mapped to (%d, %d), want screen center (%d, %d)",
			cx, cy, term.width/2, term.height/2)
	}

	if term.scaleX != 2*term.scaleY {
		t.Errorf("Expected 2:1 aspect correction, got scaleX=%v scaleY=%v",
			term.scaleX, term.scaleY)
	}

	// Positive y is up on the stimulus plane but rows grow downward
	_, above := term.cellFor(placement.Position{X: 0, Y: 100})
	if above >= cy {
		t.Errorf("Position above center mapped to row %d, not above row %d", above, cy)
	}
}

func TestDrawCircleLandsOnScreen(t *testing.T) {
	term := newSimTerminal(t, 120, 40)

	term.Clear()
	term.DrawCircle(placement.Position{X: 82, Y: -82})
	if err := term.Present(); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	sim := term.screen.(tcell.SimulationScreen)
	cells, width, _ := sim.GetContents()
	x, y := term.cellFor(placement.Position{X: 82, Y: -82})
	if len(cells[y*width+x].Runes) == 0 || cells[y*width+x].Runes[0] != circleRune {
		t.Errorf("Expected circle rune at (%d, %d)", x, y)
	}
}

func TestWaitCapReturnsKey(t *testing.T) {
	term := newSimTerminal(t, 80, 24)
	sim := term.screen.(tcell.SimulationScreen)

	sim.InjectKey(tcell.KeyRune, '5', tcell.ModNone)
	key, pressed, err := term.WaitCap(2 * time.Second)
	if err != nil {
		t.Fatalf("WaitCap failed: %v", err)
	}
	if !pressed || key != '5' {
		t.Errorf("Expected early end on '5', got key=%q pressed=%v", key, pressed)
	}
}

func TestWaitDiscardsKeys(t *testing.T) {
	term := newSimTerminal(t, 80, 24)
	sim := term.screen.(tcell.SimulationScreen)

	sim.InjectKey(tcell.KeyRune, '5', tcell.ModNone)
	if err := term.Wait(50 * time.Millisecond); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	term.DrainInput()

	// The earlier '5' must not satisfy this wait
	sim.InjectKey(tcell.KeyRune, '7', tcell.ModNone)
	key, err := term.AwaitKey(experiment.ResponseKeys)
	if err != nil {
		t.Fatalf("AwaitKey failed: %v", err)
	}
	if key != '7' {
		t.Errorf("Expected '7', got %q", key)
	}
}

func TestAwaitKeyFiltersAllowList(t *testing.T) {
	term := newSimTerminal(t, 80, 24)
	sim := term.screen.(tcell.SimulationScreen)

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, '3', tcell.ModNone)

	key, err := term.AwaitKey(experiment.ResponseKeys)
	if err != nil {
		t.Fatalf("AwaitKey failed: %v", err)
	}
	if key != '3' {
		t.Errorf("Expected non-digit to be skipped, got %q", key)
	}
}

func TestEscapeAborts(t *testing.T) {
	term := newSimTerminal(t, 80, 24)
	sim := term.screen.(tcell.SimulationScreen)

	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	_, err := term.AwaitKey("")
	if !errors.Is(err, experiment.ErrAborted) {
		t.Errorf("Expected ErrAborted on Escape, got %v", err)
	}
}
