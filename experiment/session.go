package experiment

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Controller drives a full session: instructions, blocks of shuffled
// trials, and the end-of-experiment screen. It owns the Results collection;
// nothing reads it until Run returns.
type Controller struct {
	Display Display
	Rng     *rand.Rand
	Log     *slog.Logger

	Sequencer  *Sequencer
	Blocks     int
	Trials     int
	BlockPause time.Duration
}

// instructions returns the participant-facing intro text.
func (c *Controller) instructions() string {
	return fmt.Sprintf("Subitizing Experiment\n\n"+
		"For each trial, between 1-%d circles will be shown.\n"+
		"When asked, press the number key (0-9; 0 means 10)\n"+
		"representing how many circles you counted.\n\n"+
		"There will be %d blocks of %d trials.\n\n"+
		"Press any key to begin.", c.Trials, c.Blocks, c.Trials)
}

// Run executes the whole session and returns its ordered results. The
// condition set {1..Trials} is reshuffled independently for every block, so
// each count appears exactly once per block.
func (c *Controller) Run() (Results, error) {
	c.Display.Clear()
	c.Display.DrawText(c.instructions())
	if err := c.Display.Present(); err != nil {
		return nil, err
	}
	if _, err := c.Display.AwaitKey(""); err != nil {
		return nil, err
	}

	conditions := make([]int, c.Trials)
	for i := range conditions {
		conditions[i] = i + 1
	}

	results := make(Results, 0, c.Blocks*c.Trials)
	for block := 1; block <= c.Blocks; block++ {
		c.Display.Clear()
		c.Display.DrawFrame()
		c.Display.DrawText(fmt.Sprintf("Starting Block %d", block))
		if err := c.Display.Present(); err != nil {
			return nil, err
		}
		if err := c.Display.Wait(c.BlockPause); err != nil {
			return nil, err
		}

		c.Rng.Shuffle(len(conditions), func(i, j int) {
			conditions[i], conditions[j] = conditions[j], conditions[i]
		})
		if c.Log != nil {
			c.Log.Debug("block start", "block", block, "conditions", conditions)
		}

		for trial, count := range conditions {
			rec, err := c.Sequencer.Run(block, trial, count)
			if err != nil {
				return nil, err
			}
			results = append(results, rec)
		}
	}

	c.Display.Clear()
	c.Display.DrawFrame()
	c.Display.DrawText("Experiment complete.\nPress any key to exit.")
	if err := c.Display.Present(); err != nil {
		return nil, err
	}
	if _, err := c.Display.AwaitKey(""); err != nil {
		return nil, err
	}

	return results, nil
}
