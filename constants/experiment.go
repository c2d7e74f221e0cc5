package constants

import "time"

// Trial Structure
const (
	// DefaultBlocks is the number of blocks per session
	DefaultBlocks = 3

	// DefaultTrials is the number of trials per block; it is also the size
	// of the condition set, so every count from 1 to DefaultTrials is shown
	// exactly once per block
	DefaultTrials = 10
)

// Phase Timing
const (
	// FixationDuration is how long the fixation cross is shown before the stimuli
	FixationDuration = 1 * time.Second

	// StimulusDuration caps how long the circles stay on screen; any key ends
	// the phase early
	StimulusDuration = 1 * time.Second

	// BlockStartDuration is the pause after each block-start banner
	BlockStartDuration = 2 * time.Second
)

// Stimulus Geometry (stimulus-space units, matching the original 600x600 window)
const (
	// WindowWidth and WindowHeight define the stimulus region extent
	WindowWidth  = 600.0
	WindowHeight = 600.0

	// WindowMargin is the inward margin; no stimulus center may be placed
	// within this distance of a region edge
	WindowMargin = 200.0

	// CircleRadius is the stimulus radius; twice this is both the drawn
	// diameter and the minimum center-to-center separation
	CircleRadius   = 9.0
	CircleDiameter = CircleRadius * 2
)
