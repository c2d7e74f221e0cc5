package experiment

import (
	"sync"
	"time"
)

// Clock provides the time source for response-time measurement. Elapsed time
// is always computed as a difference of two Now calls, so only monotonic
// behavior matters, not the absolute epoch.
type Clock interface {
	Now() time.Time
}

// MonotonicClock reads the system clock. time.Time carries a monotonic
// reading on all supported platforms, so Sub is safe against wall-clock
// adjustments.
type MonotonicClock struct{}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{}
}

func (c *MonotonicClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a controllable time source for testing
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualClock creates a manual clock starting at the given time
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

// Now returns the current mocked time
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SetTime sets the current time
func (c *ManualClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance advances the current time by the given duration
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
