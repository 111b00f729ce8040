package marquee

import "time"

// Clock is the monotonic time source the engine samples once per frame.
// Now returns the elapsed time since an arbitrary, fixed epoch and never
// decreases.
type Clock interface {
	Now() time.Duration
}

type realClock struct {
	start time.Time
}

// RealClock returns a Clock backed by the runtime's monotonic clock.
func RealClock() Clock {
	return &realClock{start: time.Now()}
}

func (c *realClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock is a deterministic Clock for tests and scripted runs. Time
// stands still until Advance or Set is called. Not safe for concurrent use;
// it belongs to the goroutine that drives the engine.
type ManualClock struct {
	now time.Duration
}

// NewManualClock returns a ManualClock at time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d. Non-positive values are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Set jumps the clock to t. Moving backwards is ignored so the clock stays
// monotonic.
func (c *ManualClock) Set(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}
