package marquee

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// DefaultCounterDuration is the length of every count animation.
	DefaultCounterDuration = 200 * time.Millisecond
	// DefaultCountUpOffset is how far below its first target a counter starts
	// the first time it is revealed.
	DefaultCountUpOffset = 100
)

// Counter tweens a displayed integer toward the latest delivered target. It
// only animates while its gate is visible; while hidden, Sample reports
// nothing and no frames run, but the displayed value is kept for the next
// reveal.
//
// Counters are stepped by the Engine once per frame.
type Counter struct {
	name     string
	gate     Signal
	duration time.Duration
	offset   float64

	current   float64
	start     float64
	target    float64
	hasTarget bool

	progress *gween.Tween
	running  bool
	started  bool // start timestamp taken on the first frame of a run
	startAt  time.Duration
	kicked   bool // start timestamp taken on the latest frame

	activated bool // first-reveal count-up has been played
	visible   bool // gate as of the last frame
	disposed  bool
}

// NewCounter creates a counter gated by gate (nil means always visible) with
// the default duration and count-up offset.
func NewCounter(name string, gate Signal) *Counter {
	if gate == nil {
		gate = Constant(true)
	}
	return &Counter{
		name:     name,
		gate:     gate,
		duration: DefaultCounterDuration,
		offset:   DefaultCountUpOffset,
	}
}

// Name returns the counter's name.
func (c *Counter) Name() string { return c.name }

// SetDuration changes the animation length for runs started afterwards.
func (c *Counter) SetDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.duration = d
}

// SetCountUpOffset changes the first-reveal offset. Negative values are
// treated as zero.
func (c *Counter) SetCountUpOffset(offset float64) {
	c.offset = sanitize(offset)
}

// Update delivers a new target. NaN, infinite and negative values are
// treated as 0. Delivering the current target again is a no-op, so periodic
// refreshes with unchanged data never restart the animation.
func (c *Counter) Update(target float64) {
	if c.disposed {
		return
	}
	target = sanitize(target)
	if c.hasTarget && target == c.target {
		return
	}
	c.target = target
	c.hasTarget = true
	if c.visible {
		c.begin()
	}
}

// Sample returns the displayed value. ok is false while the counter is
// suppressed: gated off, disposed, or still waiting for its first target.
func (c *Counter) Sample() (value int64, ok bool) {
	if c.disposed || !c.visible || !c.activated {
		return 0, false
	}
	return int64(c.current), true
}

// Target returns the latest delivered target.
func (c *Counter) Target() float64 { return c.target }

// Running reports whether the counter will animate on the next frame.
func (c *Counter) Running() bool { return c.running }

// begin starts a run from the current display value, or from the count-up
// start on the first reveal.
func (c *Counter) begin() {
	if !c.hasTarget {
		return
	}
	if !c.activated {
		c.activated = true
		c.start = math.Max(0, c.target-c.offset)
		c.current = c.start
	} else {
		if c.current == c.target {
			c.running = false
			return
		}
		c.start = c.current
	}
	c.progress = gween.New(0, 1, float32(c.duration.Seconds()), ease.Linear)
	c.running = true
	c.started = false
}

// step advances the counter to frame time now. It reports whether a run
// finished on this frame.
func (c *Counter) step(now time.Duration) (settled bool) {
	c.kicked = false
	if c.disposed {
		return false
	}
	if !c.gate.Visible() {
		c.visible = false
		c.running = false
		return false
	}
	if !c.visible {
		c.visible = true
		c.begin()
	}
	if !c.running {
		return false
	}
	if !c.started {
		c.started = true
		c.kicked = true
		c.startAt = now
	}

	p, done := c.progress.Set(float32((now - c.startAt).Seconds()))
	if done {
		c.current = c.target
		c.running = false
		return true
	}
	c.current = math.Floor(c.start + (c.target-c.start)*float64(p))
	return false
}

// dispose stops the frame chain. The counter ignores all further input.
func (c *Counter) dispose() {
	c.running = false
	c.disposed = true
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
