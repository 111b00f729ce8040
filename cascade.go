package marquee

import "time"

// DelayedFlag is a visibility flag derived from an upstream Signal. It rises
// only after the upstream has stayed visible for the configured delay and
// falls on the same frame the upstream falls. A DelayedFlag is itself a
// Signal, so flags chain into cascades.
type DelayedFlag struct {
	name     string
	upstream Signal
	delay    time.Duration

	value    bool
	upPrev   bool // upstream value seen on the previous evaluation
	pending  bool
	deadline time.Duration
	detached bool
}

// Name returns the flag's name.
func (f *DelayedFlag) Name() string { return f.name }

// Visible returns the flag's settled value.
func (f *DelayedFlag) Visible() bool { return f.value }

// Delay returns the rising-edge delay used for the next activation.
func (f *DelayedFlag) Delay() time.Duration { return f.delay }

// SetDelay changes the rising-edge delay. A reveal already pending keeps the
// deadline it was started with.
func (f *DelayedFlag) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	f.delay = d
}

// Pending reports whether a reveal timer is running.
func (f *DelayedFlag) Pending() bool { return f.pending }

// IsDisposed reports whether the flag stopped tracking its upstream, either
// because the upstream was destroyed or the owning cascade was disposed.
// Downstream flags treat a detached flag as a destroyed upstream.
func (f *DelayedFlag) IsDisposed() bool { return f.detached }

// evaluate advances the flag to frame time now and reports whether its value
// changed.
func (f *DelayedFlag) evaluate(now time.Duration) bool {
	if f.detached {
		return false
	}
	if isDisposed(f.upstream) {
		f.detach()
		return false
	}

	if !f.upstream.Visible() {
		f.upPrev = false
		f.pending = false
		if f.value {
			f.value = false
			return true
		}
		return false
	}

	if !f.upPrev {
		f.upPrev = true
		f.pending = true
		f.deadline = now + f.delay
	}
	if f.pending && now >= f.deadline {
		f.pending = false
		if !f.value {
			f.value = true
			return true
		}
	}
	return false
}

// detach cancels any pending reveal and freezes the flag at its last settled
// value.
func (f *DelayedFlag) detach() {
	f.pending = false
	f.detached = true
}

// Cascade owns a set of delayed flags and evaluates them once per frame in
// derivation order. Because a flag can only be derived from a signal that
// already exists, derivation order is upstream-first, so a zero-delay flag
// rises on the same frame as its upstream.
type Cascade struct {
	flags   []*DelayedFlag
	changed []*DelayedFlag
}

// NewCascade creates an empty cascade.
func NewCascade() *Cascade {
	return &Cascade{}
}

// Derive creates a flag that follows upstream with the given rising-edge
// delay. Negative delays are treated as zero.
func (c *Cascade) Derive(name string, upstream Signal, delay time.Duration) *DelayedFlag {
	if upstream == nil {
		upstream = Constant(false)
	}
	f := &DelayedFlag{name: name, upstream: upstream}
	f.SetDelay(delay)
	c.flags = append(c.flags, f)
	return f
}

// Flags returns every flag in derivation order. The returned slice MUST NOT
// be mutated.
func (c *Cascade) Flags() []*DelayedFlag {
	return c.flags
}

// Update evaluates every flag at frame time now and returns the flags whose
// value changed. The returned slice is reused by the next call.
func (c *Cascade) Update(now time.Duration) []*DelayedFlag {
	c.changed = c.changed[:0]
	for _, f := range c.flags {
		if f.evaluate(now) {
			c.changed = append(c.changed, f)
		}
	}
	return c.changed
}

// Dispose cancels every pending reveal. Flags keep their settled values.
func (c *Cascade) Dispose() {
	for _, f := range c.flags {
		f.detach()
	}
}
