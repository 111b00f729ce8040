package marquee

// Signal is a live boolean the engine samples every frame. Anchors, delayed
// flags and viewport anchors all implement it.
type Signal interface {
	Visible() bool
}

// SignalFunc adapts a function to a Signal.
type SignalFunc func() bool

// Visible calls f.
func (f SignalFunc) Visible() bool { return f() }

type constantSignal bool

func (c constantSignal) Visible() bool { return bool(c) }

// Constant returns a Signal that always reports v.
func Constant(v bool) Signal {
	return constantSignal(v)
}

// disposable is implemented by signals whose source can be destroyed.
// Flags reading a disposed upstream stop tracking it.
type disposable interface {
	IsDisposed() bool
}

// Anchor is a settable visibility signal. The host's intersection primitive
// writes into it with SetVisible; the engine only reads it.
type Anchor struct {
	name     string
	visible  bool
	disposed bool
}

// NewAnchor creates a hidden anchor.
func NewAnchor(name string) *Anchor {
	return &Anchor{name: name}
}

// Name returns the anchor's name.
func (a *Anchor) Name() string { return a.name }

// Visible reports whether the anchor currently intersects the viewport.
func (a *Anchor) Visible() bool { return a.visible && !a.disposed }

// SetVisible records the latest intersection state. Ignored after Dispose.
func (a *Anchor) SetVisible(v bool) {
	if a.disposed {
		return
	}
	a.visible = v
}

// Dispose marks the anchor as unmounted. Flags derived from it cancel any
// pending reveal and keep their last settled value.
func (a *Anchor) Dispose() { a.disposed = true }

// IsDisposed reports whether Dispose has been called.
func (a *Anchor) IsDisposed() bool { return a.disposed }

func isDisposed(s Signal) bool {
	d, ok := s.(disposable)
	return ok && d.IsDisposed()
}
