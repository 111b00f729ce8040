package marquee

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds an active scroll-to tween.
type scrollAnim struct {
	tween   *gween.Tween
	started bool
	startAt time.Duration
}

// Viewport is the visible window over the page. RectAnchors created from it
// report whether their bounds intersect the visible area, which makes the
// viewport an in-process stand-in for the browser's intersection observer.
type Viewport struct {
	Width, Height float64
	// ScrollY is the page offset of the viewport's top edge.
	ScrollY float64
	// MaxScroll clamps ScrollY when positive.
	MaxScroll float64

	scroll *scrollAnim
}

// NewViewport creates a viewport of the given size scrolled to the top.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// VisibleBounds returns the page-space rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: 0, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// ScrollBy moves the viewport by dy immediately and cancels any scroll-to.
func (v *Viewport) ScrollBy(dy float64) {
	v.scroll = nil
	v.ScrollY = v.clamp(v.ScrollY + dy)
}

// ScrollTo eases the viewport to y over duration. The tween starts on the
// next engine frame.
func (v *Viewport) ScrollTo(y float64, duration time.Duration) {
	y = v.clamp(y)
	if duration <= 0 {
		v.scroll = nil
		v.ScrollY = y
		return
	}
	v.scroll = &scrollAnim{
		tween: gween.New(float32(v.ScrollY), float32(y), float32(duration.Seconds()), ease.OutCubic),
	}
}

// Scrolling reports whether a scroll-to is in flight.
func (v *Viewport) Scrolling() bool { return v.scroll != nil }

// update advances the scroll-to tween to frame time now.
func (v *Viewport) update(now time.Duration) {
	s := v.scroll
	if s == nil {
		return
	}
	if !s.started {
		s.started = true
		s.startAt = now
	}
	y, done := s.tween.Set(float32((now - s.startAt).Seconds()))
	v.ScrollY = float64(y)
	if done {
		v.scroll = nil
	}
}

func (v *Viewport) clamp(y float64) float64 {
	if y < 0 {
		return 0
	}
	if v.MaxScroll > 0 && y > v.MaxScroll {
		return v.MaxScroll
	}
	return y
}

// Anchor creates a RectAnchor for a page region.
func (v *Viewport) Anchor(name string, bounds Rect) *RectAnchor {
	return &RectAnchor{name: name, bounds: bounds, viewport: v}
}

// RectAnchor is a Signal that is visible while its page region intersects
// the viewport.
type RectAnchor struct {
	name     string
	bounds   Rect
	viewport *Viewport
	disposed bool
}

// Name returns the anchor's name.
func (a *RectAnchor) Name() string { return a.name }

// Bounds returns the anchor's page region.
func (a *RectAnchor) Bounds() Rect { return a.bounds }

// Visible reports whether the region intersects the viewport.
func (a *RectAnchor) Visible() bool {
	if a.disposed {
		return false
	}
	return a.bounds.Intersects(a.viewport.VisibleBounds())
}

// Dispose detaches the anchor from the viewport.
func (a *RectAnchor) Dispose() { a.disposed = true }

// IsDisposed reports whether Dispose has been called.
func (a *RectAnchor) IsDisposed() bool { return a.disposed }
