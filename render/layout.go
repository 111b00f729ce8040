package render

import "github.com/phanxgames/marquee"

// Sections is the page-space layout of the home page: a hero band followed
// by the three anchored sections, each one screen tall.
type Sections struct {
	Hero     marquee.Rect
	Insight  marquee.Rect
	Showcase marquee.Rect
	Demo     marquee.Rect
	// Cards is the slot the two swapping cards are positioned relative to.
	Cards marquee.Rect
}

// NewSections lays the page out for a screen of the given size.
func NewSections(width, height float64) Sections {
	band := func(i int) marquee.Rect {
		return marquee.Rect{X: 0, Y: float64(i) * height, Width: width, Height: height}
	}
	s := Sections{
		Hero:     band(0),
		Insight:  band(1),
		Showcase: band(2),
		Demo:     band(3),
	}
	s.Cards = marquee.Rect{
		X:      s.Insight.X + width*0.08,
		Y:      s.Insight.Y + height*0.2,
		Width:  width * 0.4,
		Height: height * 0.45,
	}
	return s
}

// PageHeight returns the scrollable height of the page.
func (s Sections) PageHeight() float64 {
	return s.Demo.Y + s.Demo.Height
}

// Anchors creates viewport anchors for the three sections.
func (s Sections) Anchors(v *marquee.Viewport) marquee.PageAnchors {
	return marquee.PageAnchors{
		Insight:  v.Anchor(marquee.AnchorInsight, s.Insight),
		Showcase: v.Anchor(marquee.AnchorShowcase, s.Showcase),
		Demo:     v.Anchor(marquee.AnchorDemo, s.Demo),
	}
}

// CardRect places a card in page space. X and Y are percentages of the
// card's own size, as in CSS transforms; scale is applied about the centre.
func CardRect(slot marquee.Rect, t marquee.PositionTarget) marquee.Rect {
	w := slot.Width * t.Scale
	h := slot.Height * t.Scale
	cx := slot.X + slot.Width*t.X/100 + slot.Width/2
	cy := slot.Y + slot.Height*t.Y/100 + slot.Height/2
	return marquee.Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// card is one panel as drawn this frame.
type card struct {
	panel marquee.Panel
	pos   marquee.PositionTarget
	rect  marquee.Rect
}

// byZ returns the two cards ordered back to front.
func byZ(a, b card) [2]card {
	if a.pos.Z > b.pos.Z {
		return [2]card{b, a}
	}
	return [2]card{a, b}
}

// hitTest returns the top-most visible card containing the page-space point.
// Fully transparent cards are not hittable.
func hitTest(cards [2]card, x, y float64) (marquee.Panel, bool) {
	for i := len(cards) - 1; i >= 0; i-- {
		c := cards[i]
		if c.pos.Opacity <= 0 {
			continue
		}
		if c.rect.Contains(x, y) {
			return c.panel, true
		}
	}
	return marquee.PanelA, false
}

// hoverTracker turns per-frame hit results into enter and leave calls, the
// way a DOM element receives mouseenter and mouseleave.
type hoverTracker struct {
	panel  marquee.Panel
	inside bool
}

func (h *hoverTracker) move(e *marquee.Engine, p marquee.Panel, hit bool) {
	if h.inside && (!hit || p != h.panel) {
		e.PointerLeave(h.panel)
		h.inside = false
	}
	if hit && !h.inside {
		e.PointerEnter(p)
		h.panel = p
		h.inside = true
	}
}
