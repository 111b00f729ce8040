package marquee

// PositionTarget is where the rendering layer should move a panel. X and Y are
// percentages of the container size.
type PositionTarget struct {
	X, Y    float64
	Scale   float64
	Z       int
	Opacity float64
}

// Reveal carries the cascade stages the layout reads. Both cards fade in
// with the totals stage; the trending stage only moves the back slot and
// gates the text drawn inside panel B.
type Reveal struct {
	A bool // totals stage, gates both cards' opacity
	B bool // trending stage
}

const (
	frontZ = 20
	backZ  = 10

	lockedOpacity = 0.5
)

// Layout computes both panels' targets from the swap state and the reveal
// stages. It is a pure function; callers recompute it on every read.
func Layout(st SwapState, r Reveal) (a, b PositionTarget) {
	if st.Swapped {
		b = frontSlotSwapped(st.HoverB)
		a = backSlot(st.HoverB, st.HoverA, r)
		a.Scale = 0.98
	} else {
		a = frontSlot(st.HoverA, r.A)
		b = backSlot(st.HoverA, st.HoverB, r)
		switch {
		case st.HoverA, r.B:
			b.Scale = 0.98
		default:
			b.Scale = 1
		}
	}

	a.Opacity = opacity(st, r.A)
	b.Opacity = opacity(st, r.A)
	return a, b
}

// PanelTarget returns the target for a single panel.
func PanelTarget(p Panel, st SwapState, r Reveal) PositionTarget {
	a, b := Layout(st, r)
	if p == PanelB {
		return b
	}
	return a
}

// frontSlot is panel A in the prominent slot.
func frontSlot(hovered, revealed bool) PositionTarget {
	t := PositionTarget{Scale: 1, Z: frontZ}
	switch {
	case hovered:
		t.X, t.Y = 31, 5
	case revealed:
		t.X, t.Y = 30, 0
	default:
		t.X, t.Y = 28, 0
	}
	return t
}

// frontSlotSwapped is panel B in the prominent slot. Unlike panel A it has no
// pre-reveal offset.
func frontSlotSwapped(hovered bool) PositionTarget {
	t := PositionTarget{Scale: 1, Z: frontZ}
	if hovered {
		t.X, t.Y = 31, 5
	} else {
		t.X, t.Y = 30, 0
	}
	return t
}

// backSlot is the offset card. frontHover/backHover are the hover flags of the
// card in front and of this card.
func backSlot(frontHover, backHover bool, r Reveal) PositionTarget {
	t := PositionTarget{Z: backZ}
	switch {
	case frontHover && !backHover:
		t.X, t.Y = 40, 13
	case frontHover && backHover:
		t.X, t.Y = 43, 40
	default:
		switch {
		case r.A && r.B:
			t.X = 32.5
		case r.A:
			t.X = 30
		default:
			t.X = 28
		}
		if r.B {
			t.Y = 7.5
		}
	}
	return t
}

func opacity(st SwapState, revealed bool) float64 {
	switch {
	case !revealed:
		return 0
	case st.Animating:
		return lockedOpacity
	default:
		return 1
	}
}
