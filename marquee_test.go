package marquee

import "testing"

// --- Rect ---

func TestRectContainsCardPoints(t *testing.T) {
	// A card slot at (240, 1250) sized 400x220, as laid out on an 800x600 page.
	card := Rect{X: 240, Y: 1250, Width: 400, Height: 220}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"centre", 440, 1360, true},
		{"top-left corner", 240, 1250, true},
		{"bottom-right corner", 640, 1470, true},
		{"just left", 239.5, 1300, false},
		{"just below", 300, 1470.5, false},
		{"screen point without scroll", 440, 160, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := card.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectAnchorEdges(t *testing.T) {
	v := NewViewport(800, 600)
	v.MaxScroll = 1800
	insight := v.Anchor("insight", Rect{X: 0, Y: 600, Width: 800, Height: 600})

	tests := []struct {
		name   string
		scroll float64
		expect bool
	}{
		{"top of page", 0, true}, // section's top edge touches the viewport's bottom edge
		{"scrolled in", 300, true},
		{"section fills screen", 600, true},
		{"bottom edge touching", 1200, true},
		{"scrolled past", 1201, false},
		{"bottom of page", 1800, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.ScrollY = tt.scroll
			if got := insight.Visible(); got != tt.expect {
				t.Errorf("visible at scroll %v = %v, want %v (viewport %+v)", tt.scroll, got, tt.expect, v.VisibleBounds())
			}
		})
	}
}

func TestRectAnchorNarrowSection(t *testing.T) {
	v := NewViewport(800, 600)
	// A divider line with zero height still counts once the viewport reaches it.
	divider := v.Anchor("divider", Rect{X: 0, Y: 900, Width: 800})
	v.ScrollY = 299
	if divider.Visible() {
		t.Fatal("divider visible before the viewport reaches it")
	}
	v.ScrollY = 300
	if !divider.Visible() {
		t.Error("divider not visible when touching the viewport's bottom edge")
	}
	divider.Dispose()
	if divider.Visible() {
		t.Error("disposed anchor still visible")
	}
}

// --- Panel ---

func TestParsePanel(t *testing.T) {
	tests := []struct {
		in   string
		want Panel
		ok   bool
	}{
		{"a", PanelA, true},
		{"A", PanelA, true},
		{"b", PanelB, true},
		{"B", PanelB, true},
		{"c", PanelA, false},
		{"", PanelA, false},
	}
	for _, tt := range tests {
		got, ok := ParsePanel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePanel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPanelOther(t *testing.T) {
	if PanelA.Other() != PanelB || PanelB.Other() != PanelA {
		t.Error("Other is not an involution")
	}
	if PanelA.String() != "a" || PanelB.String() != "b" {
		t.Errorf("String = %q, %q", PanelA, PanelB)
	}
}

// --- Clock and signals ---

func TestManualClockMonotonic(t *testing.T) {
	c := NewManualClock()
	c.Advance(100 * ms)
	c.Advance(-50 * ms)
	if c.Now() != 100*ms {
		t.Fatalf("Now = %v, want 100ms", c.Now())
	}
	c.Set(50 * ms)
	if c.Now() != 100*ms {
		t.Errorf("Set moved the clock backwards to %v", c.Now())
	}
	c.Set(300 * ms)
	if c.Now() != 300*ms {
		t.Errorf("Now = %v, want 300ms", c.Now())
	}
}

func TestRealClockAdvances(t *testing.T) {
	c := RealClock()
	a := c.Now()
	b := c.Now()
	if b < a {
		t.Errorf("RealClock went backwards: %v then %v", a, b)
	}
}

func TestAnchorDispose(t *testing.T) {
	a := NewAnchor("x")
	a.SetVisible(true)
	a.Dispose()
	if a.Visible() {
		t.Error("disposed anchor is visible")
	}
	a.SetVisible(true)
	if a.Visible() {
		t.Error("SetVisible after Dispose took effect")
	}
}

func TestSignalFuncAndConstant(t *testing.T) {
	v := false
	s := SignalFunc(func() bool { return v })
	if s.Visible() {
		t.Fatal("expected false")
	}
	v = true
	if !s.Visible() {
		t.Error("SignalFunc did not read the live value")
	}
	if !Constant(true).Visible() || Constant(false).Visible() {
		t.Error("Constant mismatch")
	}
}

func TestEventTypeString(t *testing.T) {
	if got := EventCounterSettled.String(); got != "counter_settled" {
		t.Errorf("String = %q", got)
	}
	if got := EventType(200).String(); got != "unknown" {
		t.Errorf("String = %q, want unknown", got)
	}
}
