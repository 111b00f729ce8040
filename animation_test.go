package marquee

import (
	"math"
	"testing"
	"time"
)

func TestPanelAnimatorFadesInOnFirstTarget(t *testing.T) {
	a := NewPanelAnimator(time.Second)
	target := PositionTarget{X: 30, Scale: 1, Z: 20, Opacity: 1}

	a.Retarget(target, false)
	if a.Done {
		t.Fatal("expected a running fade-in")
	}
	cur := a.Current()
	if cur.X != 30 || cur.Opacity != 0 {
		t.Fatalf("first frame = %+v, want placed at target and transparent", cur)
	}

	// Exact halves avoid float32 accumulation drift.
	a.Update(0.5)
	if op := a.Current().Opacity; op <= 0 || op >= 1 {
		t.Errorf("opacity halfway = %f, want between 0 and 1", op)
	}
	a.Update(0.5)
	if !a.Done {
		t.Fatal("expected Done after full duration")
	}
	if a.Current() != target {
		t.Errorf("Current = %+v, want %+v", a.Current(), target)
	}
}

func TestPanelAnimatorSameTargetIsNoop(t *testing.T) {
	a := NewPanelAnimator(time.Second)
	target := PositionTarget{X: 30, Scale: 1, Z: 20, Opacity: 1}
	a.Retarget(target, false)
	a.Update(1)
	a.Retarget(target, false)
	if !a.Done {
		t.Error("retargeting to the same target restarted the tween")
	}
}

func TestPanelAnimatorZSnaps(t *testing.T) {
	a := NewPanelAnimator(time.Second)
	a.Retarget(PositionTarget{X: 30, Scale: 1, Z: 20, Opacity: 1}, false)
	a.Update(1)

	a.Retarget(PositionTarget{X: 32.5, Y: 7.5, Scale: 0.98, Z: 10, Opacity: 1}, false)
	if a.Current().Z != 10 {
		t.Errorf("Z = %v, want 10 immediately", a.Current().Z)
	}
	if a.Current().X != 30 {
		t.Errorf("X = %v, want 30 before any Update", a.Current().X)
	}
}

func TestPanelAnimatorLockedOvershoots(t *testing.T) {
	a := NewPanelAnimator(time.Second)
	a.Retarget(PositionTarget{X: 30, Scale: 1, Z: 20, Opacity: 1}, false)
	a.Update(1)

	a.Retarget(PositionTarget{X: 40, Scale: 1, Z: 20, Opacity: 1}, true)
	a.Update(0.1)
	if x := a.Current().X; x >= 30 {
		t.Errorf("locked ease X = %f early on, want a pull-back below 30", x)
	}

	b := NewPanelAnimator(time.Second)
	b.Retarget(PositionTarget{X: 30, Scale: 1, Z: 20, Opacity: 1}, false)
	b.Update(1)
	b.Retarget(PositionTarget{X: 40, Scale: 1, Z: 20, Opacity: 1}, false)
	b.Update(0.1)
	if x := b.Current().X; x <= 30 {
		t.Errorf("unlocked ease X = %f early on, want forward motion", x)
	}
}

func TestPanelAnimatorRetargetMidFlight(t *testing.T) {
	a := NewPanelAnimator(time.Second)
	a.Retarget(PositionTarget{X: 30, Scale: 1, Z: 20, Opacity: 1}, false)
	a.Update(1)
	a.Retarget(PositionTarget{X: 40, Scale: 1, Z: 20, Opacity: 1}, false)
	a.Update(0.5)
	mid := a.Current().X

	a.Retarget(PositionTarget{X: 20, Scale: 1, Z: 20, Opacity: 1}, false)
	a.Update(0)
	if math.Abs(a.Current().X-mid) > 1e-3 {
		t.Errorf("X jumped from %f to %f on retarget", mid, a.Current().X)
	}
	a.Update(0.5)
	a.Update(0.5)
	if math.Abs(a.Current().X-20) > 1e-3 {
		t.Errorf("X = %f, want 20", a.Current().X)
	}
}

func TestPanelAnimatorDefaultDuration(t *testing.T) {
	a := NewPanelAnimator(0)
	a.Retarget(PositionTarget{Opacity: 1}, false)
	a.Update(float32(DefaultPanelTransition.Seconds()))
	if !a.Done {
		t.Error("expected Done after the default transition")
	}
}
