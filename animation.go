package marquee

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultPanelTransition is how long a panel takes to ease to a new target.
const DefaultPanelTransition = 500 * time.Millisecond

// PanelAnimator eases a displayed PositionTarget toward the engine's latest
// target. The engine only supplies endpoints; renderers that want motion
// between them feed every frame's target into Retarget and draw Current.
//
// X, Y, Scale and Opacity are tweened; Z switches immediately. Retargets
// made while the transition lock is held use an overshooting ease.
//
// There is no global animation manager; callers call Update themselves.
type PanelAnimator struct {
	tweens   [4]*gween.Tween
	fields   [4]*float64
	current  PositionTarget
	target   PositionTarget
	duration float32
	primed   bool
	Done     bool
}

// NewPanelAnimator creates an animator with the given transition length.
func NewPanelAnimator(duration time.Duration) *PanelAnimator {
	if duration <= 0 {
		duration = DefaultPanelTransition
	}
	a := &PanelAnimator{duration: float32(duration.Seconds()), Done: true}
	a.fields = [4]*float64{&a.current.X, &a.current.Y, &a.current.Scale, &a.current.Opacity}
	return a
}

// Duration returns the transition length used by the next Retarget.
func (a *PanelAnimator) Duration() time.Duration {
	return time.Duration(float64(a.duration) * float64(time.Second))
}

// SetDuration changes the transition length. A transition in flight keeps
// its length; the next Retarget uses d.
func (a *PanelAnimator) SetDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultPanelTransition
	}
	a.duration = float32(d.Seconds())
}

// Retarget starts easing toward t. The first call places the panel at t
// fully transparent and fades it in. Retargeting to the current target is a
// no-op so calling it every frame is cheap.
func (a *PanelAnimator) Retarget(t PositionTarget, locked bool) {
	if !a.primed {
		a.primed = true
		a.current = t
		a.current.Opacity = 0
		a.target = PositionTarget{Opacity: -1}
	}
	if t == a.target {
		return
	}
	fn := ease.OutCubic
	if locked {
		fn = ease.InOutBack
	}
	a.target = t
	a.current.Z = t.Z
	to := [4]float64{t.X, t.Y, t.Scale, t.Opacity}
	for i := range a.tweens {
		a.tweens[i] = gween.New(float32(*a.fields[i]), float32(to[i]), a.duration, fn)
	}
	a.Done = false
}

// Update advances all tweens by dt seconds and writes the displayed values.
func (a *PanelAnimator) Update(dt float32) {
	if a.Done {
		return
	}
	allDone := true
	for i, tw := range a.tweens {
		val, finished := tw.Update(dt)
		*a.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		a.current = a.target
	}
	a.Done = allDone
}

// Current returns the displayed position.
func (a *PanelAnimator) Current() PositionTarget { return a.current }

// Target returns the position being eased to.
func (a *PanelAnimator) Target() PositionTarget { return a.target }
