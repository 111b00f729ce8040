package marquee

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultFrameStep is the frame interval used by scripts that don't set one.
const DefaultFrameStep = 16 * time.Millisecond

// scriptStep is a single action in a scenario script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Target string  `yaml:"target,omitempty"`
	Value  float64 `yaml:"value,omitempty"`
	Ms     int     `yaml:"ms,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// script is the top-level YAML (or JSON) structure for a scenario.
type script struct {
	FrameMs int          `yaml:"frame_ms"`
	Steps   []scriptStep `yaml:"steps"`
}

// Script is a parsed scenario that drives a Page on a ManualClock: anchors
// shown and hidden, pointer input, data deliveries and waits. It is used by
// the headless CLI and by tests to replay interactions deterministically.
type Script struct {
	steps     []scriptStep
	frameStep time.Duration
}

// LoadScript parses and validates a scenario script. JSON is accepted since
// it is valid YAML.
func LoadScript(data []byte) (*Script, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if err := validateStep(st); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	step := DefaultFrameStep
	if s.FrameMs > 0 {
		step = time.Duration(s.FrameMs) * time.Millisecond
	}
	return &Script{steps: s.Steps, frameStep: step}, nil
}

func validateStep(st scriptStep) error {
	switch st.Action {
	case "show", "hide":
		switch st.Target {
		case AnchorInsight, AnchorShowcase, AnchorDemo:
			return nil
		}
		return fmt.Errorf("unknown anchor %q", st.Target)
	case "hover", "unhover", "enter", "leave", "click":
		if _, ok := ParsePanel(st.Target); !ok {
			return fmt.Errorf("unknown panel %q", st.Target)
		}
		return nil
	case "value":
		switch st.Target {
		case CounterTotal, CounterHourly:
			return nil
		}
		return fmt.Errorf("unknown counter %q", st.Target)
	case "wait":
		if st.Ms <= 0 {
			return fmt.Errorf("wait needs a positive ms")
		}
		return nil
	case "frames":
		if st.Frames <= 0 {
			return fmt.Errorf("frames needs a positive count")
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

// FrameStep returns the simulated frame interval.
func (s *Script) FrameStep() time.Duration { return s.frameStep }

// Len returns the number of steps.
func (s *Script) Len() int { return len(s.steps) }

// ScriptRun is a page under scripted control.
type ScriptRun struct {
	Page    *Page
	Clock   *ManualClock
	anchors map[string]*Anchor
	script  *Script
	cursor  int
}

// NewRun builds a fresh page with settable anchors on a ManualClock at zero.
func (s *Script) NewRun(cfg Config, logger *zap.Logger) *ScriptRun {
	clock := NewManualClock()
	e := NewEngine(clock)
	e.SetLogger(logger)
	anchors := map[string]*Anchor{
		AnchorInsight:  NewAnchor(AnchorInsight),
		AnchorShowcase: NewAnchor(AnchorShowcase),
		AnchorDemo:     NewAnchor(AnchorDemo),
	}
	page := NewPage(e, cfg, PageAnchors{
		Insight:  anchors[AnchorInsight],
		Showcase: anchors[AnchorShowcase],
		Demo:     anchors[AnchorDemo],
	})
	return &ScriptRun{Page: page, Clock: clock, anchors: anchors, script: s}
}

// Anchor returns the named settable anchor.
func (r *ScriptRun) Anchor(name string) *Anchor { return r.anchors[name] }

// Done reports whether every step has been executed.
func (r *ScriptRun) Done() bool { return r.cursor >= len(r.script.steps) }

// Run executes every remaining step, calling observe (if non-nil) after each
// simulated frame.
func (r *ScriptRun) Run(observe func(Snapshot)) {
	for !r.Done() {
		r.Step(observe)
	}
}

// Step executes the next step. Input steps are applied at the current clock
// time without advancing it; wait and frames advance the clock one frame at
// a time and run the engine for each frame.
func (r *ScriptRun) Step(observe func(Snapshot)) {
	if r.Done() {
		return
	}
	st := r.script.steps[r.cursor]
	r.cursor++

	e := r.Page.Engine
	switch st.Action {
	case "show":
		r.anchors[st.Target].SetVisible(true)
	case "hide":
		r.anchors[st.Target].SetVisible(false)
	case "hover", "unhover":
		p, _ := ParsePanel(st.Target)
		e.SetHover(p, st.Action == "hover")
	case "enter":
		p, _ := ParsePanel(st.Target)
		e.PointerEnter(p)
	case "leave":
		p, _ := ParsePanel(st.Target)
		e.PointerLeave(p)
	case "click":
		p, _ := ParsePanel(st.Target)
		e.Click(p)
	case "value":
		r.Page.Deliver(st.Target, st.Value)
	case "wait":
		remaining := time.Duration(st.Ms) * time.Millisecond
		for remaining > 0 {
			d := min(r.script.frameStep, remaining)
			r.frame(d, observe)
			remaining -= d
		}
	case "frames":
		for i := 0; i < st.Frames; i++ {
			r.frame(r.script.frameStep, observe)
		}
	}
}

func (r *ScriptRun) frame(d time.Duration, observe func(Snapshot)) {
	r.Clock.Advance(d)
	r.Page.Engine.Update()
	if observe != nil {
		observe(r.Page.Snapshot())
	}
}
