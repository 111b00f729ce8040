// Package marquee is the animation engine behind the recommender's home
// page: scroll-driven reveal cascades, a two-card swap with hover offsets,
// and counters that tween across data refreshes.
//
// The engine is frame-driven and single-threaded. The host calls
// [Engine.Update] once per display frame; everything else is derived from
// the injected [Clock] and the signals read during that frame. Nothing in
// the engine blocks, spawns goroutines or returns errors.
//
// # Quick start
//
//	clock := marquee.RealClock()
//	engine := marquee.NewEngine(clock)
//	page := marquee.NewPage(engine, marquee.DefaultConfig(), marquee.PageAnchors{
//		Insight:  insightAnchor,
//		Showcase: showcaseAnchor,
//		Demo:     demoAnchor,
//	})
//
//	// every frame:
//	engine.Update()
//	a, b := engine.Positions()
//
// # Reveal cascades
//
// A [DelayedFlag] follows an upstream [Signal]: it rises only after the
// upstream has been visible for its delay and falls on the same frame the
// upstream falls. Flags are Signals, so they chain:
//
//	totals := engine.Derive("totals", insight, 300*time.Millisecond)
//	trending := engine.Derive("trending", totals, 500*time.Millisecond)
//
// Flags are evaluated in derivation order, so a zero-delay flag rises on the
// same frame as its upstream.
//
// # Panel swap
//
// [PanelSwap] serializes swaps with a transition lock: [Engine.Click] flips
// the cards immediately and holds the lock for 500ms; clicks during the lock
// are dropped. Hover is accepted at any time. [Layout] turns the state into
// two [PositionTarget]s from a fixed offset table; [PanelAnimator] eases a
// displayed panel toward them with gween.
//
// # Counters
//
// A [Counter] counts up from slightly below its first target when first
// revealed and afterwards tweens from whatever it is showing to each new
// target over 200ms. Values delivered from other goroutines go through
// [Engine.Deliver] and are applied on the next frame.
//
// # Scripts
//
// [LoadScript] parses a YAML scenario (show/hide anchors, hover, click,
// values, waits) that replays against a [ManualClock], used by the headless
// CLI and by tests.
package marquee
