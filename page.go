package marquee

import (
	"sync"
	"time"
)

// Counter and anchor names used by the home page.
const (
	CounterTotal  = "total"
	CounterHourly = "hourly"

	AnchorInsight  = "insight"
	AnchorShowcase = "showcase"
	AnchorDemo     = "demo"
)

// DefaultTrending is shown until the trending endpoint answers.
var DefaultTrending = []string{"Electronic", "Alternative", "Reggaeton"}

// PageAnchors are the three viewport anchors of the home page.
type PageAnchors struct {
	Insight  Signal // "a look inside" section
	Showcase Signal // video section
	Demo     Signal // interactive demo section
}

// Page composes the home page's reveal graph, panels and counters on top of
// an Engine.
type Page struct {
	Engine *Engine

	TotalsVisible   *DelayedFlag
	TrendingVisible *DelayedFlag
	VideoVisible    *DelayedFlag
	GradientVisible *DelayedFlag
	SearchAnimate   *DelayedFlag
	RecAnimate      *DelayedFlag

	Total  *Counter
	Hourly *Counter

	anchors PageAnchors

	mu       sync.Mutex
	trending []string
}

// NewPage wires the home page into e using cfg's timings.
//
// The insight anchor drives a three-deep cascade: the totals card appears
// RevealDelay after the section scrolls in with both cards fading in, and
// the trending stage follows ExpandDelay later, settling the back card and
// showing its text. Both counters are gated by the totals stage.
func NewPage(e *Engine, cfg Config, anchors PageAnchors) *Page {
	p := &Page{
		Engine:   e,
		anchors:  anchors,
		trending: append([]string(nil), DefaultTrending...),
	}

	p.TotalsVisible = e.Derive("totals", anchors.Insight, cfg.RevealDelay)
	p.TrendingVisible = e.Derive("trending", p.TotalsVisible, cfg.ExpandDelay)
	p.VideoVisible = e.Derive("video", anchors.Showcase, cfg.ShowcaseDelay)
	p.GradientVisible = e.Derive("gradient", anchors.Demo, cfg.GradientDelay)
	p.SearchAnimate = e.Derive("search", anchors.Demo, cfg.DemoDelay)
	p.RecAnimate = e.Derive("recommend", anchors.Demo, cfg.DemoDelay)

	e.SetPanelGates(p.TotalsVisible, p.TrendingVisible)
	e.SetSwapLock(cfg.SwapLock)
	e.SetCounterTiming(cfg.CounterDuration, cfg.CountUpOffset)

	p.Total = e.NewCounter(CounterTotal, p.TotalsVisible)
	p.Hourly = e.NewCounter(CounterHourly, p.TotalsVisible)
	return p
}

// Apply re-applies cfg's timings. Pending reveals and a held lock keep the
// deadlines they started with.
func (p *Page) Apply(cfg Config) {
	p.TotalsVisible.SetDelay(cfg.RevealDelay)
	p.TrendingVisible.SetDelay(cfg.ExpandDelay)
	p.VideoVisible.SetDelay(cfg.ShowcaseDelay)
	p.GradientVisible.SetDelay(cfg.GradientDelay)
	p.SearchAnimate.SetDelay(cfg.DemoDelay)
	p.RecAnimate.SetDelay(cfg.DemoDelay)
	p.Engine.SetSwapLock(cfg.SwapLock)
	p.Engine.SetCounterTiming(cfg.CounterDuration, cfg.CountUpOffset)
}

// Deliver routes a named value to its counter. It implements the stats
// feed's sink and is safe to call from any goroutine. Unknown names are
// ignored.
func (p *Page) Deliver(name string, value float64) {
	switch name {
	case CounterTotal:
		p.Engine.Deliver(p.Total, value)
	case CounterHourly:
		p.Engine.Deliver(p.Hourly, value)
	}
}

// SetTrending replaces the trending genres. Empty input keeps the current
// list. Safe to call from any goroutine.
func (p *Page) SetTrending(genres []string) {
	if len(genres) == 0 {
		return
	}
	p.mu.Lock()
	p.trending = append(p.trending[:0:0], genres...)
	p.mu.Unlock()
}

// Trending returns a copy of the trending genres.
func (p *Page) Trending() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.trending...)
}

// Snapshot is a read-only view of one frame for renderers and observers.
type Snapshot struct {
	Frame uint64
	At    time.Duration

	State  SwapState
	Reveal Reveal
	A, B   PositionTarget

	SectionVisible  bool // insight anchor
	TotalsVisible   bool
	TrendingVisible bool
	VideoVisible    bool
	GradientVisible bool
	SearchAnimate   bool
	RecAnimate      bool

	Total, Hourly   int64
	CountersVisible bool

	Trending []string
}

// Snapshot captures the current frame.
func (p *Page) Snapshot() Snapshot {
	e := p.Engine
	a, b := e.Positions()
	s := Snapshot{
		Frame:           e.Frame(),
		At:              e.Now(),
		State:           e.State(),
		Reveal:          e.Reveal(),
		A:               a,
		B:               b,
		SectionVisible:  p.anchors.Insight != nil && p.anchors.Insight.Visible(),
		TotalsVisible:   p.TotalsVisible.Visible(),
		TrendingVisible: p.TrendingVisible.Visible(),
		VideoVisible:    p.VideoVisible.Visible(),
		GradientVisible: p.GradientVisible.Visible(),
		SearchAnimate:   p.SearchAnimate.Visible(),
		RecAnimate:      p.RecAnimate.Visible(),
		Trending:        p.Trending(),
	}
	var ok bool
	s.Total, ok = p.Total.Sample()
	s.Hourly, _ = p.Hourly.Sample()
	s.CountersVisible = ok
	return s
}

// Dispose tears the page down with its engine.
func (p *Page) Dispose() {
	p.Engine.Dispose()
}
