// Package render draws a marquee home page with ebiten and feeds the
// window's pointer and wheel input back into the engine.
package render

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/phanxgames/marquee"
)

// DefaultScrollStep is how far one wheel notch scrolls the page.
const DefaultScrollStep = 60

// Options configures a Game.
type Options struct {
	Width, Height int
	ScrollStep    float64
	Debug         bool
	Logger        *zap.Logger
	// Done ends the game loop when closed.
	Done <-chan struct{}
}

// Game implements ebiten.Game for a Page. The engine is stepped from
// Update, so every engine call happens on ebiten's game goroutine.
type Game struct {
	page     *marquee.Page
	viewport *marquee.Viewport
	sections Sections
	opts     Options
	logger   *zap.Logger

	animA, animB *marquee.PanelAnimator
	hover        hoverTracker
	cards        [2]card

	mu      sync.Mutex
	pending *marquee.Config
}

// NewGame wraps page. The viewport must be the one whose anchors were passed
// to the page; it is attached to the engine here.
func NewGame(page *marquee.Page, viewport *marquee.Viewport, sections Sections, cfg marquee.Config, opts Options) *Game {
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = DefaultScrollStep
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	viewport.MaxScroll = sections.PageHeight() - viewport.Height
	page.Engine.SetViewport(viewport)

	return &Game{
		page:     page,
		viewport: viewport,
		sections: sections,
		opts:     opts,
		logger:   logger,
		animA:    marquee.NewPanelAnimator(cfg.PanelTransition),
		animB:    marquee.NewPanelAnimator(cfg.PanelTransition),
	}
}

// Reload hands a new configuration to the game goroutine. It is applied at
// the start of the next Update. Safe to call from any goroutine; only the
// latest pending configuration is kept.
func (g *Game) Reload(cfg marquee.Config) {
	g.mu.Lock()
	g.pending = &cfg
	g.mu.Unlock()
}

func (g *Game) applyPending() {
	g.mu.Lock()
	cfg := g.pending
	g.pending = nil
	g.mu.Unlock()
	if cfg == nil {
		return
	}
	g.page.Apply(*cfg)
	g.animA.SetDuration(cfg.PanelTransition)
	g.animB.SetDuration(cfg.PanelTransition)
	g.logger.Info("config reloaded",
		zap.Duration("reveal_delay", cfg.RevealDelay),
		zap.Duration("swap_lock", cfg.SwapLock),
		zap.Duration("panel_transition", cfg.PanelTransition))
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	select {
	case <-g.opts.Done:
		return ebiten.Termination
	default:
	}
	g.applyPending()

	e := g.page.Engine
	mx, my := ebiten.CursorPosition()
	px, py := float64(mx), float64(my)+g.viewport.ScrollY
	p, hit := hitTest(g.cards, px, py)
	g.hover.move(e, p, hit)
	if hit && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.Click(p)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.viewport.ScrollBy(-dy * g.opts.ScrollStep)
	}

	e.Update()

	dt := float32(1.0 / float64(ebiten.TPS()))
	g.step(dt)
	return nil
}

// step retargets and advances the card animators and recomputes the cards'
// page-space rectangles for the next hit test.
func (g *Game) step(dt float32) {
	e := g.page.Engine
	a, b := e.Positions()
	locked := e.State().Animating
	g.animA.Retarget(a, locked)
	g.animB.Retarget(b, locked)
	g.animA.Update(dt)
	g.animB.Update(dt)

	ca := g.animA.Current()
	cb := g.animB.Current()
	g.cards = byZ(
		card{panel: marquee.PanelA, pos: ca, rect: CardRect(g.sections.Cards, ca)},
		card{panel: marquee.PanelB, pos: cb, rect: CardRect(g.sections.Cards, cb)},
	)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.Width, g.opts.Height
}
