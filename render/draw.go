package render

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/marquee"
)

var (
	background   = color.RGBA{0x1e, 0x29, 0x3b, 0xff}
	sectionColor = color.RGBA{0x0f, 0x17, 0x2a, 0xff}
	videoColor   = color.RGBA{0x33, 0x41, 0x55, 0xff}
	gradientTint = color.RGBA{0xf5, 0x9e, 0x0b, 0xff}
	cardColors   = [2]color.RGBA{
		marquee.PanelA: {0x11, 0x18, 0x27, 0xff},
		marquee.PanelB: {0x1f, 0x29, 0x37, 0xff},
	}
	cardBorder = color.RGBA{0xfb, 0xbf, 0x24, 0xff}
)

// whitePixel is scaled and tinted to draw solid rectangles.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// fillRect draws a solid rectangle in screen space.
func fillRect(dst *ebiten.Image, r marquee.Rect, clr color.Color, alpha float64) {
	if alpha <= 0 || r.Width <= 0 || r.Height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(whitePixel, &op)
}

// toScreen converts a page-space rectangle to screen space.
func (g *Game) toScreen(r marquee.Rect) marquee.Rect {
	r.Y -= g.viewport.ScrollY
	return r
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := g.page.Snapshot()

	fillRect(screen, g.toScreen(g.sections.Insight), sectionColor, 1)
	if snap.VideoVisible {
		fillRect(screen, g.toScreen(inset(g.sections.Showcase, 0.15)), videoColor, 1)
	}
	if snap.GradientVisible {
		fillRect(screen, g.toScreen(g.sections.Demo), gradientTint, 0.15)
	}

	for _, c := range g.cards {
		g.drawCard(screen, c, snap)
	}

	hero := g.toScreen(g.sections.Hero)
	ebitenutil.DebugPrintAt(screen, "Scroll down", int(hero.X)+16, int(hero.Y+hero.Height)-24)
	if snap.SearchAnimate {
		demo := g.toScreen(g.sections.Demo)
		ebitenutil.DebugPrintAt(screen, "Searching...", int(demo.X)+16, int(demo.Y)+16)
	}
	if snap.RecAnimate {
		demo := g.toScreen(g.sections.Demo)
		ebitenutil.DebugPrintAt(screen, "Recommendations ready", int(demo.X)+16, int(demo.Y)+32)
	}

	if g.opts.Debug {
		g.drawOverlay(screen, snap)
	}
}

func (g *Game) drawCard(screen *ebiten.Image, c card, snap marquee.Snapshot) {
	if c.pos.Opacity <= 0 {
		return
	}
	r := g.toScreen(c.rect)
	fillRect(screen, inset(r, -0.01), cardBorder, c.pos.Opacity*0.6)
	fillRect(screen, r, cardColors[c.panel], c.pos.Opacity)

	x, y := int(r.X)+12, int(r.Y)+12
	switch c.panel {
	case marquee.PanelA:
		ebitenutil.DebugPrintAt(screen, "New songs discovered", x, y)
		if snap.CountersVisible {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", snap.Total), x, y+20)
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("+%d in the last hour", snap.Hourly), x, y+36)
		}
	case marquee.PanelB:
		// The card fades in with the totals; its text waits for the trending stage.
		if !snap.TrendingVisible {
			return
		}
		var b strings.Builder
		b.WriteString("Trending genres\n")
		for i, genre := range snap.Trending {
			fmt.Fprintf(&b, "%d. %s\n", i+1, genre)
		}
		ebitenutil.DebugPrintAt(screen, b.String(), x, y)
	}
}

// drawOverlay prints frame statistics in the top-left corner.
func (g *Game) drawOverlay(screen *ebiten.Image, snap marquee.Snapshot) {
	fillRect(screen, marquee.Rect{Width: 220, Height: 68}, color.Black, 0.5)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f TPS: %.1f\nframe %d at %v\nswapped=%v locked=%v\nhover a=%v b=%v",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		snap.Frame, snap.At.Round(time.Millisecond),
		snap.State.Swapped, snap.State.Animating,
		snap.State.HoverA, snap.State.HoverB))
}

// inset shrinks r by frac of its size on every side. Negative values grow it.
func inset(r marquee.Rect, frac float64) marquee.Rect {
	dx, dy := r.Width*frac, r.Height*frac
	return marquee.Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width - 2*dx, Height: r.Height - 2*dy}
}
