package foxscape

import "github.com/vovakirdan/foxscape/internal/core"

// Game-over text positions, in field units.
const (
	titleY     = 280
	titleSize  = 48
	promptY    = 320
	promptSize = 24
)

// Render draws the current frame onto dst.
func (g *Game) Render(dst core.Surface) {
	g.drawLayers(dst)

	switch g.mode {
	case core.ModeIdle:
		g.drawFox(dst, ModeIdle, 0, g.cfg.Player.GroundY)

	case core.ModeRunning:
		p := g.player
		g.drawFox(dst, p.Mode(), g.sheet.Frame(p.Mode(), g.tick), p.Y)
		g.drawObstacles(dst)
		g.drawEffect(dst)
		g.drawCooldown(dst)

	case core.ModeGameOver:
		g.drawFox(dst, ModeDizzy, g.sheet.Frame(ModeDizzy, g.tick), g.cfg.Player.GroundY)
		g.drawObstacles(dst)
		g.drawGameOver(dst)
	}
}

// drawLayers blits each layer twice so the wrap has no seam.
func (g *Game) drawLayers(dst core.Surface) {
	w, h := g.cfg.Field.Width, g.cfg.Field.Height
	for _, l := range g.parallax.Layers() {
		dst.Blit(l.Sprite, core.RectF{}, core.NewRectF(l.X, 0, w, h))
		dst.Blit(l.Sprite, core.RectF{}, core.NewRectF(l.X+w, 0, w, h))
	}
}

func (g *Game) drawFox(dst core.Surface, m Mode, frame int, y float64) {
	dst.Blit(core.SpriteFox, g.sheet.Src(m, frame), g.sheet.Dst(y))
}

func (g *Game) drawObstacles(dst core.Surface) {
	for _, o := range g.field.Items() {
		dst.Blit(o.Kind.Sprite(), core.RectF{}, o.Rect())
	}
}

func (g *Game) drawEffect(dst core.Surface) {
	if !g.effect.Playing() {
		return
	}
	dst.Blit(core.SpriteImpact, g.effect.Src(), g.effect.Dst())
}

// drawCooldown shows the remaining cooldown as a bar that empties from the
// right.
func (g *Game) drawCooldown(dst core.Surface) {
	if !g.cooldown.Active() {
		return
	}
	hud := g.cfg.HUD
	x := g.cfg.Field.Width - hud.BarWidth - hud.BarMargin
	frame := core.NewRectF(x, hud.BarY, hud.BarWidth, hud.BarHeight)

	dst.FillRect(frame, core.ColorGray, 1)
	dst.FillRect(core.NewRectF(x, hud.BarY, hud.BarWidth*g.cooldown.Ratio(), hud.BarHeight), core.ColorGreen, 1)
	dst.StrokeRect(frame, core.ColorBlack)
}

func (g *Game) drawGameOver(dst core.Surface) {
	hud := g.cfg.HUD
	w, h := g.cfg.Field.Width, g.cfg.Field.Height

	dst.FillRect(core.NewRectF(0, 0, w, h), core.ColorBlack, hud.OverlayAlpha)
	dst.Text(w/2, titleY, titleSize, hud.Title, core.ColorWhite)
	dst.Text(w/2, promptY, promptSize, hud.Prompt, core.ColorWhite)
}
