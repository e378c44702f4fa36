package foxscape

import (
	"time"

	"github.com/vovakirdan/foxscape/internal/core"
)

// resolveCollisions tests every obstacle against the fox, newest first.
// A rolling fox smashes what it touches and scores; the smash ends the roll,
// so a second overlap in the same tick is fatal. Returns true on a fatal hit.
func (g *Game) resolveCollisions(now time.Duration) bool {
	hitbox := g.player.Hitbox()

	for i := g.field.Len() - 1; i >= 0; i-- {
		o := g.field.At(i)
		if !core.DetectCollision(hitbox, o.Rect()) {
			continue
		}

		if !g.player.Rolling() {
			g.endRun(now)
			return true
		}

		o.Scored = true
		g.score.Add()
		cx, cy := o.Rect().Center()
		g.field.Remove(i)

		g.player.EndRollOnImpact()
		g.cooldown.Start(g.cfg.Roll.FullCooldown)
		g.effect.Trigger(cx, cy, now)
		g.emit(core.CueRollStop, core.CueImpact)
		g.logger.Debug("rolled through obstacle", "score", g.score.Current)
	}
	return false
}

// scorePassed awards one point for each obstacle whose trailing edge has
// cleared the fox's leading edge. The Scored flag makes it once per obstacle.
func (g *Game) scorePassed() {
	hitbox := g.player.Hitbox()
	inset := g.cfg.Player.PassInset

	for i := range g.field.Items() {
		o := g.field.At(i)
		if !o.Scored && o.X+o.W-inset < hitbox.X {
			o.Scored = true
			g.score.Add()
		}
	}
}
