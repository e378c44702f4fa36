package foxscape

import (
	"time"

	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
)

// Effect is the short impact animation played where a roll smashed an
// obstacle.
type Effect struct {
	cfg     config.EffectConfig
	x, y    float64
	frame   int
	started time.Duration
	playing bool
}

// NewEffect creates an idle effect.
func NewEffect(cfg config.EffectConfig) Effect {
	return Effect{cfg: cfg}
}

// Trigger restarts the animation centered on (cx, cy).
func (e *Effect) Trigger(cx, cy float64, now time.Duration) {
	e.x = cx - e.cfg.FrameW/2
	e.y = cy - e.cfg.FrameH/2
	e.frame = 0
	e.started = now
	e.playing = true
}

// Advance picks the frame for now and stops after the last one.
func (e *Effect) Advance(now time.Duration) {
	if !e.playing {
		return
	}
	per := time.Duration(e.cfg.FrameMS) * time.Millisecond
	if per <= 0 {
		e.playing = false
		return
	}
	e.frame = int((now - e.started) / per)
	if e.frame >= e.cfg.Frames {
		e.frame = 0
		e.playing = false
	}
}

// Playing reports whether the effect should be drawn.
func (e *Effect) Playing() bool {
	return e.playing
}

// Frame returns the current frame index.
func (e *Effect) Frame() int {
	return e.frame
}

// Src returns the sheet rectangle of the current frame.
func (e *Effect) Src() core.RectF {
	return core.NewRectF(float64(e.frame)*e.cfg.FrameW, 0, e.cfg.FrameW, e.cfg.FrameH)
}

// Dst returns where the effect is drawn.
func (e *Effect) Dst() core.RectF {
	return core.NewRectF(e.x, e.y, e.cfg.FrameW, e.cfg.FrameH)
}

// Reset stops the effect.
func (e *Effect) Reset() {
	e.playing = false
	e.frame = 0
}
