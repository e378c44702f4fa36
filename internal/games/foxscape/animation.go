package foxscape

import (
	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
)

// Sheet locates animation frames on the fox sprite sheet: one row per Mode,
// frames laid out left to right.
type Sheet struct {
	frameW, frameH float64
	scale          float64
	slowness       int
	counts         []int
}

// NewSheet builds the frame table from the player config.
func NewSheet(cfg config.PlayerConfig) Sheet {
	return Sheet{
		frameW:   cfg.FrameW,
		frameH:   cfg.FrameH,
		scale:    cfg.Scale,
		slowness: cfg.Slowness,
		counts:   cfg.Frames.Counts(),
	}
}

// FrameCount returns the number of frames of mode.
func (s Sheet) FrameCount(m Mode) int {
	if m < 0 || int(m) >= len(s.counts) || s.counts[m] <= 0 {
		return 1
	}
	return s.counts[m]
}

// Frame returns the frame index shown at tick: the tick counter slowed down
// by the slowness divisor, wrapped by the row's frame count.
func (s Sheet) Frame(m Mode, tick int) int {
	slow := s.slowness
	if slow <= 0 {
		slow = 1
	}
	if tick < 0 {
		tick = 0
	}
	return (tick / slow) % s.FrameCount(m)
}

// Src returns the sheet rectangle of one frame.
func (s Sheet) Src(m Mode, frame int) core.RectF {
	return core.NewRectF(float64(frame)*s.frameW, float64(m)*s.frameH, s.frameW, s.frameH)
}

// Dst returns where the fox is drawn when its sprite top is at y.
func (s Sheet) Dst(y float64) core.RectF {
	return core.NewRectF(0, y, s.frameW*s.scale, s.frameH*s.scale)
}
