package audio

import (
	"time"

	"github.com/vovakirdan/foxscape/internal/config"
)

// LoopWindow loops a music track between two markers. Playback is sent back
// to Start once it gets within Lead of End, so the tail never plays.
type LoopWindow struct {
	Start time.Duration
	End   time.Duration
	Lead  time.Duration
}

// NewLoopWindow reads the loop markers from config.
func NewLoopWindow(cfg config.AudioConfig) LoopWindow {
	return LoopWindow{
		Start: time.Duration(cfg.LoopStartMS) * time.Millisecond,
		End:   time.Duration(cfg.LoopEndMS) * time.Millisecond,
		Lead:  time.Duration(cfg.LoopLeadMS) * time.Millisecond,
	}
}

// Valid reports whether the window describes a usable loop.
func (w LoopWindow) Valid() bool {
	return w.Start >= 0 && w.End-w.Lead > w.Start
}

// Next returns where playback should jump to from pos, and whether it should
// jump at all.
func (w LoopWindow) Next(pos time.Duration) (time.Duration, bool) {
	if !w.Valid() {
		return pos, false
	}
	if pos >= w.End-w.Lead {
		return w.Start, true
	}
	return pos, false
}
