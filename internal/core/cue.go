package core

// Cue is a fire-and-forget audio trigger emitted by a tick.
type Cue int

const (
	CueJump Cue = iota
	CueRollStart
	CueRollStop
	CueFall
	CueImpact
	CueMusicStart
	CueMusicStop
)

var cueNames = [...]string{
	CueJump:       "jump",
	CueRollStart:  "roll_start",
	CueRollStop:   "roll_stop",
	CueFall:       "fall",
	CueImpact:     "impact",
	CueMusicStart: "music_start",
	CueMusicStop:  "music_stop",
}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}
