package audio

import (
	"math"
	"time"

	"github.com/vovakirdan/foxscape/internal/core"
)

// SampleRate is the rate every synthesized buffer uses.
const SampleRate = 48000

// bytesPerFrame is one 16-bit little-endian stereo sample.
const bytesPerFrame = 4

// Tone is a short synthesized effect: a sine sweep from Freq to Slide with
// a linear fade out.
type Tone struct {
	Freq     float64
	Slide    float64 // end frequency; 0 keeps Freq
	Duration time.Duration
	Volume   float64
	Noise    bool // white noise instead of a sine
}

// CueTones maps each effect cue to its sound. Music cues are handled by the
// track player instead.
var CueTones = map[core.Cue]Tone{
	core.CueJump:      {Freq: 440, Slide: 880, Duration: 120 * time.Millisecond, Volume: 0.3},
	core.CueRollStart: {Freq: 220, Slide: 110, Duration: 250 * time.Millisecond, Volume: 0.25},
	core.CueFall:      {Freq: 660, Slide: 330, Duration: 180 * time.Millisecond, Volume: 0.2},
	core.CueImpact:    {Duration: 150 * time.Millisecond, Volume: 0.35, Noise: true},
}

// PCM renders t into 16-bit little-endian stereo frames.
func (t Tone) PCM() []byte {
	n := frames(t.Duration)
	out := make([]byte, n*bytesPerFrame)

	end := t.Slide
	if end == 0 {
		end = t.Freq
	}
	// Deterministic noise: an LCG keeps the buffers identical between runs.
	seed := uint32(0x9e3779b9)

	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		var v float64
		if t.Noise {
			seed = seed*1664525 + 1013904223
			v = float64(seed)/float64(math.MaxUint32)*2 - 1
		} else {
			freq := t.Freq + (end-t.Freq)*p
			phase += 2 * math.Pi * freq / SampleRate
			v = math.Sin(phase)
		}
		putFrame(out, i, v*t.Volume*(1-p))
	}
	return out
}

// Note is one step of the background melody. A zero Freq is a rest.
type Note struct {
	Freq  float64
	Beats float64
}

// Melody is the looping background track.
var Melody = []Note{
	{392, 1}, {440, 1}, {494, 1}, {587, 2}, {494, 1}, {440, 1}, {392, 2},
	{330, 1}, {392, 1}, {440, 2}, {0, 1}, {440, 1}, {494, 1}, {523, 2},
	{587, 1}, {523, 1}, {494, 1}, {440, 1}, {392, 4},
}

// Track renders melody at bpm, repeated until the buffer is length long.
func Track(melody []Note, bpm float64, length time.Duration, volume float64) []byte {
	n := frames(length)
	out := make([]byte, n*bytesPerFrame)
	if len(melody) == 0 || bpm <= 0 {
		return out
	}

	beat := 60 / bpm * SampleRate
	i, note := 0, 0
	for i < n {
		nt := melody[note%len(melody)]
		dur := int(nt.Beats * beat)
		if dur <= 0 {
			dur = 1
		}
		for j := 0; j < dur && i < n; j, i = j+1, i+1 {
			if nt.Freq == 0 {
				continue
			}
			env := 1.0
			if rel := dur - j; rel < SampleRate/50 {
				env = float64(rel) / (SampleRate / 50)
			}
			v := math.Sin(2*math.Pi*nt.Freq*float64(j)/SampleRate) * 0.7
			v += math.Sin(2*math.Pi*nt.Freq/2*float64(j)/SampleRate) * 0.3
			putFrame(out, i, v*volume*env)
		}
		note++
	}
	return out
}

// ByteOffset converts a playback position into a byte offset in a PCM
// buffer produced by this package.
func ByteOffset(pos time.Duration) int64 {
	return int64(frames(pos)) * bytesPerFrame
}

func frames(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d.Seconds() * SampleRate)
}

func putFrame(buf []byte, i int, v float64) {
	v = core.ClampF(v, -1, 1)
	s := int16(v * math.MaxInt16)
	o := i * bytesPerFrame
	buf[o] = byte(s)
	buf[o+1] = byte(s >> 8)
	buf[o+2] = byte(s)
	buf[o+3] = byte(s >> 8)
}
