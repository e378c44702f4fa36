// Package audio turns game cues into sound. Games only emit core.Cue values;
// a Sink decides what to do with them.
package audio

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/foxscape/internal/core"
)

// Sink receives the cues fired during a tick, in order.
type Sink interface {
	Play(cue core.Cue)
}

// Dispatch sends every cue to sink. A nil sink drops them.
func Dispatch(sink Sink, cues []core.Cue) {
	if sink == nil {
		return
	}
	for _, c := range cues {
		sink.Play(c)
	}
}

// LogSink writes cues to a logger at debug level. The terminal frontend
// uses it since it has no audio device.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink logging to logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Play(cue core.Cue) {
	if s.logger == nil {
		return
	}
	s.logger.Debug("cue", "name", cue.String())
}

// Recorder keeps every cue it receives.
type Recorder struct {
	mu   sync.Mutex
	cues []core.Cue
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Play(cue core.Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, cue)
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []core.Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Cue, len(r.cues))
	copy(out, r.cues)
	return out
}

// Count returns how many times cue was played.
func (r *Recorder) Count(cue core.Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.cues {
		if c == cue {
			n++
		}
	}
	return n
}

// Reset forgets every recorded cue.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = r.cues[:0]
}

// Multi fans cues out to several sinks.
type Multi []Sink

func (m Multi) Play(cue core.Cue) {
	for _, s := range m {
		if s != nil {
			s.Play(cue)
		}
	}
}

// Update forwards the per-frame call to the sinks that want one.
func (m Multi) Update() {
	for _, s := range m {
		if u, ok := s.(interface{ Update() }); ok {
			u.Update()
		}
	}
}
