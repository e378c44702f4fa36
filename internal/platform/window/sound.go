package window

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	foxaudio "github.com/vovakirdan/foxscape/internal/audio"
	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
)

const (
	musicBPM    = 132
	musicVolume = 0.18
)

// Sound plays cues through the ebiten audio context. Effects are short
// synthesized tones; the music is a synthesized track looped between the
// configured markers.
type Sound struct {
	ctx     *audio.Context
	effects map[core.Cue]*audio.Player
	music   *audio.Player
	loop    foxaudio.LoopWindow
	logger  *log.Logger
}

var _ foxaudio.Sink = (*Sound)(nil)

// NewSound renders every buffer and creates the players. Only one audio
// context may exist per process.
func NewSound(cfg config.AudioConfig, logger *log.Logger) (*Sound, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Sound{
		ctx:     audio.NewContext(foxaudio.SampleRate),
		effects: make(map[core.Cue]*audio.Player),
		loop:    foxaudio.NewLoopWindow(cfg),
		logger:  logger,
	}

	for cue, tone := range foxaudio.CueTones {
		p, err := s.player(tone.PCM())
		if err != nil {
			return nil, fmt.Errorf("window: cannot create %s player: %w", cue, err)
		}
		s.effects[cue] = p
	}

	length := s.loop.End + time.Second
	if !s.loop.Valid() {
		length = 20 * time.Second
	}
	music, err := s.player(foxaudio.Track(foxaudio.Melody, musicBPM, length, musicVolume))
	if err != nil {
		return nil, fmt.Errorf("window: cannot create music player: %w", err)
	}
	s.music = music
	return s, nil
}

func (s *Sound) player(pcm []byte) (*audio.Player, error) {
	return audio.NewPlayer(s.ctx, bytes.NewReader(pcm))
}

// Play implements audio.Sink.
func (s *Sound) Play(cue core.Cue) {
	switch cue {
	case core.CueMusicStart:
		s.restart(s.music)
	case core.CueMusicStop:
		s.music.Pause()
	case core.CueRollStop:
		if p := s.effects[core.CueRollStart]; p != nil {
			p.Pause()
		}
	default:
		if p, ok := s.effects[cue]; ok {
			s.restart(p)
		}
	}
}

func (s *Sound) restart(p *audio.Player) {
	if err := p.Rewind(); err != nil {
		s.logger.Warn("rewind failed", "err", err)
		return
	}
	p.Play()
}

// Update keeps the music inside its loop window. Call once per frame.
func (s *Sound) Update() {
	if !s.music.IsPlaying() {
		return
	}
	if next, jump := s.loop.Next(s.music.Position()); jump {
		if err := s.music.SetPosition(next); err != nil {
			s.logger.Warn("music loop failed", "err", err)
		}
	}
}

// Close releases every player.
func (s *Sound) Close() error {
	for _, p := range s.effects {
		p.Close()
	}
	return s.music.Close()
}
