package window

import (
	"errors"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	foxaudio "github.com/vovakirdan/foxscape/internal/audio"
	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
)

type stubGame struct {
	frames    []core.InputFrame
	state     core.GameState
	endNext   bool
	cues      []core.Cue
	reloads   int
	reloadErr error
	mode      core.ScaleMode
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(cfg core.RuntimeConfig) {}
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Render(dst core.Surface) {}
func (g *stubGame) Field() (float64, float64) { return 600, 600 }
func (g *stubGame) ScaleMode() core.ScaleMode { return g.mode }

func (g *stubGame) Reload() error {
	g.reloads++
	return g.reloadErr
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	res := core.StepResult{State: g.state, Cues: g.cues}
	if g.endNext {
		g.endNext = false
		g.state.Mode = core.ModeGameOver
		g.state.LastScore = 17
		res.State = g.state
		res.RunEnded = true
	}
	return res
}

type fakeHistory struct {
	scores []int
}

func (h *fakeHistory) SaveScore(gameID string, score int) (int64, error) {
	h.scores = append(h.scores, score)
	return int64(len(h.scores)), nil
}

func TestFrameFrom(t *testing.T) {
	tests := []struct {
		name    string
		keys    []ebiten.Key
		clicked bool
		want    []core.Action
	}{
		{"nothing", nil, false, nil},
		{"click starts", nil, true, []core.Action{core.ActionStart}},
		{"enter starts", []ebiten.Key{ebiten.KeyEnter}, false, []core.Action{core.ActionStart}},
		{"space jumps", []ebiten.Key{ebiten.KeySpace}, false, []core.Action{core.ActionJump}},
		{"p rolls", []ebiten.Key{ebiten.KeyP}, false, []core.Action{core.ActionRoll}},
		{"jump and roll", []ebiten.Key{ebiten.KeySpace, ebiten.KeyP}, false, []core.Action{core.ActionJump, core.ActionRoll}},
		{"r restarts", []ebiten.Key{ebiten.KeyR}, false, []core.Action{core.ActionRestart}},
		{"escape quits", []ebiten.Key{ebiten.KeyEscape}, false, []core.Action{core.ActionQuit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pressed := make(map[ebiten.Key]bool)
			for _, k := range tt.keys {
				pressed[k] = true
			}
			frame := frameFrom(func(k ebiten.Key) bool { return pressed[k] }, tt.clicked)

			if len(frame.Actions) != len(tt.want) {
				t.Fatalf("frame = %v, want %v", frame.Actions, tt.want)
			}
			for _, a := range tt.want {
				if !frame.Has(a) {
					t.Errorf("frame missing %v", a)
				}
			}
		})
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name   string
		mode   core.ScaleMode
		outW   int
		outH   int
		sx, sy float64
		w, h   int
	}{
		{"fit keeps field", core.ScaleFit, 1200, 900, 1, 1, 600, 600},
		{"stretch scales axes", core.ScaleStretch, 1200, 900, 2, 1.5, 1200, 900},
		{"stretch before first size", core.ScaleStretch, 0, 0, 1, 1, 600, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy, w, h := layout(600, 600, tt.mode, tt.outW, tt.outH)
			if sx != tt.sx || sy != tt.sy || w != tt.w || h != tt.h {
				t.Errorf("layout = %v %v %d %d, want %v %v %d %d", sx, sy, w, h, tt.sx, tt.sy, tt.w, tt.h)
			}
		})
	}
}

func TestLayoutUpdatesSurface(t *testing.T) {
	g := NewGame(&stubGame{mode: core.ScaleStretch}, core.DefaultConfig(), Options{})
	g.Layout(300, 1200)
	if g.surface.SX != 0.5 || g.surface.SY != 2 {
		t.Errorf("surface scale = %v, %v", g.surface.SX, g.surface.SY)
	}
}

func TestTextOrigin(t *testing.T) {
	x, y := textOrigin(300, 280, "Game Over")
	if x != 300-9*glyphW/2 || y != 280-glyphH {
		t.Errorf("textOrigin = %d, %d", x, y)
	}
}

func TestRGBAAlpha(t *testing.T) {
	c, ok := rgba(core.ColorBlack, 0.5).(color.NRGBA)
	if !ok {
		t.Fatal("rgba did not return NRGBA")
	}
	if c.A != 127 || c.R != 0 {
		t.Errorf("rgba = %+v", c)
	}
	if c := rgba(core.ColorWhite, 2).(color.NRGBA); c.A != 255 {
		t.Errorf("alpha not clamped: %d", c.A)
	}
}

func TestSurfaceWithoutTarget(t *testing.T) {
	s := NewSurface()
	s.Blit(core.SpriteFox, core.RectF{}, core.NewRectF(0, 0, 10, 10))
	s.FillRect(core.NewRectF(0, 0, 10, 10), core.ColorBlack, 1)
	s.StrokeRect(core.NewRectF(0, 0, 10, 10), core.ColorBlack)
	s.Text(0, 0, 12, "x", core.ColorWhite)
}

func TestStepForwardsCuesAndRuns(t *testing.T) {
	game := &stubGame{endNext: true, cues: []core.Cue{core.CueImpact, core.CueMusicStop}}
	rec := foxaudio.NewRecorder()
	h := &fakeHistory{}
	g := NewGame(game, core.DefaultConfig(), Options{Sink: rec, History: h})

	g.step(core.FrameOf(core.ActionJump))

	if len(game.frames) != 1 || !game.frames[0].Has(core.ActionJump) {
		t.Errorf("frames = %v", game.frames)
	}
	if rec.Count(core.CueImpact) != 1 || rec.Count(core.CueMusicStop) != 1 {
		t.Errorf("cues = %v", rec.Cues())
	}
	if len(h.scores) != 1 || h.scores[0] != 17 {
		t.Errorf("history = %v", h.scores)
	}
	if g.state.Mode != core.ModeGameOver {
		t.Errorf("state = %v", g.state.Mode)
	}
}

func TestPollConfig(t *testing.T) {
	game := &stubGame{}
	w := &config.Watcher{Events: make(chan string, 1), Errors: make(chan error, 1)}
	g := NewGame(game, core.DefaultConfig(), Options{Watcher: w})

	g.pollConfig()
	if game.reloads != 0 {
		t.Fatal("reloaded without an event")
	}

	w.Events <- "foxscape.yaml"
	g.pollConfig()
	if game.reloads != 1 || g.status != "config reloaded" {
		t.Errorf("reloads = %d, status = %q", game.reloads, g.status)
	}

	game.reloadErr = errors.New("bad yaml")
	w.Events <- "foxscape.yaml"
	g.pollConfig()
	if g.status != "config error" {
		t.Errorf("status = %q", g.status)
	}

	close(w.Events)
	g.pollConfig()
	if g.opts.Watcher != nil {
		t.Error("closed watcher still polled")
	}
}
