// Package window runs games in a desktop window with Ebitengine. Sprites are
// drawn as placeholder shapes and sounds are synthesized.
package window

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	foxaudio "github.com/vovakirdan/foxscape/internal/audio"
	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
	"github.com/vovakirdan/foxscape/internal/registry"
)

// ScoreRecorder stores finished runs.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}

type reloader interface {
	Reload() error
}

type fielded interface {
	Field() (float64, float64)
	ScaleMode() core.ScaleMode
}

// updater is a sink that needs a call every frame, such as a looping track.
type updater interface {
	Update()
}

// Options holds the collaborators of a window session. All are optional.
type Options struct {
	History ScoreRecorder
	Sink    foxaudio.Sink
	Watcher *config.Watcher
	Logger  *log.Logger
}

// Game adapts a registry.Game to ebiten.Game.
type Game struct {
	game    registry.Game
	opts    Options
	logger  *log.Logger
	surface *Surface
	state   core.GameState
	status  string
	statusT time.Time
}

// NewGame resets game with cfg and wraps it for ebiten.
func NewGame(game registry.Game, cfg core.RuntimeConfig, opts Options) *Game {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Clock == nil {
		cfg.Clock = core.NewSystemClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(cfg)
	return &Game{
		game:    game,
		opts:    opts,
		logger:  logger,
		surface: NewSurface(),
		state:   game.State(),
	}
}

// field returns the logical size and scaling of the wrapped game.
func (g *Game) field() (float64, float64, core.ScaleMode) {
	if f, ok := g.game.(fielded); ok {
		w, h := f.Field()
		return w, h, f.ScaleMode()
	}
	return 600, 600, core.ScaleFit
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.pollConfig()

	in := pollInput()
	if in.Has(core.ActionQuit) {
		return ebiten.Termination
	}
	g.step(in)

	if u, ok := g.opts.Sink.(updater); ok {
		u.Update()
	}
	return nil
}

// step advances the game one tick and forwards its side effects.
func (g *Game) step(in core.InputFrame) {
	result := g.game.Step(in)
	g.state = result.State
	foxaudio.Dispatch(g.opts.Sink, result.Cues)

	if result.RunEnded && g.opts.History != nil {
		if _, err := g.opts.History.SaveScore(g.game.ID(), result.State.LastScore); err != nil {
			g.logger.Warn("could not record run", "game", g.game.ID(), "err", err)
		}
	}
}

// pollConfig applies a pending config change without blocking.
func (g *Game) pollConfig() {
	w := g.opts.Watcher
	if w == nil {
		return
	}
	select {
	case path, ok := <-w.Events:
		if !ok {
			g.opts.Watcher = nil
			return
		}
		r, isReloader := g.game.(reloader)
		if !isReloader {
			return
		}
		if err := r.Reload(); err != nil {
			g.logger.Warn("config reload failed", "path", path, "err", err)
			g.setStatus("config error")
			return
		}
		g.setStatus("config reloaded")
	case err, ok := <-w.Errors:
		if ok {
			g.logger.Warn("config watcher", "err", err)
		}
	default:
	}
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusT = time.Now()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	g.game.Render(g.surface)

	hud := fmt.Sprintf("score %d  best %d", g.state.Score, g.state.HighScore)
	if g.state.Mode == core.ModeIdle {
		hud = fmt.Sprintf("best %d  click or press enter to start", g.state.HighScore)
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 4)
	if g.status != "" && time.Since(g.statusT) < 3*time.Second {
		ebitenutil.DebugPrintAt(screen, g.status, 8, 20)
	}
}

// Layout implements ebiten.Game. Fit mode lets ebiten letterbox the fixed
// field; stretch mode draws at the window size and scales each axis.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h, mode := g.field()
	sx, sy, lw, lh := layout(w, h, mode, outsideWidth, outsideHeight)
	g.surface.SX, g.surface.SY = sx, sy
	return lw, lh
}

// layout computes the surface scale and the logical screen size.
func layout(fieldW, fieldH float64, mode core.ScaleMode, outW, outH int) (sx, sy float64, w, h int) {
	if mode == core.ScaleStretch && outW > 0 && outH > 0 && fieldW > 0 && fieldH > 0 {
		return float64(outW) / fieldW, float64(outH) / fieldH, outW, outH
	}
	return 1, 1, int(fieldW), int(fieldH)
}

// SetSink replaces the cue sink. Sounds are usually created after the game
// has loaded its config.
func (g *Game) SetSink(sink foxaudio.Sink) {
	g.opts.Sink = sink
}

// Run opens a window for game and blocks until it is closed.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	return RunGame(NewGame(game, cfg, opts), cfg.TickRate)
}

// RunGame opens the window for an already reset game.
func RunGame(g *Game, tickRate int) error {
	w, h, _ := g.field()
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowTitle(g.game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if tickRate > 0 {
		ebiten.SetTPS(tickRate)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
