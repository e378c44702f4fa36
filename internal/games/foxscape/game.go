// Package foxscape implements a side-scrolling runner: a fox jumps over or
// rolls through obstacles while a parallax background scrolls past.
//
// The package holds no platform code. Time comes from a core.Clock, the best
// score lives in a core.ScalarStore, drawing goes to a core.Surface and
// sounds leave as core.Cue values in each StepResult.
package foxscape

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
	"github.com/vovakirdan/foxscape/internal/registry"
)

// Registered game IDs.
const (
	GameID        = "foxscape"
	ClassicGameID = "foxscape_classic"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// ConfigPath returns the custom config path, if any.
func ConfigPath() string {
	return configPath
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back
// to the config file's settings.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game is one Foxscape session. It owns every piece of run state; nothing
// is shared between instances.
type Game struct {
	id      string
	title   string
	classic bool

	runtime core.RuntimeConfig
	cfg     config.FoxConfig
	pending *config.FoxConfig // reloaded config, applied at the next run reset
	logger  *log.Logger

	clock  core.Clock
	manual *core.ManualClock // set when the game simulates its own time
	store  core.ScalarStore
	rng    *rand.Rand

	mode       core.Mode
	player     *Player
	sheet      Sheet
	field      *ObstacleField
	sched      *Scheduler
	ramp       *config.DifficultyRamp
	cooldown   Cooldown
	parallax   *Parallax
	effect     Effect
	score      ScoreState
	tick       int
	gameOverAt time.Duration

	cues []core.Cue
}

// New creates the full game: audio cues and the speed ramp.
func New() *Game {
	return &Game{id: GameID, title: "Foxscape"}
}

// NewClassic creates the plain game: no audio cues, constant speed.
func NewClassic() *Game {
	return &Game{id: ClassicGameID, title: "Foxscape Classic", classic: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// loadConfig resolves the config file, the preset and the variant.
func (g *Game) loadConfig() (config.FoxConfig, error) {
	cfg, err := config.LoadFox(configPath)
	if err != nil {
		cfg = config.DefaultFoxConfig()
	}

	config.ApplyFoxPreset(&cfg, difficultyPreset)

	if g.classic {
		v := config.ClassicVariant()
		if cfg.Variant.Scaling != "" {
			v.Scaling = cfg.Variant.Scaling
		}
		cfg.Variant = v
	}
	return cfg, err
}

// Reset initializes the game for a new session: config, clock, store, RNG
// and spawn schedule. The game starts on the idle screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = logger.With("game", g.id)

	cfg, err := g.loadConfig()
	if err != nil {
		g.logger.Warn("config unusable, using defaults", "path", configPath, "err", err)
	}
	g.pending = nil

	g.clock = runtime.Clock
	g.manual = nil
	if g.clock == nil {
		g.manual = core.NewManualClock(0)
		g.clock = g.manual
	}

	g.store = runtime.Store
	if g.store == nil {
		g.store = core.NewMemoryStore()
	}

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.apply(cfg)
	g.sched = NewScheduler(cfg.Schedule, g.rng, g.clock.Now())

	best, err := loadBest(g.store, BestScoreKey(g.id))
	if err != nil {
		g.logger.Warn("could not read best score", "err", err)
	}
	g.score = ScoreState{Best: best}

	g.mode = core.ModeIdle
	g.player = NewPlayer(cfg)
	g.resetRun()
	g.player.mode = ModeIdle
	g.cues = nil
}

// apply installs cfg into every component. Run state is left alone.
func (g *Game) apply(cfg config.FoxConfig) {
	g.cfg = cfg
	g.sheet = NewSheet(cfg.Player)

	if g.field == nil {
		g.field = NewObstacleField(cfg)
	} else {
		g.field.Configure(cfg)
	}
	if g.player != nil {
		g.player.Configure(cfg)
	}
	if g.sched != nil {
		g.sched.Configure(cfg.Schedule)
	}

	rampCfg := cfg.Difficulty
	rampCfg.Enabled = rampCfg.Enabled && cfg.Variant.Ramp
	g.ramp = config.NewDifficultyRamp(rampCfg)

	g.parallax = NewParallax(cfg)
	g.effect = NewEffect(cfg.Effect)
}

// Reload re-reads the config file. The new values take effect at the next
// run reset, never in the middle of a run.
func (g *Game) Reload() error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	g.pending = &cfg
	g.logger.Info("config reloaded", "path", configPath)
	return nil
}

// resetRun clears everything scoped to one run. The spawn schedule and the
// best score survive.
func (g *Game) resetRun() {
	if g.pending != nil {
		g.apply(*g.pending)
		g.pending = nil
	}
	g.player.Reset()
	g.field.Clear()
	g.cooldown.Reset()
	g.effect.Reset()
	g.ramp.Reset()
	g.score.Current = 0
	g.tick = 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.cues = nil
	if g.manual != nil {
		g.manual.Advance(g.runtime.TickInterval())
	}
	now := g.clock.Now()
	ended := false

	switch g.mode {
	case core.ModeIdle:
		if in.Has(core.ActionStart) {
			g.start()
		}
	case core.ModeRunning:
		ended = g.stepRunning(in, now)
	case core.ModeGameOver:
		g.stepGameOver(in, now)
	}

	return core.StepResult{State: g.State(), Cues: g.cues, RunEnded: ended}
}

// start leaves the idle screen. It happens once per session.
func (g *Game) start() {
	g.resetRun()
	g.mode = core.ModeRunning
	g.emit(core.CueMusicStart)
	g.logger.Info("run started", "best", g.score.Best)
}

// stepRunning is one gameplay tick. Returns true if the run ended.
func (g *Game) stepRunning(in core.InputFrame, now time.Duration) bool {
	g.handleInput(in, now)

	rate := g.ramp.Advance()
	g.parallax.Scroll(rate, false)

	if !g.player.Rolling() && g.player.Integrate() {
		g.emit(core.CueFall)
	}

	g.field.Move(g.multiplier(rate))
	g.tick++

	if g.resolveCollisions(now) {
		return true
	}

	if kind, ok := g.sched.Poll(now); ok {
		o := g.field.Spawn(kind)
		g.logger.Debug("spawned obstacle", "kind", kind, "x", o.X)
	}
	g.effect.Advance(now)
	if g.cooldown.Active() {
		g.cooldown.Deplete(g.cfg.Roll.Depletion * g.multiplier(rate))
	}
	g.scorePassed()

	// The roll timer fires last so a natural expiry leaves a full cooldown.
	if g.player.ExpireRoll(now) {
		g.cooldown.Start(g.cfg.Roll.FullCooldown)
	}
	return false
}

// handleInput applies jump before roll, so both in one tick means a jump.
func (g *Game) handleInput(in core.InputFrame, now time.Duration) {
	if in.Has(core.ActionJump) {
		if g.player.CancelRoll() {
			g.cooldown.Start(g.cfg.Roll.CancelCooldown)
			g.emit(core.CueRollStop)
		}
		if g.player.Jump() {
			g.emit(core.CueJump)
		}
	}

	if in.Has(core.ActionRoll) && !g.cooldown.Active() {
		if g.player.Roll(now) {
			g.emit(core.CueRollStart)
		}
	}
}

// multiplier is the world speed factor: faster while the fox is in the air,
// scaled by the difficulty ramp.
func (g *Game) multiplier(rate float64) float64 {
	m := g.cfg.Physics.GroundMultiplier
	if g.player.Mode().Airborne() {
		m = g.cfg.Physics.AirborneMultiplier
	}
	return core.Finite(m * rate)
}

// endRun handles a fatal hit.
func (g *Game) endRun(now time.Duration) {
	g.score.Last = g.score.Current
	if g.score.Promote() {
		g.persistBest()
	}
	g.logger.Info("game over", "score", g.score.Current, "best", g.score.Best)
	g.score.Current = 0

	g.mode = core.ModeGameOver
	g.gameOverAt = now
	g.player.Knockout()
	g.emit(core.CueMusicStop)
}

// stepGameOver waits for a restart while the fox stays dizzy.
func (g *Game) stepGameOver(in core.InputFrame, now time.Duration) {
	if in.Has(core.ActionJump) || in.Has(core.ActionRestart) {
		if now-g.gameOverAt >= g.cfg.RestartDelay() {
			g.restart()
			return
		}
	}
	g.tick++
	g.parallax.Scroll(g.ramp.Rate(), true)
}

// restart begins a new run after game over.
func (g *Game) restart() {
	if g.score.Promote() {
		g.persistBest()
	}
	g.resetRun()
	g.mode = core.ModeRunning
	g.emit(core.CueMusicStart)
	g.logger.Info("restart", "best", g.score.Best)
}

func (g *Game) persistBest() {
	if err := saveBest(g.store, BestScoreKey(g.id), g.score.Best); err != nil {
		g.logger.Warn("could not save best score", "best", g.score.Best, "err", err)
	}
}

// emit queues cues for this tick. Builds without audio stay silent.
func (g *Game) emit(cues ...core.Cue) {
	if !g.cfg.Variant.Audio {
		return
	}
	g.cues = append(g.cues, cues...)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Mode:      g.mode,
		Score:     g.score.Current,
		HighScore: g.score.Best,
		LastScore: g.score.Last,
		GameOver:  g.mode == core.ModeGameOver,
		Cooldown:  g.cooldown.Ratio(),
		Ticks:     g.tick,
	}
}

// Config returns the active configuration.
func (g *Game) Config() config.FoxConfig {
	return g.cfg
}

// Player exposes the fox for frontends and tests.
func (g *Game) Player() *Player {
	return g.player
}

// Obstacles returns the active obstacles, oldest first.
func (g *Game) Obstacles() []Obstacle {
	return g.field.Items()
}

// Rate returns the current difficulty multiplier.
func (g *Game) Rate() float64 {
	return g.ramp.Rate()
}

// Field returns the logical field size.
func (g *Game) Field() (float64, float64) {
	return g.cfg.Field.Width, g.cfg.Field.Height
}

// ScaleMode returns how frontends should fit the field to their output.
func (g *Game) ScaleMode() core.ScaleMode {
	mode, err := core.ParseScaleMode(g.cfg.Variant.Scaling)
	if err != nil {
		return core.ScaleStretch
	}
	return mode
}

// AudioEnabled reports whether this build plays sound.
func (g *Game) AudioEnabled() bool {
	return g.cfg.Variant.Audio
}

// Register the games with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(ClassicGameID, func() registry.Game {
		return NewClassic()
	})
}
