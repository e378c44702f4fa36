package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/foxscape/internal/audio"
	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
	"github.com/vovakirdan/foxscape/internal/registry"
)

// chromeRows is the number of rows used by the HUD line and the help footer.
const chromeRows = 2

// ScoreRecorder stores finished runs.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}

// reloader is implemented by games that can re-read their config file.
type reloader interface {
	Reload() error
}

// fielded is implemented by games with a logical field larger than the
// terminal, which must be scaled to fit.
type fielded interface {
	Field() (float64, float64)
	ScaleMode() core.ScaleMode
}

// Options holds the collaborators of a terminal session. All are optional.
type Options struct {
	History ScoreRecorder
	Sink    audio.Sink
	Watcher *config.Watcher
	Logger  *log.Logger
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	raster     *core.Raster
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string // last platform message shown in the HUD
	quitting   bool
}

// ConfigChangedMsg is sent when the watched config file changes.
type ConfigChangedMsg struct {
	Path string
}

// configErrMsg carries a watcher failure.
type configErrMsg struct {
	err error
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
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

	screen := core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-chromeRows, 1))
	m := Model{
		game:       game,
		screen:     screen,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.raster = core.NewRaster(screen, m.viewport())
	m.help.Width = cfg.ScreenW
	return m
}

// viewport maps the game's field onto the current screen.
func (m Model) viewport() core.Viewport {
	w, h := float64(m.screen.Width()), float64(m.screen.Height())
	mode := core.ScaleStretch
	if f, ok := m.game.(fielded); ok {
		w, h = f.Field()
		mode = f.ScaleMode()
	}
	return core.NewViewport(w, h, m.screen.Width(), m.screen.Height(), mode)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForConfig(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if isStartClick(msg) {
			m.inputFrame.Set(core.ActionStart)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigChangedMsg:
		return m.handleConfigChange(msg)

	case configErrMsg:
		m.logger.Warn("config watcher", "err", msg.err)
		return m, waitForConfig(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize fits the field to the new terminal size. The game keeps
// running; only the mapping changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-chromeRows, 1))
	m.raster.SetViewport(m.viewport())
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	audio.Dispatch(m.opts.Sink, result.Cues)

	if result.RunEnded {
		m.recordRun(result.State.LastScore)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun appends a finished run to the history.
func (m *Model) recordRun(score int) {
	if m.opts.History == nil {
		return
	}
	if _, err := m.opts.History.SaveScore(m.game.ID(), score); err != nil {
		m.logger.Warn("could not record run", "game", m.game.ID(), "score", score, "err", err)
	}
}

// handleConfigChange asks the game to re-read its config.
func (m Model) handleConfigChange(msg ConfigChangedMsg) (tea.Model, tea.Cmd) {
	if r, ok := m.game.(reloader); ok {
		if err := r.Reload(); err != nil {
			m.status = "config error"
			m.logger.Warn("config reload failed", "path", msg.Path, "err", err)
		} else {
			m.status = "config reloaded"
		}
	}
	return m, waitForConfig(m.opts.Watcher)
}

// waitForConfig blocks until the watcher reports a change or an error.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return ConfigChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrMsg{err: err}
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".foxscape", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.status = "saved " + filepath.Base(path)
}

// draw renders the game into the cell buffer. The viewport is refreshed
// first since a reloaded config may change the field or scaling.
func (m *Model) draw() {
	m.raster.SetViewport(m.viewport())
	m.screen.Clear()
	m.game.Render(m.raster)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	return renderHUD(m.game.Title(), m.game.State(), m.status, m.config.ScreenW) + "\n" +
		RenderScreen(m.screen) + "\n" +
		helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click to start
	)

	_, err := p.Run()
	return err
}
