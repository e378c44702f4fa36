package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
	"github.com/vovakirdan/foxscape/internal/games/foxscape"
	"github.com/vovakirdan/foxscape/internal/registry"
	"github.com/vovakirdan/foxscape/internal/storage"
)

// Best score stores selectable with --store.
const (
	storeSQLite = "sqlite"
	storeGdata  = "gdata"
	storeMemory = "memory"
)

// gdataApp is the per-user data directory name used by the gdata store.
const gdataApp = "foxscape"

// session bundles what every play mode opens before a game starts.
type session struct {
	game    registry.Game
	logger  *log.Logger
	history *storage.Store // nil when the database is unavailable
	best    core.ScalarStore
	watcher *config.Watcher
	closers []io.Closer
}

// newLogger builds the CLI logger. quietTerminal is set when the terminal
// belongs to Bubble Tea, so logs only go to --log-file.
func newLogger(quietTerminal bool) (*log.Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	case quietTerminal:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "foxscape",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// openSession resolves the variant, configures the game package and opens
// the stores. Callers must call close.
func openSession(args []string, quietTerminal bool) (*session, error) {
	gameID := foxscape.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return nil, fmt.Errorf("unknown game %q, run 'foxscape list' to see the variants", gameID)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return nil, err
	}

	logger, logCloser, err := newLogger(quietTerminal)
	if err != nil {
		return nil, err
	}
	s := &session{logger: logger}
	if logCloser != nil {
		s.closers = append(s.closers, logCloser)
	}

	foxscape.SetLogger(logger)
	foxscape.SetConfigPath(flagConfig)
	foxscape.SetDifficultyPreset(flagDifficulty)

	s.game, err = registry.Create(gameID)
	if err != nil {
		s.close()
		return nil, err
	}

	// History is best effort; the game runs without it.
	if store, err := storage.Open(flagDBPath); err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
	} else {
		s.history = store
		s.closers = append(s.closers, store)
	}

	s.best = s.openBestStore()

	if flagWatch && flagConfig != "" {
		w, err := config.NewWatcher(flagConfig)
		if err != nil {
			logger.Warn("config watch disabled", "err", err)
		} else {
			s.watcher = w
			s.closers = append(s.closers, w)
			logger.Info("watching config", "path", w.Path())
		}
	}
	return s, nil
}

// openBestStore picks the scalar store for the best score, falling back to
// memory when the chosen one cannot be opened.
func (s *session) openBestStore() core.ScalarStore {
	switch flagStore {
	case storeGdata:
		g, err := storage.OpenGdata(gdataApp)
		if err == nil {
			return g
		}
		s.logger.Warn("gdata store unavailable, best score kept in memory", "err", err)
	case storeSQLite:
		if s.history != nil {
			return s.history
		}
		s.logger.Warn("no database, best score kept in memory")
	case storeMemory:
	default:
		s.logger.Warn("unknown store, best score kept in memory", "store", flagStore)
	}
	return core.NewMemoryStore()
}

// runtimeConfig builds the platform config for a w x h output.
func (s *session) runtimeConfig(w, h int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Store:    s.best,
	}
}

// close releases everything in reverse order of opening.
func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && s.logger != nil {
			s.logger.Warn("close failed", "err", err)
		}
	}
	s.closers = nil
}
