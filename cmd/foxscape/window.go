package main

import (
	"github.com/spf13/cobra"

	foxaudio "github.com/vovakirdan/foxscape/internal/audio"
	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/platform/window"
)

var flagMute bool

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a desktop window",
	Long: `Open a 600x600 window and start a run. The foxscape variant plays
synthesized sound effects and music; foxscape_classic is silent.

Controls:
  Enter/Click   - Start
  Space         - Jump (also restarts after game over)
  P             - Roll
  R             - Restart (after game over)
  Esc           - Quit

Examples:
  foxscape window
  foxscape window --store gdata
  foxscape window foxscape_classic --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

// audible is implemented by games that report their audio settings.
type audible interface {
	AudioEnabled() bool
	Config() config.FoxConfig
}

func runWindow(cmd *cobra.Command, args []string) error {
	s, err := openSession(args, false)
	if err != nil {
		return err
	}
	defer s.close()

	cfg := s.runtimeConfig(600, 600)
	opts := window.Options{
		Watcher: s.watcher,
		Logger:  s.logger,
	}
	if s.history != nil {
		opts.History = s.history
	}

	g := window.NewGame(s.game, cfg, opts)

	if a, ok := s.game.(audible); ok && a.AudioEnabled() && !flagMute {
		sound, err := window.NewSound(a.Config().Audio, s.logger)
		if err != nil {
			s.logger.Warn("sound disabled", "err", err)
		} else {
			g.SetSink(foxaudio.Multi{sound, foxaudio.NewLogSink(s.logger)})
			s.closers = append(s.closers, sound)
		}
	}

	s.logger.Info("starting", "game", s.game.ID(), "mode", "window")
	return window.RunGame(g, cfg.TickRate)
}
