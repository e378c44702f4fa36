package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/foxscape/internal/audio"
	"github.com/vovakirdan/foxscape/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal. The variant defaults to foxscape.

Controls:
  Enter/Click   - Start
  Space/Up/W    - Jump (also restarts after game over)
  P/Down/S      - Roll
  R             - Restart (after game over)
  Ctrl+S        - Screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Ramp starts at 1.0x
  normal - Ramp starts at 1.3x
  hard   - Ramp starts at 1.7x
  fixed  - No ramp

Examples:
  foxscape play
  foxscape play foxscape_classic
  foxscape play --difficulty hard
  foxscape play --config ./my-foxscape.yaml --watch --log-file fox.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	s, err := openSession(args, true)
	if err != nil {
		return err
	}
	defer s.close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Sink:    audio.NewLogSink(s.logger),
		Watcher: s.watcher,
		Logger:  s.logger,
	}
	// A nil *storage.Store must not end up in the interface.
	if s.history != nil {
		opts.History = s.history
	}

	s.logger.Info("starting", "game", s.game.ID(), "mode", "terminal")
	return tui.Run(s.game, s.runtimeConfig(width, height), opts)
}
