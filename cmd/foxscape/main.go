// foxscape is a side-scrolling runner: guide the fox over and through the
// obstacles for as long as you can.
//
// Usage:
//
//	foxscape play [variant]     - Play in the terminal
//	foxscape window [variant]   - Play in a desktop window with sound
//	foxscape scores [variant]   - Show the best runs
//	foxscape list               - List game variants
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.foxscape/foxscape.db)
//	--store <kind>         - Where the best score lives: sqlite, gdata or memory
//	--config <path>        - Custom game config YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--watch                - Reload the config file when it changes
//	--log-file <path>      - Write logs to a file
//	--debug                - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the game variants
	_ "github.com/vovakirdan/foxscape/internal/games/foxscape"
	"github.com/vovakirdan/foxscape/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagStore      string
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foxscape",
	Short: "Foxscape - a side-scrolling fox runner",
	Long: `Foxscape is a side-scrolling runner. Jump over trunks and spikes,
roll under the tall barriers and beat your best score.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window with sound
  scores   - View the best runs
  list     - Show the game variants

Examples:
  foxscape play
  foxscape play foxscape_classic --difficulty hard
  foxscape window --store gdata
  foxscape scores --interactive`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagStore, "store", storeSQLite, "Best score store: sqlite, gdata, memory")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(scoresCmd)
}
