// gsnake manages and validates puzzle levels for the gsnake game.
//
// Usage:
//
//	gsnake solve <level>        - Find a solving playback for one level
//	gsnake verify <level>       - Check a level's playback solves it
//	gsnake verify-all           - Re-check every playback in the corpus
//	gsnake generate             - Re-solve the corpus and write playbacks
//	gsnake aggregate            - Emit combined levels.json on stdout
//	gsnake runs [level-file]    - Show recorded run history
//
// Global flags:
//
//	--db <path>      - Run history database (default: ~/.gsnake/runs.db)
//	--workers <n>    - Concurrent per-level jobs (default: GOMAXPROCS)
//	--verbose        - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/NNTin/gsnake-levels/internal/batch"
	"github.com/NNTin/gsnake-levels/internal/storage"
)

var (
	// Global flags
	flagDBPath  string
	flagWorkers int
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gsnake",
	Short: "Solve and verify gsnake puzzle levels",
	Long: `gsnake maintains a corpus of snake puzzle levels: it solves levels
from scratch, verifies recorded playbacks against the game rules, and
tracks results across runs.

Levels live in difficulty folders (levels/easy, levels/medium,
levels/hard) with a levels.yaml index per folder; playbacks mirror that
layout under playbacks/.

Examples:
  gsnake solve levels/easy/level_001.json
  gsnake verify levels/easy/level_001.json
  gsnake verify-all
  gsnake generate --max-depth 500
  gsnake runs level_001.json`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gsnake/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Concurrent per-level jobs (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(verifyAllCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(runsCmd)
}

// openStore opens the run history database. A broken database downgrades
// to a warning: commands still work, they just stop recording history.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("run history unavailable", "err", err)
		return nil
	}
	return store
}

// recordRuns appends the results of a batch operation to the history.
func recordRuns(store *storage.Store, op string, results []batch.Result) {
	if store == nil {
		return
	}
	for _, r := range results {
		run := storage.Run{
			LevelFile:  r.File,
			Difficulty: r.Difficulty,
			Op:         op,
			Outcome:    r.Outcome(),
			Moves:      r.Moves,
			Duration:   r.Duration,
		}
		if _, err := store.RecordRun(run); err != nil {
			log.Warn("cannot record run", "level", r.File, "err", err)
		}
	}
}
