package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [level-file]",
	Short: "Show recorded run history",
	Long: `Print recent solve and verify runs from the history database, newest
first. With a level file name, only that level's runs are shown along
with its aggregate stats.

Examples:
  gsnake runs
  gsnake runs level_001.json --limit 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum runs to show")
}

func runRuns(cmd *cobra.Command, args []string) error {
	store := openStore()
	if store == nil {
		return fmt.Errorf("run history database is unavailable")
	}
	defer store.Close()

	levelFile := ""
	if len(args) == 1 {
		levelFile = args[0]
	}

	runs, err := store.RecentRuns(levelFile, flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("  %s  %-6s  %s/%s  %s  (%d moves, %s)\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Op, r.Difficulty, r.LevelFile, r.Outcome, r.Moves, r.Duration.Round(time.Millisecond))
	}

	if levelFile != "" {
		stats, err := store.GetLevelStats(levelFile)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s: %d runs, %d passed, best %d moves\n",
			stats.LevelFile, stats.RunsCount, stats.PassCount, stats.BestMoves)
	}
	return nil
}
