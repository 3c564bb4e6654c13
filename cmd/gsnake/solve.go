package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/NNTin/gsnake-levels/internal/level"
	"github.com/NNTin/gsnake-levels/internal/solver"
	"github.com/NNTin/gsnake-levels/internal/storage"
)

var (
	flagSolveOut   string
	flagSolveDepth int
)

var solveCmd = &cobra.Command{
	Use:   "solve <level>",
	Short: "Find a solving playback for a level",
	Long: `Search for the shortest move sequence that solves the level and write
it as a playback file. By default the playback lands at the level's
conventional path (levels/... mirrored under playbacks/...).

The search is bounded: a level that needs more moves than --max-depth
comes back "exhausted", which is not proof the level is unsolvable.

Examples:
  gsnake solve levels/easy/level_001.json
  gsnake solve levels/hard/level_010.json --max-depth 800
  gsnake solve level.json --playback /tmp/out.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagSolveOut, "playback", "", "Playback output path (default: inferred from level path)")
	solveCmd.Flags().IntVar(&flagSolveDepth, "max-depth", 500, "Maximum playback length to search")
}

func runSolve(cmd *cobra.Command, args []string) error {
	levelPath := args[0]

	lv, err := level.Load(levelPath)
	if err != nil {
		return err
	}

	outPath := flagSolveOut
	if outPath == "" {
		if outPath, err = level.PlaybackPath(levelPath); err != nil {
			return fmt.Errorf("%w (use --playback)", err)
		}
	}

	start := time.Now()
	moves, err := solver.Solve(cmd.Context(), lv.InitialState(), flagSolveDepth)
	elapsed := time.Since(start)

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	recordSingle(store, "solve", lv, levelPath, len(moves), elapsed, err)

	if errors.Is(err, solver.ErrExhausted) {
		if metaErr := level.UpdateSolvedStatus(levelPath, false); metaErr != nil {
			log.Warn("cannot update level index", "err", metaErr)
		}
		return fmt.Errorf("%s: %w (searched %s)", levelPath, err, elapsed.Round(time.Millisecond))
	}
	if err != nil {
		return err
	}

	if err := level.WritePlayback(outPath, moves); err != nil {
		return err
	}
	if err := level.UpdateSolvedStatus(levelPath, true); err != nil {
		log.Warn("cannot update level index", "err", err)
	}

	fmt.Printf("solved %s in %d moves (%s) -> %s\n",
		levelPath, len(moves), elapsed.Round(time.Millisecond), outPath)
	return nil
}

// recordSingle logs one non-batch run to the history store.
func recordSingle(store *storage.Store, op string, lv *level.Level, levelPath string, moves int, elapsed time.Duration, err error) {
	if store == nil {
		return
	}
	outcome := "passed"
	if err != nil {
		outcome = err.Error()
	}
	run := storage.Run{
		LevelFile:  filepath.Base(levelPath),
		Difficulty: lv.Difficulty,
		Op:         op,
		Outcome:    outcome,
		Moves:      moves,
		Duration:   elapsed,
	}
	if _, recErr := store.RecordRun(run); recErr != nil {
		log.Warn("cannot record run", "level", levelPath, "err", recErr)
	}
}
