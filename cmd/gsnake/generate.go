package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/NNTin/gsnake-levels/internal/batch"
)

var flagGenDepth int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Re-solve the corpus and write playbacks",
	Long: `Solve every indexed level from scratch, in parallel, and write the
found playbacks under playbacks/. Levels the solver cannot crack within
--max-depth are reported and marked unsolved in their levels.yaml.

Existing playbacks are overwritten; run verify-all afterwards if you
want an independent check of the written files.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagLevelsRoot, "levels-root", "", "Levels directory (default: auto-discover)")
	generateCmd.Flags().IntVar(&flagGenDepth, "max-depth", 500, "Maximum playback length to search per level")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root, err := resolveLevelsRoot()
	if err != nil {
		return err
	}

	opts := batch.Options{LevelsRoot: root, Workers: flagWorkers, MaxDepth: flagGenDepth}
	start := time.Now()
	results, err := batch.GenerateAll(cmd.Context(), opts)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	recordRuns(store, "solve", results)

	printResults(results, time.Since(start))
	if s := batch.Summarize(results); s.Failed > 0 {
		return fmt.Errorf("%d of %d levels could not be solved", s.Failed, len(results))
	}
	return nil
}
