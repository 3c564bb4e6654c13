package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/NNTin/gsnake-levels/internal/level"
	"github.com/NNTin/gsnake-levels/internal/verifier"
)

var flagVerifyPlayback string

var verifyCmd = &cobra.Command{
	Use:   "verify <level>",
	Short: "Check that a level's playback solves it",
	Long: `Replay a recorded playback against the level's rules and report the
first rule violation, if any. The playback path is inferred from the
level path (levels/... -> playbacks/...) unless --playback is given.

The level index (levels.yaml) next to the level file is updated with the
result.

Examples:
  gsnake verify levels/easy/level_001.json
  gsnake verify level.json --playback /tmp/candidate.json`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&flagVerifyPlayback, "playback", "", "Playback file path (default: inferred from level path)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	levelPath := args[0]

	lv, err := level.Load(levelPath)
	if err != nil {
		return err
	}

	playbackPath := flagVerifyPlayback
	if playbackPath == "" {
		if playbackPath, err = level.PlaybackPath(levelPath); err != nil {
			return fmt.Errorf("%w (use --playback)", err)
		}
	}
	moves, err := level.LoadPlayback(playbackPath)
	if err != nil {
		return err
	}

	start := time.Now()
	result := verifier.Verify(lv.InitialState(), moves)
	elapsed := time.Since(start)

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	var runErr error
	if !result.Passed {
		runErr = fmt.Errorf("verify %s: %s", levelPath, result)
	}
	recordSingle(store, "verify", lv, levelPath, result.Moves, elapsed, runErr)

	if err := level.UpdateSolvedStatus(levelPath, result.Passed); err != nil {
		log.Warn("cannot update level index", "err", err)
	}

	if runErr != nil {
		return runErr
	}
	fmt.Printf("verified %s: %s\n", levelPath, result)
	return nil
}
