package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/NNTin/gsnake-levels/internal/batch"
	"github.com/NNTin/gsnake-levels/internal/level"
)

var flagLevelsRoot string

var verifyAllCmd = &cobra.Command{
	Use:   "verify-all",
	Short: "Re-check every playback in the corpus",
	Long: `Verify every indexed level across all difficulty folders, in parallel.
Levels without a playback are skipped. Solved flags in each levels.yaml
are updated from the results.

Exits non-zero when any level fails verification.`,
	RunE: runVerifyAll,
}

func init() {
	verifyAllCmd.Flags().StringVar(&flagLevelsRoot, "levels-root", "", "Levels directory (default: auto-discover)")
}

func runVerifyAll(cmd *cobra.Command, args []string) error {
	root, err := resolveLevelsRoot()
	if err != nil {
		return err
	}

	opts := batch.Options{LevelsRoot: root, Workers: flagWorkers}
	start := time.Now()
	results, err := batch.VerifyAll(cmd.Context(), opts)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	recordRuns(store, "verify", results)

	printResults(results, time.Since(start))
	if s := batch.Summarize(results); s.Failed > 0 {
		return fmt.Errorf("%d of %d levels failed verification", s.Failed, len(results))
	}
	return nil
}

func resolveLevelsRoot() (string, error) {
	if flagLevelsRoot != "" {
		return flagLevelsRoot, nil
	}
	return level.FindLevelsRoot()
}

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// printResults writes a per-level line and a totals row. Styling is
// dropped when stdout is not a terminal so piped output stays plain.
func printResults(results []batch.Result, elapsed time.Duration) {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(style lipgloss.Style, s string) string {
		if !styled {
			return s
		}
		return style.Render(s)
	}

	for _, r := range results {
		var tag string
		switch {
		case r.Skipped:
			tag = render(skipStyle, "SKIP")
		case r.Passed:
			tag = render(passStyle, "PASS")
		default:
			tag = render(failStyle, "FAIL")
		}
		line := fmt.Sprintf("  %s  %s/%s", tag, r.Difficulty, r.File)
		if r.Passed {
			line += fmt.Sprintf("  (%d moves, %s)", r.Moves, r.Duration.Round(time.Millisecond))
		} else if r.Err != nil {
			line += fmt.Sprintf("  %v", r.Err)
		}
		fmt.Println(line)
	}

	s := batch.Summarize(results)
	fmt.Printf("\n%d passed, %d failed, %d skipped in %s\n",
		s.Passed, s.Failed, s.Skipped, elapsed.Round(time.Millisecond))
}
