package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NNTin/gsnake-levels/internal/level"
)

var (
	flagAggFilter string
	flagAggDryRun bool
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Emit combined levels.json on stdout",
	Long: `Collect every indexed level across the difficulty folders into one
JSON array on stdout, for consumption by the game client. Each level's
difficulty field is filled from its index entry or folder.

Every level is validated while aggregating, so a malformed level fails
the whole command rather than shipping a broken corpus.

Examples:
  gsnake aggregate > levels.json
  gsnake aggregate --filter easy,medium
  gsnake aggregate --dry-run`,
	RunE: runAggregate,
}

func init() {
	aggregateCmd.Flags().StringVar(&flagLevelsRoot, "levels-root", "", "Levels directory (default: auto-discover)")
	aggregateCmd.Flags().StringVar(&flagAggFilter, "filter", "", "Comma-separated difficulty filter, e.g. easy,medium")
	aggregateCmd.Flags().BoolVar(&flagAggDryRun, "dry-run", false, "Validate without emitting JSON")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	root, err := resolveLevelsRoot()
	if err != nil {
		return err
	}
	difficulties, err := parseFilter(flagAggFilter)
	if err != nil {
		return err
	}

	aggregated, err := collectLevels(root, difficulties)
	if err != nil {
		return err
	}

	if flagAggDryRun {
		return nil
	}
	out, err := json.MarshalIndent(aggregated, "", "  ")
	if err != nil {
		return fmt.Errorf("aggregate: encode: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// collectLevels loads and validates every indexed level under the given
// difficulty folders. The result is never nil, so an empty corpus still
// encodes as a JSON array.
func collectLevels(root string, difficulties []string) ([]*level.Level, error) {
	aggregated := []*level.Level{}
	for _, difficulty := range difficulties {
		metaPath := filepath.Join(root, difficulty, level.MetadataFile)
		if _, err := os.Stat(metaPath); err != nil {
			continue
		}
		meta, err := level.LoadMetadata(metaPath)
		if err != nil {
			return nil, err
		}
		for _, entry := range meta.Levels {
			if entry.File == "" {
				continue
			}
			lv, err := level.Load(filepath.Join(root, difficulty, entry.File))
			if err != nil {
				return nil, err
			}
			if entry.Difficulty != "" {
				lv.Difficulty = entry.Difficulty
			} else {
				lv.Difficulty = difficulty
			}
			aggregated = append(aggregated, lv)
		}
	}
	return aggregated, nil
}

// parseFilter narrows the difficulty folders to aggregate. An empty
// filter selects all of them; a filter matching none is an error.
func parseFilter(filter string) ([]string, error) {
	if filter == "" {
		return level.Difficulties[:], nil
	}
	requested := make(map[string]bool)
	for _, item := range strings.Split(filter, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			requested[item] = true
		}
	}
	var selected []string
	for _, difficulty := range level.Difficulties {
		if requested[difficulty] {
			selected = append(selected, difficulty)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("filter %q matched no known difficulty (easy, medium, hard)", filter)
	}
	return selected, nil
}
