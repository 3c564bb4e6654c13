package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NNTin/gsnake-levels/internal/engine"
)

// ErrMalformedPlayback classifies playback documents that fail to parse
// or contain unusable steps.
var ErrMalformedPlayback = errors.New("malformed playback")

// defaultStepDelayMS is the replay delay written for generated playbacks.
// The core ignores it; the interactive replayer in the game client reads it.
const defaultStepDelayMS = 200

// PlaybackStep is one recorded move in a playback file.
type PlaybackStep struct {
	Key     string `json:"key"`
	DelayMS int64  `json:"delay_ms"`
}

// LoadPlayback reads a playback file and returns its move sequence.
func LoadPlayback(path string) ([]engine.Direction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("playback: read %s: %w", path, err)
	}
	return ParsePlayback(data)
}

// ParsePlayback decodes a playback document into its move sequence. An
// empty document is malformed: a playback's whole claim is that its moves
// solve a level, and zero moves solve nothing.
func ParsePlayback(data []byte) ([]engine.Direction, error) {
	var steps []PlaybackStep
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("playback: %w: %v", ErrMalformedPlayback, err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("playback: %w: no steps", ErrMalformedPlayback)
	}
	moves := make([]engine.Direction, len(steps))
	for i, step := range steps {
		d, err := ParseDirection(step.Key)
		if err != nil {
			return nil, fmt.Errorf("playback: %w: step %d: %v", ErrMalformedPlayback, i, err)
		}
		moves[i] = d
	}
	return moves, nil
}

// WritePlayback saves a move sequence as a playback file, creating parent
// directories as needed.
func WritePlayback(path string, moves []engine.Direction) error {
	steps := make([]PlaybackStep, len(moves))
	for i, m := range moves {
		steps[i] = PlaybackStep{Key: m.String(), DelayMS: defaultStepDelayMS}
	}
	data, err := json.MarshalIndent(steps, "", "  ")
	if err != nil {
		return fmt.Errorf("playback: encode: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("playback: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("playback: write %s: %w", path, err)
	}
	return nil
}

// PlaybackPath maps a level file path to its conventional playback path
// by swapping the first "levels" path element for "playbacks".
func PlaybackPath(levelPath string) (string, error) {
	sep := string(filepath.Separator)
	parts := strings.Split(filepath.Clean(levelPath), sep)
	for i, part := range parts {
		if part == "levels" {
			parts[i] = "playbacks"
			return strings.Join(parts, sep), nil
		}
	}
	return "", fmt.Errorf("playback: cannot infer playback path from %s: no levels directory in path", levelPath)
}

// FindLevelsRoot locates the level corpus relative to the working
// directory, checking ./levels and the checkout layout ./gsnake-levels/levels.
func FindLevelsRoot() (string, error) {
	for _, candidate := range []string{"levels", filepath.Join("gsnake-levels", "levels")} {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	wd, _ := os.Getwd()
	return "", fmt.Errorf("level: no levels directory under %s: expected ./levels or ./gsnake-levels/levels", wd)
}
