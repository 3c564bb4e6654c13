// Package level loads and validates snake puzzle level documents, their
// recorded playbacks, and the per-difficulty metadata index that tracks
// which levels are known solvable.
package level

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/NNTin/gsnake-levels/internal/engine"
)

// ErrMalformedLevel classifies level documents that fail to parse or
// violate a structural rule. It always surfaces before any simulation.
var ErrMalformedLevel = errors.New("malformed level")

// Difficulties are the corpus folders, in display order.
var Difficulties = [3]string{"easy", "medium", "hard"}

// GridSize is a level's fixed board dimensions.
type GridSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Level is the on-disk JSON document describing one puzzle. Snake cells
// are head first. Food lists the cells the snake must eat; Exit, when
// present, must be entered afterwards to finish the level.
type Level struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Difficulty     string         `json:"difficulty"`
	GridSize       GridSize       `json:"gridSize"`
	Snake          []engine.Point `json:"snake"`
	SnakeDirection string         `json:"snakeDirection"`
	Obstacles      []engine.Point `json:"obstacles"`
	Food           []engine.Point `json:"food"`
	Exit           *engine.Point  `json:"exit,omitempty"`
	TotalFood      int            `json:"totalFood"`
}

// Load reads and validates a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a level document.
func Parse(data []byte) (*Level, error) {
	var lv Level
	if err := json.Unmarshal(data, &lv); err != nil {
		return nil, fmt.Errorf("level: %w: %v", ErrMalformedLevel, err)
	}
	if err := lv.Validate(); err != nil {
		return nil, err
	}
	return &lv, nil
}

// Validate checks the structural rules a level must satisfy before it can
// be simulated. Violations wrap ErrMalformedLevel.
func (lv *Level) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("level: %w: %s", ErrMalformedLevel, fmt.Sprintf(format, args...))
	}

	if lv.GridSize.Width <= 0 || lv.GridSize.Height <= 0 {
		return fail("grid size %dx%d is not positive", lv.GridSize.Width, lv.GridSize.Height)
	}
	if lv.GridSize.Width > engine.MaxAxis || lv.GridSize.Height > engine.MaxAxis {
		return fail("grid size %dx%d exceeds the %d-cell axis limit", lv.GridSize.Width, lv.GridSize.Height, engine.MaxAxis)
	}
	if len(lv.Snake) == 0 {
		return fail("snake has no segments")
	}
	if _, err := ParseDirection(lv.SnakeDirection); err != nil {
		return fail("snake direction %q is not a direction", lv.SnakeDirection)
	}

	inBounds := func(p engine.Point) bool {
		return p.X >= 0 && p.X < lv.GridSize.Width && p.Y >= 0 && p.Y < lv.GridSize.Height
	}

	seen := make(map[engine.Point]string, len(lv.Snake)+len(lv.Obstacles)+len(lv.Food))
	place := func(p engine.Point, what string) error {
		if !inBounds(p) {
			return fail("%s cell (%d,%d) is outside the %dx%d grid", what, p.X, p.Y, lv.GridSize.Width, lv.GridSize.Height)
		}
		if prev, ok := seen[p]; ok {
			return fail("%s cell (%d,%d) overlaps %s", what, p.X, p.Y, prev)
		}
		seen[p] = what
		return nil
	}

	for i, p := range lv.Snake {
		if err := place(p, "snake"); err != nil {
			return err
		}
		if i > 0 {
			prev := lv.Snake[i-1]
			if abs(p.X-prev.X)+abs(p.Y-prev.Y) != 1 {
				return fail("snake segments %d and %d are not adjacent", i-1, i)
			}
		}
	}
	for _, p := range lv.Obstacles {
		if err := place(p, "obstacle"); err != nil {
			return err
		}
	}
	for _, p := range lv.Food {
		if err := place(p, "food"); err != nil {
			return err
		}
	}
	if lv.Exit != nil {
		if err := place(*lv.Exit, "exit"); err != nil {
			return err
		}
	}
	if lv.TotalFood != len(lv.Food) {
		return fail("totalFood %d does not match %d food cells", lv.TotalFood, len(lv.Food))
	}
	if len(lv.Food) == 0 && lv.Exit == nil {
		return fail("level has neither food nor an exit")
	}
	return nil
}

// InitialState builds the simulation state a fresh playthrough starts
// from. The level must have been validated. Walls and food are copied so
// the returned state shares nothing mutable with the Level.
func (lv *Level) InitialState() engine.State {
	walls := make(map[engine.Point]bool, len(lv.Obstacles))
	for _, p := range lv.Obstacles {
		walls[p] = true
	}
	heading, _ := ParseDirection(lv.SnakeDirection)
	s := engine.State{
		Width:   lv.GridSize.Width,
		Height:  lv.GridSize.Height,
		Body:    append([]engine.Point(nil), lv.Snake...),
		Heading: heading,
		Walls:   walls,
		Food:    append([]engine.Point(nil), lv.Food...),
	}
	if lv.Exit != nil {
		s.Exit = *lv.Exit
		s.HasExit = true
	}
	return s
}

// ParseDirection accepts the direction spellings that occur in level and
// playback files: full names, compass names, and single letters, all
// case-insensitive.
func ParseDirection(key string) (engine.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "up", "north", "u":
		return engine.Up, nil
	case "down", "south", "d":
		return engine.Down, nil
	case "left", "west", "l":
		return engine.Left, nil
	case "right", "east", "r":
		return engine.Right, nil
	}
	return 0, fmt.Errorf("level: invalid direction %q: use Up/Down/Left/Right or U/D/L/R", key)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
