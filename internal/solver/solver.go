// Package solver finds shortest solving playbacks for snake puzzle levels
// by breadth-first search over the simulation state space.
package solver

import (
	"context"
	"errors"

	"github.com/NNTin/gsnake-levels/internal/engine"
)

// ErrExhausted means no solution exists within the given depth bound. It
// is a normal outcome for hard or broken levels, not a proof that the
// level is unsolvable.
var ErrExhausted = errors.New("solver: no solution within depth bound")

// node pairs a reached state with the moves that reached it. Nodes live
// only on the frontier and are dropped once expanded.
type node struct {
	state engine.State
	path  []engine.Direction
}

// Solve searches for a move sequence that solves the level, exploring
// breadth-first so the first solution found is the shortest one. maxDepth
// is a hard bound on playback length; when the reachable state space
// within it is exhausted, Solve returns ErrExhausted.
//
// The frontier and visited set are local to the call, so any number of
// solves may run concurrently on different levels. Cancelling ctx aborts
// the traversal and returns ctx's error.
func Solve(ctx context.Context, initial engine.State, maxDepth int) ([]engine.Direction, error) {
	if maxDepth <= 0 {
		return nil, errors.New("solver: max depth must be positive")
	}
	if initial.Solved() {
		return []engine.Direction{}, nil
	}

	visited := make(map[string]struct{}, engine.VisitedCapacity(initial))
	visited[engine.Fingerprint(initial)] = struct{}{}

	frontier := []node{{state: initial}}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := frontier[0]
		frontier = frontier[1:]

		for _, move := range engine.MoveOrder {
			out := engine.Step(cur.state, move)
			if out.Status == engine.Failed {
				continue
			}

			path := make([]engine.Direction, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			path = append(path, move)

			if out.Status == engine.Solved {
				return path, nil
			}
			if len(path) == maxDepth {
				continue
			}
			key := engine.Fingerprint(out.Next)
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
			frontier = append(frontier, node{state: out.Next, path: path})
		}
	}

	return nil, ErrExhausted
}
