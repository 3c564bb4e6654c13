// Package verifier replays recorded playbacks against level simulations.
// It performs no search: a playback produced once can be re-checked in
// time linear in its length, which is what batch regression runs rely on.
package verifier

import (
	"fmt"

	"github.com/NNTin/gsnake-levels/internal/engine"
)

// Result reports whether a playback solves its level. When it does not,
// FailIndex is the zero-based index of the offending move and Reason says
// why it was rejected. A playback that runs out of moves without solving
// the level fails at index len(playback) with ReasonGoalNotReached.
type Result struct {
	Passed    bool
	FailIndex int
	Reason    engine.FailReason
	Moves     int // moves actually applied
}

func (r Result) String() string {
	if r.Passed {
		return fmt.Sprintf("passed in %d moves", r.Moves)
	}
	return fmt.Sprintf("failed at move %d: %s", r.FailIndex, r.Reason)
}

// Verify folds the simulation step over the playback's moves in order,
// starting from the level's initial state. It stops at the first failure
// or at the move that solves the level; trailing moves after a solve are
// ignored, matching how the game itself ends a completed level.
func Verify(initial engine.State, playback []engine.Direction) Result {
	if initial.Solved() {
		return Result{Passed: true}
	}
	state := initial
	for i, move := range playback {
		out := engine.Step(state, move)
		switch out.Status {
		case engine.Failed:
			return Result{FailIndex: i, Reason: out.Reason, Moves: i}
		case engine.Solved:
			return Result{Passed: true, Moves: i + 1}
		}
		state = out.Next
	}
	return Result{FailIndex: len(playback), Reason: engine.ReasonGoalNotReached, Moves: len(playback)}
}
