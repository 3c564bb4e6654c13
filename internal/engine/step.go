package engine

// Status classifies the result of one simulation step.
type Status int

const (
	// Continuing means the move was legal and the goal is not yet met.
	Continuing Status = iota
	// Solved means the move completed the level.
	Solved
	// Failed means the move broke a rule; the state is unchanged.
	Failed
)

// FailReason says why a move or playback was rejected.
type FailReason int

const (
	ReasonNone FailReason = iota
	ReasonOutOfBounds
	ReasonHitObstacle
	ReasonSelfCollision
	// ReasonGoalNotReached is reported by the verifier when a playback
	// runs out of moves without solving the level. Step never returns it.
	ReasonGoalNotReached
)

func (r FailReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonOutOfBounds:
		return "out of bounds"
	case ReasonHitObstacle:
		return "hit obstacle"
	case ReasonSelfCollision:
		return "self collision"
	default:
		return "goal not reached"
	}
}

// Outcome is the result of applying one move to a state. Next is only
// meaningful when Status is Continuing or Solved; Reason only when Failed.
type Outcome struct {
	Next   State
	Status Status
	Reason FailReason
}

// Step applies one move to a settled state and classifies the result.
// Rules are checked in a fixed order, first match wins:
//
//  1. head leaves the grid          -> Failed(OutOfBounds)
//  2. head enters a wall or a still
//     solid exit                    -> Failed(HitObstacle)
//  3. head enters the snake's own
//     body (excluding a vacating
//     tail), or the move reverses
//     the current heading           -> Failed(SelfCollision)
//
// Otherwise the body advances, growing by one segment when the head lands
// on food. The returned state is settled: the input is never mutated.
func Step(s State, move Direction) Outcome {
	d := move.Delta()
	head := Point{X: s.Head().X + d.X, Y: s.Head().Y + d.Y}

	if !s.InBounds(head) {
		return Outcome{Status: Failed, Reason: ReasonOutOfBounds}
	}
	if s.Walls[head] || (s.exitSolid() && head == s.Exit) {
		return Outcome{Status: Failed, Reason: ReasonHitObstacle}
	}

	eaten := s.foodAt(head)
	grows := eaten >= 0

	// Reversal is indistinguishable from crawling back into the neck, so
	// it reports as a self collision even for a one-cell snake.
	if move == s.Heading.Opposite() {
		return Outcome{Status: Failed, Reason: ReasonSelfCollision}
	}
	// The tail cell vacates this step unless the snake grows.
	occupied := len(s.Body)
	if !grows {
		occupied--
	}
	for i := 0; i < occupied; i++ {
		if s.Body[i] == head {
			return Outcome{Status: Failed, Reason: ReasonSelfCollision}
		}
	}

	next := State{
		Width:   s.Width,
		Height:  s.Height,
		Heading: move,
		Walls:   s.Walls,
		Food:    s.Food,
		Exit:    s.Exit,
		HasExit: s.HasExit,
		Moves:   s.Moves + 1,
	}

	bodyLen := len(s.Body)
	if !grows {
		bodyLen--
	}
	next.Body = make([]Point, 0, bodyLen+1)
	next.Body = append(next.Body, head)
	next.Body = append(next.Body, s.Body[:bodyLen]...)

	if grows {
		next.Food = make([]Point, 0, len(s.Food)-1)
		next.Food = append(next.Food, s.Food[:eaten]...)
		next.Food = append(next.Food, s.Food[eaten+1:]...)
	}

	if next.Solved() {
		return Outcome{Next: next, Status: Solved}
	}
	return Outcome{Next: next, Status: Continuing}
}
