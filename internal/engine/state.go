// Package engine implements the board simulation for snake puzzle levels.
// It contains no external dependencies to keep the game rules pure and
// testable; level parsing, search, and I/O live in other packages.
package engine

// Point is a cell on the board grid. X grows rightward, Y grows downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is one of the four moves a snake can make.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// MoveOrder is the canonical expansion order used by the solver: up,
// down, right, left. The order is fixed so repeated solves of the same
// level return identical playbacks, and it breaks ties between equally
// short solutions the same way across tool versions.
var MoveOrder = [4]Direction{Up, Down, Right, Left}

// Delta returns the cell offset for one move in this direction.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

// Opposite returns the reversing direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Right"
	}
}

// State is one settled simulation instant of a level. Step treats it as a
// value: it never mutates its input and returns a fresh State. Walls are
// the only shared structure; they are immutable for the level's lifetime
// and may alias across states.
type State struct {
	Width  int
	Height int

	// Body holds the snake's cells, head first. In a settled state the
	// cells are distinct and in bounds.
	Body []Point

	// Heading is the direction of the snake's last move (or the level's
	// declared start direction before any move). Reversing against it is
	// rejected as a self collision.
	Heading Direction

	// Walls are the level's static obstacles. Never mutated after load.
	Walls map[Point]bool

	// Food holds the remaining goal cells in a stable order. Eating
	// removes a cell and grows the snake by one segment.
	Food []Point

	// Exit, when present, must be entered after the last food is eaten.
	// While food remains the exit cell is solid. HasExit guards it.
	Exit    Point
	HasExit bool

	// Moves counts the steps applied to reach this state.
	Moves int
}

// Head returns the snake's head cell.
func (s State) Head() Point {
	return s.Body[0]
}

// InBounds reports whether p lies on the grid.
func (s State) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// foodAt returns the index of p in the remaining food, or -1.
func (s State) foodAt(p Point) int {
	for i, f := range s.Food {
		if f == p {
			return i
		}
	}
	return -1
}

// exitSolid reports whether the exit currently blocks movement.
func (s State) exitSolid() bool {
	return s.HasExit && len(s.Food) > 0
}

// Solved reports whether the state meets the level's goal: all food
// eaten, and the head on the exit when the level has one.
func (s State) Solved() bool {
	if len(s.Food) > 0 {
		return false
	}
	if s.HasExit {
		return s.Head() == s.Exit
	}
	return true
}
