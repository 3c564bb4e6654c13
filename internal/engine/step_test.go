package engine

import "testing"

// open3x3 builds a 3x3 level with a one-cell snake at the center heading
// up and a single food cell directly above it.
func open3x3() State {
	return State{
		Width:   3,
		Height:  3,
		Body:    []Point{{X: 1, Y: 1}},
		Heading: Up,
		Walls:   map[Point]bool{},
		Food:    []Point{{X: 1, Y: 0}},
	}
}

func TestStepSolvesOnLastFood(t *testing.T) {
	out := Step(open3x3(), Up)

	if out.Status != Solved {
		t.Fatalf("Expected Solved, got %v (reason %v)", out.Status, out.Reason)
	}
	if out.Next.Head() != (Point{X: 1, Y: 0}) {
		t.Errorf("Head at %v, want (1,0)", out.Next.Head())
	}
	if len(out.Next.Body) != 2 {
		t.Errorf("Snake should grow to 2 segments, got %d", len(out.Next.Body))
	}
	if len(out.Next.Food) != 0 {
		t.Errorf("Food should be consumed, %d cells remain", len(out.Next.Food))
	}
	if out.Next.Moves != 1 {
		t.Errorf("Move counter = %d, want 1", out.Next.Moves)
	}
}

func TestStepOutOfBounds(t *testing.T) {
	s := open3x3()
	s.Body = []Point{{X: 0, Y: 1}}
	s.Heading = Left

	out := Step(s, Left)
	if out.Status != Failed || out.Reason != ReasonOutOfBounds {
		t.Errorf("Expected Failed(OutOfBounds), got %v/%v", out.Status, out.Reason)
	}
}

func TestStepHitObstacle(t *testing.T) {
	s := open3x3()
	s.Walls = map[Point]bool{{X: 2, Y: 1}: true}

	out := Step(s, Right)
	if out.Status != Failed || out.Reason != ReasonHitObstacle {
		t.Errorf("Expected Failed(HitObstacle), got %v/%v", out.Status, out.Reason)
	}
}

func TestStepBoundsCheckedBeforeObstacle(t *testing.T) {
	// A wall placed (nonsensically) outside the grid must not shadow the
	// out-of-bounds classification.
	s := open3x3()
	s.Body = []Point{{X: 2, Y: 1}}
	s.Heading = Right
	s.Walls = map[Point]bool{{X: 3, Y: 1}: true}

	out := Step(s, Right)
	if out.Reason != ReasonOutOfBounds {
		t.Errorf("Expected OutOfBounds before HitObstacle, got %v", out.Reason)
	}
}

func TestStepSelfCollision(t *testing.T) {
	// Snake coiled so that moving up hits its own third segment.
	s := State{
		Width:   5,
		Height:  5,
		Heading: Left,
		Walls:   map[Point]bool{},
		Food:    []Point{{X: 0, Y: 0}},
		Body: []Point{
			{X: 2, Y: 2}, // head
			{X: 3, Y: 2},
			{X: 3, Y: 1},
			{X: 2, Y: 1},
			{X: 1, Y: 1},
		},
	}

	out := Step(s, Up)
	if out.Status != Failed || out.Reason != ReasonSelfCollision {
		t.Errorf("Expected Failed(SelfCollision), got %v/%v", out.Status, out.Reason)
	}
}

func TestStepTailCellIsVacated(t *testing.T) {
	// Moving into the current tail cell is legal when the snake does not
	// grow, because the tail moves away in the same step.
	s := State{
		Width:   5,
		Height:  5,
		Heading: Left,
		Walls:   map[Point]bool{},
		Food:    []Point{{X: 0, Y: 0}},
		Body: []Point{
			{X: 2, Y: 2}, // head
			{X: 3, Y: 2},
			{X: 3, Y: 3},
			{X: 2, Y: 3},
		},
	}
	// Down from (2,2) lands on the tail (2,3).
	out := Step(s, Down)
	if out.Status != Continuing {
		t.Fatalf("Expected Continuing, got %v (reason %v)", out.Status, out.Reason)
	}
	if out.Next.Head() != (Point{X: 2, Y: 3}) {
		t.Errorf("Head at %v, want (2,3)", out.Next.Head())
	}
	assertSettled(t, out.Next)
}

func TestStepTailNotVacatedWhenGrowing(t *testing.T) {
	s := State{
		Width:   5,
		Height:  5,
		Heading: Left,
		Walls:   map[Point]bool{},
		// Food on the tail cell: the head would land there while the
		// tail stays put, so the move must fail.
		Food: []Point{{X: 2, Y: 3}},
		Body: []Point{
			{X: 2, Y: 2}, // head
			{X: 3, Y: 2},
			{X: 3, Y: 3},
			{X: 2, Y: 3},
		},
	}
	out := Step(s, Down)
	if out.Status != Failed || out.Reason != ReasonSelfCollision {
		t.Errorf("Expected Failed(SelfCollision), got %v/%v", out.Status, out.Reason)
	}
}

func TestStepReversalRejected(t *testing.T) {
	s := open3x3()
	s.Heading = Up

	out := Step(s, Down)
	if out.Status != Failed || out.Reason != ReasonSelfCollision {
		t.Errorf("Reversal should fail as SelfCollision even for a one-cell snake, got %v/%v",
			out.Status, out.Reason)
	}
}

func TestStepPreservesLengthWithoutFood(t *testing.T) {
	s := open3x3()
	s.Body = []Point{{X: 1, Y: 1}, {X: 0, Y: 1}}
	s.Heading = Right

	out := Step(s, Right)
	if out.Status != Continuing {
		t.Fatalf("Expected Continuing, got %v", out.Status)
	}
	if len(out.Next.Body) != 2 {
		t.Errorf("Length should be preserved, got %d segments", len(out.Next.Body))
	}
	want := []Point{{X: 2, Y: 1}, {X: 1, Y: 1}}
	for i, p := range want {
		if out.Next.Body[i] != p {
			t.Errorf("Body[%d] = %v, want %v", i, out.Next.Body[i], p)
		}
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	s := open3x3()
	s.Body = []Point{{X: 1, Y: 1}, {X: 0, Y: 1}}
	s.Heading = Right

	before := append([]Point(nil), s.Body...)
	out := Step(s, Up)
	if out.Status == Failed {
		t.Fatalf("Setup move unexpectedly failed: %v", out.Reason)
	}

	if len(s.Body) != len(before) {
		t.Fatalf("Input body length changed: %d -> %d", len(before), len(s.Body))
	}
	for i := range before {
		if s.Body[i] != before[i] {
			t.Errorf("Input body[%d] mutated: %v -> %v", i, before[i], s.Body[i])
		}
	}
	if len(s.Food) != 1 || s.Moves != 0 {
		t.Error("Input food or move counter mutated")
	}
}

func TestStepExitSolidUntilFoodEaten(t *testing.T) {
	s := State{
		Width:   4,
		Height:  1,
		Body:    []Point{{X: 0, Y: 0}},
		Heading: Right,
		Walls:   map[Point]bool{},
		Food:    []Point{{X: 2, Y: 0}},
		Exit:    Point{X: 1, Y: 0},
		HasExit: true,
	}

	// With food remaining the exit acts as an obstacle.
	out := Step(s, Right)
	if out.Status != Failed || out.Reason != ReasonHitObstacle {
		t.Fatalf("Solid exit should block, got %v/%v", out.Status, out.Reason)
	}

	// Eat the food first, then the exit opens.
	s.Body = []Point{{X: 3, Y: 0}}
	s.Heading = Left
	out = Step(s, Left)
	if out.Status != Continuing {
		t.Fatalf("Eating food next to exit should continue, got %v/%v", out.Status, out.Reason)
	}
	out = Step(out.Next, Left)
	if out.Status != Solved {
		t.Errorf("Entering open exit should solve, got %v/%v", out.Status, out.Reason)
	}
}

func TestStepWithoutExitSolvesOnFoodAlone(t *testing.T) {
	s := open3x3()
	s.Food = []Point{{X: 1, Y: 0}, {X: 2, Y: 0}}

	out := Step(s, Up)
	if out.Status != Continuing {
		t.Fatalf("One of two food cells should not solve, got %v", out.Status)
	}
	out = Step(out.Next, Right)
	if out.Status != Solved {
		t.Errorf("Last food cell should solve, got %v/%v", out.Status, out.Reason)
	}
}

// assertSettled checks the settled state invariants: distinct body cells,
// all in bounds, none on walls.
func assertSettled(t *testing.T, s State) {
	t.Helper()
	seen := make(map[Point]bool, len(s.Body))
	for i, p := range s.Body {
		if !s.InBounds(p) {
			t.Errorf("Body[%d] = %v out of bounds", i, p)
		}
		if s.Walls[p] {
			t.Errorf("Body[%d] = %v on a wall", i, p)
		}
		if seen[p] {
			t.Errorf("Body[%d] = %v duplicated", i, p)
		}
		seen[p] = true
	}
}

func TestStepSettledInvariants(t *testing.T) {
	// Walk a longer snake around an open board and check invariants after
	// every non-failed step.
	s := State{
		Width:   6,
		Height:  6,
		Heading: Right,
		Walls:   map[Point]bool{{X: 3, Y: 3}: true},
		Food:    []Point{{X: 5, Y: 5}},
		Body:    []Point{{X: 2, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}},
	}
	moves := []Direction{Right, Down, Down, Left, Left, Up, Right, Down, Down, Right}
	for i, m := range moves {
		out := Step(s, m)
		if out.Status == Failed {
			continue
		}
		assertSettled(t, out.Next)
		if out.Next.Moves != s.Moves+1 {
			t.Errorf("Move %d: counter %d, want %d", i, out.Next.Moves, s.Moves+1)
		}
		s = out.Next
	}
}
