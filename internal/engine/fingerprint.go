package engine

// MaxAxis is the largest grid dimension Fingerprint can pack without two
// distinct cells sharing an encoding. Level validation rejects anything
// bigger.
const MaxAxis = 1 << 16

// Fingerprint encodes a state into a compact key for search deduplication.
// Two states share a key exactly when they behave the same for the rest
// of the search: same body cell sequence (head first), same heading, same
// remaining food. Grid bounds and walls never change within a level, so
// they are left out of the key.
//
// Cells are packed as two bytes per axis, with the body length up front
// so different body/food splits of the same cell list cannot alias.
func Fingerprint(s State) string {
	buf := make([]byte, 0, 4*len(s.Body)+4*len(s.Food)+3)
	buf = append(buf, byte(len(s.Body)>>8), byte(len(s.Body)))
	for _, p := range s.Body {
		buf = appendCell(buf, p)
	}
	buf = append(buf, byte(s.Heading))
	for _, p := range s.Food {
		buf = appendCell(buf, p)
	}
	return string(buf)
}

func appendCell(buf []byte, p Point) []byte {
	return append(buf, byte(p.X>>8), byte(p.X), byte(p.Y>>8), byte(p.Y))
}

// VisitedCapacity estimates how many distinct states a search over this
// level might touch, for pre-sizing the visited set. It is a heuristic
// from grid area and plausible body lengths, not a bound.
func VisitedCapacity(s State) int {
	area := s.Width * s.Height
	lengths := len(s.Food) + 1
	n := area * 4 * lengths
	if n < 64 {
		n = 64
	}
	return n
}
