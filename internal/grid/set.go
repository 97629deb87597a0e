package grid

// Set is an occupancy set of cells, used for obstacle lookups and
// spawn avoidance.
type Set map[Position]struct{}

// NewSet creates a set holding the given positions.
func NewSet(positions ...Position) Set {
	s := make(Set, len(positions))
	for _, p := range positions {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts p.
func (s Set) Add(p Position) {
	s[p] = struct{}{}
}

// Has reports whether p is in the set. A nil set contains nothing.
func (s Set) Has(p Position) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of cells in the set.
func (s Set) Len() int {
	return len(s)
}
