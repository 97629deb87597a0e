package object

import "github.com/tomz197/snake/internal/grid"

// Snake is the player-controlled body. The head is at index 0 and the body
// is never empty.
type Snake struct {
	body      []grid.Position
	direction grid.Direction
	bounds    grid.Bounds
}

// NewSnake creates a single-segment snake at start facing right.
func NewSnake(bounds grid.Bounds, start grid.Position) *Snake {
	s := &Snake{bounds: bounds}
	s.Reset(start)
	return s
}

// Reset puts the snake back to a single segment at start facing right.
func (s *Snake) Reset(start grid.Position) {
	s.body = append(s.body[:0], start)
	s.direction = grid.Right
}

// Move returns the cell the head would enter next. It does not mutate the
// snake; the caller commits the move with Grow.
func (s *Snake) Move() grid.Position {
	return s.bounds.Step(s.body[0], s.direction)
}

// Grow prepends head to the body.
func (s *Snake) Grow(head grid.Position) {
	s.body = append(s.body, grid.Position{})
	copy(s.body[1:], s.body)
	s.body[0] = head
}

// Shrink drops the tail segment. A single-segment snake is left unchanged.
func (s *Snake) Shrink() {
	if len(s.body) > 1 {
		s.body = s.body[:len(s.body)-1]
	}
}

// ChangeDirection turns the snake unless d points straight back into the
// neck. Returns whether the turn was accepted.
func (s *Snake) ChangeDirection(d grid.Direction) bool {
	if d == s.direction.Opposite() {
		return false
	}
	s.direction = d
	return true
}

// Contains reports whether any segment occupies p.
func (s *Snake) Contains(p grid.Position) bool {
	for _, seg := range s.body {
		if seg == p {
			return true
		}
	}
	return false
}

// Head returns the head segment.
func (s *Snake) Head() grid.Position {
	return s.body[0]
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Direction returns the current heading.
func (s *Snake) Direction() grid.Direction {
	return s.direction
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []grid.Position {
	out := make([]grid.Position, len(s.body))
	copy(out, s.body)
	return out
}
