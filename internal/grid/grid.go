// Package grid provides the integer board model: positions, directions and
// wrap-around coordinate arithmetic.
package grid

// Position is a cell on the board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is one of the four movement directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Delta returns the (dx, dy) step for one move in this direction.
// Up decreases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// Bounds holds the board dimensions. The board is toroidal: leaving one
// edge re-enters at the opposite edge.
type Bounds struct {
	Width  int
	Height int
}

// Center returns the middle cell (integer division).
func (b Bounds) Center() Position {
	return Position{X: b.Width / 2, Y: b.Height / 2}
}

// Contains reports whether p lies on the board.
func (b Bounds) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Wrap folds a position that stepped one cell off an edge back onto the
// board. Each axis is wrapped independently.
func (b Bounds) Wrap(p Position) Position {
	if p.X < 0 {
		p.X = b.Width - 1
	} else if p.X >= b.Width {
		p.X = 0
	}

	if p.Y < 0 {
		p.Y = b.Height - 1
	} else if p.Y >= b.Height {
		p.Y = 0
	}
	return p
}

// Step moves p one cell in direction d and wraps the result.
func (b Bounds) Step(p Position, d Direction) Position {
	dx, dy := d.Delta()
	return b.Wrap(Position{X: p.X + dx, Y: p.Y + dy})
}

// Rand is the random source used for placement and spawn rolls.
// *math/rand/v2.Rand satisfies it; tests inject seeded or scripted sources.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// RandomPosition draws a uniformly random cell.
func (b Bounds) RandomPosition(r Rand) Position {
	return Position{X: r.IntN(b.Width), Y: r.IntN(b.Height)}
}

// RandomFree rejection-samples cells until one is not blocked.
// It never returns if every cell is blocked; callers rely on the board
// always having far more cells than occupants.
func (b Bounds) RandomFree(r Rand, blocked func(Position) bool) Position {
	for {
		p := b.RandomPosition(r)
		if !blocked(p) {
			return p
		}
	}
}
