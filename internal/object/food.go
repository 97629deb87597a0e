package object

import "github.com/tomz197/snake/internal/grid"

// Food is the single collectible on the board.
type Food struct {
	Position grid.Position
}

// Respawn moves the food to a uniformly random cell that occupied rejects.
// occupied may be nil.
func (f *Food) Respawn(bounds grid.Bounds, r grid.Rand, occupied func(grid.Position) bool) {
	if occupied == nil {
		occupied = func(grid.Position) bool { return false }
	}
	f.Position = bounds.RandomFree(r, occupied)
}
