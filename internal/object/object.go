// Package object provides the board entities: the snake, the food, the
// power-ups with their timed effects, and the obstacle set.
package object

import "github.com/tomz197/snake/internal/grid"

// Occupied combines cell predicates; a cell is occupied if any of them
// reports it. Nil predicates are skipped.
func Occupied(preds ...func(grid.Position) bool) func(grid.Position) bool {
	return func(p grid.Position) bool {
		for _, pred := range preds {
			if pred != nil && pred(p) {
				return true
			}
		}
		return false
	}
}

// At returns a predicate matching exactly one cell.
func At(cell grid.Position) func(grid.Position) bool {
	return func(p grid.Position) bool {
		return p == cell
	}
}
