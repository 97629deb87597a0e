package object

import (
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/grid"
)

// Obstacles is the static set of blocking cells for one session.
type Obstacles struct {
	cells []grid.Position // Generation order, for rendering
	set   grid.Set
}

// NewObstacles creates a fixed obstacle set from cells. Duplicates are
// kept once.
func NewObstacles(cells ...grid.Position) *Obstacles {
	o := &Obstacles{set: make(grid.Set, len(cells))}
	for _, c := range cells {
		if o.set.Has(c) {
			continue
		}
		o.cells = append(o.cells, c)
		o.set.Add(c)
	}
	return o
}

// GenerateObstacles places MinObstacles..MaxObstacles distinct cells,
// avoiding every cell avoid rejects.
func GenerateObstacles(bounds grid.Bounds, r grid.Rand, avoid func(grid.Position) bool) *Obstacles {
	n := config.MinObstacles + r.IntN(config.MaxObstacles-config.MinObstacles+1)
	o := &Obstacles{
		cells: make([]grid.Position, 0, n),
		set:   make(grid.Set, n),
	}
	for i := 0; i < n; i++ {
		p := bounds.RandomFree(r, func(p grid.Position) bool {
			return o.set.Has(p) || (avoid != nil && avoid(p))
		})
		o.cells = append(o.cells, p)
		o.set.Add(p)
	}
	return o
}

// Contains reports whether p is blocked. A nil set blocks nothing.
func (o *Obstacles) Contains(p grid.Position) bool {
	if o == nil {
		return false
	}
	return o.set.Has(p)
}

// Len returns the number of obstacle cells.
func (o *Obstacles) Len() int {
	if o == nil {
		return 0
	}
	return len(o.cells)
}

// Cells returns a copy of the obstacle cells.
func (o *Obstacles) Cells() []grid.Position {
	if o == nil {
		return nil
	}
	out := make([]grid.Position, len(o.cells))
	copy(out, o.cells)
	return out
}
