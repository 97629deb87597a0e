package object

import (
	"testing"

	"github.com/tomz197/snake/internal/grid"
)

var testBounds = grid.Bounds{Width: 40, Height: 30}

func TestChangeDirectionRejectsReverse(t *testing.T) {
	dirs := []grid.Direction{grid.Up, grid.Down, grid.Left, grid.Right}
	for _, current := range dirs {
		for _, next := range dirs {
			s := NewSnake(testBounds, grid.Position{X: 20, Y: 15})
			s.direction = current

			accepted := s.ChangeDirection(next)
			if next == current.Opposite() {
				if accepted || s.Direction() != current {
					t.Errorf("%v -> %v: reverse accepted, direction now %v", current, next, s.Direction())
				}
				continue
			}
			if !accepted || s.Direction() != next {
				t.Errorf("%v -> %v: turn rejected, direction now %v", current, next, s.Direction())
			}
		}
	}
}

func TestMoveWrapsAndDoesNotMutate(t *testing.T) {
	tests := []struct {
		name string
		head grid.Position
		dir  grid.Direction
		want grid.Position
	}{
		{"right", grid.Position{X: 39, Y: 7}, grid.Right, grid.Position{X: 0, Y: 7}},
		{"left", grid.Position{X: 0, Y: 7}, grid.Left, grid.Position{X: 39, Y: 7}},
		{"up", grid.Position{X: 3, Y: 0}, grid.Up, grid.Position{X: 3, Y: 29}},
		{"down", grid.Position{X: 3, Y: 29}, grid.Down, grid.Position{X: 3, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnake(testBounds, tt.head)
			s.direction = tt.dir
			if got := s.Move(); got != tt.want {
				t.Errorf("Move() = %v, want %v", got, tt.want)
			}
			if s.Head() != tt.head || s.Len() != 1 {
				t.Errorf("Move mutated the snake: head %v len %d", s.Head(), s.Len())
			}
		})
	}
}

func TestShrinkFloorsAtOne(t *testing.T) {
	for start := 1; start <= 6; start++ {
		s := NewSnake(testBounds, grid.Position{X: 0, Y: 0})
		for i := 1; i < start; i++ {
			s.Grow(grid.Position{X: i, Y: 0})
		}
		for i := 0; i < start+3; i++ {
			s.Shrink()
			if s.Len() < 1 {
				t.Fatalf("start %d: length dropped to %d", start, s.Len())
			}
		}
		if s.Len() != 1 {
			t.Errorf("start %d: final length %d, want 1", start, s.Len())
		}
	}
}

func TestGrowPrependsHead(t *testing.T) {
	s := NewSnake(testBounds, grid.Position{X: 1, Y: 1})
	s.Grow(grid.Position{X: 2, Y: 1})
	s.Grow(grid.Position{X: 3, Y: 1})

	want := []grid.Position{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}}
	got := s.Body()
	if len(got) != len(want) {
		t.Fatalf("Body() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Body()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !s.Contains(grid.Position{X: 1, Y: 1}) {
		t.Error("Contains should find the tail")
	}
	if s.Contains(grid.Position{X: 4, Y: 1}) {
		t.Error("Contains found a cell outside the body")
	}
}

func TestBodyIsACopy(t *testing.T) {
	s := NewSnake(testBounds, grid.Position{X: 5, Y: 5})
	body := s.Body()
	body[0] = grid.Position{X: 0, Y: 0}
	if s.Head() != (grid.Position{X: 5, Y: 5}) {
		t.Error("mutating Body() changed the snake")
	}
}

func TestFoodRespawnAvoidsOccupied(t *testing.T) {
	r := &scriptedRand{ints: []int{20, 15, 21, 15, 3, 4}}
	occupied := grid.NewSet(grid.Position{X: 20, Y: 15}, grid.Position{X: 21, Y: 15})

	var f Food
	f.Respawn(testBounds, r, occupied.Has)
	if want := (grid.Position{X: 3, Y: 4}); f.Position != want {
		t.Errorf("food at %v, want %v", f.Position, want)
	}
}

func TestGenerateObstacles(t *testing.T) {
	avoid := grid.Position{X: 0, Y: 1}
	for roll := 0; roll < 4; roll++ {
		// First IntN picks the count. The cells then walk along row 1,
		// starting on the avoided cell and repeating (1,1) once.
		ints := []int{roll, 0, 1, 1, 1, 1, 1}
		for x := 2; x < 20; x++ {
			ints = append(ints, x, 1)
		}
		o := GenerateObstacles(testBounds, &scriptedRand{ints: ints}, At(avoid))

		if o.Len() != 5+roll {
			t.Errorf("roll %d: %d obstacles, want %d", roll, o.Len(), 5+roll)
		}
		if o.Contains(avoid) {
			t.Errorf("roll %d: obstacle placed on avoided cell", roll)
		}
		seen := grid.NewSet()
		for _, c := range o.Cells() {
			if seen.Has(c) {
				t.Errorf("roll %d: duplicate obstacle %v", roll, c)
			}
			seen.Add(c)
		}
	}
}

func TestNilObstacles(t *testing.T) {
	var o *Obstacles
	if o.Contains(grid.Position{}) || o.Len() != 0 || o.Cells() != nil {
		t.Error("nil obstacle set should be empty")
	}
}
