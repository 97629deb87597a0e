package game

import (
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/object"
)

// Snapshot is a read-only copy of everything a renderer needs. Slices are
// owned by the snapshot; mutating them does not affect the game.
type Snapshot struct {
	State           State                 `json:"state"`
	Mode            Mode                  `json:"mode"`
	Width           int                   `json:"width"`
	Height          int                   `json:"height"`
	Snake           []grid.Position       `json:"snake"`
	Direction       grid.Direction        `json:"direction"`
	Food            grid.Position         `json:"food"`
	PowerUps        []object.PowerUp      `json:"powerUps"`
	Obstacles       []grid.Position       `json:"obstacles"`
	Effects         []object.ActiveEffect `json:"effects"`
	Score           int                   `json:"score"`
	HighScore       int                   `json:"highScore"`
	SpeedMultiplier float64               `json:"speedMultiplier"`
	Ghost           bool                  `json:"ghost"`
	Moves           uint64                `json:"moves"`
	TopScores       []int                 `json:"topScores"`
}

// Snapshot copies the current game state.
func (g *Game) Snapshot() Snapshot {
	obstacles := g.obstacles.Cells()
	if obstacles == nil {
		obstacles = []grid.Position{}
	}
	return Snapshot{
		State:           g.state,
		Mode:            g.mode,
		Width:           g.bounds.Width,
		Height:          g.bounds.Height,
		Snake:           g.snake.Body(),
		Direction:       g.snake.Direction(),
		Food:            g.food.Position,
		PowerUps:        g.powerUps.Board(),
		Obstacles:       obstacles,
		Effects:         g.powerUps.Active(),
		Score:           g.Score(),
		HighScore:       g.highScore,
		SpeedMultiplier: g.powerUps.SpeedMultiplier(),
		Ghost:           g.powerUps.Ghost(),
		Moves:           g.moves,
		TopScores:       append([]int{}, g.topScores...),
	}
}
