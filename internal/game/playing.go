package game

import (
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/object"
)

// Update advances the simulation by one external frame. Outside the
// playing phase it does nothing. Returns whether a movement tick ran.
func (g *Game) Update() bool {
	if g.state != StatePlaying {
		return false
	}

	// Movement is throttled so the frame rate and game speed stay decoupled
	g.frameCounter++
	if g.frameCounter < g.powerUps.Threshold(config.MoveThreshold) {
		return false
	}
	g.frameCounter = 0

	g.step()
	return true
}

// step runs one movement tick.
func (g *Game) step() {
	g.moves++

	// Age effects before the spawn roll
	g.powerUps.Update(g.bounds, g.rng, object.Occupied(g.snake.Contains, object.At(g.food.Position)))

	head := g.snake.Move()

	if g.collides(head) {
		g.emit(Event{Type: EventCrashed})
		g.endSession()
		g.setState(StateGameOver)
		return
	}

	g.snake.Grow(head)

	if kind, ok := g.powerUps.CheckCollision(head); ok {
		if kind == object.Shrink {
			for i := 0; i < config.ShrinkSegments; i++ {
				g.snake.Shrink()
			}
		}
		g.emit(Event{Type: EventPowerUp, PowerUp: kind})
	}

	if head == g.food.Position {
		g.food.Respawn(g.bounds, g.rng, g.snake.Contains)
		g.emit(Event{Type: EventAte})
	} else {
		g.snake.Shrink()
	}
}

// collides reports whether entering head is fatal. Ghost mode suppresses
// both self and obstacle collisions.
func (g *Game) collides(head grid.Position) bool {
	if g.powerUps.Ghost() {
		return false
	}
	return g.snake.Contains(head) || g.obstacles.Contains(head)
}
