// Package game implements the deterministic snake simulation: the session
// state machine, the tick-gated movement loop, collision resolution,
// power-up bookkeeping and scoring.
//
// A Game is not safe for concurrent use. Front ends call HandleIntent and
// Update from a single goroutine, once per rendered frame.
package game

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/object"
)

// ScoreStore persists the high score. Load returns 0 when nothing usable is
// stored; Save is best-effort and never reports failure.
type ScoreStore interface {
	Load() int
	Save(score int)
}

// ScoreRecorder is implemented by stores that also keep a history of
// finished sessions. Record is called once per session end, whatever the
// score; Top returns up to n recorded scores, best first.
type ScoreRecorder interface {
	Record(score int)
	Top(n int) ([]int, error)
}

// MemoryStore is a ScoreStore that keeps the value in memory only. It is
// safe for concurrent use and Save never lowers the stored value.
type MemoryStore struct {
	mu    sync.Mutex
	Value int
}

// Load returns the stored value.
func (m *MemoryStore) Load() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Value
}

// Save stores score if it beats the stored value.
func (m *MemoryStore) Save(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.Value {
		m.Value = score
	}
}

// Options configures a Game. Zero values select the defaults.
type Options struct {
	Bounds grid.Bounds // Defaults to config.GridWidth x config.GridHeight
	Rand   grid.Rand   // Defaults to a PCG source seeded from the clock
	Store  ScoreStore  // Defaults to a MemoryStore
	Mode   Mode
	Logger *log.Logger // Defaults to log.Default()
}

// Game holds one player's simulation state across sessions.
type Game struct {
	bounds grid.Bounds
	rng    grid.Rand
	store  ScoreStore
	logger *log.Logger

	state     State
	mode      Mode
	snake     *object.Snake
	food      object.Food
	powerUps  *object.PowerUpManager
	obstacles *object.Obstacles // nil outside obstacle mode

	frameCounter int
	moves        uint64 // Movement ticks in the current session
	highScore    int
	topScores    []int // Best finished sessions, when the store records them
	events       []Event
}

// New creates a game in the menu state with the high score loaded from the
// store.
func New(opts Options) *Game {
	if opts.Bounds.Width <= 0 || opts.Bounds.Height <= 0 {
		opts.Bounds = grid.Bounds{Width: config.GridWidth, Height: config.GridHeight}
	}
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if opts.Store == nil {
		opts.Store = &MemoryStore{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	g := &Game{
		bounds:   opts.Bounds,
		rng:      opts.Rand,
		store:    opts.Store,
		logger:   opts.Logger,
		state:    StateMenu,
		mode:     opts.Mode,
		snake:    object.NewSnake(opts.Bounds, opts.Bounds.Center()),
		powerUps: object.NewPowerUpManager(),
	}
	g.highScore = g.store.Load()
	g.loadTopScores()
	g.food.Respawn(g.bounds, g.rng, g.snake.Contains)
	return g
}

// Reset starts a fresh session layout: single-segment snake at the board
// center, new food, no power-ups, and obstacles when in obstacle mode.
func (g *Game) Reset() {
	g.snake.Reset(g.bounds.Center())
	g.food.Respawn(g.bounds, g.rng, g.snake.Contains)
	g.frameCounter = 0
	g.moves = 0
	g.powerUps.Reset()

	if g.mode == ModeObstacle {
		g.obstacles = object.GenerateObstacles(g.bounds, g.rng,
			object.Occupied(g.snake.Contains, object.At(g.food.Position)))
	} else {
		g.obstacles = nil
	}
}

// setState switches phase and emits a state change event.
func (g *Game) setState(to State) {
	if g.state == to {
		return
	}
	from := g.state
	g.state = to
	g.logger.Debug("state changed", "from", from, "to", to, "score", g.Score())
	g.emit(Event{Type: EventStateChanged, From: from, To: to})
}

// startSession resets the board and begins playing.
func (g *Game) startSession() {
	g.Reset()
	g.setState(StatePlaying)
}

// commitScore raises and persists the high score if the current session
// beat it.
func (g *Game) commitScore() {
	score := g.Score()
	if score <= g.highScore {
		return
	}
	g.highScore = score
	g.store.Save(score)
	g.logger.Info("new high score", "score", score)
	g.emit(Event{Type: EventHighScore, Score: score})
}

// endSession commits the score and, if the store keeps a history, records
// the finished session.
func (g *Game) endSession() {
	g.commitScore()
	if rec, ok := g.store.(ScoreRecorder); ok {
		rec.Record(g.Score())
		g.loadTopScores()
	}
}

func (g *Game) loadTopScores() {
	rec, ok := g.store.(ScoreRecorder)
	if !ok {
		return
	}
	top, err := rec.Top(config.TopScoresShown)
	if err != nil {
		g.logger.Debug("top scores not loaded", "err", err)
		return
	}
	g.topScores = top
}

// sessionLive reports whether a session is in progress (playing or paused).
func (g *Game) sessionLive() bool {
	return g.state == StatePlaying || g.state == StatePaused
}

// SetMode selects the board layout for the next session. Only honoured on
// the menu; returns whether the mode was applied.
func (g *Game) SetMode(m Mode) bool {
	if g.state != StateMenu {
		return false
	}
	g.mode = m
	return true
}

// State returns the current phase.
func (g *Game) State() State { return g.state }

// Mode returns the selected board layout.
func (g *Game) Mode() Mode { return g.mode }

// Score returns the current session score: snake length minus one.
func (g *Game) Score() int { return g.snake.Len() - 1 }

// HighScore returns the best score seen so far.
func (g *Game) HighScore() int { return g.highScore }

// Moves returns the number of movement ticks in the current session.
func (g *Game) Moves() uint64 { return g.moves }

// Bounds returns the board dimensions.
func (g *Game) Bounds() grid.Bounds { return g.bounds }
