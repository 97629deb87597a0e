// Package loop provides the fixed-rate terminal game loop.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/audio"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/input"
)

// Options configures one terminal session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to draw.DefaultTermSizeFunc
	Store        game.ScoreStore   // Defaults to an in-memory store
	Rand         grid.Rand         // Defaults to a clock-seeded source
	Mode         game.Mode
	Color        bool          // Styled output
	Logger       *log.Logger   // Defaults to log.Default()
	FrameTime    time.Duration // Defaults to config.TargetFrameTime
}

// Run starts the main game loop with the standard Input → Update → Draw cycle.
// It returns nil when the player exits or the input reaches EOF, and the
// context error when ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	frameTime := opts.FrameTime
	if frameTime <= 0 {
		frameTime = config.TargetFrameTime
	}

	g := game.New(game.Options{
		Rand:   opts.Rand,
		Store:  opts.Store,
		Mode:   opts.Mode,
		Logger: logger,
	})
	state := NewState(g, audio.NewPlayer(w, logger))
	renderer := draw.NewRenderer(w, draw.Options{TermSizeFunc: opts.TermSizeFunc, Color: opts.Color})
	stream := input.StartStream(r)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	logger.Debug("session started", "highScore", g.HighScore())

	for state.Running {
		// ===== INPUT PHASE =====
		state.Enqueue(input.ReadInput(stream)...)
		if stream.Closed() {
			// Leaving without an explicit quit still commits the score
			state.Enqueue(game.IntentExit)
		}

		// ===== UPDATE PHASE =====
		state.Step()
		if !state.Running {
			break
		}

		// ===== DRAW PHASE =====
		renderer.SetSound(state.Audio.Enabled())
		if err := renderer.Render(g.Snapshot()); err != nil {
			g.HandleIntent(game.IntentExit)
			return fmt.Errorf("render frame: %w", err)
		}

		// ===== FRAME TIMING =====
		select {
		case <-ctx.Done():
			g.HandleIntent(game.IntentExit)
			draw.ClearScreen(w)
			return ctx.Err()
		case <-ticker.C:
		}
	}

	logger.Debug("session ended", "highScore", g.HighScore())
	draw.ClearScreen(w)
	return nil
}
