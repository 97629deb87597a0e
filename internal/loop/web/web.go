// Package web serves snake sessions over websockets: JSON intents in, JSON
// frames out. Every connection owns an independent game.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/tomz197/snake/internal/audio"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/loop"
)

const (
	writeWait      = 2 * time.Second
	maxMessageSize = 512
	intentBuffer   = 64
)

// ClientMessage is one message from the browser.
type ClientMessage struct {
	Intent string `json:"intent"`
}

// Frame is one message to the browser. It is sent whenever the snapshot
// changes or events fire.
type Frame struct {
	Snapshot game.Snapshot `json:"snapshot"`
	Events   []string      `json:"events,omitempty"`
	Sound    bool          `json:"sound"`
}

// Options configures a Handler.
type Options struct {
	Store     game.ScoreStore     // Shared by all sessions; defaults to in-memory
	NewRand   func() grid.Rand    // Per-session random source; defaults to clock-seeded
	Logger    *log.Logger         // Defaults to log.Default()
	Sessions  *loop.Sessions      // Defaults to a private registry
	FrameTime time.Duration       // Defaults to config.TargetFrameTime
	Context   context.Context     // Cancels every session; defaults to Background
	Upgrader  *websocket.Upgrader // Defaults to same-origin checks
}

// Handler upgrades requests to websockets and runs one game per connection.
type Handler struct {
	opts     Options
	upgrader *websocket.Upgrader
}

// NewHandler creates a Handler.
func NewHandler(opts Options) *Handler {
	if opts.Store == nil {
		opts.Store = &game.MemoryStore{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sessions == nil {
		opts.Sessions = loop.NewSessions()
	}
	if opts.FrameTime <= 0 {
		opts.FrameTime = config.TargetFrameTime
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	upgrader := opts.Upgrader
	if upgrader == nil {
		upgrader = &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		}
	}
	return &Handler{opts: opts, upgrader: upgrader}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error
		h.opts.Logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	id, ctx, done := h.opts.Sessions.Register(h.opts.Context)
	defer done()

	logger := h.opts.Logger.With("session", id)
	logger.Info("web session started", "remote", r.RemoteAddr)

	if err := h.serve(ctx, ws, logger); err != nil {
		logger.Warn("web session error", "err", err)
	}
	logger.Info("web session ended")
}

// serve runs the session until the player exits, the socket closes, or ctx
// is cancelled.
func (h *Handler) serve(ctx context.Context, ws *websocket.Conn, logger *log.Logger) error {
	defer ws.Close()

	var rng grid.Rand
	if h.opts.NewRand != nil {
		rng = h.opts.NewRand()
	}
	g := game.New(game.Options{Rand: rng, Store: h.opts.Store, Logger: logger})
	state := loop.NewState(g, audio.NewPlayer(nil, logger))

	intents := make(chan game.Intent, intentBuffer)
	readDone := make(chan struct{})
	go readIntents(ws, intents, readDone, logger)

	ticker := time.NewTicker(h.opts.FrameTime)
	defer ticker.Stop()

	var last []byte
	disconnected := false
	for state.Running {
		select {
		case <-ctx.Done():
			g.HandleIntent(game.IntentExit)
			closeSocket(ws, websocket.CloseGoingAway, "server shutting down")
			return nil
		case <-readDone:
			// Disconnect without an exit message still commits the score
			disconnected = true
			readDone = nil
			state.Enqueue(game.IntentExit)
		case <-ticker.C:
		}

	drain:
		for {
			select {
			case in := <-intents:
				state.Enqueue(in)
			default:
				break drain
			}
		}

		events := state.Step()
		if disconnected {
			continue
		}
		frame := Frame{Snapshot: g.Snapshot(), Sound: state.Audio.Enabled()}
		for _, e := range events {
			frame.Events = append(frame.Events, e.Type.String())
		}

		data, err := json.Marshal(frame)
		if err != nil {
			return fmt.Errorf("encode frame: %w", err)
		}
		if len(events) == 0 && bytes.Equal(data, last) {
			continue
		}
		last = data

		if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return fmt.Errorf("set write deadline: %w", err)
		}
		if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
			if errors.Is(err, websocket.ErrCloseSent) {
				return nil
			}
			state.Game.HandleIntent(game.IntentExit)
			return fmt.Errorf("write frame: %w", err)
		}
	}

	if !disconnected {
		closeSocket(ws, websocket.CloseNormalClosure, "bye")
	}
	return nil
}

// readIntents decodes client messages into intents until the socket
// closes. Unknown intents are logged and skipped.
func readIntents(ws *websocket.Conn, out chan<- game.Intent, done chan<- struct{}, logger *log.Logger) {
	defer close(done)
	ws.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("websocket read error", "err", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Debug("bad message", "err", err)
			continue
		}
		in, ok := game.ParseIntent(msg.Intent)
		if !ok {
			logger.Debug("unknown intent", "intent", msg.Intent)
			continue
		}

		select {
		case out <- in:
		default:
			logger.Debug("intent dropped", "intent", in)
		}
	}
}

func closeSocket(ws *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
