package web

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/loop"
)

// wireFrame mirrors Frame with the enums decoded as their names.
type wireFrame struct {
	Snapshot struct {
		State     string          `json:"state"`
		Mode      string          `json:"mode"`
		Snake     []grid.Position `json:"snake"`
		Score     int             `json:"score"`
		HighScore int             `json:"highScore"`
		TopScores []int           `json:"topScores"`
	} `json:"snapshot"`
	Events []string `json:"events"`
	Sound  bool     `json:"sound"`
}

// runLog is a ScoreStore that also keeps finished sessions.
type runLog struct {
	game.MemoryStore
	runs []int
}

func (r *runLog) Record(score int)         { r.runs = append(r.runs, score) }
func (r *runLog) Top(n int) ([]int, error) { return append([]int{}, r.runs[:min(n, len(r.runs))]...), nil }

type fixture struct {
	sessions *loop.Sessions
	cancel   context.CancelFunc
	conn     *websocket.Conn
}

func setup(t *testing.T, store game.ScoreStore) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	sessions := loop.NewSessions()
	h := NewHandler(Options{
		Store:     store,
		NewRand:   func() grid.Rand { return rand.New(rand.NewPCG(5, 6)) },
		Logger:    log.New(io.Discard),
		Sessions:  sessions,
		FrameTime: time.Millisecond,
		Context:   ctx,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	t.Cleanup(cancel)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return &fixture{sessions: sessions, cancel: cancel, conn: conn}
}

func (f *fixture) read(t *testing.T) wireFrame {
	t.Helper()
	if err := f.conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, data, err := f.conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var frame wireFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return frame
}

// readUntil reads frames until match returns true.
func (f *fixture) readUntil(t *testing.T, match func(wireFrame) bool) wireFrame {
	t.Helper()
	for i := 0; i < 1000; i++ {
		frame := f.read(t)
		if match(frame) {
			return frame
		}
	}
	t.Fatal("expected frame never arrived")
	return wireFrame{}
}

func (f *fixture) send(t *testing.T, intent string) {
	t.Helper()
	if err := f.conn.WriteJSON(ClientMessage{Intent: intent}); err != nil {
		t.Fatalf("send %s: %v", intent, err)
	}
}

func hasEvent(frame wireFrame, name string) bool {
	for _, e := range frame.Events {
		if e == name {
			return true
		}
	}
	return false
}

func TestSessionStartsOnMenu(t *testing.T) {
	f := setup(t, &game.MemoryStore{Value: 9})
	frame := f.read(t)
	if frame.Snapshot.State != "menu" {
		t.Errorf("state = %q, want menu", frame.Snapshot.State)
	}
	if frame.Snapshot.HighScore != 9 {
		t.Errorf("high score = %d, want 9", frame.Snapshot.HighScore)
	}
	if !frame.Sound {
		t.Error("sound starts disabled")
	}
}

func TestIntentRoundTrip(t *testing.T) {
	f := setup(t, nil)
	f.read(t)

	f.send(t, "toggle_mode")
	f.readUntil(t, func(w wireFrame) bool { return w.Snapshot.Mode == "obstacle" })
	f.send(t, "toggle_mode")
	f.readUntil(t, func(w wireFrame) bool { return w.Snapshot.Mode == "normal" })

	f.send(t, "confirm")
	frame := f.readUntil(t, func(w wireFrame) bool { return w.Snapshot.State == "playing" })
	if len(frame.Snapshot.Snake) != 1 {
		t.Errorf("snake length = %d, want 1", len(frame.Snapshot.Snake))
	}

	f.send(t, "pause")
	f.readUntil(t, func(w wireFrame) bool { return w.Snapshot.State == "paused" })
}

func TestMenuListsFinishedRuns(t *testing.T) {
	f := setup(t, &runLog{})
	if frame := f.read(t); len(frame.Snapshot.TopScores) != 0 {
		t.Fatalf("top scores = %v before any run", frame.Snapshot.TopScores)
	}

	f.send(t, "confirm")
	f.readUntil(t, func(w wireFrame) bool { return w.Snapshot.State == "playing" })
	f.send(t, "cancel")
	frame := f.readUntil(t, func(w wireFrame) bool { return w.Snapshot.State == "menu" })
	if len(frame.Snapshot.TopScores) != 1 || frame.Snapshot.TopScores[0] != 0 {
		t.Errorf("top scores = %v, want [0]", frame.Snapshot.TopScores)
	}
}

func TestUnknownIntentIgnored(t *testing.T) {
	f := setup(t, nil)
	f.read(t)
	f.send(t, "fly")
	f.send(t, "toggle_sound")
	frame := f.readUntil(t, func(w wireFrame) bool { return hasEvent(w, "sound_toggled") })
	if frame.Sound {
		t.Error("sound still on after toggle")
	}
	if frame.Snapshot.State != "menu" {
		t.Errorf("state = %q, want menu", frame.Snapshot.State)
	}
}

func TestExitClosesSocket(t *testing.T) {
	f := setup(t, nil)
	f.read(t)
	f.send(t, "exit")
	f.readUntil(t, func(w wireFrame) bool { return hasEvent(w, "exited") })

	if err := f.conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, _, err := f.conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("read after exit = %v, want normal close", err)
	}
}

func TestShutdownClosesSessions(t *testing.T) {
	f := setup(t, nil)
	f.read(t)
	f.cancel()

	if err := f.conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	for {
		_, _, err := f.conn.ReadMessage()
		if err == nil {
			continue
		}
		if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
			t.Errorf("read after shutdown = %v, want going away", err)
		}
		break
	}
	if left := f.sessions.Shutdown(2 * time.Second); left != 0 {
		t.Errorf("%d sessions still registered", left)
	}
}

func TestDisconnectEndsSession(t *testing.T) {
	f := setup(t, nil)
	f.read(t)
	if f.sessions.Count() != 1 {
		t.Fatalf("count = %d, want 1", f.sessions.Count())
	}
	f.conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for f.sessions.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if f.sessions.Count() != 0 {
		t.Error("session still registered after disconnect")
	}
}
