package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tomz197/snake/internal/grid"
)

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		name    string
		intents []Intent
		want    State
	}{
		{"menu confirm", []Intent{IntentConfirm}, StatePlaying},
		{"menu ignores turns", []Intent{IntentTurnUp, IntentPause}, StateMenu},
		{"pause", []Intent{IntentConfirm, IntentPause}, StatePaused},
		{"pause key toggles", []Intent{IntentConfirm, IntentPause, IntentPause}, StatePlaying},
		{"resume", []Intent{IntentConfirm, IntentPause, IntentResume}, StatePlaying},
		{"playing to menu", []Intent{IntentConfirm, IntentCancel}, StateMenu},
		{"paused to menu", []Intent{IntentConfirm, IntentPause, IntentCancel}, StateMenu},
		{"paused ignores turns", []Intent{IntentConfirm, IntentPause, IntentTurnUp}, StatePaused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, Options{})
			for _, in := range tt.intents {
				g.HandleIntent(in)
			}
			if g.State() != tt.want {
				t.Errorf("state = %v, want %v", g.State(), tt.want)
			}
		})
	}
}

// crash drives a fresh session into the game over state.
func crash(t *testing.T, g *Game) {
	t.Helper()
	startPlaying(t, g)
	setBody(g, grid.Left, curl...)
	g.food.Position = grid.Position{X: 0, Y: 0}
	g.HandleIntent(IntentTurnDown)
	moveOnce(t, g)
	if g.State() != StateGameOver {
		t.Fatalf("state = %v, want game over", g.State())
	}
	g.Events()
}

func TestGameOverRestart(t *testing.T) {
	for _, in := range []Intent{IntentConfirm, IntentRestart} {
		g := newTestGame(t, Options{})
		crash(t, g)

		if !g.HandleIntent(in) {
			t.Fatalf("%v ignored on game over", in)
		}
		if g.State() != StatePlaying {
			t.Errorf("%v: state = %v, want playing", in, g.State())
		}
		if g.snake.Len() != 1 || g.Score() != 0 {
			t.Errorf("%v: restart kept the old snake (len %d)", in, g.snake.Len())
		}
		if g.snake.Head() != g.bounds.Center() || g.snake.Direction() != grid.Right {
			t.Errorf("%v: snake not reset to the center heading right", in)
		}
	}
}

func TestGameOverToMenu(t *testing.T) {
	g := newTestGame(t, Options{})
	crash(t, g)
	g.HandleIntent(IntentCancel)
	if g.State() != StateMenu {
		t.Errorf("state = %v, want menu", g.State())
	}
	if g.Update() {
		t.Error("Update ran on the menu")
	}
}

func TestPausedDoesNotMove(t *testing.T) {
	g := newTestGame(t, Options{})
	startPlaying(t, g)
	g.HandleIntent(IntentPause)
	head := g.snake.Head()
	for i := 0; i < 50; i++ {
		if g.Update() {
			t.Fatal("snake moved while paused")
		}
	}
	if g.snake.Head() != head {
		t.Error("head changed while paused")
	}
}

func TestTurnIntents(t *testing.T) {
	g := newTestGame(t, Options{})
	startPlaying(t, g)

	if g.HandleIntent(IntentTurnLeft) {
		t.Error("reverse turn accepted")
	}
	if g.snake.Direction() != grid.Right {
		t.Errorf("direction = %v, want right", g.snake.Direction())
	}
	if !g.HandleIntent(IntentTurnUp) || g.snake.Direction() != grid.Up {
		t.Error("turn up rejected")
	}
	if !g.HandleIntent(IntentTurnLeft) || g.snake.Direction() != grid.Left {
		t.Error("turn left rejected")
	}
	if !g.HandleIntent(IntentTurnDown) || g.snake.Direction() != grid.Down {
		t.Error("turn down rejected")
	}
}

func TestCancelCommitsScore(t *testing.T) {
	store := &MemoryStore{Value: 1}
	g := newTestGame(t, Options{Store: store})
	startPlaying(t, g)
	setBody(g, grid.Right,
		grid.Position{X: 22, Y: 15},
		grid.Position{X: 21, Y: 15},
		grid.Position{X: 20, Y: 15},
	)
	g.HandleIntent(IntentCancel)

	if g.HighScore() != 2 || store.Value != 2 {
		t.Errorf("high score = %d, stored %d; want 2", g.HighScore(), store.Value)
	}
	if !hasEvent(g.Events(), EventHighScore) {
		t.Error("no high score event")
	}
}

func TestExit(t *testing.T) {
	store := &MemoryStore{}
	g := newTestGame(t, Options{Store: store})
	startPlaying(t, g)
	setBody(g, grid.Right, grid.Position{X: 21, Y: 15}, grid.Position{X: 20, Y: 15})

	if !g.HandleIntent(IntentExit) {
		t.Fatal("exit ignored")
	}
	if !hasEvent(g.Events(), EventExited) {
		t.Error("no exit event")
	}
	if store.Value != 1 {
		t.Errorf("stored = %d, want 1", store.Value)
	}
}

func TestToggleMode(t *testing.T) {
	g := newTestGame(t, Options{})
	if !g.HandleIntent(IntentToggleMode) || g.Mode() != ModeObstacle {
		t.Fatalf("mode = %v, want obstacle", g.Mode())
	}
	startPlaying(t, g)

	n := g.obstacles.Len()
	if n < 5 || n > 8 {
		t.Errorf("%d obstacles, want 5..8", n)
	}
	for _, c := range g.obstacles.Cells() {
		if g.snake.Contains(c) || c == g.food.Position {
			t.Errorf("obstacle %v overlaps the snake or food", c)
		}
	}

	if g.HandleIntent(IntentToggleMode) {
		t.Error("mode toggled during play")
	}
	if g.SetMode(ModeNormal) {
		t.Error("SetMode applied during play")
	}

	g.HandleIntent(IntentCancel)
	g.HandleIntent(IntentToggleMode)
	g.HandleIntent(IntentConfirm)
	if g.obstacles.Len() != 0 {
		t.Errorf("normal mode kept %d obstacles", g.obstacles.Len())
	}
}

func TestToggleSoundEmitsEvent(t *testing.T) {
	g := newTestGame(t, Options{})
	g.HandleIntent(IntentToggleSound)
	if !hasEvent(g.Events(), EventSoundToggled) {
		t.Error("no sound toggled event")
	}
	if g.Events() != nil {
		t.Error("Events did not clear the queue")
	}
}

func TestStateChangeEvents(t *testing.T) {
	g := newTestGame(t, Options{})
	g.HandleIntent(IntentConfirm)
	events := g.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Type != EventStateChanged || e.From != StateMenu || e.To != StatePlaying {
		t.Errorf("event = %+v, want menu -> playing", e)
	}
}

func TestParseIntent(t *testing.T) {
	for intent, name := range intentNames {
		got, ok := ParseIntent(name)
		if got != intent {
			t.Errorf("ParseIntent(%q) = %v, want %v", name, got, intent)
		}
		if ok != (intent != IntentNone) {
			t.Errorf("ParseIntent(%q) ok = %v", name, ok)
		}
	}
	if _, ok := ParseIntent("jump"); ok {
		t.Error("unknown intent parsed")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	g := newTestGame(t, Options{Store: &MemoryStore{Value: 3}})
	startPlaying(t, g)
	snap := g.Snapshot()

	if snap.State != StatePlaying || snap.HighScore != 3 || snap.Width != 40 || snap.Height != 30 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	snap.Snake[0] = grid.Position{X: 0, Y: 0}
	if g.snake.Head() == (grid.Position{X: 0, Y: 0}) {
		t.Error("snapshot shares the snake body")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"state":"playing"`, `"mode":"normal"`, `"direction":"right"`, `"obstacles":[]`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("snapshot JSON missing %s: %s", want, data)
		}
	}
}
