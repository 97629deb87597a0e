package loop

import (
	"github.com/tomz197/snake/internal/audio"
	"github.com/tomz197/snake/internal/game"
)

// State binds a game to its per-connection collaborators and the queue of
// intents waiting to be applied.
type State struct {
	Game    *game.Game
	Audio   *audio.Player
	Pending []game.Intent // FIFO; one intent is consumed per frame
	Running bool
}

// NewState creates a running state for g. A nil player disables sound.
func NewState(g *game.Game, p *audio.Player) *State {
	return &State{Game: g, Audio: p, Running: true}
}

// Enqueue appends intents to the pending queue. Exit skips the queue so
// quitting never waits behind buffered steering.
func (s *State) Enqueue(intents ...game.Intent) {
	for _, in := range intents {
		if in == game.IntentExit {
			s.Pending = append([]game.Intent{in}, s.Pending...)
			continue
		}
		s.Pending = append(s.Pending, in)
	}
}

// Step runs one frame of simulation: apply at most one pending intent,
// advance the game, and route the resulting events. Returns the events
// produced this frame.
func (s *State) Step() []game.Event {
	if len(s.Pending) > 0 {
		in := s.Pending[0]
		s.Pending = s.Pending[1:]
		s.Game.HandleIntent(in)
	}

	s.Game.Update()

	events := s.Game.Events()
	if s.Audio != nil {
		s.Audio.PlayAll(events)
	}
	for _, e := range events {
		if e.Type == game.EventExited {
			s.Running = false
		}
	}
	return events
}
