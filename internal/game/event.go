package game

import "github.com/tomz197/snake/internal/object"

// EventType identifies a feedback event emitted by the game.
type EventType int

const (
	EventAte           EventType = iota // Food eaten
	EventCrashed                        // Fatal collision
	EventPowerUp                        // Power-up collected; see Event.PowerUp
	EventStateChanged                   // Session phase changed; see From/To
	EventHighScore                      // New high score committed; see Score
	EventSoundToggled                   // Player asked to flip the sound flag
	EventExited                         // Player asked to leave
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventAte:
		return "ate"
	case EventCrashed:
		return "crashed"
	case EventPowerUp:
		return "power_up"
	case EventStateChanged:
		return "state_changed"
	case EventHighScore:
		return "high_score"
	case EventSoundToggled:
		return "sound_toggled"
	case EventExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Event is emitted during HandleIntent or Update and drained by the front
// end for audio and UI feedback.
type Event struct {
	Type    EventType
	PowerUp object.PowerUpKind // EventPowerUp
	From    State              // EventStateChanged
	To      State              // EventStateChanged
	Score   int                // EventHighScore
}

// emit queues an event for the next Events call.
func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// Events returns and clears the queued events.
func (g *Game) Events() []Event {
	if len(g.events) == 0 {
		return nil
	}
	out := g.events
	g.events = nil
	return out
}
