package game

// State is the current session phase.
type State int

const (
	StateMenu     State = iota // Title screen, mode and sound toggles
	StatePlaying               // Active gameplay
	StatePaused                // Gameplay frozen
	StateGameOver              // Crashed, show restart prompt
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Mode selects the board layout for the next session.
type Mode int

const (
	ModeNormal   Mode = iota // Empty board
	ModeObstacle             // Board with a few static obstacle cells
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Intent is a discrete player command delivered by an input source.
type Intent int

const (
	IntentNone Intent = iota
	IntentTurnUp
	IntentTurnDown
	IntentTurnLeft
	IntentTurnRight
	IntentPause
	IntentResume
	IntentConfirm
	IntentRestart
	IntentCancel
	IntentExit
	IntentToggleMode
	IntentToggleSound
)

var intentNames = map[Intent]string{
	IntentNone:        "none",
	IntentTurnUp:      "turn_up",
	IntentTurnDown:    "turn_down",
	IntentTurnLeft:    "turn_left",
	IntentTurnRight:   "turn_right",
	IntentPause:       "pause",
	IntentResume:      "resume",
	IntentConfirm:     "confirm",
	IntentRestart:     "restart",
	IntentCancel:      "cancel",
	IntentExit:        "exit",
	IntentToggleMode:  "toggle_mode",
	IntentToggleSound: "toggle_sound",
}

// String returns the wire name of the intent.
func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// ParseIntent maps a wire name back to an intent. Unknown names yield
// IntentNone and false.
func ParseIntent(name string) (Intent, bool) {
	for intent, n := range intentNames {
		if n == name {
			return intent, intent != IntentNone
		}
	}
	return IntentNone, false
}
