// Package audio turns game events into terminal feedback.
package audio

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/game"
)

const bell = "\a"

// Player rings the terminal bell for eat, crash and power-up events while
// sound is enabled. Sound starts enabled.
type Player struct {
	w       io.Writer
	logger  *log.Logger
	enabled bool
}

// NewPlayer creates a player writing bells to w. A nil w only logs.
func NewPlayer(w io.Writer, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{w: w, logger: logger, enabled: true}
}

// Enabled reports whether sound is on.
func (p *Player) Enabled() bool { return p.enabled }

// Toggle flips the sound flag and returns the new value.
func (p *Player) Toggle() bool {
	p.enabled = !p.enabled
	p.logger.Debug("sound toggled", "enabled", p.enabled)
	return p.enabled
}

// Play handles one event. EventSoundToggled flips the flag regardless of
// its current value. Returns whether a sound was emitted.
func (p *Player) Play(e game.Event) bool {
	switch e.Type {
	case game.EventSoundToggled:
		p.Toggle()
		return false
	case game.EventAte:
		return p.ring("eat")
	case game.EventCrashed:
		return p.ring("crash")
	case game.EventPowerUp:
		return p.ring("power up", "kind", e.PowerUp)
	}
	return false
}

// PlayAll plays every event in order.
func (p *Player) PlayAll(events []game.Event) {
	for _, e := range events {
		p.Play(e)
	}
}

func (p *Player) ring(sound string, keyvals ...interface{}) bool {
	if !p.enabled {
		return false
	}
	p.logger.Debug("sound", append([]interface{}{"name", sound}, keyvals...)...)
	if p.w != nil {
		_, _ = io.WriteString(p.w, bell)
	}
	return true
}
