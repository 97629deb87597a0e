package object

import (
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/grid"
)

// PowerUpKind identifies what a power-up does when collected.
type PowerUpKind int

const (
	SpeedBoost PowerUpKind = iota // Doubles movement speed while active
	Shrink                        // Removes tail segments once, on pickup
	GhostMode                     // Suppresses fatal collisions while active
)

// powerUpKinds lists every kind, in the order spawn rolls index them.
var powerUpKinds = [...]PowerUpKind{SpeedBoost, Shrink, GhostMode}

// String returns the display name of the kind.
func (k PowerUpKind) String() string {
	switch k {
	case SpeedBoost:
		return "speed boost"
	case Shrink:
		return "shrink"
	case GhostMode:
		return "ghost mode"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by its display name.
func (k PowerUpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// PowerUp is an uncollected power-up sitting on the board.
type PowerUp struct {
	Position grid.Position `json:"position"`
	Kind     PowerUpKind   `json:"kind"`
	Duration int           `json:"duration"` // Effect length in ticks once collected
}

// ActiveEffect is a collected power-up whose effect is still in force.
type ActiveEffect struct {
	Kind      PowerUpKind `json:"kind"`
	Remaining int         `json:"remaining"` // Ticks left
}

// PowerUpManager owns the board power-up, the active effects and the
// gameplay flags they drive.
type PowerUpManager struct {
	board           []PowerUp // At most one entry
	active          []ActiveEffect
	expired         []ActiveEffect // Scratch buffer reused by Age
	speedMultiplier float64
	ghost           bool
}

// NewPowerUpManager creates a manager with no power-ups and neutral flags.
func NewPowerUpManager() *PowerUpManager {
	m := &PowerUpManager{}
	m.Reset()
	return m
}

// Reset clears the board and every active effect and restores the flags.
func (m *PowerUpManager) Reset() {
	m.board = m.board[:0]
	m.active = m.active[:0]
	m.speedMultiplier = config.BaseSpeedMultiplier
	m.ghost = false
}

// Update runs one movement tick: age the active effects, then maybe spawn a
// new board power-up. The order matters; a power-up spawned this tick is
// never aged on its own spawn tick.
func (m *PowerUpManager) Update(bounds grid.Bounds, r grid.Rand, blocked func(grid.Position) bool) {
	m.Age()
	m.MaybeSpawn(bounds, r, blocked)
}

// Age decrements every active effect by one tick. Effects reaching zero are
// dropped and their flag or multiplier is reset exactly once.
func (m *PowerUpManager) Age() {
	kept := m.active[:0]
	m.expired = m.expired[:0]
	for _, e := range m.active {
		if e.Remaining > 0 {
			e.Remaining--
		}
		if e.Remaining == 0 {
			m.expired = append(m.expired, e)
		} else {
			kept = append(kept, e)
		}
	}
	m.active = kept

	for _, e := range m.expired {
		m.deactivate(e.Kind)
	}
}

// deactivate undoes the persistent effect of kind.
func (m *PowerUpManager) deactivate(kind PowerUpKind) {
	switch kind {
	case SpeedBoost:
		m.speedMultiplier = config.BaseSpeedMultiplier
	case GhostMode:
		m.ghost = false
	case Shrink:
		// One-shot; nothing persists.
	}
}

// MaybeSpawn places a power-up with probability PowerUpSpawnChance when the
// board is empty. The kind is uniform; the cell is rejection-sampled
// against blocked.
func (m *PowerUpManager) MaybeSpawn(bounds grid.Bounds, r grid.Rand, blocked func(grid.Position) bool) bool {
	if len(m.board) > 0 {
		return false
	}
	if r.Float64() >= config.PowerUpSpawnChance {
		return false
	}
	m.Spawn(m.RandomPowerUp(bounds, r, blocked))
	return true
}

// RandomPowerUp rolls a kind and a free cell for a new power-up.
func (m *PowerUpManager) RandomPowerUp(bounds grid.Bounds, r grid.Rand, blocked func(grid.Position) bool) PowerUp {
	kind := powerUpKinds[r.IntN(len(powerUpKinds))]
	if blocked == nil {
		blocked = func(grid.Position) bool { return false }
	}
	return PowerUp{
		Position: bounds.RandomFree(r, blocked),
		Kind:     kind,
		Duration: config.PowerUpDuration,
	}
}

// Spawn puts p on the board, replacing any power-up already there.
func (m *PowerUpManager) Spawn(p PowerUp) {
	m.board = append(m.board[:0], p)
}

// CheckCollision collects the board power-up if head is on it and applies
// its effect. Shrink only reports the pickup; the caller removes the
// segments. Returns the collected kind and whether anything was collected.
func (m *PowerUpManager) CheckCollision(head grid.Position) (PowerUpKind, bool) {
	if len(m.board) == 0 || m.board[0].Position != head {
		return 0, false
	}
	p := m.board[0]
	m.board = m.board[:0]

	switch p.Kind {
	case SpeedBoost:
		m.speedMultiplier = config.SpeedBoostMultiplier
		m.activate(p.Kind, p.Duration)
	case GhostMode:
		m.ghost = true
		m.activate(p.Kind, p.Duration)
	case Shrink:
		// Segments are removed by the caller.
	}
	return p.Kind, true
}

// activate adds an effect entry, or refreshes the one already running for
// kind so each kind appears at most once.
func (m *PowerUpManager) activate(kind PowerUpKind, duration int) {
	for i := range m.active {
		if m.active[i].Kind == kind {
			m.active[i].Remaining = duration
			return
		}
	}
	m.active = append(m.active, ActiveEffect{Kind: kind, Remaining: duration})
}

// SpeedMultiplier returns the current movement speed multiplier.
func (m *PowerUpManager) SpeedMultiplier() float64 {
	return m.speedMultiplier
}

// Ghost reports whether fatal collisions are currently suppressed.
func (m *PowerUpManager) Ghost() bool {
	return m.ghost
}

// Threshold returns the number of frames between moves: base divided by the
// speed multiplier, truncated.
func (m *PowerUpManager) Threshold(base int) int {
	return int(float64(base) / m.speedMultiplier)
}

// Board returns a copy of the uncollected power-ups (zero or one).
func (m *PowerUpManager) Board() []PowerUp {
	out := make([]PowerUp, len(m.board))
	copy(out, m.board)
	return out
}

// Active returns a copy of the running effects.
func (m *PowerUpManager) Active() []ActiveEffect {
	out := make([]ActiveEffect, len(m.active))
	copy(out, m.active)
	return out
}
