package config

import "time"

// Board dimensions in cells.
const (
	GridWidth  = 40
	GridHeight = 30
)

// Movement. The snake advances once every MoveThreshold frames; a speed
// multiplier divides the threshold.
const (
	MoveThreshold = 10
)

// Power-ups
const (
	PowerUpSpawnChance   = 0.01 // Per movement tick, only while the board is empty
	PowerUpDuration      = 300  // Ticks
	BaseSpeedMultiplier  = 1.0
	SpeedBoostMultiplier = 2.0
	ShrinkSegments       = 2
	EffectTicksPerSecond = 60 // HUD conversion for remaining effect time
)

// Obstacle mode
const (
	MinObstacles = 5
	MaxObstacles = 8
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Input. An escape sequence still unfinished after EscapeTimeout is read
// as a lone ESC.
const (
	EscapeTimeout = 50 * time.Millisecond
)

// Persistence
const (
	DefaultHighScorePath = "highscore.txt"
	TopScoresShown       = 5 // Best finished sessions listed on the menu
)
