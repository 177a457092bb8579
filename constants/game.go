package constants

import "time"

// Game Loop Timing Constants
const (
	// TickRate is the number of logical simulation ticks per second
	TickRate = 60

	// GameUpdateInterval is the game logic update interval (one tick)
	GameUpdateInterval = time.Second / TickRate

	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GameDuration is the length of one run
	GameDuration = 5 * time.Minute
)

// World Dimensions
const (
	// DefaultWorldWidth is the logical width of the play field in world units
	DefaultWorldWidth = 1280

	// DefaultWorldHeight is the logical height of the play field in world units
	DefaultWorldHeight = 720
)

// GameMode selects the prompt family
type GameMode string

const (
	ModeHangul     GameMode = "hangul"
	ModeMath       GameMode = "math"
	ModeArithmetic GameMode = "arithmetic"
)

// Valid reports whether m names a known mode
func (m GameMode) Valid() bool {
	switch m {
	case ModeHangul, ModeMath, ModeArithmetic:
		return true
	}
	return false
}

// Difficulty bounds
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// DifficultySetting scales spawn cadence, enemy speed, enemy cap and enemy HP
type DifficultySetting struct {
	SpawnRate  float64
	Speed      float64
	MaxEnemies float64
	HP         float64
}

// DifficultySettings is indexed by difficulty level 1..5 (index 0 unused)
var DifficultySettings = [MaxDifficulty + 1]DifficultySetting{
	{},
	{SpawnRate: 0.5, Speed: 0.5, MaxEnemies: 0.6, HP: 0.7},
	{SpawnRate: 0.7, Speed: 0.75, MaxEnemies: 0.8, HP: 0.9},
	{SpawnRate: 0.9, Speed: 1.0, MaxEnemies: 1.0, HP: 1.0},
	{SpawnRate: 1.2, Speed: 1.2, MaxEnemies: 1.3, HP: 1.2},
	{SpawnRate: 1.5, Speed: 1.5, MaxEnemies: 1.6, HP: 1.5},
}

// ClampDifficulty forces d into the valid range
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// DifficultyFor returns the setting for d, clamped
func DifficultyFor(d int) DifficultySetting {
	return DifficultySettings[ClampDifficulty(d)]
}
