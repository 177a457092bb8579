package engine

import (
	"time"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
)

// Phase is the run state machine position
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhasePlaying        Phase = "playing"
	PhaseLevelUp        Phase = "level_up"
	PhaseArtifactSelect Phase = "artifact_select"
	PhaseGameOver       Phase = "game_over"
)

// Paused reports whether the phase is a blocking choice screen
func (p Phase) Paused() bool {
	return p == PhaseLevelUp || p == PhaseArtifactSelect
}

// GameOverReason records why a run ended
type GameOverReason string

const (
	ReasonNone        GameOverReason = ""
	ReasonTimeUp      GameOverReason = "time_up"
	ReasonDefeated    GameOverReason = "defeated"
	ReasonBossContact GameOverReason = "boss_contact"
)

// PendingShot is a delayed second bullet queued by the double shot artifact
type PendingShot struct {
	TargetID components.EntityID
	DueTick  int64
}

// GameState holds run-scoped counters and choice state
// All fields are guarded by World's update mutex
type GameState struct {
	Phase  Phase
	Reason GameOverReason

	// Active is set by the time keeper when the current tick advances combat
	Active bool

	Kills         int
	Rewards       int // artifact rewards granted this run
	BossesSpawned int

	// PendingLevelUps counts upgrade picks earned but not yet taken
	PendingLevelUps int
	Upgrades        []components.Upgrade
	ArtifactOptions []components.Artifact

	PendingShots  []PendingShot
	LastDroneShot time.Duration // game time of the last drone volley

	TimeRemaining time.Duration
}

// NewGameState creates an idle state
func NewGameState() *GameState {
	s := &GameState{}
	s.Reset()
	s.Phase = PhaseIdle
	return s
}

// Reset clears every run counter and enters Playing
func (s *GameState) Reset() {
	*s = GameState{
		Phase:         PhasePlaying,
		TimeRemaining: constants.GameDuration,
	}
}

// IsPlaying reports whether combat and spawning are active
func (s *GameState) IsPlaying() bool {
	return s.Phase == PhasePlaying
}
