package engine

import (
	"slices"

	"github.com/google/uuid"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
)

// Snapshot is a deep copy of everything a renderer or remote client needs
type Snapshot struct {
	RunID      string             `json:"runId" msgpack:"runId"`
	Phase      Phase              `json:"phase" msgpack:"phase"`
	Mode       constants.GameMode `json:"mode" msgpack:"mode"`
	Difficulty int                `json:"difficulty" msgpack:"difficulty"`
	Width      float64            `json:"width" msgpack:"width"`
	Height     float64            `json:"height" msgpack:"height"`

	Player    components.PlayerComponent `json:"player" msgpack:"player"`
	Artifacts []components.ArtifactID    `json:"artifacts" msgpack:"artifacts"`

	Enemies       []components.EnemyComponent        `json:"enemies" msgpack:"enemies"`
	Bullets       []components.BulletComponent       `json:"bullets" msgpack:"bullets"`
	Particles     []components.ParticleComponent     `json:"particles" msgpack:"particles"`
	FloatingTexts []components.FloatingTextComponent `json:"floatingTexts" msgpack:"floatingTexts"`
	Beams         []components.BeamComponent         `json:"beams" msgpack:"beams"`

	Kills           int   `json:"kills" msgpack:"kills"`
	TimeRemainingMs int64 `json:"timeRemainingMs" msgpack:"timeRemainingMs"`
	Tick            int64 `json:"tick" msgpack:"tick"`

	Upgrades        []components.Upgrade  `json:"upgrades,omitempty" msgpack:"upgrades,omitempty"`
	ArtifactOptions []components.Artifact `json:"artifactOptions,omitempty" msgpack:"artifactOptions,omitempty"`

	GameOverReason GameOverReason `json:"gameOverReason,omitempty" msgpack:"gameOverReason,omitempty"`
	IsPlaying      bool           `json:"isPlaying" msgpack:"isPlaying"`
}

// Snapshot copies the current state; caller must hold the world lock
func (ctx *GameContext) Snapshot() Snapshot {
	w := ctx.World
	s := Snapshot{
		Phase:           ctx.State.Phase,
		Mode:            ctx.Mode,
		Difficulty:      ctx.Difficulty,
		Width:           ctx.Width,
		Height:          ctx.Height,
		Player:          w.Player,
		Artifacts:       w.Player.Artifacts.Owned(),
		Enemies:         make([]components.EnemyComponent, 0, len(w.Enemies)),
		Bullets:         make([]components.BulletComponent, 0, len(w.Bullets)),
		Particles:       slices.Clone(w.Particles),
		FloatingTexts:   slices.Clone(w.FloatingTexts),
		Beams:           slices.Clone(w.Beams),
		Kills:           ctx.State.Kills,
		TimeRemainingMs: ctx.State.TimeRemaining.Milliseconds(),
		Tick:            ctx.tick,
		Upgrades:        slices.Clone(ctx.State.Upgrades),
		ArtifactOptions: slices.Clone(ctx.State.ArtifactOptions),
		GameOverReason:  ctx.State.Reason,
		IsPlaying:       ctx.State.Phase != PhaseIdle && ctx.State.Phase != PhaseGameOver,
	}
	if ctx.RunID != uuid.Nil {
		s.RunID = ctx.RunID.String()
	}
	for _, e := range w.Enemies {
		s.Enemies = append(s.Enemies, *e)
	}
	for _, b := range w.Bullets {
		c := *b
		c.Trail = slices.Clone(b.Trail)
		s.Bullets = append(s.Bullets, c)
	}
	return s
}
