package systems

import (
	"errors"
	"sync"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

var (
	// ErrInvalidChoice is returned for an out-of-range upgrade or an artifact that was not offered
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrNotPlaying is returned when a choice arrives with no run in progress
	ErrNotPlaying = errors.New("no run in progress")
)

// Simulation is the facade over one player's game: tick, input, choices and snapshots
// Every entry point takes the world lock; events are delivered after it is released
type Simulation struct {
	ctx *engine.GameContext

	progression *ProgressionSystem
	projectile  *ProjectileSystem
	spawn       *SpawnSystem
	typing      *TypingSystem

	listenersMu sync.RWMutex
	listeners   []engine.EventListener
}

// NewSimulation wires every system into ctx.World in tick order
func NewSimulation(ctx *engine.GameContext) *Simulation {
	prog := NewProgressionSystem(ctx)
	projectile := NewProjectileSystem(ctx, prog)
	spawn := NewSpawnSystem(ctx)

	s := &Simulation{
		ctx:         ctx,
		progression: prog,
		projectile:  projectile,
		spawn:       spawn,
		typing:      NewTypingSystem(ctx, projectile),
	}

	w := ctx.World
	w.AddSystem(NewTimeKeeperSystem(ctx, prog))
	w.AddSystem(NewArtifactSystem(ctx, projectile))
	w.AddSystem(spawn)
	w.AddSystem(NewBossSystem(ctx, spawn))
	w.AddSystem(projectile)
	w.AddSystem(NewEnemySystem(ctx, prog))
	w.AddSystem(NewEffectsSystem(ctx))
	w.AddSystem(NewCleanupSystem(ctx))
	return s
}

// Context exposes the simulation context; callers must respect the world lock
func (s *Simulation) Context() *engine.GameContext {
	return s.ctx
}

// AddListener registers l for events drained after each call
func (s *Simulation) AddListener(l engine.EventListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Configure sets mode, difficulty, mobile and shop bonus for the next Start
func (s *Simulation) Configure(mode constants.GameMode, difficulty int, mobile bool, bonus components.StatBonus) {
	s.ctx.World.RunSafe(func() {
		if mode.Valid() {
			s.ctx.Mode = mode
		}
		s.ctx.Difficulty = constants.ClampDifficulty(difficulty)
		s.ctx.Mobile = mobile
		s.ctx.Bonus = bonus
	})
}

// Resize sets the playfield used by spawns and by the player position of the next Start
func (s *Simulation) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.ctx.World.RunSafe(func() {
		s.ctx.Width = width
		s.ctx.Height = height
	})
}

// Start discards the previous run and begins a new one
func (s *Simulation) Start() {
	s.run(s.ctx.ResetRun)
}

// Tick advances the simulation by one fixed step
func (s *Simulation) Tick() {
	s.run(func() {
		s.ctx.TotalTicks.Add(1)
		s.ctx.World.UpdateLocked()
	})
}

// TypeCharacter feeds one typed rune to the combat resolver
func (s *Simulation) TypeCharacter(r rune) {
	s.run(func() { s.typing.HandleCharacter(r) })
}

// SelectUpgrade takes the level-up option at index
func (s *Simulation) SelectUpgrade(index int) error {
	var err error
	s.run(func() {
		err = s.progression.SelectUpgrade(index)
		s.ctx.World.RemoveDeadEnemies()
	})
	return err
}

// SelectArtifact takes an offered artifact by id
func (s *Simulation) SelectArtifact(id components.ArtifactID) error {
	var err error
	s.run(func() { err = s.progression.SelectArtifact(id) })
	return err
}

// SelectOption picks the index-th entry of whichever choice is showing
func (s *Simulation) SelectOption(index int) error {
	var (
		phase engine.Phase
		id    components.ArtifactID
		ok    bool
	)
	s.ctx.World.RunSafe(func() {
		phase = s.ctx.State.Phase
		if opts := s.ctx.State.ArtifactOptions; index >= 0 && index < len(opts) {
			id, ok = opts[index].ID, true
		}
	})

	switch phase {
	case engine.PhaseLevelUp:
		return s.SelectUpgrade(index)
	case engine.PhaseArtifactSelect:
		if !ok {
			return ErrInvalidChoice
		}
		return s.SelectArtifact(id)
	case engine.PhasePlaying:
		return ErrInvalidChoice
	default:
		return ErrNotPlaying
	}
}

// Snapshot returns a deep copy of the current state
func (s *Simulation) Snapshot() engine.Snapshot {
	var snap engine.Snapshot
	s.ctx.World.RunSafe(func() { snap = s.ctx.Snapshot() })
	return snap
}

// Phase returns the current phase
func (s *Simulation) Phase() engine.Phase {
	var phase engine.Phase
	s.ctx.World.RunSafe(func() { phase = s.ctx.State.Phase })
	return phase
}

// run executes fn under the world lock, then fans out the events it produced
func (s *Simulation) run(fn func()) {
	var events []engine.Event
	s.ctx.World.RunSafe(func() {
		fn()
		events = s.ctx.Events.Drain()
	})
	if len(events) == 0 {
		return
	}

	s.listenersMu.RLock()
	listeners := s.listeners
	s.listenersMu.RUnlock()
	for _, ev := range events {
		for _, l := range listeners {
			l.HandleEvent(ev)
		}
	}
}
