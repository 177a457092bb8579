package engine

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/status"
)

// ContextConfig configures a new GameContext; zero fields take defaults
type ContextConfig struct {
	Width, Height float64
	Mode          constants.GameMode
	Difficulty    int
	Mobile        bool
	Bonus         components.StatBonus

	TimeProvider TimeProvider
	Rand         *rand.Rand
	Stats        *status.Registry
	Logger       *zerolog.Logger
}

// GameContext is the explicit simulation context handed to every system
// It owns the id source, tick counter, rng and clock of one player's simulation
type GameContext struct {
	// ===== Immutable After Init =====

	World  *World
	State  *GameState
	Clock  *PausableClock
	Events *EventQueue
	Stats  *status.Registry
	Rand   *rand.Rand
	Logger zerolog.Logger

	Width, Height float64

	// ===== Guarded By World Update Lock =====

	Mode       constants.GameMode
	Difficulty int
	Mobile     bool
	Bonus      components.StatBonus
	RunID      uuid.UUID

	nextID components.EntityID
	tick   int64 // active ticks of the current run

	// ===== Atomic =====

	// TotalTicks counts every tick including paused and idle ones
	TotalTicks atomic.Int64
}

// NewGameContext creates a context in the idle phase
func NewGameContext(cfg ContextConfig) *GameContext {
	if cfg.Width <= 0 {
		cfg.Width = constants.DefaultWorldWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = constants.DefaultWorldHeight
	}
	if !cfg.Mode.Valid() {
		cfg.Mode = constants.ModeHangul
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.Stats == nil {
		cfg.Stats = status.NewRegistry()
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	ctx := &GameContext{
		World:      NewWorld(),
		State:      NewGameState(),
		Clock:      NewPausableClock(cfg.TimeProvider),
		Events:     NewEventQueue(),
		Stats:      cfg.Stats,
		Rand:       cfg.Rand,
		Logger:     logger,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Mode:       cfg.Mode,
		Difficulty: constants.ClampDifficulty(cfg.Difficulty),
		Mobile:     cfg.Mobile,
		Bonus:      cfg.Bonus,
		nextID:     1,
	}
	ctx.World.Player = components.NewPlayer(ctx.Width/2, ctx.Height/2, ctx.Bonus)
	return ctx
}

// ResetRun discards all transient state and starts a fresh run
// Caller must hold the world lock
func (ctx *GameContext) ResetRun() {
	ctx.World.Clear()
	ctx.World.Player = components.NewPlayer(ctx.Width/2, ctx.Height/2, ctx.Bonus)
	ctx.State.Reset()
	ctx.Events.Clear()
	ctx.Clock.Reset()
	ctx.nextID = 1
	ctx.tick = 0
	ctx.RunID = uuid.New()

	ctx.Stats.Ints.Get(status.KeyRunsStarted).Add(1)
	ctx.Logger.Info().
		Str("run", ctx.RunID.String()).
		Str("mode", string(ctx.Mode)).
		Int("difficulty", ctx.Difficulty).
		Bool("mobile", ctx.Mobile).
		Msg("run started")
}

// NextID issues a fresh entity id, never zero
func (ctx *GameContext) NextID() components.EntityID {
	id := ctx.nextID
	ctx.nextID++
	return id
}

// Tick returns the active tick counter of the current run
func (ctx *GameContext) Tick() int64 {
	return ctx.tick
}

// AdvanceTick increments the active tick counter
func (ctx *GameContext) AdvanceTick() {
	ctx.tick++
}

// Elapsed returns unpaused game time of the current run
func (ctx *GameContext) Elapsed() time.Duration {
	return ctx.Clock.Elapsed()
}

// ElapsedMinutes returns Elapsed in fractional minutes
func (ctx *GameContext) ElapsedMinutes() float64 {
	return ctx.Clock.Elapsed().Minutes()
}

// Player returns the mutable player record
func (ctx *GameContext) Player() *components.PlayerComponent {
	return &ctx.World.Player
}

// PushEvent queues an event stamped with the current tick
func (ctx *GameContext) PushEvent(t EventType, x, y float64) {
	ctx.Events.Push(Event{Type: t, Tick: ctx.tick, X: x, Y: y})
}

// EndRun moves to GameOver once; later calls keep the first reason
func (ctx *GameContext) EndRun(reason GameOverReason) {
	if ctx.State.Phase == PhaseGameOver {
		return
	}
	ctx.State.Phase = PhaseGameOver
	ctx.State.Reason = reason
	ctx.State.Upgrades = nil
	ctx.State.ArtifactOptions = nil
	ctx.State.PendingShots = nil
	ctx.Clock.Pause()

	p := ctx.Player()
	ctx.PushEvent(EventGameOver, p.X, p.Y)
	ctx.Stats.Strings.Get(status.KeyLastGameOver).Store(string(reason))
	ctx.Logger.Info().
		Str("run", ctx.RunID.String()).
		Str("reason", string(reason)).
		Int("kills", ctx.State.Kills).
		Int("level", p.Level).
		Dur("elapsed", ctx.Elapsed()).
		Msg("run ended")
}

// Running reports whether combat systems should act in the current tick
func (ctx *GameContext) Running() bool {
	return ctx.State.Active && ctx.State.Phase != PhaseGameOver
}

// EnterChoice switches to a blocking choice phase and freezes game time
func (ctx *GameContext) EnterChoice(phase Phase) {
	ctx.State.Phase = phase
	ctx.Clock.Pause()
}

// ResumePlay returns to Playing and restarts game time
func (ctx *GameContext) ResumePlay() {
	ctx.State.Phase = PhasePlaying
	ctx.State.Upgrades = nil
	ctx.State.ArtifactOptions = nil
	ctx.Clock.Resume()
}

// AddFloatingText spawns a rising label
func (ctx *GameContext) AddFloatingText(x, y float64, text, color string) {
	ctx.World.FloatingTexts = append(ctx.World.FloatingTexts, components.FloatingTextComponent{
		ID: ctx.NextID(), X: x, Y: y, Text: text, Color: color, Life: 1,
	})
}

// AddBeam spawns a fading line
func (ctx *GameContext) AddBeam(x1, y1, x2, y2 float64) {
	ctx.World.Beams = append(ctx.World.Beams, components.BeamComponent{
		ID: ctx.NextID(), X1: x1, Y1: y1, X2: x2, Y2: y2, Life: 1,
	})
}

// AddParticles spawns count sparks with random velocities around (x, y)
func (ctx *GameContext) AddParticles(x, y float64, color string, count int) {
	for i := 0; i < count; i++ {
		ctx.World.Particles = append(ctx.World.Particles, components.ParticleComponent{
			ID:    ctx.NextID(),
			X:     x,
			Y:     y,
			VX:    (ctx.Rand.Float64() - 0.5) * 4,
			VY:    (ctx.Rand.Float64() - 0.5) * 4,
			Life:  1,
			Color: color,
		})
	}
}
