package systems

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestSimulation creates a started simulation on a frozen mock clock with a seeded rng
func newTestSimulation(t *testing.T, mode constants.GameMode, difficulty int) (*Simulation, *engine.GameContext, *engine.MockTimeProvider) {
	t.Helper()
	mock := engine.NewMockTimeProvider(testEpoch)
	ctx := engine.NewGameContext(engine.ContextConfig{
		Mode:         mode,
		Difficulty:   difficulty,
		TimeProvider: mock,
		Rand:         rand.New(rand.NewPCG(7, 11)),
	})
	sim := NewSimulation(ctx)
	sim.Start()
	return sim, ctx, mock
}

// addEnemy places a stationary normal enemy relative to the player
func addEnemy(ctx *engine.GameContext, dx, dy float64, answer string) *components.EnemyComponent {
	p := ctx.Player()
	typ := components.EnemyTypes[components.EnemyNormal]
	e := &components.EnemyComponent{
		ID:       ctx.NextID(),
		X:        p.X + dx,
		Y:        p.Y + dy,
		Type:     typ,
		HP:       1000,
		MaxHP:    1000,
		Radius:   typ.Size,
		Question: answer,
		Answer:   answer,
	}
	ctx.World.Enemies = append(ctx.World.Enemies, e)
	return e
}

// addBoss places a stationary boss relative to the player
func addBoss(ctx *engine.GameContext, dx, dy float64) *components.EnemyComponent {
	e := addEnemy(ctx, dx, dy, "1")
	e.Type = components.EnemyTypes[components.EnemyBoss]
	e.Radius = e.Type.Size
	e.IsBoss = true
	return e
}

// eventRecorder collects events delivered by the simulation
type eventRecorder struct {
	events []engine.Event
}

func (r *eventRecorder) HandleEvent(ev engine.Event) {
	r.events = append(r.events, ev)
}

func (r *eventRecorder) count(t engine.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func recordEvents(sim *Simulation) *eventRecorder {
	r := &eventRecorder{}
	sim.AddListener(r)
	return r
}

// countBosses counts enemies flagged as bosses, dead or alive
func countBosses(ctx *engine.GameContext) int {
	n := 0
	for _, e := range ctx.World.Enemies {
		if e.IsBoss {
			n++
		}
	}
	return n
}
