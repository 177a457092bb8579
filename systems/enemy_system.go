package systems

import (
	"math"

	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// EnemySystem moves enemies toward the player and resolves contact and poison
type EnemySystem struct {
	ctx  *engine.GameContext
	prog *ProgressionSystem
}

// NewEnemySystem creates an enemy system crediting poison kills through prog
func NewEnemySystem(ctx *engine.GameContext, prog *ProgressionSystem) *EnemySystem {
	return &EnemySystem{ctx: ctx, prog: prog}
}

// Priority returns the system's priority
func (s *EnemySystem) Priority() int {
	return constants.PriorityEnemy
}

// Update advances every live enemy by one tick
func (s *EnemySystem) Update() {
	ctx := s.ctx
	if !ctx.Running() {
		return
	}
	p := ctx.Player()

	for _, e := range ctx.World.Enemies {
		if ctx.State.Phase == engine.PhaseGameOver {
			return
		}
		if !e.Alive() {
			continue
		}

		angle := math.Atan2(p.Y-e.Y, p.X-e.X)
		e.X += math.Cos(angle) * e.Speed
		e.Y += math.Sin(angle) * e.Speed

		if e.DistanceTo(p.X, p.Y) < p.Radius+e.Radius {
			e.Dead = true
			if e.IsBoss {
				// Boss contact bypasses invincibility and shield
				p.HP = 0
				ctx.EndRun(engine.ReasonBossContact)
				return
			}
			TakeDamage(ctx, int(math.Floor(e.Radius)))
			ctx.AddParticles(e.X, e.Y, e.Type.Color, 8)
			continue
		}

		if e.Poisoned {
			e.PoisonTimer++
			if e.PoisonTimer%constants.PoisonIntervalTick == 0 {
				ctx.AddFloatingText(e.X, e.Y, "독", constants.ColorPoison)
				e.HP -= constants.PoisonDamage
				if e.HP <= 0 {
					killEnemy(ctx, s.prog, e, causePoison)
				}
			}
		}
	}
}
