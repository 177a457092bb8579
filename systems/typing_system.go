package systems

import (
	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// TypingSystem matches typed runes against enemy answers
// It is driven by input, not by the tick
type TypingSystem struct {
	ctx        *engine.GameContext
	projectile *ProjectileSystem
}

// NewTypingSystem creates a typing matcher that fires through projectile
func NewTypingSystem(ctx *engine.GameContext, projectile *ProjectileSystem) *TypingSystem {
	return &TypingSystem{ctx: ctx, projectile: projectile}
}

// HandleCharacter resolves one typed rune; caller must hold the world lock
func (s *TypingSystem) HandleCharacter(r rune) {
	ctx := s.ctx
	if ctx.State.Phase != engine.PhasePlaying {
		return
	}
	if ctx.World.LiveEnemyCount() == 0 {
		return
	}

	r = NormalizeRune(r)
	target := s.selectTarget(r)
	if target == nil {
		applyMiss(ctx)
		return
	}

	p := ctx.Player()
	ctx.AddBeam(p.X, p.Y, target.X, target.Y)
	ctx.PushEvent(engine.EventKeyAccepted, target.X, target.Y)

	target.InputProgress++
	if target.InputProgress >= target.AnswerLen() {
		target.InputProgress = 0
		s.projectile.Fire(target.ID, false)
		if p.Artifacts.Has(components.ArtifactDoubleShot) {
			ctx.State.PendingShots = append(ctx.State.PendingShots, engine.PendingShot{
				TargetID: target.ID,
				DueTick:  ctx.Tick() + constants.DoubleShotDelayTicks,
			})
		}
	}
}

// selectTarget picks among live enemies expecting r next
// Enemies already in progress win; then the nearest; ties keep spawn order
func (s *TypingSystem) selectTarget(r rune) *components.EnemyComponent {
	p := s.ctx.Player()
	var best *components.EnemyComponent
	bestStarted := false
	bestDist := 0.0

	for _, e := range s.ctx.World.Enemies {
		if !e.Alive() {
			continue
		}
		next, ok := e.NextRune()
		if !ok || next != r {
			continue
		}
		started := e.InputProgress > 0
		dist := p.DistanceTo(e.X, e.Y)

		switch {
		case best == nil:
		case started && !bestStarted:
		case started == bestStarted && dist < bestDist:
		default:
			continue
		}
		best, bestStarted, bestDist = e, started, dist
	}
	return best
}
