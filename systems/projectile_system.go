package systems

import (
	"math"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
	"github.com/lixenwraith/system-defender/status"
)

// ProjectileSystem moves homing bullets and resolves their hits
type ProjectileSystem struct {
	ctx  *engine.GameContext
	prog *ProgressionSystem
}

// NewProjectileSystem creates a projectile system crediting kills through prog
func NewProjectileSystem(ctx *engine.GameContext, prog *ProgressionSystem) *ProjectileSystem {
	return &ProjectileSystem{ctx: ctx, prog: prog}
}

// Priority returns the system's priority
func (s *ProjectileSystem) Priority() int {
	return constants.PriorityProjectile
}

// Fire launches a bullet from the player at target
func (s *ProjectileSystem) Fire(target components.EntityID, isDrone bool) *components.BulletComponent {
	p := s.ctx.Player()
	speed := p.ProjectileSpeed
	if p.Artifacts.Has(components.ArtifactRapidFire) {
		speed *= constants.RapidFireSpeedMult
	}
	b := &components.BulletComponent{
		ID:       s.ctx.NextID(),
		X:        p.X,
		Y:        p.Y,
		TargetID: target,
		Speed:    speed,
		Radius:   constants.BulletRadius,
		Life:     constants.BulletLife,
		IsDrone:  isDrone,
	}
	s.ctx.World.Bullets = append(s.ctx.World.Bullets, b)
	s.ctx.Stats.Ints.Get(status.KeyBulletsFired).Add(1)
	return b
}

// Update fires due delayed shots then advances every bullet
func (s *ProjectileSystem) Update() {
	if !s.ctx.Running() {
		return
	}
	s.firePending()

	world := s.ctx.World
	kept := world.Bullets[:0]
	for _, b := range world.Bullets {
		if s.ctx.State.Phase == engine.PhaseGameOver || s.step(b) {
			kept = append(kept, b)
		}
	}
	clear(world.Bullets[len(kept):])
	world.Bullets = kept
}

// firePending launches double-shot followups whose delay elapsed
func (s *ProjectileSystem) firePending() {
	state := s.ctx.State
	if len(state.PendingShots) == 0 {
		return
	}
	tick := s.ctx.Tick()
	rest := state.PendingShots[:0]
	for _, shot := range state.PendingShots {
		if shot.DueTick > tick {
			rest = append(rest, shot)
			continue
		}
		if e, ok := s.ctx.World.FindEnemy(shot.TargetID); ok && e.Alive() {
			s.Fire(shot.TargetID, false)
		}
	}
	state.PendingShots = rest
}

// step moves b toward its target and resolves a hit; false discards the bullet
func (s *ProjectileSystem) step(b *components.BulletComponent) bool {
	target, ok := s.ctx.World.FindEnemy(b.TargetID)
	if !ok || !target.Alive() {
		return false
	}

	angle := math.Atan2(target.Y-b.Y, target.X-b.X)
	b.X += math.Cos(angle) * b.Speed
	b.Y += math.Sin(angle) * b.Speed
	b.PushTrail(components.Point{X: b.X, Y: b.Y}, constants.BulletTrailLength)

	if math.Hypot(b.X-target.X, b.Y-target.Y) < target.Radius+b.Radius+constants.BulletHitSlack {
		s.hit(b, target)
		return false
	}
	return true
}

// hit applies damage of one bullet to target
// Piercing is never consulted: the bullet is consumed by its first hit
func (s *ProjectileSystem) hit(b *components.BulletComponent, target *components.EnemyComponent) {
	ctx := s.ctx
	p := ctx.Player()

	crit := ctx.Rand.Float64() < p.CritChance
	damage := p.Damage
	if crit {
		damage *= CritMultiplier(p)
		ctx.AddFloatingText(target.X, target.Y-20, "치명타!", constants.ColorCrit)
	} else {
		ctx.AddFloatingText(target.X, target.Y-20, "명중", constants.ColorPromptRemain)
	}
	ctx.AddParticles(target.X, target.Y, target.Type.Color, 3)

	target.HP -= damage
	if target.HP <= 0 {
		x, y, boss := target.X, target.Y, target.IsBoss
		killEnemy(ctx, s.prog, target, causeBullet)
		if p.Artifacts.Has(components.ArtifactSplash) {
			s.splash(target, x, y, boss)
		}
		return
	}

	if p.Artifacts.Has(components.ArtifactPoison) {
		target.Poisoned = true
	}
	if !b.IsDrone {
		prompt, answer := GenerateQuestion(ctx.Rand, ctx.Mode, ctx.Difficulty)
		if target.IsBoss {
			prompt = constants.BossPromptPrefix + prompt
		}
		target.SetPrompt(prompt, answer)
		ctx.AddFloatingText(target.X, target.Y-40, "코드 변경", constants.ColorCrit)
	}
}

// splash deals half the player's damage to live enemies around a kill
// Enemies it kills are credited without further splash or leech
func (s *ProjectileSystem) splash(source *components.EnemyComponent, x, y float64, boss bool) {
	ctx := s.ctx
	radius := float64(constants.SplashRadius)
	if boss {
		radius = constants.SplashBossRadius
	}
	damage := ctx.Player().Damage * constants.SplashDamageRatio

	for _, e := range ctx.World.Enemies {
		if !e.Alive() || e.ID == source.ID {
			continue
		}
		if e.DistanceTo(x, y) >= radius {
			continue
		}
		ctx.AddBeam(x, y, e.X, e.Y)
		e.HP -= damage
		if e.HP <= 0 {
			killEnemy(ctx, s.prog, e, causeSplash)
		}
	}
}
