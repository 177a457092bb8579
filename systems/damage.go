package systems

import (
	"math"
	"strconv"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
	"github.com/lixenwraith/system-defender/status"
)

// killCause selects which rewards a kill grants
type killCause uint8

const (
	causeBullet killCause = iota // exp with boss bonus, leech, splash
	causeSplash                  // exp with boss bonus
	causePoison                  // exp without boss bonus
	causeNuke                    // kill credit only
)

// ExpForKill returns experience for one kill by p
// 10 base, ×1.5 with magnet, ×(1+0.2·expBoost), floored, plus 50 for bosses
func ExpForKill(p *components.PlayerComponent, boss bool) int {
	gain := float64(constants.BaseKillExp)
	if p.Artifacts.Has(components.ArtifactMagnet) {
		gain *= constants.MagnetExpMult
	}
	gain *= 1 + float64(p.ExpBoostLevel)*constants.ExpBoostPerLevel
	exp := int(math.Floor(gain))
	if boss {
		exp += constants.BossKillExpBonus
	}
	return exp
}

// CritMultiplier returns the damage multiplier applied on a critical hit
func CritMultiplier(p *components.PlayerComponent) float64 {
	if p.Artifacts.Has(components.ArtifactCritMaster) {
		return constants.CritMasterMultiplier
	}
	return constants.CritMultiplier
}

// TakeDamage applies contact damage to the player
// No-op while invincible; the shield artifact blocks 30% of hits
// Returns true when hp was actually reduced
func TakeDamage(ctx *engine.GameContext, amount int) bool {
	p := ctx.Player()
	if p.IsInvincible() {
		return false
	}
	if p.Artifacts.Has(components.ArtifactShield) && ctx.Rand.Float64() < constants.ShieldBlockChance {
		ctx.AddFloatingText(p.X, p.Y-30, "BLOCK", constants.ColorBeam)
		return false
	}

	p.LoseHP(amount)
	p.InvincibleTimer = constants.InvincibilityTicks
	ctx.Stats.Ints.Get(status.KeyDamageTaken).Add(int64(amount))
	ctx.PushEvent(engine.EventPlayerDamaged, p.X, p.Y)

	if p.HP == 0 {
		ctx.EndRun(engine.ReasonDefeated)
	}
	return true
}

// applyMiss charges the typing penalty; it ignores invincibility
func applyMiss(ctx *engine.GameContext) {
	p := ctx.Player()
	p.LoseHP(constants.MissPenalty)
	ctx.AddFloatingText(p.X, p.Y-20, "빗나감! -"+strconv.Itoa(constants.MissPenalty)+"HP", constants.ColorMiss)
	ctx.Stats.Ints.Get(status.KeyMisses).Add(1)
	ctx.PushEvent(engine.EventKeyMissed, p.X, p.Y)

	if p.HP == 0 {
		ctx.EndRun(engine.ReasonDefeated)
	}
}

// killEnemy marks e dead and grants the rewards of cause
// Splash is applied by the caller since it needs the hit position
func killEnemy(ctx *engine.GameContext, prog *ProgressionSystem, e *components.EnemyComponent, cause killCause) {
	if e.Dead {
		return
	}
	e.Dead = true
	e.HP = 0
	e.InputProgress = 0
	ctx.State.Kills++
	ctx.Stats.Ints.Get(status.KeyKills).Add(1)

	particles := 8
	if e.IsBoss {
		particles = 20
		ctx.Stats.Ints.Get(status.KeyBossKills).Add(1)
		ctx.AddFloatingText(e.X, e.Y-60, "🎉 보스 처치 완료! 🎉", constants.ColorWarning)
		ctx.PushEvent(engine.EventBossKilled, e.X, e.Y)
	} else {
		ctx.PushEvent(engine.EventEnemyKilled, e.X, e.Y)
	}
	ctx.AddParticles(e.X, e.Y, e.Type.Color, particles)

	p := ctx.Player()
	switch cause {
	case causeBullet, causeSplash:
		prog.GrantExp(ExpForKill(p, e.IsBoss))
	case causePoison:
		prog.GrantExp(ExpForKill(p, false))
	}

	if cause == causeBullet && p.Artifacts.Has(components.ArtifactLeech) {
		heal := constants.LeechHeal
		if e.IsBoss {
			heal = constants.LeechBossHeal
		}
		p.Heal(heal)
	}
}
