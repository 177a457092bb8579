package systems

import (
	"math"

	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// BossSystem rolls a special action for every live boss on a fixed cadence
type BossSystem struct {
	ctx   *engine.GameContext
	spawn *SpawnSystem
}

// NewBossSystem creates a boss system summoning through spawn
func NewBossSystem(ctx *engine.GameContext, spawn *SpawnSystem) *BossSystem {
	return &BossSystem{ctx: ctx, spawn: spawn}
}

// Priority returns the system's priority
func (s *BossSystem) Priority() int {
	return constants.PriorityBoss
}

// Update runs boss skills every BossSkillIntervalTicks active ticks
func (s *BossSystem) Update() {
	ctx := s.ctx
	if !ctx.Running() || ctx.Tick()%constants.BossSkillIntervalTicks != 0 {
		return
	}

	// Snapshot first: summons append to the enemy slice
	for _, boss := range ctx.World.LiveEnemies() {
		if !boss.IsBoss {
			continue
		}
		if ctx.Rand.Float64() > 0.5 {
			s.summon(boss.X, boss.Y)
		} else {
			ctx.AddFloatingText(boss.X, boss.Y-80, "⚠ 광폭화! ⚠", constants.ColorMiss)
			boss.HP = math.Min(boss.MaxHP, boss.HP+constants.BossEmpowerHeal)
		}
	}
}

// summon adds regular spawns at the screen edge
// Flank points around the boss only place the warning label
func (s *BossSystem) summon(x, y float64) {
	var fx, fy float64
	for i := 0; i < constants.BossSummonCount; i++ {
		angle := float64(i) * 2 * math.Pi / constants.BossSummonCount
		fx += x + math.Cos(angle)*constants.BossSummonRadius
		fy += y + math.Sin(angle)*constants.BossSummonRadius
		s.spawn.Spawn(false)
	}
	fx /= constants.BossSummonCount
	fy /= constants.BossSummonCount
	s.ctx.AddFloatingText(fx, fy-80, "⚠ 지원군 소환! ⚠", constants.ColorWarning)
}
