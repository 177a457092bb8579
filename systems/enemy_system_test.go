package systems

import (
	"testing"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// TestEnemyMovesTowardPlayer verifies homing movement by speed per tick
func TestEnemyMovesTowardPlayer(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	e := addEnemy(ctx, 0, 300, "1")
	e.Speed = 2

	sim.Tick()

	if got := e.Y - ctx.Player().Y; got < 297.99 || got > 298.01 {
		t.Errorf("offset = %v, want 298", got)
	}
}

// TestContactDamage verifies contact costs floor(radius) HP and grants invincibility
func TestContactDamage(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	rec := recordEvents(sim)
	addEnemy(ctx, 20, 0, "1")

	sim.Tick()

	p := ctx.Player()
	if p.HP != constants.PlayerBaseHP-15 {
		t.Errorf("HP = %d, want %d", p.HP, constants.PlayerBaseHP-15)
	}
	if p.InvincibleTimer != constants.InvincibilityTicks {
		t.Errorf("invincible = %d, want %d", p.InvincibleTimer, constants.InvincibilityTicks)
	}
	if len(ctx.World.Enemies) != 0 {
		t.Error("colliding enemy not removed")
	}
	if ctx.State.Kills != 0 {
		t.Error("collision counted as kill")
	}
	if rec.count(engine.EventPlayerDamaged) != 1 {
		t.Error("missing damage event")
	}
}

// TestContactDuringInvincibility verifies immunity absorbs contact but the enemy still dies
func TestContactDuringInvincibility(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	ctx.Player().InvincibleTimer = 10
	addEnemy(ctx, 20, 0, "1")

	sim.Tick()

	if ctx.Player().HP != constants.PlayerBaseHP {
		t.Errorf("HP = %d, want %d", ctx.Player().HP, constants.PlayerBaseHP)
	}
	if len(ctx.World.Enemies) != 0 {
		t.Error("colliding enemy not removed")
	}
}

// TestBossContactEndsRun verifies boss contact is fatal even while invincible
func TestBossContactEndsRun(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	rec := recordEvents(sim)
	ctx.Player().InvincibleTimer = 100
	addBoss(ctx, 40, 0)

	sim.Tick()

	if ctx.Player().HP != 0 {
		t.Errorf("HP = %d, want 0", ctx.Player().HP)
	}
	if ctx.State.Phase != engine.PhaseGameOver || ctx.State.Reason != engine.ReasonBossContact {
		t.Errorf("phase=%s reason=%s", ctx.State.Phase, ctx.State.Reason)
	}
	if rec.count(engine.EventGameOver) != 1 {
		t.Error("missing game over event")
	}

	sim.Tick()
	sim.TypeCharacter('1')
	if ctx.State.Reason != engine.ReasonBossContact {
		t.Error("reason changed after game over")
	}
}

// TestContactToZeroEndsRun verifies lethal contact damage ends the run as defeated
func TestContactToZeroEndsRun(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	ctx.Player().HP = 10
	addEnemy(ctx, 20, 0, "1")

	sim.Tick()

	if ctx.State.Phase != engine.PhaseGameOver || ctx.State.Reason != engine.ReasonDefeated {
		t.Errorf("phase=%s reason=%s", ctx.State.Phase, ctx.State.Reason)
	}
}

// TestPoisonTicks verifies 10 damage per 60 ticks and exp without boss bonus on a poison kill
func TestPoisonTicks(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	p := ctx.Player()
	p.ExpToNextLevel = 1000
	e := addEnemy(ctx, 300, 0, "1")
	e.Poisoned = true

	for i := 0; i < constants.PoisonIntervalTick-1; i++ {
		sim.Tick()
	}
	if e.HP != 1000 {
		t.Fatalf("poison ticked early: HP = %v", e.HP)
	}
	sim.Tick()
	if e.HP != 990 {
		t.Fatalf("HP = %v after one poison interval, want 990", e.HP)
	}

	boss := addBoss(ctx, 0, 300)
	boss.Poisoned = true
	boss.HP = 5
	boss.PoisonTimer = constants.PoisonIntervalTick - 1
	sim.Tick()

	if !boss.Dead {
		t.Fatal("poisoned boss survived lethal tick")
	}
	if p.Exp != constants.BaseKillExp {
		t.Errorf("exp = %d, want %d", p.Exp, constants.BaseKillExp)
	}
}

// TestShieldBlocksSomeHits verifies the shield artifact ignores a share of contact hits
func TestShieldBlocksSomeHits(t *testing.T) {
	_, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	p := ctx.Player()
	p.Artifacts = p.Artifacts.Add(components.ArtifactShield)
	p.MaxHP = 1 << 20
	p.HP = p.MaxHP

	blocked := 0
	const hits = 1000
	for i := 0; i < hits; i++ {
		p.InvincibleTimer = 0
		if !TakeDamage(ctx, 1) {
			blocked++
		}
	}
	if blocked < 200 || blocked > 400 {
		t.Errorf("blocked %d of %d, want about 30%%", blocked, hits)
	}
}
