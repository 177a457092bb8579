package systems

import (
	"strings"
	"testing"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// fireAt launches a player bullet at e through the simulation's projectile system
func fireAt(sim *Simulation, e *components.EnemyComponent, drone bool) *components.BulletComponent {
	return sim.projectile.Fire(e.ID, drone)
}

// TestBulletDiscardedWithoutTarget verifies dead or absent targets drop bullets silently
func TestBulletDiscardedWithoutTarget(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	rec := recordEvents(sim)
	e := addEnemy(ctx, 200, 0, "1")
	fireAt(sim, e, false)
	sim.projectile.Fire(components.EntityID(9999), false)
	e.Dead = true
	kills := ctx.State.Kills

	sim.Tick()

	if len(ctx.World.Bullets) != 0 {
		t.Errorf("bullets = %d, want 0", len(ctx.World.Bullets))
	}
	if ctx.State.Kills != kills || ctx.Player().Exp != 0 {
		t.Error("discarded bullet granted rewards")
	}
	if len(rec.events) != 0 {
		t.Errorf("unexpected events: %v", rec.events)
	}
}

// TestBulletHomesAndTrails verifies movement toward the target and the bounded trail
func TestBulletHomesAndTrails(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	e := addEnemy(ctx, 500, 0, "1")
	b := fireAt(sim, e, false)
	startX := b.X

	for i := 0; i < 8; i++ {
		sim.Tick()
	}

	if len(ctx.World.Bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(ctx.World.Bullets))
	}
	if got := b.X - startX; got < 159 || got > 161 {
		t.Errorf("bullet travelled %v, want 160", got)
	}
	if len(b.Trail) != constants.BulletTrailLength {
		t.Errorf("trail = %d, want %d", len(b.Trail), constants.BulletTrailLength)
	}
	if b.Life != constants.BulletLife {
		t.Errorf("life = %d, want %d", b.Life, constants.BulletLife)
	}
}

// TestBulletReachesDistantTarget verifies a bullet chases a live target past any tick budget
func TestBulletReachesDistantTarget(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	e := addEnemy(ctx, 2500, 0, "1")
	e.HP, e.MaxHP = 10, 10
	fireAt(sim, e, false)

	for i := 0; i < 200 && len(ctx.World.Bullets) > 0; i++ {
		if i == constants.BulletLife+10 && len(ctx.World.Bullets) != 1 {
			t.Fatalf("bullet gone after %d ticks with target alive", i)
		}
		sim.Tick()
	}

	if len(ctx.World.Bullets) != 0 {
		t.Fatal("bullet never reached its target")
	}
	if !e.Dead {
		t.Errorf("distant target survived, HP = %v", e.HP)
	}
}

// TestCritDamage verifies normal, critical and critMaster hit damage
func TestCritDamage(t *testing.T) {
	tests := []struct {
		name       string
		critChance float64
		critMaster bool
		wantDamage float64
	}{
		{"normal", 0, false, 60},
		{"crit", 1, false, 120},
		{"crit master", 1, true, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
			p := ctx.Player()
			p.CritChance = tt.critChance
			if tt.critMaster {
				p.Artifacts = p.Artifacts.Add(components.ArtifactCritMaster)
			}
			e := addEnemy(ctx, 30, 0, "1")
			fireAt(sim, e, false)

			sim.Tick()

			if got := 1000 - e.HP; got != tt.wantDamage {
				t.Errorf("damage = %v, want %v", got, tt.wantDamage)
			}
			if len(ctx.World.Bullets) != 0 {
				t.Error("bullet not consumed by hit")
			}
		})
	}
}

// TestSurvivingHitRegeneratesPrompt verifies player bullets reroll the prompt and drone bullets do not
func TestSurvivingHitRegeneratesPrompt(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	e := addEnemy(ctx, 30, 0, "not-a-product")
	e.InputProgress = 2
	fireAt(sim, e, false)
	sim.Tick()

	if e.Answer == "not-a-product" || e.InputProgress != 0 {
		t.Errorf("prompt not regenerated: answer=%q progress=%d", e.Answer, e.InputProgress)
	}
	if !strings.Contains(e.Question, "×") {
		t.Errorf("regenerated question %q is not a math prompt", e.Question)
	}

	e.SetPrompt("keep", "keep")
	e.InputProgress = 2
	fireAt(sim, e, true)
	sim.Tick()

	if e.Answer != "keep" || e.InputProgress != 2 {
		t.Errorf("drone hit changed prompt: answer=%q progress=%d", e.Answer, e.InputProgress)
	}
}

// TestBossPromptKeepsPrefix verifies regenerated boss prompts stay marked
func TestBossPromptKeepsPrefix(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	boss := addBoss(ctx, 70, 0)
	fireAt(sim, boss, false)
	sim.Tick()

	if !strings.HasPrefix(boss.Question, constants.BossPromptPrefix) {
		t.Errorf("boss question %q lost prefix", boss.Question)
	}
	if strings.HasPrefix(boss.Answer, constants.BossPromptPrefix) {
		t.Errorf("boss answer %q carries prefix", boss.Answer)
	}
}

// TestKillGrantsExp verifies a bullet kill credits the kill and base exp
func TestKillGrantsExp(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	rec := recordEvents(sim)
	p := ctx.Player()
	p.ExpToNextLevel = 1000
	e := addEnemy(ctx, 30, 0, "1")
	e.HP = 10
	fireAt(sim, e, false)

	sim.Tick()

	if ctx.State.Kills != 1 {
		t.Errorf("kills = %d, want 1", ctx.State.Kills)
	}
	if p.Exp != constants.BaseKillExp {
		t.Errorf("exp = %d, want %d", p.Exp, constants.BaseKillExp)
	}
	if len(ctx.World.Enemies) != 0 {
		t.Error("dead enemy not removed at end of tick")
	}
	if rec.count(engine.EventEnemyKilled) != 1 {
		t.Error("missing kill event")
	}
}

// TestExpForKill verifies magnet and exp boost scaling
func TestExpForKill(t *testing.T) {
	tests := []struct {
		name   string
		magnet bool
		boost  int
		boss   bool
		want   int
	}{
		{"base", false, 0, false, 10},
		{"magnet", true, 0, false, 15},
		{"boost 3", false, 3, false, 16},
		{"magnet boost 1", true, 1, false, 18},
		{"boss", false, 0, true, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := components.NewPlayer(0, 0, components.StatBonus{ExpBoostLevel: tt.boost})
			if tt.magnet {
				p.Artifacts = p.Artifacts.Add(components.ArtifactMagnet)
			}
			if got := ExpForKill(&p, tt.boss); got != tt.want {
				t.Errorf("ExpForKill = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestLeechHeals verifies bullet kills heal 2, or 10 for bosses
func TestLeechHeals(t *testing.T) {
	tests := []struct {
		name string
		boss bool
		want int
	}{
		{"normal", false, 52},
		{"boss", true, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
			p := ctx.Player()
			p.HP = 50
			p.ExpToNextLevel = 1000
			p.Artifacts = p.Artifacts.Add(components.ArtifactLeech)

			var e *components.EnemyComponent
			if tt.boss {
				e = addBoss(ctx, 70, 0)
			} else {
				e = addEnemy(ctx, 30, 0, "1")
			}
			e.HP = 1
			fireAt(sim, e, false)
			sim.Tick()

			if p.HP != tt.want {
				t.Errorf("HP = %d, want %d", p.HP, tt.want)
			}
		})
	}
}

// TestSplashDamagesNeighbours verifies half damage within the radius and credited splash kills
func TestSplashDamagesNeighbours(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	p := ctx.Player()
	p.ExpToNextLevel = 1000
	p.Artifacts = p.Artifacts.Add(components.ArtifactSplash)

	target := addEnemy(ctx, 30, 0, "1")
	target.HP = 1
	near := addEnemy(ctx, 30, 80, "2")
	near.HP = 100
	weak := addEnemy(ctx, 30, -50, "3")
	weak.HP = 20
	far := addEnemy(ctx, 30, 150, "4")
	far.HP = 100

	fireAt(sim, target, false)
	sim.Tick()

	if near.HP != 70 {
		t.Errorf("neighbour HP = %v, want 70", near.HP)
	}
	if far.HP != 100 {
		t.Errorf("out of range HP = %v, want 100", far.HP)
	}
	if !weak.Dead {
		t.Error("weak neighbour survived splash")
	}
	if ctx.State.Kills != 2 {
		t.Errorf("kills = %d, want 2", ctx.State.Kills)
	}
	if p.Exp != 2*constants.BaseKillExp {
		t.Errorf("exp = %d, want %d", p.Exp, 2*constants.BaseKillExp)
	}
}

// TestPoisonMarksSurvivor verifies a surviving hit applies poison
func TestPoisonMarksSurvivor(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	ctx.Player().Artifacts = ctx.Player().Artifacts.Add(components.ArtifactPoison)
	e := addEnemy(ctx, 30, 0, "1")
	fireAt(sim, e, false)

	sim.Tick()

	if !e.Poisoned {
		t.Error("survivor not poisoned")
	}
}

// TestPiercingIsNoOp verifies a piercing bullet is still consumed by its first hit
func TestPiercingIsNoOp(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	ctx.Player().Artifacts = ctx.Player().Artifacts.Add(components.ArtifactPiercing)
	target := addEnemy(ctx, 30, 0, "1")
	behind := addEnemy(ctx, 45, 0, "2")
	fireAt(sim, target, false)

	sim.Tick()

	if target.HP != 940 {
		t.Errorf("target HP = %v, want 940", target.HP)
	}
	if behind.HP != 1000 {
		t.Errorf("enemy behind target damaged: HP = %v", behind.HP)
	}
	if len(ctx.World.Bullets) != 0 {
		t.Error("piercing bullet survived its hit")
	}
}

// TestRapidFireSpeed verifies the projectile speed multiplier
func TestRapidFireSpeed(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	ctx.Player().Artifacts = ctx.Player().Artifacts.Add(components.ArtifactRapidFire)
	e := addEnemy(ctx, 300, 0, "1")

	b := fireAt(sim, e, false)

	if b.Speed != 30 {
		t.Errorf("speed = %v, want 30", b.Speed)
	}
}
