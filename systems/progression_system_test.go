package systems

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// TestLevelUpCarriesOverflow verifies leftover exp and the growing threshold
func TestLevelUpCarriesOverflow(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	rec := recordEvents(sim)

	sim.run(func() { sim.progression.GrantExp(12) })

	p := ctx.Player()
	if p.Level != 2 || p.Exp != 2 || p.ExpToNextLevel != 15 {
		t.Errorf("level=%d exp=%d next=%d, want 2/2/15", p.Level, p.Exp, p.ExpToNextLevel)
	}
	if ctx.State.Phase != engine.PhaseLevelUp || len(ctx.State.Upgrades) != constants.UpgradeOptionCount {
		t.Errorf("phase=%s options=%d", ctx.State.Phase, len(ctx.State.Upgrades))
	}
	if !ctx.Clock.IsPaused() {
		t.Error("clock running during level-up")
	}
	if rec.count(engine.EventLevelUp) != 1 {
		t.Error("missing level-up event")
	}
}

// TestMultipleLevelUpsQueuePicks verifies one pick per level gained at once
func TestMultipleLevelUpsQueuePicks(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)

	sim.run(func() { sim.progression.GrantExp(47) })

	p := ctx.Player()
	if p.Level != 4 || p.Exp != 0 || p.ExpToNextLevel != 33 {
		t.Fatalf("level=%d exp=%d next=%d, want 4/0/33", p.Level, p.Exp, p.ExpToNextLevel)
	}
	if ctx.State.PendingLevelUps != 3 {
		t.Fatalf("pending = %d, want 3", ctx.State.PendingLevelUps)
	}

	for i := 0; i < 2; i++ {
		if err := sim.SelectUpgrade(0); err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
		if ctx.State.Phase != engine.PhaseLevelUp || len(ctx.State.Upgrades) != constants.UpgradeOptionCount {
			t.Fatalf("pick %d left phase=%s options=%d", i, ctx.State.Phase, len(ctx.State.Upgrades))
		}
	}
	if err := sim.SelectUpgrade(2); err != nil {
		t.Fatalf("last pick: %v", err)
	}
	if ctx.State.Phase != engine.PhasePlaying || ctx.State.PendingLevelUps != 0 {
		t.Errorf("phase=%s pending=%d after all picks", ctx.State.Phase, ctx.State.PendingLevelUps)
	}
	if ctx.State.Upgrades != nil || ctx.Clock.IsPaused() {
		t.Error("choice state not cleared on resume")
	}
}

// TestSelectUpgradeErrors verifies invalid indices and phases
func TestSelectUpgradeErrors(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)

	if err := sim.SelectUpgrade(0); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("playing: err = %v, want ErrInvalidChoice", err)
	}

	sim.run(func() { sim.progression.GrantExp(10) })
	for _, idx := range []int{-1, 3, 99} {
		if err := sim.SelectUpgrade(idx); !errors.Is(err, ErrInvalidChoice) {
			t.Errorf("index %d: err = %v, want ErrInvalidChoice", idx, err)
		}
	}
	if ctx.State.Phase != engine.PhaseLevelUp {
		t.Error("invalid pick left level-up")
	}

	sim.run(func() { ctx.EndRun(engine.ReasonDefeated) })
	if err := sim.SelectUpgrade(0); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("game over: err = %v, want ErrNotPlaying", err)
	}
}

// TestUpgradeEffects verifies each upgrade kind scaled by rarity
func TestUpgradeEffects(t *testing.T) {
	tests := []struct {
		name   string
		kind   components.UpgradeKind
		rarity components.Rarity
		check  func(p *components.PlayerComponent) bool
	}{
		{"damage common", components.UpgradeDamage, components.RarityCommon,
			func(p *components.PlayerComponent) bool { return p.Damage == 80 }},
		{"damage legendary", components.UpgradeDamage, components.RarityLegendary,
			func(p *components.PlayerComponent) bool { return p.Damage == 120 }},
		{"speed rare", components.UpgradeSpeed, components.RarityRare,
			func(p *components.PlayerComponent) bool { return p.ProjectileSpeed == 24 }},
		{"heal epic capped", components.UpgradeHeal, components.RarityEpic,
			func(p *components.PlayerComponent) bool { return p.HP == p.MaxHP }},
		{"shield legendary", components.UpgradeShield, components.RarityLegendary,
			func(p *components.PlayerComponent) bool { return p.InvincibleTimer == 15*constants.TickRate }},
		{"fallback common", components.UpgradeFallback, components.RarityCommon,
			func(p *components.PlayerComponent) bool { return p.Damage == 75 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
			p := ctx.Player()
			p.HP = 50
			prog := NewProgressionSystem(ctx)

			prog.applyUpgrade(buildUpgrade(1, tt.kind, tt.rarity))

			if !tt.check(p) {
				t.Errorf("unexpected player after upgrade: %+v", *p)
			}
		})
	}
}

// TestHealUpgradeAmount verifies an uncapped heal restores the scaled value
func TestHealUpgradeAmount(t *testing.T) {
	u := buildUpgrade(1, components.UpgradeHeal, components.RarityRare)
	if u.Value != 45 {
		t.Errorf("rare heal = %d, want 45", u.Value)
	}
}

// TestNukeClearsEnemies verifies nuke kills every live enemy for kill credit only
func TestNukeClearsEnemies(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	for i := 0; i < 4; i++ {
		addEnemy(ctx, 300, float64(i*10), "1")
	}
	addBoss(ctx, -300, 0)
	ctx.State.Upgrades = []components.Upgrade{buildUpgrade(1, components.UpgradeNuke, components.RarityCommon)}
	ctx.State.PendingLevelUps = 1
	ctx.EnterChoice(engine.PhaseLevelUp)

	if err := sim.SelectUpgrade(0); err != nil {
		t.Fatal(err)
	}

	if len(ctx.World.Enemies) != 0 {
		t.Errorf("enemies = %d after nuke", len(ctx.World.Enemies))
	}
	if ctx.State.Kills != 5 {
		t.Errorf("kills = %d, want 5", ctx.State.Kills)
	}
	if ctx.Player().Exp != 0 {
		t.Errorf("nuke granted exp %d", ctx.Player().Exp)
	}
}

// TestGenerateUpgrades verifies option count and the legendary nuke
func TestGenerateUpgrades(t *testing.T) {
	_, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	prog := NewProgressionSystem(ctx)

	seen := map[components.UpgradeKind]bool{}
	for i := 0; i < 500; i++ {
		opts := prog.GenerateUpgrades()
		if len(opts) != constants.UpgradeOptionCount {
			t.Fatalf("options = %d", len(opts))
		}
		for _, u := range opts {
			seen[u.Kind] = true
			if u.Kind == components.UpgradeNuke && u.Rarity != components.RarityLegendary {
				t.Fatalf("nuke rolled %s", u.Rarity)
			}
			if u.Name == "" || u.Description == "" {
				t.Fatalf("upgrade %s missing text", u.Kind)
			}
		}
	}
	if len(seen) != len(components.UpgradeKinds) {
		t.Errorf("kinds seen = %d, want %d", len(seen), len(components.UpgradeKinds))
	}
}

// TestArtifactOffer verifies three distinct unowned options and selection
func TestArtifactOffer(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	p := ctx.Player()
	p.Artifacts = p.Artifacts.Add(components.ArtifactDrone)

	sim.run(sim.progression.OfferArtifacts)

	opts := ctx.State.ArtifactOptions
	if ctx.State.Phase != engine.PhaseArtifactSelect || len(opts) != constants.ArtifactOptionCount {
		t.Fatalf("phase=%s options=%d", ctx.State.Phase, len(opts))
	}
	ids := map[components.ArtifactID]bool{}
	for _, a := range opts {
		if p.Artifacts.Has(a.ID) || ids[a.ID] {
			t.Fatalf("option %s owned or duplicated", a.ID)
		}
		ids[a.ID] = true
	}

	if err := sim.SelectArtifact(components.ArtifactDrone); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("unoffered artifact: err = %v", err)
	}
	if err := sim.SelectArtifact(opts[1].ID); err != nil {
		t.Fatal(err)
	}
	if !p.Artifacts.Has(opts[1].ID) || p.Artifacts.Count() != 2 {
		t.Error("artifact not added")
	}
	if ctx.State.Phase != engine.PhasePlaying || ctx.State.ArtifactOptions != nil {
		t.Error("did not resume play")
	}
}

// TestArtifactOfferAllOwned verifies the full-heal fallback
func TestArtifactOfferAllOwned(t *testing.T) {
	sim, ctx, _ := newTestSimulation(t, constants.ModeMath, 3)
	p := ctx.Player()
	for _, a := range components.Artifacts {
		p.Artifacts = p.Artifacts.Add(a.ID)
	}
	p.HP = 10

	sim.run(sim.progression.OfferArtifacts)

	opts := ctx.State.ArtifactOptions
	if len(opts) != 1 || opts[0].ID != components.ArtifactFullHeal {
		t.Fatalf("options = %+v, want full heal only", opts)
	}
	if err := sim.SelectOption(0); err != nil {
		t.Fatal(err)
	}
	if p.HP != p.MaxHP {
		t.Errorf("HP = %d, want %d", p.HP, p.MaxHP)
	}
	if p.Artifacts.Has(components.ArtifactFullHeal) {
		t.Error("full heal stored as artifact")
	}
}

// TestArtifactRewardEachMinute verifies one offer per elapsed minute
func TestArtifactRewardEachMinute(t *testing.T) {
	sim, ctx, mock := newTestSimulation(t, constants.ModeMath, 3)
	rec := recordEvents(sim)

	mock.Advance(61 * time.Second)
	sim.Tick()
	if ctx.State.Phase != engine.PhaseArtifactSelect || ctx.State.Rewards != 1 {
		t.Fatalf("phase=%s rewards=%d, want artifact_select/1", ctx.State.Phase, ctx.State.Rewards)
	}
	if rec.count(engine.EventArtifactOffered) != 1 {
		t.Error("missing artifact offered event")
	}

	mock.Advance(time.Hour)
	sim.Tick()
	if ctx.Elapsed() != 61*time.Second {
		t.Errorf("elapsed = %v while choosing, want 61s", ctx.Elapsed())
	}

	if err := sim.SelectOption(0); err != nil {
		t.Fatal(err)
	}
	sim.Tick()
	if ctx.State.Phase != engine.PhasePlaying || ctx.State.Rewards != 1 {
		t.Fatalf("second offer in same minute: phase=%s rewards=%d", ctx.State.Phase, ctx.State.Rewards)
	}

	mock.Advance(60 * time.Second)
	sim.Tick()
	if ctx.State.Phase != engine.PhaseArtifactSelect || ctx.State.Rewards != 2 {
		t.Errorf("phase=%s rewards=%d, want artifact_select/2", ctx.State.Phase, ctx.State.Rewards)
	}
}

// TestTimeUpEndsRun verifies the run ends when game time runs out
func TestTimeUpEndsRun(t *testing.T) {
	sim, ctx, mock := newTestSimulation(t, constants.ModeMath, 3)
	ctx.State.Rewards = constants.MaxArtifactRewards

	mock.Advance(constants.GameDuration - time.Second)
	sim.Tick()
	if ctx.State.TimeRemaining != time.Second || ctx.State.Phase != engine.PhasePlaying {
		t.Fatalf("remaining=%v phase=%s", ctx.State.TimeRemaining, ctx.State.Phase)
	}

	mock.Advance(time.Second)
	sim.Tick()
	if ctx.State.Phase != engine.PhaseGameOver || ctx.State.Reason != engine.ReasonTimeUp {
		t.Errorf("phase=%s reason=%s, want game_over/time_up", ctx.State.Phase, ctx.State.Reason)
	}
	if ctx.State.TimeRemaining != 0 {
		t.Errorf("remaining = %v, want 0", ctx.State.TimeRemaining)
	}
}

// TestChoicePausesTickCounter verifies paused phases advance neither time nor ticks
func TestChoicePausesTickCounter(t *testing.T) {
	sim, ctx, mock := newTestSimulation(t, constants.ModeMath, 3)
	mock.Advance(10 * time.Second)
	sim.Tick()
	ticks := ctx.Tick()

	sim.run(func() { sim.progression.GrantExp(10) })
	mock.Advance(30 * time.Second)
	for i := 0; i < 5; i++ {
		sim.Tick()
	}
	if ctx.Tick() != ticks {
		t.Errorf("ticks advanced while paused: %d -> %d", ticks, ctx.Tick())
	}
	if ctx.State.TimeRemaining != constants.GameDuration-10*time.Second {
		t.Errorf("remaining = %v while paused", ctx.State.TimeRemaining)
	}

	if err := sim.SelectOption(0); err != nil {
		t.Fatal(err)
	}
	sim.Tick()
	if ctx.Tick() != ticks+1 {
		t.Errorf("ticks = %d after resume, want %d", ctx.Tick(), ticks+1)
	}
	if ctx.State.TimeRemaining != constants.GameDuration-10*time.Second {
		t.Errorf("remaining = %v after resume", ctx.State.TimeRemaining)
	}
}
