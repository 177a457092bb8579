package systems

import (
	"fmt"
	"math"
	"slices"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
	"github.com/lixenwraith/system-defender/status"
)

// ProgressionSystem owns experience, level-up choices and artifact rewards
// It has no per-tick work; combat and the time keeper call into it
type ProgressionSystem struct {
	ctx *engine.GameContext
}

// NewProgressionSystem creates a progression manager bound to ctx
func NewProgressionSystem(ctx *engine.GameContext) *ProgressionSystem {
	return &ProgressionSystem{ctx: ctx}
}

// GrantExp adds experience and resolves any level-ups it causes
func (s *ProgressionSystem) GrantExp(amount int) {
	if amount <= 0 {
		return
	}
	s.ctx.Player().Exp += amount
	s.CheckLevelUp()
}

// CheckLevelUp applies every level the current exp pays for, queuing one pick per level
// While playing, the first pick is presented immediately
func (s *ProgressionSystem) CheckLevelUp() {
	p := s.ctx.Player()
	for p.Exp >= p.ExpToNextLevel {
		p.Exp -= p.ExpToNextLevel
		p.Level++
		p.ExpToNextLevel = int(math.Floor(float64(p.ExpToNextLevel) * constants.LevelExpGrowth))
		s.ctx.State.PendingLevelUps++
		s.ctx.Stats.Ints.Get(status.KeyLevelUps).Add(1)
	}

	if s.ctx.State.PendingLevelUps > 0 && s.ctx.State.Phase == engine.PhasePlaying {
		s.offerUpgrades()
	}
}

// offerUpgrades enters LevelUp with a fresh option set
func (s *ProgressionSystem) offerUpgrades() {
	s.ctx.State.Upgrades = s.GenerateUpgrades()
	s.ctx.EnterChoice(engine.PhaseLevelUp)
	p := s.ctx.Player()
	s.ctx.PushEvent(engine.EventLevelUp, p.X, p.Y)
}

// GenerateUpgrades rolls three independent options
func (s *ProgressionSystem) GenerateUpgrades() []components.Upgrade {
	rng := s.ctx.Rand
	out := make([]components.Upgrade, 0, constants.UpgradeOptionCount)
	for i := 0; i < constants.UpgradeOptionCount; i++ {
		kind := components.UpgradeKinds[rng.IntN(len(components.UpgradeKinds))]
		rarity := components.RarityForRoll(rng.Float64())
		out = append(out, buildUpgrade(s.ctx.NextID(), kind, rarity))
	}
	return out
}

// buildUpgrade scales the base magnitude of kind by rarity
func buildUpgrade(id components.EntityID, kind components.UpgradeKind, rarity components.Rarity) components.Upgrade {
	m := rarity.Multiplier()
	u := components.Upgrade{ID: id, Kind: kind, Rarity: rarity}
	switch kind {
	case components.UpgradeDamage:
		u.Value = int(math.Floor(20 * m))
		u.Name = "바이러스 치료 강화"
		u.Description = fmt.Sprintf("공격력 +%d 증가", u.Value)
	case components.UpgradeSpeed:
		u.Value = int(math.Floor(3 * m))
		u.Name = "프로세스 가속"
		u.Description = fmt.Sprintf("투사체 속도 +%d 증가", u.Value)
	case components.UpgradeHeal:
		u.Value = int(math.Floor(30 * m))
		u.Name = "시스템 복구"
		u.Description = fmt.Sprintf("체력 %d 회복", u.Value)
	case components.UpgradeNuke:
		u.Rarity = components.RarityLegendary
		u.Name = "포맷 (전체 삭제)"
		u.Description = "화면의 모든 적 처치"
	case components.UpgradeShield:
		u.Value = int(math.Floor(5 * m))
		u.Name = "임시 보호막"
		u.Description = fmt.Sprintf("무적 시간 %d초 부여", u.Value)
	default:
		u.Kind = components.UpgradeFallback
		u.Value = int(math.Floor(15 * m))
		u.Name = "공격력 강화"
		u.Description = fmt.Sprintf("공격력 +%d", u.Value)
	}
	return u
}

// SelectUpgrade applies option index of the current set
func (s *ProgressionSystem) SelectUpgrade(index int) error {
	state := s.ctx.State
	switch state.Phase {
	case engine.PhaseLevelUp:
	case engine.PhaseIdle, engine.PhaseGameOver:
		return ErrNotPlaying
	default:
		return fmt.Errorf("%w: no upgrade pending", ErrInvalidChoice)
	}
	if index < 0 || index >= len(state.Upgrades) {
		return fmt.Errorf("%w: upgrade index %d of %d", ErrInvalidChoice, index, len(state.Upgrades))
	}

	s.applyUpgrade(state.Upgrades[index])
	state.PendingLevelUps--
	s.resume()
	return nil
}

// applyUpgrade performs one upgrade effect
func (s *ProgressionSystem) applyUpgrade(u components.Upgrade) {
	p := s.ctx.Player()
	switch u.Kind {
	case components.UpgradeDamage, components.UpgradeFallback:
		p.Damage += float64(u.Value)
	case components.UpgradeSpeed:
		p.ProjectileSpeed += float64(u.Value)
	case components.UpgradeHeal:
		p.Heal(u.Value)
	case components.UpgradeShield:
		p.InvincibleTimer = u.Value * constants.TickRate
	case components.UpgradeNuke:
		for _, e := range s.ctx.World.LiveEnemies() {
			s.ctx.AddFloatingText(e.X, e.Y, "DELETED", constants.ColorMiss)
			killEnemy(s.ctx, s, e, causeNuke)
		}
		s.ctx.AddFloatingText(p.X, p.Y-100, "SYSTEM FORMATTED", constants.ColorMiss)
	}
}

// OfferArtifacts enters ArtifactSelect with up to three unowned artifacts
// With every artifact owned, a single full-heal option is offered
func (s *ProgressionSystem) OfferArtifacts() {
	state := s.ctx.State
	state.Rewards++

	pool := s.ctx.Player().Artifacts.Unowned()
	s.ctx.Rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > constants.ArtifactOptionCount {
		pool = pool[:constants.ArtifactOptionCount]
	}
	if len(pool) == 0 {
		pool = []components.Artifact{components.FullHealArtifact}
	}
	state.ArtifactOptions = pool

	s.ctx.EnterChoice(engine.PhaseArtifactSelect)
	p := s.ctx.Player()
	s.ctx.PushEvent(engine.EventArtifactOffered, p.X, p.Y)
}

// SelectArtifact takes one of the offered artifacts
func (s *ProgressionSystem) SelectArtifact(id components.ArtifactID) error {
	state := s.ctx.State
	switch state.Phase {
	case engine.PhaseArtifactSelect:
	case engine.PhaseIdle, engine.PhaseGameOver:
		return ErrNotPlaying
	default:
		return fmt.Errorf("%w: no artifact pending", ErrInvalidChoice)
	}
	offered := slices.ContainsFunc(state.ArtifactOptions, func(a components.Artifact) bool { return a.ID == id })
	if !offered {
		return fmt.Errorf("%w: artifact %q not offered", ErrInvalidChoice, id)
	}

	p := s.ctx.Player()
	if id == components.ArtifactFullHeal {
		p.HP = p.MaxHP
		s.ctx.AddFloatingText(p.X, p.Y, "체력 완전 회복!", constants.ColorHeal)
	} else {
		p.Artifacts = p.Artifacts.Add(id)
	}
	s.resume()
	return nil
}

// resume presents the next queued upgrade pick or returns to play
func (s *ProgressionSystem) resume() {
	state := s.ctx.State
	if state.PendingLevelUps > 0 {
		state.Upgrades = s.GenerateUpgrades()
		state.ArtifactOptions = nil
		if state.Phase != engine.PhaseLevelUp {
			s.ctx.EnterChoice(engine.PhaseLevelUp)
		}
		p := s.ctx.Player()
		s.ctx.PushEvent(engine.EventLevelUp, p.X, p.Y)
		return
	}
	s.ctx.ResumePlay()
}
