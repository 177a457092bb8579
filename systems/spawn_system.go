package systems

import (
	"math"
	"time"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// SpawnInterval returns the regular spawn cadence in ticks
func SpawnInterval(elapsedMin float64, difficulty int, mobile bool) int {
	base := math.Max(constants.SpawnMinInterval, constants.SpawnBaseInterval-elapsedMin*constants.SpawnIntervalDecayMin)
	interval := int(math.Max(constants.SpawnFloorInterval, math.Floor(base/constants.DifficultyFor(difficulty).SpawnRate)))
	if mobile {
		interval = int(math.Floor(float64(interval) * constants.SpawnMobileFactor))
	}
	return interval
}

// MaxEnemies returns the live enemy cap for regular spawns
func MaxEnemies(elapsedMin float64, difficulty int) int {
	base := constants.SpawnBaseMaxEnemies + math.Floor(elapsedMin*constants.SpawnMaxEnemiesPerMin)
	return int(math.Floor(base * constants.DifficultyFor(difficulty).MaxEnemies))
}

// BossInterval returns the time between boss phases; higher difficulty shortens it
func BossInterval(difficulty int) time.Duration {
	d := constants.ClampDifficulty(difficulty)
	ms := math.Floor(float64(constants.BossBaseInterval.Milliseconds()) / (1 + float64(d-1)*0.2))
	return time.Duration(ms) * time.Millisecond
}

// BossPhase returns floor((elapsed - interval) / interval); a boss is due while it exceeds bosses spawned
func BossPhase(elapsed time.Duration, difficulty int) int {
	interval := BossInterval(difficulty)
	return int(math.Floor(float64(elapsed-interval) / float64(interval)))
}

// SpawnSystem decides when, where and what enemy to create
type SpawnSystem struct {
	ctx *engine.GameContext
}

// NewSpawnSystem creates a spawn system bound to ctx
func NewSpawnSystem(ctx *engine.GameContext) *SpawnSystem {
	return &SpawnSystem{ctx: ctx}
}

// Priority returns the system's priority
func (s *SpawnSystem) Priority() int {
	return constants.PrioritySpawn
}

// Update applies the boss and regular cadences for the current tick
func (s *SpawnSystem) Update() {
	if !s.ctx.Running() {
		return
	}

	tick := s.ctx.Tick()
	elapsed := s.ctx.Elapsed()
	elapsedMin := elapsed.Minutes()
	world := s.ctx.World

	if tick%constants.BossCheckIntervalTicks == 0 {
		phase := BossPhase(elapsed, s.ctx.Difficulty)
		if phase > 0 && !world.HasLiveBoss() && s.ctx.State.BossesSpawned < phase {
			boss := s.Spawn(true)
			s.ctx.State.BossesSpawned++
			p := s.ctx.Player()
			s.ctx.AddFloatingText(p.X, p.Y-50, "⚠ 보스 출현! ⚠", constants.ColorWarning)
			s.ctx.PushEvent(engine.EventBossSpawned, boss.X, boss.Y)
		}
	}

	interval := SpawnInterval(elapsedMin, s.ctx.Difficulty, s.ctx.Mobile)
	if tick%int64(interval) == 0 && world.LiveEnemyCount() < MaxEnemies(elapsedMin, s.ctx.Difficulty) {
		s.Spawn(false)
	}
}

// Spawn creates one enemy just off a random screen edge and appends it to the world
func (s *SpawnSystem) Spawn(isBoss bool) *components.EnemyComponent {
	ctx := s.ctx
	rng := ctx.Rand
	player := ctx.Player()
	diff := constants.DifficultyFor(ctx.Difficulty)
	level := float64(player.Level)

	padding := float64(constants.SpawnPadding)
	if isBoss {
		padding = constants.SpawnBossPadding
	}
	var x, y float64
	switch rng.IntN(4) {
	case 0:
		x, y = rng.Float64()*ctx.Width, -padding
	case 1:
		x, y = ctx.Width+padding, rng.Float64()*ctx.Height
	case 2:
		x, y = rng.Float64()*ctx.Width, ctx.Height+padding
	default:
		x, y = -padding, rng.Float64()*ctx.Height
	}

	kind := components.EnemyBoss
	if !isBoss {
		roll := rng.Float64()
		bias := level*constants.SpawnChancePerLevel + float64(ctx.Difficulty-1)*constants.SpawnChancePerDiff
		switch {
		case roll < constants.SpawnTankBase+bias:
			kind = components.EnemyTank
		case roll < constants.SpawnFastBase+bias:
			kind = components.EnemyFast
		default:
			kind = components.EnemyNormal
		}
	}
	typ := components.EnemyTypes[kind]

	timeScale := 1 + ctx.ElapsedMinutes()*constants.SpawnTimeScalePerMin
	var baseHP, speed float64
	if isBoss {
		baseHP = (constants.SpawnBossBaseHP + level*constants.SpawnBossHPPerLevel) * timeScale
		speed = constants.SpawnBossSpeed
	} else {
		baseHP = (constants.SpawnBaseHP + level*constants.SpawnHPPerLevel) * timeScale
		speed = constants.SpawnBaseSpeed + rng.Float64() + level*constants.SpawnSpeedPerLevel
	}
	baseHP *= diff.HP
	speed *= diff.Speed
	if player.Artifacts.Has(components.ArtifactFreeze) {
		speed *= constants.SpawnFreezeSpeedMult
	}
	if ctx.Mobile {
		speed *= constants.SpawnMobileSpeedMult
	}

	prompt, answer := GenerateQuestion(rng, ctx.Mode, ctx.Difficulty)
	if isBoss {
		prompt = constants.BossPromptPrefix + prompt
	}

	e := &components.EnemyComponent{
		ID:       ctx.NextID(),
		X:        x,
		Y:        y,
		Type:     typ,
		HP:       baseHP * typ.HPMult,
		MaxHP:    baseHP * typ.HPMult,
		Speed:    speed * typ.SpeedMult,
		Radius:   typ.Size,
		Question: prompt,
		Answer:   answer,
		IsBoss:   isBoss,
	}
	ctx.World.Enemies = append(ctx.World.Enemies, e)
	return e
}
