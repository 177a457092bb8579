package constants

import "time"

// Player base stats
const (
	PlayerBaseHP              = 100
	PlayerBaseDamage          = 60
	PlayerBaseCritChance      = 0.0
	PlayerBaseProjectileSpeed = 20
	PlayerBaseExpToNext       = 10
	PlayerRadius              = 12
)

// Player damage handling
const (
	// InvincibilityTicks is the post-hit immunity window (one second)
	InvincibilityTicks = 60

	// MissPenalty is the HP lost when a typed character matches nothing
	MissPenalty = 3

	// ShieldBlockChance is the chance the shield artifact ignores a hit
	ShieldBlockChance = 0.3
)

// Projectile mechanics
const (
	BulletRadius       = 4
	BulletLife         = 100
	BulletTrailLength  = 5
	BulletHitSlack     = 2
	RapidFireSpeedMult = 1.5

	// DoubleShotDelayTicks delays the second doubleShot projectile (100ms)
	DoubleShotDelayTicks = 6

	CritMultiplier       = 2
	CritMasterMultiplier = 3
)

// Experience and leveling
const (
	BaseKillExp        = 10
	MagnetExpMult      = 1.5
	ExpBoostPerLevel   = 0.2
	BossKillExpBonus   = 50
	LevelExpGrowth     = 1.5
	UpgradeOptionCount = 3
)

// Kill side effects
const (
	LeechHeal          = 2
	LeechBossHeal      = 10
	SplashDamageRatio  = 0.5
	SplashRadius       = 100
	SplashBossRadius   = 150
	PoisonIntervalTick = 60
	PoisonDamage       = 10
)

// Artifact passives
const (
	// DroneInterval is the game-time cooldown of the drone artifact
	DroneInterval = 1000 * time.Millisecond

	// RegenerationIntervalTicks heals every five seconds
	RegenerationIntervalTicks = 300
	RegenerationHeal          = 5
)

// Artifact rewards
const (
	// ArtifactRewardInterval is the game time between artifact rewards
	ArtifactRewardInterval = time.Minute

	// MaxArtifactRewards caps reward events per run
	MaxArtifactRewards = 5

	ArtifactOptionCount = 3
)

// Spawn cadence
const (
	SpawnBaseInterval      = 60
	SpawnIntervalDecayMin  = 10
	SpawnMinInterval       = 20
	SpawnFloorInterval     = 10
	SpawnMobileFactor      = 1.5
	SpawnBaseMaxEnemies    = 20
	SpawnMaxEnemiesPerMin  = 8
	SpawnPadding           = 60
	SpawnBossPadding       = 100
	SpawnTimeScalePerMin   = 1.5
	SpawnBaseHP            = 50
	SpawnHPPerLevel        = 15
	SpawnBossBaseHP        = 300
	SpawnBossHPPerLevel    = 50
	SpawnBaseSpeed         = 0.5
	SpawnSpeedPerLevel     = 0.1
	SpawnBossSpeed         = 0.3
	SpawnFreezeSpeedMult   = 0.8
	SpawnMobileSpeedMult   = 0.5
	SpawnTankBase          = 0.15
	SpawnFastBase          = 0.40
	SpawnChancePerLevel    = 0.02
	SpawnChancePerDiff     = 0.05
	BossPromptPrefix       = "BOSS:"
	BossCheckIntervalTicks = 60
)

// BossBaseInterval is the boss cadence at difficulty 1
const BossBaseInterval = 45 * time.Second

// Boss special behavior
const (
	BossSkillIntervalTicks = 600
	BossSummonCount        = 3
	BossSummonRadius       = 80
	BossEmpowerHeal        = 50
)
