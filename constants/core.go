package constants

// Event queue sizing
const (
	// EventQueueCapacity is the initial capacity of the per-tick event buffer
	EventQueueCapacity = 64
)

// System Execution Priorities (lower runs first)
const (
	PriorityTimeKeeper = 0
	PriorityArtifact   = 5
	PrioritySpawn      = 10
	PriorityBoss       = 15
	PriorityProjectile = 20
	PriorityEnemy      = 25
	PriorityEffects    = 30
	PriorityCleanup    = 100
)
