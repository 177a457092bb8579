package systems

import (
	"strconv"

	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// ArtifactSystem runs the passive artifacts: drone fire and regeneration
type ArtifactSystem struct {
	ctx        *engine.GameContext
	projectile *ProjectileSystem
}

// NewArtifactSystem creates the passive artifact runner
func NewArtifactSystem(ctx *engine.GameContext, projectile *ProjectileSystem) *ArtifactSystem {
	return &ArtifactSystem{ctx: ctx, projectile: projectile}
}

// Priority returns the system's priority
func (s *ArtifactSystem) Priority() int {
	return constants.PriorityArtifact
}

// Update fires the drone and ticks regeneration
func (s *ArtifactSystem) Update() {
	ctx := s.ctx
	if !ctx.Running() {
		return
	}
	p := ctx.Player()

	if p.Artifacts.Has(components.ArtifactDrone) {
		now := ctx.Elapsed()
		if now-ctx.State.LastDroneShot > constants.DroneInterval {
			if target, ok := ctx.World.NearestLiveEnemy(p.X, p.Y); ok {
				s.projectile.Fire(target.ID, true)
				ctx.State.LastDroneShot = now
			}
		}
	}

	if p.Artifacts.Has(components.ArtifactRegeneration) && ctx.Tick()%constants.RegenerationIntervalTicks == 0 {
		p.Heal(constants.RegenerationHeal)
		ctx.AddFloatingText(p.X, p.Y-30, "+"+strconv.Itoa(constants.RegenerationHeal)+" HP", constants.ColorHeal)
	}
}
