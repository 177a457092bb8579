package systems

import (
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// TimeKeeperSystem runs first each tick: match timer, minute rewards and the active tick counter
// It decides whether the rest of the tick advances combat
type TimeKeeperSystem struct {
	ctx  *engine.GameContext
	prog *ProgressionSystem
}

// NewTimeKeeperSystem creates the time keeper
func NewTimeKeeperSystem(ctx *engine.GameContext, prog *ProgressionSystem) *TimeKeeperSystem {
	return &TimeKeeperSystem{ctx: ctx, prog: prog}
}

// Priority returns the system's priority
func (s *TimeKeeperSystem) Priority() int {
	return constants.PriorityTimeKeeper
}

// Update refreshes remaining time and gates the tick
func (s *TimeKeeperSystem) Update() {
	ctx := s.ctx
	state := ctx.State
	state.Active = false

	if state.Phase != engine.PhasePlaying && !state.Phase.Paused() {
		return
	}

	elapsed := ctx.Elapsed()
	remaining := constants.GameDuration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	state.TimeRemaining = remaining

	if state.Phase != engine.PhasePlaying {
		return
	}
	if remaining <= 0 {
		ctx.EndRun(engine.ReasonTimeUp)
		return
	}

	minute := int(elapsed / constants.ArtifactRewardInterval)
	if minute > state.Rewards && state.Rewards < constants.MaxArtifactRewards {
		s.prog.OfferArtifacts()
		return
	}

	state.Active = true
	ctx.AdvanceTick()

	p := ctx.Player()
	if p.InvincibleTimer > 0 {
		p.InvincibleTimer--
	}
}
