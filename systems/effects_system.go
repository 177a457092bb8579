package systems

import (
	"github.com/lixenwraith/system-defender/components"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// EffectsSystem decays particles, floating texts and beams
type EffectsSystem struct {
	ctx *engine.GameContext
}

// NewEffectsSystem creates the cosmetic decay system
func NewEffectsSystem(ctx *engine.GameContext) *EffectsSystem {
	return &EffectsSystem{ctx: ctx}
}

// Priority returns the system's priority
func (s *EffectsSystem) Priority() int {
	return constants.PriorityEffects
}

// Update advances every visual record and drops the expired ones
func (s *EffectsSystem) Update() {
	if !s.ctx.Running() {
		return
	}
	w := s.ctx.World

	particles := w.Particles[:0]
	for _, p := range w.Particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= components.ParticleDecay
		if p.Life > 0 {
			particles = append(particles, p)
		}
	}
	w.Particles = particles

	texts := w.FloatingTexts[:0]
	for _, t := range w.FloatingTexts {
		t.Y -= components.FloatingTextRise
		t.Life -= components.FloatingTextDecay
		if t.Life > 0 {
			texts = append(texts, t)
		}
	}
	w.FloatingTexts = texts

	beams := w.Beams[:0]
	for _, b := range w.Beams {
		b.Life -= components.BeamDecay
		if b.Life > 0 {
			beams = append(beams, b)
		}
	}
	w.Beams = beams
}

// CleanupSystem removes enemies killed during the tick
type CleanupSystem struct {
	ctx *engine.GameContext
}

// NewCleanupSystem creates the end-of-tick cleanup system
func NewCleanupSystem(ctx *engine.GameContext) *CleanupSystem {
	return &CleanupSystem{ctx: ctx}
}

// Priority returns the system's priority
func (s *CleanupSystem) Priority() int {
	return constants.PriorityCleanup
}

// Update compacts the enemy slice; runs in every phase so kills from choices clear too
func (s *CleanupSystem) Update() {
	s.ctx.World.RemoveDeadEnemies()
}
