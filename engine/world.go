package engine

import (
	"sync"

	"github.com/lixenwraith/system-defender/components"
)

// System is one ordered phase of the simulation tick
type System interface {
	// Priority orders systems; lower runs first
	Priority() int
	// Update advances the system by one tick with the world lock held
	Update()
}

// World is the mutable entity arena of a single run
// Entity slices are only touched while the update mutex is held
type World struct {
	mu sync.RWMutex // guards systems

	Player        components.PlayerComponent
	Enemies       []*components.EnemyComponent
	Bullets       []*components.BulletComponent
	Particles     []components.ParticleComponent
	FloatingTexts []components.FloatingTextComponent
	Beams         []components.BeamComponent

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates an empty arena
func NewWorld() *World {
	return &World{
		systems: make([]System, 0),
	}
}

// Clear drops every entity; the player is left for the caller to replace
func (w *World) Clear() {
	w.Enemies = w.Enemies[:0]
	w.Bullets = w.Bullets[:0]
	w.Particles = w.Particles[:0]
	w.FloatingTexts = w.FloatingTexts[:0]
	w.Beams = w.Beams[:0]
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N), stable for equal priorities
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems in run order
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// UpdateLocked runs every system once; caller must hold the update lock
func (w *World) UpdateLocked() {
	w.mu.RLock()
	systems := w.systems
	w.mu.RUnlock()

	for _, s := range systems {
		s.Update()
	}
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires the update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// TryLock attempts to acquire the update mutex without blocking
func (w *World) TryLock() bool {
	return w.updateMutex.TryLock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}

// FindEnemy returns the enemy with id, dead or alive
func (w *World) FindEnemy(id components.EntityID) (*components.EnemyComponent, bool) {
	for _, e := range w.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// LiveEnemies returns enemies not marked dead, in spawn order
func (w *World) LiveEnemies() []*components.EnemyComponent {
	live := make([]*components.EnemyComponent, 0, len(w.Enemies))
	for _, e := range w.Enemies {
		if e.Alive() {
			live = append(live, e)
		}
	}
	return live
}

// LiveEnemyCount counts enemies not marked dead
func (w *World) LiveEnemyCount() int {
	n := 0
	for _, e := range w.Enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}

// HasLiveBoss reports whether any boss is still alive
func (w *World) HasLiveBoss() bool {
	for _, e := range w.Enemies {
		if e.IsBoss && e.Alive() {
			return true
		}
	}
	return false
}

// NearestLiveEnemy returns the live enemy closest to (x, y); earlier spawns win ties
func (w *World) NearestLiveEnemy(x, y float64) (*components.EnemyComponent, bool) {
	var best *components.EnemyComponent
	bestDist := 0.0
	for _, e := range w.Enemies {
		if !e.Alive() {
			continue
		}
		d := e.DistanceTo(x, y)
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best != nil
}

// RemoveDeadEnemies compacts the enemy slice in place
func (w *World) RemoveDeadEnemies() {
	n := 0
	for _, e := range w.Enemies {
		if e.Alive() {
			w.Enemies[n] = e
			n++
		}
	}
	clear(w.Enemies[n:])
	w.Enemies = w.Enemies[:n]
}

// RemoveBullet drops the bullet with id
func (w *World) RemoveBullet(id components.EntityID) {
	for i, b := range w.Bullets {
		if b.ID == id {
			w.Bullets = append(w.Bullets[:i], w.Bullets[i+1:]...)
			return
		}
	}
}
