// Package status keeps process-wide counters for runs, sessions and audio
// Writers cache the pointer once and update the atomic directly
package status

import "sync/atomic"

// Well-known metric keys
const (
	KeyTicks         = "engine.ticks"
	KeyRunsStarted   = "run.started"
	KeyKills         = "run.kills"
	KeyBossKills     = "run.boss_kills"
	KeyLevelUps      = "run.level_ups"
	KeyMisses        = "run.misses"
	KeyBulletsFired  = "run.bullets"
	KeyDamageTaken   = "run.damage_taken"
	KeySessions      = "net.sessions"
	KeyLookupOffline = "net.lookup_offline"
	KeyLastGameOver  = "run.last_reason"
	KeySoundsPlayed  = "audio.played"
	KeyAudioEnabled  = "audio.enabled"
	KeyMasterVolume  = "audio.volume"
)

// Registry groups metric maps by value type
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of registered metrics of all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Export flattens every metric into a key/value map suitable for JSON
func (r *Registry) Export() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
