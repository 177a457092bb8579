// Package engine holds the simulation context, entity arena and tick driver.
//
// Event Flow
//
// Systems never call sound or network code directly. They push an Event into
// the context's EventQueue while the world lock is held; the Simulation drains
// the queue once the lock is released and fans events out to every registered
// EventListener. Listeners must not block: the sound manager hands tones to the
// beep mixer and websocket sessions drop events when their send buffer is full.
package engine

import "github.com/lixenwraith/system-defender/constants"

// EventType identifies a gameplay notification
type EventType string

const (
	// EventEnemyKilled is pushed when a regular enemy dies to a bullet, splash, poison or nuke
	EventEnemyKilled EventType = "enemy_killed"

	// EventBossKilled is pushed instead of EventEnemyKilled for bosses
	EventBossKilled EventType = "boss_killed"

	// EventBossSpawned is pushed when the boss cadence adds a boss
	EventBossSpawned EventType = "boss_spawned"

	// EventPlayerDamaged is pushed when contact damage gets through invincibility and shield
	EventPlayerDamaged EventType = "player_damaged"

	// EventLevelUp is pushed when the upgrade choice is presented
	EventLevelUp EventType = "level_up"

	// EventArtifactOffered is pushed when the minute reward is presented
	EventArtifactOffered EventType = "artifact_offered"

	// EventKeyAccepted is pushed for every typed rune that advanced an enemy prompt
	EventKeyAccepted EventType = "key_accepted"

	// EventKeyMissed is pushed for a typed rune that matched nothing
	EventKeyMissed EventType = "key_missed"

	// EventGameOver is pushed once when a run ends
	EventGameOver EventType = "game_over"
)

// Event is a positioned notification stamped with the active tick it happened on
type Event struct {
	Type EventType `json:"type" msgpack:"type"`
	Tick int64     `json:"tick" msgpack:"tick"`
	X    float64   `json:"x" msgpack:"x"`
	Y    float64   `json:"y" msgpack:"y"`
}

// EventListener receives drained events outside the world lock
type EventListener interface {
	HandleEvent(ev Event)
}

// EventListenerFunc adapts a function to EventListener
type EventListenerFunc func(ev Event)

// HandleEvent calls f(ev)
func (f EventListenerFunc) HandleEvent(ev Event) {
	f(ev)
}

// EventQueue buffers events produced under the world lock
// Not safe for concurrent use; guarded by World's update mutex
type EventQueue struct {
	events []Event
}

// NewEventQueue creates an empty queue
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]Event, 0, constants.EventQueueCapacity)}
}

// Push appends an event
func (q *EventQueue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Len returns the number of pending events
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain returns pending events in push order and empties the queue
func (q *EventQueue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// Clear drops pending events
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
}
