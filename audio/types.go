// Package audio plays short synthesized tone sequences for gameplay events
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundTyping    SoundType = iota // Accepted keystroke tick
	SoundMiss                       // Typing error buzz
	SoundKill                       // Rising three-note arpeggio
	SoundDamage                     // Low sawtooth thud
	SoundLevelUp                    // Four-note major arpeggio
	SoundBossSpawn                  // Descending sawtooth rumble
	SoundBossKill                   // Six-note fanfare
	SoundArtifact                   // Sine chime
	soundTypeCount
)

var soundNames = [soundTypeCount]string{
	SoundTyping:    "typing",
	SoundMiss:      "miss",
	SoundKill:      "kill",
	SoundDamage:    "damage",
	SoundLevelUp:   "levelUp",
	SoundBossSpawn: "bossSpawn",
	SoundBossKill:  "bossKill",
	SoundArtifact:  "artifact",
}

// String returns the name used in configuration
func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return fmt.Sprintf("SoundType(%d)", int(s))
	}
	return soundNames[s]
}

// ParseSoundType maps a configuration name back to its SoundType
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// Note is one tone of a sound theme, started Offset after the theme begins
type Note struct {
	Freq     float64
	Duration time.Duration
	Offset   time.Duration
	Wave     WaveType
}

// Sink receives finished streamers; the speaker in production, a recorder in tests
type Sink interface {
	Play(s beep.Streamer)
}
