package constants

import "time"

// Audio Engine
const (
	// AudioSampleRate is the default mixer sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration sizes the speaker buffer
	AudioBufferDuration = 100 * time.Millisecond
)

// Tone envelope shaping shared by all note sequences
const (
	ToneAttack  = 5 * time.Millisecond
	ToneRelease = 40 * time.Millisecond
)
