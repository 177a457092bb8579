package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/system-defender/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	releaseStart   int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release inside duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		releaseStart:   total - rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= e.releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; 0 or below is silent
// math.Log2(0) is -Inf so silence is handled explicitly
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Themes are the note sequences played per sound
// SoundTyping is generated per play with a random pitch
var Themes = map[SoundType][]Note{
	SoundMiss: {
		{Freq: 100, Duration: 80 * time.Millisecond, Wave: WaveSaw},
	},
	SoundKill: {
		{Freq: 523, Duration: 80 * time.Millisecond, Wave: WaveSquare},
		{Freq: 659, Duration: 80 * time.Millisecond, Offset: 50 * time.Millisecond, Wave: WaveSquare},
		{Freq: 784, Duration: 100 * time.Millisecond, Offset: 100 * time.Millisecond, Wave: WaveSquare},
	},
	SoundDamage: {
		{Freq: 150, Duration: 200 * time.Millisecond, Wave: WaveSaw},
		{Freq: 100, Duration: 150 * time.Millisecond, Offset: 50 * time.Millisecond, Wave: WaveSaw},
	},
	SoundBossSpawn: {
		{Freq: 100, Duration: 500 * time.Millisecond, Wave: WaveSaw},
		{Freq: 80, Duration: 500 * time.Millisecond, Offset: 200 * time.Millisecond, Wave: WaveSaw},
		{Freq: 60, Duration: 800 * time.Millisecond, Offset: 400 * time.Millisecond, Wave: WaveSaw},
	},
	SoundLevelUp:  arpeggio(WaveSquare, 150*time.Millisecond, 100*time.Millisecond, 523, 659, 784, 1047),
	SoundBossKill: arpeggio(WaveSquare, 200*time.Millisecond, 80*time.Millisecond, 392, 494, 587, 784, 988, 1175),
	SoundArtifact: arpeggio(WaveSine, 120*time.Millisecond, 120*time.Millisecond, 440, 554, 659, 880),
}

// arpeggio spaces equal-length notes step apart
func arpeggio(wave WaveType, length, step time.Duration, freqs ...float64) []Note {
	notes := make([]Note, len(freqs))
	for i, f := range freqs {
		notes[i] = Note{Freq: f, Duration: length, Offset: time.Duration(i) * step, Wave: wave}
	}
	return notes
}

// typingNote picks the keystroke pitch in [800, 1200) Hz
func typingNote(rng *rand.Rand) []Note {
	return []Note{{Freq: 800 + rng.Float64()*400, Duration: 30 * time.Millisecond, Wave: WaveSquare}}
}

// ThemeDuration returns when the last note of notes ends
func ThemeDuration(notes []Note) time.Duration {
	var end time.Duration
	for _, n := range notes {
		end = max(end, n.Offset+n.Duration)
	}
	return end
}

// RenderNotes mixes notes into one streamer at the given linear volume
func RenderNotes(notes []Note, rate beep.SampleRate, vol float64) beep.Streamer {
	voices := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.Freq, n.Duration, n.Wave, rate)
		shaped := NewEnvelope(osc, n.Duration, constants.ToneAttack, constants.ToneRelease, rate)
		if n.Offset > 0 {
			shaped = beep.Seq(beep.Silence(rate.N(n.Offset)), shaped)
		}
		voices = append(voices, shaped)
	}
	return newVolume(beep.Mix(voices...), vol)
}

// GetSoundEffect returns the streamer for soundType, or nil for unknown types
func GetSoundEffect(soundType SoundType, cfg *AudioConfig, rng *rand.Rand) beep.Streamer {
	var notes []Note
	if soundType == SoundTyping {
		notes = typingNote(rng)
	} else {
		notes = Themes[soundType]
	}
	if len(notes) == 0 {
		return nil
	}
	return RenderNotes(notes, beep.SampleRate(cfg.SampleRate), cfg.Volume(soundType))
}
