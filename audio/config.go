package audio

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/lixenwraith/system-defender/constants"
)

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"masterVolume"` // [0,1]
	SampleRate   int     `yaml:"sampleRate"`

	// EffectVolumes scales individual sounds on top of MasterVolume
	EffectVolumes map[SoundType]float64 `yaml:"-"`

	// MinInterval drops repeats of the same sound played closer together than this
	MinInterval time.Duration `yaml:"minInterval"`
}

// DefaultAudioConfig returns the built-in mix, matching the 0.3 master gain of the browser client
func DefaultAudioConfig() *AudioConfig {
	vols := make(map[SoundType]float64, soundTypeCount)
	for s := SoundType(0); s < soundTypeCount; s++ {
		vols[s] = 1.0
	}
	vols[SoundTyping] = 0.5
	return &AudioConfig{
		Enabled:       true,
		MasterVolume:  0.3,
		SampleRate:    constants.AudioSampleRate,
		EffectVolumes: vols,
		MinInterval:   25 * time.Millisecond,
	}
}

// Volume returns the effective linear volume of s
func (c *AudioConfig) Volume(s SoundType) float64 {
	v, ok := c.EffectVolumes[s]
	if !ok {
		v = 1.0
	}
	return clamp01(v) * clamp01(c.MasterVolume)
}

// ApplyEnv overrides fields from environment variables
//
//	DEFENDER_AUDIO          bool
//	DEFENDER_MASTER_VOLUME  0-100
//	DEFENDER_SFX_VOLUMES    JSON object of sound name to 0.0-1.0
//	DEFENDER_SAMPLE_RATE    Hz
func (c *AudioConfig) ApplyEnv() {
	if enabled := os.Getenv("DEFENDER_AUDIO"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Enabled = val
		}
	}

	if volume := os.Getenv("DEFENDER_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.MasterVolume = clamp01(float64(val) / 100.0)
		}
	}

	if effectVols := os.Getenv("DEFENDER_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			if c.EffectVolumes == nil {
				c.EffectVolumes = make(map[SoundType]float64)
			}
			for name, v := range volumes {
				if s, ok := ParseSoundType(name); ok {
					c.EffectVolumes[s] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv("DEFENDER_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			c.SampleRate = val
		}
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
