// Package config loads settings from a YAML file, a .env file and the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/system-defender/audio"
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/network"
)

var (
	ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 5")
	ErrInvalidMode       = errors.New("unknown game mode")
	ErrInvalidSize       = errors.New("playfield dimensions must be positive")
)

// GameConfig selects the default run
type GameConfig struct {
	Mode       constants.GameMode `yaml:"mode"`
	Difficulty int                `yaml:"difficulty"`
	Mobile     bool               `yaml:"mobile"`
	Width      float64            `yaml:"width"`
	Height     float64            `yaml:"height"`
}

// LookupConfig points at the student record service
// An empty BaseURL keeps every lookup offline
type LookupConfig struct {
	BaseURL string        `yaml:"baseURL"`
	APIKey  string        `yaml:"apiKey"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the browser transport
type ServerConfig struct {
	Listen        string `yaml:"listen"`
	SnapshotEvery int    `yaml:"snapshotEvery"`
	Codec         string `yaml:"codec"`
	MaxSessions   int    `yaml:"maxSessions"`
}

// ProfileConfig locates the purchase store
type ProfileConfig struct {
	Path string `yaml:"path"`
}

// Config is the complete settings tree
type Config struct {
	Debug   bool              `yaml:"debug"`
	Game    GameConfig        `yaml:"game"`
	Audio   audio.AudioConfig `yaml:"audio"`
	Lookup  LookupConfig      `yaml:"lookup"`
	Server  ServerConfig      `yaml:"server"`
	Profile ProfileConfig     `yaml:"profile"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Mode:       constants.ModeHangul,
			Difficulty: 1,
			Width:      constants.DefaultWorldWidth,
			Height:     constants.DefaultWorldHeight,
		},
		Audio: *audio.DefaultAudioConfig(),
		Lookup: LookupConfig{
			BaseURL: network.DefaultLookupURL,
			Timeout: 5 * time.Second,
		},
		Server: ServerConfig{
			Listen:        ":8080",
			SnapshotEvery: 2,
			Codec:         string(network.CodecJSON),
			MaxSessions:   64,
		},
		Profile: ProfileConfig{
			Path: filepath.Join("data", "profiles.yaml"),
		},
	}
}

// Load reads path over the defaults, then the env files (".env" when none are given),
// then the process environment, and validates the result
// A missing config or env file is not an error
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables already set in the process
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetEnvVariable returns the value of key, or fallback when unset
func GetEnvVariable(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// applyEnv overrides fields from DEFENDER_* variables
func (c *Config) applyEnv() {
	c.Lookup.BaseURL = GetEnvVariable("DEFENDER_API_URL", c.Lookup.BaseURL)
	c.Lookup.APIKey = GetEnvVariable("DEFENDER_API_KEY", c.Lookup.APIKey)
	c.Server.Listen = GetEnvVariable("DEFENDER_LISTEN", c.Server.Listen)
	if v, err := strconv.ParseBool(os.Getenv("DEFENDER_DEBUG")); err == nil {
		c.Debug = v
	}
	c.Audio.ApplyEnv()
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Game.Difficulty < constants.MinDifficulty || c.Game.Difficulty > constants.MaxDifficulty {
		return fmt.Errorf("%w: got %d", ErrInvalidDifficulty, c.Game.Difficulty)
	}
	if !c.Game.Mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Game.Mode)
	}
	if c.Game.Width <= 0 || c.Game.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidSize, c.Game.Width, c.Game.Height)
	}
	if _, err := network.ParseCodec(c.Server.Codec, network.CodecJSON); err != nil {
		return err
	}
	return nil
}

// Network builds the transport configuration
func (c *Config) Network() *network.Config {
	nc := network.DefaultConfig()
	nc.Address = c.Server.Listen
	if c.Server.SnapshotEvery > 0 {
		nc.SnapshotEvery = c.Server.SnapshotEvery
	}
	if c.Server.MaxSessions > 0 {
		nc.MaxSessions = c.Server.MaxSessions
	}
	nc.Codec, _ = network.ParseCodec(c.Server.Codec, network.CodecJSON)
	return nc
}

// Save writes c as YAML, creating parent directories
// The API key is never written
func (c *Config) Save(path string) error {
	out := *c
	out.Lookup.APIKey = ""
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
