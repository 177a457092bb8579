package network

import (
	"time"

	"github.com/lixenwraith/system-defender/constants"
)

// Config holds browser transport configuration
type Config struct {
	// Address to bind
	Address string

	// Connection limits
	MaxSessions int

	// Timing
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PingInterval    time.Duration
	ShutdownTimeout time.Duration

	// TickInterval drives each session's simulation
	TickInterval time.Duration

	// SnapshotEvery sends one snapshot per this many ticks
	SnapshotEvery int

	// Codec is the default wire encoding; clients may override per connection
	Codec Codec

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
	MaxMessageSize  int64
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:         ":8080",
		MaxSessions:     64,
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    5 * time.Second,
		PingInterval:    20 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		TickInterval:    constants.GameUpdateInterval,
		SnapshotEvery:   2,
		Codec:           CodecJSON,
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 64 * 1024,
		SendQueueSize:   64,
		MaxMessageSize:  4 * 1024,
	}
}

// DebugConfig returns defaults bound to addr
func DebugConfig(addr string) *Config {
	cfg := DefaultConfig()
	cfg.Address = addr
	return cfg
}
