package network

import (
	"github.com/lixenwraith/system-defender/constants"
	"github.com/lixenwraith/system-defender/engine"
)

// ProtocolVersion is sent in the welcome message
const ProtocolVersion = 1

// MessageType identifies the semantic meaning of a message
type MessageType string

const (
	// Client to server
	MsgStart  MessageType = "start"  // Configure and begin a run
	MsgKey    MessageType = "key"    // Typed characters
	MsgSelect MessageType = "select" // Level-up or artifact choice by index

	// Server to client
	MsgWelcome  MessageType = "welcome"
	MsgSnapshot MessageType = "snapshot"
	MsgEvent    MessageType = "event"
	MsgError    MessageType = "error"
)

// ClientMessage is any message a browser sends
type ClientMessage struct {
	Type MessageType `json:"type" msgpack:"type"`

	// Start
	Mode       constants.GameMode `json:"mode,omitempty" msgpack:"mode,omitempty"`
	Difficulty int                `json:"difficulty,omitempty" msgpack:"difficulty,omitempty"`
	Mobile     bool               `json:"mobile,omitempty" msgpack:"mobile,omitempty"`
	Code       string             `json:"code,omitempty" msgpack:"code,omitempty"` // Student code whose shop bonus applies
	Width      float64            `json:"width,omitempty" msgpack:"width,omitempty"`
	Height     float64            `json:"height,omitempty" msgpack:"height,omitempty"`

	// Key
	Text string `json:"text,omitempty" msgpack:"text,omitempty"`

	// Select
	Index int `json:"index" msgpack:"index"`
}

// ServerMessage is any message the server sends
type ServerMessage struct {
	Type     MessageType      `json:"type" msgpack:"type"`
	Version  int              `json:"version,omitempty" msgpack:"version,omitempty"`
	Session  string           `json:"session,omitempty" msgpack:"session,omitempty"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Event    *engine.Event    `json:"event,omitempty" msgpack:"event,omitempty"`
	Error    string           `json:"error,omitempty" msgpack:"error,omitempty"`
}
