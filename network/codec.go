package network

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec selects the wire encoding of a websocket session
type Codec string

const (
	CodecJSON    Codec = "json"
	CodecMsgpack Codec = "msgpack"
)

// ParseCodec maps a name onto a codec; empty selects fallback
func ParseCodec(name string, fallback Codec) (Codec, error) {
	switch Codec(name) {
	case "":
		return fallback, nil
	case CodecJSON, CodecMsgpack:
		return Codec(name), nil
	}
	return "", fmt.Errorf("unknown codec %q", name)
}

// MessageType returns the websocket frame type carrying this codec
func (c Codec) MessageType() int {
	if c == CodecMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

// Marshal encodes v
func (c Codec) Marshal(v any) ([]byte, error) {
	if c == CodecMsgpack {
		return msgpack.Marshal(v)
	}
	return json.Marshal(v)
}

// Unmarshal decodes a frame; binary frames are msgpack, text frames JSON
func Unmarshal(frameType int, data []byte, v any) error {
	if frameType == websocket.BinaryMessage {
		return msgpack.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}
