package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestWriteSchema verifies the schema file is written atomically and mentions both directions
func TestWriteSchema(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema", "protocol.json")
	if err := writeSchema(out, buildSchema()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temp file removed")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Expected valid JSON: %v", err)
	}
	for _, want := range []string{"ClientMessage", "ServerMessage", "Snapshot", "System Defender Protocol"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Expected %q in schema", want)
		}
	}
}
