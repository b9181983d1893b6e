package gologger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewRunLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewRunLogger("run_1").Output(&buf)
	l.Warn().Msg("hello")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatal(err)
	}
	if event[RunIDKey] != "run_1" {
		t.Fatalf("expected runID field, got %+v", event)
	}
}
