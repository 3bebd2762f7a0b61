package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLogLines(t *testing.T, dir string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "tabiplan.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerWritesJSON(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	log.Info("itinerary saved", "itinerary_id", "itin-1")
	log.Debug("should be filtered at info level")
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries := readLogLines(t, dir)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["msg"] != "itinerary saved" || entries[0]["itinerary_id"] != "itin-1" {
		t.Errorf("entry = %v", entries[0])
	}
}

func TestChildLoggerInheritsAttributes(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	child := log.WithItinerary("itin-9").WithPhase("detailing")
	child.Debug("merging payload", "day", 2)
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries := readLogLines(t, dir)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry["itinerary_id"] != "itin-9" || entry["phase"] != "detailing" {
		t.Errorf("child attributes missing: %v", entry)
	}
	if entry["day"] != float64(2) {
		t.Errorf("per-call attribute missing: %v", entry)
	}
}

func TestWithDoesNotMutateParent(t *testing.T) {
	log := NopLogger()
	child := log.With("key", "value")
	if len(log.attrs) != 0 {
		t.Error("parent attrs mutated")
	}
	if len(child.attrs) != 1 {
		t.Error("child missing attr")
	}
}

func TestNopLogger(t *testing.T) {
	log := NopLogger()
	log.Info("goes nowhere")
	if err := log.Close(); err != nil {
		t.Errorf("Close on nop logger: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug").Level() >= parseLevel("WARN").Level() {
		t.Error("debug should be lower than warn")
	}
	if got := parseLevel("bogus"); got != parseLevel(LevelInfo) {
		t.Errorf("unknown level should default to info, got %v", got)
	}
}
