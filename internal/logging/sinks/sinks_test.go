package sinks

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/logging"
)

func sampleEvent() logging.Event {
	return logging.Event{
		Type:      "factory.craft_completed",
		Tick:      12,
		Time:      time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Actor:     logging.EntityRef{ID: "4", Kind: logging.EntityKindStructure},
		Targets:   []logging.EntityRef{{ID: "1", Kind: logging.EntityKindPlayer}},
		Severity:  logging.SeverityInfo,
		Payload:   map[string]any{"output": []items.Stack{items.NewStack(items.Toy, 1)}},
		CommandID: "cmd-1",
	}
}

func TestFormatLine(t *testing.T) {
	line := FormatLine(sampleEvent())
	for _, want := range []string{
		"[factory.craft_completed]",
		"tick=12",
		"actor=structure:4",
		"severity=info",
		"targets=player:1",
		"command=cmd-1",
		`"type":"toy"`,
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}

func TestJSONSinkWritesOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSON(&buf, 0)
	if err := sink.Write(sampleEvent()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Write(logging.Event{Type: "second"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines got %d: %q", len(lines), buf.String())
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["severity"] != "info" || decoded["commandId"] != "cmd-1" {
		t.Fatalf("unexpected wire object: %v", decoded)
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpenJSONFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "events.jsonl")
	sink, err := OpenJSONFile(path, time.Hour)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := sink.Write(sampleEvent()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "factory.craft_completed") {
		t.Fatalf("expected event flushed on close, got %q", data)
	}
	if _, err := OpenJSONFile("", 0); err == nil {
		t.Fatalf("expected empty path to fail")
	}
}

func TestMemorySinkCopiesEvents(t *testing.T) {
	mem := NewMemorySink()
	ev := sampleEvent()
	ev.Extra = map[string]any{"a": 1}
	mem.Publish(context.Background(), ev)
	ev.Extra["a"] = 2

	got := mem.OfType("factory.craft_completed")
	if len(got) != 1 || got[0].Extra["a"] != 1 {
		t.Fatalf("expected stored copy to be isolated, got %v", got)
	}
	mem.Reset()
	if len(mem.Events()) != 0 {
		t.Fatalf("expected reset to clear events")
	}
}
