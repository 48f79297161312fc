package app

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/config"
	"github.com/appengine-ltd/fae-factory/internal/logging"
	"github.com/appengine-ltd/fae-factory/internal/logging/factory"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

func TestNewPublishesThroughRouter(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Sinks = []string{logging.SinkMemory, logging.SinkJSON}
	cfg.Logging.JSONPath = filepath.Join(t.TempDir(), "events.jsonl")
	cfg.Logging.MinSeverity = "debug"

	rt, err := New(cfg, io.Discard, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	if rt.Memory == nil {
		t.Fatalf("expected memory sink to be wired")
	}

	if err := rt.World.Enqueue(world.PlaceStructureCommand(world.KindStorage)); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	rt.World.Step(context.Background(), time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := rt.Memory.OfType(factory.EventStructurePlaced); len(got) != 1 {
		t.Fatalf("expected placement to reach the memory sink, got %d", len(got))
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TickRate = 0
	if _, err := New(cfg, io.Discard, nil); err == nil {
		t.Fatalf("expected invalid config to fail")
	}
}
