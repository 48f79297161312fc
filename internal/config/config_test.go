package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/logging"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate: %v", err)
	}
	if cfg.TickInterval() != time.Second/30 {
		t.Fatalf("unexpected tick interval %s", cfg.TickInterval())
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	raw := `
tick_rate: 60
max_delta: 250ms
player:
  slots: 4
  seed:
    - type: wood
      amount: 3
structures:
  assembler:
    slots: 3
  wood-fairy:
    spawn_interval: 2s
research:
  mode: list
  recipes: [stone-to-toy]
logging:
  sinks: [memory]
  min_severity: debug
`
	cfg, err := Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.TickRate != 60 || cfg.MaxDelta.Std() != 250*time.Millisecond {
		t.Fatalf("unexpected timing: %+v", cfg)
	}
	if cfg.CommandCapacity != Default().CommandCapacity {
		t.Fatalf("expected unspecified fields to keep defaults")
	}
	if len(cfg.Player.Seed) != 1 || cfg.Player.Seed[0] != items.NewStack(items.Wood, 3) {
		t.Fatalf("expected seed to be replaced, got %v", cfg.Player.Seed)
	}

	opts, err := cfg.WorldOptions(logging.NopPublisher())
	if err != nil {
		t.Fatalf("world options: %v", err)
	}
	if opts.StructureSlots[world.KindAssembler] != 3 || opts.SpawnIntervals[world.KindWoodFairy] != 2*time.Second {
		t.Fatalf("unexpected structure overrides: %+v", opts)
	}
	if opts.Research.Len() != 1 || !opts.Research.Contains(recipes.StoneToToy) {
		t.Fatalf("expected only stone-to-toy unlocked, got %v", opts.Research.List())
	}

	logCfg, err := cfg.LoggingConfig()
	if err != nil {
		t.Fatalf("logging config: %v", err)
	}
	if logCfg.MinimumSeverity != logging.SeverityDebug || !logCfg.HasSink(logging.SinkMemory) {
		t.Fatalf("unexpected logging config: %+v", logCfg)
	}

	w, err := world.New(opts)
	if err != nil {
		t.Fatalf("world from config: %v", err)
	}
	id, _ := w.Player()
	inv, _ := w.InventoryOf(id)
	if inv.SlotCapacity != 4 || inv.Amount(items.Wood) != 3 {
		t.Fatalf("expected configured player, got slots=%d %s", inv.SlotCapacity, inv)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"unknown field":     "tick_speed: 3\n",
		"bad duration":      "max_delta: soon\n",
		"tick rate":         "tick_rate: 0\n",
		"unknown item":      "player:\n  seed:\n    - type: gold\n      amount: 1\n",
		"duplicate seed":    "player:\n  seed:\n    - {type: wood, amount: 1}\n    - {type: wood, amount: 2}\n",
		"unknown structure": "structures:\n  conveyor:\n    slots: 2\n",
		"spawn on storage":  "structures:\n  storage:\n    spawn_interval: 1s\n",
		"research mode":     "research:\n  mode: some\n",
		"unknown recipe":    "research:\n  mode: list\n  recipes: [gold-toy]\n",
		"unknown sink":      "logging:\n  sinks: [syslog]\n",
		"json without path": "logging:\n  sinks: [json]\n",
		"severity":          "logging:\n  min_severity: loud\n",
	}
	for name, raw := range tests {
		if _, err := Parse(strings.NewReader(raw)); err == nil {
			t.Fatalf("%s: expected parse to fail", name)
		}
	}
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if cfg.TickRate != Default().TickRate {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRoundTripsMarshal(t *testing.T) {
	cfg := Default()
	cfg.Research = ResearchConfig{Mode: ResearchNone}
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "max_delta: 1s") {
		t.Fatalf("expected durations written as strings, got:\n%s", data)
	}
	path := filepath.Join(t.TempDir(), "fae.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	available, err := loaded.AvailableRecipes()
	if err != nil || available.Len() != 0 {
		t.Fatalf("expected nothing unlocked, got %v err=%v", available.List(), err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}
