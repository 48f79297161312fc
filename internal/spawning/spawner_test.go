package spawning

import (
	"testing"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
)

func TestSpawnerFiresOnInterval(t *testing.T) {
	s, err := New(10*time.Second, items.NewStack(items.Wood, 1))
	if err != nil {
		t.Fatalf("new spawner: %v", err)
	}
	inv := items.NewInventory(2)

	fired := 0
	for i := 0; i < 25; i++ {
		if got := s.Advance(inv, time.Second); got != nil {
			fired++
		}
	}
	if fired != 2 || inv.Amount(items.Wood) != 2 {
		t.Fatalf("expected two spawns, got fired=%d inv=%s", fired, inv)
	}
	if s.Remaining() != 5*time.Second {
		t.Fatalf("expected 5s remaining got %s", s.Remaining())
	}
}

func TestSpawnerFiresOncePerTick(t *testing.T) {
	s, _ := New(time.Second, items.NewStack(items.Stone, 1))
	inv := items.NewInventory(0)
	s.Advance(inv, 10*time.Second+250*time.Millisecond)
	if inv.Amount(items.Stone) != 1 {
		t.Fatalf("expected a single spawn, got %s", inv)
	}
	if s.Remaining() != 750*time.Millisecond {
		t.Fatalf("expected overshoot to carry, remaining=%s", s.Remaining())
	}
}

func TestSpawnerSpeedMultiplier(t *testing.T) {
	s, _ := New(10*time.Second, items.NewStack(items.Crystal, 1))
	s.Speed = 5
	inv := items.NewInventory(0)
	s.Advance(inv, time.Second)
	if inv.Amount(items.Crystal) != 0 {
		t.Fatalf("expected no spawn yet")
	}
	s.Advance(inv, time.Second)
	if inv.Amount(items.Crystal) != 1 {
		t.Fatalf("expected spawn after 10s of scaled time, got %s", inv)
	}
}

func TestSpawnerDrainsLimitedSource(t *testing.T) {
	s, _ := New(time.Second, items.NewStack(items.Wood, 2))
	s.Source = items.NewInventory(0, items.NewStack(items.Wood, 3))
	inv := items.NewInventory(0)

	if got := s.Advance(inv, time.Second); len(got) != 1 || got[0].Amount != 2 {
		t.Fatalf("expected wood 2 from source, got %v", got)
	}
	if got := s.Advance(inv, time.Second); len(got) != 1 || got[0].Amount != 1 {
		t.Fatalf("expected the last wood from source, got %v", got)
	}
	if got := s.Advance(inv, time.Second); got != nil {
		t.Fatalf("expected exhausted source to produce nothing, got %v", got)
	}
	if inv.Amount(items.Wood) != 3 || !s.Source.IsEmpty() {
		t.Fatalf("expected all source wood moved, got inv=%s source=%s", inv, s.Source)
	}
}

func TestNewRejectsBadSpawner(t *testing.T) {
	if _, err := New(0, items.NewStack(items.Wood, 1)); err == nil {
		t.Fatalf("expected zero interval to fail")
	}
	if _, err := New(time.Second); err == nil {
		t.Fatalf("expected empty output to fail")
	}
}
