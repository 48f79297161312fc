package gui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/parser"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/shell"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

func newTestUI(t *testing.T) *factoryUI {
	t.Helper()
	w, err := world.New(world.DefaultOptions())
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return newFactoryUI(AppConfig{Version: "test", Step: 50 * time.Millisecond}, shell.New(w, 50*time.Millisecond))
}

func entityAt(t *testing.T, ui *factoryUI, idx int) world.EntityID {
	t.Helper()
	ids := ui.shell.World().Entities()
	if idx >= len(ids) {
		t.Fatalf("expected at least %d entities, got %d", idx+1, len(ids))
	}
	return ids[idx]
}

func TestSubmittedLineRunsOnNextUpdate(t *testing.T) {
	ui := newTestUI(t)
	ui.typing = true
	ui.input = "build storage"
	ui.submitLine()

	if ui.typing || ui.input != "" {
		t.Fatalf("expected input to close after submit")
	}
	if ui.queue.Len() != 1 || len(ui.shell.World().Entities()) != 1 {
		t.Fatalf("expected the line to wait in the queue")
	}
	ui.runQueued(context.Background())
	if n := len(ui.shell.World().Entities()); n != 2 {
		t.Fatalf("expected storage built, got %d entities", n)
	}
	if !strings.Contains(strings.Join(ui.messages, "\n"), "structure_placed") {
		t.Fatalf("expected placement in log, got %v", ui.messages)
	}
}

func TestFunctionKeyBuildsAndClickInserts(t *testing.T) {
	ui := newTestUI(t)
	ctx := context.Background()
	ui.buildKind(ctx, 2)
	store := entityAt(t, ui, 1)
	if kind, _ := ui.shell.World().KindOf(store); kind != world.KindStorage {
		t.Fatalf("expected storage, got %s", kind)
	}

	ui.holdDigit(1)
	if ui.shell.World().Held() != items.Wood {
		t.Fatalf("expected wood held, got %q", ui.shell.World().Held())
	}
	ui.clickEntity(ctx, 1, world.Modifiers{})
	inv, _ := ui.shell.World().InventoryOf(store)
	if inv.Amount(items.Wood) != 1 {
		t.Fatalf("expected one wood inserted, got %s", inv)
	}

	ui.clickEntity(ctx, 1, world.Modifiers{Ctrl: true})
	if !inv.IsEmpty() {
		t.Fatalf("expected ctrl click to empty storage, got %s", inv)
	}
}

func TestShiftClickWithEmptyHandCyclesRecipe(t *testing.T) {
	ui := newTestUI(t)
	ctx := context.Background()
	ui.buildKind(ctx, 1)
	ui.holdDigit(0)
	ui.clickEntity(ctx, 1, world.Modifiers{Shift: true})

	c, err := ui.shell.World().CrafterOf(entityAt(t, ui, 1))
	if err != nil {
		t.Fatalf("crafter: %v", err)
	}
	if c.RecipeType() != recipes.WoodToToy {
		t.Fatalf("expected wood-to-toy, got %s", c.RecipeType())
	}
}

func TestClickOnPlayerOnlyHints(t *testing.T) {
	ui := newTestUI(t)
	ui.clickEntity(context.Background(), 0, world.Modifiers{})
	if !strings.Contains(ui.status, "space") {
		t.Fatalf("expected a hint about crafting by hand, got %q", ui.status)
	}
}

func TestSpaceCraftAndCancel(t *testing.T) {
	ui := newTestUI(t)
	ctx := context.Background()
	ui.startPlayerCraft(ctx)
	player := entityAt(t, ui, 0)
	c, _ := ui.shell.World().CrafterOf(player)
	if c.RecipeType() != recipes.DefaultRecipe {
		t.Fatalf("expected default recipe started, got %s", c.RecipeType())
	}
	ui.cancelPlayerCraft(ctx)
	if !c.State.IsIdle() {
		t.Fatalf("expected cancel to idle the player, got %s", c.State)
	}
}

func TestAdvanceStepsOnFixedClock(t *testing.T) {
	ui := newTestUI(t)
	start := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	ui.clock.Start(start)
	ui.advance(context.Background(), start.Add(120*time.Millisecond))
	if tick := ui.shell.World().Tick(); tick != 2 {
		t.Fatalf("expected 2 ticks got %d", tick)
	}
	ui.togglePause()
	ui.advance(context.Background(), start.Add(time.Second))
	if tick := ui.shell.World().Tick(); tick != 2 {
		t.Fatalf("expected pause to hold the tick, got %d", tick)
	}
}

func TestRemoveSelectedKeepsPlayer(t *testing.T) {
	ui := newTestUI(t)
	ctx := context.Background()
	ui.removeSelected(ctx)
	if len(ui.shell.World().Entities()) != 1 || ui.status == "" {
		t.Fatalf("expected player removal to be refused")
	}

	ui.buildKind(ctx, 2)
	ui.moveCursor(1)
	ui.removeSelected(ctx)
	if n := len(ui.shell.World().Entities()); n != 1 {
		t.Fatalf("expected storage removed, got %d entities", n)
	}
	if ui.cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", ui.cursor)
	}
}

func TestQuitLineStopsLoop(t *testing.T) {
	ui := newTestUI(t)
	ui.input = "quit"
	ui.submitLine()
	ui.runQueued(context.Background())
	if !ui.quit {
		t.Fatalf("expected quit")
	}
}

func TestHotkeysDisabledWhileTyping(t *testing.T) {
	if !HotkeysEnabled(nil) {
		t.Fatalf("expected hotkeys without a UI")
	}
	ui := newTestUI(t)
	ui.typing = true
	if HotkeysEnabled(ui) {
		t.Fatalf("expected hotkeys off while typing")
	}
}

func TestIntentQueueDropsWhenFull(t *testing.T) {
	q := newIntentQueue(1)
	if !q.TryEnqueue(parser.Intent{Verb: "help"}) {
		t.Fatalf("expected first intent kept")
	}
	if q.TryEnqueue(parser.Intent{Verb: "quit"}) {
		t.Fatalf("expected second intent dropped")
	}
	got := q.Drain()
	if len(got) != 1 || got[0].Verb != "help" || q.Len() != 0 {
		t.Fatalf("unexpected drain %v", got)
	}
}
