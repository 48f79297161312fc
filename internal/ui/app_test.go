package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/fae-factory/internal/crafting"
	"github.com/appengine-ltd/fae-factory/internal/shell"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

func testModel(t *testing.T, step time.Duration) factoryModel {
	t.Helper()
	w, err := world.New(world.DefaultOptions())
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return newFactoryModel(AppConfig{Version: "test", Step: step}, shell.New(w, step))
}

func TestClockTickStepsWorldInFixedIncrements(t *testing.T) {
	m := testModel(t, 100*time.Millisecond)
	start := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	m.clock.Start(start)

	updated, cmd := m.Update(clockTickMsg{at: start.Add(350 * time.Millisecond)})
	got := updated.(factoryModel)

	if cmd == nil {
		t.Fatalf("expected the clock to reschedule itself")
	}
	if tick := got.shell.World().Tick(); tick != 3 {
		t.Fatalf("expected 3 world ticks, got %d", tick)
	}
	if got.clock.Pending() != 50*time.Millisecond {
		t.Fatalf("expected 50ms carried over, got %s", got.clock.Pending())
	}
}

func TestFirstClockTickOnlyStartsTheClock(t *testing.T) {
	m := testModel(t, 100*time.Millisecond)
	updated, _ := m.Update(clockTickMsg{at: time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)})
	got := updated.(factoryModel)
	if tick := got.shell.World().Tick(); tick != 0 {
		t.Fatalf("expected no ticks before a reference time exists, got %d", tick)
	}
}

func TestPausedClockDoesNotStep(t *testing.T) {
	m := testModel(t, 100*time.Millisecond)
	start := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	m.clock.Start(start)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	updated, _ = updated.(factoryModel).Update(clockTickMsg{at: start.Add(time.Second)})
	got := updated.(factoryModel)
	if tick := got.shell.World().Tick(); tick != 0 {
		t.Fatalf("expected paused world to stay at tick 0, got %d", tick)
	}
}

func TestSpaceStartsPlayerCraft(t *testing.T) {
	m := testModel(t, time.Second)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	got := updated.(factoryModel)

	player, err := got.shell.World().Player()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	c, err := got.shell.World().CrafterOf(player)
	if err != nil {
		t.Fatalf("crafter: %v", err)
	}
	if c.State.Phase != crafting.PhaseAssembling {
		t.Fatalf("expected player to be assembling, got %s", c.State)
	}
	if !strings.Contains(strings.Join(got.messages, "\n"), "craft_started") {
		t.Fatalf("expected craft_started in message log, got %v", got.messages)
	}
}

func TestSpaceInsideInputIsText(t *testing.T) {
	m := testModel(t, time.Second)
	m.input = "build"
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	got := updated.(factoryModel)
	if got.input != "build " {
		t.Fatalf("expected space appended to input, got %q", got.input)
	}
}

func TestSubmitInputRunsShellCommand(t *testing.T) {
	m := testModel(t, time.Second)
	m.input = "build storage"

	updated, _ := m.submitInput()
	got := updated.(factoryModel)
	if got.input != "" {
		t.Fatalf("expected input cleared, got %q", got.input)
	}
	if n := len(got.shell.World().Entities()); n != 2 {
		t.Fatalf("expected storage to be built, got %d entities", n)
	}
	if !strings.Contains(strings.Join(got.messages, "\n"), "structure_placed") {
		t.Fatalf("expected structure_placed in message log, got %v", got.messages)
	}
}

func TestQuitCommandQuits(t *testing.T) {
	m := testModel(t, time.Second)
	m.input = "quit"
	_, cmd := m.submitInput()
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestCursorWrapsOverEntities(t *testing.T) {
	m := testModel(t, time.Second)
	m.input = "build storage"
	updated, _ := m.submitInput()
	updated, _ = updated.(factoryModel).Update(tea.KeyMsg{Type: tea.KeyUp})
	got := updated.(factoryModel)
	if got.cursor != 1 {
		t.Fatalf("expected cursor to wrap to the last entity, got %d", got.cursor)
	}
	id, ok := got.selectedEntity()
	if !ok {
		t.Fatalf("expected a selected entity")
	}
	if kind, _ := got.shell.World().KindOf(id); kind != world.KindStorage {
		t.Fatalf("expected storage selected, got %s", kind)
	}
}

func TestViewListsEntities(t *testing.T) {
	m := testModel(t, time.Second)
	view := m.View()
	if !strings.Contains(view, "FAE FACTORY") {
		t.Fatalf("expected title in view")
	}
	if !strings.Contains(view, "#1 player") {
		t.Fatalf("expected player row in view, got:\n%s", view)
	}
}
