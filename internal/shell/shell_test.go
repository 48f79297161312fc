package shell

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

func newTestShell(t *testing.T, mutate func(*world.Options)) *Shell {
	t.Helper()
	opts := world.DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	w, err := world.New(opts)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return New(w, time.Second)
}

func exec(t *testing.T, s *Shell, line string) Result {
	t.Helper()
	res := s.Execute(context.Background(), line)
	if !res.Handled {
		t.Fatalf("expected %q to be handled, got: %s", line, res.Message)
	}
	return res
}

func playerAmount(t *testing.T, s *Shell, item items.ItemType) uint32 {
	t.Helper()
	id, err := s.World().Player()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	inv, err := s.World().InventoryOf(id)
	if err != nil {
		t.Fatalf("player inventory: %v", err)
	}
	return inv.Amount(item)
}

func TestPlayerCraftCompletesAfterTicks(t *testing.T) {
	s := newTestShell(t, nil)

	res := exec(t, s, "craft")
	if !strings.Contains(res.Message, "craft_started") {
		t.Fatalf("expected craft_started, got: %s", res.Message)
	}
	if got := playerAmount(t, s, items.Wood); got != 9 {
		t.Fatalf("expected wood 9 after inputs were consumed, got %d", got)
	}

	res = exec(t, s, "wait 5s")
	if res.Advanced != 5*time.Second {
		t.Fatalf("expected 5s advanced, got %s", res.Advanced)
	}
	if !strings.Contains(res.Message, "craft_completed") {
		t.Fatalf("expected craft_completed, got: %s", res.Message)
	}
	if got := playerAmount(t, s, items.Toy); got != 11 {
		t.Fatalf("expected toy 11, got %d", got)
	}
}

func TestAssemblerRunsSelectedRecipe(t *testing.T) {
	s := newTestShell(t, nil)

	res := exec(t, s, "build assembler")
	if !strings.Contains(res.Message, "structure_placed #2") {
		t.Fatalf("expected structure_placed #2, got: %s", res.Message)
	}
	if got := playerAmount(t, s, items.Crystal); got != 7 {
		t.Fatalf("expected crystal 7 after paying, got %d", got)
	}

	res = exec(t, s, "select #2")
	if !strings.Contains(res.Message, "recipe_changed") || !strings.Contains(res.Message, string(recipes.WoodToToy)) {
		t.Fatalf("expected recipe_changed to wood-to-toy, got: %s", res.Message)
	}

	exec(t, s, "insert #2 wood")
	res = exec(t, s, "tick 5")
	if !strings.Contains(res.Message, "craft_completed #2") {
		t.Fatalf("expected craft_completed #2, got: %s", res.Message)
	}

	res = exec(t, s, "inventory assembler")
	if !strings.Contains(res.Message, "toy 1") {
		t.Fatalf("expected toy 1 in assembler, got: %s", res.Message)
	}
}

func TestBuildWithoutMaterialsExplainsCost(t *testing.T) {
	s := newTestShell(t, func(o *world.Options) { o.PlayerSeed = nil })

	res := exec(t, s, "build storage")
	if !strings.Contains(res.Message, "needs stone 5") {
		t.Fatalf("expected cost explanation, got: %s", res.Message)
	}
	if got := len(s.World().Entities()); got != 1 {
		t.Fatalf("expected only the player, got %d entities", got)
	}
}

func TestInsertCountAndRemoveRefundsToPlayer(t *testing.T) {
	s := newTestShell(t, nil)
	exec(t, s, "build storage")

	res := exec(t, s, "insert storage toy 3")
	if strings.Count(res.Message, "transfer") != 3 {
		t.Fatalf("expected three transfers, got: %s", res.Message)
	}
	if got := playerAmount(t, s, items.Toy); got != 7 {
		t.Fatalf("expected toy 7, got %d", got)
	}

	res = exec(t, s, "remove storage")
	if !strings.Contains(res.Message, "entity_removed") {
		t.Fatalf("expected entity_removed, got: %s", res.Message)
	}
	if got := playerAmount(t, s, items.Toy); got != 10 {
		t.Fatalf("expected toys flushed back to 10, got %d", got)
	}
}

func TestEmptyAndWithdrawUseModifiers(t *testing.T) {
	s := newTestShell(t, nil)
	exec(t, s, "build storage")
	exec(t, s, "insert storage all wood")
	if got := playerAmount(t, s, items.Wood); got != 0 {
		t.Fatalf("expected whole wood stack inserted, got %d left", got)
	}

	exec(t, s, "take wood from storage")
	if got := playerAmount(t, s, items.Wood); got != 1 {
		t.Fatalf("expected one wood withdrawn, got %d", got)
	}

	exec(t, s, "empty storage")
	if got := playerAmount(t, s, items.Wood); got != 10 {
		t.Fatalf("expected storage emptied into player, got wood %d", got)
	}
}

func TestUnknownEntityReportsNotFound(t *testing.T) {
	s := newTestShell(t, nil)
	res := exec(t, s, "select #9")
	if !strings.Contains(res.Message, "not found") {
		t.Fatalf("expected not found, got: %s", res.Message)
	}
}

func TestPlayerCannotBeRemoved(t *testing.T) {
	s := newTestShell(t, nil)
	res := exec(t, s, "remove player")
	if !strings.Contains(res.Message, "cannot be removed") {
		t.Fatalf("expected refusal, got: %s", res.Message)
	}
}

func TestResolveRecipeByProductHonoursResearch(t *testing.T) {
	s := newTestShell(t, nil)
	exec(t, s, "lock wood to toy")
	if s.World().Research().Contains(recipes.WoodToToy) {
		t.Fatalf("expected wood-to-toy to be locked")
	}
	got, err := s.resolveRecipe("toy")
	if err != nil {
		t.Fatalf("resolve toy: %v", err)
	}
	if got != recipes.StoneToToy {
		t.Fatalf("expected stone-to-toy, got %s", got)
	}

	exec(t, s, "unlock wood to toy")
	if !s.World().Research().Contains(recipes.WoodToToy) {
		t.Fatalf("expected wood-to-toy to be unlocked again")
	}
}

func TestHoldSetsHeldItem(t *testing.T) {
	s := newTestShell(t, nil)
	exec(t, s, "hold crystal")
	if s.World().Held() != items.Crystal {
		t.Fatalf("expected crystal held, got %q", s.World().Held())
	}
	exec(t, s, "hold nothing")
	if s.World().Held() != "" {
		t.Fatalf("expected nothing held, got %q", s.World().Held())
	}
}

func TestContextReflectsWorld(t *testing.T) {
	s := newTestShell(t, nil)
	exec(t, s, "build wood fairy")
	ctx := s.Context()
	if len(ctx.Entities) != 1 || ctx.Entities[0] != string(world.KindWoodFairy) {
		t.Fatalf("expected wood-fairy entity, got %+v", ctx.Entities)
	}
	if len(ctx.Inventory) == 0 {
		t.Fatalf("expected player inventory in context")
	}
}

func TestTickCountAdvancesTicks(t *testing.T) {
	s := newTestShell(t, nil)
	res := exec(t, s, "tick 3")
	if res.Advanced != 3*time.Second {
		t.Fatalf("expected 3s advanced, got %s", res.Advanced)
	}
	if got := s.World().Tick(); got != 3 {
		t.Fatalf("expected tick 3, got %d", got)
	}
}

func TestHelpAndQuit(t *testing.T) {
	s := newTestShell(t, nil)
	res := exec(t, s, "help")
	if !strings.Contains(res.Message, "insert <entity>") {
		t.Fatalf("expected usage lines, got: %s", res.Message)
	}
	if res := exec(t, s, "quit"); !res.Quit {
		t.Fatalf("expected quit result")
	}
}

func TestHistoryKeepsRecentEvents(t *testing.T) {
	s := newTestShell(t, nil)
	exec(t, s, "craft")
	exec(t, s, "tick 5")
	hist := s.History(0)
	if len(hist) < 2 {
		t.Fatalf("expected started and completed events, got %d", len(hist))
	}
	if hist[len(hist)-1].Kind != world.EventCraftCompleted {
		t.Fatalf("expected last event craft_completed, got %s", hist[len(hist)-1].Kind)
	}
}

func TestCycleHeldWalksPlayerStacks(t *testing.T) {
	s := newTestShell(t, nil)
	seen := map[items.ItemType]bool{}
	for i := 0; i < 4; i++ {
		seen[s.CycleHeld()] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected to cycle through four item types, got %v", seen)
	}
	first := s.World().Held()
	for i := 0; i < 4; i++ {
		s.CycleHeld()
	}
	if s.World().Held() != first {
		t.Fatalf("expected cycle to wrap back to %q, got %q", first, s.World().Held())
	}
}

func TestShiftClickWithNothingHeldCyclesRecipe(t *testing.T) {
	s := newTestShell(t, nil)
	ctx := context.Background()
	asm, err := s.World().Spawn(world.KindAssembler)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := s.World().SetHeld(""); err != nil {
		t.Fatalf("set held: %v", err)
	}

	res := s.Click(ctx, asm, world.Modifiers{Shift: true})
	if !strings.Contains(res.Message, "recipe_changed") {
		t.Fatalf("expected recipe change, got: %s", res.Message)
	}
	c, _ := s.World().CrafterOf(asm)
	if c.RecipeType() != recipes.WoodToToy {
		t.Fatalf("expected wood-to-toy selected, got %s", c.RecipeType())
	}

	if err := s.World().SetHeld(items.Wood); err != nil {
		t.Fatalf("set held: %v", err)
	}
	res = s.Click(ctx, asm, world.Modifiers{Shift: true})
	if !strings.Contains(res.Message, "transfer") {
		t.Fatalf("expected a stack insert, got: %s", res.Message)
	}
	if got := playerAmount(t, s, items.Wood); got != 0 {
		t.Fatalf("expected all wood inserted, got %d", got)
	}
}
