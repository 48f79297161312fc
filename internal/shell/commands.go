package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/parser"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

var usage = map[string]string{
	"inventory": "inventory [entity]",
	"look":      "look [entity]",
	"entities":  "entities",
	"recipes":   "recipes",
	"events":    "events",
	"tick":      "tick [n|5s|500ms]",
	"craft":     "craft [recipe|product] [repeat|once]",
	"assign":    "assign <entity> <recipe> [repeat|once]",
	"cancel":    "cancel [entity]",
	"select":    "select <entity>",
	"hold":      "hold <item|nothing>",
	"insert":    "insert <entity> [item] [n|all]",
	"withdraw":  "withdraw <entity> [item]",
	"empty":     "empty <entity>",
	"click":     "click <entity> [shift] [ctrl] [alt]",
	"build":     "build <structure>",
	"remove":    "remove <entity> [keep|discard]",
	"unlock":    "unlock <recipe>",
	"lock":      "lock <recipe>",
	"quit":      "quit",
}

func (s *Shell) help() string {
	lines := []string{"Commands (entities are #id, player or a structure name):"}
	for _, def := range s.parser.Commands() {
		if u, ok := usage[def.Canonical]; ok {
			lines = append(lines, "  "+u)
		}
	}
	return strings.Join(lines, "\n")
}

func (s *Shell) inventory(args []string) Result {
	id, err := s.entityArg(args, 0)
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	snap, err := s.world.EntitySnapshot(id)
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	msg := FormatInventory(snap)
	if player, _ := s.world.Player(); id == player {
		msg += "\nHolding: " + heldLabel(s.world.Held())
	}
	return Result{Handled: true, Message: msg}
}

func (s *Shell) look(args []string) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: FormatEntities(s.world.Snapshot())}
	}
	id, err := s.resolveEntity(args[0])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	snap, err := s.world.EntitySnapshot(id)
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	return Result{Handled: true, Message: FormatEntityDetail(snap)}
}

func (s *Shell) craft(ctx context.Context, args []string) Result {
	player, err := s.world.Player()
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	recipe := recipes.DefaultRecipe
	repeat := false
	for _, arg := range args {
		if arg == "repeat" || arg == "once" || arg == "loop" || arg == "forever" {
			repeat = repeatFlag(arg, repeat)
			continue
		}
		if recipe, err = s.resolveRecipe(arg); err != nil {
			return Result{Handled: true, Message: err.Error()}
		}
	}
	return s.Submit(ctx, world.StartCraftCommand(player, recipe, repeat))
}

func (s *Shell) assign(ctx context.Context, args []string) Result {
	if len(args) < 2 {
		return Result{Handled: true, Message: "Usage: " + usage["assign"]}
	}
	id, err := s.resolveEntity(args[0])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	recipe, err := s.resolveRecipe(args[1])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	repeat := true
	if kind, _ := s.world.KindOf(id); kind != "" {
		if spec, ok := world.SpecFor(kind); ok {
			repeat = spec.Repeat
		}
	}
	if len(args) > 2 {
		repeat = repeatFlag(args[2], repeat)
	}
	return s.Submit(ctx, world.StartCraftCommand(id, recipe, repeat))
}

func (s *Shell) cancel(ctx context.Context, args []string) Result {
	id, err := s.entityArg(args, 0)
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	return s.Submit(ctx, world.CancelCraftCommand(id))
}

func (s *Shell) selectRecipe(ctx context.Context, args []string) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: " + usage["select"]}
	}
	id, err := s.resolveEntity(args[0])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	return s.Submit(ctx, world.SelectRecipeCommand(id))
}

func (s *Shell) hold(args []string) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Holding: " + heldLabel(s.world.Held())}
	}
	t, err := resolveItem(args[0])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	if err := s.world.SetHeld(t); err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	return Result{Handled: true, Message: "Holding: " + heldLabel(t)}
}

func (s *Shell) insert(ctx context.Context, args []string, q *parser.Quantity) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: " + usage["insert"]}
	}
	id, err := s.resolveEntity(args[0])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	held := s.world.Held()
	if len(args) > 1 {
		if held, err = resolveItem(args[1]); err != nil {
			return Result{Handled: true, Message: err.Error()}
		}
	}
	if held == "" {
		return Result{Handled: true, Message: "Hold an item first, or name one."}
	}
	if q.All() {
		return s.Submit(ctx, world.TransferClickCommand(id, held, world.Modifiers{Shift: true}))
	}
	clicks := 1
	if q != nil && q.Unit == "count" && q.N > 0 {
		clicks = q.N
	}
	cmds := make([]world.Command, 0, clicks)
	for i := 0; i < clicks; i++ {
		cmds = append(cmds, world.TransferClickCommand(id, held, world.Modifiers{}))
	}
	return s.Submit(ctx, cmds...)
}

func (s *Shell) withdraw(ctx context.Context, args []string) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: " + usage["withdraw"]}
	}
	id, err := s.resolveEntity(args[0])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	held := s.world.Held()
	if len(args) > 1 {
		if held, err = resolveItem(args[1]); err != nil {
			return Result{Handled: true, Message: err.Error()}
		}
	}
	if held == "" {
		return Result{Handled: true, Message: "Name the item to take, or hold one."}
	}
	return s.Submit(ctx, world.TransferClickCommand(id, held, world.Modifiers{Alt: true}))
}

func (s *Shell) empty(ctx context.Context, args []string) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: " + usage["empty"]}
	}
	id, err := s.resolveEntity(args[0])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	return s.Submit(ctx, world.TransferClickCommand(id, s.world.Held(), world.Modifiers{Ctrl: true}))
}

func (s *Shell) click(ctx context.Context, args []string) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: " + usage["click"]}
	}
	id, err := s.resolveEntity(args[0])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	var mods world.Modifiers
	for _, arg := range args[1:] {
		switch arg {
		case "shift":
			mods.Shift = true
		case "ctrl":
			mods.Ctrl = true
		case "alt":
			mods.Alt = true
		default:
			return Result{Handled: true, Message: fmt.Sprintf("unknown modifier %q", arg)}
		}
	}
	return s.Click(ctx, id, mods)
}

// Click is a pointer click on an entity. Shift-clicking a crafting structure
// with nothing held cycles its recipe instead of transferring.
func (s *Shell) Click(ctx context.Context, id world.EntityID, mods world.Modifiers) Result {
	held := s.world.Held()
	if mods.ShiftOnly() && held == "" {
		player, _ := s.world.Player()
		if _, err := s.world.CrafterOf(id); err == nil && id != player {
			return s.Submit(ctx, world.SelectRecipeCommand(id))
		}
	}
	return s.Submit(ctx, world.TransferClickCommand(id, held, mods))
}

func (s *Shell) build(ctx context.Context, args []string) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: " + usage["build"]}
	}
	kind, err := world.ParseKind(strings.ReplaceAll(args[0], " ", "-"))
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	return s.Build(ctx, kind)
}

// Build places a structure paid for from the player's inventory.
func (s *Shell) Build(ctx context.Context, kind world.Kind) Result {
	res := s.Submit(ctx, world.PlaceStructureCommand(kind))
	if res.Message == "Nothing happened." {
		if spec, ok := world.SpecFor(kind); ok {
			res.Message = fmt.Sprintf("Cannot build %s: needs %s.", kind, items.FormatStacks(spec.Cost))
		}
	}
	return res
}

func (s *Shell) remove(ctx context.Context, args []string) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Usage: " + usage["remove"]}
	}
	id, err := s.resolveEntity(args[0])
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	player, _ := s.world.Player()
	if id == player {
		return Result{Handled: true, Message: "The player cannot be removed."}
	}
	receiver := player
	if len(args) > 1 && args[1] == "discard" {
		receiver = world.NoEntity
	}
	s.lastEntity = world.NoEntity
	return s.Submit(ctx, world.RemoveEntityCommand(id, receiver))
}

func (s *Shell) research(args []string, unlock bool) Result {
	if len(args) == 0 {
		return Result{Handled: true, Message: "Name a recipe."}
	}
	r, err := recipes.ParseRecipeType(strings.ReplaceAll(args[0], " ", "-"))
	if err != nil {
		return Result{Handled: true, Message: err.Error()}
	}
	if unlock {
		s.world.Research().Unlock(r)
		return Result{Handled: true, Message: fmt.Sprintf("Unlocked %s.", r)}
	}
	s.world.Research().Lock(r)
	return Result{Handled: true, Message: fmt.Sprintf("Locked %s.", r)}
}

// CycleHeld moves the held item to the next type the player carries and
// returns it. It clears the held item when the player carries nothing.
func (s *Shell) CycleHeld() items.ItemType {
	player, err := s.world.Player()
	if err != nil {
		return ""
	}
	inv, err := s.world.InventoryOf(player)
	if err != nil {
		return ""
	}
	stacks := inv.Stacks()
	if len(stacks) == 0 {
		_ = s.world.SetHeld("")
		return ""
	}
	next := stacks[0].Type
	for i, st := range stacks {
		if st.Type == s.world.Held() {
			next = stacks[(i+1)%len(stacks)].Type
			break
		}
	}
	_ = s.world.SetHeld(next)
	return next
}
