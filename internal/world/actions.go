package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/appengine-ltd/fae-factory/internal/crafting"
	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/logging/factory"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
)

func (w *World) apply(ctx context.Context, cmd Command) {
	switch cmd.Type {
	case CommandSelectRecipe:
		w.selectRecipe(ctx, cmd)
	case CommandCancelCraft:
		w.cancelCraft(ctx, cmd)
	case CommandStartCraft:
		w.startCraft(ctx, cmd)
	case CommandTransferClick:
		w.transferClick(ctx, cmd)
	case CommandPlaceStructure:
		w.placeStructure(ctx, cmd)
	case CommandRemoveEntity:
		w.removeEntity(ctx, cmd)
	default:
		w.drop(ctx, cmd, "unknown command type")
	}
}

func (w *World) drop(ctx context.Context, cmd Command, reason string) {
	factory.CommandDropped(ctx, w.pub, w.meta(cmd.Entity, cmd.ID.String()), factory.ProblemPayload{
		Command: string(cmd.Type),
		Reason:  reason,
	})
}

// pendingRecipe is the recipe an entity will have once this tick's recorded
// changes apply, so repeated selections in one tick keep cycling.
func (w *World) pendingRecipe(id EntityID) recipes.RecipeType {
	for i := len(w.changes) - 1; i >= 0; i-- {
		if w.changes[i].entity == id {
			return w.changes[i].recipe
		}
	}
	return w.crafters[id].RecipeType()
}

func (w *World) selectRecipe(ctx context.Context, cmd Command) {
	c, err := w.CrafterOf(cmd.Entity)
	if err != nil {
		w.reportError(ctx, cmd.Entity, cmd.ID.String(), string(cmd.Type), err)
		return
	}
	if cmd.Entity == w.player {
		w.drop(ctx, cmd, "the player crafts by hand")
		return
	}
	current := w.pendingRecipe(cmd.Entity)
	next := recipes.NextAvailableRecipe(current, w.research)
	w.changes = append(w.changes, recipeChange{
		entity:    cmd.Entity,
		recipe:    next,
		repeat:    true,
		commandID: cmd.ID.String(),
	})
	factory.RecipeSelected(ctx, w.pub, w.meta(cmd.Entity, cmd.ID.String()), factory.RecipeSelectedPayload{
		Previous: string(c.RecipeType()),
		Selected: string(next),
	})
}

func (w *World) startCraft(ctx context.Context, cmd Command) {
	c, err := w.CrafterOf(cmd.Entity)
	if err != nil {
		w.reportError(ctx, cmd.Entity, cmd.ID.String(), string(cmd.Type), err)
		return
	}
	if !w.research.Contains(cmd.Recipe) {
		w.drop(ctx, cmd, fmt.Sprintf("recipe %q is not available", cmd.Recipe))
		return
	}
	// a structure waiting without a recipe accepts one
	if !c.State.IsIdle() && c.Recipe != nil {
		w.drop(ctx, cmd, "crafter is busy")
		return
	}
	if cmd.Entity != w.player {
		w.changes = append(w.changes, recipeChange{
			entity:    cmd.Entity,
			recipe:    cmd.Recipe,
			repeat:    cmd.Repeat,
			start:     true,
			commandID: cmd.ID.String(),
		})
		return
	}
	c.Start(recipes.MustLookup(cmd.Recipe), cmd.Repeat)
	w.emit(EventCraftStarted, cmd.Entity, cmd.Recipe, nil)
	factory.CraftStarted(ctx, w.pub, w.meta(cmd.Entity, cmd.ID.String()), factory.CraftPayload{
		Recipe: string(cmd.Recipe),
		Repeat: cmd.Repeat,
		Input:  c.Recipe.Input,
	})
}

func (w *World) cancelCraft(ctx context.Context, cmd Command) {
	c, err := w.CrafterOf(cmd.Entity)
	if err != nil {
		w.reportError(ctx, cmd.Entity, cmd.ID.String(), string(cmd.Type), err)
		return
	}
	recipe := c.RecipeType()
	if recipe == "" {
		w.drop(ctx, cmd, "no recipe to cancel")
		return
	}
	inv := w.inventories[cmd.Entity]
	refunded := c.Cancel(inv)
	if cmd.Entity != w.player {
		crafting.FilteredFor(inv, nil)
	}
	w.emit(EventCraftCancelled, cmd.Entity, recipe, refunded)
	factory.CraftCancelled(ctx, w.pub, w.meta(cmd.Entity, cmd.ID.String()), factory.CraftCancelledPayload{
		Recipe:   string(recipe),
		Refunded: refunded,
	})
}

// applyRecipeChanges runs after every command of the tick so that a
// structure's contents are flushed once per recorded change, in order.
func (w *World) applyRecipeChanges(ctx context.Context) {
	changes := w.changes
	w.changes = nil
	for _, ch := range changes {
		if err := w.changeRecipe(ctx, ch); err != nil {
			w.reportError(ctx, ch.entity, ch.commandID, "change recipe", err)
		}
	}
}

func (w *World) changeRecipe(ctx context.Context, ch recipeChange) error {
	c, err := w.CrafterOf(ch.entity)
	if err != nil {
		return err
	}
	recipe, ok := recipes.Lookup(ch.recipe)
	if !ok {
		return fmt.Errorf("recipe %q: %w", ch.recipe, ErrNotFound)
	}
	inv := w.inventories[ch.entity]

	var refunded []items.Stack
	switch {
	case c.State.IsIdle():
		c.Start(recipe, ch.repeat)
	case ch.start && c.Recipe != nil:
		return fmt.Errorf("start %s on busy crafter: %w", ch.recipe, ErrInvariantViolated)
	default:
		refunded = c.Reassign(recipe, inv)
		if ch.start {
			c.State = crafting.Pending(ch.repeat)
		}
	}

	var flushed []items.Stack
	if receiver, err := w.InventoryOf(w.player); err == nil {
		flushed, err = items.ForceEmptyInto(inv, receiver)
		if err != nil {
			return err
		}
	}
	crafting.FilteredFor(inv, c.Recipe)

	w.emit(EventRecipeChanged, ch.entity, ch.recipe, flushed)
	factory.RecipeChanged(ctx, w.pub, w.meta(ch.entity, ch.commandID), factory.RecipeChangedPayload{
		Recipe:   string(ch.recipe),
		Repeat:   c.State.Repeat,
		Refunded: refunded,
		Flushed:  flushed,
	})
	return nil
}

// transferClick moves items between the player and the clicked entity
// depending on the held modifiers:
//
//	none + held item   insert one
//	shift + held item  insert the whole stack
//	ctrl               empty the entity into the player
//	alt + held item    withdraw one
func (w *World) transferClick(ctx context.Context, cmd Command) {
	player, err := w.Player()
	if err != nil {
		w.reportError(ctx, cmd.Entity, cmd.ID.String(), string(cmd.Type), err)
		return
	}
	target, err := w.InventoryOf(cmd.Entity)
	if err != nil {
		w.reportError(ctx, cmd.Entity, cmd.ID.String(), string(cmd.Type), err)
		return
	}
	if cmd.Entity == player {
		w.drop(ctx, cmd, "cannot click the player's own inventory")
		return
	}
	playerInv := w.inventories[player]
	held := cmd.Held
	if held == "" {
		held = w.held
	}

	mods := cmd.Modifiers
	switch {
	case mods.None() && held != "":
		w.insert(ctx, cmd, playerInv, target, held, 1, "insert")
	case mods.ShiftOnly() && held != "":
		w.insert(ctx, cmd, playerInv, target, held, playerInv.Amount(held), "insert_stack")
	case mods.CtrlOnly():
		moved, err := items.TryEmptyInto(target, playerInv)
		w.finishTransfer(ctx, cmd, "empty", "", moved, err)
	case mods.AltOnly() && held != "":
		ok, err := items.Withdraw(target, playerInv, held, 1)
		w.finishTransfer(ctx, cmd, "withdraw", held, movedIf(ok, held, 1), err)
	default:
		w.drop(ctx, cmd, fmt.Sprintf("no transfer for modifiers %s with held %q", mods, held))
	}
}

func (w *World) insert(ctx context.Context, cmd Command, src, dst *items.Inventory, held items.ItemType, amount uint32, mode string) {
	if amount == 0 {
		w.finishTransfer(ctx, cmd, mode, held, nil, nil)
	} else {
		ok, err := items.Insert(src, dst, held, amount)
		w.finishTransfer(ctx, cmd, mode, held, movedIf(ok, held, amount), err)
	}
	if !src.HasItem(held, 1) && w.held == held {
		w.held = ""
	}
}

func movedIf(ok bool, t items.ItemType, amount uint32) []items.Stack {
	if !ok {
		return nil
	}
	return []items.Stack{items.NewStack(t, amount)}
}

func (w *World) finishTransfer(ctx context.Context, cmd Command, mode string, held items.ItemType, moved []items.Stack, err error) {
	if err != nil {
		w.reportError(ctx, cmd.Entity, cmd.ID.String(), mode, err)
		return
	}
	meta := w.meta(cmd.Entity, cmd.ID.String())
	meta.Targets = append(meta.Targets, w.ref(w.player))
	if len(moved) == 0 {
		factory.TransferRejected(ctx, w.pub, meta, factory.TransferRejectedPayload{
			Mode:   mode,
			Item:   string(held),
			Reason: "nothing passed the filters",
		})
		return
	}
	w.emit(EventTransfer, cmd.Entity, "", moved)
	factory.TransferCompleted(ctx, w.pub, meta, factory.TransferPayload{Mode: mode, Moved: moved})
}

func (w *World) placeStructure(ctx context.Context, cmd Command) {
	spec, ok := SpecFor(cmd.Structure)
	if !ok || !spec.Placeable() {
		w.drop(ctx, cmd, fmt.Sprintf("%q cannot be placed", cmd.Structure))
		return
	}
	player, err := w.Player()
	if err != nil {
		w.reportError(ctx, NoEntity, cmd.ID.String(), string(cmd.Type), err)
		return
	}
	if !w.inventories[player].RemoveItems(spec.Cost) {
		w.drop(ctx, cmd, fmt.Sprintf("cannot afford %s (%s)", spec.Kind, items.FormatStacks(spec.Cost)))
		return
	}
	id, err := w.spawn(spec.Kind)
	if err != nil {
		w.inventories[player].AddItems(spec.Cost)
		w.reportError(ctx, NoEntity, cmd.ID.String(), string(cmd.Type), err)
		return
	}
	w.emit(EventStructurePlaced, id, "", spec.Cost)
	factory.StructurePlaced(ctx, w.pub, w.meta(id, cmd.ID.String()), factory.StructurePlacedPayload{
		Kind: string(spec.Kind),
		Cost: spec.Cost,
	})
}

func (w *World) removeEntity(ctx context.Context, cmd Command) {
	if !w.valid(cmd.Entity) {
		w.reportError(ctx, cmd.Entity, cmd.ID.String(), string(cmd.Type), fmt.Errorf("entity %d: %w", cmd.Entity, ErrNotFound))
		return
	}
	if cmd.Entity == w.player {
		w.drop(ctx, cmd, "the player cannot be removed")
		return
	}
	flushed, err := w.Remove(cmd.Entity, cmd.Receiver)
	if err != nil {
		w.reportError(ctx, cmd.Entity, cmd.ID.String(), string(cmd.Type), err)
		return
	}
	factory.EntityRemoved(ctx, w.pub, w.meta(cmd.Entity, cmd.ID.String()), factory.EntityRemovedPayload{
		Kind:    string(w.kinds[cmd.Entity]),
		Flushed: flushed,
	})
}

// Remove destroys a structure. Its contents, including inputs consumed by an
// assembly in flight, are force-moved into receiver, or discarded when
// receiver is NoEntity.
func (w *World) Remove(id, receiver EntityID) ([]items.Stack, error) {
	if !w.valid(id) {
		return nil, fmt.Errorf("remove entity %d: %w", id, ErrNotFound)
	}
	if id == w.player {
		return nil, errors.New("remove: the player cannot be removed")
	}
	inv := w.inventories[id]
	var dst *items.Inventory
	if receiver != NoEntity {
		var err error
		if dst, err = w.InventoryOf(receiver); err != nil {
			return nil, err
		}
		if dst == inv {
			return nil, fmt.Errorf("remove entity %d into itself: %w", id, items.ErrSameInventory)
		}
	}
	if c := w.crafters[id]; c != nil {
		c.Cancel(inv)
	}

	var flushed []items.Stack
	if dst != nil {
		var err error
		if flushed, err = items.ForceEmptyInto(inv, dst); err != nil {
			return nil, err
		}
	}

	w.alive[id] = false
	w.inventories[id] = nil
	w.crafters[id] = nil
	w.spawners[id] = nil
	w.emit(EventEntityRemoved, id, "", flushed)
	return flushed, nil
}
