package world

import (
	"fmt"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
)

type EventKind string

const (
	EventCraftStarted    EventKind = "craft_started"
	EventCraftCompleted  EventKind = "craft_completed"
	EventCraftCancelled  EventKind = "craft_cancelled"
	EventRecipeChanged   EventKind = "recipe_changed"
	EventTransfer        EventKind = "transfer"
	EventItemsSpawned    EventKind = "items_spawned"
	EventStructurePlaced EventKind = "structure_placed"
	EventEntityRemoved   EventKind = "entity_removed"
)

// Event is a one-shot notification produced during a Step. Events are kept
// until DrainEvents or the start of the next Step, whichever comes first.
type Event struct {
	Tick   uint64
	Kind   EventKind
	Entity EntityID
	Recipe recipes.RecipeType
	Items  []items.Stack
}

func (e Event) String() string {
	switch {
	case e.Recipe != "" && len(e.Items) > 0:
		return fmt.Sprintf("tick %d %s #%d %s [%s]", e.Tick, e.Kind, e.Entity, e.Recipe, items.FormatStacks(e.Items))
	case e.Recipe != "":
		return fmt.Sprintf("tick %d %s #%d %s", e.Tick, e.Kind, e.Entity, e.Recipe)
	case len(e.Items) > 0:
		return fmt.Sprintf("tick %d %s #%d [%s]", e.Tick, e.Kind, e.Entity, items.FormatStacks(e.Items))
	default:
		return fmt.Sprintf("tick %d %s #%d", e.Tick, e.Kind, e.Entity)
	}
}

func (w *World) emit(kind EventKind, entity EntityID, recipe recipes.RecipeType, stacks []items.Stack) {
	w.events = append(w.events, Event{
		Tick:   w.tick,
		Kind:   kind,
		Entity: entity,
		Recipe: recipe,
		Items:  items.CloneStacks(stacks),
	})
}

// DrainEvents returns the events of the last Step and forgets them.
func (w *World) DrainEvents() []Event {
	out := w.events
	w.events = nil
	return out
}
