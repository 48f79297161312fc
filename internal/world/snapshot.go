package world

import (
	"fmt"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/crafting"
	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
)

// EntitySnapshot is a detached copy of one entity for presentation.
type EntitySnapshot struct {
	ID           EntityID
	Kind         Kind
	Name         string
	Slots        int
	Stacks       []items.Stack
	InputFilter  string
	OutputFilter string

	HasCrafter bool
	Recipe     recipes.RecipeType
	State      crafting.CrafterState
	Progress   time.Duration
	Fraction   float64

	HasSpawner     bool
	SpawnRemaining time.Duration
	SpawnFraction  float64
}

// Status is a one-line summary of the crafter or spawner.
func (s EntitySnapshot) Status() string {
	switch {
	case s.HasCrafter && s.Recipe == "":
		return s.State.String()
	case s.HasCrafter && s.State.Phase == crafting.PhaseAssembling:
		return fmt.Sprintf("%s %s %3.0f%%", s.State, s.Recipe, s.Fraction*100)
	case s.HasCrafter:
		return fmt.Sprintf("%s %s", s.State, s.Recipe)
	case s.HasSpawner:
		return fmt.Sprintf("gathering %3.0f%%", s.SpawnFraction*100)
	default:
		return "storage"
	}
}

type Snapshot struct {
	Tick     uint64
	Player   EntityID
	Held     items.ItemType
	Research []recipes.RecipeType
	Entities []EntitySnapshot
}

// Entity finds id in the snapshot.
func (s Snapshot) Entity(id EntityID) (EntitySnapshot, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntitySnapshot{}, false
}

func (w *World) Snapshot() Snapshot {
	out := Snapshot{
		Tick:     w.tick,
		Held:     w.held,
		Research: w.research.List(),
		Entities: make([]EntitySnapshot, 0, len(w.kinds)),
	}
	if w.valid(w.player) {
		out.Player = w.player
	}
	for _, id := range w.Entities() {
		out.Entities = append(out.Entities, w.entitySnapshot(id))
	}
	return out
}

func (w *World) EntitySnapshot(id EntityID) (EntitySnapshot, error) {
	if !w.valid(id) {
		return EntitySnapshot{}, fmt.Errorf("snapshot of entity %d: %w", id, ErrNotFound)
	}
	return w.entitySnapshot(id), nil
}

func (w *World) entitySnapshot(id EntityID) EntitySnapshot {
	kind := w.kinds[id]
	inv := w.inventories[id]
	snap := EntitySnapshot{
		ID:           id,
		Kind:         kind,
		Slots:        inv.SlotCapacity,
		Stacks:       inv.Stacks(),
		InputFilter:  inv.InputFilter().String(),
		OutputFilter: inv.OutputFilter().String(),
	}
	if spec, ok := structureSpecs[kind]; ok {
		snap.Name = spec.Name
	}
	if c := w.crafters[id]; c != nil {
		snap.HasCrafter = true
		snap.Recipe = c.RecipeType()
		snap.State = c.State
		snap.Progress = c.Progress
		snap.Fraction = c.Fraction()
	}
	if s := w.spawners[id]; s != nil {
		snap.HasSpawner = true
		snap.SpawnRemaining = s.Remaining()
		snap.SpawnFraction = s.Fraction()
	}
	return snap
}
