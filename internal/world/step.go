package world

import (
	"context"
	"errors"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/logging/factory"
)

// Step advances the simulation by elapsed:
//  1. events of the previous tick are discarded
//  2. queued commands are applied in FIFO order
//  3. recipe changes recorded by those commands are applied
//  4. every crafter advances
//  5. every spawner advances
//
// Step never blocks and never fails; defects are published as log events.
func (w *World) Step(ctx context.Context, elapsed time.Duration) {
	w.tick++
	w.events = nil
	if elapsed < 0 {
		elapsed = 0
	}
	if w.maxDelta > 0 && elapsed > w.maxDelta {
		elapsed = w.maxDelta
	}

	for _, cmd := range w.commands.Drain() {
		w.apply(ctx, cmd)
	}
	w.applyRecipeChanges(ctx)
	w.advanceCrafters(ctx, elapsed)
	w.advanceSpawners(ctx, elapsed)
}

func (w *World) advanceCrafters(ctx context.Context, elapsed time.Duration) {
	for i := 1; i < len(w.kinds); i++ {
		id := EntityID(i)
		c := w.crafters[i]
		if !w.alive[i] || c == nil {
			continue
		}
		done, err := c.Advance(w.inventories[i], elapsed)
		if err != nil {
			w.reportError(ctx, id, "", "advance crafter", err)
			continue
		}
		if !done {
			continue
		}
		w.emit(EventCraftCompleted, id, c.Recipe.Type, c.Recipe.Output)
		factory.CraftCompleted(ctx, w.pub, w.meta(id, ""), factory.CraftPayload{
			Recipe: string(c.Recipe.Type),
			Repeat: !c.State.IsIdle(),
			Output: c.Recipe.Output,
		})
	}
}

func (w *World) advanceSpawners(ctx context.Context, elapsed time.Duration) {
	for i := 1; i < len(w.kinds); i++ {
		s := w.spawners[i]
		if !w.alive[i] || s == nil {
			continue
		}
		produced := s.Advance(w.inventories[i], elapsed)
		if len(produced) == 0 {
			continue
		}
		id := EntityID(i)
		w.emit(EventItemsSpawned, id, "", produced)
		factory.ItemsSpawned(ctx, w.pub, w.meta(id, ""), factory.ItemsSpawnedPayload{Items: produced})
	}
}

// reportError publishes err as a not-found or invariant event. Neither stops
// the tick.
func (w *World) reportError(ctx context.Context, id EntityID, commandID, op string, err error) {
	payload := factory.ProblemPayload{Command: op, Reason: err.Error()}
	if errors.Is(err, ErrNotFound) {
		factory.NotFound(ctx, w.pub, w.meta(id, commandID), payload)
		return
	}
	factory.InvariantViolated(ctx, w.pub, w.meta(id, commandID), payload)
}
