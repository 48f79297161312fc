package factory

import (
	"context"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/logging"
)

const (
	// EventCraftStarted is emitted when a crafter leaves Idle with a recipe.
	EventCraftStarted logging.EventType = "factory.craft_started"
	// EventCraftCompleted is emitted once per finished assembly.
	EventCraftCompleted logging.EventType = "factory.craft_completed"
	// EventCraftCancelled is emitted when a crafter is cancelled back to Idle.
	EventCraftCancelled logging.EventType = "factory.craft_cancelled"
	// EventRecipeSelected is emitted when a selection command picks the next recipe.
	EventRecipeSelected logging.EventType = "factory.recipe_selected"
	// EventRecipeChanged is emitted after a structure was flushed and refiltered.
	EventRecipeChanged logging.EventType = "factory.recipe_changed"
	// EventTransferCompleted is emitted when items moved between inventories.
	EventTransferCompleted logging.EventType = "factory.transfer_completed"
	// EventTransferRejected is emitted when a transfer moved nothing.
	EventTransferRejected logging.EventType = "factory.transfer_rejected"
	// EventItemsSpawned is emitted when a gatherer produced items.
	EventItemsSpawned logging.EventType = "factory.items_spawned"
	// EventStructurePlaced is emitted when the player builds a structure.
	EventStructurePlaced logging.EventType = "factory.structure_placed"
	// EventEntityRemoved is emitted when an entity leaves the world.
	EventEntityRemoved logging.EventType = "factory.entity_removed"
	// EventCommandDropped is emitted when a command had nothing to act on.
	EventCommandDropped logging.EventType = "factory.command_dropped"
	// EventInvariantViolated is emitted for state the simulation should never reach.
	EventInvariantViolated logging.EventType = "factory.invariant_violated"
	// EventNotFound is emitted when a command names a missing entity.
	EventNotFound logging.EventType = "factory.not_found"
)

type CraftPayload struct {
	Recipe string        `json:"recipe"`
	Repeat bool          `json:"repeat,omitempty"`
	Input  []items.Stack `json:"input,omitempty"`
	Output []items.Stack `json:"output,omitempty"`
}

type CraftCancelledPayload struct {
	Recipe   string        `json:"recipe"`
	Refunded []items.Stack `json:"refunded,omitempty"`
}

type RecipeSelectedPayload struct {
	Previous string `json:"previous,omitempty"`
	Selected string `json:"selected"`
}

type RecipeChangedPayload struct {
	Recipe   string        `json:"recipe"`
	Repeat   bool          `json:"repeat"`
	Refunded []items.Stack `json:"refunded,omitempty"`
	Flushed  []items.Stack `json:"flushed,omitempty"`
}

type TransferPayload struct {
	Mode  string        `json:"mode"`
	Moved []items.Stack `json:"moved,omitempty"`
}

type TransferRejectedPayload struct {
	Mode   string `json:"mode"`
	Item   string `json:"item,omitempty"`
	Reason string `json:"reason"`
}

type ItemsSpawnedPayload struct {
	Items []items.Stack `json:"items"`
}

type StructurePlacedPayload struct {
	Kind string        `json:"kind"`
	Cost []items.Stack `json:"cost,omitempty"`
}

type EntityRemovedPayload struct {
	Kind    string        `json:"kind"`
	Flushed []items.Stack `json:"flushed,omitempty"`
}

type ProblemPayload struct {
	Command string `json:"command,omitempty"`
	Reason  string `json:"reason"`
}

// Meta carries the fields shared by every factory event.
type Meta struct {
	Tick      uint64
	Actor     logging.EntityRef
	Targets   []logging.EntityRef
	CommandID string
	Extra     map[string]any
}

func publish(ctx context.Context, pub logging.Publisher, typ logging.EventType, sev logging.Severity, category string, meta Meta, payload any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:      typ,
		Tick:      meta.Tick,
		Actor:     meta.Actor,
		Targets:   meta.Targets,
		Severity:  sev,
		Category:  category,
		Payload:   payload,
		Extra:     meta.Extra,
		CommandID: meta.CommandID,
	})
}

func CraftStarted(ctx context.Context, pub logging.Publisher, meta Meta, payload CraftPayload) {
	publish(ctx, pub, EventCraftStarted, logging.SeverityInfo, logging.CategoryCrafting, meta, payload)
}

func CraftCompleted(ctx context.Context, pub logging.Publisher, meta Meta, payload CraftPayload) {
	publish(ctx, pub, EventCraftCompleted, logging.SeverityInfo, logging.CategoryCrafting, meta, payload)
}

func CraftCancelled(ctx context.Context, pub logging.Publisher, meta Meta, payload CraftCancelledPayload) {
	publish(ctx, pub, EventCraftCancelled, logging.SeverityInfo, logging.CategoryCrafting, meta, payload)
}

func RecipeSelected(ctx context.Context, pub logging.Publisher, meta Meta, payload RecipeSelectedPayload) {
	publish(ctx, pub, EventRecipeSelected, logging.SeverityDebug, logging.CategoryCrafting, meta, payload)
}

func RecipeChanged(ctx context.Context, pub logging.Publisher, meta Meta, payload RecipeChangedPayload) {
	publish(ctx, pub, EventRecipeChanged, logging.SeverityInfo, logging.CategoryCrafting, meta, payload)
}

func TransferCompleted(ctx context.Context, pub logging.Publisher, meta Meta, payload TransferPayload) {
	publish(ctx, pub, EventTransferCompleted, logging.SeverityInfo, logging.CategoryInventory, meta, payload)
}

// TransferRejected is a debug event: filtered or empty transfers are normal play.
func TransferRejected(ctx context.Context, pub logging.Publisher, meta Meta, payload TransferRejectedPayload) {
	publish(ctx, pub, EventTransferRejected, logging.SeverityDebug, logging.CategoryInventory, meta, payload)
}

func ItemsSpawned(ctx context.Context, pub logging.Publisher, meta Meta, payload ItemsSpawnedPayload) {
	publish(ctx, pub, EventItemsSpawned, logging.SeverityDebug, logging.CategoryInventory, meta, payload)
}

func StructurePlaced(ctx context.Context, pub logging.Publisher, meta Meta, payload StructurePlacedPayload) {
	publish(ctx, pub, EventStructurePlaced, logging.SeverityInfo, logging.CategorySystem, meta, payload)
}

func EntityRemoved(ctx context.Context, pub logging.Publisher, meta Meta, payload EntityRemovedPayload) {
	publish(ctx, pub, EventEntityRemoved, logging.SeverityInfo, logging.CategorySystem, meta, payload)
}

func CommandDropped(ctx context.Context, pub logging.Publisher, meta Meta, payload ProblemPayload) {
	publish(ctx, pub, EventCommandDropped, logging.SeverityDebug, logging.CategorySystem, meta, payload)
}

func InvariantViolated(ctx context.Context, pub logging.Publisher, meta Meta, payload ProblemPayload) {
	publish(ctx, pub, EventInvariantViolated, logging.SeverityError, logging.CategorySystem, meta, payload)
}

func NotFound(ctx context.Context, pub logging.Publisher, meta Meta, payload ProblemPayload) {
	publish(ctx, pub, EventNotFound, logging.SeverityWarn, logging.CategorySystem, meta, payload)
}
