package world

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/crafting"
	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/logging"
	"github.com/appengine-ltd/fae-factory/internal/logging/factory"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/spawning"
)

// EntityID indexes the world arenas. Zero is never assigned.
type EntityID uint32

const NoEntity EntityID = 0

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

type Options struct {
	PlayerSeed  []items.Stack
	PlayerSlots int
	// NoPlayer builds an empty world; recipe changes then have nowhere to
	// flush to and keep their contents.
	NoPlayer        bool
	StructureSlots  map[Kind]int
	SpawnIntervals  map[Kind]time.Duration
	CommandCapacity int
	// MaxDelta clamps the elapsed time of a single Step; zero disables it.
	MaxDelta  time.Duration
	Research  *recipes.AvailableRecipes
	Publisher logging.Publisher
}

func DefaultOptions() Options {
	return Options{
		PlayerSeed: []items.Stack{
			items.NewStack(items.Wood, 10),
			items.NewStack(items.Crystal, 10),
			items.NewStack(items.Stone, 10),
			items.NewStack(items.Toy, 10),
		},
		PlayerSlots:     10,
		CommandCapacity: 256,
		MaxDelta:        time.Second,
	}
}

type recipeChange struct {
	entity    EntityID
	recipe    recipes.RecipeType
	repeat    bool
	start     bool
	commandID string
}

// World owns every entity's components in arenas indexed by EntityID and
// runs the per-tick schedule. It is not safe for concurrent use apart from
// Enqueue.
type World struct {
	tick uint64

	kinds       []Kind
	alive       []bool
	inventories []*items.Inventory
	crafters    []*crafting.Crafter
	spawners    []*spawning.Spawner

	player EntityID
	held   items.ItemType

	research *recipes.AvailableRecipes
	commands *commandBuffer
	changes  []recipeChange
	events   []Event

	structureSlots map[Kind]int
	spawnIntervals map[Kind]time.Duration
	maxDelta       time.Duration
	pub            logging.Publisher
}

func New(opts Options) (*World, error) {
	research := opts.Research
	if research == nil {
		research = recipes.AllAvailable()
	}
	pub := opts.Publisher
	if pub == nil {
		pub = logging.NopPublisher()
	}
	capacity := opts.CommandCapacity
	if capacity <= 0 {
		capacity = DefaultOptions().CommandCapacity
	}
	w := &World{
		// index 0 is the reserved NoEntity slot
		kinds:          make([]Kind, 1),
		alive:          make([]bool, 1),
		inventories:    make([]*items.Inventory, 1),
		crafters:       make([]*crafting.Crafter, 1),
		spawners:       make([]*spawning.Spawner, 1),
		research:       research,
		commands:       newCommandBuffer(capacity),
		structureSlots: opts.StructureSlots,
		spawnIntervals: opts.SpawnIntervals,
		maxDelta:       opts.MaxDelta,
		pub:            pub,
	}
	if opts.NoPlayer {
		return w, nil
	}
	for _, st := range opts.PlayerSeed {
		if !st.Type.Valid() {
			return nil, fmt.Errorf("player seed: unknown item %q", st.Type)
		}
	}
	id, err := w.spawn(KindPlayer)
	if err != nil {
		return nil, err
	}
	inv := w.inventories[id]
	if opts.PlayerSlots > 0 {
		inv.SlotCapacity = opts.PlayerSlots
	}
	inv.AddItems(opts.PlayerSeed)
	w.player = id
	return w, nil
}

// Spawn adds an entity of kind without charging its cost.
func (w *World) Spawn(kind Kind) (EntityID, error) {
	if kind == KindPlayer {
		return NoEntity, fmt.Errorf("spawn %s: the world has a single player", kind)
	}
	return w.spawn(kind)
}

func (w *World) spawn(kind Kind) (EntityID, error) {
	spec, ok := SpecFor(kind)
	if !ok {
		return NoEntity, fmt.Errorf("spawn %q: %w", kind, ErrNotFound)
	}
	slots := spec.Slots
	if n, ok := w.structureSlots[kind]; ok && n >= 0 {
		slots = n
	}
	inv := items.NewInventory(slots)
	applyFilterPreset(inv, spec.Filters)

	var crafter *crafting.Crafter
	if spec.Crafter {
		crafter = crafting.NewCrafter()
		if spec.Repeat {
			crafter.State = crafting.Pending(true)
		}
	}

	var spawner *spawning.Spawner
	if spec.Spawns() {
		interval := spec.SpawnInterval
		if d, ok := w.spawnIntervals[kind]; ok && d > 0 {
			interval = d
		}
		s, err := spawning.New(interval, spec.SpawnOutput...)
		if err != nil {
			return NoEntity, fmt.Errorf("spawn %s: %w", kind, err)
		}
		spawner = s
	}

	id := EntityID(len(w.kinds))
	w.kinds = append(w.kinds, kind)
	w.alive = append(w.alive, true)
	w.inventories = append(w.inventories, inv)
	w.crafters = append(w.crafters, crafter)
	w.spawners = append(w.spawners, spawner)
	return id, nil
}

func (w *World) valid(id EntityID) bool {
	return id != NoEntity && int(id) < len(w.kinds) && w.alive[id]
}

func (w *World) Tick() uint64 {
	return w.tick
}

// Player returns the player entity, or ErrNotFound when the world has none.
func (w *World) Player() (EntityID, error) {
	if !w.valid(w.player) {
		return NoEntity, fmt.Errorf("player: %w", ErrNotFound)
	}
	return w.player, nil
}

func (w *World) KindOf(id EntityID) (Kind, error) {
	if !w.valid(id) {
		return "", fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	return w.kinds[id], nil
}

// InventoryOf exposes an entity's live inventory to simulation collaborators.
// Presentation code should read Snapshot instead.
func (w *World) InventoryOf(id EntityID) (*items.Inventory, error) {
	if !w.valid(id) {
		return nil, fmt.Errorf("inventory of entity %d: %w", id, ErrNotFound)
	}
	return w.inventories[id], nil
}

func (w *World) CrafterOf(id EntityID) (*crafting.Crafter, error) {
	if !w.valid(id) || w.crafters[id] == nil {
		return nil, fmt.Errorf("crafter of entity %d: %w", id, ErrNotFound)
	}
	return w.crafters[id], nil
}

func (w *World) SpawnerOf(id EntityID) (*spawning.Spawner, error) {
	if !w.valid(id) || w.spawners[id] == nil {
		return nil, fmt.Errorf("spawner of entity %d: %w", id, ErrNotFound)
	}
	return w.spawners[id], nil
}

// Entities lists live entities in arena order.
func (w *World) Entities() []EntityID {
	out := make([]EntityID, 0, len(w.kinds))
	for i := 1; i < len(w.kinds); i++ {
		if w.alive[i] {
			out = append(out, EntityID(i))
		}
	}
	return out
}

// Research is the unlock set recipe selection reads from. Callers may lock
// and unlock recipes between ticks.
func (w *World) Research() *recipes.AvailableRecipes {
	return w.research
}

func (w *World) Held() items.ItemType {
	return w.held
}

// SetHeld selects the item the player clicks with. Empty clears it.
func (w *World) SetHeld(t items.ItemType) error {
	if t != "" && !t.Valid() {
		return fmt.Errorf("hold: unknown item %q", t)
	}
	w.held = t
	return nil
}

// Enqueue stages cmd for the next Step. It is safe to call from any goroutine.
func (w *World) Enqueue(cmd Command) error {
	if !w.commands.Push(cmd) {
		factory.CommandDropped(context.Background(), w.pub, w.meta(cmd.Entity, cmd.ID.String()), factory.ProblemPayload{
			Command: string(cmd.Type),
			Reason:  "command queue full",
		})
		return fmt.Errorf("enqueue %s: %w", cmd.Type, ErrQueueFull)
	}
	return nil
}

func (w *World) PendingCommands() int {
	return w.commands.Len()
}

func (w *World) ref(id EntityID) logging.EntityRef {
	if id == NoEntity {
		return logging.EntityRef{Kind: logging.EntityKindWorld}
	}
	kind := logging.EntityKindStructure
	if id == w.player {
		kind = logging.EntityKindPlayer
	}
	return logging.EntityRef{ID: id.String(), Kind: kind}
}

func (w *World) meta(id EntityID, commandID string) factory.Meta {
	m := factory.Meta{Tick: w.tick, Actor: w.ref(id), CommandID: commandID}
	if w.valid(id) {
		m.Extra = map[string]any{"kind": string(w.kinds[id])}
	}
	return m
}
