package world

import (
	"fmt"
	"strings"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/crafting"
	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
)

type Kind string

const (
	KindPlayer       Kind = "player"
	KindAssembler    Kind = "assembler"
	KindStorage      Kind = "storage"
	KindWoodFairy    Kind = "wood-fairy"
	KindStoneFairy   Kind = "stone-fairy"
	KindCrystalFairy Kind = "crystal-fairy"
)

type FilterPreset int

const (
	FilterOpen FilterPreset = iota
	FilterRecipe
	FilterOutputOnly
)

// StructureSpec describes how an entity kind is built and what it carries.
type StructureSpec struct {
	Kind        Kind
	Name        string
	Description string
	Cost        []items.Stack
	Slots       int
	Filters     FilterPreset
	Crafter     bool
	// Repeat is the state a fresh crafter starts in; assemblers wait in
	// Pending(repeat) until a recipe is selected.
	Repeat        bool
	SpawnOutput   []items.Stack
	SpawnInterval time.Duration
}

func (s StructureSpec) Placeable() bool {
	return s.Kind != KindPlayer
}

func (s StructureSpec) Spawns() bool {
	return len(s.SpawnOutput) > 0 && s.SpawnInterval > 0
}

func (s StructureSpec) clone() StructureSpec {
	s.Cost = items.CloneStacks(s.Cost)
	s.SpawnOutput = items.CloneStacks(s.SpawnOutput)
	return s
}

var kindOrder = []Kind{KindPlayer, KindAssembler, KindStorage, KindWoodFairy, KindStoneFairy, KindCrystalFairy}

var structureSpecs = map[Kind]StructureSpec{
	KindPlayer: {
		Kind:        KindPlayer,
		Name:        "Player",
		Description: "The fae doing the building. Crafts one recipe at a time by hand.",
		Slots:       10,
		Filters:     FilterOpen,
		Crafter:     true,
	},
	KindAssembler: {
		Kind:        KindAssembler,
		Name:        "Assembler",
		Description: "Repeats its selected recipe for as long as inputs arrive.",
		Cost:        []items.Stack{items.NewStack(items.Crystal, 3), items.NewStack(items.Wood, 3)},
		Slots:       2,
		Filters:     FilterRecipe,
		Crafter:     true,
		Repeat:      true,
	},
	KindStorage: {
		Kind:        KindStorage,
		Name:        "Storage",
		Description: "A chest that accepts and releases anything.",
		Cost:        []items.Stack{items.NewStack(items.Stone, 5)},
		Slots:       10,
		Filters:     FilterOpen,
	},
	KindWoodFairy: {
		Kind:          KindWoodFairy,
		Name:          "Wood Fairy",
		Description:   "Gathers wood over time.",
		Cost:          []items.Stack{items.NewStack(items.Crystal, 1)},
		Slots:         2,
		Filters:       FilterOutputOnly,
		SpawnOutput:   []items.Stack{items.NewStack(items.Wood, 1)},
		SpawnInterval: 10 * time.Second,
	},
	KindStoneFairy: {
		Kind:          KindStoneFairy,
		Name:          "Stone Fairy",
		Description:   "Gathers stone over time.",
		Cost:          []items.Stack{items.NewStack(items.Crystal, 1), items.NewStack(items.Wood, 1)},
		Slots:         2,
		Filters:       FilterOutputOnly,
		SpawnOutput:   []items.Stack{items.NewStack(items.Stone, 1)},
		SpawnInterval: 10 * time.Second,
	},
	KindCrystalFairy: {
		Kind:          KindCrystalFairy,
		Name:          "Crystal Fairy",
		Description:   "Gathers crystal, slowly.",
		Cost:          []items.Stack{items.NewStack(items.Wood, 2), items.NewStack(items.Stone, 2)},
		Slots:         2,
		Filters:       FilterOutputOnly,
		SpawnOutput:   []items.Stack{items.NewStack(items.Crystal, 1)},
		SpawnInterval: 15 * time.Second,
	},
}

func SpecFor(k Kind) (StructureSpec, bool) {
	spec, ok := structureSpecs[k]
	if !ok {
		return StructureSpec{}, false
	}
	return spec.clone(), true
}

func Kinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// PlaceableKinds lists every kind the player can build.
func PlaceableKinds() []Kind {
	out := make([]Kind, 0, len(kindOrder)-1)
	for _, k := range kindOrder {
		if k != KindPlayer {
			out = append(out, k)
		}
	}
	return out
}

func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := structureSpecs[k]; !ok {
		return "", fmt.Errorf("unknown structure: %q", raw)
	}
	return k, nil
}

func (k Kind) String() string {
	return string(k)
}

func applyFilterPreset(inv *items.Inventory, preset FilterPreset) {
	switch preset {
	case FilterRecipe:
		r := recipes.MustLookup(recipes.DefaultRecipe)
		crafting.FilteredFor(inv, &r)
	case FilterOutputOnly:
		inv.FilteredOnlyRemove()
	default:
		inv.ClearFilters()
	}
}
