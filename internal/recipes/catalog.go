package recipes

import (
	"fmt"
	"strings"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
)

type RecipeType string

const (
	WoodToToy  RecipeType = "wood-to-toy"
	StoneToToy RecipeType = "stone-to-toy"
	CrystalToy RecipeType = "crystal-toy"
)

// DefaultRecipe is selected when nothing is unlocked or no recipe was chosen yet.
const DefaultRecipe = WoodToToy

type Recipe struct {
	Type   RecipeType    `json:"type"`
	Name   string        `json:"name"`
	Input  []items.Stack `json:"input"`
	Output []items.Stack `json:"output"`
	Cost   time.Duration `json:"cost"`
}

func (r Recipe) InputTypes() []items.ItemType {
	return items.Types(r.Input)
}

func (r Recipe) OutputTypes() []items.ItemType {
	return items.Types(r.Output)
}

func (r Recipe) Clone() Recipe {
	r.Input = items.CloneStacks(r.Input)
	r.Output = items.CloneStacks(r.Output)
	return r
}

func (r Recipe) String() string {
	return fmt.Sprintf("%s (%s -> %s, %s)", r.Type, items.FormatStacks(r.Input), items.FormatStacks(r.Output), r.Cost)
}

// order is the fixed cycle used when stepping through recipes.
var order = []RecipeType{WoodToToy, StoneToToy, CrystalToy}

var catalog = buildCatalog()

func buildCatalog() map[RecipeType]Recipe {
	defs := []Recipe{
		mustDefine(Recipe{
			Type:   WoodToToy,
			Name:   "Wooden Toy",
			Input:  []items.Stack{items.NewStack(items.Wood, 1)},
			Output: []items.Stack{items.NewStack(items.Toy, 1)},
			Cost:   5 * time.Second,
		}),
		mustDefine(Recipe{
			Type:   StoneToToy,
			Name:   "Stone Toy",
			Input:  []items.Stack{items.NewStack(items.Stone, 2)},
			Output: []items.Stack{items.NewStack(items.Toy, 1)},
			Cost:   8 * time.Second,
		}),
		mustDefine(Recipe{
			Type:   CrystalToy,
			Name:   "Crystal Toy",
			Input:  []items.Stack{items.NewStack(items.Crystal, 1), items.NewStack(items.Wood, 1)},
			Output: []items.Stack{items.NewStack(items.Toy, 2)},
			Cost:   12 * time.Second,
		}),
	}

	out := make(map[RecipeType]Recipe, len(defs))
	for _, def := range defs {
		out[def.Type] = def
	}
	for _, id := range order {
		if _, ok := out[id]; !ok {
			panic(fmt.Sprintf("recipes: %q is ordered but not defined", id))
		}
	}
	if len(out) != len(order) {
		panic("recipes: every defined recipe must appear in the cycle order")
	}
	return out
}

func mustDefine(r Recipe) Recipe {
	if err := Validate(r); err != nil {
		panic(err)
	}
	return r
}

// Validate checks the structural rules every catalog entry must satisfy.
func Validate(r Recipe) error {
	if strings.TrimSpace(string(r.Type)) == "" {
		return fmt.Errorf("recipe type is required")
	}
	if r.Cost <= 0 {
		return fmt.Errorf("recipe %s: cost must be positive, got %s", r.Type, r.Cost)
	}
	if len(r.Output) == 0 {
		return fmt.Errorf("recipe %s: output is required", r.Type)
	}
	for _, side := range [][]items.Stack{r.Input, r.Output} {
		if items.HasDuplicateTypes(side) {
			return fmt.Errorf("recipe %s: item type repeated on one side", r.Type)
		}
		for _, st := range side {
			if !st.Type.Valid() {
				return fmt.Errorf("recipe %s: unknown item %q", r.Type, st.Type)
			}
			if st.Amount == 0 {
				return fmt.Errorf("recipe %s: zero amount for %s", r.Type, st.Type)
			}
		}
	}
	return nil
}

// Lookup returns a copy of the recipe so callers cannot alter the catalog.
func Lookup(t RecipeType) (Recipe, bool) {
	r, ok := catalog[t]
	if !ok {
		return Recipe{}, false
	}
	return r.Clone(), true
}

func MustLookup(t RecipeType) Recipe {
	r, ok := Lookup(t)
	if !ok {
		panic(fmt.Sprintf("recipes: unknown recipe %q", t))
	}
	return r
}

func Order() []RecipeType {
	out := make([]RecipeType, len(order))
	copy(out, order)
	return out
}

func All() []Recipe {
	out := make([]Recipe, 0, len(order))
	for _, id := range order {
		out = append(out, catalog[id].Clone())
	}
	return out
}

func ParseRecipeType(raw string) (RecipeType, error) {
	t := RecipeType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := catalog[t]; !ok {
		return "", fmt.Errorf("unknown recipe: %q", raw)
	}
	return t, nil
}

func (t RecipeType) Valid() bool {
	_, ok := catalog[t]
	return ok
}

func (t RecipeType) String() string {
	return string(t)
}

func indexOf(t RecipeType) int {
	for i, id := range order {
		if id == t {
			return i
		}
	}
	return -1
}
