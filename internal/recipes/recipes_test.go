package recipes

import (
	"testing"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
)

func TestNextAvailableRecipeCycles(t *testing.T) {
	all := AllAvailable()
	tests := []struct {
		current   RecipeType
		available *AvailableRecipes
		want      RecipeType
	}{
		{current: WoodToToy, available: all, want: StoneToToy},
		{current: StoneToToy, available: all, want: CrystalToy},
		{current: CrystalToy, available: all, want: WoodToToy},
		{current: WoodToToy, available: NewAvailableRecipes(CrystalToy), want: CrystalToy},
		{current: CrystalToy, available: NewAvailableRecipes(StoneToToy), want: StoneToToy},
		{current: StoneToToy, available: NewAvailableRecipes(StoneToToy), want: StoneToToy},
		{current: RecipeType("unknown"), available: NewAvailableRecipes(StoneToToy, CrystalToy), want: StoneToToy},
		{current: StoneToToy, available: NewAvailableRecipes(), want: DefaultRecipe},
		{current: CrystalToy, available: nil, want: DefaultRecipe},
	}
	for _, tc := range tests {
		got := NextAvailableRecipe(tc.current, tc.available)
		if got != tc.want {
			t.Fatalf("NextAvailableRecipe(%s, %v)=%s want=%s", tc.current, tc.available.List(), got, tc.want)
		}
	}
}

func TestNextAvailableRecipeAlwaysReturnsMember(t *testing.T) {
	subsets := [][]RecipeType{
		{WoodToToy},
		{StoneToToy},
		{CrystalToy},
		{WoodToToy, CrystalToy},
		{StoneToToy, CrystalToy},
		Order(),
	}
	for _, subset := range subsets {
		available := NewAvailableRecipes(subset...)
		for _, current := range Order() {
			got := NextAvailableRecipe(current, available)
			if !available.Contains(got) {
				t.Fatalf("expected %s to be in %v (current %s)", got, subset, current)
			}
		}
	}
}

func TestAvailableRecipesMutations(t *testing.T) {
	a := NewAvailableRecipes()
	if a.Unlock(RecipeType("nope")) {
		t.Fatalf("expected unknown recipe to be rejected")
	}
	a.Unlock(CrystalToy)
	a.Unlock(WoodToToy)
	if got := a.List(); len(got) != 2 || got[0] != WoodToToy || got[1] != CrystalToy {
		t.Fatalf("expected cycle-ordered list, got %v", got)
	}
	a.Lock(WoodToToy)
	if a.Contains(WoodToToy) || a.Len() != 1 {
		t.Fatalf("expected wood-to-toy to be locked, got %v", a.List())
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	r, ok := Lookup(WoodToToy)
	if !ok {
		t.Fatalf("expected wood-to-toy to exist")
	}
	if r.Cost != 5*time.Second {
		t.Fatalf("expected cost 5s got %s", r.Cost)
	}
	r.Input[0].Amount = 99
	again := MustLookup(WoodToToy)
	if again.Input[0].Amount != 1 {
		t.Fatalf("expected catalog to be unaffected by caller edits, got %d", again.Input[0].Amount)
	}
}

func TestCatalogEntriesAreValid(t *testing.T) {
	for _, r := range All() {
		if err := Validate(r); err != nil {
			t.Fatalf("invalid catalog recipe: %v", err)
		}
	}
	bad := Recipe{
		Type:   "dup",
		Input:  []items.Stack{items.NewStack(items.Wood, 1), items.NewStack(items.Wood, 2)},
		Output: []items.Stack{items.NewStack(items.Toy, 1)},
		Cost:   time.Second,
	}
	if err := Validate(bad); err == nil {
		t.Fatalf("expected duplicate input types to be rejected")
	}
	bad.Input = nil
	bad.Cost = 0
	if err := Validate(bad); err == nil {
		t.Fatalf("expected zero cost to be rejected")
	}
}

func TestParseRecipeType(t *testing.T) {
	if got, err := ParseRecipeType(" Crystal-Toy "); err != nil || got != CrystalToy {
		t.Fatalf("expected crystal-toy got %q err=%v", got, err)
	}
	if _, err := ParseRecipeType("gold-to-toy"); err == nil {
		t.Fatalf("expected unknown recipe to fail")
	}
}
