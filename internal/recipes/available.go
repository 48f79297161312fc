package recipes

// AvailableRecipes is the unlocked recipe set. Research mutates it; recipe
// cycling only reads it.
type AvailableRecipes struct {
	set map[RecipeType]struct{}
}

func NewAvailableRecipes(types ...RecipeType) *AvailableRecipes {
	a := &AvailableRecipes{set: make(map[RecipeType]struct{}, len(types))}
	for _, t := range types {
		a.Unlock(t)
	}
	return a
}

// AllAvailable unlocks the whole catalog, matching the starting research state.
func AllAvailable() *AvailableRecipes {
	return NewAvailableRecipes(order...)
}

// Unlock adds t when it names a catalog recipe.
func (a *AvailableRecipes) Unlock(t RecipeType) bool {
	if a == nil || !t.Valid() {
		return false
	}
	if a.set == nil {
		a.set = make(map[RecipeType]struct{})
	}
	a.set[t] = struct{}{}
	return true
}

func (a *AvailableRecipes) Lock(t RecipeType) {
	if a == nil {
		return
	}
	delete(a.set, t)
}

func (a *AvailableRecipes) Contains(t RecipeType) bool {
	if a == nil {
		return false
	}
	_, ok := a.set[t]
	return ok
}

func (a *AvailableRecipes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.set)
}

// List returns the unlocked recipes in cycle order.
func (a *AvailableRecipes) List() []RecipeType {
	out := make([]RecipeType, 0, a.Len())
	for _, id := range order {
		if a.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// NextAvailableRecipe scans the cycle starting after current and returns the
// first unlocked recipe, wrapping around. An empty set yields DefaultRecipe.
func NextAvailableRecipe(current RecipeType, available *AvailableRecipes) RecipeType {
	if available.Len() == 0 {
		return DefaultRecipe
	}
	start := indexOf(current)
	for step := 1; step <= len(order); step++ {
		candidate := order[(start+step)%len(order)]
		if available.Contains(candidate) {
			return candidate
		}
	}
	return DefaultRecipe
}
