package crafting

import (
	"errors"
	"time"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
)

var ErrInvariantViolated = errors.New("invariant violated")

// Crafter converts recipe inputs into outputs over time. It owns no
// inventory; the caller passes the entity's own inventory on every call.
type Crafter struct {
	Recipe   *recipes.Recipe
	Progress time.Duration
	State    CrafterState
	// Speed scales elapsed time; values <= 0 count as 1.
	Speed float64
}

func NewCrafter() *Crafter {
	return &Crafter{State: Idle(), Speed: 1}
}

// Start assigns a recipe to an idle crafter. It is the only way out of Idle.
func (c *Crafter) Start(recipe recipes.Recipe, repeat bool) bool {
	if c == nil || !c.State.IsIdle() {
		return false
	}
	r := recipe.Clone()
	c.Recipe = &r
	c.Progress = 0
	c.State = Pending(repeat)
	return true
}

// Reassign swaps the recipe of an active crafter. Inputs already consumed
// by an assembly in flight are put back into inv first. The repeat flag is
// kept and the crafter waits for the new recipe's inputs.
func (c *Crafter) Reassign(recipe recipes.Recipe, inv *items.Inventory) []items.Stack {
	if c == nil {
		return nil
	}
	refunded := c.refund(inv)
	r := recipe.Clone()
	c.Recipe = &r
	c.Progress = 0
	if c.State.IsIdle() {
		return refunded
	}
	c.State = Pending(c.State.Repeat)
	return refunded
}

// Advance runs one tick. It reports whether an assembly completed during this
// tick; at most one completion happens per call however large elapsed is.
func (c *Crafter) Advance(inv *items.Inventory, elapsed time.Duration) (bool, error) {
	if c == nil {
		return false, nil
	}
	switch c.State.Phase {
	case PhaseIdle:
		return false, nil
	case PhasePending:
		if c.Recipe == nil {
			return false, nil
		}
		if inv.RemoveItems(c.Recipe.Input) {
			c.Progress = 0
			c.State = Assembling(c.State.Repeat)
		}
		return false, nil
	case PhaseAssembling:
		if c.Recipe == nil {
			c.Progress = 0
			c.State = Idle()
			return false, ErrInvariantViolated
		}
		step := c.scale(elapsed)
		if c.Progress+step < c.Recipe.Cost {
			c.Progress += step
			return false, nil
		}
		inv.AddItems(c.Recipe.Output)
		c.Progress = 0
		if c.State.Repeat {
			c.State = Pending(true)
		} else {
			c.State = Idle()
		}
		return true, nil
	default:
		return false, ErrInvariantViolated
	}
}

// Cancel stops crafting and clears the recipe. Inputs are refunded only when
// they were consumed, i.e. while Assembling.
func (c *Crafter) Cancel(inv *items.Inventory) []items.Stack {
	if c == nil || c.Recipe == nil {
		return nil
	}
	refunded := c.refund(inv)
	c.Progress = 0
	c.State = Idle()
	c.Recipe = nil
	return refunded
}

func (c *Crafter) refund(inv *items.Inventory) []items.Stack {
	if c.State.Phase != PhaseAssembling || c.Recipe == nil {
		return nil
	}
	refunded := items.CloneStacks(c.Recipe.Input)
	inv.AddItems(refunded)
	return refunded
}

func (c *Crafter) scale(elapsed time.Duration) time.Duration {
	if elapsed <= 0 {
		return 0
	}
	if c.Speed <= 0 || c.Speed == 1 {
		return elapsed
	}
	return time.Duration(float64(elapsed) * c.Speed)
}

func (c *Crafter) Active() bool {
	return c != nil && !c.State.IsIdle()
}

// Fraction is the completed share of the current assembly in [0, 1).
func (c *Crafter) Fraction() float64 {
	if c == nil || c.Recipe == nil || c.State.Phase != PhaseAssembling || c.Recipe.Cost <= 0 {
		return 0
	}
	return float64(c.Progress) / float64(c.Recipe.Cost)
}

func (c *Crafter) RecipeType() recipes.RecipeType {
	if c == nil || c.Recipe == nil {
		return ""
	}
	return c.Recipe.Type
}

// FilteredFor points inv's filters at recipe: only its inputs may be inserted
// and only non-inputs may be pulled. Without a recipe nothing is insertable.
func FilteredFor(inv *items.Inventory, recipe *recipes.Recipe) {
	if recipe == nil {
		inv.FilteredOnlyRemove()
		return
	}
	inv.FilterForInputs(recipe.InputTypes())
}
