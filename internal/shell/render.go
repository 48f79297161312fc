package shell

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

func heldLabel(t items.ItemType) string {
	if t == "" {
		return "nothing"
	}
	return t.DisplayName()
}

// EntityLabel is the short name used in every listing, e.g. "#3 assembler".
func EntityLabel(e world.EntitySnapshot) string {
	return fmt.Sprintf("#%d %s", e.ID, e.Kind)
}

func FormatInventory(e world.EntitySnapshot) string {
	return fmt.Sprintf("%s (%d/%d slots): %s", EntityLabel(e), len(e.Stacks), e.Slots, items.FormatStacks(e.Stacks))
}

func FormatEntities(snap world.Snapshot) string {
	if len(snap.Entities) == 0 {
		return "Nothing has been built."
	}
	lines := make([]string, 0, len(snap.Entities)+1)
	lines = append(lines, fmt.Sprintf("Tick %d", snap.Tick))
	for _, e := range snap.Entities {
		lines = append(lines, fmt.Sprintf("  %-18s %-26s %s", EntityLabel(e), e.Status(), items.FormatStacks(e.Stacks)))
	}
	return strings.Join(lines, "\n")
}

func FormatEntityDetail(e world.EntitySnapshot) string {
	lines := []string{
		fmt.Sprintf("%s: %s", EntityLabel(e), e.Name),
		fmt.Sprintf("  slots:   %d/%d", len(e.Stacks), e.Slots),
		fmt.Sprintf("  items:   %s", items.FormatStacks(e.Stacks)),
		fmt.Sprintf("  accepts: %s", e.InputFilter),
		fmt.Sprintf("  gives:   %s", e.OutputFilter),
		fmt.Sprintf("  status:  %s", e.Status()),
	}
	if e.HasSpawner {
		lines = append(lines, fmt.Sprintf("  next:    %s", e.SpawnRemaining))
	}
	return strings.Join(lines, "\n")
}

func FormatRecipes(available *recipes.AvailableRecipes) string {
	lines := []string{"Recipes:"}
	for _, r := range recipes.All() {
		mark := " "
		if available.Contains(r.Type) {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("  %s %s", mark, r))
	}
	lines = append(lines, "  (* unlocked)")
	return strings.Join(lines, "\n")
}

func FormatEvents(evs []world.Event) string {
	if len(evs) == 0 {
		return "No events yet."
	}
	lines := make([]string, 0, len(evs))
	for _, ev := range evs {
		lines = append(lines, ev.String())
	}
	return strings.Join(lines, "\n")
}
