package world

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/recipes"
)

type CommandType string

const (
	CommandSelectRecipe   CommandType = "select_recipe"
	CommandCancelCraft    CommandType = "cancel_craft"
	CommandStartCraft     CommandType = "start_craft"
	CommandTransferClick  CommandType = "transfer_click"
	CommandPlaceStructure CommandType = "place_structure"
	CommandRemoveEntity   CommandType = "remove_entity"
)

// Modifiers are the keys held while clicking an entity.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

func (m Modifiers) None() bool {
	return !m.Shift && !m.Ctrl && !m.Alt
}

func (m Modifiers) ShiftOnly() bool {
	return m.Shift && !m.Ctrl && !m.Alt
}

func (m Modifiers) CtrlOnly() bool {
	return m.Ctrl && !m.Shift && !m.Alt
}

func (m Modifiers) AltOnly() bool {
	return m.Alt && !m.Shift && !m.Ctrl
}

func (m Modifiers) String() string {
	var parts []string
	if m.Shift {
		parts = append(parts, "shift")
	}
	if m.Ctrl {
		parts = append(parts, "ctrl")
	}
	if m.Alt {
		parts = append(parts, "alt")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Command is a discrete input queued for the next Step. Only the fields its
// Type uses are read.
type Command struct {
	ID        uuid.UUID
	Type      CommandType
	Entity    EntityID
	Recipe    recipes.RecipeType
	Repeat    bool
	Held      items.ItemType
	Modifiers Modifiers
	Structure Kind
	// Receiver takes a removed entity's contents; zero discards them.
	Receiver EntityID
}

func (c Command) String() string {
	switch c.Type {
	case CommandStartCraft:
		return fmt.Sprintf("%s entity=%d recipe=%s repeat=%t", c.Type, c.Entity, c.Recipe, c.Repeat)
	case CommandTransferClick:
		return fmt.Sprintf("%s entity=%d held=%q modifiers=%s", c.Type, c.Entity, c.Held, c.Modifiers)
	case CommandPlaceStructure:
		return fmt.Sprintf("%s kind=%s", c.Type, c.Structure)
	case CommandRemoveEntity:
		return fmt.Sprintf("%s entity=%d receiver=%d", c.Type, c.Entity, c.Receiver)
	default:
		return fmt.Sprintf("%s entity=%d", c.Type, c.Entity)
	}
}

func SelectRecipeCommand(entity EntityID) Command {
	return Command{ID: uuid.New(), Type: CommandSelectRecipe, Entity: entity}
}

func CancelCraftCommand(entity EntityID) Command {
	return Command{ID: uuid.New(), Type: CommandCancelCraft, Entity: entity}
}

func StartCraftCommand(entity EntityID, recipe recipes.RecipeType, repeat bool) Command {
	return Command{ID: uuid.New(), Type: CommandStartCraft, Entity: entity, Recipe: recipe, Repeat: repeat}
}

// TransferClickCommand clicks entity while holding held (empty for nothing).
func TransferClickCommand(entity EntityID, held items.ItemType, mods Modifiers) Command {
	return Command{ID: uuid.New(), Type: CommandTransferClick, Entity: entity, Held: held, Modifiers: mods}
}

func PlaceStructureCommand(kind Kind) Command {
	return Command{ID: uuid.New(), Type: CommandPlaceStructure, Structure: kind}
}

func RemoveEntityCommand(entity, receiver EntityID) Command {
	return Command{ID: uuid.New(), Type: CommandRemoveEntity, Entity: entity, Receiver: receiver}
}
