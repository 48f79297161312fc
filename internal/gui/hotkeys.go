package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/fae-factory/internal/world"
)

func ShiftKeyPressed(key int32) bool {
	if shiftDown() && rl.IsKeyPressed(key) {
		return true
	}
	// Accept either key order: Shift then key, or key then Shift.
	if rl.IsKeyDown(key) && (rl.IsKeyPressed(rl.KeyLeftShift) || rl.IsKeyPressed(rl.KeyRightShift)) {
		return true
	}
	return false
}

// HotkeysEnabled is false while the command line has focus so typed letters
// do not also trigger actions.
func HotkeysEnabled(uiState *factoryUI) bool {
	if uiState == nil {
		return true
	}
	return !uiState.typing
}

// currentModifiers reads the held modifier keys for a pointer click.
func currentModifiers() world.Modifiers {
	return world.Modifiers{Shift: shiftDown(), Ctrl: ctrlDown(), Alt: altDown()}
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}

func altDown() bool {
	return rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt)
}
