package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/fae-factory/internal/crafting"
	"github.com/appengine-ltd/fae-factory/internal/items"
	uitheme "github.com/appengine-ltd/fae-factory/internal/ui/theme"
)

type Theme struct {
	Background      rl.Color
	Panel           rl.Color
	PanelRaised     rl.Color
	Border          rl.Color
	Divider         rl.Color
	TextPrimary     rl.Color
	TextSecondary   rl.Color
	TextMuted       rl.Color
	Accent          rl.Color
	AccentSecondary rl.Color
	Warning         rl.Color
	Danger          rl.Color
}

const (
	spaceXS = uitheme.PaddingXS
	spaceS  = uitheme.PaddingS
	spaceM  = uitheme.PaddingM
)

var AppTheme = Theme{
	Background:      uitheme.BG,
	Panel:           uitheme.Panel,
	PanelRaised:     uitheme.PanelRaised,
	Border:          uitheme.Border,
	Divider:         uitheme.Divider,
	TextPrimary:     uitheme.TextPrimary,
	TextSecondary:   uitheme.TextSecondary,
	TextMuted:       uitheme.TextMuted,
	Accent:          uitheme.AccentViolet,
	AccentSecondary: uitheme.AccentMoss,
	Warning:         uitheme.WarningAmber,
	Danger:          uitheme.Danger,
}

func toRect(b box) rl.Rectangle {
	return rl.NewRectangle(b.X, b.Y, b.W, b.H)
}

// DrawPanel draws a themed panel. If title is non-empty, a header and a
// divider are drawn inside the panel top.
func DrawPanel(b box, title string, focused bool) {
	variant := uitheme.PanelStandard
	if focused {
		variant = uitheme.PanelLifted
	}
	uitheme.DrawPanel(toRect(b), variant)
	if title != "" {
		uitheme.DrawHeader(title, int32(b.X+spaceM), int32(b.Y+spaceXS))
		dividerY := b.Y + spaceXS + float32(typeScale.Header) + 10
		uitheme.DrawDivider(b.X+spaceM, dividerY, b.X+b.W-spaceM, dividerY)
	}
}

func DrawListItem(b box, selected bool, leftText, rightText string) {
	state := uitheme.ListItemNormal
	if selected {
		state = uitheme.ListItemSelected
	}
	uitheme.DrawListItem(toRect(b), state, leftText, rightText)
}

func DrawInputField(b box, text, placeholder string, focused bool) {
	uitheme.DrawInput(toRect(b), text, placeholder, focused)
}

func DrawLabelValue(label, value string, x, y int32, valueColor rl.Color) {
	drawText(label, x, y, typeScale.Small, AppTheme.TextSecondary)
	drawText(value, x+120, y, typeScale.Small, valueColor)
}

// DrawCraftBar draws crafter progress under a row or in the detail panel.
func DrawCraftBar(b box, state crafting.CrafterState, fraction float64) {
	fill := AppTheme.AccentSecondary
	switch state.Phase {
	case crafting.PhasePending:
		fill = AppTheme.Warning
	case crafting.PhaseIdle:
		fill = AppTheme.TextMuted
	}
	uitheme.DrawProgress(toRect(b), fraction, fill)
}

// DrawStacks lays item chips out left to right, stopping at maxX.
func DrawStacks(x, y, maxX float32, stacks []items.Stack) {
	if len(stacks) == 0 {
		drawText("empty", int32(x), int32(y+3), typeScale.Small, AppTheme.TextMuted)
		return
	}
	for _, st := range stacks {
		label := fmt.Sprintf("%s %d", st.Type, st.Amount)
		if x+float32(measureText(label, typeScale.Small))+spaceS > maxX {
			drawText("...", int32(x), int32(y+3), typeScale.Small, AppTheme.TextMuted)
			return
		}
		x += uitheme.DrawChip(x, y, label, itemColor(st.Type)) + spaceXS
	}
}

func itemColor(t items.ItemType) rl.Color {
	switch t {
	case items.Wood:
		return uitheme.ItemWood
	case items.Stone:
		return uitheme.ItemStone
	case items.Crystal:
		return uitheme.ItemCrystal
	case items.Toy:
		return uitheme.ItemToy
	default:
		return AppTheme.TextSecondary
	}
}
