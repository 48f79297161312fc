package theme

import rl "github.com/gen2brain/raylib-go/raylib"

// Palette for the fae workshop UI: dusk violets with moss and amber accents.
var (
	BG            = rl.NewColor(0x17, 0x13, 0x22, 255) // #171322
	Panel         = rl.NewColor(0x1F, 0x1A, 0x2E, 255) // #1F1A2E
	PanelRaised   = rl.NewColor(0x28, 0x21, 0x3B, 255) // #28213B
	Border        = rl.NewColor(0x3A, 0x31, 0x52, 255) // #3A3152
	Divider       = rl.NewColor(0x2E, 0x27, 0x42, 255) // #2E2742
	TextPrimary   = rl.NewColor(0xEE, 0xE6, 0xF7, 255) // #EEE6F7
	TextSecondary = rl.NewColor(0xB3, 0xA8, 0xC7, 255) // #B3A8C7
	TextMuted     = rl.NewColor(0x82, 0x78, 0x96, 255) // #827896
	AccentViolet  = rl.NewColor(0xB0, 0x7C, 0xF2, 255) // #B07CF2
	AccentMoss    = rl.NewColor(0x5E, 0x9C, 0x6B, 255) // #5E9C6B
	WarningAmber  = rl.NewColor(0xD9, 0xA4, 0x41, 255) // #D9A441
	Danger        = rl.NewColor(0xC9, 0x55, 0x6B, 255) // #C9556B
	DisabledPanel = rl.NewColor(0x19, 0x15, 0x24, 255)
	DisabledText  = TextMuted
)

// Item swatches used for stack chips.
var (
	ItemWood    = rl.NewColor(0xA0, 0x6E, 0x3C, 255)
	ItemStone   = rl.NewColor(0x8E, 0x90, 0x99, 255)
	ItemCrystal = rl.NewColor(0x6F, 0xD3, 0xE8, 255)
	ItemToy     = rl.NewColor(0xF2, 0x8C, 0xC6, 255)
)
