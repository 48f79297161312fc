package theme

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	PaddingXS = float32(8)
	PaddingS  = float32(12)
	PaddingM  = float32(18)
	PaddingL  = float32(24)

	CornerRadius   = float32(0.08)
	CornerSegments = int32(8)

	BorderWidth      = float32(1.2)
	BorderWidthFocus = float32(2.0)
	RowHeight        = float32(40)
	AccentStripWidth = float32(4)
)

type PanelVariant int

const (
	PanelStandard PanelVariant = iota
	PanelLifted
	PanelMuted
)

type ListItemState int

const (
	ListItemNormal ListItemState = iota
	ListItemSelected
	ListItemFocused
	ListItemDisabled
)

func DrawPanel(rect rl.Rectangle, variant PanelVariant) {
	fill := Panel
	stroke := Border
	strokeWidth := BorderWidth

	switch variant {
	case PanelLifted:
		fill = PanelRaised
		stroke = mix(Border, AccentMoss, 0.35)
		strokeWidth = 1.4
	case PanelMuted:
		fill = DisabledPanel
		stroke = rl.Fade(Border, 0.75)
	}

	rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, strokeWidth, stroke)

	inner := rl.NewRectangle(rect.X+1, rect.Y+1, rect.Width-2, rect.Height-2)
	if inner.Width > 4 && inner.Height > 4 {
		rl.DrawRectangleRoundedLinesEx(inner, CornerRadius, CornerSegments, 1.0, rl.Fade(Divider, 0.65))
	}
}

func DrawListItem(rect rl.Rectangle, state ListItemState, leftText, rightText string) {
	fill := rl.Fade(PanelRaised, 0.45)
	stroke := rl.Fade(Border, 0.9)
	left := TextPrimary
	right := TextSecondary
	strokeWidth := BorderWidth
	strip := rl.Color{}
	drawStrip := false

	switch state {
	case ListItemSelected, ListItemFocused:
		fill = PanelRaised
		stroke = AccentViolet
		strokeWidth = BorderWidthFocus
		strip = AccentViolet
		drawStrip = true
		right = AccentViolet
	case ListItemDisabled:
		fill = DisabledPanel
		stroke = rl.Fade(Border, 0.75)
		left = DisabledText
		right = DisabledText
	}

	rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, strokeWidth, stroke)

	if drawStrip {
		stripRect := rl.NewRectangle(rect.X+1, rect.Y+2, AccentStripWidth, rect.Height-4)
		if stripRect.Height > 0 {
			rl.DrawRectangleRec(stripRect, strip)
		}
	}

	if leftText != "" {
		drawText(leftText, int32(rect.X+PaddingM), int32(rect.Y+10), Type.Body, left)
	}
	if rightText != "" {
		rightW := measureText(rightText, Type.Body)
		rightX := int32(rect.X + rect.Width - PaddingM - float32(rightW))
		drawText(rightText, rightX, int32(rect.Y+10), Type.Body, right)
	}
}

func DrawHeader(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, Type.Header, TextPrimary)
	w := measureText(text, Type.Header)
	lineW := int32(float32(w) * 0.6)
	if lineW < 44 {
		lineW = 44
	}
	drawLine(float32(x), float32(y+Type.Header+6), float32(x+lineW), float32(y+Type.Header+6), 2.0, AccentViolet)
}

func DrawDivider(x1, y1, x2, y2 float32) {
	drawLine(x1, y1, x2, y2, 1.0, rl.Fade(Divider, 0.95))
}

func DrawHintText(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, Type.Small, TextMuted)
}

func drawLine(x1, y1, x2, y2, thickness float32, clr rl.Color) {
	rl.DrawLineEx(rl.NewVector2(x1, y1), rl.NewVector2(x2, y2), thickness, clr)
}

func mix(a, b rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	inv := 1.0 - t
	return rl.NewColor(
		uint8(float32(a.R)*inv+float32(b.R)*t),
		uint8(float32(a.G)*inv+float32(b.G)*t),
		uint8(float32(a.B)*inv+float32(b.B)*t),
		uint8(float32(a.A)*inv+float32(b.A)*t),
	)
}

// DrawInput renders a single-line text field. placeholder shows while text
// is empty and the field is unfocused.
func DrawInput(rect rl.Rectangle, text, placeholder string, focused bool) {
	stroke := Border
	width := BorderWidth
	if focused {
		stroke = AccentViolet
		width = BorderWidthFocus
	}
	rl.DrawRectangleRounded(rect, CornerRadius, CornerSegments, PanelRaised)
	rl.DrawRectangleRoundedLinesEx(rect, CornerRadius, CornerSegments, width, stroke)

	y := int32(rect.Y + (rect.Height-float32(Type.Body))/2)
	x := int32(rect.X + PaddingS)
	switch {
	case text == "" && !focused:
		drawText(placeholder, x, y, Type.Body, TextMuted)
	case focused:
		drawText("> "+text+"_", x, y, Type.Body, TextPrimary)
	default:
		drawText("> "+text, x, y, Type.Body, TextSecondary)
	}
}

// DrawProgress draws a thin track filled to fraction.
func DrawProgress(rect rl.Rectangle, fraction float64, fill rl.Color) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	rl.DrawRectangleRec(rect, rl.Fade(PanelRaised, 0.9))
	if fraction > 0 {
		inner := rl.NewRectangle(rect.X+1, rect.Y+1, (rect.Width-2)*float32(fraction), rect.Height-2)
		rl.DrawRectangleRec(inner, fill)
	}
	rl.DrawRectangleLinesEx(rect, 1.0, rl.Fade(Border, 0.95))
}

// DrawChip draws a small coloured label, used for item stacks. It returns the
// chip width so callers can lay chips out in a row.
func DrawChip(x, y float32, text string, clr rl.Color) float32 {
	w := float32(measureText(text, Type.Small)) + PaddingS
	h := float32(Type.Small) + 6
	rect := rl.NewRectangle(x, y, w, h)
	rl.DrawRectangleRounded(rect, 0.4, CornerSegments, rl.Fade(clr, 0.25))
	rl.DrawRectangleRoundedLinesEx(rect, 0.4, CornerSegments, 1.0, clr)
	drawText(text, int32(x+PaddingS/2), int32(y+3), Type.Small, TextPrimary)
	return w
}

// DrawFrame paints the window border. Content stays PaddingXS inside it.
func DrawFrame(screenW, screenH int32) {
	outer := rl.NewRectangle(2, 2, float32(screenW)-4, float32(screenH)-4)
	rl.DrawRectangleLinesEx(outer, 2.0, rl.Fade(AccentViolet, 0.55))
}
