package gui

import (
	"strings"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

const (
	rowHeight   = float32(52)
	rowGap      = float32(6)
	headerH     = float32(64)
	inputH      = float32(44)
	hintsH      = float32(26)
	panelGap    = float32(12)
	panelHeadH  = float32(44)
	minListW    = float32(360)
	detailRatio = float32(0.42)
)

// box is a screen rectangle kept free of raylib so hit testing can be tested
// headless.
type box struct {
	X, Y, W, H float32
}

func (b box) contains(x, y float32) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

type screenLayout struct {
	Header   box
	Entities box
	Detail   box
	Log      box
	Input    box
	Hints    box
}

// computeLayout splits the inner window area: entity list on the left,
// detail over the message log on the right, input and hints along the bottom.
func computeLayout(area box) screenLayout {
	var l screenLayout
	l.Header = box{X: area.X, Y: area.Y, W: area.W, H: headerH}
	l.Hints = box{X: area.X, Y: area.Y + area.H - hintsH, W: area.W, H: hintsH}
	l.Input = box{X: area.X, Y: l.Hints.Y - inputH - panelGap/2, W: area.W, H: inputH}

	bodyY := l.Header.Y + l.Header.H + panelGap/2
	bodyH := l.Input.Y - panelGap - bodyY
	if bodyH < 0 {
		bodyH = 0
	}
	listW := area.W * (1 - detailRatio)
	if listW < minListW {
		listW = minListW
	}
	if listW > area.W {
		listW = area.W
	}
	l.Entities = box{X: area.X, Y: bodyY, W: listW, H: bodyH}

	rightX := area.X + listW + panelGap
	rightW := area.W - listW - panelGap
	if rightW < 0 {
		rightW = 0
	}
	detailH := bodyH * 0.45
	l.Detail = box{X: rightX, Y: bodyY, W: rightW, H: detailH}
	l.Log = box{X: rightX, Y: bodyY + detailH + panelGap, W: rightW, H: bodyH - detailH - panelGap}
	return l
}

// visibleRows is how many entity rows fit under the panel title.
func visibleRows(list box) int {
	usable := list.H - panelHeadH - rowGap
	if usable <= 0 {
		return 0
	}
	return int((usable + rowGap) / (rowHeight + rowGap))
}

// rowBox is the rectangle of the i-th visible row.
func rowBox(list box, i int) box {
	return box{
		X: list.X + spaceS,
		Y: list.Y + panelHeadH + float32(i)*(rowHeight+rowGap),
		W: list.W - 2*spaceS,
		H: rowHeight,
	}
}

// rowAt maps a pointer position to an entity index, given the scroll offset
// and the number of entities.
func rowAt(list box, offset, n int, x, y float32) (int, bool) {
	rows := visibleRows(list)
	for i := 0; i < rows && offset+i < n; i++ {
		if rowBox(list, i).contains(x, y) {
			return offset + i, true
		}
	}
	return 0, false
}

// scrollOffset keeps selected inside the visible window.
func scrollOffset(current, selected, n, rows int) int {
	if rows <= 0 || n <= rows {
		return 0
	}
	if selected < current {
		current = selected
	}
	if selected >= current+rows {
		current = selected - rows + 1
	}
	if current > n-rows {
		current = n - rows
	}
	if current < 0 {
		current = 0
	}
	return current
}

// heldForDigit maps the number row to the item catalogue: 0 empties the hand
// and 1..n pick catalogue entries in order.
func heldForDigit(d int) (items.ItemType, bool) {
	if d == 0 {
		return "", true
	}
	all := items.AllItemTypes()
	if d < 1 || d > len(all) {
		return "", false
	}
	return all[d-1], true
}

// kindForFunctionKey maps F1..Fn to the placeable structures in order.
func kindForFunctionKey(n int) (world.Kind, bool) {
	kinds := world.PlaceableKinds()
	if n < 1 || n > len(kinds) {
		return "", false
	}
	return kinds[n-1], true
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapText breaks s into lines no wider than limit, measured by measure.
func wrapText(s string, limit int32, measure func(string) int32) []string {
	if limit <= 0 || measure(s) <= limit {
		return []string{s}
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if line != "" && measure(candidate) > limit {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
