package gui

import (
	"testing"

	"github.com/appengine-ltd/fae-factory/internal/items"
	"github.com/appengine-ltd/fae-factory/internal/world"
)

func TestComputeLayoutStacksPanels(t *testing.T) {
	l := computeLayout(box{X: 0, Y: 0, W: 1280, H: 800})
	if l.Entities.Y != l.Detail.Y {
		t.Fatalf("expected list and detail to share a top edge, got %v %v", l.Entities, l.Detail)
	}
	if l.Log.Y <= l.Detail.Y+l.Detail.H {
		t.Fatalf("expected log below detail, got %v %v", l.Detail, l.Log)
	}
	if l.Input.Y+l.Input.H > l.Hints.Y {
		t.Fatalf("expected input above hints, got %v %v", l.Input, l.Hints)
	}
	if l.Entities.X+l.Entities.W >= l.Detail.X {
		t.Fatalf("expected a gap between list and detail")
	}
}

func TestRowAtHitsVisibleRows(t *testing.T) {
	list := box{X: 0, Y: 70, W: 742, H: 642}
	if got := visibleRows(list); got != 10 {
		t.Fatalf("expected 10 visible rows got %d", got)
	}
	if idx, ok := rowAt(list, 0, 5, 100, 120); !ok || idx != 0 {
		t.Fatalf("expected first row, got %d %v", idx, ok)
	}
	if idx, ok := rowAt(list, 2, 5, 100, 182); !ok || idx != 3 {
		t.Fatalf("expected scrolled second row to be index 3, got %d %v", idx, ok)
	}
	if _, ok := rowAt(list, 0, 5, 100, 168); ok {
		t.Fatalf("expected the gap between rows to miss")
	}
	if _, ok := rowAt(list, 0, 1, 100, 182); ok {
		t.Fatalf("expected rows past the entity count to miss")
	}
}

func TestScrollOffsetFollowsSelection(t *testing.T) {
	cases := []struct {
		current, selected, n, rows, want int
	}{
		{0, 12, 20, 10, 3},
		{5, 2, 20, 10, 2},
		{0, 3, 5, 10, 0},
		{15, 19, 20, 10, 10},
	}
	for _, tc := range cases {
		if got := scrollOffset(tc.current, tc.selected, tc.n, tc.rows); got != tc.want {
			t.Fatalf("scrollOffset(%d,%d,%d,%d): expected %d got %d", tc.current, tc.selected, tc.n, tc.rows, tc.want, got)
		}
	}
}

func TestWrapTextBreaksOnWords(t *testing.T) {
	measure := func(s string) int32 { return int32(len(s) * 10) }
	lines := wrapText("alpha beta gamma", 110, measure)
	if len(lines) != 2 || lines[0] != "alpha beta" || lines[1] != "gamma" {
		t.Fatalf("unexpected wrap: %q", lines)
	}
	if got := wrapText("short", 110, measure); len(got) != 1 {
		t.Fatalf("expected short text untouched, got %q", got)
	}
}

func TestKeyMappings(t *testing.T) {
	if it, ok := heldForDigit(1); !ok || it != items.Wood {
		t.Fatalf("expected 1 to hold wood, got %q", it)
	}
	if it, ok := heldForDigit(3); !ok || it != items.Stone {
		t.Fatalf("expected 3 to hold stone, got %q", it)
	}
	if it, ok := heldForDigit(0); !ok || it != "" {
		t.Fatalf("expected 0 to empty the hand, got %q", it)
	}
	if _, ok := heldForDigit(5); ok {
		t.Fatalf("expected 5 to be unmapped")
	}
	if k, ok := kindForFunctionKey(1); !ok || k != world.KindAssembler {
		t.Fatalf("expected F1 to build an assembler, got %q", k)
	}
	if k, ok := kindForFunctionKey(2); !ok || k != world.KindStorage {
		t.Fatalf("expected F2 to build storage, got %q", k)
	}
	if _, ok := kindForFunctionKey(6); ok {
		t.Fatalf("expected F6 to be unmapped")
	}
}
