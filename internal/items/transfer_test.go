package items

import (
	"errors"
	"reflect"
	"testing"
)

func TestTryEmptyIntoHonoursBothFilters(t *testing.T) {
	src := NewInventory(2, NewStack(Wood, 2), NewStack(Toy, 3))
	src.FilterForInputs([]ItemType{Wood})
	dst := NewInventory(10, NewStack(Stone, 1))

	moved, err := TryEmptyInto(src, dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(moved, []Stack{{Toy, 3}}) {
		t.Fatalf("expected only toy to move, got %v", moved)
	}
	if src.Amount(Wood) != 2 || src.Amount(Toy) != 0 {
		t.Fatalf("expected filtered wood to stay in source, got %v", src.Stacks())
	}
	if dst.Amount(Toy) != 3 {
		t.Fatalf("expected toy 3 in destination, got %d", dst.Amount(Toy))
	}

	blocked := NewInventory(10)
	blocked.SetFilters(Except(Toy), AllowAll())
	src.ClearFilters()
	src.AddItems([]Stack{{Toy, 1}})
	moved, err = TryEmptyInto(src, blocked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(moved, []Stack{{Wood, 2}}) {
		t.Fatalf("expected destination filter to keep toy out, got %v", moved)
	}
	if blocked.Amount(Toy) != 0 || src.Amount(Toy) != 1 {
		t.Fatalf("expected toy to remain in source")
	}
}

func TestTryEmptyIntoRespectsSlotCapacity(t *testing.T) {
	src := NewInventory(0, NewStack(Wood, 1), NewStack(Stone, 1), NewStack(Toy, 1))
	dst := NewInventory(2, NewStack(Toy, 4))
	moved, err := TryEmptyInto(src, dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moved) != 2 {
		t.Fatalf("expected two stacks to fit, got %v", moved)
	}
	if dst.Len() != 2 || src.Len() != 1 {
		t.Fatalf("expected one stack left behind, src=%v dst=%v", src.Stacks(), dst.Stacks())
	}
}

func TestForceEmptyIntoIgnoresFilters(t *testing.T) {
	src := NewInventory(2, NewStack(Wood, 2), NewStack(Toy, 3))
	src.FilterForInputs([]ItemType{Wood})
	dst := NewInventory(1)
	dst.FilteredOnlyRemove()

	moved, err := ForceEmptyInto(src, dst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(moved) != 2 || !src.IsEmpty() {
		t.Fatalf("expected everything to move, moved=%v left=%v", moved, src.Stacks())
	}
	if dst.Amount(Wood) != 2 || dst.Amount(Toy) != 3 {
		t.Fatalf("unexpected destination contents %v", dst.Stacks())
	}
}

func TestTransfersRejectAliasing(t *testing.T) {
	inv := NewInventory(4, NewStack(Wood, 2))
	if _, err := TryEmptyInto(inv, inv); !errors.Is(err, ErrSameInventory) {
		t.Fatalf("expected ErrSameInventory got %v", err)
	}
	if _, err := ForceEmptyInto(inv, inv); !errors.Is(err, ErrSameInventory) {
		t.Fatalf("expected ErrSameInventory got %v", err)
	}
	if _, err := Insert(inv, inv, Wood, 1); !errors.Is(err, ErrSameInventory) {
		t.Fatalf("expected ErrSameInventory got %v", err)
	}
	if _, err := Withdraw(inv, nil, Wood, 1); !errors.Is(err, ErrNilInventory) {
		t.Fatalf("expected ErrNilInventory got %v", err)
	}
	if inv.Amount(Wood) != 2 {
		t.Fatalf("expected contents untouched, got %d", inv.Amount(Wood))
	}
}

func TestInsertGatedByReceiver(t *testing.T) {
	player := NewInventory(10, NewStack(Wood, 1), NewStack(Toy, 1))
	assembler := NewInventory(2)
	assembler.FilterForInputs([]ItemType{Wood})

	ok, err := Insert(player, assembler, Toy, 1)
	if err != nil || ok {
		t.Fatalf("expected toy insert to be rejected, ok=%v err=%v", ok, err)
	}
	ok, err = Insert(player, assembler, Wood, 2)
	if err != nil || ok {
		t.Fatalf("expected insert beyond stock to fail, ok=%v err=%v", ok, err)
	}
	ok, err = Insert(player, assembler, Wood, 1)
	if err != nil || !ok {
		t.Fatalf("expected wood insert to succeed, ok=%v err=%v", ok, err)
	}
	if player.Amount(Wood) != 0 || assembler.Amount(Wood) != 1 {
		t.Fatalf("unexpected contents player=%v assembler=%v", player.Stacks(), assembler.Stacks())
	}
}

func TestWithdrawGatedBySource(t *testing.T) {
	assembler := NewInventory(2, NewStack(Wood, 1), NewStack(Toy, 2))
	assembler.FilterForInputs([]ItemType{Wood})
	player := NewInventory(10)

	if ok, _ := Withdraw(assembler, player, Wood, 1); ok {
		t.Fatalf("expected recipe input withdrawal to be refused")
	}
	if ok, _ := Withdraw(assembler, player, Toy, 1); !ok {
		t.Fatalf("expected toy withdrawal to succeed")
	}
	if assembler.Amount(Toy) != 1 || player.Amount(Toy) != 1 {
		t.Fatalf("unexpected contents assembler=%v player=%v", assembler.Stacks(), player.Stacks())
	}
}
