package items

import "errors"

var (
	ErrSameInventory = errors.New("source and destination are the same inventory")
	ErrNilInventory  = errors.New("inventory is nil")
)

func checkPair(src, dst *Inventory) error {
	if src == nil || dst == nil {
		return ErrNilInventory
	}
	if src == dst {
		return ErrSameInventory
	}
	return nil
}

// TryEmptyInto moves every stack that src may release and dst may accept.
// Anything else stays in src untouched.
func TryEmptyInto(src, dst *Inventory) ([]Stack, error) {
	if err := checkPair(src, dst); err != nil {
		return nil, err
	}
	moved := make([]Stack, 0, src.Len())
	for _, st := range src.PullableItems(src.Stacks()) {
		if !dst.inputFilter.Allows(st.Type) || !dst.HasRoomFor(st.Type) {
			continue
		}
		dst.AddItems([]Stack{st})
		moved = append(moved, st)
	}
	src.RemoveItems(moved)
	return moved, nil
}

// ForceEmptyInto moves everything regardless of filters or capacity.
func ForceEmptyInto(src, dst *Inventory) ([]Stack, error) {
	if err := checkPair(src, dst); err != nil {
		return nil, err
	}
	moved := src.Stacks()
	dst.AddItems(moved)
	src.RemoveItems(moved)
	return moved, nil
}

// Insert moves amount of t from a holder (player) into a filtered receiver.
func Insert(src, dst *Inventory, t ItemType, amount uint32) (bool, error) {
	if err := checkPair(src, dst); err != nil {
		return false, err
	}
	if amount == 0 || !dst.CanAddItems([]ItemType{t}) || !dst.HasRoomFor(t) {
		return false, nil
	}
	stack := []Stack{{Type: t, Amount: amount}}
	if !src.RemoveItems(stack) {
		return false, nil
	}
	dst.AddItems(stack)
	return true, nil
}

// Withdraw pulls amount of t out of a filtered holder (structure) into dst.
func Withdraw(src, dst *Inventory, t ItemType, amount uint32) (bool, error) {
	if err := checkPair(src, dst); err != nil {
		return false, err
	}
	if amount == 0 || !src.outputFilter.Allows(t) {
		return false, nil
	}
	if !dst.CanAddItems([]ItemType{t}) || !dst.HasRoomFor(t) {
		return false, nil
	}
	stack := []Stack{{Type: t, Amount: amount}}
	if !src.RemoveItems(stack) {
		return false, nil
	}
	dst.AddItems(stack)
	return true, nil
}
