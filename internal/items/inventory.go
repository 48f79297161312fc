package items

// Discovery summary:
// - Amounts are unsigned and every decrement is preceded by a stock check, so counts never go negative.
// - Filters only gate external transfers; crafters and spawners use AddItems/RemoveItems directly.
// - SlotCapacity bounds distinct item types created by filtered transfers only (0 = unbounded).
type Inventory struct {
	items        map[ItemType]uint32
	SlotCapacity int
	inputFilter  Filter
	outputFilter Filter
}

func NewInventory(slots int, seed ...Stack) *Inventory {
	inv := &Inventory{
		items:        make(map[ItemType]uint32),
		SlotCapacity: slots,
		inputFilter:  AllowAll(),
		outputFilter: AllowAll(),
	}
	inv.AddItems(seed)
	return inv
}

func (inv *Inventory) HasItem(t ItemType, amount uint32) bool {
	if inv == nil {
		return amount == 0
	}
	return inv.items[t] >= amount
}

func (inv *Inventory) HasItems(stacks []Stack) bool {
	if inv == nil {
		return len(stacks) == 0
	}
	for t, want := range sumStacks(stacks) {
		if uint64(inv.items[t]) < want {
			return false
		}
	}
	return true
}

// AddItems increments stock for every stack. It never fails and ignores
// filters and slot capacity; amounts saturate at the uint32 maximum.
func (inv *Inventory) AddItems(stacks []Stack) {
	if inv == nil {
		return
	}
	if inv.items == nil {
		inv.items = make(map[ItemType]uint32)
	}
	for _, st := range stacks {
		if st.Amount == 0 {
			continue
		}
		inv.items[st.Type] = saturatingAdd(inv.items[st.Type], uint64(st.Amount))
	}
}

// RemoveItems removes every stack or nothing at all.
func (inv *Inventory) RemoveItems(stacks []Stack) bool {
	if inv == nil {
		return len(stacks) == 0
	}
	if !inv.HasItems(stacks) {
		return false
	}
	for t, amount := range sumStacks(stacks) {
		if amount == 0 {
			continue
		}
		remaining := inv.items[t] - uint32(amount)
		if remaining == 0 {
			delete(inv.items, t)
			continue
		}
		inv.items[t] = remaining
	}
	return true
}

// RemoveIfPossible removes up to the requested amount of each stack
// independently and reports what was actually taken.
func (inv *Inventory) RemoveIfPossible(stacks []Stack) []Stack {
	if inv == nil {
		return nil
	}
	removed := make([]Stack, 0, len(stacks))
	for _, st := range stacks {
		have := inv.items[st.Type]
		take := min(have, st.Amount)
		if take == 0 {
			continue
		}
		if have == take {
			delete(inv.items, st.Type)
		} else {
			inv.items[st.Type] = have - take
		}
		removed = append(removed, Stack{Type: st.Type, Amount: take})
	}
	return removed
}

func (inv *Inventory) CanAddItems(types []ItemType) bool {
	if inv == nil {
		return false
	}
	return inv.inputFilter.AllowsAll(types)
}

func (inv *Inventory) PullableItems(stacks []Stack) []Stack {
	if inv == nil {
		return nil
	}
	out := make([]Stack, 0, len(stacks))
	for _, st := range stacks {
		if inv.outputFilter.Allows(st.Type) {
			out = append(out, st)
		}
	}
	return out
}

// HasRoomFor reports whether a filtered transfer may place t here without
// exceeding SlotCapacity distinct types.
func (inv *Inventory) HasRoomFor(t ItemType) bool {
	if inv == nil {
		return false
	}
	if inv.SlotCapacity <= 0 || inv.items[t] > 0 {
		return true
	}
	return len(inv.items) < inv.SlotCapacity
}

// FilterForInputs only accepts the given types and only releases everything else.
func (inv *Inventory) FilterForInputs(types []ItemType) {
	if inv == nil {
		return
	}
	inv.inputFilter = Only(types...)
	inv.outputFilter = Except(types...)
}

func (inv *Inventory) ClearFilters() {
	if inv == nil {
		return
	}
	inv.inputFilter = AllowAll()
	inv.outputFilter = AllowAll()
}

func (inv *Inventory) FilteredOnlyRemove() {
	if inv == nil {
		return
	}
	inv.inputFilter = AllowNone()
	inv.outputFilter = AllowAll()
}

func (inv *Inventory) SetFilters(input, output Filter) {
	if inv == nil {
		return
	}
	inv.inputFilter = input
	inv.outputFilter = output
}

func (inv *Inventory) InputFilter() Filter {
	if inv == nil {
		return AllowNone()
	}
	return inv.inputFilter
}

func (inv *Inventory) OutputFilter() Filter {
	if inv == nil {
		return AllowNone()
	}
	return inv.outputFilter
}

func (inv *Inventory) Amount(t ItemType) uint32 {
	if inv == nil {
		return 0
	}
	return inv.items[t]
}

// Stacks returns a copy of the contents in catalog order.
func (inv *Inventory) Stacks() []Stack {
	if inv == nil || len(inv.items) == 0 {
		return nil
	}
	out := make([]Stack, 0, len(inv.items))
	for t, amount := range inv.items {
		out = append(out, Stack{Type: t, Amount: amount})
	}
	sortStacks(out)
	return out
}

func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.items)
}

func (inv *Inventory) IsEmpty() bool {
	return inv.Len() == 0
}

func (inv *Inventory) String() string {
	if inv == nil {
		return "inventory unavailable"
	}
	return FormatStacks(inv.Stacks())
}
