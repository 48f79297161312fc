package items

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Stack is an (item type, amount) pair.
type Stack struct {
	Type   ItemType `json:"type" yaml:"type"`
	Amount uint32   `json:"amount" yaml:"amount"`
}

func NewStack(t ItemType, amount uint32) Stack {
	return Stack{Type: t, Amount: amount}
}

func (s Stack) String() string {
	return fmt.Sprintf("%s %d", s.Type, s.Amount)
}

func Types(stacks []Stack) []ItemType {
	out := make([]ItemType, 0, len(stacks))
	seen := make(map[ItemType]bool, len(stacks))
	for _, st := range stacks {
		if seen[st.Type] {
			continue
		}
		seen[st.Type] = true
		out = append(out, st.Type)
	}
	return out
}

func CloneStacks(stacks []Stack) []Stack {
	if stacks == nil {
		return nil
	}
	out := make([]Stack, len(stacks))
	copy(out, stacks)
	return out
}

// HasDuplicateTypes reports whether any item type appears twice in the list.
func HasDuplicateTypes(stacks []Stack) bool {
	seen := make(map[ItemType]bool, len(stacks))
	for _, st := range stacks {
		if seen[st.Type] {
			return true
		}
		seen[st.Type] = true
	}
	return false
}

// sumStacks folds repeated types together so one request cannot claim the
// same stock twice.
func sumStacks(stacks []Stack) map[ItemType]uint64 {
	totals := make(map[ItemType]uint64, len(stacks))
	for _, st := range stacks {
		totals[st.Type] += uint64(st.Amount)
	}
	return totals
}

func saturatingAdd(a uint32, b uint64) uint32 {
	sum := uint64(a) + b
	if sum > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(sum)
}

func sortStacks(stacks []Stack) {
	sort.SliceStable(stacks, func(i, j int) bool {
		ri, rj := catalogRank(stacks[i].Type), catalogRank(stacks[j].Type)
		if ri != rj {
			return ri < rj
		}
		return stacks[i].Type < stacks[j].Type
	})
}

func FormatStacks(stacks []Stack) string {
	if len(stacks) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(stacks))
	for _, st := range stacks {
		parts = append(parts, st.String())
	}
	return strings.Join(parts, ", ")
}
