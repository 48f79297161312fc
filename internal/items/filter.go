package items

import "strings"

type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterOnly
	FilterExcept
	FilterNone
)

func (k FilterKind) String() string {
	switch k {
	case FilterAll:
		return "all"
	case FilterOnly:
		return "only"
	case FilterExcept:
		return "except"
	case FilterNone:
		return "none"
	default:
		return "unknown"
	}
}

// Filter is a directional rule deciding which item types may cross an
// inventory boundary. The zero value allows everything.
type Filter struct {
	kind  FilterKind
	types []ItemType
}

func AllowAll() Filter {
	return Filter{kind: FilterAll}
}

func AllowNone() Filter {
	return Filter{kind: FilterNone}
}

func Only(types ...ItemType) Filter {
	return Filter{kind: FilterOnly, types: dedupeTypes(types)}
}

func Except(types ...ItemType) Filter {
	return Filter{kind: FilterExcept, types: dedupeTypes(types)}
}

func (f Filter) Kind() FilterKind {
	return f.kind
}

func (f Filter) Types() []ItemType {
	out := make([]ItemType, len(f.types))
	copy(out, f.types)
	return out
}

func (f Filter) Allows(t ItemType) bool {
	switch f.kind {
	case FilterAll:
		return true
	case FilterOnly:
		return f.contains(t)
	case FilterExcept:
		return !f.contains(t)
	default:
		return false
	}
}

func (f Filter) AllowsAll(types []ItemType) bool {
	for _, t := range types {
		if !f.Allows(t) {
			return false
		}
	}
	return true
}

func (f Filter) contains(t ItemType) bool {
	for _, candidate := range f.types {
		if candidate == t {
			return true
		}
	}
	return false
}

func (f Filter) String() string {
	switch f.kind {
	case FilterOnly, FilterExcept:
		names := make([]string, 0, len(f.types))
		for _, t := range f.types {
			names = append(names, string(t))
		}
		return f.kind.String() + "(" + strings.Join(names, ",") + ")"
	default:
		return f.kind.String()
	}
}

func dedupeTypes(types []ItemType) []ItemType {
	out := make([]ItemType, 0, len(types))
	seen := make(map[ItemType]bool, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
