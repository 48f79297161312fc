package items

import (
	"fmt"
	"strings"
)

type ItemType string

const (
	Wood    ItemType = "wood"
	Stone   ItemType = "stone"
	Crystal ItemType = "crystal"
	Toy     ItemType = "toy"
)

type ItemCategory string

const (
	CategoryRaw     ItemCategory = "raw"
	CategoryProduct ItemCategory = "product"
)

type ItemDefinition struct {
	ID          ItemType     `json:"id"`
	Name        string       `json:"name"`
	Category    ItemCategory `json:"category"`
	Description string       `json:"description"`
}

var (
	definitions = []ItemDefinition{
		{ID: Wood, Name: "Wood", Category: CategoryRaw, Description: "Logs gathered by wood fairies."},
		{ID: Crystal, Name: "Crystal", Category: CategoryRaw, Description: "Shards gathered by crystal fairies."},
		{ID: Stone, Name: "Stone", Category: CategoryRaw, Description: "Rough stone gathered by stone fairies."},
		{ID: Toy, Name: "Toy", Category: CategoryProduct, Description: "A finished toy assembled from raw materials."},
	}
	catalogIndex = buildCatalogIndex(definitions)
)

func buildCatalogIndex(defs []ItemDefinition) map[ItemType]int {
	index := make(map[ItemType]int, len(defs))
	for i, def := range defs {
		if _, dup := index[def.ID]; dup {
			panic(fmt.Sprintf("items: duplicate definition for %q", def.ID))
		}
		index[def.ID] = i
	}
	return index
}

// DefinitionFor fetches the catalog entry for an item type.
func DefinitionFor(t ItemType) (ItemDefinition, bool) {
	i, ok := catalogIndex[t]
	if !ok {
		return ItemDefinition{}, false
	}
	return definitions[i], true
}

// Definitions returns every catalog entry in catalog order.
func Definitions() []ItemDefinition {
	out := make([]ItemDefinition, len(definitions))
	copy(out, definitions)
	return out
}

func AllItemTypes() []ItemType {
	out := make([]ItemType, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def.ID)
	}
	return out
}

func ParseItemType(raw string) (ItemType, error) {
	t := ItemType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown item type: %q", raw)
	}
	return t, nil
}

func (t ItemType) Valid() bool {
	_, ok := catalogIndex[t]
	return ok
}

func (t ItemType) String() string {
	return string(t)
}

func (t ItemType) DisplayName() string {
	if def, ok := DefinitionFor(t); ok {
		return def.Name
	}
	return string(t)
}

// catalogRank orders unknown types after every catalog entry.
func catalogRank(t ItemType) int {
	if i, ok := catalogIndex[t]; ok {
		return i
	}
	return len(definitions)
}
