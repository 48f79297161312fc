package parser

import "time"

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

type Quantity struct {
	Raw  string
	N    int
	Unit string
}

// Duration converts a time quantity. Counts and "all" yield zero.
func (q *Quantity) Duration() time.Duration {
	if q == nil {
		return 0
	}
	switch q.Unit {
	case "millis":
		return time.Duration(q.N) * time.Millisecond
	case "seconds":
		return time.Duration(q.N) * time.Second
	case "minutes":
		return time.Duration(q.N) * time.Minute
	default:
		return 0
	}
}

// All reports whether the quantity asked for everything.
func (q *Quantity) All() bool {
	return q != nil && q.Unit == "all"
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Quantity   *Quantity
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext carries the vocabulary of the running factory. Names are
// matched after normalisation, so "wood-fairy" and "wood fairy" are equal.
type ParseContext struct {
	Items      []string
	Recipes    []string
	Structures []string
	// Entities lists the structure kinds currently standing in the world.
	Entities []string
	// Inventory lists item types the player carries; they win ties.
	Inventory  []string
	LastEntity string
}

// ArgKind tells the resolver which vocabulary an argument position uses.
type ArgKind int

const (
	ArgFree ArgKind = iota
	ArgEntity
	ArgItem
	ArgRecipe
	ArgStructure
	ArgModifier
)

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	HandlerKey string
	Args       []ArgKind
	// Quantity allows one numeric, duration or "all" token anywhere in the args.
	Quantity bool
}
