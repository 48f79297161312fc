package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if c.HandlerKey == "" {
		c.HandlerKey = c.Canonical
	}
	r.commands[c.Canonical] = c

	r.phrases = append(r.phrases, commandPhrase{
		canonical: c.Canonical,
		alias:     c.Canonical,
		tokens:    tokenise(c.Canonical),
	})
	for _, a := range c.Aliases {
		n := normaliseInput(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	canonical = normaliseInput(canonical)
	cmd, ok := r.commands[canonical]
	return cmd, ok
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    string
}

func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	in := strings.Join(tokens, " ")
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if len(phrase.tokens) == 0 {
			continue
		}
		consumed := min(len(tokens), len(phrase.tokens))
		prefix := strings.Join(tokens[:consumed], " ")

		if consumed == len(phrase.tokens) && prefix == phrase.alias {
			score := 1.0
			source := "exact"
			if phrase.alias != phrase.canonical {
				score = 0.97
				source = "alias"
			}
			cands = append(cands, commandCandidate{
				Canonical: phrase.canonical,
				Alias:     phrase.alias,
				Consumed:  consumed,
				Score:     score,
				Source:    source,
			})
			continue
		}

		if len(phrase.tokens) == 1 && strings.HasPrefix(phrase.alias, tokens[0]) && len(tokens[0]) >= 2 {
			cands = append(cands, commandCandidate{
				Canonical: phrase.canonical,
				Alias:     phrase.alias,
				Consumed:  1,
				Score:     0.9,
				Source:    "prefix",
			})
			continue
		}

		// Fuzzy: only when there was no exact/prefix hit for this phrase.
		cut := consumed
		compare := prefix
		if len(phrase.tokens) > 1 && len(tokens) >= len(phrase.tokens) {
			cut = len(phrase.tokens)
			compare = strings.Join(tokens[:cut], " ")
		}
		if cut == 0 || compare == "" {
			continue
		}
		if len(compare) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(compare, phrase.alias)
		limit := levenshteinLimit(len(phrase.alias))
		if dist > limit {
			continue
		}
		score := 0.72 - (0.08 * float64(dist))
		if strings.Contains(in, phrase.alias) {
			score += 0.04
		}
		if phrase.alias != phrase.canonical {
			score += 0.03
		}
		cands = append(cands, commandCandidate{
			Canonical: phrase.canonical,
			Alias:     phrase.alias,
			Consumed:  cut,
			Score:     score,
			Source:    "lev",
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			if cands[i].Consumed == cands[j].Consumed {
				return cands[i].Canonical < cands[j].Canonical
			}
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Score > cands[j].Score
	})

	if len(cands) == 0 {
		return commandCandidate{}, nil
	}
	best := cands[0]
	alts := make([]commandCandidate, 0, 4)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) >= 4 {
			break
		}
	}
	return best, alts
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "?"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "help"},
		{Canonical: "inventory", Aliases: []string{"inv", "bag", "my bag", "contents"}, MinArgs: 0, MaxArgs: 1, HandlerKey: "inventory", Args: []ArgKind{ArgEntity}},
		{Canonical: "look", Aliases: []string{"l", "status", "inspect", "examine"}, MinArgs: 0, MaxArgs: 1, HandlerKey: "look", Args: []ArgKind{ArgEntity}},
		{Canonical: "entities", Aliases: []string{"ls", "list", "structures", "buildings"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "entities"},
		{Canonical: "recipes", Aliases: []string{"research", "known recipes"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "recipes"},
		{Canonical: "events", Aliases: []string{"log", "history"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "events"},
		{Canonical: "tick", Aliases: []string{"wait", "advance", "step", "pass time"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "tick", Quantity: true},

		{Canonical: "craft", Aliases: []string{"make", "assemble"}, MinArgs: 0, MaxArgs: 2, HandlerKey: "craft", Args: []ArgKind{ArgRecipe, ArgFree}},
		{Canonical: "assign", Aliases: []string{"set recipe", "configure"}, MinArgs: 2, MaxArgs: 3, HandlerKey: "assign", Args: []ArgKind{ArgEntity, ArgRecipe, ArgFree}},
		{Canonical: "cancel", Aliases: []string{"stop", "x", "abort"}, MinArgs: 0, MaxArgs: 1, HandlerKey: "cancel", Args: []ArgKind{ArgEntity}},
		{Canonical: "select", Aliases: []string{"cycle", "next recipe", "switch"}, MinArgs: 1, MaxArgs: 1, HandlerKey: "select", Args: []ArgKind{ArgEntity}},
		{Canonical: "hold", Aliases: []string{"equip", "wield", "carry"}, MinArgs: 1, MaxArgs: 1, HandlerKey: "hold", Args: []ArgKind{ArgItem}},
		{Canonical: "insert", Aliases: []string{"put", "give", "feed", "load"}, MinArgs: 1, MaxArgs: 2, HandlerKey: "insert", Args: []ArgKind{ArgEntity, ArgItem}, Quantity: true},
		{Canonical: "withdraw", Aliases: []string{"take", "get", "grab", "pick up"}, MinArgs: 1, MaxArgs: 2, HandlerKey: "withdraw", Args: []ArgKind{ArgEntity, ArgItem}},
		{Canonical: "empty", Aliases: []string{"loot", "collect", "drain"}, MinArgs: 1, MaxArgs: 1, HandlerKey: "empty", Args: []ArgKind{ArgEntity}},
		{Canonical: "click", MinArgs: 1, MaxArgs: 4, HandlerKey: "click", Args: []ArgKind{ArgEntity, ArgModifier}},
		{Canonical: "build", Aliases: []string{"place", "construct"}, MinArgs: 1, MaxArgs: 1, HandlerKey: "build", Args: []ArgKind{ArgStructure}},
		{Canonical: "remove", Aliases: []string{"demolish", "destroy", "dismantle"}, MinArgs: 1, MaxArgs: 2, HandlerKey: "remove", Args: []ArgKind{ArgEntity, ArgFree}},
		{Canonical: "unlock", Aliases: []string{"learn"}, MinArgs: 1, MaxArgs: 1, HandlerKey: "unlock", Args: []ArgKind{ArgRecipe}},
		{Canonical: "lock", Aliases: []string{"forget"}, MinArgs: 1, MaxArgs: 1, HandlerKey: "lock", Args: []ArgKind{ArgRecipe}},
		{Canonical: "quit", Aliases: []string{"exit", "q"}, MinArgs: 0, MaxArgs: 0, HandlerKey: "quit"},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}

// Commands lists the canonical verbs in registration order.
func (r *Registry) Commands() []CommandDef {
	out := make([]CommandDef, 0, len(r.commands))
	seen := make(map[string]bool, len(r.commands))
	for _, phrase := range r.phrases {
		if seen[phrase.canonical] {
			continue
		}
		seen[phrase.canonical] = true
		out = append(out, r.commands[phrase.canonical])
	}
	return out
}
