package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

// Commands lists the verbs the parser understands.
func (p *Parser) Commands() []CommandDef {
	return p.registry.Commands()
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command. Try help.", Options: nil}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised)
		if inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, craft, insert, withdraw, empty, build, select, cancel, tick.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		options := []Intent{
			{
				Raw:        raw,
				Normalised: cmdMatch.Canonical,
				Kind:       commandKind(cmdMatch.Canonical),
				Verb:       cmdMatch.Canonical,
				Confidence: cmdMatch.Score,
			},
			{
				Raw:        raw,
				Normalised: alternates[0].Canonical,
				Kind:       commandKind(alternates[0].Canonical),
				Verb:       alternates[0].Canonical,
				Confidence: alternates[0].Score,
			},
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt:  "Did you mean:",
			Options: options,
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	def, _ := p.registry.command(intent.Verb)
	if def.Quantity {
		var q *Quantity
		argsTokens, q = splitQuantity(argsTokens)
		intent.Quantity = q
	}
	argsTokens = targetFirst(def, argsTokens)

	resolvedArgs, clarify, argScore := p.resolveArgs(ctx, def, argsTokens)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolvedArgs
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))

	if intent.Kind == Command && len(intent.Args) < def.MinArgs {
		if def.MinArgs == 1 && len(intent.Args) == 0 {
			options := buildArgOptions(ctx, def, 5)
			if len(options) > 0 {
				intent.Clarify = &ClarifyQuestion{
					Prompt:  fmt.Sprintf("What should I %s?", def.Canonical),
					Options: options,
				}
				intent.Confidence = 0.46
				return intent
			}
		}
		intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs at least %d argument(s).", def.Canonical, def.MinArgs)}
		intent.Confidence = 0.42
		return intent
	}

	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "inventory", "look", "entities", "recipes", "events":
		return Query
	default:
		return Command
	}
}

func splitQuantity(tokens []string) ([]string, *Quantity) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tokens))
	var q *Quantity
	for _, token := range tokens {
		if q == nil {
			if candidate := parseQuantityToken(token); candidate != nil {
				q = candidate
				continue
			}
		}
		out = append(out, token)
	}
	return out, q
}

// targetFirst rewrites "wood from chest" into "chest wood" for verbs whose
// first argument is the entity.
func targetFirst(def CommandDef, tokens []string) []string {
	if len(def.Args) < 2 || def.Args[0] != ArgEntity || def.Args[1] != ArgItem {
		return tokens
	}
	for i := 1; i < len(tokens)-1; i++ {
		switch tokens[i] {
		case "from", "into", "in", "to", "at", "on":
			out := make([]string, 0, len(tokens)-1)
			out = append(out, tokens[i+1:]...)
			return append(out, tokens[:i]...)
		}
	}
	return tokens
}

func argKindAt(def CommandDef, pos int) ArgKind {
	if pos < len(def.Args) {
		return def.Args[pos]
	}
	if n := len(def.Args); n > 0 && def.Args[n-1] == ArgModifier {
		return ArgModifier
	}
	return ArgFree
}

func (p *Parser) resolveArgs(ctx ParseContext, def CommandDef, args []string) ([]string, *ClarifyQuestion, float64) {
	if len(args) == 0 {
		return nil, nil, 0.9
	}

	resolved := make([]string, 0, len(args))
	score := 0.9
	for i := 0; i < len(args); i++ {
		token := args[i]
		if isFiller(token) {
			continue
		}
		kind := argKindAt(def, len(resolved))

		switch kind {
		case ArgFree:
			resolved = append(resolved, token)
			score -= 0.02
			continue
		case ArgEntity:
			if isPronoun(token) {
				if strings.TrimSpace(ctx.LastEntity) == "" {
					return nil, &ClarifyQuestion{Prompt: "What does that pronoun refer to?"}, 0.4
				}
				resolved = append(resolved, normaliseInput(ctx.LastEntity))
				score -= 0.08
				continue
			}
			if ref := entityRef(token); ref != "" {
				resolved = append(resolved, ref)
				continue
			}
			if mapSelf(token) {
				resolved = append(resolved, "player")
				continue
			}
		case ArgItem:
			if token == "nothing" || token == "none" {
				resolved = append(resolved, "nothing")
				continue
			}
		case ArgModifier:
			if m := mapModifier(token); m != "" {
				resolved = append(resolved, m)
				continue
			}
		}

		vocab, boost := vocabulary(ctx, kind)
		joined, consumed := joinPhrase(kind, args[i:], vocab, boost)
		if alias := aliasFor(kind, joined); alias != "" {
			joined = alias
		}
		matches, confidence, tie := bestMatches(joined, vocab, boost, nil)
		if tie && len(matches) >= 2 {
			options := make([]Intent, 0, 2)
			for idx := 0; idx < 2; idx++ {
				optArgs := append(append([]string(nil), resolved...), matches[idx])
				options = append(options, Intent{
					Kind:       commandKind(def.Canonical),
					Verb:       def.Canonical,
					Args:       optArgs,
					Confidence: confidence - float64(idx)*0.01,
				})
			}
			return nil, &ClarifyQuestion{
				Prompt:  fmt.Sprintf("Did you mean %s?", def.Canonical),
				Options: options,
			}, 0.52
		}
		if len(matches) == 1 {
			resolved = append(resolved, matches[0])
			score = minScore(score, confidence)
			i += consumed - 1
			continue
		}

		resolved = append(resolved, token)
		score -= 0.02
	}
	return resolved, nil, clampScore(score)
}

// joinPhrase greedily joins up to three words when they name one thing,
// e.g. "wood to toy" or "crystal fairy".
func joinPhrase(kind ArgKind, args []string, vocab, boost []string) (string, int) {
	for n := 3; n >= 2; n-- {
		if n > len(args) {
			continue
		}
		try := strings.Join(args[:n], " ")
		if aliasFor(kind, try) != "" {
			return try, n
		}
		if _, s, _ := bestMatches(try, vocab, boost, nil); s > 0.9 {
			return try, n
		}
	}
	return args[0], 1
}

func aliasFor(kind ArgKind, phrase string) string {
	switch kind {
	case ArgEntity, ArgStructure:
		return mapStructureAlias(phrase)
	default:
		return ""
	}
}

func vocabulary(ctx ParseContext, kind ArgKind) ([]string, []string) {
	switch kind {
	case ArgEntity:
		return mergeUnique([]string{"player"}, ctx.Structures), mergeUnique(ctx.Entities, nil)
	case ArgItem:
		return mergeUnique(ctx.Items, nil), mergeUnique(ctx.Inventory, nil)
	case ArgRecipe:
		return mergeUnique(ctx.Recipes, nil), nil
	case ArgStructure:
		return mergeUnique(ctx.Structures, nil), nil
	case ArgModifier:
		return []string{"shift", "ctrl", "alt"}, nil
	default:
		return nil, nil
	}
}

func bestMatches(token string, all []string, nearbyBoost []string, inventoryBoost []string) ([]string, float64, bool) {
	if len(all) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}
	nearSet := make(map[string]bool, len(nearbyBoost))
	for _, n := range nearbyBoost {
		nearSet[n] = true
	}
	invSet := make(map[string]bool, len(inventoryBoost))
	for _, n := range inventoryBoost {
		invSet[n] = true
	}

	results := make([]scored, 0, len(all))
	for _, cand := range all {
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		if nearSet[cand] {
			score += 0.08
		}
		if invSet[cand] {
			score += 0.08
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func buildArgOptions(ctx ParseContext, def CommandDef, maxOptions int) []Intent {
	var pool []string
	switch argKindAt(def, 0) {
	case ArgEntity:
		pool = ctx.Entities
	case ArgItem:
		pool = ctx.Inventory
	case ArgRecipe:
		pool = ctx.Recipes
	case ArgStructure:
		pool = ctx.Structures
	}
	seen := map[string]bool{}
	options := make([]Intent, 0, maxOptions)
	for _, entity := range pool {
		n := normaliseInput(entity)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		options = append(options, Intent{
			Kind:       commandKind(def.Canonical),
			Verb:       def.Canonical,
			Args:       []string{n},
			Confidence: 0.88,
		})
		if len(options) >= maxOptions {
			break
		}
	}
	return options
}

func inferFreeTextIntent(ctx ParseContext, raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n,
		"what do i have", "what am i carrying", "what have i got", "check my bag", "my inventory", "open bag",
	) {
		return makeIntent(Query, "inventory", nil, 0.92)
	}
	if containsAnyPhrase(n, "what can i make", "what can i craft", "which recipes", "what recipes") {
		return makeIntent(Query, "recipes", nil, 0.9)
	}
	if containsAnyPhrase(n, "what happened", "what just happened", "show events") {
		return makeIntent(Query, "events", nil, 0.88)
	}
	if containsAnyPhrase(n, "what did i build", "show structures", "my factory") {
		return makeIntent(Query, "entities", nil, 0.88)
	}
	if containsAnyPhrase(n, "let time pass", "wait a bit", "wait a while", "fast forward") {
		return makeIntent(Command, "tick", nil, 0.84)
	}
	if containsAnyPhrase(n, "i want to quit", "i m done", "im done") {
		return makeIntent(Command, "quit", nil, 0.8)
	}

	if containsAnyPhrase(n, "i need a", "i want a", "i need an", "i want an", "put down a", "set up a") {
		if kind := findStructure(ctx, n); kind != "" {
			return makeIntent(Command, "build", []string{kind}, 0.82)
		}
	}

	if containsWord(n, "toy") || containsWord(n, "toys") {
		if recipe := findRecipe(ctx, n); recipe != "" {
			return makeIntent(Command, "craft", []string{recipe}, 0.8)
		}
		return makeIntent(Command, "craft", nil, 0.74)
	}

	return nil
}

// findStructure scans text for a structure kind or a known alias of one.
func findStructure(ctx ParseContext, normalised string) string {
	tokens := tokenise(normalised)
	vocab := mergeUnique(ctx.Structures, nil)
	for i := range tokens {
		joined, _ := joinPhrase(ArgStructure, tokens[i:], vocab, nil)
		if alias := mapStructureAlias(joined); alias != "" {
			return alias
		}
		if isFiller(joined) || len(joined) < 3 {
			continue
		}
		if m, s, tie := bestMatches(joined, vocab, nil, nil); !tie && len(m) == 1 && s >= 0.9 {
			return m[0]
		}
	}
	return ""
}

// findRecipe picks the recipe whose name starts with a material in text.
func findRecipe(ctx ParseContext, normalised string) string {
	vocab := mergeUnique(ctx.Recipes, nil)
	for _, token := range tokenise(normalised) {
		if isFiller(token) || token == "toy" || token == "toys" || len(token) < 3 {
			continue
		}
		if m, s, tie := bestMatches(token, vocab, nil, nil); !tie && len(m) == 1 && s >= 0.9 {
			return m[0]
		}
	}
	return ""
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func containsWord(value, word string) bool {
	w := normaliseInput(word)
	if w == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+w+" ")
}

func mergeUnique(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	add := func(list []string) {
		for _, v := range list {
			n := normaliseInput(v)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	add(a)
	add(b)
	return out
}

func minScore(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	for _, arg := range intent.Args {
		n := normaliseInput(arg)
		if n != "" {
			args = append(args, n)
		}
	}
	if intent.Quantity != nil && intent.Quantity.Raw != "" {
		args = append(args, normaliseInput(intent.Quantity.Raw))
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
