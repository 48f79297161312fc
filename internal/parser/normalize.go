package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '#' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' || r == '+' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	switch token {
	case "all", "everything", "stack":
		return &Quantity{Raw: token, N: -1, Unit: "all"}
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	if strings.HasSuffix(token, "ms") {
		if v, err := strconv.Atoi(strings.TrimSuffix(token, "ms")); err == nil && v >= 0 {
			return &Quantity{Raw: token, N: v, Unit: "millis"}
		}
	}
	if strings.HasSuffix(token, "s") || strings.HasSuffix(token, "sec") || strings.HasSuffix(token, "secs") {
		n := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(token, "secs"), "sec"), "s")
		if v, err := strconv.Atoi(n); err == nil && v >= 0 {
			return &Quantity{Raw: token, N: v, Unit: "seconds"}
		}
	}
	if strings.HasSuffix(token, "m") || strings.HasSuffix(token, "min") || strings.HasSuffix(token, "mins") {
		n := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(token, "mins"), "min"), "m")
		if v, err := strconv.Atoi(n); err == nil && v >= 0 {
			return &Quantity{Raw: token, N: v, Unit: "minutes"}
		}
	}
	return nil
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "them", "this", "there":
		return true
	default:
		return false
	}
}

// isFiller reports tokens that carry no argument meaning.
func isFiller(token string) bool {
	switch token {
	case "a", "an", "the", "some", "into", "in", "from", "out", "of", "with", "on", "at", "to":
		return true
	default:
		return false
	}
}

// entityRef turns "#3" or "3" into the canonical "#3" form.
func entityRef(token string) string {
	digits := strings.TrimPrefix(token, "#")
	if digits == "" {
		return ""
	}
	if n, err := strconv.Atoi(digits); err != nil || n <= 0 {
		return ""
	}
	return "#" + digits
}

func mapSelf(token string) bool {
	switch token {
	case "me", "self", "myself", "player", "my", "mine":
		return true
	default:
		return false
	}
}

func mapModifier(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "shift", "sh":
		return "shift"
	case "ctrl", "control", "ctl":
		return "ctrl"
	case "alt", "option", "opt":
		return "alt"
	default:
		return ""
	}
}

// mapStructureAlias maps everyday words onto structure kinds.
func mapStructureAlias(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "chest", "box", "crate":
		return "storage"
	case "crafter", "machine", "workbench", "bench":
		return "assembler"
	case "lumber fairy", "tree fairy":
		return "wood fairy"
	case "rock fairy", "quarry fairy":
		return "stone fairy"
	case "gem fairy":
		return "crystal fairy"
	default:
		return ""
	}
}
