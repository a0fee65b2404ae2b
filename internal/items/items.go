// Package items canonicalizes free-form item names and quantities so that
// every planner compares inventory, resources and requirements in one
// vocabulary: lowercase, single-space separated.
package items

import (
	"math"
	"strconv"
	"strings"
)

// Unspecified is the sentinel canonical name returned for empty or
// unusable input. It must never appear in a plan's resource list.
const Unspecified = "unspecified item"

// aliases maps common phrasings onto the catalog spelling. Applied before
// canonical collapsing, so values may still carry underscores.
var aliases = map[string]string{
	"wood pickaxe":  "wooden_pickaxe",
	"wood axe":      "wooden_axe",
	"wood sword":    "wooden_sword",
	"stone pick":    "stone_pickaxe",
	"iron pick":     "iron_pickaxe",
	"diamond pick":  "diamond_pickaxe",
	"meat":          "cooked_beef",
	"steak":         "cooked_beef",
	"food":          "cooked_beef",
	"workbench":     "crafting_table",
	"work bench":    "crafting_table",
	"smoker oven":   "smoker",
	"gold":          "gold_ingot",
	"iron":          "iron_ingot",
	"xp bottle":     "experience_bottle",
	"ender pearl":   "ender_pearl",
}

// Normalize returns the canonical form of an item name: trimmed,
// lowercased, with runs of whitespace, underscores and hyphens collapsed
// to single spaces. Empty input yields the Unspecified sentinel.
// Normalize is idempotent.
func Normalize(name string) string {
	c := collapse(name)
	if c == "" {
		return Unspecified
	}
	if alias, ok := aliases[c]; ok {
		c = collapse(alias)
	}
	return c
}

func collapse(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// IsUnspecified reports whether the canonical name is the sentinel.
func IsUnspecified(name string) bool {
	return Normalize(name) == Unspecified
}

// ResolveQuantity coerces x into a non-negative quantity. Numbers are
// clamped at zero; numeric strings are parsed in base 10; anything else
// (including NaN and infinities) yields the fallback.
func ResolveQuantity(x any, fallback float64) float64 {
	switch v := x.(type) {
	case int:
		return clampQty(float64(v))
	case int64:
		return clampQty(float64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fallback
		}
		return clampQty(v)
	case float32:
		return ResolveQuantity(float64(v), fallback)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return clampQty(float64(n))
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return clampQty(f)
		}
	}
	return fallback
}

// ResolveCount is ResolveQuantity truncated to an int.
func ResolveCount(x any, fallback int) int {
	return int(ResolveQuantity(x, float64(fallback)))
}

func clampQty(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

// DisplayName title-cases a canonical name for human-facing step text.
func DisplayName(canonical string) string {
	words := strings.Fields(canonical)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Requirement is one entry of a human-readable requirement list.
type Requirement struct {
	Name  string
	Count int
}

// FormatRequirements renders requirements as prose: "2 Stick, 1 Coal and
// 3 Iron Ingot". A zero or negative count is rendered without a number.
func FormatRequirements(reqs []Requirement) string {
	if len(reqs) == 0 {
		return "nothing"
	}
	parts := make([]string, 0, len(reqs))
	for _, r := range reqs {
		name := DisplayName(Normalize(r.Name))
		if r.Count > 0 {
			parts = append(parts, strconv.Itoa(r.Count)+" "+name)
		} else {
			parts = append(parts, name)
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}
