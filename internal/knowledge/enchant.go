package knowledge

import "sort"

// OptimizeOrder orders enchantment ids to keep anvil work cheap: heavier
// enchantments go first, and each later slot carries a cumulative
// penalty of 2^index - 1. The penalty is a heuristic, not the exact
// anvil formula; the returned cost is only comparable between orderings.
func (c EnchantCatalog) OptimizeOrder(ids []string) ([]string, int) {
	ordered := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, id)
	}
	weight := func(id string) int {
		if def, ok := c.ByID[id]; ok {
			return def.Weight
		}
		return 1
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		wi, wj := weight(ordered[i]), weight(ordered[j])
		if wi != wj {
			return wi > wj
		}
		return ordered[i] < ordered[j]
	})
	cost := 0
	for i, id := range ordered {
		cost += weight(id) + (1 << i) - 1
	}
	return ordered, cost
}
