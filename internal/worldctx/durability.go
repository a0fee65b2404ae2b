package worldctx

import "github.com/mikeychann-hash/FGD-sub000/internal/items"

// ToolIntegrity aggregates durability telemetry for one tool. Origin
// names the source the reading came from.
type ToolIntegrity struct {
	Durability    int
	MaxDurability int
	Percent       float64
	Broken        bool
	Origin        string
}

// ResolveToolIntegrity looks up durability for a tool in a fixed
// precedence: bridge equipment telemetry first, then inventory slot
// readings. Returns nil when no source reports the tool.
func ResolveToolIntegrity(tool string, ctx *Context) *ToolIntegrity {
	want := items.Normalize(tool)
	if want == items.Unspecified || ctx == nil {
		return nil
	}

	if ctx.Bridge != nil {
		for name, wear := range ctx.Bridge.EquipmentDurability {
			if items.Normalize(name) != want {
				continue
			}
			return integrityFrom(wear.Durability, wear.MaxDurability, "bridge")
		}
	}

	for _, s := range ExtractInventory(ctx) {
		if s.Name != want || s.MaxDurability <= 0 {
			continue
		}
		return integrityFrom(s.Durability, s.MaxDurability, "inventory")
	}
	return nil
}

func integrityFrom(durability, max int, origin string) *ToolIntegrity {
	if durability < 0 {
		durability = 0
	}
	ti := &ToolIntegrity{Durability: durability, MaxDurability: max, Origin: origin}
	if max > 0 {
		ti.Percent = float64(durability) / float64(max)
	}
	ti.Broken = durability <= 0 || (max > 0 && ti.Percent <= 0.02)
	return ti
}
