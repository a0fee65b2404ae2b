// Package worldctx adapts the loose world/agent context that arrives with
// a plan request into the typed views the planners consume: inventory,
// position, environmental signals, tool durability, squad and traits.
// Every extractor returns a well-typed empty value instead of failing.
package worldctx

import (
	"encoding/json"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
)

// Vec3 is a world position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ItemStack is one inventory slot. On the wire it may be a bare item name
// or a {name,count,...} record.
type ItemStack struct {
	Name          string `json:"name"`
	Count         int    `json:"count"`
	Durability    int    `json:"durability,omitempty"`
	MaxDurability int    `json:"max_durability,omitempty"`
}

type itemStackRecord struct {
	Name          string `json:"name"`
	Count         *int   `json:"count"`
	Durability    int    `json:"durability"`
	MaxDurability int    `json:"max_durability"`
}

func (s *ItemStack) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		*s = ItemStack{Name: name, Count: 1}
		return nil
	}
	var rec itemStackRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	count := 1
	if rec.Count != nil && *rec.Count > 0 {
		count = *rec.Count
	}
	*s = ItemStack{Name: rec.Name, Count: count, Durability: rec.Durability, MaxDurability: rec.MaxDurability}
	return nil
}

// NPCState is the planner-relevant slice of an NPC record.
type NPCState struct {
	ID        string             `json:"id,omitempty"`
	Name      string             `json:"name,omitempty"`
	Position  *Vec3              `json:"position,omitempty"`
	Inventory []ItemStack        `json:"inventory,omitempty"`
	Traits    map[string]float64 `json:"traits,omitempty"`
}

// AgentState mirrors the runtime agent's view.
type AgentState struct {
	Inventory []ItemStack `json:"inventory,omitempty"`
	Position  *Vec3       `json:"position,omitempty"`
}

// WorldState is a persisted world snapshot fragment.
type WorldState struct {
	Inventory []ItemStack `json:"inventory,omitempty"`
}

// BridgeState is the environment bag reported by the game bridge.
type BridgeState struct {
	Environment         string             `json:"environment,omitempty"`
	Weather             string             `json:"weather,omitempty"`
	TimeOfDay           string             `json:"time_of_day,omitempty"`
	LightLevel          *int               `json:"light_level,omitempty"`
	Hazards             []string           `json:"hazards,omitempty"`
	Allies              []string           `json:"allies,omitempty"`
	EquipmentDurability map[string]ToolWear `json:"equipment_durability,omitempty"`
}

// ToolWear is a durability reading reported for one tool.
type ToolWear struct {
	Durability    int `json:"durability"`
	MaxDurability int `json:"max_durability"`
}

// PlanInvoker is the registry handle planners use for sub-planning.
// Implemented by the registry package; carried on the context so planners
// never reach for an ambient dispatcher.
type PlanInvoker interface {
	Invoke(action string, task protocol.Task, ctx *Context) (*plan.Plan, error)
	Has(action string) bool
}

// Context is the world/agent context for one plan request.
type Context struct {
	Inventory      []ItemStack  `json:"inventory,omitempty"`
	PlayerPosition *Vec3        `json:"player_position,omitempty"`
	NPC            *NPCState    `json:"npc,omitempty"`
	Agent          *AgentState  `json:"agent,omitempty"`
	State          *WorldState  `json:"state,omitempty"`
	Bridge         *BridgeState `json:"bridge_state,omitempty"`

	Planner PlanInvoker `json:"-"`

	// Depth counts sub-planning hops; the registry maintains it.
	Depth int `json:"-"`
}

// ExtractInventory walks the known inventory locations in a fixed order
// (context, npc, agent, state) and returns the first non-empty one with
// names canonicalized and counts coerced to at least 1.
func ExtractInventory(ctx *Context) []ItemStack {
	if ctx == nil {
		return nil
	}
	sources := [][]ItemStack{ctx.Inventory}
	if ctx.NPC != nil {
		sources = append(sources, ctx.NPC.Inventory)
	}
	if ctx.Agent != nil {
		sources = append(sources, ctx.Agent.Inventory)
	}
	if ctx.State != nil {
		sources = append(sources, ctx.State.Inventory)
	}
	for _, src := range sources {
		if len(src) == 0 {
			continue
		}
		out := make([]ItemStack, 0, len(src))
		for _, s := range src {
			name := items.Normalize(s.Name)
			if name == items.Unspecified {
				continue
			}
			count := s.Count
			if count < 1 {
				count = 1
			}
			out = append(out, ItemStack{Name: name, Count: count, Durability: s.Durability, MaxDurability: s.MaxDurability})
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// Position returns the agent's position from the first populated source.
func Position(ctx *Context) *Vec3 {
	if ctx == nil {
		return nil
	}
	if ctx.PlayerPosition != nil {
		return ctx.PlayerPosition
	}
	if ctx.NPC != nil && ctx.NPC.Position != nil {
		return ctx.NPC.Position
	}
	if ctx.Agent != nil && ctx.Agent.Position != nil {
		return ctx.Agent.Position
	}
	return nil
}

// HasItem reports whether the inventory holds at least n of the item.
func HasItem(inv []ItemStack, name string, n int) bool {
	if n < 1 {
		n = 1
	}
	return CountItems(inv, name) >= n
}

// CountItems sums the counts of every stack matching the canonical name.
func CountItems(inv []ItemStack, name string) int {
	want := items.Normalize(name)
	if want == items.Unspecified {
		return 0
	}
	total := 0
	for _, s := range inv {
		if items.Normalize(s.Name) == want {
			total += s.Count
		}
	}
	return total
}

// MergeInventories sums counts per canonical name across inventories.
// Durability readings are not merged; the result is count-only.
func MergeInventories(invs ...[]ItemStack) []ItemStack {
	totals := map[string]int{}
	var order []string
	for _, inv := range invs {
		for _, s := range inv {
			name := items.Normalize(s.Name)
			if name == items.Unspecified {
				continue
			}
			count := s.Count
			if count < 1 {
				count = 1
			}
			if _, seen := totals[name]; !seen {
				order = append(order, name)
			}
			totals[name] += count
		}
	}
	out := make([]ItemStack, 0, len(order))
	for _, name := range order {
		out = append(out, ItemStack{Name: name, Count: totals[name]})
	}
	return out
}

// Traits returns the NPC trait vector, or nil when absent.
func Traits(ctx *Context) map[string]float64 {
	if ctx == nil || ctx.NPC == nil {
		return nil
	}
	return ctx.NPC.Traits
}

// Allies lists squad members reported by the bridge.
func Allies(ctx *Context) []string {
	if ctx == nil || ctx.Bridge == nil {
		return nil
	}
	return ctx.Bridge.Allies
}

// Weather returns the ambient weather, lowercased ("" when unknown).
func Weather(ctx *Context) string {
	if ctx == nil || ctx.Bridge == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(ctx.Bridge.Weather))
}

// TimeOfDay returns the reported time of day, lowercased ("" when unknown).
func TimeOfDay(ctx *Context) string {
	if ctx == nil || ctx.Bridge == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(ctx.Bridge.TimeOfDay))
}

// Environment returns the reported environment profile name, lowercased.
func Environment(ctx *Context) string {
	if ctx == nil || ctx.Bridge == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(ctx.Bridge.Environment))
}
