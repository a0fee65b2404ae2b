package planners

import (
	"fmt"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// Mining styles, picked from explicit hints first, then numeric
// heuristics, with strip mining as the fallback.
const (
	mineStrip     = "strip"
	mineStaircase = "staircase"
	mineQuarry    = "quarry"
	mineShaft     = "shaft"
)

var mineStyleFactor = map[string]float64{
	mineStrip:     1.0,
	mineStaircase: 1.2,
	mineShaft:     1.3,
	mineQuarry:    1.5,
}

// planMine honors metadata: resource, quantity, tool, style, depth,
// dropOff.
func (d *deps) planMine(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	resource := primaryResource(task, "resource", "ore", "block")
	if resource == items.Unspecified {
		return nil, fmt.Errorf("mine: no resource to mine")
	}
	quantity := metaCount(task.Metadata, "quantity", 1)
	if quantity < 1 {
		quantity = 1
	}
	tool := items.Normalize(metaString(task.Metadata, "tool"))
	if tool == items.Unspecified {
		tool = "pickaxe"
	}
	dropOff := metaString(task.Metadata, "dropOff", "drop_off", "container")

	inv := worldctx.ExtractInventory(ctx)
	sig := worldctx.ExtractSignals(ctx)
	style := d.pickMineStyle(task, sig, quantity)

	p := plan.New(task.Action, fmt.Sprintf("Mine %d %s using %s mining", quantity, items.DisplayName(resource), style))
	p.AddResource(resource)
	p.AddResource(tool)
	addBoundsRisk(p, task.Target)

	g, rootID := newGraph(p, task, p.Summary)

	// Tool check: a usable tool must be in hand before any digging.
	heldTool, ok := bestToolFor(inv, tool)
	integrity := worldctx.ResolveToolIntegrity(heldTool, ctx)
	broken := integrity != nil && integrity.Broken
	if !ok || broken {
		if !ok {
			p.AddRisk("missing tool: no " + items.DisplayName(tool) + " in inventory")
		} else {
			p.AddRisk(fmt.Sprintf("%s is broken (%d/%d durability)", items.DisplayName(heldTool), integrity.Durability, integrity.MaxDurability))
		}
		craftTool := heldTool
		if craftTool == "" {
			craftTool = defaultCraftableTool(tool)
		}
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionCraft,
			Details:  "craft replacement " + tool,
			Metadata: map[string]any{"item": craftTool, "quantity": 1},
		}, true)
	} else if integrity != nil && integrity.Percent < 0.2 {
		p.AddRisk(fmt.Sprintf("%s durability low (%.0f%%)", items.DisplayName(heldTool), integrity.Percent*100))
	}

	p.AddStep("Gear check", plan.StepPreparation,
		fmt.Sprintf("Confirm a usable %s is equipped and pack torches plus food for the dig.", items.DisplayName(tool)),
		map[string]any{"tool": tool, "style": style})

	addNavigationStep(p, task.Target, "at the dig site")

	p.AddStep("Open the "+style+" workings", plan.StepPreparation,
		mineStyleDescription(style),
		map[string]any{"style": style, "torch_interval": 8})

	if sig.Lava {
		p.AddRisk("lava reported near the dig site")
		p.AddStep("Lava watch", plan.StepSafety,
			"Probe suspicious blocks before breaking through and keep a water bucket ready.",
			map[string]any{"hazard": "lava"})
	}
	if sig.Gravel {
		p.AddRisk("loose gravel overhead")
	}
	if sig.LowLight {
		p.AddRisk("low light: hostile spawns likely in the workings")
		p.AddStep("Light the tunnels", plan.StepSafety,
			"Place torches every 8 blocks to hold the spawn-proof light level.",
			map[string]any{"item": "torch", "interval": 8})
	}

	p.AddStep(fmt.Sprintf("Mine %s", items.DisplayName(resource)), plan.StepAction,
		fmt.Sprintf("Extract %s until %d units are collected, following the %s pattern.", items.DisplayName(resource), quantity, style),
		map[string]any{"resource": resource, "quantity": quantity, "style": style})

	p.AddStep("Collect drops", plan.StepInventory,
		"Sweep the cut for dropped items before moving on.",
		map[string]any{"resource": resource})

	if dropOff != "" {
		p.AddStep("Store resources", plan.StepStorage,
			fmt.Sprintf("Deposit mined %s into %s.", items.DisplayName(resource), dropOff),
			map[string]any{"container": dropOff, "resource": resource})
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:  ActionInteract,
			Details: "store mined resources",
			Metadata: map[string]any{
				"object":    dropOff,
				"operation": "store",
				"items":     []any{map[string]any{"name": resource, "count": quantity}},
			},
		}, false)
	}

	dur := d.tun.MineBaseMs + int64(quantity)*d.tun.MinePerBlockMs + d.travelTime(ctx, task.Target)
	dur = int64(float64(dur) * mineStyleFactor[style])
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}

func (d *deps) pickMineStyle(task protocol.Task, sig worldctx.Signals, quantity int) string {
	if s := strings.ToLower(metaString(task.Metadata, "style", "method")); s != "" {
		if _, ok := mineStyleFactor[s]; ok {
			return s
		}
	}
	depth := metaCount(task.Metadata, "depth", 0)
	targetY := 64.0
	if task.Target != nil && task.Target.HasCoords {
		targetY = task.Target.Y
	}
	switch {
	case quantity >= 64:
		return mineQuarry
	case (targetY <= 0 || depth >= 48) && !sig.Lava:
		return mineShaft
	case targetY < 32 || depth >= 16:
		return mineStaircase
	default:
		return mineStrip
	}
}

func mineStyleDescription(style string) string {
	switch style {
	case mineQuarry:
		return "Peel the area layer by layer in a rectangular quarry, keeping one wall stepped for exit."
	case mineShaft:
		return "Sink a 2x1 vertical shaft with ladder rungs, then branch at the resource level."
	case mineStaircase:
		return "Cut a 1-in-1 staircase down to the resource level, lighting each landing."
	default:
		return "Drive parallel 2-high strip tunnels with two-block spacing between cuts."
	}
}

// bestToolFor finds an inventory tool whose name ends with the tool
// class (e.g. "iron pickaxe" for class "pickaxe"), preferring the
// highest tier present.
func bestToolFor(inv []worldctx.ItemStack, class string) (string, bool) {
	class = items.Normalize(class)
	tiers := []string{"netherite", "diamond", "iron", "stone", "golden", "wooden"}
	// Exact name match first.
	if worldctx.HasItem(inv, class, 1) {
		return class, true
	}
	best := ""
	bestTier := len(tiers)
	for _, s := range inv {
		if !strings.HasSuffix(s.Name, " "+class) {
			continue
		}
		tier := len(tiers) - 1
		for i, t := range tiers {
			if strings.HasPrefix(s.Name, t+" ") {
				tier = i
				break
			}
		}
		if best == "" || tier < bestTier {
			best, bestTier = s.Name, tier
		}
	}
	return best, best != ""
}

// defaultCraftableTool maps a tool class to the entry-tier recipe item.
func defaultCraftableTool(class string) string {
	switch items.Normalize(class) {
	case "pickaxe":
		return "wooden pickaxe"
	case "axe":
		return "wooden axe"
	case "sword":
		return "iron sword"
	case "shovel":
		return "wooden shovel"
	default:
		return items.Normalize(class)
	}
}
