package planners

import (
	"fmt"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// gatherTool maps resource families to the tool that speeds collection.
func gatherTool(resource string) string {
	switch {
	case strings.Contains(resource, "log") || strings.Contains(resource, "wood"):
		return "axe"
	case strings.Contains(resource, "ore") || strings.Contains(resource, "stone") || strings.Contains(resource, "cobble"):
		return "pickaxe"
	case strings.Contains(resource, "dirt") || strings.Contains(resource, "sand") || strings.Contains(resource, "gravel") || strings.Contains(resource, "clay"):
		return "shovel"
	case strings.Contains(resource, "wheat") || strings.Contains(resource, "crop") || strings.Contains(resource, "wool"):
		return ""
	default:
		return ""
	}
}

// planGather honors metadata: resource, quantity, area, dropOff.
func (d *deps) planGather(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	resource := primaryResource(task, "resource", "item")
	if resource == items.Unspecified {
		return nil, fmt.Errorf("gather: no resource named")
	}
	quantity := metaCount(task.Metadata, "quantity", 1)
	if quantity < 1 {
		quantity = 1
	}
	area := metaString(task.Metadata, "area", "biome")
	dropOff := metaString(task.Metadata, "dropOff", "drop_off")

	// Ores route through the mine planner's richer handling.
	if strings.Contains(resource, "ore") || ctxHasDeepTarget(task) {
		if ctx != nil && ctx.Planner != nil && ctx.Planner.Has(ActionMine) {
			mineTask := task
			mineTask.Action = ActionMine
			if sub, err := ctx.Planner.Invoke(ActionMine, mineTask, ctx); err == nil && sub != nil {
				sub.Action = task.Action
				sub.AddNote("Gathering routed through the mining planner for ore extraction.")
				return sub, nil
			}
		}
	}

	inv := worldctx.ExtractInventory(ctx)
	sig := worldctx.ExtractSignals(ctx)

	p := plan.New(task.Action, fmt.Sprintf("Gather %d %s", quantity, items.DisplayName(resource)))
	p.AddResource(resource)
	addBoundsRisk(p, task.Target)
	g, rootID := newGraph(p, task, p.Summary)

	if tool := gatherTool(resource); tool != "" {
		held, ok := bestToolFor(inv, tool)
		if !ok {
			p.AddRisk("no " + items.DisplayName(tool) + " carried; gathering by hand is slow")
			subPlanResult(p, ctx, g, rootID, protocol.Task{
				Action:   ActionCraft,
				Details:  "craft a " + tool + " before gathering",
				Metadata: map[string]any{"item": defaultCraftableTool(tool), "quantity": 1},
			}, true)
		} else {
			p.AddResource(held)
		}
	}

	locateDesc := fmt.Sprintf("Scan for %s stands nearby.", items.DisplayName(resource))
	if area != "" {
		locateDesc = fmt.Sprintf("Search the %s for %s.", area, items.DisplayName(resource))
	}
	p.AddStep("Locate the resource", plan.StepAnalysis, locateDesc,
		map[string]any{"resource": resource, "area": area})

	addNavigationStep(p, task.Target, "where the resource is concentrated")

	p.AddStep(fmt.Sprintf("Collect %s", items.DisplayName(resource)), plan.StepAction,
		fmt.Sprintf("Harvest until %d %s are held, replanting or leaving regrowth where applicable.", quantity, items.DisplayName(resource)),
		map[string]any{"resource": resource, "quantity": quantity})

	if sig.Hostiles || sig.Night {
		p.AddRisk("hostiles active in the gathering area")
		p.AddStep("Watch the perimeter", plan.StepAwareness,
			"Break off gathering to deal with hostiles before they close.",
			nil)
	}

	p.AddStep("Pack the haul", plan.StepInventory,
		"Consolidate stacks and confirm the full count is aboard.",
		map[string]any{"resource": resource, "quantity": quantity})

	if dropOff != "" {
		p.AddStep("Store the haul", plan.StepStorage,
			fmt.Sprintf("Deposit gathered %s into %s.", items.DisplayName(resource), dropOff),
			map[string]any{"container": dropOff})
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:  ActionInteract,
			Details: "store gathered resources",
			Metadata: map[string]any{
				"object":    dropOff,
				"operation": "store",
				"items":     []any{map[string]any{"name": resource, "count": quantity}},
			},
		}, false)
	}

	dur := d.tun.GatherBaseMs + int64(quantity)*d.tun.GatherPerUnitMs + d.travelTime(ctx, task.Target)
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}

func ctxHasDeepTarget(task protocol.Task) bool {
	return task.Target != nil && task.Target.HasCoords && task.Target.Y < 32
}
