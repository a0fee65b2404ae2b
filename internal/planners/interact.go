package planners

import (
	"fmt"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planInteract honors metadata: object, operation (open|store|retrieve|
// activate|toggle|use), items, durationMs (or duration), checkTraps,
// network.
// Durations are milliseconds end to end, matching every other planner.
func (d *deps) planInteract(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	object := metaString(task.Metadata, "object", "target", "station")
	if object == "" {
		object = strings.TrimSpace(task.Details)
	}
	if object == "" && task.Target != nil {
		object = task.Target.Describe()
	}
	if object == "" {
		return nil, fmt.Errorf("interact: nothing to interact with")
	}
	operation := strings.ToLower(metaString(task.Metadata, "operation", "mode"))
	if operation == "" {
		operation = "use"
	}
	moveItems := metaItemCounts(task.Metadata, "items")
	// Both keys are milliseconds; "duration" is the older spelling.
	holdMs := int64(metaCount(task.Metadata, "durationMs", 0))
	if holdMs == 0 {
		holdMs = int64(metaCount(task.Metadata, "duration", 0))
	}
	checkTraps := metaBool(task.Metadata, "checkTraps")
	network := metaStrings(task.Metadata, "network")

	inv := worldctx.ExtractInventory(ctx)

	p := plan.New(task.Action, fmt.Sprintf("%s %s", capitalize(operation), object))
	addBoundsRisk(p, task.Target)

	addNavigationStep(p, task.Target, "to reach "+object)

	p.AddStep("Approach "+object, plan.StepMovement,
		"Close to interaction range and face the "+object+".",
		map[string]any{"object": object})

	if checkTraps || strings.Contains(strings.ToLower(object), "chest") {
		p.AddStep("Inspect for traps", plan.StepSecurity,
			"Check for pressure plates, tripwire and observer blocks around the "+object+" before touching it.",
			map[string]any{"object": object})
		if checkTraps {
			p.AddRisk("container flagged as possibly trapped")
		}
	}

	switch operation {
	case "store":
		if len(moveItems) == 0 {
			p.AddNote("No item list given; storing everything not in the active loadout.")
		}
		missing := missingForTransfer(inv, moveItems)
		for _, m := range missing {
			p.AddRisk(fmt.Sprintf("cannot store %d %s: not in inventory", m.Count, items.DisplayName(m.Name)))
		}
		p.AddStep("Store items", plan.StepStorage,
			"Open the "+object+" and transfer in: "+describeTransfer(moveItems)+".",
			map[string]any{"object": object, "operation": operation, "items": moveItems})
	case "retrieve":
		p.AddStep("Retrieve items", plan.StepInventory,
			"Open the "+object+" and withdraw: "+describeTransfer(moveItems)+".",
			map[string]any{"object": object, "operation": operation, "items": moveItems})
	case "activate", "toggle":
		p.AddStep(capitalize(operation)+" the mechanism", plan.StepInteraction,
			"Operate the "+object+" and watch for the expected response.",
			map[string]any{"object": object, "operation": operation})
	case "open":
		p.AddStep("Open "+object, plan.StepInteraction,
			"Open the "+object+" and review its contents.",
			map[string]any{"object": object, "operation": operation})
	default:
		p.AddStep("Use "+object, plan.StepInteraction,
			"Interact with the "+object+" as intended.",
			map[string]any{"object": object, "operation": operation})
	}

	if len(network) > 0 {
		p.AddNote("Container network: overflow routes to " + joinList(network) + ".")
	}

	p.AddStep("Verify the result", plan.StepQuality,
		"Confirm the interaction took effect before leaving.",
		map[string]any{"object": object})
	p.AddStep("Close up", plan.StepCleanup,
		"Shut the "+object+" and clear the area tidy.",
		map[string]any{"object": object})

	for _, it := range moveItems {
		p.AddResource(it.Name)
	}

	dur := d.tun.InteractBaseMs + holdMs + int64(len(moveItems))*500 + d.travelTime(ctx, task.Target)
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func missingForTransfer(inv []worldctx.ItemStack, list []knowledge.ItemCount) []knowledge.ItemCount {
	var missing []knowledge.ItemCount
	for _, e := range list {
		if have := worldctx.CountItems(inv, e.Name); have < e.Count {
			missing = append(missing, knowledge.ItemCount{Name: e.Name, Count: e.Count - have})
		}
	}
	return missing
}

func describeTransfer(list []knowledge.ItemCount) string {
	if len(list) == 0 {
		return "the selected items"
	}
	return formatCounts(list)
}
