package planners

import (
	"fmt"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planDoor honors metadata: doorType, operation (open|close|install|
// secure), mechanism.
func (d *deps) planDoor(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	doorType := items.Normalize(metaString(task.Metadata, "doorType", "door"))
	if doorType == items.Unspecified {
		doorType = "oak door"
	}
	operation := strings.ToLower(metaString(task.Metadata, "operation"))
	if operation == "" {
		operation = "open"
	}
	ironDoor := strings.Contains(doorType, "iron")

	inv := worldctx.ExtractInventory(ctx)

	p := plan.New(task.Action, fmt.Sprintf("%s the %s", capitalize(operation), items.DisplayName(doorType)))
	addBoundsRisk(p, task.Target)
	p.AddResource(doorType)

	addNavigationStep(p, task.Target, "to reach the doorway")

	switch operation {
	case "install":
		g, rootID := newGraph(p, task, p.Summary)
		if !worldctx.HasItem(inv, doorType, 1) {
			p.AddRisk("no " + items.DisplayName(doorType) + " in inventory")
			subPlanResult(p, ctx, g, rootID, protocol.Task{
				Action:   ActionCraft,
				Details:  "craft the door to install",
				Metadata: map[string]any{"item": doorType, "quantity": 1},
			}, true)
		}
		p.AddStep("Frame the doorway", plan.StepPreparation,
			"Clear a 1x2 opening with solid blocks on both jambs.",
			map[string]any{"door": doorType})
		p.AddStep("Hang the door", plan.StepAction,
			fmt.Sprintf("Place the %s from the outside face so it opens inward.", items.DisplayName(doorType)),
			map[string]any{"door": doorType})
	case "close":
		p.AddStep("Close the door", plan.StepInteraction,
			"Shut the door and confirm the latch state.",
			map[string]any{"door": doorType, "operation": operation})
	case "secure":
		p.AddStep("Close and bar the door", plan.StepSecurity,
			"Shut the door and block the outside approach against mobs.",
			map[string]any{"door": doorType})
		if !ironDoor {
			p.AddNote("Wooden doors can be broken by zombies on hard difficulty; iron is safer.")
		}
	default: // open
		p.AddStep("Open the door", plan.StepInteraction,
			"Open the door and pass through.",
			map[string]any{"door": doorType, "operation": operation})
	}

	if ironDoor {
		mechanism := items.Normalize(metaString(task.Metadata, "mechanism"))
		if mechanism == items.Unspecified {
			mechanism = "lever"
		}
		p.AddResource(mechanism)
		if !worldctx.HasItem(inv, mechanism, 1) && operation == "install" {
			p.AddRisk("iron door needs a " + items.DisplayName(mechanism) + " or other redstone activator")
		}
		p.AddStep("Wire the activator", plan.StepInteraction,
			fmt.Sprintf("Operate the %s; iron doors only respond to redstone.", items.DisplayName(mechanism)),
			map[string]any{"mechanism": mechanism, "door": doorType})
	}

	p.AddStep("Confirm the doorway", plan.StepQuality,
		"Verify the door sits and swings as intended.",
		map[string]any{"door": doorType})

	p.EstimatedDuration = clampDuration(d.tun.DoorBaseMs + d.travelTime(ctx, task.Target))
	return p, nil
}
