package planners

import (
	"fmt"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planItemFrame honors metadata: displayItem, rotation.
func (d *deps) planItemFrame(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	display := items.Normalize(metaString(task.Metadata, "displayItem", "item"))
	rotation := metaCount(task.Metadata, "rotation", 0) % 8
	if rotation < 0 {
		rotation += 8
	}

	inv := worldctx.ExtractInventory(ctx)

	summary := "Mount an item frame"
	if display != items.Unspecified {
		summary = fmt.Sprintf("Display %s in an item frame", items.DisplayName(display))
	}
	p := plan.New(task.Action, summary)
	addBoundsRisk(p, task.Target)
	p.AddResource("item frame")

	g, rootID := newGraph(p, task, p.Summary)
	if !worldctx.HasItem(inv, "item frame", 1) {
		p.AddRisk("no item frame in inventory")
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionCraft,
			Details:  "craft an item frame",
			Metadata: map[string]any{"item": "item frame", "quantity": 1},
		}, true)
	}
	if display != items.Unspecified {
		p.AddResource(display)
		if !worldctx.HasItem(inv, display, 1) {
			p.AddRisk("display item " + items.DisplayName(display) + " not carried")
		}
	}

	addNavigationStep(p, task.Target, "to the mounting wall")

	p.AddStep("Pick the mounting face", plan.StepPreparation,
		"Choose a solid block face at eye height with clear sightlines.",
		nil)
	p.AddStep("Hang the frame", plan.StepAction,
		"Place the item frame flat against the chosen face.",
		map[string]any{"item": "item frame"})
	if display != items.Unspecified {
		p.AddStep("Insert the item", plan.StepInteraction,
			fmt.Sprintf("Put the %s into the frame.", items.DisplayName(display)),
			map[string]any{"display_item": display})
		if rotation != 0 {
			p.AddStep("Rotate the display", plan.StepInteraction,
				fmt.Sprintf("Click the frame %d more time(s) to reach the wanted orientation.", rotation),
				map[string]any{"rotation": rotation})
		}
	}
	p.AddStep("Check the display", plan.StepQuality,
		"Step back and confirm the frame reads correctly from the approach.",
		nil)

	p.EstimatedDuration = clampDuration(d.tun.FrameBaseMs + d.travelTime(ctx, task.Target))
	return p, nil
}
