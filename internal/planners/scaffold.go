package planners

import (
	"fmt"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planScaffolding honors metadata: height, width, dismantle.
func (d *deps) planScaffolding(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	height := metaCount(task.Metadata, "height", 0)
	if height <= 0 {
		if task.Target != nil && task.Target.HasCoords {
			if pos := worldctx.Position(ctx); pos != nil {
				height = int(task.Target.Y - pos.Y)
			}
		}
	}
	if height <= 0 {
		height = 6
	}
	width := metaCount(task.Metadata, "width", 1)
	if width < 1 {
		width = 1
	}
	dismantle := true
	if _, ok := task.Metadata["dismantle"]; ok {
		dismantle = metaBool(task.Metadata, "dismantle")
	}

	needed := height*width + width
	inv := worldctx.ExtractInventory(ctx)

	p := plan.New(task.Action, fmt.Sprintf("Erect a %d high scaffold", height))
	addBoundsRisk(p, task.Target)
	p.AddResource("scaffolding")

	g, rootID := newGraph(p, task, p.Summary)
	if have := worldctx.CountItems(inv, "scaffolding"); have < needed {
		p.AddRisk(fmt.Sprintf("short %d scaffolding for the tower", needed-have))
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionCraft,
			Details:  "craft scaffolding stock",
			Metadata: map[string]any{"item": "scaffolding", "quantity": needed - have},
		}, true)
	}

	addNavigationStep(p, task.Target, "at the scaffold base")

	p.AddStep("Set the base row", plan.StepPreparation,
		fmt.Sprintf("Place the first %d scaffolding on solid, level ground.", width),
		map[string]any{"width": width})
	p.AddStep("Raise the tower", plan.StepAction,
		fmt.Sprintf("Stack scaffolding to %d blocks, climbing inside the column as it rises.", height),
		map[string]any{"height": height, "scaffolding": needed})
	p.AddStep("Top out safely", plan.StepSafety,
		"Fit the working platform and keep inside the rail line while working at height.",
		map[string]any{"height": height})
	if height > 20 {
		p.AddRisk(fmt.Sprintf("working at %d blocks; a slip is lethal without a water landing", height))
	}

	if dismantle {
		p.AddStep("Dismantle on completion", plan.StepCleanup,
			"Break the base block to drop the whole column and collect the pieces.",
			map[string]any{"recover": true})
	} else {
		p.AddNote("Scaffold left standing for follow-up work.")
	}

	p.EstimatedDuration = clampDuration(d.tun.ScaffoldBaseMs + int64(needed)*200 + d.travelTime(ctx, task.Target))
	return p, nil
}
