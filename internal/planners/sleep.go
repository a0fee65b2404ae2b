package planners

import (
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planSleep honors metadata: bedLocation.
func (d *deps) planSleep(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	inv := worldctx.ExtractInventory(ctx)
	sig := worldctx.ExtractSignals(ctx)
	tod := worldctx.TimeOfDay(ctx)

	p := plan.New(task.Action, "Sleep through the night")
	addBoundsRisk(p, task.Target)
	p.AddResource("bed")

	hasBed := worldctx.HasItem(inv, "bed", 1) || worldctx.HasItem(inv, "white bed", 1)
	bedAt := metaString(task.Metadata, "bedLocation")
	if !hasBed && bedAt == "" && task.Target == nil {
		p.AddRisk("no bed carried and no bed location known")
		g, rootID := newGraph(p, task, p.Summary)
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionCraft,
			Details:  "craft a bed before nightfall",
			Metadata: map[string]any{"item": "bed", "quantity": 1},
		}, true)
	}

	if tod != "" && !sig.Night {
		p.AddNote("It is " + tod + "; the bed cannot be used until night falls.")
	}

	addNavigationStep(p, task.Target, "to reach the bed")
	if bedAt != "" {
		p.AddStep("Head to the bed", plan.StepMovement,
			"Return to the bed at "+bedAt+".",
			map[string]any{"bed_location": bedAt})
	}

	p.AddStep("Secure the room", plan.StepSafety,
		"Close doors, light the interior and confirm no hostiles can path to the bed.",
		nil)
	if sig.Hostiles {
		p.AddRisk("hostiles nearby will interrupt sleep")
	}

	if !hasBed && bedAt == "" {
		p.AddStep("Place the bed", plan.StepPreparation,
			"Set the bed against a wall with two clear blocks beside it.",
			map[string]any{"item": "bed"})
	}

	p.AddStep("Sleep", plan.StepAction,
		"Use the bed and sleep until morning, resetting the spawn point.",
		map[string]any{"sets_spawn": true})
	p.AddStep("Morning check", plan.StepAwareness,
		"On waking, check hunger, gear and the day's task queue.",
		nil)

	p.EstimatedDuration = clampDuration(d.tun.SleepBaseMs + d.travelTime(ctx, task.Target))
	return p, nil
}
