package planners

import (
	"fmt"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planRanged honors metadata: weapon, targetEntity, arrows.
func (d *deps) planRanged(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	target := items.Normalize(metaString(task.Metadata, "targetEntity", "enemy"))
	if target == items.Unspecified && task.Target == nil {
		return nil, fmt.Errorf("ranged: no target named")
	}
	weapon := items.Normalize(metaString(task.Metadata, "weapon"))
	arrowsWanted := metaCount(task.Metadata, "arrows", 16)

	inv := worldctx.ExtractInventory(ctx)
	if weapon == items.Unspecified {
		if worldctx.HasItem(inv, "crossbow", 1) {
			weapon = "crossbow"
		} else {
			weapon = "bow"
		}
	}
	stance := d.know.Stances.ByID["ranged"]

	targetDesc := task.Target.Describe()
	if target != items.Unspecified {
		targetDesc = items.DisplayName(target)
	}
	p := plan.New(task.Action, fmt.Sprintf("Engage %s at range with the %s", targetDesc, items.DisplayName(weapon)))
	addBoundsRisk(p, task.Target)
	p.AddResource(weapon)
	p.AddResource("arrow")

	g, rootID := newGraph(p, task, p.Summary)
	if !worldctx.HasItem(inv, weapon, 1) {
		p.AddRisk("no " + items.DisplayName(weapon) + " carried")
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionCraft,
			Details:  "craft the ranged weapon",
			Metadata: map[string]any{"item": weapon, "quantity": 1},
		}, true)
	}
	arrows := worldctx.CountItems(inv, "arrow")
	if arrows < arrowsWanted {
		p.AddRisk(fmt.Sprintf("only %d arrows against a wanted reserve of %d", arrows, arrowsWanted))
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionCraft,
			Details:  "restock arrows",
			Metadata: map[string]any{"item": "arrow", "quantity": arrowsWanted - arrows},
		}, true)
	}
	if ti := worldctx.ResolveToolIntegrity(weapon, ctx); ti != nil && ti.Percent < 0.25 {
		p.AddRisk(fmt.Sprintf("%s near breaking (%d/%d durability)", items.DisplayName(weapon), ti.Durability, ti.MaxDurability))
	}

	p.AddStep("Take a firing position", plan.StepManeuver,
		fmt.Sprintf("Find elevation or cover at about %d blocks from the target with a clear lane.", int(stance.EngagementRange)),
		map[string]any{"engagement_range": stance.EngagementRange, "stance": "ranged"})
	p.AddStep("Range the target", plan.StepAnalysis,
		"Judge drop and lead; loose one ranging shot if the distance is uncertain.",
		map[string]any{"target": target})
	p.AddStep("Sustain fire", plan.StepAction,
		fmt.Sprintf("Work the %s with full draws, re-positioning whenever the target closes half the gap.", items.DisplayName(weapon)),
		map[string]any{"weapon": weapon, "transitions": stanceTransitions})
	p.AddStep("Keep the gap", plan.StepManeuver,
		"Kite backward along the prepared lane; never reload inside melee reach.",
		map[string]any{"stance": "ranged"})
	p.AddStep("Recover arrows", plan.StepCleanup,
		"Sweep the field for spent arrows once the fight ends.",
		nil)

	p.EstimatedDuration = clampDuration(d.tun.RangedBaseMs + d.travelTime(ctx, task.Target))
	return p, nil
}
