package planners

import (
	"fmt"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planThrow honors metadata: projectile, count.
func (d *deps) planThrow(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	projectile := items.Normalize(metaString(task.Metadata, "projectile", "item"))
	if projectile == items.Unspecified {
		projectile = "snowball"
	}
	count := metaCount(task.Metadata, "count", 1)
	if count < 1 {
		count = 1
	}

	inv := worldctx.ExtractInventory(ctx)

	p := plan.New(task.Action, fmt.Sprintf("Throw %d %s at %s", count, items.DisplayName(projectile), task.Target.Describe()))
	addBoundsRisk(p, task.Target)
	p.AddResource(projectile)

	if !worldctx.HasItem(inv, projectile, count) {
		have := worldctx.CountItems(inv, projectile)
		p.AddRisk(fmt.Sprintf("only %d of %d %s carried", have, count, items.DisplayName(projectile)))
	}

	dist := distance(worldctx.Position(ctx), targetVec(task.Target))
	p.AddStep("Line up the throw", plan.StepPreparation,
		fmt.Sprintf("Select the %s and face %s; judge the arc for roughly %d blocks.", items.DisplayName(projectile), task.Target.Describe(), int(dist)),
		map[string]any{"projectile": projectile, "range": int(dist)})

	switch projectile {
	case "ender pearl":
		p.AddRisk("pearl teleport deals fall damage on landing")
		p.AddNote("Aim above the target; the pearl drops steeply at range.")
	case "splash potion", "lingering potion":
		p.AddRisk("splash radius can catch allies")
	}

	p.AddStep("Throw", plan.StepAction,
		fmt.Sprintf("Release %d %s, adjusting the lead after the first impact.", count, items.DisplayName(projectile)),
		map[string]any{"projectile": projectile, "count": count})
	p.AddStep("Observe the result", plan.StepAwareness,
		"Watch where each throw lands and whether the intended effect occurred.",
		nil)

	p.EstimatedDuration = clampDuration(d.tun.ThrowBaseMs + int64(count-1)*600)
	return p, nil
}
