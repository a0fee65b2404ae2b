package planners

import (
	"fmt"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planGuard honors metadata: asset, radius, durationMs, squadMembers.
func (d *deps) planGuard(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	asset := metaString(task.Metadata, "asset", "protect")
	if asset == "" {
		asset = task.Target.Describe()
	}
	radius := metaCount(task.Metadata, "radius", 12)
	if radius < 1 {
		radius = 12
	}
	watchMs := int64(metaCount(task.Metadata, "durationMs", 0))
	squad := metaStrings(task.Metadata, "squadMembers")
	if len(squad) == 0 {
		squad = worldctx.Allies(ctx)
	}

	inv := worldctx.ExtractInventory(ctx)
	sig := worldctx.ExtractSignals(ctx)
	stance := d.know.Stances.ByID["guard"]

	p := plan.New(task.Action, fmt.Sprintf("Guard %s within a %d block perimeter", asset, radius))
	addBoundsRisk(p, task.Target)

	addNavigationStep(p, task.Target, "to take up the guard post")

	p.AddStep("Walk the perimeter", plan.StepAwareness,
		fmt.Sprintf("Circle the %d block radius once, noting approach lanes and blind spots.", radius),
		map[string]any{"radius": radius, "asset": asset})

	weapon := stancePreferredWeapon(stance.PreferredWeapons, inv)
	if weapon == "" {
		p.AddRisk("guarding unarmed; craft or fetch a weapon")
	} else {
		p.AddResource(weapon)
	}

	p.AddStep("Hold the guard stance", plan.StepStrategy,
		stance.Description+".",
		map[string]any{"stance": "guard", "engagement_range": stance.EngagementRange, "transitions": stanceTransitions})

	if len(squad) > 0 {
		roles := assignSquadRoles(squad)
		p.AddStep("Post the squad", plan.StepCoordination,
			"Spread the squad across the approach lanes; leader holds the asset.",
			map[string]any{"roles": roles})
	}

	if sig.Night || sig.LowLight {
		p.AddRisk("night watch: spawns inside the perimeter are possible")
		p.AddStep("Light the perimeter", plan.StepSafety,
			"Torch the perimeter ring to deny spawn surfaces.",
			map[string]any{"item": "torch"})
	}

	p.AddStep("Challenge intruders", plan.StepSecurity,
		"Intercept anything crossing the perimeter; do not leave the radius in pursuit.",
		map[string]any{"radius": radius})

	p.AddStep("Report the watch", plan.StepReport,
		"Log contacts and perimeter damage when relieved.",
		nil)

	dur := d.tun.GuardBaseMs + watchMs + d.travelTime(ctx, task.Target)
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}
