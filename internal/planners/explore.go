package planners

import (
	"fmt"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planExplore honors metadata: direction, radius, lookFor, markWaypoints.
func (d *deps) planExplore(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	direction := strings.ToLower(metaString(task.Metadata, "direction"))
	radius := metaCount(task.Metadata, "radius", 200)
	if radius < 16 {
		radius = 16
	}
	lookFor := metaStrings(task.Metadata, "lookFor")
	waypoints := metaBool(task.Metadata, "markWaypoints") || len(lookFor) > 0

	inv := worldctx.ExtractInventory(ctx)
	sig := worldctx.ExtractSignals(ctx)

	scope := fmt.Sprintf("a %d block radius", radius)
	if direction != "" {
		scope = fmt.Sprintf("%d blocks %s", radius, direction)
	}
	p := plan.New(task.Action, "Explore "+scope)
	addBoundsRisk(p, task.Target)

	p.AddStep("Provision for the trip", plan.StepPreparation,
		"Pack food, torches and spare tools; note the home bearing before setting out.",
		map[string]any{"radius": radius})
	if !worldctx.HasItem(inv, "torch", 8) {
		p.AddRisk("few torches carried for an extended trip")
	}
	if !hasAnyFood(d, inv) {
		p.AddRisk("no food packed for the journey")
	}

	if task.Target != nil {
		addNavigationStep(p, task.Target, "as the survey's far point")
	}

	sweep := "Sweep outward in expanding arcs, logging terrain and resources."
	if direction != "" {
		sweep = fmt.Sprintf("Push %s in a straight transect, logging terrain and resources to both sides.", direction)
	}
	p.AddStep("Run the survey", plan.StepAction, sweep,
		map[string]any{"direction": direction, "radius": radius, "look_for": lookFor})

	if len(lookFor) > 0 {
		p.AddStep("Check survey targets", plan.StepAnalysis,
			"Investigate any sighting of: "+joinList(lookFor)+".",
			map[string]any{"look_for": lookFor})
	}

	if waypoints {
		p.AddStep("Mark waypoints", plan.StepAwareness,
			"Drop waypoint markers at finds and at each turn of the route.",
			map[string]any{"marker": "torch"})
	}

	if sig.Night {
		p.AddRisk("night travel: hostiles on the route")
	}
	if sig.Raining {
		p.AddNote("Rain will shorten visibility during the survey.")
	}
	p.AddRisk("getting lost beyond known territory")

	p.AddStep("Plot the return leg", plan.StepMovement,
		"Backtrack the waypoint line or walk the home bearing.",
		nil)
	p.AddStep("File the survey report", plan.StepReport,
		"Record discovered features, resource sites and hazards on the shared map.",
		map[string]any{"look_for": lookFor})

	dur := d.tun.ExploreBaseMs + int64(radius)*d.tun.TravelPerBlockMs*2
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}

func hasAnyFood(d *deps, inv []worldctx.ItemStack) bool {
	for item := range d.know.Foods.ByID {
		if worldctx.HasItem(inv, item, 1) {
			return true
		}
	}
	return false
}
