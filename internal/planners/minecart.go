package planners

import (
	"fmt"
	"math"

	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planMinecart honors metadata: mode (ride|build_line), length.
func (d *deps) planMinecart(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	if task.Target == nil {
		return nil, fmt.Errorf("minecart: no destination target")
	}
	mode := metaString(task.Metadata, "mode")
	length := metaCount(task.Metadata, "length", 0)
	if length <= 0 {
		length = int(math.Max(8, distance(worldctx.Position(ctx), targetVec(task.Target))))
	}
	rules := d.know.Rails

	inv := worldctx.ExtractInventory(ctx)

	if mode == "" {
		if worldctx.HasItem(inv, "rail", length) {
			mode = "build_line"
		} else if worldctx.HasItem(inv, "minecart", 1) {
			mode = "ride"
		} else {
			mode = "build_line"
		}
	}

	p := plan.New(task.Action, fmt.Sprintf("Run a minecart line to %s", task.Target.Describe()))
	addBoundsRisk(p, task.Target)
	p.AddResource("minecart")

	if mode == "ride" {
		p.AddStep("Board at the station", plan.StepMovement,
			"Place or find the cart on the line and board it.",
			map[string]any{"mode": mode})
		p.AddStep("Ride the line", plan.StepAction,
			fmt.Sprintf("Ride to %s, minding junction switches on the way.", task.Target.Describe()),
			map[string]any{"destination": task.Target.Describe()})
		p.AddStep("Disembark and stow the cart", plan.StepCleanup,
			"Exit at the destination buffer and pick the cart up if it is yours.",
			nil)
		p.EstimatedDuration = clampDuration(d.tun.MinecartBaseMs + int64(length)*d.tun.TravelPerBlockMs/3)
		return p, nil
	}

	boosters := length / rules.PoweredRailSpacing
	if boosters < 1 {
		boosters = 1
	}
	bill := []knowledge.ItemCount{
		{Name: "rail", Count: length - boosters},
		{Name: "powered rail", Count: boosters},
		{Name: "redstone torch", Count: boosters},
		{Name: "minecart", Count: 1},
	}

	g, rootID := newGraph(p, task, p.Summary)
	missing := requireMaterials(p, inv, bill)
	for _, m := range missing {
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionCraft,
			Details:  "craft rail stock for the line",
			Metadata: map[string]any{"item": m.Name, "quantity": m.Count},
		}, true)
	}

	p.AddStep("Survey the route", plan.StepPlanning,
		fmt.Sprintf("Walk the %d block route and flag grades steeper than %d in 1 for re-cutting.", length, rules.MaxSlope),
		map[string]any{"length": length, "max_slope": rules.MaxSlope})
	p.AddStep("Grade the roadbed", plan.StepPreparation,
		"Cut and fill the roadbed so every rise fits the slope limit.",
		map[string]any{"max_slope": rules.MaxSlope})
	p.AddStep("Lay the rails", plan.StepAction,
		fmt.Sprintf("Lay plain rail, inserting a powered rail every %d blocks with its redstone torch.", rules.PoweredRailSpacing),
		map[string]any{"rails": length - boosters, "powered_rails": boosters, "spacing": rules.PoweredRailSpacing})
	p.AddStep("Build the stations", plan.StepAction,
		fmt.Sprintf("Lay a %d block buffer and stop at each end of the line.", rules.StationLengthMin),
		map[string]any{"station_length": rules.StationLengthMin})
	p.AddStep("Test ride", plan.StepQuality,
		"Ride the full line both ways; add boosters anywhere the cart stalls.",
		nil)

	p.AddRisk("line crosses unlit territory; mobs can block or board carts")

	dur := d.tun.MinecartBaseMs + int64(length)*300 + d.travelTime(ctx, task.Target)
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}
