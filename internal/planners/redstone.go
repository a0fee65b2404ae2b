package planners

import (
	"fmt"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// redstoneCircuits maps circuit kinds to their component bill.
var redstoneCircuits = map[string][]knowledge.ItemCount{
	"door": {
		{Name: "redstone", Count: 8},
		{Name: "lever", Count: 1},
		{Name: "iron door", Count: 1},
	},
	"trap": {
		{Name: "redstone", Count: 12},
		{Name: "piston", Count: 2},
		{Name: "redstone torch", Count: 2},
	},
	"farm": {
		{Name: "redstone", Count: 16},
		{Name: "piston", Count: 4},
		{Name: "repeater", Count: 4},
		{Name: "lever", Count: 1},
	},
	"clock": {
		{Name: "redstone", Count: 6},
		{Name: "repeater", Count: 2},
		{Name: "redstone torch", Count: 1},
	},
	"lamp": {
		{Name: "redstone", Count: 4},
		{Name: "lever", Count: 1},
	},
}

// planRedstone honors metadata: circuit, components.
func (d *deps) planRedstone(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	circuit := strings.ToLower(metaString(task.Metadata, "circuit", "mechanism"))
	if circuit == "" {
		circuit = strings.ToLower(strings.TrimSpace(task.Details))
	}
	bill, known := redstoneCircuits[circuit]
	if !known {
		if circuit == "" {
			circuit = "circuit"
		}
		bill = []knowledge.ItemCount{{Name: "redstone", Count: 8}, {Name: "lever", Count: 1}}
	}
	if custom := metaItemCounts(task.Metadata, "components"); len(custom) > 0 {
		bill = custom
	}

	inv := worldctx.ExtractInventory(ctx)

	p := plan.New(task.Action, fmt.Sprintf("Wire a redstone %s", circuit))
	addBoundsRisk(p, task.Target)
	g, rootID := newGraph(p, task, p.Summary)

	missing := requireMaterials(p, inv, bill)
	for _, m := range missing {
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionCraft,
			Details:  "craft redstone components",
			Metadata: map[string]any{"item": m.Name, "quantity": m.Count},
		}, true)
	}

	p.AddStep("Sketch the circuit", plan.StepPlanning,
		fmt.Sprintf("Lay out the %s circuit on paper: signal path, timing and the trigger point.", circuit),
		map[string]any{"circuit": circuit, "components": bill})

	addNavigationStep(p, task.Target, "at the installation point")

	p.AddStep("Place the components", plan.StepAction,
		"Set the mechanism blocks first, then the activator: "+formatCounts(bill)+".",
		map[string]any{"components": bill})
	p.AddStep("Run the dust", plan.StepAction,
		"Connect the signal path with redstone dust, adding repeaters every 15 blocks of run.",
		map[string]any{"max_signal_run": 15})
	p.AddStep("Test the circuit", plan.StepQuality,
		"Trigger the circuit and watch every component respond; re-time repeaters as needed.",
		map[string]any{"circuit": circuit})
	p.AddStep("Conceal the wiring", plan.StepCleanup,
		"Cover exposed dust against rain and mob interference.",
		nil)

	if circuit == "trap" {
		p.AddRisk("trap circuits can trigger on allies; add a disarm switch")
	}

	p.EstimatedDuration = clampDuration(d.tun.RedstoneBaseMs + int64(len(bill))*800 + d.travelTime(ctx, task.Target))
	return p, nil
}
