package planners

import (
	"fmt"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// compostables the planner recognizes in an inventory sweep.
var compostables = []string{
	"wheat seeds", "wheat", "carrot", "potato", "beetroot",
	"oak leaves", "oak sapling", "grass", "kelp", "melon slice",
	"pumpkin", "sugar cane", "cactus", "apple",
}

// planComposter honors metadata: material, quantity.
func (d *deps) planComposter(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	inv := worldctx.ExtractInventory(ctx)

	material := items.Normalize(metaString(task.Metadata, "material", "item"))
	quantity := metaCount(task.Metadata, "quantity", 0)
	if material == items.Unspecified {
		material, quantity = pickCompostable(inv)
	} else if quantity <= 0 {
		quantity = worldctx.CountItems(inv, material)
	}

	p := plan.New(task.Action, "Compost plant matter into bone meal")
	addBoundsRisk(p, task.Target)
	p.AddResource("composter")

	g, rootID := newGraph(p, task, p.Summary)
	if !worldctx.HasItem(inv, "composter", 1) && task.Target == nil {
		p.AddRisk("no composter placed or carried")
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionCraft,
			Details:  "craft a composter",
			Metadata: map[string]any{"item": "composter", "quantity": 1},
		}, true)
	}
	if material == items.Unspecified || quantity == 0 {
		p.AddRisk("no compostable material in inventory")
		p.AddStep("Collect plant matter", plan.StepPreparation,
			"Gather seeds, leaves or crop surplus to feed the composter.",
			nil)
		p.EstimatedDuration = clampDuration(d.tun.CompostBaseMs)
		return p, nil
	}

	p.AddResource(material)
	// Roughly seven layers per bone meal.
	expected := quantity / 7
	p.AddNote(fmt.Sprintf("Feeding %d %s; expect about %d bone meal.", quantity, items.DisplayName(material), expected))

	addNavigationStep(p, task.Target, "to reach the composter")

	p.AddStep("Load the composter", plan.StepProcessing,
		fmt.Sprintf("Feed %s into the composter one handful at a time until each layer fills.", items.DisplayName(material)),
		map[string]any{"material": material, "quantity": quantity})
	p.AddStep("Collect bone meal", plan.StepInventory,
		"Pull the bone meal as each cycle completes and keep feeding.",
		map[string]any{"expected_bone_meal": expected})
	p.AddStep("Stow the output", plan.StepStorage,
		"Bank the bone meal with the farming supplies.",
		nil)

	p.EstimatedDuration = clampDuration(d.tun.CompostBaseMs + int64(quantity)*250 + d.travelTime(ctx, task.Target))
	return p, nil
}

// pickCompostable returns the biggest compostable stack carried.
func pickCompostable(inv []worldctx.ItemStack) (string, int) {
	best, bestCount := items.Unspecified, 0
	for _, c := range compostables {
		if n := worldctx.CountItems(inv, c); n > bestCount {
			best, bestCount = c, n
		}
	}
	// Generic leaves/seeds fallback by suffix.
	if bestCount == 0 {
		for _, s := range inv {
			if strings.HasSuffix(s.Name, "seeds") || strings.HasSuffix(s.Name, "leaves") || strings.HasSuffix(s.Name, "sapling") {
				return s.Name, s.Count
			}
		}
	}
	return best, bestCount
}
