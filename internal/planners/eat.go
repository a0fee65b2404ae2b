package planners

import (
	"fmt"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planEat honors metadata: food, hungerLevel.
func (d *deps) planEat(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	inv := worldctx.ExtractInventory(ctx)
	requested := items.Normalize(metaString(task.Metadata, "food", "item"))
	hunger := metaCount(task.Metadata, "hungerLevel", 10)

	var choice string
	var def knowledge.FoodDef
	if requested != items.Unspecified && worldctx.HasItem(inv, requested, 1) {
		choice = requested
		def = d.know.Foods.ByID[requested]
	} else {
		choice, def = bestCarriedFood(d, inv)
	}

	p := plan.New(task.Action, "Eat to restore hunger")
	if choice == "" {
		p.AddRisk("no food in inventory")
		g, rootID := newGraph(p, task, p.Summary)
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionGather,
			Details:  "forage or hunt for food",
			Metadata: map[string]any{"resource": "raw beef", "quantity": 3},
		}, true)
		p.AddStep("Find something edible", plan.StepPreparation,
			"Hunt, harvest or withdraw food before hunger bottoms out.",
			nil)
		p.EstimatedDuration = clampDuration(d.tun.EatBaseMs)
		return p, nil
	}

	p.Summary = fmt.Sprintf("Eat %s to restore hunger", items.DisplayName(choice))
	p.AddResource(choice)
	if requested != items.Unspecified && choice != requested {
		p.AddNote(fmt.Sprintf("Requested %s not carried; eating %s instead.", items.DisplayName(requested), items.DisplayName(choice)))
	}
	if def.Hunger > 0 {
		p.AddNote(fmt.Sprintf("%s restores %d hunger (%.1f saturation).", items.DisplayName(choice), def.Hunger, def.Saturation))
	}
	if hunger <= 6 {
		p.AddRisk("hunger critical; sprinting and healing are impaired until fed")
	}

	p.AddStep("Break from activity", plan.StepSafety,
		"Step clear of hazards and hostiles before lowering your guard to eat.",
		nil)
	p.AddStep("Eat "+items.DisplayName(choice), plan.StepAction,
		fmt.Sprintf("Hold and consume the %s.", items.DisplayName(choice)),
		map[string]any{"food": choice})
	p.AddStep("Check hunger bar", plan.StepAwareness,
		"Eat a second portion if hunger is still below comfortable.",
		map[string]any{"food": choice})

	p.EstimatedDuration = clampDuration(d.tun.EatBaseMs)
	return p, nil
}

// bestCarriedFood picks the carried food with the highest hunger value,
// breaking ties by saturation.
func bestCarriedFood(d *deps, inv []worldctx.ItemStack) (string, knowledge.FoodDef) {
	best := ""
	var bestDef knowledge.FoodDef
	for item, def := range d.know.Foods.ByID {
		if !worldctx.HasItem(inv, item, 1) {
			continue
		}
		if best == "" || def.Hunger > bestDef.Hunger ||
			(def.Hunger == bestDef.Hunger && def.Saturation > bestDef.Saturation) ||
			(def.Hunger == bestDef.Hunger && def.Saturation == bestDef.Saturation && item < best) {
			best, bestDef = item, def
		}
	}
	return best, bestDef
}
