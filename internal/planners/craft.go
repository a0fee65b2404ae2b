package planners

import (
	"fmt"
	"math"
	"sort"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planCraft honors metadata: item, quantity, exactQuantity,
// maintainMinimum, desiredStock, buffer, station, ingredients,
// enchantments.
func (d *deps) planCraft(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	item := primaryResource(task, "item", "output")
	if item == items.Unspecified {
		return nil, fmt.Errorf("craft: no item to craft")
	}

	inv := worldctx.ExtractInventory(ctx)
	have := worldctx.CountItems(inv, item)
	quantity, rationale := reconcileQuantity(task.Metadata, have)

	recipe, hasRecipe := d.know.Recipes.ByID[item]
	station := items.Normalize(metaString(task.Metadata, "station"))
	if station == items.Unspecified {
		if hasRecipe && recipe.Station != "" {
			station = items.Normalize(recipe.Station)
		} else {
			station = "crafting table"
		}
	}
	ingredients := metaItemCounts(task.Metadata, "ingredients")
	if len(ingredients) == 0 && hasRecipe {
		ingredients = recipe.Ingredients
	}

	p := plan.New(task.Action, fmt.Sprintf("Craft %d %s at the %s", quantity, items.DisplayName(item), station))
	p.AddResource(item)
	p.AddResource(station)

	g, rootID := newGraph(p, task, p.Summary)

	p.AddStep("Assess stock levels", plan.StepAnalysis,
		fmt.Sprintf("Holding %d %s; target output is %d (%s).", have, items.DisplayName(item), quantity, rationale),
		map[string]any{"item": item, "have": have, "quantity": quantity})
	p.AddNote(fmt.Sprintf("Quantity %d chosen: %s.", quantity, rationale))

	if quantity == 0 {
		p.AddNote("Stock already satisfies the request; nothing to craft.")
		p.AddStep("Verify ingredients", plan.StepInventory,
			"Confirm current stock on hand; no crafting run needed.",
			map[string]any{"item": item})
		p.EstimatedDuration = clampDuration(d.tun.CraftBaseMs / 4)
		return p, nil
	}

	// Batches needed given the recipe's output count.
	batches := quantity
	if hasRecipe && recipe.OutputCount > 1 {
		batches = int(math.Ceil(float64(quantity) / float64(recipe.OutputCount)))
	}

	needed := make([]knowledge.ItemCount, 0, len(ingredients))
	for _, ing := range ingredients {
		needed = append(needed, knowledge.ItemCount{Name: ing.Name, Count: ing.Count * batches})
	}
	missing := requireMaterials(p, inv, needed)

	if len(missing) == 0 {
		p.AddStep("Verify ingredients", plan.StepInventory,
			"All ingredients on hand: "+formatCounts(needed)+".",
			map[string]any{"ingredients": needed})
	} else {
		p.AddStep("Restock ingredients", plan.StepInventory,
			"Acquire the shortfall before crafting: "+formatCounts(missing)+".",
			map[string]any{"missing": missing})
		for _, m := range missing {
			subPlanResult(p, ctx, g, rootID, protocol.Task{
				Action:   ActionGather,
				Details:  "gather " + m.Name + " for crafting",
				Metadata: map[string]any{"resource": m.Name, "quantity": m.Count},
			}, true)
		}
	}

	p.AddStep("Move to workstation", plan.StepMovement,
		fmt.Sprintf("Stand at the %s with ingredients in the hotbar.", station),
		map[string]any{"station": station})

	smelting := hasRecipe && recipe.Smelted || station == "furnace" || station == "blast furnace" || station == "smoker"
	var smeltTime int64
	if smelting {
		smeltTime = d.planFuel(p, inv, quantity)
	}

	p.AddStep("Craft item", plan.StepCrafting,
		fmt.Sprintf("Run %d batch(es) producing %d %s.", batches, quantity, items.DisplayName(item)),
		map[string]any{"item": item, "quantity": quantity, "batches": batches, "station": station})

	if enchants := metaStrings(task.Metadata, "enchantments"); len(enchants) > 0 {
		ordered, cost := d.know.Enchantments.OptimizeOrder(enchants)
		p.AddStep("Apply enchantments", plan.StepCrafting,
			"Enchant in cost order: "+joinList(ordered)+".",
			map[string]any{"order": ordered, "heuristic_cost": cost})
		p.AddResource("enchanting table")
	}

	p.AddStep("Store output", plan.StepStorage,
		fmt.Sprintf("Move finished %s into storage or the active loadout.", items.DisplayName(item)),
		map[string]any{"item": item, "quantity": quantity})

	dur := d.tun.CraftBaseMs +
		int64(len(ingredients))*d.tun.CraftPerIngredientMs +
		int64(quantity-1)*d.tun.CraftPerItemMs +
		smeltTime
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}

// reconcileQuantity applies the craft quantity rules: exactQuantity
// overrides everything; otherwise max(base, maintain deficit, stock
// deficit) plus buffer.
func reconcileQuantity(meta map[string]any, have int) (int, string) {
	if exact := metaCount(meta, "exactQuantity", 0); exact > 0 {
		return exact, "exactQuantity override"
	}
	base := metaCount(meta, "quantity", 1)
	if base < 0 {
		base = 1
	}
	want := base
	rationale := fmt.Sprintf("requested %d", base)

	if min := metaCount(meta, "maintainMinimum", 0); min > 0 {
		if deficit := min - have; deficit > want {
			want = deficit
			rationale = fmt.Sprintf("maintainMinimum %d minus %d on hand", min, have)
		}
	}
	if stock := metaCount(meta, "desiredStock", 0); stock > 0 {
		if deficit := stock - have; deficit > want {
			want = deficit
			rationale = fmt.Sprintf("desiredStock %d minus %d on hand", stock, have)
		}
	}
	if want < 0 {
		want = 0
	}
	if buffer := metaCount(meta, "buffer", 0); buffer > 0 && want > 0 {
		want += buffer
		rationale += fmt.Sprintf(" plus buffer %d", buffer)
	}
	return want, rationale
}

// planFuel picks a furnace fuel and emits the load-fuel step. The rule:
// among fuels the inventory holds enough of, prefer higher efficiency,
// then lower category ordinal. With no adequate fuel the step still
// names the preferred option and a risk is recorded.
func (d *deps) planFuel(p *plan.Plan, inv []worldctx.ItemStack, quantity int) int64 {
	type option struct {
		def   knowledge.FuelDef
		units int
	}
	var candidates []option
	var all []knowledge.FuelDef
	for _, def := range d.know.Fuels.ByID {
		all = append(all, def)
		if def.Efficiency <= 0 {
			continue
		}
		units := int(math.Ceil(float64(quantity) / def.Efficiency))
		if worldctx.HasItem(inv, def.Item, units) {
			candidates = append(candidates, option{def: def, units: units})
		}
	}
	byPreference := func(a, b knowledge.FuelDef) bool {
		if a.Efficiency != b.Efficiency {
			return a.Efficiency > b.Efficiency
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Item < b.Item
	}

	var chosen knowledge.FuelDef
	var units int
	if len(candidates) > 0 {
		sort.Slice(candidates, func(i, j int) bool { return byPreference(candidates[i].def, candidates[j].def) })
		chosen, units = candidates[0].def, candidates[0].units
	} else {
		sort.Slice(all, func(i, j int) bool { return byPreference(all[i], all[j]) })
		if len(all) > 0 {
			chosen = all[0]
			units = int(math.Ceil(float64(quantity) / chosen.Efficiency))
		}
		p.AddRisk("no fuel in inventory for smelting")
	}
	if chosen.Item == "" {
		return int64(quantity) * d.tun.SmeltPerItemMs
	}

	p.AddResource(chosen.Item)
	p.AddStep("Load fuel", plan.StepProcessing,
		fmt.Sprintf("Feed %d %s into the furnace fuel slot.", units, items.DisplayName(chosen.Item)),
		map[string]any{"fuel": chosen.Item, "units": units})
	return int64(quantity) * d.tun.SmeltPerItemMs
}

func formatCounts(list []knowledge.ItemCount) string {
	reqs := make([]items.Requirement, 0, len(list))
	for _, e := range list {
		reqs = append(reqs, items.Requirement{Name: e.Name, Count: e.Count})
	}
	return items.FormatRequirements(reqs)
}

func joinList(list []string) string {
	out := ""
	for i, s := range list {
		if i > 0 {
			if i == len(list)-1 {
				out += " then "
			} else {
				out += ", "
			}
		}
		out += s
	}
	return out
}
