package planners

import (
	"fmt"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// planTrade honors metadata: villager, profession, offer, want,
// maxEmeralds.
func (d *deps) planTrade(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	villager := metaString(task.Metadata, "villager")
	profession := metaString(task.Metadata, "profession")
	offer := metaItemCounts(task.Metadata, "offer")
	want := metaItemCounts(task.Metadata, "want")
	budget := metaCount(task.Metadata, "maxEmeralds", 0)

	counterparty := "the villager"
	if villager != "" {
		counterparty = villager
	} else if profession != "" {
		counterparty = "the " + profession
	}

	inv := worldctx.ExtractInventory(ctx)

	p := plan.New(task.Action, "Trade with "+counterparty)
	addBoundsRisk(p, task.Target)

	for _, e := range offer {
		p.AddResource(e.Name)
		if have := worldctx.CountItems(inv, e.Name); have < e.Count {
			p.AddRisk(fmt.Sprintf("short %d %s for the offer", e.Count-have, items.DisplayName(e.Name)))
		}
	}
	emeralds := worldctx.CountItems(inv, "emerald")
	if budget > 0 {
		p.AddResource("emerald")
		if emeralds < budget {
			p.AddRisk(fmt.Sprintf("only %d emeralds carried against a budget of %d", emeralds, budget))
		}
		p.AddNote(fmt.Sprintf("Spending cap: %d emeralds.", budget))
	}

	addNavigationStep(p, task.Target, "to find "+counterparty)

	p.AddStep("Approach "+counterparty, plan.StepMovement,
		"Close calmly without hostile mobs in tow; a hurt villager raises prices.",
		map[string]any{"villager": villager, "profession": profession})
	p.AddStep("Browse the offers", plan.StepAnalysis,
		"Review the trade screen and compare prices against "+describeTransfer(want)+".",
		map[string]any{"want": want})
	p.AddStep("Execute the trade", plan.StepInteraction,
		"Exchange "+describeTransfer(offer)+" for "+describeTransfer(want)+".",
		map[string]any{"offer": offer, "want": want})
	p.AddStep("Secure the goods", plan.StepInventory,
		"Confirm received goods against the expected list before leaving the stall.",
		map[string]any{"want": want})

	p.AddRisk("offer may be out of stock or repriced after recent trades")

	p.EstimatedDuration = clampDuration(d.tun.TradeBaseMs + int64(len(offer)+len(want))*700 + d.travelTime(ctx, task.Target))
	return p, nil
}
