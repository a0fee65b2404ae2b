// Package planners implements one planner per NPC action. Every planner
// follows the same recipe: parse metadata slots, derive context views,
// pick derived state off the knowledge tables, record missing
// preconditions as risks or prerequisite sub-tasks, emit steps in
// narrative order and price the whole thing in milliseconds.
package planners

import (
	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/registry"
	"github.com/mikeychann-hash/FGD-sub000/internal/tuning"
)

// Actions registered by RegisterAll.
const (
	ActionBuild       = "build"
	ActionMine        = "mine"
	ActionCraft       = "craft"
	ActionCombat      = "combat"
	ActionGather      = "gather"
	ActionGuard       = "guard"
	ActionExplore     = "explore"
	ActionInteract    = "interact"
	ActionEat         = "eat"
	ActionSleep       = "sleep"
	ActionDoor        = "door"
	ActionClimb       = "climb"
	ActionRedstone    = "redstone"
	ActionThrow       = "throw"
	ActionTrade       = "trade"
	ActionMinecart    = "minecart"
	ActionItemFrame   = "item_frame"
	ActionComposter   = "composter"
	ActionScaffolding = "scaffolding"
	ActionRanged      = "ranged"
)

type deps struct {
	know *knowledge.Catalogs
	tun  tuning.Tuning
}

// RegisterAll binds every action planner into the registry and sets the
// sub-plan depth bound from tuning.
func RegisterAll(reg *registry.Registry, know *knowledge.Catalogs, tun tuning.Tuning) error {
	if know == nil {
		know = knowledge.Defaults()
	}
	d := &deps{know: know, tun: tun}

	table := map[string]registry.PlannerFunc{
		ActionBuild:       d.planBuild,
		ActionMine:        d.planMine,
		ActionCraft:       d.planCraft,
		ActionCombat:      d.planCombat,
		ActionGather:      d.planGather,
		ActionGuard:       d.planGuard,
		ActionExplore:     d.planExplore,
		ActionInteract:    d.planInteract,
		ActionEat:         d.planEat,
		ActionSleep:       d.planSleep,
		ActionDoor:        d.planDoor,
		ActionClimb:       d.planClimb,
		ActionRedstone:    d.planRedstone,
		ActionThrow:       d.planThrow,
		ActionTrade:       d.planTrade,
		ActionMinecart:    d.planMinecart,
		ActionItemFrame:   d.planItemFrame,
		ActionComposter:   d.planComposter,
		ActionScaffolding: d.planScaffolding,
		ActionRanged:      d.planRanged,
	}
	for action, fn := range table {
		if err := reg.Register(action, fn); err != nil {
			return err
		}
	}
	reg.MaxDepth = tun.MaxSubPlanDepth
	return nil
}
