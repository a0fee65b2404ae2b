package planners

import (
	"fmt"
	"math"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// Climb methods, in preference order for an ascent.
const (
	climbScaffolding = "scaffolding"
	climbLadder      = "ladder"
	climbPillar      = "pillar"
	climbNatural     = "natural"
)

// planClimb honors metadata: method, height.
func (d *deps) planClimb(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	if task.Target == nil || !task.Target.HasCoords {
		return nil, fmt.Errorf("climb: no target position")
	}
	pos := worldctx.Position(ctx)
	fromY := 64.0
	if pos != nil {
		fromY = pos.Y
	}
	delta := int(math.Round(task.Target.Y - fromY))
	height := metaCount(task.Metadata, "height", 0)
	if height != 0 {
		delta = height
	}
	ascending := delta >= 0
	blocks := delta
	if blocks < 0 {
		blocks = -blocks
	}

	inv := worldctx.ExtractInventory(ctx)
	method := pickClimbMethod(task, inv, blocks, ascending)

	verb := "Climb"
	if !ascending {
		verb = "Descend"
	}
	p := plan.New(task.Action, fmt.Sprintf("%s %d blocks to %s by %s", verb, blocks, task.Target.Describe(), method))
	addBoundsRisk(p, task.Target)
	p.AddNote(fmt.Sprintf("Selected climb method: %s.", method))

	addNavigationStep(p, task.Target, "to the base of the climb")

	switch method {
	case climbScaffolding:
		p.AddResource("scaffolding")
		p.AddStep("Place scaffolding", plan.StepPreparation,
			fmt.Sprintf("Stack scaffolding %d high against the face.", blocks),
			map[string]any{"maneuver": "place_scaffolding", "method": method, "blocks": blocks})
		p.AddStep("Climb scaffolding", plan.StepMovement,
			"Ascend inside the scaffolding column to the target level.",
			map[string]any{"maneuver": "climb_scaffolding", "method": method})
	case climbLadder:
		p.AddResource("ladder")
		p.AddStep("Pin ladders", plan.StepPreparation,
			fmt.Sprintf("Fix %d ladder segments up the face.", blocks),
			map[string]any{"maneuver": "place_ladder", "method": method, "blocks": blocks})
		p.AddStep("Climb the ladder", plan.StepMovement,
			"Climb the ladder line to the target level.",
			map[string]any{"maneuver": "climb_ladder", "method": method})
	case climbPillar:
		p.AddStep("Pillar up", plan.StepMovement,
			fmt.Sprintf("Jump-place %d blocks beneath you to rise to the target level.", blocks),
			map[string]any{"maneuver": "pillar_jump", "method": method, "blocks": blocks})
		p.AddRisk("pillar climbing leaves no protected retreat")
	default:
		p.AddStep("Free climb the terrain", plan.StepMovement,
			"Pick the natural ledges and staircase the slope where gaps exceed one block.",
			map[string]any{"maneuver": "free_climb", "method": method})
	}

	if blocks > 20 {
		if ascending {
			p.AddRisk(fmt.Sprintf("fall risk: %d block ascent with no margin for error", blocks))
		} else {
			p.AddRisk(fmt.Sprintf("fall risk: %d block descent; use water or staged drops", blocks))
		}
		p.AddStep("Rig fall protection", plan.StepSafety,
			"Keep a water bucket hotbarred and never back off an unguarded edge.",
			map[string]any{"drop_height": blocks})
	}

	if !ascending && method == climbNatural {
		p.AddNote("Descending: prefer a water drop if a bucket is carried.")
	}

	p.AddStep("Confirm arrival", plan.StepAwareness,
		"Verify footing at the target level and dismantle temporary blocks if required.",
		map[string]any{"y": task.Target.Y})

	dur := d.tun.ClimbBaseMs + int64(blocks)*d.tun.ClimbPerBlockMs + d.travelTime(ctx, task.Target)
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}

func pickClimbMethod(task protocol.Task, inv []worldctx.ItemStack, blocks int, ascending bool) string {
	if m := strings.ToLower(metaString(task.Metadata, "method")); m != "" {
		switch m {
		case climbScaffolding, climbLadder, climbPillar, climbNatural:
			return m
		}
	}
	if !ascending || blocks == 0 {
		return climbNatural
	}
	if worldctx.HasItem(inv, "scaffolding", blocks) {
		return climbScaffolding
	}
	if worldctx.HasItem(inv, "ladder", (blocks+2)/3) {
		return climbLadder
	}
	if worldctx.CountItems(inv, "cobblestone")+worldctx.CountItems(inv, "dirt") >= blocks {
		return climbPillar
	}
	return climbNatural
}
