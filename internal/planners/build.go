package planners

import (
	"fmt"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// buildPhase is one state of the construction sequence. CanParallel
// lists phases that may overlap with it; the hints are advisory, the
// steps array stays the authoritative order.
type buildPhase struct {
	Name         string
	CriticalPath bool
	CanParallel  []string
}

// buildPhases returns the phase sequence for a template. The redstone
// phase only exists when the template wires any.
func buildPhases(tpl knowledge.TemplateDef) []buildPhase {
	phases := []buildPhase{
		{Name: "site_preparation", CriticalPath: true},
		{Name: "foundation", CriticalPath: true},
		{Name: "framework", CriticalPath: true},
		{Name: "walls", CriticalPath: true},
		{Name: "floors", CanParallel: []string{"lighting"}},
	}
	if tpl.Lighting {
		phases = append(phases, buildPhase{Name: "lighting", CanParallel: []string{"floors"}})
	}
	phases = append(phases,
		buildPhase{Name: "roof", CriticalPath: true},
		buildPhase{Name: "weatherproofing"},
		buildPhase{Name: "interior_walls"},
	)
	if tpl.Redstone {
		phases = append(phases, buildPhase{Name: "redstone"})
	}
	phases = append(phases,
		buildPhase{Name: "furnishing"},
		buildPhase{Name: "exterior_decoration"},
		buildPhase{Name: "final_inspection", CriticalPath: true},
	)
	return phases
}

// planBuild honors metadata: template, terrain, materials, dimensions.
func (d *deps) planBuild(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
	if task.Target == nil {
		return nil, fmt.Errorf("build: no build site target")
	}

	templateID := strings.ToLower(metaString(task.Metadata, "template", "blueprint"))
	if templateID == "" {
		templateID = strings.ToLower(strings.TrimSpace(task.Details))
	}
	tpl, hasTemplate := d.know.Templates.ByID[templateID]
	if !hasTemplate {
		// Unknown templates build as a generic shelter-sized structure.
		tpl = knowledge.TemplateDef{ID: templateID, Size: [3]int{5, 4, 5}, BaseTimeMs: d.tun.BuildBaseMs, Lighting: true}
		if templateID == "" {
			tpl.ID = "structure"
		}
	}
	if mats := metaItemCounts(task.Metadata, "materials"); len(mats) > 0 {
		tpl.Materials = mats
	}

	terrainID := strings.ToLower(metaString(task.Metadata, "terrain"))
	terrain, hasTerrain := d.know.Terrain.ByID[terrainID]
	if !hasTerrain {
		terrain = d.know.Terrain.ByID["flat"]
	}

	inv := worldctx.ExtractInventory(ctx)
	sig := worldctx.ExtractSignals(ctx)

	p := plan.New(task.Action, fmt.Sprintf("Build a %s at %s", items.DisplayName(items.Normalize(tpl.ID)), task.Target.Describe()))
	addBoundsRisk(p, task.Target)
	g, rootID := newGraph(p, task, p.Summary)

	missing := requireMaterials(p, inv, tpl.Materials)
	for _, m := range missing {
		subPlanResult(p, ctx, g, rootID, protocol.Task{
			Action:   ActionGather,
			Details:  "gather " + m.Name + " for construction",
			Metadata: map[string]any{"resource": m.Name, "quantity": m.Count},
		}, true)
	}

	p.AddStep("Survey the site", plan.StepPlanning,
		fmt.Sprintf("Walk the %dx%dx%d footprint at %s and peg the corners.", tpl.Size[0], tpl.Size[1], tpl.Size[2], task.Target.Describe()),
		map[string]any{"template": tpl.ID, "size": tpl.Size})

	prepDesc := "Level and clear the footprint."
	if len(terrain.Considerations) > 0 {
		prepDesc = "Prepare the " + terrain.ID + " site: " + strings.Join(terrain.Considerations, "; ") + "."
	}
	p.AddStep("Prepare terrain", plan.StepPreparation, prepDesc,
		map[string]any{
			"terrain":           terrain.ID,
			"considerations":    terrain.Considerations,
			"clearance_time_ms": terrain.ClearanceTimeMs,
		})
	for _, r := range terrain.Risks {
		p.AddRisk(r)
	}

	p.AddStep("Stage materials", plan.StepInventory,
		"Stack materials at the site edge, sorted by phase: "+formatCounts(tpl.Materials)+".",
		map[string]any{"materials": tpl.Materials})

	addNavigationStep(p, task.Target, "to begin construction")

	phases := buildPhases(tpl)
	phaseNames := make([]string, 0, len(phases))
	for _, ph := range phases {
		phaseNames = append(phaseNames, ph.Name)
	}
	p.AddNote("Construction phases: " + strings.Join(phaseNames, " -> ") + ".")
	for _, ph := range phases {
		meta := map[string]any{"phase": ph.Name, "critical_path": ph.CriticalPath}
		if len(ph.CanParallel) > 0 {
			meta["can_parallel"] = ph.CanParallel
		}
		p.AddStep("Phase: "+ph.Name, plan.StepAction, phaseDescription(ph.Name, tpl), meta)
	}

	if sig.Raining {
		p.AddRisk("rain will slow exterior work")
	}
	if sig.Night || sig.LowLight {
		p.AddRisk("building in the dark; light the site perimeter first")
	}

	p.AddStep("Final walkthrough", plan.StepQuality,
		"Check the finished build against the template: sealed walls, lit interior, doors hung.",
		map[string]any{"template": tpl.ID})

	base := tpl.BaseTimeMs
	if base <= 0 {
		base = d.tun.BuildBaseMs
	}
	for _, m := range tpl.Materials {
		base += int64(m.Count) * 50
	}
	dur := int64(float64(base)*terrain.TimeMultiplier) + terrain.ClearanceTimeMs + d.travelTime(ctx, task.Target)
	p.EstimatedDuration = clampDuration(dur)
	return p, nil
}

func phaseDescription(name string, tpl knowledge.TemplateDef) string {
	switch name {
	case "site_preparation":
		return "Strip vegetation, flatten the pad and mark the footprint."
	case "foundation":
		return "Lay the foundation course level and square."
	case "framework":
		return "Raise corner pillars and the structural frame."
	case "walls":
		return "Fill the wall panels between frame members."
	case "floors":
		return "Deck each storey's floor."
	case "lighting":
		return "Place interior and perimeter torches as floors close up."
	case "roof":
		return "Close the roof from the eaves to the ridge."
	case "weatherproofing":
		return "Seal gaps against rain and mob entry."
	case "interior_walls":
		return "Partition the interior rooms."
	case "redstone":
		return "Run the redstone circuits and test each mechanism."
	case "furnishing":
		return "Place workstations, storage and beds."
	case "exterior_decoration":
		return "Finish trim, paths and exterior detail."
	case "final_inspection":
		return "Inspect every phase's work and fix defects before handover."
	default:
		return "Complete the " + name + " phase of the " + tpl.ID + "."
	}
}
