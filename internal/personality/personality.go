// Package personality post-processes a finished plan in light of the
// NPC's trait vector. It may retime the plan, reorder risks and prepend
// one note; it never touches steps, action or summary.
package personality

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
)

// Trait names the layer reads. Values are in [0,1]; absent traits read
// as the neutral 0.5.
const (
	TraitPatience   = "patience"
	TraitAggression = "aggression"
	TraitEmpathy    = "empathy"
	TraitLoyalty    = "loyalty"
	TraitCuriosity  = "curiosity"
	TraitCreativity = "creativity"
	TraitMotivation = "motivation"
)

// Apply adjusts p in place and returns it. maxBias caps the duration
// swing as a fraction (0.25 means at most ±25%). A nil or empty trait
// vector leaves the plan untouched.
func Apply(p *plan.Plan, traits map[string]float64, maxBias float64) *plan.Plan {
	if p == nil || len(traits) == 0 {
		return p
	}
	if maxBias <= 0 {
		maxBias = 0.25
	}

	patience := trait(traits, TraitPatience)
	aggression := trait(traits, TraitAggression)

	// Patience stretches the schedule; aggression compresses it. Each
	// contributes half the allowed swing.
	bias := (patience-0.5)*maxBias + (0.5-aggression)*maxBias
	if bias > maxBias {
		bias = maxBias
	}
	if bias < -maxBias {
		bias = -maxBias
	}
	if p.EstimatedDuration > 0 {
		adjusted := int64(float64(p.EstimatedDuration) * (1 + bias))
		if adjusted < 1 {
			adjusted = 1
		}
		p.EstimatedDuration = adjusted
	}

	// Protective NPCs read ally-harming risks first.
	if trait(traits, TraitEmpathy) > 0.6 || trait(traits, TraitLoyalty) > 0.6 {
		sort.SliceStable(p.Risks, func(i, j int) bool {
			return allyRisk(p.Risks[i]) && !allyRisk(p.Risks[j])
		})
	}

	if note := emphasisNote(traits, bias); note != "" {
		p.Notes = append([]string{note}, p.Notes...)
	}
	return p
}

func trait(traits map[string]float64, name string) float64 {
	v, ok := traits[name]
	if !ok {
		return 0.5
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func allyRisk(risk string) bool {
	r := strings.ToLower(risk)
	return strings.Contains(r, "ally") || strings.Contains(r, "allies") || strings.Contains(r, "squad") || strings.Contains(r, "friendly")
}

func emphasisNote(traits map[string]float64, bias float64) string {
	var emphases []string
	if trait(traits, TraitAggression) > 0.7 {
		emphases = append(emphases, "favoring speed over caution")
	}
	if trait(traits, TraitPatience) > 0.7 {
		emphases = append(emphases, "taking the careful route")
	}
	if trait(traits, TraitCuriosity) > 0.7 {
		emphases = append(emphases, "open to detours worth investigating")
	}
	if trait(traits, TraitEmpathy) > 0.7 || trait(traits, TraitLoyalty) > 0.7 {
		emphases = append(emphases, "ally safety first")
	}
	if len(emphases) == 0 {
		if bias == 0 {
			return ""
		}
		return fmt.Sprintf("Personality adjusted pacing by %+.0f%%.", bias*100)
	}
	return "Personality emphasis: " + strings.Join(emphases, "; ") + "."
}
