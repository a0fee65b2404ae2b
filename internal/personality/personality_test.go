package personality

import (
	"strings"
	"testing"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
)

func basePlan() *plan.Plan {
	p := plan.New("mine", "Mine 24 iron ore")
	p.EstimatedDuration = 10000
	p.AddStep("Mine iron ore", plan.StepAction, "Extract blocks", nil)
	return p
}

func TestApplyEmptyTraitsIsIdentity(t *testing.T) {
	p := basePlan()
	out := Apply(p, nil, 0.25)
	if out.EstimatedDuration != 10000 || len(out.Notes) != 0 {
		t.Fatalf("empty traits changed the plan: %+v", out)
	}
	if Apply(nil, map[string]float64{TraitPatience: 1}, 0.25) != nil {
		t.Fatalf("nil plan should pass through")
	}
}

func TestApplyPatienceStretches(t *testing.T) {
	p := basePlan()
	Apply(p, map[string]float64{TraitPatience: 1.0}, 0.25)
	// patience contributes (1.0-0.5)*0.25 = +12.5%.
	if p.EstimatedDuration != 11250 {
		t.Fatalf("duration = %d, want 11250", p.EstimatedDuration)
	}
}

func TestApplyAggressionCompresses(t *testing.T) {
	p := basePlan()
	Apply(p, map[string]float64{TraitAggression: 1.0}, 0.25)
	if p.EstimatedDuration != 8750 {
		t.Fatalf("duration = %d, want 8750", p.EstimatedDuration)
	}
}

func TestApplyBiasClamped(t *testing.T) {
	p := basePlan()
	Apply(p, map[string]float64{TraitPatience: 1.0, TraitAggression: 0.0}, 0.25)
	// Both halves push the same way; the swing still caps at +25%.
	if p.EstimatedDuration != 12500 {
		t.Fatalf("duration = %d, want 12500", p.EstimatedDuration)
	}
}

func TestApplyDurationNeverBelowOne(t *testing.T) {
	p := basePlan()
	p.EstimatedDuration = 1
	Apply(p, map[string]float64{TraitAggression: 1.0}, 0.25)
	if p.EstimatedDuration < 1 {
		t.Fatalf("duration = %d", p.EstimatedDuration)
	}
}

func TestApplyDoesNotTouchSteps(t *testing.T) {
	p := basePlan()
	Apply(p, map[string]float64{TraitAggression: 0.9, TraitEmpathy: 0.9}, 0.25)
	if len(p.Steps) != 1 || p.Steps[0].Title != "Mine iron ore" {
		t.Fatalf("steps changed: %+v", p.Steps)
	}
	if p.Action != "mine" || p.Summary != "Mine 24 iron ore" {
		t.Fatalf("action/summary changed")
	}
}

func TestApplyEmpathyReordersAllyRisks(t *testing.T) {
	p := basePlan()
	p.AddRisk("lava pocket below the seam")
	p.AddRisk("crossfire may hit an ally")
	Apply(p, map[string]float64{TraitEmpathy: 0.9}, 0.25)
	if p.Risks[0] != "crossfire may hit an ally" {
		t.Fatalf("ally risk not surfaced first: %v", p.Risks)
	}
	if len(p.Risks) != 2 {
		t.Fatalf("risks dropped: %v", p.Risks)
	}
}

func TestApplyEmphasisNotePrepended(t *testing.T) {
	p := basePlan()
	p.AddNote("existing note")
	Apply(p, map[string]float64{TraitAggression: 0.8}, 0.25)
	if len(p.Notes) != 2 {
		t.Fatalf("notes = %v", p.Notes)
	}
	if !strings.HasPrefix(p.Notes[0], "Personality emphasis:") {
		t.Fatalf("emphasis note missing: %v", p.Notes)
	}
	if !strings.Contains(p.Notes[0], "favoring speed over caution") {
		t.Fatalf("aggression emphasis missing: %q", p.Notes[0])
	}
	if p.Notes[1] != "existing note" {
		t.Fatalf("existing note displaced: %v", p.Notes)
	}
}

func TestApplyOutOfRangeTraitsClamped(t *testing.T) {
	p := basePlan()
	Apply(p, map[string]float64{TraitPatience: 7.5}, 0.25)
	if p.EstimatedDuration != 11250 {
		t.Fatalf("trait not clamped to 1: duration = %d", p.EstimatedDuration)
	}
}
