package plandb

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
)

func samplePlan(action, summary string) *plan.Plan {
	p := plan.New(action, summary)
	p.AddStep("Travel to the site", plan.StepMovement, "Walk there.", nil)
	p.AddStep("Do the work", plan.StepAction, "Do it.", nil)
	p.AddRisk("weather")
	p.EstimatedDuration = 4200
	return p
}

func TestSQLiteHistory_RecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")
	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	task := protocol.Task{Action: "mine", Target: &protocol.Target{Name: "quarry"}}
	if err := h.RecordPlan("req-1", task, samplePlan("mine", "Mine 8 Iron Ore")); err != nil {
		t.Fatalf("RecordPlan: %v", err)
	}
	if err := h.RecordPlan("req-2", protocol.Task{Action: "craft"}, samplePlan("craft", "Craft 4 Torch")); err != nil {
		t.Fatalf("RecordPlan: %v", err)
	}
	h.Flush()

	recent, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent returned %d rows, want 2", len(recent))
	}
	// Newest first.
	if recent[0].RequestID != "req-2" || recent[1].RequestID != "req-1" {
		t.Fatalf("order mismatch: %+v", recent)
	}
	r := recent[1]
	if r.Action != "mine" || r.Target != "quarry" || r.Summary != "Mine 8 Iron Ore" {
		t.Fatalf("row mismatch: %+v", r)
	}
	if r.DurationMs != 4200 || r.Steps != 2 {
		t.Fatalf("row mismatch: %+v", r)
	}
}

func TestSQLiteHistory_NilPlanIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")
	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	if err := h.RecordPlan("req-1", protocol.Task{Action: "warp"}, nil); err != nil {
		t.Fatalf("RecordPlan(nil): %v", err)
	}
	h.Flush()

	recent, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("nil plan was recorded: %+v", recent)
	}
}

func TestSQLiteHistory_PlanJSONSurvivesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")
	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	p := samplePlan("build", "Build a Shelter at base")
	if err := h.RecordPlan("req-9", protocol.Task{Action: "build"}, p); err != nil {
		t.Fatalf("RecordPlan: %v", err)
	}
	h.Flush()
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()

	var raw string
	if err := db.QueryRow(`SELECT plan_json FROM plans WHERE request_id='req-9'`).Scan(&raw); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	var got plan.Plan
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("Unmarshal plan_json: %v", err)
	}
	if got.Action != "build" || got.Summary != p.Summary || len(got.Steps) != 2 {
		t.Fatalf("stored plan mismatch: %+v", got)
	}
}

func TestSQLiteHistory_RecordAfterCloseIsSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")
	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := h.RecordPlan("late", protocol.Task{Action: "mine"}, samplePlan("mine", "late")); err != nil {
		t.Fatalf("RecordPlan after close: %v", err)
	}
	h.Flush()
}
