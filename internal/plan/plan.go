// Package plan holds the value types a planner produces: steps, plans and
// the dependency graph of sub-tasks. Everything here is plain data owned
// by the caller; the only process-wide state is the node id counter in
// graph.go.
package plan

import (
	"encoding/json"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
)

// Step kinds. The executor treats these as routing tags only.
const (
	StepPreparation  = "preparation"
	StepMovement     = "movement"
	StepAction       = "action"
	StepSafety       = "safety"
	StepInventory    = "inventory"
	StepPlanning     = "planning"
	StepStrategy     = "strategy"
	StepManeuver     = "maneuver"
	StepCoordination = "coordination"
	StepCleanup      = "cleanup"
	StepContingency  = "contingency"
	StepQuality      = "quality"
	StepReport       = "report"
	StepProcessing   = "processing"
	StepStorage      = "storage"
	StepAnalysis     = "analysis"
	StepMaintenance  = "maintenance"
	StepAdaptation   = "adaptation"
	StepAwareness    = "awareness"
	StepCrafting     = "crafting"
	StepInteraction  = "interaction"
	StepSecurity     = "security"
)

// Step is one executable direction inside a plan. Command is an opaque
// string passed through to the executor; Metadata carries whatever the
// planner knows about the step.
type Step struct {
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Command     string         `json:"command,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// NewStep copies metadata so the caller cannot mutate the stored step
// through the input map.
func NewStep(title, typ, description string, meta map[string]any) Step {
	return Step{
		Title:       title,
		Type:        typ,
		Description: description,
		Metadata:    cloneMeta(meta),
	}
}

// SubTask records one node of the task graph together with the plan the
// registry produced for it (nil when no planner was registered).
type SubTask struct {
	ID     string        `json:"id"`
	Action string        `json:"action"`
	Task   protocol.Task `json:"task"`
	Plan   *Plan         `json:"plan"`
}

// Plan is a planner's structured output.
type Plan struct {
	Action            string     `json:"action"`
	Summary           string     `json:"summary"`
	EstimatedDuration int64      `json:"estimated_duration_ms"`
	Resources         []string   `json:"resources"`
	Steps             []Step     `json:"steps"`
	Risks             []string   `json:"risks"`
	Notes             []string   `json:"notes"`
	TaskGraph         *TaskGraph `json:"task_graph,omitempty"`
	SubTasks          []SubTask  `json:"sub_tasks,omitempty"`
}

// New returns an empty plan for the given action.
func New(action, summary string) *Plan {
	return &Plan{
		Action:    action,
		Summary:   summary,
		Resources: []string{},
		Steps:     []Step{},
		Risks:     []string{},
		Notes:     []string{},
	}
}

// AddStep appends a step built via NewStep.
func (p *Plan) AddStep(title, typ, description string, meta map[string]any) *Step {
	p.Steps = append(p.Steps, NewStep(title, typ, description, meta))
	return &p.Steps[len(p.Steps)-1]
}

// AddResource records a canonical resource name. The unspecified sentinel
// and duplicates are dropped.
func (p *Plan) AddResource(name string) {
	c := items.Normalize(name)
	if c == items.Unspecified {
		return
	}
	for _, r := range p.Resources {
		if r == c {
			return
		}
	}
	p.Resources = append(p.Resources, c)
}

// AddRisk records a risk once; empty strings are dropped.
func (p *Plan) AddRisk(risk string) {
	p.Risks = appendUnique(p.Risks, risk)
}

// AddNote records a note once; empty strings are dropped.
func (p *Plan) AddNote(note string) {
	p.Notes = appendUnique(p.Notes, note)
}

// HasRisk reports whether the exact risk string is already recorded.
func (p *Plan) HasRisk(risk string) bool {
	for _, r := range p.Risks {
		if r == risk {
			return true
		}
	}
	return false
}

func appendUnique(list []string, s string) []string {
	if s == "" {
		return list
	}
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func cloneMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	// Round-trip through JSON: cheap deep copy for serializable metadata,
	// and it surfaces non-serializable values early.
	b, err := json.Marshal(meta)
	if err != nil {
		out := make(map[string]any, len(meta))
		for k, v := range meta {
			out[k] = v
		}
		return out
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]any{}
	}
	return out
}
