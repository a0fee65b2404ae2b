package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Priority levels accepted on a task envelope.
const (
	PriorityLow      = "low"
	PriorityNormal   = "normal"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Task is the request envelope handed to the planner dispatch.
// Metadata is an open record; each planner documents the keys it honors
// and ignores the rest.
type Task struct {
	Action   string         `json:"action"`
	Details  string         `json:"details,omitempty"`
	Priority string         `json:"priority,omitempty"`
	Target   *Target        `json:"target,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Target is either a named location or a world coordinate. On the wire it
// may arrive as a bare string or as a {x,y,z,...} record.
type Target struct {
	X, Y, Z   float64
	HasCoords bool
	Name      string
	Label     string
	Dimension string
}

type targetRecord struct {
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
	Z         *float64 `json:"z"`
	Name      string   `json:"name,omitempty"`
	Label     string   `json:"label,omitempty"`
	Dimension string   `json:"dimension,omitempty"`
}

func (t *Target) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Target{Name: strings.TrimSpace(s)}
		return nil
	}
	var rec targetRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	*t = Target{Name: rec.Name, Label: rec.Label, Dimension: rec.Dimension}
	if rec.X != nil && rec.Y != nil && rec.Z != nil {
		t.X, t.Y, t.Z = *rec.X, *rec.Y, *rec.Z
		t.HasCoords = true
	}
	return nil
}

func (t Target) MarshalJSON() ([]byte, error) {
	if !t.HasCoords && t.Label == "" && t.Dimension == "" {
		return json.Marshal(t.Name)
	}
	rec := targetRecord{Name: t.Name, Label: t.Label, Dimension: t.Dimension}
	if t.HasCoords {
		x, y, z := t.X, t.Y, t.Z
		rec.X, rec.Y, rec.Z = &x, &y, &z
	}
	return json.Marshal(rec)
}

// Describe renders the target for step text: the label or name when
// present, otherwise the coordinate triple.
func (t *Target) Describe() string {
	if t == nil {
		return "current location"
	}
	if t.Label != "" {
		return t.Label
	}
	if t.Name != "" {
		return t.Name
	}
	if t.HasCoords {
		return fmt.Sprintf("(%d, %d, %d)", int(t.X), int(t.Y), int(t.Z))
	}
	return "current location"
}

// World height limits; targets outside are planned against anyway but
// flagged as a risk by the planners.
const (
	WorldFloorY   = -64
	WorldCeilingY = 320
)

// InWorldBounds reports whether the target's Y sits inside the build limits.
func (t *Target) InWorldBounds() bool {
	if t == nil || !t.HasCoords {
		return true
	}
	return t.Y >= WorldFloorY && t.Y <= WorldCeilingY
}

// NormalizePriority collapses unknown or empty priorities to "normal".
func NormalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	case PriorityCritical:
		return PriorityCritical
	default:
		return PriorityNormal
	}
}

// Validate checks the minimum the dispatcher requires of an envelope.
func (t *Task) Validate() string {
	if t == nil || strings.TrimSpace(t.Action) == "" {
		return ErrMissingAction
	}
	return ""
}
