package planners

import (
	"fmt"
	"math"
	"strings"

	"github.com/mikeychann-hash/FGD-sub000/internal/items"
	"github.com/mikeychann-hash/FGD-sub000/internal/knowledge"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// metaString returns the first non-empty string among the metadata keys.
func metaString(meta map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := meta[k]; ok {
			if s, ok := v.(string); ok {
				if t := strings.TrimSpace(s); t != "" {
					return t
				}
			}
		}
	}
	return ""
}

// metaCount resolves a metadata quantity, falling back when absent or
// unparseable.
func metaCount(meta map[string]any, key string, fallback int) int {
	v, ok := meta[key]
	if !ok {
		return fallback
	}
	return items.ResolveCount(v, fallback)
}

func metaBool(meta map[string]any, key string) bool {
	switch v := meta[key].(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "yes" || s == "1"
	case float64:
		return v != 0
	}
	return false
}

// metaStrings reads a metadata list of strings; a bare string becomes a
// single-element list.
func metaStrings(meta map[string]any, key string) []string {
	switch v := meta[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				if t := strings.TrimSpace(s); t != "" {
					out = append(out, t)
				}
			}
		}
		return out
	case []string:
		return v
	case string:
		if t := strings.TrimSpace(v); t != "" {
			return []string{t}
		}
	}
	return nil
}

// metaItemCounts reads a metadata list of {name,count} records. String
// entries count as one.
func metaItemCounts(meta map[string]any, key string) []knowledge.ItemCount {
	raw, ok := meta[key].([]any)
	if !ok {
		return nil
	}
	out := make([]knowledge.ItemCount, 0, len(raw))
	for _, e := range raw {
		switch v := e.(type) {
		case string:
			if name := items.Normalize(v); name != items.Unspecified {
				out = append(out, knowledge.ItemCount{Name: name, Count: 1})
			}
		case map[string]any:
			name := items.Normalize(metaString(v, "name", "item"))
			if name == items.Unspecified {
				continue
			}
			count := metaCount(v, "count", 1)
			if count < 1 {
				count = 1
			}
			out = append(out, knowledge.ItemCount{Name: name, Count: count})
		}
	}
	return out
}

// primaryResource picks the task's main item/resource slot, falling back
// to the free-form details string.
func primaryResource(task protocol.Task, keys ...string) string {
	if len(keys) == 0 {
		keys = []string{"resource", "item"}
	}
	if s := metaString(task.Metadata, keys...); s != "" {
		return items.Normalize(s)
	}
	if t := strings.TrimSpace(task.Details); t != "" {
		return items.Normalize(t)
	}
	return items.Unspecified
}

func distance(a, b *worldctx.Vec3) float64 {
	if a == nil || b == nil {
		return 0
	}
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func targetVec(t *protocol.Target) *worldctx.Vec3 {
	if t == nil || !t.HasCoords {
		return nil
	}
	return &worldctx.Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

// travelTime prices the walk from the agent's position to the target.
func (d *deps) travelTime(ctx *worldctx.Context, target *protocol.Target) int64 {
	dist := distance(worldctx.Position(ctx), targetVec(target))
	return int64(dist) * d.tun.TravelPerBlockMs
}

// addNavigationStep emits the standard movement step when a target exists.
func addNavigationStep(p *plan.Plan, target *protocol.Target, purpose string) {
	if target == nil {
		return
	}
	meta := map[string]any{"destination": target.Describe()}
	if target.HasCoords {
		meta["x"], meta["y"], meta["z"] = target.X, target.Y, target.Z
	}
	p.AddStep("Travel to "+target.Describe(), plan.StepMovement,
		"Navigate to "+target.Describe()+" "+purpose+".", meta)
}

// addBoundsRisk flags targets outside the world build limits.
func addBoundsRisk(p *plan.Plan, target *protocol.Target) {
	if target != nil && !target.InWorldBounds() {
		p.AddRisk(fmt.Sprintf("position outside world bounds (y=%d)", int(target.Y)))
	}
}

// requireMaterials records a risk per missing material and returns the
// list of shortfalls.
func requireMaterials(p *plan.Plan, inv []worldctx.ItemStack, mats []knowledge.ItemCount) []knowledge.ItemCount {
	var missing []knowledge.ItemCount
	for _, m := range mats {
		have := worldctx.CountItems(inv, m.Name)
		if have < m.Count {
			short := knowledge.ItemCount{Name: m.Name, Count: m.Count - have}
			missing = append(missing, short)
			p.AddRisk(fmt.Sprintf("missing %d %s", short.Count, items.DisplayName(m.Name)))
		}
		p.AddResource(m.Name)
	}
	return missing
}

// subPlanResult wires one sub-task node into the plan: the edge direction
// is prerequisite (parent of root) or follow-up (child of root), the
// registry is re-entered for the node's plan, and a nil sub-plan leaves
// an explanatory note.
func subPlanResult(p *plan.Plan, ctx *worldctx.Context, g *plan.TaskGraph, rootID string, subTask protocol.Task, prerequisite bool) {
	node := plan.TaskNode{Action: subTask.Action, Summary: subTask.Details, Metadata: subTask.Metadata}
	nodeID, err := g.AddNode(node)
	if err != nil {
		p.AddRisk("could not attach sub-task: " + err.Error())
		return
	}
	if prerequisite {
		_ = g.AddDependency(nodeID, rootID)
	} else {
		_ = g.AddDependency(rootID, nodeID)
	}

	var sub *plan.Plan
	if ctx != nil && ctx.Planner != nil {
		sub, err = ctx.Planner.Invoke(subTask.Action, subTask, ctx)
		if err != nil {
			sub = nil
		}
	}
	if sub == nil {
		p.AddNote(fmt.Sprintf("No sub-plan available for %q; executor must resolve it.", subTask.Action))
	}
	p.SubTasks = append(p.SubTasks, plan.SubTask{ID: nodeID, Action: subTask.Action, Task: subTask, Plan: sub})
}

// newGraph seeds a plan's task graph with the root node for the task.
func newGraph(p *plan.Plan, task protocol.Task, summary string) (*plan.TaskGraph, string) {
	g := plan.NewTaskGraph()
	rootID, _ := g.AddNode(plan.TaskNode{Action: task.Action, Summary: summary, Metadata: task.Metadata})
	_ = g.SetRoot(rootID)
	p.TaskGraph = g
	return g, rootID
}

// clampDuration keeps plan durations positive.
func clampDuration(ms int64) int64 {
	if ms < 1 {
		return 1
	}
	return ms
}
