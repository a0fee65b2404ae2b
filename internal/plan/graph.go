package plan

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync/atomic"
	"time"
)

// nodeSeq mints unique node ids. Reset between test cases via
// ResetNodeIDs to keep ids stable for assertions.
var nodeSeq atomic.Uint64

// ResetNodeIDs restarts the node id counter. Intended for tests.
func ResetNodeIDs() { nodeSeq.Store(0) }

// MintNodeID returns "<prefix>_<base36 time>_<counter>".
func MintNodeID(prefix string) string {
	if prefix == "" {
		prefix = "task"
	}
	n := nodeSeq.Add(1)
	return prefix + "_" + strconv.FormatInt(time.Now().UnixMilli(), 36) + "_" + strconv.FormatUint(n, 10)
}

// TaskNode is one vertex of a task graph. Parents must complete before
// the node becomes ready; children wait on it.
type TaskNode struct {
	ID           string              `json:"id"`
	Action       string              `json:"action"`
	Summary      string              `json:"summary"`
	Metadata     map[string]any      `json:"metadata,omitempty"`
	Requirements []string            `json:"requirements,omitempty"`
	Parents      map[string]struct{} `json:"-"`
	Children     map[string]struct{} `json:"-"`
}

func (n *TaskNode) clone() TaskNode {
	out := TaskNode{
		ID:       n.ID,
		Action:   n.Action,
		Summary:  n.Summary,
		Metadata: cloneMeta(n.Metadata),
		Parents:  make(map[string]struct{}, len(n.Parents)),
		Children: make(map[string]struct{}, len(n.Children)),
	}
	out.Requirements = append(out.Requirements, n.Requirements...)
	for id := range n.Parents {
		out.Parents[id] = struct{}{}
	}
	for id := range n.Children {
		out.Children[id] = struct{}{}
	}
	return out
}

// TaskGraph is a DAG of task nodes. Edges run parent-before-child and are
// kept acyclic by construction: AddDependency refuses edges that would
// close a cycle.
type TaskGraph struct {
	nodes  map[string]*TaskNode
	rootID string
}

// NewTaskGraph returns an empty graph.
func NewTaskGraph() *TaskGraph {
	return &TaskGraph{nodes: map[string]*TaskNode{}}
}

// AddNode stores the node, minting an id when none is given, and returns
// the id. A duplicate id is rejected.
func (g *TaskGraph) AddNode(n TaskNode) (string, error) {
	if n.ID == "" {
		n.ID = MintNodeID(n.Action)
	}
	if _, exists := g.nodes[n.ID]; exists {
		return "", fmt.Errorf("task graph: duplicate node id %q", n.ID)
	}
	stored := n.clone()
	g.nodes[n.ID] = &stored
	return n.ID, nil
}

// SetRoot marks the primary task's node.
func (g *TaskGraph) SetRoot(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return fmt.Errorf("task graph: unknown root %q", id)
	}
	g.rootID = id
	return nil
}

// RootID returns the primary node id ("" when unset).
func (g *TaskGraph) RootID() string { return g.rootID }

// Len returns the node count.
func (g *TaskGraph) Len() int { return len(g.nodes) }

// AddDependency records parent-before-child. Self-loops are ignored,
// repeated edges are idempotent, and an edge that would close a cycle is
// rejected.
func (g *TaskGraph) AddDependency(parentID, childID string) error {
	if parentID == childID {
		return nil
	}
	parent, ok := g.nodes[parentID]
	if !ok {
		return fmt.Errorf("task graph: unknown parent %q", parentID)
	}
	child, ok := g.nodes[childID]
	if !ok {
		return fmt.Errorf("task graph: unknown child %q", childID)
	}
	if _, dup := parent.Children[childID]; dup {
		return nil
	}
	if g.reachable(childID, parentID) {
		return fmt.Errorf("task graph: edge %s -> %s would close a cycle", parentID, childID)
	}
	parent.Children[childID] = struct{}{}
	child.Parents[parentID] = struct{}{}
	return nil
}

// reachable walks child edges from start looking for goal.
func (g *TaskGraph) reachable(start, goal string) bool {
	seen := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == goal {
			return true
		}
		n := g.nodes[id]
		if n == nil {
			continue
		}
		for c := range n.Children {
			if !seen[c] {
				seen[c] = true
				stack = append(stack, c)
			}
		}
	}
	return false
}

// GetNode returns a copy of the node, so callers cannot mutate stored
// graph state through the result.
func (g *TaskGraph) GetNode(id string) (TaskNode, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return TaskNode{}, false
	}
	return n.clone(), true
}

// NodeIDs returns all node ids in sorted order.
func (g *TaskGraph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetReadyNodes returns copies of every node whose parents are all in
// completed, skipping nodes already completed. Order is by id.
func (g *TaskGraph) GetReadyNodes(completed map[string]bool) []TaskNode {
	var out []TaskNode
	for _, id := range g.NodeIDs() {
		if completed[id] {
			continue
		}
		n := g.nodes[id]
		ready := true
		for p := range n.Parents {
			if !completed[p] {
				ready = false
				break
			}
		}
		if ready {
			out = append(out, n.clone())
		}
	}
	return out
}

// graphEdge serializes one dependency; nodes never embed each other.
type graphEdge struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}

type graphJSON struct {
	RootID string      `json:"root_id,omitempty"`
	Nodes  []TaskNode  `json:"nodes"`
	Edges  []graphEdge `json:"edges"`
}

// MarshalJSON flattens the graph into node and edge lists.
func (g *TaskGraph) MarshalJSON() ([]byte, error) {
	out := graphJSON{RootID: g.rootID, Nodes: []TaskNode{}, Edges: []graphEdge{}}
	for _, id := range g.NodeIDs() {
		n := g.nodes[id]
		out.Nodes = append(out.Nodes, n.clone())
		for _, c := range setToSorted(n.Children) {
			out.Edges = append(out.Edges, graphEdge{Parent: id, Child: c})
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds nodes and edges from the flat form.
func (g *TaskGraph) UnmarshalJSON(b []byte) error {
	var in graphJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	g.nodes = map[string]*TaskNode{}
	g.rootID = ""
	for _, n := range in.Nodes {
		n.Parents = nil
		n.Children = nil
		if _, err := g.AddNode(n); err != nil {
			return err
		}
	}
	for _, e := range in.Edges {
		if err := g.AddDependency(e.Parent, e.Child); err != nil {
			return err
		}
	}
	if in.RootID != "" {
		if err := g.SetRoot(in.RootID); err != nil {
			return err
		}
	}
	return nil
}

func setToSorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
