package registry

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

func stubPlanner(action string) PlannerFunc {
	return func(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
		p := plan.New(action, "stub")
		p.EstimatedDuration = 1000
		p.AddStep("Do it", plan.StepAction, "stub step", nil)
		return p, nil
	}
}

func TestRegisterValidation(t *testing.T) {
	r := New()
	if err := r.Register("", stubPlanner("x")); err == nil {
		t.Fatalf("empty action accepted")
	}
	if err := r.Register("mine", nil); err == nil {
		t.Fatalf("nil planner accepted")
	}
	if err := r.Register("  Mine ", stubPlanner("mine")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !r.Has("MINE") || !r.Has("mine") {
		t.Fatalf("case-insensitive lookup broken")
	}
}

func TestListSorted(t *testing.T) {
	r := New()
	for _, a := range []string{"mine", "build", "craft"} {
		if err := r.Register(a, stubPlanner(a)); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	got := r.List()
	want := []string{"build", "craft", "mine"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List = %v", got)
		}
	}
}

func TestInvokeUnknownAction(t *testing.T) {
	r := New()
	_, err := r.Invoke("dance", protocol.Task{Action: "dance"}, nil)
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("err = %v", err)
	}
}

func TestInvokeContainsPanic(t *testing.T) {
	r := New()
	_ = r.Register("explode", func(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
		panic("boom")
	})
	p, err := r.Invoke("explode", protocol.Task{Action: "explode"}, nil)
	if p != nil || err == nil {
		t.Fatalf("panic not converted: p=%v err=%v", p, err)
	}
}

func TestInvokeDoesNotMutateCallerContext(t *testing.T) {
	r := New()
	_ = r.Register("noop", stubPlanner("noop"))
	ctx := &worldctx.Context{Depth: 2}
	if _, err := r.Invoke("noop", protocol.Task{Action: "noop"}, ctx); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if ctx.Depth != 2 || ctx.Planner != nil {
		t.Fatalf("caller context mutated: %+v", ctx)
	}
}

func TestInvokeDepthBound(t *testing.T) {
	r := New()
	r.MaxDepth = 3
	var deepest int
	_ = r.Register("recurse", func(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error) {
		if ctx.Depth > deepest {
			deepest = ctx.Depth
		}
		sub, err := ctx.Planner.Invoke("recurse", task, ctx)
		p := plan.New("recurse", "recursion probe")
		p.EstimatedDuration = 1
		p.AddStep("Recurse", plan.StepPlanning, "go deeper", nil)
		if err == nil && sub != nil {
			p.SubTasks = append(p.SubTasks, plan.SubTask{Action: "recurse", Plan: sub})
		}
		return p, nil
	})
	p, err := r.Invoke("recurse", protocol.Task{Action: "recurse"}, nil)
	if err != nil || p == nil {
		t.Fatalf("Invoke: p=%v err=%v", p, err)
	}
	// The root invocation runs at depth 1, so MaxDepth sub-hops land the
	// deepest planner at MaxDepth+1.
	if deepest != r.MaxDepth+1 {
		t.Fatalf("deepest = %d, want %d", deepest, r.MaxDepth+1)
	}
}

func TestDispatcherRejectsInvalidEnvelope(t *testing.T) {
	r := New()
	_ = r.Register("mine", stubPlanner("mine"))
	var buf bytes.Buffer
	d := NewDispatcher(r, log.New(&buf, "", 0))
	if p := d.PlanTask(protocol.Task{}, nil); p != nil {
		t.Fatalf("missing action produced a plan")
	}
	if !bytes.Contains(buf.Bytes(), []byte(protocol.ErrMissingAction)) {
		t.Fatalf("missing action not logged: %q", buf.String())
	}
}

func TestDispatcherUnknownActionIsNil(t *testing.T) {
	r := New()
	d := NewDispatcher(r, nil)
	if p := d.PlanTask(protocol.Task{Action: "interpretive dance"}, nil); p != nil {
		t.Fatalf("unknown action produced a plan")
	}
}

func TestDispatcherAppliesPersonality(t *testing.T) {
	r := New()
	_ = r.Register("mine", stubPlanner("mine"))
	d := NewDispatcher(r, nil)
	ctx := &worldctx.Context{NPC: &worldctx.NPCState{Traits: map[string]float64{"patience": 1.0}}}
	p := d.PlanTask(protocol.Task{Action: "mine"}, ctx)
	if p == nil {
		t.Fatalf("no plan")
	}
	if p.EstimatedDuration != 1125 {
		t.Fatalf("personality bias not applied: duration = %d", p.EstimatedDuration)
	}
}
