// Package registry is the sole dispatch mechanism of the planner: a
// process-wide map from action name to planner function, plus the
// dispatcher that fronts it. Registration happens once at startup;
// invocation is read-only and re-entrant, so planners may call back in
// for sub-planning.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// PlannerFunc turns a task plus context into a plan. A returned error
// means the task is fundamentally unrepresentable for this planner;
// ordinary missing data must surface as risks on a best-effort plan.
type PlannerFunc func(task protocol.Task, ctx *worldctx.Context) (*plan.Plan, error)

// ErrUnknownAction is returned by Invoke when no planner is registered.
var ErrUnknownAction = errors.New("no planner registered")

// ErrDepthExceeded is returned when sub-planning recursion passes the
// configured bound.
var ErrDepthExceeded = errors.New("sub-plan depth exceeded")

type Registry struct {
	mu       sync.RWMutex
	planners map[string]PlannerFunc

	// MaxDepth bounds sub-plan recursion; zero means unbounded.
	MaxDepth int
}

func New() *Registry {
	return &Registry{planners: map[string]PlannerFunc{}}
}

func key(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}

// Register binds an action to a planner. Last writer wins.
func (r *Registry) Register(action string, fn PlannerFunc) error {
	k := key(action)
	if k == "" {
		return fmt.Errorf("registry: empty action")
	}
	if fn == nil {
		return fmt.Errorf("registry: nil planner for %q", action)
	}
	r.mu.Lock()
	r.planners[k] = fn
	r.mu.Unlock()
	return nil
}

// Has reports whether a planner is registered for the action.
func (r *Registry) Has(action string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.planners[key(action)]
	return ok
}

// List returns the registered actions, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.planners))
	for a := range r.planners {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Invoke runs the planner for action. A panicking planner is contained
// and reported as an error; the caller never crashes on a faulty planner.
// Sub-invocations made by the planner see a context one depth level
// deeper, which is how MaxDepth is enforced.
func (r *Registry) Invoke(action string, task protocol.Task, ctx *worldctx.Context) (p *plan.Plan, err error) {
	r.mu.RLock()
	fn, ok := r.planners[key(action)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if ctx == nil {
		ctx = &worldctx.Context{}
	}
	if r.MaxDepth > 0 && ctx.Depth > r.MaxDepth {
		return nil, fmt.Errorf("%w (%d)", ErrDepthExceeded, ctx.Depth)
	}

	// Re-enter through a context whose Planner handle deepens on each
	// hop, without mutating the caller's context.
	sub := *ctx
	sub.Depth = ctx.Depth + 1
	sub.Planner = r

	defer func() {
		if rec := recover(); rec != nil {
			p = nil
			err = fmt.Errorf("planner %q panicked: %v", action, rec)
		}
	}()
	return fn(task, &sub)
}
