package registry

import (
	"log"

	"github.com/mikeychann-hash/FGD-sub000/internal/personality"
	"github.com/mikeychann-hash/FGD-sub000/internal/plan"
	"github.com/mikeychann-hash/FGD-sub000/internal/protocol"
	"github.com/mikeychann-hash/FGD-sub000/internal/worldctx"
)

// Dispatcher is the public entry point: it validates the envelope, picks
// the planner, applies the personality bias and never lets an error
// escape. A nil plan is the only failure signal callers see.
type Dispatcher struct {
	Registry *Registry
	Logger   *log.Logger

	// MaxDurationBias caps the personality duration swing.
	MaxDurationBias float64
}

func NewDispatcher(reg *Registry, logger *log.Logger) *Dispatcher {
	return &Dispatcher{Registry: reg, Logger: logger, MaxDurationBias: 0.25}
}

// PlanTask produces a plan for the task, or nil when the action is
// unknown, the envelope is invalid or the planner failed. Neither task
// nor ctx is mutated.
func (d *Dispatcher) PlanTask(task protocol.Task, ctx *worldctx.Context) *plan.Plan {
	if code := task.Validate(); code != "" {
		d.warnf("rejecting task: %s", code)
		return nil
	}
	p, err := d.Registry.Invoke(task.Action, task, ctx)
	if err != nil {
		d.warnf("plan %q: %v", task.Action, err)
		return nil
	}
	if p == nil {
		return nil
	}
	return personality.Apply(p, worldctx.Traits(ctx), d.MaxDurationBias)
}

func (d *Dispatcher) warnf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf("WARN "+format, args...)
	}
}
