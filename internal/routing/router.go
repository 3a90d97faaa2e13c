// Package routing picks a model for each task from its complexity tier,
// honoring per-task manual overrides.
package routing

import (
	"github.com/sprintview/sprintview/internal/planning"
	"github.com/sprintview/sprintview/internal/planning/analysis"
)

// Decision is the routing outcome for one task. Tier and Score always come
// from complexity analysis; an override only changes which model identifier
// is reported.
type Decision struct {
	// Model is the model identifier to run the task on.
	Model string `json:"model"`

	// Tier is the task's complexity tier.
	Tier analysis.Tier `json:"tier"`

	// Score is the task's complexity score.
	Score int `json:"score"`

	// Reason explains the routing. With an override it reads
	// "manual override (complexity: ...)"; otherwise it is the complexity
	// reason passed through unchanged.
	Reason string `json:"reason"`
}

// Table maps each complexity tier to a model identifier.
type Table struct {
	Simple  string `mapstructure:"simple"`
	Medium  string `mapstructure:"medium"`
	Complex string `mapstructure:"complex"`
}

// DefaultTable returns the built-in tier to model mapping.
func DefaultTable() Table {
	return Table{
		Simple:  "claude-3-5-haiku-20241022",
		Medium:  "claude-sonnet-4-20250514",
		Complex: "claude-opus-4-20250514",
	}
}

// Model returns the model identifier for a tier.
func (t Table) Model(tier analysis.Tier) string {
	switch tier {
	case analysis.TierSimple:
		return t.Simple
	case analysis.TierComplex:
		return t.Complex
	default:
		return t.Medium
	}
}

// Router routes tasks to models. A Router is immutable and safe for
// concurrent use.
type Router struct {
	table     Table
	scorer    *analysis.Scorer
	overrides map[string]string
}

// Option configures a Router.
type Option func(*Router)

// WithTable replaces the default tier to model table.
func WithTable(table Table) Option {
	return func(r *Router) { r.table = table }
}

// WithScorer replaces the default complexity scorer, e.g. one built from
// config-supplied heuristic tables.
func WithScorer(scorer *analysis.Scorer) Option {
	return func(r *Router) { r.scorer = scorer }
}

// WithOverrides sets per-task model overrides, keyed by task ID. The map is
// copied.
func WithOverrides(overrides map[string]string) Option {
	return func(r *Router) {
		r.overrides = make(map[string]string, len(overrides))
		for id, model := range overrides {
			r.overrides[id] = model
		}
	}
}

// NewRouter builds a router with the default table and scorer, then applies
// the given options.
func NewRouter(opts ...Option) *Router {
	r := &Router{table: DefaultTable()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route decides which model the task should run on.
func (r *Router) Route(task planning.Task) Decision {
	var c analysis.ComplexityResult
	if r.scorer != nil {
		c = r.scorer.Score(task)
	} else {
		c = analysis.Score(task)
	}

	d := Decision{
		Tier:   c.Tier,
		Score:  c.Score,
		Reason: c.Reason,
	}

	if model, ok := r.overrides[task.ID]; ok {
		d.Model = model
		d.Reason = "manual override (complexity: " + c.Reason + ")"
		return d
	}

	d.Model = r.table.Model(c.Tier)
	return d
}

// RouteTask routes one task with the default table and the given overrides.
// Pass nil overrides to route purely by tier.
func RouteTask(task planning.Task, overrides map[string]string) Decision {
	return NewRouter(WithOverrides(overrides)).Route(task)
}
