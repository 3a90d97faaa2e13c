// Package sprint aggregates the planning core into per-sprint rollups: a
// SprintPlan with per-task analyses, suggested batches, and totals, plus a
// Manager that wires configuration and logging around the pure engine for
// the orchestration layer.
package sprint

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sprintview/sprintview/internal/planning"
	"github.com/sprintview/sprintview/internal/planning/analysis"
)

// TaskAnalysis is the per-task slice of a SprintPlan.
type TaskAnalysis struct {
	// TaskID identifies the analyzed task.
	TaskID string `json:"task_id"`

	// Subject mirrors the task's subject for display without a second lookup.
	Subject string `json:"subject"`

	// Complexity is the task's score, tier, and reason trace.
	Complexity analysis.ComplexityResult `json:"complexity"`

	// SuggestedSplits is how many smaller tasks a complex task could be
	// broken into, or 0 when no split is suggested.
	SuggestedSplits int `json:"suggested_splits,omitempty"`

	// Warnings lists advisory findings about the task.
	Warnings []string `json:"warnings,omitempty"`
}

// SprintPlan is the rollup over one task snapshot: per-task analyses, the
// execution plan built from merged explicit and inferred dependencies, and
// the total complexity sum.
type SprintPlan struct {
	// ID uniquely identifies this rollup.
	ID string `json:"id"`

	// CreatedAt records when the rollup was computed.
	CreatedAt time.Time `json:"created_at"`

	// Tasks holds one analysis per non-internal task, in snapshot order.
	Tasks []TaskAnalysis `json:"tasks"`

	// Plan is the batched execution plan with critical path and
	// parallelism metrics.
	Plan planning.ExecutionPlan `json:"plan"`

	// InferredDependencies maps task IDs to the dependency additions that
	// were merged in before planning.
	InferredDependencies map[string][]string `json:"inferred_dependencies,omitempty"`

	// TotalComplexity is the sum of all task complexity scores.
	TotalComplexity int `json:"total_complexity"`
}

// Analyzer computes sprint rollups. The zero value is not usable; build one
// with NewAnalyzer.
type Analyzer struct {
	scorer   *analysis.Scorer
	inferrer *analysis.Inferrer
}

// NewAnalyzer builds an analyzer from the given heuristic tables.
func NewAnalyzer(h analysis.Heuristics) (*Analyzer, error) {
	scorer, err := analysis.NewScorer(h)
	if err != nil {
		return nil, fmt.Errorf("building scorer: %w", err)
	}
	inferrer, err := analysis.NewInferrer(h)
	if err != nil {
		return nil, fmt.Errorf("building inferrer: %w", err)
	}
	return &Analyzer{scorer: scorer, inferrer: inferrer}, nil
}

// Analyze computes a sprint rollup with the default heuristic tables.
func Analyze(tasks []planning.Task) *SprintPlan {
	a, err := NewAnalyzer(analysis.DefaultHeuristics())
	if err != nil {
		// Default tables always compile.
		panic(err)
	}
	return a.Analyze(tasks)
}

// Analyze scores every non-internal task, infers and merges dependency
// edges, and builds the execution plan. The input snapshot is never
// mutated.
func (a *Analyzer) Analyze(tasks []planning.Task) *SprintPlan {
	plan := &SprintPlan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}

	for _, t := range planning.FilterPlannable(tasks) {
		ta := a.analyzeTask(t)
		plan.TotalComplexity += ta.Complexity.Score
		plan.Tasks = append(plan.Tasks, ta)
	}

	plan.InferredDependencies = a.inferrer.Infer(tasks)
	merged := planning.ApplyInferredDependencies(tasks, plan.InferredDependencies)
	plan.Plan = planning.BuildExecutionPlan(merged)

	return plan
}

func (a *Analyzer) analyzeTask(t planning.Task) TaskAnalysis {
	ta := TaskAnalysis{
		TaskID:     t.ID,
		Subject:    t.Subject,
		Complexity: a.scorer.Score(t),
	}

	if ta.Complexity.Tier == analysis.TierComplex {
		// 8 -> 2, 9 -> 3, 10 -> 4.
		ta.SuggestedSplits = ta.Complexity.Score - 6
		ta.Warnings = append(ta.Warnings,
			fmt.Sprintf("high complexity; consider splitting into %d smaller tasks", ta.SuggestedSplits))

		if strings.TrimSpace(t.Description) == "" {
			ta.Warnings = append(ta.Warnings, "complex task has no description")
		}
	}

	return ta
}
