package sprint

import (
	"fmt"

	"github.com/sprintview/sprintview/internal/config"
	"github.com/sprintview/sprintview/internal/logging"
	"github.com/sprintview/sprintview/internal/planning"
	"github.com/sprintview/sprintview/internal/planning/analysis"
	"github.com/sprintview/sprintview/internal/routing"
)

// Manager runs the full analyze-plan-route pipeline on task snapshots with
// configuration and logging applied. It holds no task state: every Plan
// call is snapshot in, values out, so a Manager is safe to share across
// goroutines.
type Manager struct {
	cfg      *config.Config
	log      *logging.Logger
	analyzer *Analyzer
	router   *routing.Router
}

// PlanResult bundles everything the orchestration layer needs to act on one
// snapshot: the rollup, structural validation, per-task model decisions,
// and the staffing recommendation.
type PlanResult struct {
	Plan                 *SprintPlan                 `json:"plan"`
	Validation           *planning.ValidationResult  `json:"validation"`
	Decisions            map[string]routing.Decision `json:"decisions"`
	RecommendedEngineers int                         `json:"recommended_engineers"`
}

// NewManager builds a manager from configuration. A nil cfg uses defaults;
// a nil log discards output.
func NewManager(cfg *config.Config, log *logging.Logger) (*Manager, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logging.NopLogger()
	}

	analyzer, err := NewAnalyzer(cfg.Planning.Heuristics)
	if err != nil {
		return nil, fmt.Errorf("building analyzer: %w", err)
	}

	scorer, err := analysis.NewScorer(cfg.Planning.Heuristics)
	if err != nil {
		return nil, fmt.Errorf("building scorer: %w", err)
	}

	router := routing.NewRouter(
		routing.WithTable(cfg.Routing.Models),
		routing.WithScorer(scorer),
		routing.WithOverrides(cfg.Routing.Overrides),
	)

	return &Manager{
		cfg:      cfg,
		log:      log,
		analyzer: analyzer,
		router:   router,
	}, nil
}

// Plan analyzes, validates, plans, and routes one task snapshot.
func (m *Manager) Plan(tasks []planning.Task) *PlanResult {
	plan := m.analyzer.Analyze(tasks)
	log := m.log.WithSprint(plan.ID)

	log.WithPhase("scoring").Debug("tasks analyzed",
		"tasks", len(plan.Tasks),
		"total_complexity", plan.TotalComplexity)

	validation := planning.ValidatePlan(tasks)
	if validation.HasErrors() {
		log.WithPhase("validation").Warn("snapshot has structural problems",
			"errors", validation.ErrorCount,
			"warnings", validation.WarningCount)
	}

	log.WithPhase("planning").Info("execution plan built",
		"batches", plan.Plan.BatchCount(),
		"critical_path_length", len(plan.Plan.CriticalPath),
		"parallelism_score", plan.Plan.ParallelismScore,
		"inferred_edges", len(plan.InferredDependencies))

	decisions := make(map[string]routing.Decision, len(plan.Tasks))
	for _, t := range planning.FilterPlannable(tasks) {
		d := m.router.Route(t)
		decisions[t.ID] = d
		log.WithPhase("routing").WithTask(t.ID).Debug("task routed",
			"model", d.Model,
			"tier", d.Tier.String(),
			"score", d.Score)
	}

	engineers := planning.RecommendEngineers(plan.Plan, m.cfg.Planning.MaxEngineers)
	log.WithPhase("planning").Info("staffing recommended", "engineers", engineers)

	return &PlanResult{
		Plan:                 plan,
		Validation:           validation,
		Decisions:            decisions,
		RecommendedEngineers: engineers,
	}
}
