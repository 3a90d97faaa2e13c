package sprint

import (
	"strings"
	"testing"

	"github.com/sprintview/sprintview/internal/config"
	"github.com/sprintview/sprintview/internal/logging"
	"github.com/sprintview/sprintview/internal/planning"
)

func TestManagerPlan(t *testing.T) {
	mgr, err := NewManager(nil, logging.NopLogger())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	result := mgr.Plan(sampleTasks())

	if result.Plan == nil || len(result.Plan.Tasks) != 3 {
		t.Fatalf("Plan missing or wrong task count: %+v", result.Plan)
	}
	if !result.Validation.IsValid {
		t.Errorf("Validation failed unexpectedly: %v", result.Validation.Messages)
	}
	if len(result.Decisions) != 3 {
		t.Errorf("Decisions = %d entries, want 3", len(result.Decisions))
	}
	if _, ok := result.Decisions["1"]; ok {
		t.Error("internal task was routed")
	}
	if result.RecommendedEngineers < 1 {
		t.Errorf("RecommendedEngineers = %d, want >= 1", result.RecommendedEngineers)
	}
}

func TestManagerPlan_AppliesOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Routing.Overrides = map[string]string{"2": "pinned-model"}

	mgr, err := NewManager(cfg, nil)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	result := mgr.Plan(sampleTasks())

	d, ok := result.Decisions["2"]
	if !ok {
		t.Fatal("no decision for task 2")
	}
	if d.Model != "pinned-model" {
		t.Errorf("Model = %s, want pinned-model", d.Model)
	}
	if !strings.Contains(d.Reason, "manual override") {
		t.Errorf("Reason = %q, want override marker", d.Reason)
	}
}

func TestManagerPlan_CapsEngineers(t *testing.T) {
	cfg := config.Default()
	cfg.Planning.MaxEngineers = 1

	mgr, err := NewManager(cfg, nil)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	tasks := []planning.Task{
		{ID: "1", Subject: "Task A"},
		{ID: "2", Subject: "Task B"},
		{ID: "3", Subject: "Task C"},
	}
	result := mgr.Plan(tasks)

	if result.RecommendedEngineers != 1 {
		t.Errorf("RecommendedEngineers = %d, want 1", result.RecommendedEngineers)
	}
}

func TestManagerPlan_SurfacesValidationErrors(t *testing.T) {
	mgr, err := NewManager(nil, nil)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	tasks := []planning.Task{
		{ID: "1", Subject: "A", Description: "x", BlockedBy: []string{"2"}},
		{ID: "2", Subject: "B", Description: "x", BlockedBy: []string{"1"}},
	}
	result := mgr.Plan(tasks)

	if result.Validation.IsValid {
		t.Error("Validation passed despite cycle")
	}
	// Planner still terminates and yields the degraded terminal batch.
	if result.Plan.Plan.BatchCount() != 1 {
		t.Errorf("BatchCount = %d, want 1 terminal batch", result.Plan.Plan.BatchCount())
	}
}

func TestNewManager_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Planning.Heuristics.FilePattern = `([`

	if _, err := NewManager(cfg, nil); err == nil {
		t.Error("Expected error for invalid heuristics in config")
	}
}
