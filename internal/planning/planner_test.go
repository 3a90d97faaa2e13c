package planning

import (
	"reflect"
	"testing"
)

func TestBuildExecutionPlan_LinearChain(t *testing.T) {
	tasks := []Task{
		{ID: "1", Subject: "Set up schema"},
		{ID: "2", Subject: "Write queries", BlockedBy: []string{"1"}},
		{ID: "3", Subject: "Wire endpoints", BlockedBy: []string{"1", "2"}},
	}

	plan := BuildExecutionPlan(tasks)

	wantBatches := [][]string{{"1"}, {"2"}, {"3"}}
	if !reflect.DeepEqual(plan.Batches, wantBatches) {
		t.Errorf("Batches = %v, want %v", plan.Batches, wantBatches)
	}

	wantPath := []string{"1", "2", "3"}
	if !reflect.DeepEqual(plan.CriticalPath, wantPath) {
		t.Errorf("CriticalPath = %v, want %v", plan.CriticalPath, wantPath)
	}
}

func TestBuildExecutionPlan_ParallelTasks(t *testing.T) {
	tasks := []Task{
		{ID: "1", Subject: "Task A"},
		{ID: "2", Subject: "Task B"},
		{ID: "3", Subject: "Task C", BlockedBy: []string{"1", "2"}},
	}

	plan := BuildExecutionPlan(tasks)

	if len(plan.Batches) != 2 {
		t.Fatalf("Expected 2 batches, got %d", len(plan.Batches))
	}
	if !reflect.DeepEqual(plan.Batches[0], []string{"1", "2"}) {
		t.Errorf("First batch = %v, want [1 2]", plan.Batches[0])
	}
	if !reflect.DeepEqual(plan.Batches[1], []string{"3"}) {
		t.Errorf("Second batch = %v, want [3]", plan.Batches[1])
	}

	// Chain is 1 -> 3 (first-seen tie-break among 3's deps).
	wantPath := []string{"1", "3"}
	if !reflect.DeepEqual(plan.CriticalPath, wantPath) {
		t.Errorf("CriticalPath = %v, want %v", plan.CriticalPath, wantPath)
	}
}

func TestBuildExecutionPlan_CycleTerminates(t *testing.T) {
	tasks := []Task{
		{ID: "1", Subject: "Task A", BlockedBy: []string{"2"}},
		{ID: "2", Subject: "Task B", BlockedBy: []string{"1"}},
	}

	plan := BuildExecutionPlan(tasks)

	if len(plan.Batches) != 1 {
		t.Fatalf("Expected 1 terminal batch, got %d", len(plan.Batches))
	}
	got := map[string]bool{}
	for _, id := range plan.Batches[0] {
		got[id] = true
	}
	if !got["1"] || !got["2"] || len(got) != 2 {
		t.Errorf("Terminal batch = %v, want both 1 and 2", plan.Batches[0])
	}
}

func TestBuildExecutionPlan_CyclicSubgraphCriticalPath(t *testing.T) {
	// 1 <-> 2 cycle feeding 3. Cycle-closing edges are ignored, so the
	// longest valid chain has length 2 and the walk terminates.
	tasks := []Task{
		{ID: "1", Subject: "Task A", BlockedBy: []string{"2"}},
		{ID: "2", Subject: "Task B", BlockedBy: []string{"1"}},
		{ID: "3", Subject: "Task C", BlockedBy: []string{"2"}},
	}

	plan := BuildExecutionPlan(tasks)

	if len(plan.CriticalPath) != 2 {
		t.Fatalf("CriticalPath = %v, want length 2", plan.CriticalPath)
	}
	tasksByID := map[string]Task{}
	for _, task := range tasks {
		tasksByID[task.ID] = task
	}
	assertValidChain(t, plan.CriticalPath, tasksByID)
}

func TestBuildExecutionPlan_UnknownDependenciesSatisfied(t *testing.T) {
	tasks := []Task{
		{ID: "7", Subject: "Continue migration", BlockedBy: []string{"99"}},
	}

	plan := BuildExecutionPlan(tasks)

	if len(plan.Batches) != 1 || len(plan.Batches[0]) != 1 || plan.Batches[0][0] != "7" {
		t.Errorf("Batches = %v, want [[7]]", plan.Batches)
	}
	if !reflect.DeepEqual(plan.CriticalPath, []string{"7"}) {
		t.Errorf("CriticalPath = %v, want [7]", plan.CriticalPath)
	}
}

func TestBuildExecutionPlan_ExcludesInternalTasks(t *testing.T) {
	tasks := []Task{
		{ID: "1", Subject: "sprint-manager"},
		{ID: "2", Subject: "Sprint-Engineer-3"},
		{ID: "3", Subject: "Real work"},
	}

	plan := BuildExecutionPlan(tasks)

	if plan.TaskCount() != 1 {
		t.Fatalf("Expected 1 planned task, got %d", plan.TaskCount())
	}
	if plan.Batches[0][0] != "3" {
		t.Errorf("Planned task = %s, want 3", plan.Batches[0][0])
	}
}

func TestBuildExecutionPlan_BatchesPartitionTasks(t *testing.T) {
	tasks := []Task{
		{ID: "1", Subject: "A"},
		{ID: "2", Subject: "B", BlockedBy: []string{"1"}},
		{ID: "3", Subject: "C", BlockedBy: []string{"1"}},
		{ID: "4", Subject: "D", BlockedBy: []string{"2", "3"}},
		{ID: "5", Subject: "E"},
	}

	plan := BuildExecutionPlan(tasks)

	seen := make(map[string]int)
	for _, batch := range plan.Batches {
		for _, id := range batch {
			seen[id]++
		}
	}
	if len(seen) != len(tasks) {
		t.Errorf("Flattened batches cover %d tasks, want %d", len(seen), len(tasks))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("Task %s appears %d times in batches", id, n)
		}
	}
}

func TestBuildExecutionPlan_Metrics(t *testing.T) {
	tasks := []Task{
		{ID: "1", Subject: "A"},
		{ID: "2", Subject: "B"},
		{ID: "3", Subject: "C", BlockedBy: []string{"1"}},
		{ID: "4", Subject: "D", BlockedBy: []string{"3"}},
	}

	plan := BuildExecutionPlan(tasks)

	// Batches: [1 2], [3], [4]. Score = 100*(4-3+1)/4 = 50.
	if plan.ParallelismScore != 50 {
		t.Errorf("ParallelismScore = %d, want 50", plan.ParallelismScore)
	}
	if plan.AverageBatchSize < 1.32 || plan.AverageBatchSize > 1.34 {
		t.Errorf("AverageBatchSize = %f, want ~1.33", plan.AverageBatchSize)
	}
	if !reflect.DeepEqual(plan.BottleneckBatches, []int{1, 2}) {
		t.Errorf("BottleneckBatches = %v, want [1 2]", plan.BottleneckBatches)
	}
}

func TestBuildExecutionPlan_Empty(t *testing.T) {
	plan := BuildExecutionPlan(nil)

	if plan.BatchCount() != 0 {
		t.Errorf("BatchCount = %d, want 0", plan.BatchCount())
	}
	if plan.CriticalPath != nil {
		t.Errorf("CriticalPath = %v, want nil", plan.CriticalPath)
	}
	if plan.ParallelismScore != 0 {
		t.Errorf("ParallelismScore = %d, want 0", plan.ParallelismScore)
	}
}

func assertValidChain(t *testing.T, path []string, tasksByID map[string]Task) {
	t.Helper()
	for i := 0; i+1 < len(path); i++ {
		next := tasksByID[path[i+1]]
		found := false
		for _, dep := range next.BlockedBy {
			if dep == path[i] {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("CriticalPath %v invalid: %s not in blockedBy of %s", path, path[i], path[i+1])
		}
	}
}

func TestApplyInferredDependencies(t *testing.T) {
	tasks := []Task{
		{ID: "1", Subject: "A"},
		{ID: "2", Subject: "B", BlockedBy: []string{"1"}},
		{ID: "3", Subject: "C", BlockedBy: []string{"1"}},
	}
	inferred := map[string][]string{
		"2": {"1"},      // duplicate of explicit edge
		"3": {"2", "2"}, // duplicate within additions
	}

	merged := ApplyInferredDependencies(tasks, inferred)

	if !reflect.DeepEqual(merged[1].BlockedBy, []string{"1"}) {
		t.Errorf("Task 2 BlockedBy = %v, want [1]", merged[1].BlockedBy)
	}
	if !reflect.DeepEqual(merged[2].BlockedBy, []string{"1", "2"}) {
		t.Errorf("Task 3 BlockedBy = %v, want [1 2]", merged[2].BlockedBy)
	}

	// Originals must be untouched.
	if !reflect.DeepEqual(tasks[2].BlockedBy, []string{"1"}) {
		t.Errorf("Input task mutated: %v", tasks[2].BlockedBy)
	}
}

func TestRecommendEngineers(t *testing.T) {
	tests := []struct {
		name         string
		batches      [][]string
		maxEngineers int
		want         int
	}{
		{"no batches", nil, 5, 1},
		{"widest under cap", [][]string{{"1", "2", "3"}, {"4"}}, 5, 3},
		{"widest over cap", [][]string{{"1", "2", "3", "4", "5", "6"}}, 4, 4},
		{"single tasks", [][]string{{"1"}, {"2"}}, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := ExecutionPlan{Batches: tt.batches}
			if got := RecommendEngineers(plan, tt.maxEngineers); got != tt.want {
				t.Errorf("RecommendEngineers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTaskIsInternal(t *testing.T) {
	tests := []struct {
		subject string
		want    bool
	}{
		{"sprint-manager", true},
		{"sprint-pm", true},
		{"sprint-engineer", true},
		{"sprint-engineer-2", true},
		{"  Sprint-Manager  ", true},
		{"sprint-engineer-abc", false},
		{"Fix sprint-manager bug", false},
		{"sprint-designer", false},
		{"Implement login", false},
	}

	for _, tt := range tests {
		task := Task{Subject: tt.subject}
		if got := task.IsInternal(); got != tt.want {
			t.Errorf("IsInternal(%q) = %v, want %v", tt.subject, got, tt.want)
		}
	}
}
