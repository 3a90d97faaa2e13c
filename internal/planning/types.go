package planning

import (
	"regexp"
	"strings"
)

// -----------------------------------------------------------------------------
// Task Status
// -----------------------------------------------------------------------------

// TaskStatus represents the lifecycle state of a task as recorded in the
// task files the orchestration layer watches.
type TaskStatus string

const (
	// StatusPending indicates the task has not been started.
	StatusPending TaskStatus = "pending"

	// StatusInProgress indicates an agent is actively working on the task.
	StatusInProgress TaskStatus = "in_progress"

	// StatusCompleted indicates the task finished.
	StatusCompleted TaskStatus = "completed"

	// StatusDeleted indicates the task was removed and should be ignored.
	StatusDeleted TaskStatus = "deleted"
)

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid returns true if this is a recognized status value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusDeleted:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Task
// -----------------------------------------------------------------------------

// Task is one unit of work from a sprint task file.
//
// Tasks are owned and mutated by the orchestration layer; this package only
// reads snapshots. All derived structures (merged BlockedBy sets, batches,
// paths) are returned as new values so the caller's records stay untouched.
type Task struct {
	// ID uniquely identifies the task. IDs are strings on the wire but are
	// usually small integers assigned in creation order.
	ID string `json:"id"`

	// Subject is the short title of the task.
	Subject string `json:"subject"`

	// Description is the optional long-form body of the task.
	Description string `json:"description,omitempty"`

	// Status is the task's lifecycle state.
	Status TaskStatus `json:"status"`

	// Owner is the assignee identifier, or empty when unassigned.
	Owner string `json:"owner,omitempty"`

	// BlockedBy lists task IDs this task explicitly waits on.
	BlockedBy []string `json:"blockedBy,omitempty"`
}

// CombinedText returns the subject and description joined with a space.
// This is the text all heuristic analysis runs against.
func (t *Task) CombinedText() string {
	if t.Description == "" {
		return t.Subject
	}
	return t.Subject + " " + t.Description
}

// HasDependencies returns true if this task explicitly waits on other tasks.
func (t *Task) HasDependencies() bool {
	return len(t.BlockedBy) > 0
}

// internalSubjectPattern matches the agent-handle subjects used for
// orchestration bookkeeping tasks: sprint-manager, sprint-pm,
// sprint-engineer, sprint-engineer-2, and so on.
var internalSubjectPattern = regexp.MustCompile(`(?i)^sprint-(manager|pm|engineer(-\d+)?)$`)

// IsInternal reports whether the task is orchestration bookkeeping rather
// than real work. Internal tasks are excluded from dependency inference,
// planning, and complexity analytics.
func (t *Task) IsInternal() bool {
	return internalSubjectPattern.MatchString(strings.TrimSpace(t.Subject))
}

// FilterPlannable returns the tasks that participate in planning, in input
// order: everything except internal bookkeeping tasks.
func FilterPlannable(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsInternal() {
			out = append(out, t)
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// Execution Plan
// -----------------------------------------------------------------------------

// ExecutionPlan is the planner's output: parallel-safe batches and the
// longest dependency chain found in the task set.
type ExecutionPlan struct {
	// Batches partitions the non-internal task IDs into dependency-ordered
	// groups. Tasks within a batch have all their dependencies satisfied by
	// earlier batches and may run in parallel. When the graph contains a
	// cycle the final batch holds the unresolved remainder; callers needing
	// strict ordering must treat such a batch as requiring manual sequencing.
	Batches [][]string `json:"batches"`

	// CriticalPath is the longest chain of dependency edges found, from the
	// chain's root to its tail. For consecutive entries p[i], p[i+1], task
	// p[i+1] lists p[i] in its BlockedBy.
	CriticalPath []string `json:"critical_path"`

	// ParallelismScore measures batch utilization on a 0-100 scale:
	// 100 when every task fits in one batch, approaching 0 when every
	// task runs alone.
	ParallelismScore int `json:"parallelism_score"`

	// AverageBatchSize is the mean number of tasks per batch.
	AverageBatchSize float64 `json:"average_batch_size"`

	// BottleneckBatches lists the indexes of single-task batches, the
	// sequential choke points of the plan.
	BottleneckBatches []int `json:"bottleneck_batches,omitempty"`
}

// BatchCount returns the number of execution batches.
func (p *ExecutionPlan) BatchCount() int {
	return len(p.Batches)
}

// TaskCount returns the total number of tasks across all batches.
func (p *ExecutionPlan) TaskCount() int {
	n := 0
	for _, batch := range p.Batches {
		n += len(batch)
	}
	return n
}

// WidestBatch returns the size of the largest batch, or 0 with no batches.
func (p *ExecutionPlan) WidestBatch() int {
	widest := 0
	for _, batch := range p.Batches {
		if len(batch) > widest {
			widest = len(batch)
		}
	}
	return widest
}

// -----------------------------------------------------------------------------
// Validation Types
// -----------------------------------------------------------------------------

// ValidationSeverity represents the severity level of a validation message.
type ValidationSeverity string

const (
	// SeverityError indicates a structural problem such as a duplicate task
	// ID or a dependency cycle. The planner still terminates on such input,
	// but its output degrades (see ExecutionPlan.Batches).
	SeverityError ValidationSeverity = "error"

	// SeverityWarning indicates a condition the planner tolerates but that
	// is probably a data problem, such as a dependency on an unknown task.
	SeverityWarning ValidationSeverity = "warning"

	// SeverityInfo indicates advisory feedback.
	SeverityInfo ValidationSeverity = "info"
)

// String returns the string representation of the severity.
func (s ValidationSeverity) String() string {
	return string(s)
}

// ValidationMessage is a single issue found while validating a task set.
type ValidationMessage struct {
	// Severity indicates how critical this issue is.
	Severity ValidationSeverity `json:"severity"`

	// Message is a human-readable description of the issue.
	Message string `json:"message"`

	// TaskID identifies the task this message relates to, when applicable.
	TaskID string `json:"task_id,omitempty"`

	// Field identifies the task field causing the issue, e.g. "blockedBy".
	Field string `json:"field,omitempty"`

	// RelatedIDs lists other task IDs involved, e.g. the members of a cycle.
	RelatedIDs []string `json:"related_ids,omitempty"`

	// Suggestion provides guidance on how to fix the issue.
	Suggestion string `json:"suggestion,omitempty"`
}

// IsError returns true if this message is an error.
func (m *ValidationMessage) IsError() bool {
	return m.Severity == SeverityError
}

// IsWarning returns true if this message is a warning.
func (m *ValidationMessage) IsWarning() bool {
	return m.Severity == SeverityWarning
}

// ValidationResult contains the complete validation results for a task set.
type ValidationResult struct {
	// IsValid is true if there are no errors (warnings allowed).
	IsValid bool `json:"is_valid"`

	// Messages contains all validation messages found.
	Messages []ValidationMessage `json:"messages"`

	// ErrorCount is the number of error-level messages.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning-level messages.
	WarningCount int `json:"warning_count"`

	// InfoCount is the number of info-level messages.
	InfoCount int `json:"info_count"`
}

// HasErrors returns true if there are any error-level messages.
func (v *ValidationResult) HasErrors() bool {
	return v.ErrorCount > 0
}

// MessagesForTask returns all validation messages for a specific task.
func (v *ValidationResult) MessagesForTask(taskID string) []ValidationMessage {
	var messages []ValidationMessage
	for _, msg := range v.Messages {
		if msg.TaskID == taskID {
			messages = append(messages, msg)
		}
	}
	return messages
}
