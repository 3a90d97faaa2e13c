package planning

import (
	"fmt"
	"strings"
)

// ValidatePlan performs structural validation of a task snapshot before
// planning. It checks for duplicate IDs, self-dependencies, references to
// unknown tasks, and dependency cycles. The planner tolerates all of these
// (see BuildExecutionPlan), so validation is advisory: it tells the caller
// which guarantees the resulting plan can still make.
func ValidatePlan(tasks []Task) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Messages: make([]ValidationMessage, 0),
	}

	record := func(msg ValidationMessage) {
		switch msg.Severity {
		case SeverityError:
			result.IsValid = false
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityInfo:
			result.InfoCount++
		}
		result.Messages = append(result.Messages, msg)
	}

	plannable := FilterPlannable(tasks)

	seen := make(map[string]bool, len(plannable))
	for _, t := range plannable {
		if seen[t.ID] {
			record(ValidationMessage{
				Severity:   SeverityError,
				Message:    fmt.Sprintf("Duplicate task ID '%s'", t.ID),
				TaskID:     t.ID,
				Field:      "id",
				Suggestion: "Assign each task a unique ID",
			})
			continue
		}
		seen[t.ID] = true
	}

	for _, msg := range validateTaskFields(plannable) {
		record(msg)
	}

	if cycle := detectDependencyCycle(plannable); cycle != nil {
		record(ValidationMessage{
			Severity:   SeverityError,
			Message:    fmt.Sprintf("Dependency cycle detected: %s", strings.Join(cycle, " -> ")),
			RelatedIDs: cycle,
			Suggestion: "Remove one of the dependencies to break the cycle; until then the cyclic tasks are emitted as one unordered batch",
		})
	}

	return result
}

// validateTaskFields checks per-task field issues:
// - self-dependencies (errors)
// - dependencies on unknown task IDs (warnings; the planner treats them as
//   already satisfied)
// - empty subjects (warnings)
// - missing descriptions (info)
func validateTaskFields(tasks []Task) []ValidationMessage {
	var messages []ValidationMessage

	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	for _, t := range tasks {
		if strings.TrimSpace(t.Subject) == "" {
			messages = append(messages, ValidationMessage{
				Severity:   SeverityWarning,
				Message:    "Task has no subject",
				TaskID:     t.ID,
				Field:      "subject",
				Suggestion: "Add a short title; complexity and inference heuristics have nothing to work with",
			})
		}

		if strings.TrimSpace(t.Description) == "" {
			messages = append(messages, ValidationMessage{
				Severity:   SeverityInfo,
				Message:    "Task has no description",
				TaskID:     t.ID,
				Field:      "description",
				Suggestion: "Add a description to improve complexity scoring accuracy",
			})
		}

		for _, depID := range t.BlockedBy {
			if depID == t.ID {
				messages = append(messages, ValidationMessage{
					Severity:   SeverityError,
					Message:    "Task is blocked by itself",
					TaskID:     t.ID,
					Field:      "blockedBy",
					RelatedIDs: []string{t.ID},
					Suggestion: "Remove the self-dependency",
				})
				continue
			}
			if !known[depID] {
				messages = append(messages, ValidationMessage{
					Severity:   SeverityWarning,
					Message:    fmt.Sprintf("Blocked by unknown task '%s'", depID),
					TaskID:     t.ID,
					Field:      "blockedBy",
					RelatedIDs: []string{depID},
					Suggestion: fmt.Sprintf("The planner treats '%s' as already satisfied; remove it if that is not intended", depID),
				})
			}
		}
	}

	return messages
}

// detectDependencyCycle finds a dependency cycle among the given tasks.
// Returns the task IDs forming the cycle (first and last entry equal), or
// nil when the graph is acyclic. Dependencies on unknown IDs are ignored.
func detectDependencyCycle(tasks []Task) []string {
	byID := make(map[string]*Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	visited := make(map[string]bool, len(tasks))
	recStack := make(map[string]bool, len(tasks))
	parent := make(map[string]string, len(tasks))

	var dfs func(taskID string) []string
	dfs = func(taskID string) []string {
		visited[taskID] = true
		recStack[taskID] = true

		t := byID[taskID]
		for _, depID := range t.BlockedBy {
			if byID[depID] == nil {
				continue
			}
			if !visited[depID] {
				parent[depID] = taskID
				if cycle := dfs(depID); cycle != nil {
					return cycle
				}
			} else if recStack[depID] {
				// Found a cycle, walk parents back to reconstruct it.
				cycle := []string{depID}
				current := taskID
				for current != depID {
					cycle = append([]string{current}, cycle...)
					current = parent[current]
				}
				return append([]string{depID}, cycle...)
			}
		}

		recStack[taskID] = false
		return nil
	}

	for i := range tasks {
		if !visited[tasks[i].ID] {
			if cycle := dfs(tasks[i].ID); cycle != nil {
				return cycle
			}
		}
	}

	return nil
}
