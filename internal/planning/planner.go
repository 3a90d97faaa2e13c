package planning

import "slices"

// ApplyInferredDependencies returns a new task slice with the inferred edges
// unioned into each task's BlockedBy set, deduplicated. The input tasks are
// never mutated; tasks without inferred additions are copied through as-is.
func ApplyInferredDependencies(tasks []Task, inferred map[string][]string) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t
		additions := inferred[t.ID]
		if len(additions) == 0 {
			continue
		}

		merged := make([]string, 0, len(t.BlockedBy)+len(additions))
		seen := make(map[string]bool, len(t.BlockedBy)+len(additions))
		for _, id := range t.BlockedBy {
			if !seen[id] {
				seen[id] = true
				merged = append(merged, id)
			}
		}
		for _, id := range additions {
			if !seen[id] {
				seen[id] = true
				merged = append(merged, id)
			}
		}
		out[i].BlockedBy = merged
	}
	return out
}

// BuildExecutionPlan partitions the non-internal tasks into parallel-safe
// execution batches and computes the critical path. Input tasks are expected
// to already carry merged (explicit plus inferred) BlockedBy sets; see
// ApplyInferredDependencies.
//
// Dependencies on IDs outside the task set are treated as already satisfied,
// so references to tasks from other sprints never block forever. If the
// graph contains a cycle, the unresolved remainder is emitted as one final
// batch rather than looping.
func BuildExecutionPlan(tasks []Task) ExecutionPlan {
	plannable := FilterPlannable(tasks)

	plan := ExecutionPlan{
		Batches:      calculateBatches(plannable),
		CriticalPath: calculateCriticalPath(plannable),
	}

	plan.ParallelismScore = parallelismScore(len(plannable), len(plan.Batches))
	if len(plan.Batches) > 0 {
		plan.AverageBatchSize = float64(plan.TaskCount()) / float64(len(plan.Batches))
	}
	for i, batch := range plan.Batches {
		if len(batch) == 1 {
			plan.BottleneckBatches = append(plan.BottleneckBatches, i)
		}
	}

	return plan
}

// calculateBatches performs round-based topological batching. In each round
// every task whose dependencies are all placed (or unknown) joins the current
// batch. A round that places nothing while tasks remain means the remainder
// is cyclic; it is emitted as one terminal batch to guarantee termination.
func calculateBatches(tasks []Task) [][]string {
	if len(tasks) == 0 {
		return nil
	}

	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}

	var batches [][]string
	placed := make(map[string]bool, len(tasks))

	for placedCount := 0; placedCount < len(tasks); {
		var batch []string
		for _, t := range tasks {
			if placed[t.ID] {
				continue
			}
			ready := true
			for _, depID := range t.BlockedBy {
				// Unknown IDs (other sprints, internal tasks) count as
				// satisfied; only unplaced known tasks block.
				if known[depID] && !placed[depID] {
					ready = false
					break
				}
			}
			if ready {
				batch = append(batch, t.ID)
			}
		}

		if len(batch) == 0 {
			// Dependency cycle: dump the remainder as a single batch.
			var rest []string
			for _, t := range tasks {
				if !placed[t.ID] {
					rest = append(rest, t.ID)
				}
			}
			batches = append(batches, rest)
			break
		}

		for _, id := range batch {
			placed[id] = true
		}
		placedCount += len(batch)
		batches = append(batches, batch)
	}

	return batches
}

// calculateCriticalPath finds the longest chain of BlockedBy edges in the
// task set. Chain lengths are computed iteratively with an explicit stack so
// that a cyclic subgraph cannot recurse unboundedly: an edge back into a
// task still being visited is skipped, which drops that edge from chain
// consideration and keeps the returned path acyclic.
//
// Ties are broken first-seen: among a task's dependencies the first one
// yielding the maximum chain wins as predecessor, and among tasks the first
// one reaching the overall maximum becomes the tail.
func calculateCriticalPath(tasks []Task) []string {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[string]*Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	chain := make(map[string]int, len(tasks))   // longest chain ending at ID
	pred := make(map[string]string, len(tasks)) // dependency producing that chain
	done := make(map[string]bool, len(tasks))
	inProgress := make(map[string]bool, len(tasks))

	type frame struct {
		id     string
		depIdx int
	}

	visit := func(rootID string) {
		if done[rootID] {
			return
		}
		stack := []frame{{id: rootID}}
		inProgress[rootID] = true

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			t := byID[f.id]

			descended := false
			for f.depIdx < len(t.BlockedBy) {
				depID := t.BlockedBy[f.depIdx]
				f.depIdx++
				dep, ok := byID[depID]
				if !ok || done[dep.ID] || inProgress[dep.ID] {
					// Unknown IDs contribute nothing; in-progress IDs are
					// cycle edges and are skipped.
					continue
				}
				stack = append(stack, frame{id: dep.ID})
				inProgress[dep.ID] = true
				descended = true
				break
			}
			if descended {
				continue
			}

			// All dependencies resolved: record this task's longest chain.
			best := 1
			bestPred := ""
			for _, depID := range t.BlockedBy {
				if done[depID] && chain[depID]+1 > best {
					best = chain[depID] + 1
					bestPred = depID
				}
			}
			chain[f.id] = best
			if bestPred != "" {
				pred[f.id] = bestPred
			}
			done[f.id] = true
			inProgress[f.id] = false
			stack = stack[:len(stack)-1]
		}
	}

	for i := range tasks {
		visit(tasks[i].ID)
	}

	tail := ""
	longest := 0
	for i := range tasks {
		if chain[tasks[i].ID] > longest {
			longest = chain[tasks[i].ID]
			tail = tasks[i].ID
		}
	}
	if tail == "" {
		return nil
	}

	path := []string{tail}
	for {
		prev, ok := pred[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}
	slices.Reverse(path)
	return path
}

// parallelismScore measures how well a plan utilizes parallelism on a 0-100
// scale: one batch scores 100, one task per batch approaches 0.
func parallelismScore(taskCount, batchCount int) int {
	if taskCount == 0 || batchCount == 0 {
		return 0
	}
	score := 100 * (taskCount - batchCount + 1) / taskCount
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// RecommendEngineers suggests how many engineers the plan can keep busy:
// the widest batch, floored at 1 and capped at maxEngineers. A plan with no
// batches recommends a single engineer.
func RecommendEngineers(plan ExecutionPlan, maxEngineers int) int {
	if len(plan.Batches) == 0 {
		return 1
	}
	widest := plan.WidestBatch()
	if widest < 1 {
		widest = 1
	}
	if widest > maxEngineers {
		return maxEngineers
	}
	return widest
}
