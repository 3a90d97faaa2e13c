// Package planning provides the task model and the execution planner for
// sprint task sets produced by autonomous coding agents.
//
// The planner is a pure, stateless engine: it reads an immutable snapshot of
// tasks, merges explicit and inferred dependency edges, partitions the tasks
// into parallel-safe execution batches, and computes the critical path (the
// longest dependency chain in the set). It never mutates its inputs and
// performs no I/O; the orchestration layer that watches task files on disk is
// responsible for supplying snapshots and acting on the returned plan.
//
// Key entry points:
//   - BuildExecutionPlan: topological batches plus critical path
//   - ApplyInferredDependencies: union inferred edges into a new task slice
//   - RecommendEngineers: parallelism-derived staffing suggestion
//   - ValidatePlan: structural validation with severity-tagged messages
//
// Cycles in the dependency graph never cause non-termination: batching dumps
// the unresolved remainder into one terminal batch, and the critical-path
// walk skips edges that would close a cycle.
package planning
