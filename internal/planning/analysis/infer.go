package analysis

import (
	"strconv"
	"strings"

	"github.com/sprintview/sprintview/internal/planning"
)

// Inferrer proposes additional blockedBy edges between tasks from textual
// and structural signals. Like Scorer, an Inferrer is immutable and safe
// for concurrent use.
type Inferrer struct {
	h *compiledHeuristics
}

// NewInferrer builds an inferrer from the given heuristic tables.
func NewInferrer(h Heuristics) (*Inferrer, error) {
	compiled, err := h.Compile()
	if err != nil {
		return nil, err
	}
	return &Inferrer{h: compiled}, nil
}

var defaultInferrer = mustInferrer(DefaultHeuristics())

func mustInferrer(h Heuristics) *Inferrer {
	inf, err := NewInferrer(h)
	if err != nil {
		panic(err)
	}
	return inf
}

// InferDependencies infers edges with the default heuristic tables.
func InferDependencies(tasks []planning.Task) map[string][]string {
	return defaultInferrer.Infer(tasks)
}

// taskSignals caches the per-task token sets the inference rules compare.
type taskSignals struct {
	task planning.Task

	// numericID and hasNumericID hold the parsed task ID; ordering between
	// two tasks uses numeric comparison when both parse and snapshot order
	// otherwise.
	numericID    int
	hasNumericID bool

	fileTokens    map[string]bool
	sigTokens     map[string]bool // from subject + description
	subjectTokens map[string]bool // from subject alone
	hasPrereq     bool
}

// Infer proposes additional dependency edges for each task. The result maps
// a task ID to the IDs of earlier tasks it plausibly depends on; tasks with
// no proposals are omitted. Proposed edges are net additions only: never a
// self-edge, never a duplicate of an explicit blockedBy entry.
//
// Only earlier tasks are eligible upstream dependencies. For each candidate
// pair the rules run in priority order, first match wins:
//
//  1. The task references at least one file and shares a file token with
//     the candidate.
//  2. The task's text contains a prerequisite phrase ("based on", ...) and
//     its significant-token overlap with the candidate meets the threshold.
//  3. The subject-only significant-token overlap meets the threshold.
//
// This is heuristic and best-effort; the contract is plausible suggestions,
// not ground truth.
func (inf *Inferrer) Infer(tasks []planning.Task) map[string][]string {
	var signals []taskSignals
	for _, t := range tasks {
		if t.IsInternal() {
			continue
		}
		signals = append(signals, inf.computeSignals(t))
	}

	inferred := make(map[string][]string)

	for i := range signals {
		t := &signals[i]

		explicit := make(map[string]bool, len(t.task.BlockedBy))
		for _, id := range t.task.BlockedBy {
			explicit[id] = true
		}

		var additions []string
		for j := range signals {
			c := &signals[j]
			if i == j || !earlier(c, j, t, i) {
				continue
			}
			if explicit[c.task.ID] {
				continue
			}
			if inf.matches(t, c) {
				additions = append(additions, c.task.ID)
			}
		}
		if len(additions) > 0 {
			inferred[t.task.ID] = additions
		}
	}

	return inferred
}

// matches applies the priority-ordered inference rules to one (task,
// candidate) pair.
func (inf *Inferrer) matches(t, c *taskSignals) bool {
	if len(t.fileTokens) > 0 && overlap(t.fileTokens, c.fileTokens) > 0 {
		return true
	}
	if t.hasPrereq && overlap(t.sigTokens, c.sigTokens) >= inf.h.OverlapThreshold {
		return true
	}
	return overlap(t.subjectTokens, c.subjectTokens) >= inf.h.OverlapThreshold
}

// earlier reports whether candidate c precedes task t: by numeric ID when
// both IDs parse as integers, by snapshot index otherwise.
func earlier(c *taskSignals, cIdx int, t *taskSignals, tIdx int) bool {
	if c.hasNumericID && t.hasNumericID {
		return c.numericID < t.numericID
	}
	return cIdx < tIdx
}

func (inf *Inferrer) computeSignals(t planning.Task) taskSignals {
	lower := strings.ToLower(t.CombinedText())

	sig := taskSignals{
		task:          t,
		fileTokens:    inf.h.fileTokens(lower),
		sigTokens:     inf.h.significantTokens(lower),
		subjectTokens: inf.h.significantTokens(strings.ToLower(t.Subject)),
	}

	if n, err := strconv.Atoi(strings.TrimSpace(t.ID)); err == nil {
		sig.numericID = n
		sig.hasNumericID = true
	}

	for _, phrase := range inf.h.PrereqPhrases {
		if strings.Contains(lower, phrase) {
			sig.hasPrereq = true
			break
		}
	}

	return sig
}
