package analysis

import (
	"fmt"
	"strings"

	"github.com/sprintview/sprintview/internal/planning"
)

// Tier is a coarse complexity bucket derived from the numeric score.
type Tier string

const (
	// TierSimple covers scores 1-3: small, mechanical changes.
	TierSimple Tier = "simple"

	// TierMedium covers scores 4-7: typical feature work.
	TierMedium Tier = "medium"

	// TierComplex covers scores 8-10: cross-cutting or architectural work.
	TierComplex Tier = "complex"
)

// String returns the string representation of the tier.
func (t Tier) String() string {
	return string(t)
}

// ComplexityResult is the scorer's output for one task.
type ComplexityResult struct {
	// Score is the estimated implementation complexity, clamped to [1,10].
	Score int `json:"score"`

	// Tier buckets the score: <=3 simple, 4-7 medium, 8-10 complex.
	Tier Tier `json:"tier"`

	// Reason is a comma-joined trace of the heuristics that fired, in
	// evaluation order, or "default estimate" when none did.
	Reason string `json:"reason"`
}

// Scorer estimates task complexity from text and structural signals using
// compiled heuristic tables. A Scorer is immutable and safe for concurrent
// use.
type Scorer struct {
	h *compiledHeuristics
}

// NewScorer builds a scorer from the given heuristic tables.
func NewScorer(h Heuristics) (*Scorer, error) {
	compiled, err := h.Compile()
	if err != nil {
		return nil, err
	}
	return &Scorer{h: compiled}, nil
}

var defaultScorer = mustScorer(DefaultHeuristics())

func mustScorer(h Heuristics) *Scorer {
	s, err := NewScorer(h)
	if err != nil {
		panic(err)
	}
	return s
}

// Score scores a task with the default heuristic tables.
func Score(task planning.Task) ComplexityResult {
	return defaultScorer.Score(task)
}

// Score estimates the complexity of one task. It is pure and total: a task
// with no signals at all scores the neutral baseline with reason
// "default estimate".
//
// The score starts from a baseline of 5 and applies independent additive
// adjustments for description length, estimated file touches, keyword
// matches, and declared dependency count, then clamps to [1,10].
func (s *Scorer) Score(task planning.Task) ComplexityResult {
	text := task.CombinedText()
	lower := strings.ToLower(text)

	score := 5
	var reasons []string

	// Description length.
	words := len(strings.Fields(text))
	switch {
	case words > 80:
		score += 2
		reasons = append(reasons, "long description")
	case words > 40:
		score++
		reasons = append(reasons, "moderate description length")
	case words < 15:
		score--
		reasons = append(reasons, "short description")
	}

	// File-touch estimate.
	files := s.estimateFileTouches(lower)
	switch {
	case files >= 5:
		score += 2
		reasons = append(reasons, fmt.Sprintf("~%d files referenced", files))
	case files >= 3:
		score++
		reasons = append(reasons, fmt.Sprintf("~%d files referenced", files))
	case files == 1:
		score--
		reasons = append(reasons, "single file")
	}

	// Keyword delta: high-complexity hits minus low-complexity hits.
	delta := countKeywords(lower, s.h.HighKeywords) - countKeywords(lower, s.h.LowKeywords)
	switch {
	case delta >= 2:
		score += 2
		reasons = append(reasons, "multiple high-complexity keywords")
	case delta == 1:
		score++
		reasons = append(reasons, "high-complexity keyword")
	case delta <= -1:
		score -= 2
		reasons = append(reasons, "low-complexity keyword")
	}

	// Declared dependency count.
	deps := len(task.BlockedBy)
	switch {
	case deps >= 3:
		score += 2
		reasons = append(reasons, fmt.Sprintf("%d dependencies", deps))
	case deps >= 1:
		score++
		reasons = append(reasons, fmt.Sprintf("%d dependency", deps))
	}

	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}

	reason := "default estimate"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, ", ")
	}

	return ComplexityResult{
		Score:  score,
		Tier:   tierForScore(score),
		Reason: reason,
	}
}

// estimateFileTouches guesses how many files a task touches: the number of
// path-like tokens in the text, plus two per distinct multi-file phrase
// pattern matched, floored at 1.
func (s *Scorer) estimateFileTouches(lowerText string) int {
	count := len(s.h.fileRe.FindAllString(lowerText, -1))
	for _, re := range s.h.multiRes {
		if re.MatchString(lowerText) {
			count += 2
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}

// countKeywords counts how many of the keywords occur in the lowercase text.
func countKeywords(lowerText string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			n++
		}
	}
	return n
}

// tierForScore maps a clamped score to its tier.
func tierForScore(score int) Tier {
	switch {
	case score <= 3:
		return TierSimple
	case score <= 7:
		return TierMedium
	default:
		return TierComplex
	}
}
