package analysis

import (
	"fmt"
	"regexp"
)

// Heuristics holds the tunable tables driving complexity scoring and
// dependency inference. Values are plain data so they can be overridden
// from configuration; compile them with Compile before use.
type Heuristics struct {
	// HighKeywords raise the complexity score when found in task text
	// (case-insensitive substring match).
	HighKeywords []string `mapstructure:"high_keywords"`

	// LowKeywords lower the complexity score when found in task text.
	LowKeywords []string `mapstructure:"low_keywords"`

	// StopWords are excluded from significant-token overlap comparisons.
	StopWords []string `mapstructure:"stop_words"`

	// PrereqPhrases signal that a task builds on earlier work, e.g.
	// "based on". Matched as lowercase substrings.
	PrereqPhrases []string `mapstructure:"prereq_phrases"`

	// FilePattern is the regex source matching a path-like token.
	FilePattern string `mapstructure:"file_pattern"`

	// MultiFilePatterns are regex sources for phrases implying work across
	// many files. Each distinct pattern that matches counts as two extra
	// files in the file-touch estimate.
	MultiFilePatterns []string `mapstructure:"multi_file_patterns"`

	// MinSignificantTokenLen is the minimum rune length for a word to count
	// as a significant token.
	MinSignificantTokenLen int `mapstructure:"min_significant_token_len"`

	// OverlapThreshold is the minimum significant-token overlap for the
	// prerequisite-phrase and subject-overlap inference rules.
	OverlapThreshold int `mapstructure:"overlap_threshold"`
}

// DefaultHeuristics returns the built-in heuristic tables.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		HighKeywords: []string{
			"refactor", "migrate", "migration", "architecture", "worktree",
			"dashboard", "component library", "rewrite", "redesign",
			"integrate", "integration", "authentication", "authorization",
			"database", "schema", "pipeline", "infrastructure", "deployment",
			"multi-", "distributed", "concurrent", "async", "websocket",
			"streaming", "encryption", "security audit",
		},
		LowKeywords: []string{
			"add comment", "fix typo", "update readme", "rename",
			"update docs", "fix lint", "formatting", "whitespace",
			"changelog", "bump version", "update version", "cleanup",
			"remove unused", "add log", "minor fix", "typo",
		},
		StopWords: []string{
			"the", "a", "an", "in", "for", "of", "to", "and", "on", "with",
			"is", "are", "at", "by",
		},
		PrereqPhrases: []string{
			"from task", "using the", "based on", "built on",
		},
		FilePattern: `[\w/]+\.[A-Za-z0-9]{2,4}\b`,
		MultiFilePatterns: []string{
			`(all|every|each)\s+(\w+\s+)?(files?|components?|modules?|pages?|routes?|endpoints?)`,
			`multiple\s+files`,
			`across\s+the\s+(entire\s+)?(codebase|project|app)`,
			`end-to-end`,
			`full-stack`,
		},
		MinSignificantTokenLen: 3,
		OverlapThreshold:       2,
	}
}

// compiledHeuristics is a Heuristics value with its regex sources compiled
// and its word lists converted to lookup form.
type compiledHeuristics struct {
	Heuristics

	fileRe    *regexp.Regexp
	multiRes  []*regexp.Regexp
	stopWords map[string]bool
	wordSplit *regexp.Regexp
}

// Compile validates the heuristic tables and compiles their regex sources.
func (h Heuristics) Compile() (*compiledHeuristics, error) {
	fileRe, err := regexp.Compile(h.FilePattern)
	if err != nil {
		return nil, fmt.Errorf("compiling file pattern: %w", err)
	}

	multiRes := make([]*regexp.Regexp, 0, len(h.MultiFilePatterns))
	for _, src := range h.MultiFilePatterns {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compiling multi-file pattern %q: %w", src, err)
		}
		multiRes = append(multiRes, re)
	}

	stop := make(map[string]bool, len(h.StopWords))
	for _, w := range h.StopWords {
		stop[w] = true
	}

	return &compiledHeuristics{
		Heuristics: h,
		fileRe:     fileRe,
		multiRes:   multiRes,
		stopWords:  stop,
		wordSplit:  regexp.MustCompile(`[a-z0-9_/.-]+`),
	}, nil
}

// fileTokens extracts the set of path-like tokens from lowercase text.
func (c *compiledHeuristics) fileTokens(lowerText string) map[string]bool {
	tokens := make(map[string]bool)
	for _, m := range c.fileRe.FindAllString(lowerText, -1) {
		tokens[m] = true
	}
	return tokens
}

// significantTokens extracts the set of words in lowercase text that are
// long enough and not stop words.
func (c *compiledHeuristics) significantTokens(lowerText string) map[string]bool {
	tokens := make(map[string]bool)
	for _, w := range c.wordSplit.FindAllString(lowerText, -1) {
		if len(w) < c.MinSignificantTokenLen || c.stopWords[w] {
			continue
		}
		tokens[w] = true
	}
	return tokens
}

// overlap counts the tokens present in both sets.
func overlap(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if b[tok] {
			n++
		}
	}
	return n
}
