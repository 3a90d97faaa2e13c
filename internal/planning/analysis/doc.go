// Package analysis provides the heuristic text analysis behind planning:
// the complexity scorer and the dependency inferrer.
//
// Both run on data-driven heuristic tables (see Heuristics) so keyword sets,
// stop words, and phrase patterns can be tuned from configuration and tested
// independently of control flow. Everything here is a pure function of the
// task snapshot; results are best-effort suggestions, not ground truth.
package analysis
