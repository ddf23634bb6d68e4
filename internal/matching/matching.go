// Package matching decides whether a documented function and an
// executed test method describe the same unit of behavior.
package matching

import (
	"strings"

	"github.com/unbound-force/casegrid/internal/naming"
)

// DefaultMinSubstringLen is the length both normalized names must
// exceed before substring containment counts as a match.
const DefaultMinSubstringLen = 3

// Matcher is the strategy used by the aggregator to attach test
// records to documented functions. Implementations must be pure and
// must not fail; SameFunction need not be symmetric.
type Matcher interface {
	SameFunction(documented, testMethod string) bool
}

// Func adapts an ordinary function to the Matcher interface.
type Func func(documented, testMethod string) bool

// SameFunction calls f.
func (f Func) SameFunction(documented, testMethod string) bool {
	return f(documented, testMethod)
}

// Heuristic is the permissive name-based matcher. It tolerates an
// "Async" suffix on either side and falls back to substring
// containment, accepting the occasional false-positive grouping.
type Heuristic struct {
	// Splitter extracts the base function name from the test method.
	Splitter naming.Splitter

	// MinSubstringLen is the exclusive lower bound on both normalized
	// lengths for the containment rule. Zero means
	// DefaultMinSubstringLen; a negative value disables the rule.
	MinSubstringLen int
}

// Compile-time interface check.
var _ Matcher = Heuristic{}

// SameFunction reports whether documented names the function that
// testMethod exercises. The checks run in order and short-circuit:
// exact normalized equality, async-suffix tolerance, then substring
// containment.
func (h Heuristic) SameFunction(documented, testMethod string) bool {
	d := naming.Normalize(documented)
	t := naming.Normalize(h.Splitter.BaseFunctionName(testMethod))

	if d == t {
		return true
	}
	if trimAsync(d) == t || trimAsync(t) == d {
		return true
	}

	minLen := h.MinSubstringLen
	if minLen == 0 {
		minLen = DefaultMinSubstringLen
	}
	if minLen < 0 {
		return false
	}
	if len(d) > minLen && len(t) > minLen {
		return strings.Contains(t, d) || strings.Contains(d, t)
	}
	return false
}

// trimAsync removes a trailing "async" from a normalized name. Names
// without the suffix are returned unchanged.
func trimAsync(normalized string) string {
	if s, ok := strings.CutSuffix(normalized, "async"); ok {
		return s
	}
	return normalized
}

// Default returns the Heuristic matcher with default markers and
// containment threshold.
func Default() Matcher {
	return Heuristic{}
}
