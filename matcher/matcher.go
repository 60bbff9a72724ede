// Package matcher provides the primary pattern path: a backtracking
// regex engine wrapped with a hard wall-clock budget, plus the cache
// and the structural guardrail that keep it safe to run on untrusted
// input.
package matcher

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Verdict is the outcome of one bounded match. Every call site handles
// every variant; timeouts and malformed patterns are values here, not
// panics or control-flow exceptions.
type Verdict int

// Possible match outcomes.
const (
	// VerdictMatched: the value matches the anchored pattern.
	VerdictMatched Verdict = iota
	// VerdictNoMatch: the matcher completed and rejected the value.
	VerdictNoMatch
	// VerdictTimeout: the matcher exceeded its execution budget.
	VerdictTimeout
	// VerdictBadPattern: the pattern failed to compile.
	VerdictBadPattern
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictMatched:
		return "matched"
	case VerdictNoMatch:
		return "no-match"
	case VerdictTimeout:
		return "timeout"
	case VerdictBadPattern:
		return "bad-pattern"
	default:
		return "unknown"
	}
}

// Bounded is a compiled pattern with an explicit maximum execution
// time. Immutable after construction, safe for concurrent use.
type Bounded struct {
	pattern string
	timeout time.Duration
	re      *regexp2.Regexp
}

// Compile compiles an already-anchored pattern with the given budget.
func Compile(pattern string, timeout time.Duration) (*Bounded, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = timeout
	return &Bounded{
		pattern: pattern,
		timeout: timeout,
		re:      re,
	}, nil
}

// Pattern returns the anchored pattern text.
func (b *Bounded) Pattern() string {
	return b.pattern
}

// Timeout returns the execution budget.
func (b *Bounded) Timeout() time.Duration {
	return b.timeout
}

// MatchString evaluates the value. The only error the underlying
// engine can return after a successful compile is budget exhaustion,
// which maps to VerdictTimeout.
func (b *Bounded) MatchString(value string) Verdict {
	ok, err := b.re.MatchString(value)
	if err != nil {
		return VerdictTimeout
	}
	if ok {
		return VerdictMatched
	}
	return VerdictNoMatch
}

// Anchor pins a pattern to the full value so partial matches never
// pass: "^" is prefixed and "$" suffixed unless already present.
func Anchor(pattern string) string {
	if !strings.HasPrefix(pattern, "^") {
		pattern = "^" + pattern
	}
	if !strings.HasSuffix(pattern, "$") || strings.HasSuffix(pattern, `\$`) {
		pattern = pattern + "$"
	}
	return pattern
}
