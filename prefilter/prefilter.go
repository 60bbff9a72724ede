// Package prefilter extracts literals that every match of a pattern
// must contain and checks inputs for them in a single Aho-Corasick
// pass. An input missing a required literal cannot match, so the
// engine can skip the expensive matcher without running it at all.
package prefilter

import (
	"strings"

	ac "github.com/petar-dambovaliev/aho-corasick"
)

// Filter holds the required literals of one pattern and the automaton
// that scans for them. Immutable and safe for concurrent use.
// A Filter with no literals admits everything.
type Filter struct {
	automaton *ac.AhoCorasick
	literals  []string
}

// FromPattern builds a filter from an anchored pattern. Extraction is
// conservative: only literals that provably occur in every match are
// kept, so Admits never rejects a value the pattern would accept.
func FromPattern(pattern string) *Filter {
	literals := RequiredLiterals(pattern)
	f := &Filter{literals: literals}
	if len(literals) > 0 {
		builder := ac.NewAhoCorasickBuilder(ac.Opts{
			AsciiCaseInsensitive: false,
			MatchKind:            ac.StandardMatch,
		})
		built := builder.Build(literals)
		f.automaton = &built
	}
	return f
}

// Literals returns the required literals, mostly for tests.
func (f *Filter) Literals() []string {
	return f.literals
}

// Admits reports whether value contains every required literal.
func (f *Filter) Admits(value string) bool {
	if f.automaton == nil {
		return true
	}

	found := make([]bool, len(f.literals))
	remaining := len(f.literals)
	for _, m := range f.automaton.FindAll(value) {
		idx := m.Pattern()
		if idx >= 0 && idx < len(found) && !found[idx] {
			found[idx] = true
			remaining--
			if remaining == 0 {
				return true
			}
		}
	}
	return remaining == 0
}

// RequiredLiterals extracts the literal runs a pattern demands of
// every match. It collects only at the top level, outside groups and
// classes, and drops anything a quantifier can make optional. A
// top-level alternation makes nothing required, so it yields nil.
func RequiredLiterals(pattern string) []string {
	var runs []string
	var cur []byte
	depth := 0
	inClass := false

	flush := func() {
		if len(cur) > 0 {
			runs = append(runs, string(cur))
			cur = nil
		}
	}
	// A '*' or '?' makes the preceding element optional.
	dropLast := func() {
		if len(cur) > 0 {
			cur = cur[:len(cur)-1]
		}
		flush()
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		if inClass {
			if c == '\\' {
				i++
			} else if c == ']' {
				inClass = false
			}
			continue
		}

		switch c {
		case '\\':
			i++
			if i >= len(pattern) {
				break
			}
			e := pattern[i]
			if isClassEscape(e) {
				flush()
				break
			}
			// Escaped literal, unless a following quantifier can
			// erase it.
			if i+1 < len(pattern) && (pattern[i+1] == '*' || pattern[i+1] == '?') {
				flush()
				i++
				break
			}
			if depth == 0 {
				cur = append(cur, e)
			}
		case '[':
			flush()
			inClass = true
		case '(':
			flush()
			depth++
		case ')':
			flush()
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				// Any branch may be taken; nothing is required.
				return nil
			}
		case '^', '$', '.':
			flush()
		case '+':
			// One-or-more keeps the preceding element required.
			flush()
		case '*', '?':
			dropLast()
		case '{':
			// Counted repeat may permit zero occurrences; be safe.
			dropLast()
			for i < len(pattern) && pattern[i] != '}' {
				i++
			}
		default:
			if depth == 0 {
				cur = append(cur, c)
			}
		}
	}
	flush()

	return normalize(runs)
}

// normalize dedupes literals and drops any literal contained in a
// longer one, so a single automaton hit can stand for both.
func normalize(runs []string) []string {
	var out []string
	for i, r := range runs {
		redundant := false
		for j, other := range runs {
			if i == j {
				continue
			}
			if r == other {
				if j < i {
					redundant = true
					break
				}
				continue
			}
			if len(other) > len(r) && strings.Contains(other, r) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, r)
		}
	}
	return out
}

// isClassEscape reports whether an escape designates a character class
// or boundary rather than a literal.
func isClassEscape(c byte) bool {
	switch c {
	case 'd', 'D', 'w', 'W', 's', 'S', 'b', 'B', 'A', 'z', 'Z':
		return true
	}
	return false
}
