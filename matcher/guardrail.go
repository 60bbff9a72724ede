package matcher

// IsPathological reports whether a pattern belongs to a family known
// to trigger catastrophic backtracking: a quantified group whose body
// itself contains a top-level quantifier or an alternation, e.g.
// (a+)+, (a*)*, (a|aa)+ and their nestings. Detection is purely
// structural; it never executes the pattern.
//
// False positives are acceptable: a flagged pattern still runs on the
// primary matcher for short inputs and only skips it above the
// guardrail length. False negatives are covered by the match timeout.
func IsPathological(pattern string) bool {
	type group struct {
		quantified  bool // body contains a quantifier at this level
		alternation bool // body contains a top-level '|'
	}

	var stack []group
	escaped := false
	inClass := false

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			escaped = true
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '(':
			if !inClass {
				stack = append(stack, group{})
			}
		case ')':
			if inClass || len(stack) == 0 {
				continue
			}
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if followedByQuantifier(pattern, i+1) {
				if closed.quantified || closed.alternation {
					return true
				}
				// The quantified group counts as a quantifier in the
				// enclosing group's body.
				if len(stack) > 0 {
					stack[len(stack)-1].quantified = true
				}
			}
		case '|':
			if !inClass && len(stack) > 0 {
				stack[len(stack)-1].alternation = true
			}
		case '+', '*':
			if !inClass && len(stack) > 0 {
				stack[len(stack)-1].quantified = true
			}
		case '{':
			if !inClass && len(stack) > 0 && isCountedRepeat(pattern, i) {
				stack[len(stack)-1].quantified = true
			}
		}
	}

	return false
}

// followedByQuantifier reports whether position i starts a quantifier.
func followedByQuantifier(pattern string, i int) bool {
	if i >= len(pattern) {
		return false
	}
	switch pattern[i] {
	case '+', '*':
		return true
	case '{':
		return isCountedRepeat(pattern, i)
	case '?':
		// Optionality alone does not multiply match paths.
		return false
	}
	return false
}

// isCountedRepeat reports whether pattern[i] opens a {m,n} repeat with
// an unbounded or large span worth treating as a quantifier.
func isCountedRepeat(pattern string, i int) bool {
	j := i + 1
	digits := false
	for j < len(pattern) && pattern[j] >= '0' && pattern[j] <= '9' {
		digits = true
		j++
	}
	if j < len(pattern) && pattern[j] == ',' {
		j++
		for j < len(pattern) && pattern[j] >= '0' && pattern[j] <= '9' {
			j++
		}
	}
	return digits && j < len(pattern) && pattern[j] == '}'
}
