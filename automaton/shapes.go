package automaton

import (
	"sync"

	fv "github.com/fieldsafe/validator"
)

// BuildEmailShapeAutomaton recognizes local@domain.tld pragmatically:
// one or more non-space runes, '@', one or more non-space runes, a
// literal '.', then one or more further non-space runes. It stays
// accepting as trailing runes arrive, so multi-label TLDs pass. This
// is intentionally looser than the regex it backs up; the regex is the
// precision path, the automaton is the safety net.
func BuildEmailShapeAutomaton() *NFA {
	b := newBuilder()

	start := b.addState(false)
	local := b.addState(false)
	at := b.addState(false)
	domain := b.addState(false)
	dot := b.addState(false)
	tld := b.addState(true)

	b.nonSpace(start, local)
	b.nonSpace(local, local)
	b.literal(local, '@', at)
	b.nonSpace(at, domain)
	b.nonSpace(domain, domain)
	b.literal(domain, '.', dot)
	b.nonSpace(dot, tld)
	b.nonSpace(tld, tld)

	return b.build(start)
}

// BuildPhoneShapeAutomaton recognizes an optional leading '+',
// then digits interspersed with single spaces or hyphens. It accepts
// once at least one digit has been consumed; minimum-length policy
// belongs to the Descriptor, not the automaton. A trailing separator
// rejects.
func BuildPhoneShapeAutomaton() *NFA {
	b := newBuilder()

	start := b.addState(false)
	ready := b.addState(false)
	run := b.addState(true)
	sep := b.addState(false)

	// '+' is optional: an epsilon edge makes ready reachable for free.
	b.literal(start, '+', ready)
	b.epsilon(start, ready)

	b.digit(ready, run)
	b.digit(run, run)
	b.literal(run, ' ', sep)
	b.literal(run, '-', sep)
	b.digit(sep, run)

	return b.build(start)
}

var (
	emailOnce sync.Once
	emailNFA  *NFA

	phoneOnce sync.Once
	phoneNFA  *NFA
)

// ForKind returns the cached shape automaton for a field kind, or
// (nil, false) for kinds with no fallback. Each shape is built exactly
// once per process.
func ForKind(kind fv.Kind) (*NFA, bool) {
	switch kind {
	case fv.KindEmailShape:
		emailOnce.Do(func() { emailNFA = BuildEmailShapeAutomaton() })
		return emailNFA, true
	case fv.KindPhoneShape:
		phoneOnce.Do(func() { phoneNFA = BuildPhoneShapeAutomaton() })
		return phoneNFA, true
	default:
		return nil, false
	}
}
