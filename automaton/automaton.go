// Package automaton builds and simulates small NFAs for known field
// shapes. Simulation is backtracking-free and O(n·|states|), which is
// the safety property the rest of the engine leans on: no input,
// adversarial or not, can make it take more than a linear pass.
package automaton

import (
	"unicode"

	"github.com/fieldsafe/validator/pool"
)

// NFA is an immutable nondeterministic finite automaton. It is built
// once per shape and never mutated afterwards; each Simulate call
// works on its own state sets, so a single NFA is safe for unlimited
// concurrent simulation.
type NFA struct {
	states []state
	start  int
}

// state holds the transitions out of one automaton state. Transitions
// are labeled either with an exact literal rune or with a symbol class
// ("any non-space", "any digit"); epsilon successors consume no input.
type state struct {
	accept   bool
	literals map[rune][]int
	nonSpace []int
	digit    []int
	epsilon  []int
}

// builder assembles an NFA. Not safe for concurrent use; the built
// NFA is.
type builder struct {
	states []state
}

func newBuilder() *builder {
	return &builder{}
}

// addState appends a state and returns its id.
func (b *builder) addState(accept bool) int {
	b.states = append(b.states, state{accept: accept})
	return len(b.states) - 1
}

// literal adds an exact-rune transition.
func (b *builder) literal(from int, r rune, to int) {
	st := &b.states[from]
	if st.literals == nil {
		st.literals = make(map[rune][]int)
	}
	st.literals[r] = append(st.literals[r], to)
}

// nonSpace adds an "any non-whitespace rune" transition.
func (b *builder) nonSpace(from, to int) {
	b.states[from].nonSpace = append(b.states[from].nonSpace, to)
}

// digit adds an "any decimal digit" transition.
func (b *builder) digit(from, to int) {
	b.states[from].digit = append(b.states[from].digit, to)
}

// epsilon adds a free transition.
func (b *builder) epsilon(from, to int) {
	b.states[from].epsilon = append(b.states[from].epsilon, to)
}

// build finalizes the automaton with the given start state.
func (b *builder) build(start int) *NFA {
	return &NFA{states: b.states, start: start}
}

// Simulate runs the automaton over input and reports whether it ends
// in an accepting state. The current state set becomes empty as soon
// as no transition applies, at which point the input is rejected
// without consuming the rest of it.
func (n *NFA) Simulate(input string) bool {
	curPtr := pool.AcquireStateSet(len(n.states))
	nextPtr := pool.AcquireStateSet(len(n.states))
	defer pool.ReleaseStateSet(curPtr)
	defer pool.ReleaseStateSet(nextPtr)

	current, next := *curPtr, *nextPtr
	n.closeEpsilon(current, n.start)

	for _, r := range input {
		clear(next)
		alive := false

		for id := range current {
			if !current[id] {
				continue
			}
			st := &n.states[id]

			for _, to := range st.literals[r] {
				next[to] = true
				alive = true
			}
			if !unicode.IsSpace(r) {
				for _, to := range st.nonSpace {
					next[to] = true
					alive = true
				}
			}
			if unicode.IsDigit(r) {
				for _, to := range st.digit {
					next[to] = true
					alive = true
				}
			}
		}

		if !alive {
			return false
		}

		for id := range next {
			if next[id] {
				n.closeEpsilon(next, id)
			}
		}
		current, next = next, current
	}

	for id := range current {
		if current[id] && n.states[id].accept {
			return true
		}
	}
	return false
}

// closeEpsilon marks every state reachable from id via epsilon
// transitions, including id itself.
func (n *NFA) closeEpsilon(set []bool, id int) {
	set[id] = true
	for _, to := range n.states[id].epsilon {
		if !set[to] {
			n.closeEpsilon(set, to)
		}
	}
}

// StateCount returns the number of states, mostly for tests and
// complexity assertions.
func (n *NFA) StateCount() int {
	return len(n.states)
}
