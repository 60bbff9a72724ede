// Package pool provides sync.Pool wrappers for reducing GC pressure.
package pool

import "sync"

// stateSetPool holds reusable bool slices used as NFA state sets
// during simulation. Validation of a record simulates an automaton
// once per falling-back field, two state sets per rune; pooling the
// sets keeps the fallback path allocation-free at steady state.
var stateSetPool = sync.Pool{
	New: func() any {
		s := make([]bool, 0, 16)
		return &s
	},
}

// AcquireStateSet gets a zeroed bool slice of length n from the pool.
// Call ReleaseStateSet when done to return it.
func AcquireStateSet(n int) *[]bool {
	p := stateSetPool.Get().(*[]bool)
	s := *p
	if cap(s) < n {
		s = make([]bool, n)
	} else {
		s = s[:n]
		clear(s)
	}
	*p = s
	return p
}

// ReleaseStateSet returns a state set to the pool.
func ReleaseStateSet(s *[]bool) {
	if s == nil {
		return
	}
	// Don't return oversized slices
	if cap(*s) <= 1024 {
		stateSetPool.Put(s)
	}
}
