// Package admission caps the number of concurrently running primary
// matcher executions. The pool never queues: a caller that cannot get
// a permit immediately is told so and sheds its work to the fallback
// path instead of waiting.
package admission

import "sync/atomic"

// Pool is a counting permit pool bounded to a fixed size.
// All methods are safe for concurrent use.
type Pool struct {
	permits chan struct{}

	acquired atomic.Uint64
	rejected atomic.Uint64
	released atomic.Uint64
}

// NewPool creates a pool with max permits. max below one is clamped
// to one.
func NewPool(max int) *Pool {
	if max < 1 {
		max = 1
	}
	return &Pool{
		permits: make(chan struct{}, max),
	}
}

// TryAcquire takes a permit if one is free and returns immediately
// either way. It never blocks, not even briefly.
func (p *Pool) TryAcquire() bool {
	select {
	case p.permits <- struct{}{}:
		p.acquired.Add(1)
		return true
	default:
		p.rejected.Add(1)
		return false
	}
}

// Release returns a permit. It must be called exactly once per
// successful TryAcquire, on every exit path of the protected region.
// A release without a matching acquire indicates a caller bug and
// panics rather than silently growing the pool.
func (p *Pool) Release() {
	select {
	case <-p.permits:
		p.released.Add(1)
	default:
		panic("admission: Release without matching TryAcquire")
	}
}

// InUse returns the number of currently held permits.
func (p *Pool) InUse() int {
	return len(p.permits)
}

// Cap returns the pool size.
func (p *Pool) Cap() int {
	return cap(p.permits)
}

// Stats is a snapshot of the pool counters.
type Stats struct {
	Acquired uint64
	Rejected uint64
	Released uint64
	InUse    int
	Cap      int
}

// Stats returns the current counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Acquired: p.acquired.Load(),
		Rejected: p.rejected.Load(),
		Released: p.released.Load(),
		InUse:    len(p.permits),
		Cap:      cap(p.permits),
	}
}
