package fieldsafe

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks engine performance using lock-free atomic operations.
// All methods are safe for concurrent use.
type Metrics struct {
	// Validation counts
	validationsTotal atomic.Uint64
	validationsValid atomic.Uint64
	fieldsChecked    atomic.Uint64

	// Path counts
	primaryMatches  atomic.Uint64
	fallbackRuns    atomic.Uint64
	guardrailSkips  atomic.Uint64
	permitRejects   atomic.Uint64
	matchTimeouts   atomic.Uint64
	badPatterns     atomic.Uint64
	prefilterCuts   atomic.Uint64

	// Cache metrics
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64

	// Timing (stored as nanoseconds)
	validationTimeTotal atomic.Uint64
	validationTimeMin   atomic.Uint64
	validationTimeMax   atomic.Uint64

	// Per-field fallback tracking (map access via sync.Map)
	fieldFallbacks sync.Map // map[string]*fieldMetrics
}

// fieldMetrics tracks fallback activity for a single field.
type fieldMetrics struct {
	evaluations atomic.Uint64
	fallbacks   atomic.Uint64
	maxInputLen atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so first value becomes the minimum
	m.validationTimeMin.Store(^uint64(0))
	return m
}

// --- Recording Methods ---

// RecordValidation records a completed ValidateAll call.
func (m *Metrics) RecordValidation(duration time.Duration, valid bool) {
	m.validationsTotal.Add(1)
	if valid {
		m.validationsValid.Add(1)
	}

	ns := uint64(duration.Nanoseconds())
	m.validationTimeTotal.Add(ns)

	// Update min (CAS loop)
	for {
		old := m.validationTimeMin.Load()
		if ns >= old {
			break
		}
		if m.validationTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (CAS loop)
	for {
		old := m.validationTimeMax.Load()
		if ns <= old {
			break
		}
		if m.validationTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordField records one field evaluation.
func (m *Metrics) RecordField(name string, inputLen int) {
	m.fieldsChecked.Add(1)
	fm := m.getOrCreateFieldMetrics(name)
	fm.evaluations.Add(1)

	ln := uint64(inputLen)
	for {
		old := fm.maxInputLen.Load()
		if ln <= old {
			break
		}
		if fm.maxInputLen.CompareAndSwap(old, ln) {
			break
		}
	}
}

// RecordPrimaryMatch records a field resolved on the primary path.
func (m *Metrics) RecordPrimaryMatch() {
	m.primaryMatches.Add(1)
}

// RecordFallback records a field routed to the fallback path, with the
// reason it left the primary path.
func (m *Metrics) RecordFallback(field string, reason FallbackReason) {
	m.fallbackRuns.Add(1)
	switch reason {
	case ReasonGuardrail:
		m.guardrailSkips.Add(1)
	case ReasonNoPermit:
		m.permitRejects.Add(1)
	case ReasonTimeout:
		m.matchTimeouts.Add(1)
	case ReasonBadPattern:
		m.badPatterns.Add(1)
	}
	m.getOrCreateFieldMetrics(field).fallbacks.Add(1)
}

// RecordPrefilterCut records an input rejected by the literal prefilter.
func (m *Metrics) RecordPrefilterCut() {
	m.prefilterCuts.Add(1)
}

// RecordCacheHit records a matcher cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a matcher cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

func (m *Metrics) getOrCreateFieldMetrics(name string) *fieldMetrics {
	if v, ok := m.fieldFallbacks.Load(name); ok {
		return v.(*fieldMetrics)
	}
	fm := &fieldMetrics{}
	actual, _ := m.fieldFallbacks.LoadOrStore(name, fm)
	return actual.(*fieldMetrics)
}

// --- Reading Methods ---

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	ValidationsTotal uint64
	ValidationsValid uint64
	FieldsChecked    uint64

	PrimaryMatches uint64
	FallbackRuns   uint64
	GuardrailSkips uint64
	PermitRejects  uint64
	MatchTimeouts  uint64
	BadPatterns    uint64
	PrefilterCuts  uint64

	CacheHits   uint64
	CacheMisses uint64

	AvgValidationTime time.Duration
	MinValidationTime time.Duration
	MaxValidationTime time.Duration

	Fields map[string]FieldSnapshot
}

// FieldSnapshot is the per-field view.
type FieldSnapshot struct {
	Evaluations uint64
	Fallbacks   uint64
	MaxInputLen uint64
}

// Snapshot returns a consistent-enough copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		ValidationsTotal: m.validationsTotal.Load(),
		ValidationsValid: m.validationsValid.Load(),
		FieldsChecked:    m.fieldsChecked.Load(),
		PrimaryMatches:   m.primaryMatches.Load(),
		FallbackRuns:     m.fallbackRuns.Load(),
		GuardrailSkips:   m.guardrailSkips.Load(),
		PermitRejects:    m.permitRejects.Load(),
		MatchTimeouts:    m.matchTimeouts.Load(),
		BadPatterns:      m.badPatterns.Load(),
		PrefilterCuts:    m.prefilterCuts.Load(),
		CacheHits:        m.cacheHits.Load(),
		CacheMisses:      m.cacheMisses.Load(),
		Fields:           make(map[string]FieldSnapshot),
	}

	total := m.validationTimeTotal.Load()
	if s.ValidationsTotal > 0 {
		s.AvgValidationTime = time.Duration(total / s.ValidationsTotal)
	}
	if min := m.validationTimeMin.Load(); min != ^uint64(0) {
		s.MinValidationTime = time.Duration(min)
	}
	s.MaxValidationTime = time.Duration(m.validationTimeMax.Load())

	m.fieldFallbacks.Range(func(k, v any) bool {
		fm := v.(*fieldMetrics)
		s.Fields[k.(string)] = FieldSnapshot{
			Evaluations: fm.evaluations.Load(),
			Fallbacks:   fm.fallbacks.Load(),
			MaxInputLen: fm.maxInputLen.Load(),
		}
		return true
	})

	return s
}

// FallbackRate returns the fraction of field evaluations that resolved
// on the fallback path. This is the number operators alert on.
func (m *Metrics) FallbackRate() float64 {
	fields := m.fieldsChecked.Load()
	if fields == 0 {
		return 0
	}
	return float64(m.fallbackRuns.Load()) / float64(fields)
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	m.validationsTotal.Store(0)
	m.validationsValid.Store(0)
	m.fieldsChecked.Store(0)
	m.primaryMatches.Store(0)
	m.fallbackRuns.Store(0)
	m.guardrailSkips.Store(0)
	m.permitRejects.Store(0)
	m.matchTimeouts.Store(0)
	m.badPatterns.Store(0)
	m.prefilterCuts.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.validationTimeTotal.Store(0)
	m.validationTimeMin.Store(^uint64(0))
	m.validationTimeMax.Store(0)
	m.fieldFallbacks.Range(func(k, _ any) bool {
		m.fieldFallbacks.Delete(k)
		return true
	})
}
