package fieldsafe

import (
	"sync"
	"testing"
	"time"
)

func TestMetrics_RecordValidation(t *testing.T) {
	m := NewMetrics()

	m.RecordValidation(10*time.Millisecond, true)
	m.RecordValidation(30*time.Millisecond, false)
	m.RecordValidation(20*time.Millisecond, true)

	s := m.Snapshot()
	if s.ValidationsTotal != 3 {
		t.Errorf("ValidationsTotal = %d; want 3", s.ValidationsTotal)
	}
	if s.ValidationsValid != 2 {
		t.Errorf("ValidationsValid = %d; want 2", s.ValidationsValid)
	}
	if s.MinValidationTime != 10*time.Millisecond {
		t.Errorf("MinValidationTime = %v; want 10ms", s.MinValidationTime)
	}
	if s.MaxValidationTime != 30*time.Millisecond {
		t.Errorf("MaxValidationTime = %v; want 30ms", s.MaxValidationTime)
	}
	if s.AvgValidationTime != 20*time.Millisecond {
		t.Errorf("AvgValidationTime = %v; want 20ms", s.AvgValidationTime)
	}
}

func TestMetrics_RecordFallbackByReason(t *testing.T) {
	m := NewMetrics()

	m.RecordFallback("Email", ReasonGuardrail)
	m.RecordFallback("Email", ReasonTimeout)
	m.RecordFallback("Phone", ReasonNoPermit)
	m.RecordFallback("Code", ReasonBadPattern)
	m.RecordFallback("Email", ReasonNoMatch)

	s := m.Snapshot()
	if s.FallbackRuns != 5 {
		t.Errorf("FallbackRuns = %d; want 5", s.FallbackRuns)
	}
	if s.GuardrailSkips != 1 {
		t.Errorf("GuardrailSkips = %d; want 1", s.GuardrailSkips)
	}
	if s.MatchTimeouts != 1 {
		t.Errorf("MatchTimeouts = %d; want 1", s.MatchTimeouts)
	}
	if s.PermitRejects != 1 {
		t.Errorf("PermitRejects = %d; want 1", s.PermitRejects)
	}
	if s.BadPatterns != 1 {
		t.Errorf("BadPatterns = %d; want 1", s.BadPatterns)
	}

	if got := s.Fields["Email"].Fallbacks; got != 3 {
		t.Errorf("Email fallbacks = %d; want 3", got)
	}
}

func TestMetrics_FieldTracking(t *testing.T) {
	m := NewMetrics()

	m.RecordField("Email", 20)
	m.RecordField("Email", 4000)
	m.RecordField("Email", 100)

	s := m.Snapshot()
	if s.FieldsChecked != 3 {
		t.Errorf("FieldsChecked = %d; want 3", s.FieldsChecked)
	}
	fs := s.Fields["Email"]
	if fs.Evaluations != 3 {
		t.Errorf("Evaluations = %d; want 3", fs.Evaluations)
	}
	if fs.MaxInputLen != 4000 {
		t.Errorf("MaxInputLen = %d; want 4000", fs.MaxInputLen)
	}
}

func TestMetrics_FallbackRate(t *testing.T) {
	m := NewMetrics()

	if m.FallbackRate() != 0 {
		t.Error("empty metrics should report zero fallback rate")
	}

	for i := 0; i < 10; i++ {
		m.RecordField("Email", 10)
	}
	m.RecordFallback("Email", ReasonTimeout)
	m.RecordFallback("Email", ReasonNoPermit)

	if got := m.FallbackRate(); got != 0.2 {
		t.Errorf("FallbackRate() = %v; want 0.2", got)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordValidation(time.Millisecond, true)
	m.RecordField("Email", 10)
	m.RecordFallback("Email", ReasonTimeout)
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordPrimaryMatch()
	m.RecordPrefilterCut()

	m.Reset()

	s := m.Snapshot()
	if s.ValidationsTotal != 0 || s.FieldsChecked != 0 || s.FallbackRuns != 0 ||
		s.CacheHits != 0 || s.CacheMisses != 0 || s.PrimaryMatches != 0 || s.PrefilterCuts != 0 {
		t.Errorf("Reset left non-zero counters: %+v", s)
	}
	if len(s.Fields) != 0 {
		t.Errorf("Reset left %d field entries", len(s.Fields))
	}
	if s.MinValidationTime != 0 {
		t.Errorf("MinValidationTime after reset = %v; want 0", s.MinValidationTime)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.RecordField("Email", j)
				m.RecordFallback("Email", ReasonNoMatch)
				m.RecordValidation(time.Microsecond, true)
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.FieldsChecked != 8000 {
		t.Errorf("FieldsChecked = %d; want 8000", s.FieldsChecked)
	}
	if s.FallbackRuns != 8000 {
		t.Errorf("FallbackRuns = %d; want 8000", s.FallbackRuns)
	}
	if s.ValidationsTotal != 8000 {
		t.Errorf("ValidationsTotal = %d; want 8000", s.ValidationsTotal)
	}
}
