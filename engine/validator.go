// Package engine provides the hybrid validation orchestrator: the
// public entry point that evaluates every declared field of a record
// against its pattern, under admission control and time bounds, with
// a deterministic automaton fallback for recognized field shapes.
package engine

import (
	"context"
	"fmt"
	"time"

	fv "github.com/fieldsafe/validator"
	"github.com/fieldsafe/validator/admission"
	"github.com/fieldsafe/validator/automaton"
	"github.com/fieldsafe/validator/cache"
	"github.com/fieldsafe/validator/matcher"
	"github.com/fieldsafe/validator/pkg/logger"
	"github.com/fieldsafe/validator/prefilter"
)

// Validator is the hybrid field validator. One instance serves any
// number of concurrent ValidateAll calls; the matcher cache and the
// permit pool are the only shared state between them.
type Validator struct {
	options *fv.Options

	matchers   *matcher.Cache
	prefilters *cache.Cache[string, *prefilter.Filter]
	permits    *admission.Pool

	metrics *fv.Metrics
	sink    fv.EventSink
	log     *logger.Logger
}

// New creates a Validator with the given options applied over
// DefaultOptions.
func New(opts ...fv.Option) *Validator {
	options := fv.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	return &Validator{
		options:    options,
		matchers:   matcher.NewCache(options.MatcherCacheSize),
		prefilters: cache.New[string, *prefilter.Filter](options.MatcherCacheSize),
		permits:    admission.NewPool(options.MaxConcurrent),
		metrics:    fv.NewMetrics(),
		sink:       fv.NopSink{},
		log:        logger.Default(),
	}
}

// SetEventSink routes diagnostic events to sink in addition to the
// log. Must be called before the validator is shared across
// goroutines.
func (v *Validator) SetEventSink(sink fv.EventSink) {
	if sink == nil {
		sink = fv.NopSink{}
	}
	v.sink = sink
}

// SetLogger replaces the logger. Must be called before the validator
// is shared across goroutines.
func (v *Validator) SetLogger(l *logger.Logger) {
	if l != nil {
		v.log = l
	}
}

// Metrics returns the validator's metrics.
func (v *Validator) Metrics() *fv.Metrics {
	return v.metrics
}

// CacheStats exposes the compiled-matcher cache counters.
func (v *Validator) CacheStats() cache.Stats {
	return v.matchers.Stats()
}

// AdmissionStats exposes the permit pool counters.
func (v *Validator) AdmissionStats() admission.Stats {
	return v.permits.Stats()
}

// ValidateAll evaluates every field the schema declares, in
// declaration order, and aggregates field-scoped issues in that same
// order. It always returns a Result; per-field failures never escape
// as errors. A timeout on one field's primary matcher does not abort
// evaluation of subsequent fields.
func (v *Validator) ValidateAll(ctx context.Context, schema *fv.Schema, record any) *fv.Result {
	start := time.Now()

	var result *fv.Result
	if v.options.EnablePooling {
		result = fv.AcquireResult()
	} else {
		result = fv.NewResult()
	}

	for _, field := range schema.Fields() {
		if ctx.Err() != nil {
			break
		}
		if v.options.MaxErrors > 0 && result.ErrorCount() >= v.options.MaxErrors {
			break
		}
		v.validateField(field, record, result)
	}

	v.metrics.RecordValidation(time.Since(start), result.Valid)
	return result
}

// validateField runs one field through the per-field state machine:
// length bounds, guardrail, prefilter, admission, primary match, and
// fallback. Every terminal state is reached in bounded time.
func (v *Validator) validateField(field fv.Field, record any, result *fv.Result) {
	d := field.Descriptor

	value := ""
	if field.Get != nil {
		value = field.Get(record)
	}
	v.metrics.RecordField(d.FieldName, len(value))

	// Declared length bounds come first; they are the cheapest check
	// and the phone automaton depends on MinLen for its minimum-length
	// policy.
	if d.MinLen > 0 && len(value) < d.MinLen {
		result.AddError(fv.CodeLength, d.FieldName,
			fmt.Sprintf("value shorter than minimum length %d", d.MinLen))
		return
	}
	if d.MaxLen > 0 && len(value) > d.MaxLen {
		result.AddError(fv.CodeLength, d.FieldName,
			fmt.Sprintf("value longer than maximum length %d", d.MaxLen))
		return
	}

	anchored := matcher.Anchor(d.RawPattern)

	// Guardrail: a structurally pathological pattern on a long input
	// skips the primary matcher outright. Only taken when a fallback
	// exists to hand the field to; otherwise the match timeout is the
	// backstop.
	if v.options.FallbackEnabled && d.Kind.HasFallback() &&
		len(value) > v.options.GuardrailLength && matcher.IsPathological(anchored) {
		v.fallback(d, anchored, value, fv.ReasonGuardrail, result)
		return
	}

	// Prefilter: an input missing a literal the pattern requires
	// cannot match, so the no-match outcome is known without running
	// the matcher.
	if v.options.PrefilterEnabled {
		if pf := v.prefilterFor(anchored); !pf.Admits(value) {
			v.metrics.RecordPrefilterCut()
			v.primaryNoMatch(d, anchored, value, result)
			return
		}
	}

	// Admission: never wait for a permit; shed to the fallback.
	if !v.permits.TryAcquire() {
		v.fallback(d, anchored, value, fv.ReasonNoPermit, result)
		return
	}

	verdict := func() matcher.Verdict {
		defer v.permits.Release()
		m, err := v.matchers.GetOrBuild(anchored, v.options.MatchTimeout)
		if err != nil {
			return matcher.VerdictBadPattern
		}
		return m.MatchString(value)
	}()

	switch verdict {
	case matcher.VerdictMatched:
		v.metrics.RecordPrimaryMatch()

	case matcher.VerdictNoMatch:
		v.primaryNoMatch(d, anchored, value, result)

	case matcher.VerdictTimeout:
		v.fallback(d, anchored, value, fv.ReasonTimeout, result)

	case matcher.VerdictBadPattern:
		if d.Kind.HasFallback() {
			v.fallback(d, anchored, value, fv.ReasonBadPattern, result)
			return
		}
		// No safe fallback exists for arbitrary patterns; surface the
		// configuration error at the field.
		v.emit(d, anchored, value, fv.ReasonBadPattern)
		v.metrics.RecordFallback(d.FieldName, fv.ReasonBadPattern)
		result.AddError(fv.CodePattern, d.FieldName, "declared pattern does not compile")
	}
}

// primaryNoMatch handles a completed, rejecting primary match: the
// automaton gets the final word for recognized shapes, otherwise the
// rejection stands.
func (v *Validator) primaryNoMatch(d fv.Descriptor, anchored, value string, result *fv.Result) {
	if v.options.FallbackEnabled && d.Kind.HasFallback() {
		v.fallback(d, anchored, value, fv.ReasonNoMatch, result)
		return
	}
	result.AddError(fv.CodeFormat, d.FieldName, "value does not match the declared pattern")
}

// fallback records the diagnostic event and resolves the field on the
// automaton path. With fallback disabled, the degraded condition
// becomes a hard error instead.
func (v *Validator) fallback(d fv.Descriptor, anchored, value string, reason fv.FallbackReason, result *fv.Result) {
	v.emit(d, anchored, value, reason)
	v.metrics.RecordFallback(d.FieldName, reason)

	if !v.options.FallbackEnabled {
		if reason == fv.ReasonBadPattern {
			result.AddError(fv.CodePattern, d.FieldName, "declared pattern does not compile")
		} else {
			result.AddError(fv.CodeFormat, d.FieldName,
				fmt.Sprintf("primary matcher unavailable (%s) and fallback disabled", reason))
		}
		return
	}

	nfa, ok := automaton.ForKind(d.Kind)
	if !ok {
		// Generic kind: report the most specific condition already
		// determined.
		if reason == fv.ReasonBadPattern {
			result.AddError(fv.CodePattern, d.FieldName, "declared pattern does not compile")
		} else {
			result.AddError(fv.CodeFormat, d.FieldName, "value does not match the declared pattern")
		}
		return
	}

	result.AddFallback()
	if nfa.Simulate(value) {
		return
	}
	result.AddError(fv.CodeFormat, d.FieldName,
		fmt.Sprintf("value does not match the %s shape", d.Kind))
}

// emit sends the structured diagnostic event to the log and the sink.
// This is the signal operators watch for ReDoS probing.
func (v *Validator) emit(d fv.Descriptor, anchored, value string, reason fv.FallbackReason) {
	v.log.Warnw("primary matcher bypassed",
		"field", d.FieldName,
		"pattern", anchored,
		"input_len", len(value),
		"reason", reason,
	)
	ev := fv.Event{
		Time:     time.Now(),
		Field:    d.FieldName,
		Pattern:  anchored,
		InputLen: len(value),
		Reason:   reason,
	}
	if err := v.sink.Record(ev); err != nil {
		v.log.Errorw("event sink failed", "error", err)
	}
}

// prefilterFor returns the cached literal prefilter for an anchored
// pattern, building it on first use. Building never fails, so the
// compute error path is unreachable here.
func (v *Validator) prefilterFor(anchored string) *prefilter.Filter {
	pf, _ := v.prefilters.GetOrCompute(anchored, func() (*prefilter.Filter, error) {
		return prefilter.FromPattern(anchored), nil
	})
	return pf
}
