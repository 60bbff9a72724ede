package fieldsafe

import (
	"runtime"
	"time"
)

// Option configures the engine.
type Option func(*Options)

// Options holds all configuration for the engine.
type Options struct {
	// MatchTimeout is the hard wall-clock budget for a single primary
	// matcher execution. Exceeding it routes the field to the fallback.
	MatchTimeout time.Duration

	// MaxConcurrent is the admission pool size: the number of primary
	// matcher executions allowed to run at once. Excess demand is shed
	// to the fallback, never queued.
	MaxConcurrent int

	// FallbackEnabled selects whether no-match/timeout/bad-pattern on a
	// recognized shape invokes the automaton. When false those
	// conditions become hard errors.
	FallbackEnabled bool

	// GuardrailLength is the input length above which a structurally
	// pathological pattern skips the primary matcher entirely.
	GuardrailLength int

	// PrefilterEnabled turns on the literal prefilter: inputs missing a
	// literal the pattern requires are rejected before any regex work.
	PrefilterEnabled bool

	// MatcherCacheSize bounds the compiled-matcher LRU cache.
	MatcherCacheSize int

	// WorkerCount is the number of workers for batch validation.
	WorkerCount int

	// EnablePooling controls sync.Pool reuse of Result values.
	EnablePooling bool

	// MaxErrors stops a ValidateAll call after this many error issues.
	// Zero means unlimited.
	MaxErrors int
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		MatchTimeout:     200 * time.Millisecond,
		MaxConcurrent:    4,
		FallbackEnabled:  true,
		GuardrailLength:  200,
		PrefilterEnabled: true,
		MatcherCacheSize: 512,
		WorkerCount:      runtime.NumCPU(),
		EnablePooling:    true,
		MaxErrors:        0,
	}
}

// --- Matching Options ---

// WithMatchTimeout sets the primary matcher's per-execution budget.
func WithMatchTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.MatchTimeout = d
		}
	}
}

// WithMaxConcurrent sets the admission pool size.
// Too low starves the fast path; too high defeats the point of
// bounding concurrent expensive work.
func WithMaxConcurrent(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxConcurrent = n
		}
	}
}

// WithFallback enables or disables the automaton fallback.
func WithFallback(enable bool) Option {
	return func(o *Options) {
		o.FallbackEnabled = enable
	}
}

// WithGuardrailLength sets the input length threshold for the
// pathological-pattern guardrail.
func WithGuardrailLength(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.GuardrailLength = n
		}
	}
}

// WithPrefilter enables or disables the literal prefilter.
func WithPrefilter(enable bool) Option {
	return func(o *Options) {
		o.PrefilterEnabled = enable
	}
}

// --- Performance Options ---

// WithMatcherCacheSize bounds the compiled-matcher cache.
func WithMatcherCacheSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.MatcherCacheSize = size
		}
	}
}

// WithWorkerCount sets the number of workers for batch validation.
// Defaults to runtime.NumCPU().
func WithWorkerCount(count int) Option {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithPooling enables or disables Result pooling.
// Pooling reduces GC pressure but requires calling Release() on results.
func WithPooling(enable bool) Option {
	return func(o *Options) {
		o.EnablePooling = enable
	}
}

// WithMaxErrors sets the maximum number of errors before a call stops
// evaluating further fields. Use 0 for unlimited.
func WithMaxErrors(max int) Option {
	return func(o *Options) {
		o.MaxErrors = max
	}
}

// --- Presets ---

// StrictOptions disables the fallback so every degraded condition
// (timeout, overload, bad pattern) surfaces as a hard error.
func StrictOptions() []Option {
	return []Option{
		WithFallback(false),
	}
}

// HardenedOptions tightens the budgets for hostile environments:
// shorter timeout, lower guardrail threshold, fewer permits.
func HardenedOptions() []Option {
	return []Option{
		WithMatchTimeout(50 * time.Millisecond),
		WithGuardrailLength(64),
		WithMaxConcurrent(2),
	}
}
