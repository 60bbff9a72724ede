package fieldsafe

import (
	"sync"
)

// Result contains the outcome of validating one record.
// Issues appear in field declaration order, so assertions against the
// message list are deterministic. Use Release() to return the Result
// to the pool when done.
type Result struct {
	// Valid is true if no error issues were found (warnings are allowed).
	Valid bool `json:"valid"`

	// Issues contains all validation issues found, in evaluation order.
	Issues []Issue `json:"issues,omitempty"`

	// JobID correlates results in batch validation.
	JobID string `json:"jobId,omitempty"`

	// FallbackCount is the number of fields resolved on the fallback
	// path during this call. Explicit on the result rather than kept in
	// any thread-affine state, so it survives scheduler migration.
	FallbackCount int `json:"fallbackCount,omitempty"`

	// mu protects concurrent access to Issues.
	mu sync.Mutex
}

// resultPool holds reusable Result instances.
var resultPool = sync.Pool{
	New: func() any {
		return &Result{
			Issues: make([]Issue, 0, 8),
		}
	},
}

// AcquireResult gets a Result from the pool.
// The result starts valid with no issues.
func AcquireResult() *Result {
	r := resultPool.Get().(*Result)
	r.Reset()
	return r
}

// NewResult creates a new (non-pooled) result.
// Prefer AcquireResult() for better performance.
func NewResult() *Result {
	return &Result{
		Valid:  true,
		Issues: make([]Issue, 0, 8),
	}
}

// Release returns the Result to the pool.
// After calling Release, the Result must not be used.
func (r *Result) Release() {
	if r == nil {
		return
	}
	// Don't pool results with oversized issue slices
	if cap(r.Issues) <= 256 {
		resultPool.Put(r)
	}
}

// Reset clears the result for reuse.
func (r *Result) Reset() {
	r.Valid = true
	r.Issues = r.Issues[:0]
	r.JobID = ""
	r.FallbackCount = 0
}

// AddIssue appends a validation issue. Thread-safe.
func (r *Result) AddIssue(issue Issue) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Issues = append(r.Issues, issue)
	if issue.IsError() {
		r.Valid = false
	}
}

// AddError is a convenience method to add an error issue.
func (r *Result) AddError(code IssueCode, field, diagnostics string) {
	r.AddIssue(Issue{
		Severity:    SeverityError,
		Code:        code,
		Field:       field,
		Diagnostics: diagnostics,
	})
}

// AddWarning is a convenience method to add a warning issue.
func (r *Result) AddWarning(code IssueCode, field, diagnostics string) {
	r.AddIssue(Issue{
		Severity:    SeverityWarning,
		Code:        code,
		Field:       field,
		Diagnostics: diagnostics,
	})
}

// AddFallback notes that a field was resolved on the fallback path.
// Thread-safe.
func (r *Result) AddFallback() {
	r.mu.Lock()
	r.FallbackCount++
	r.mu.Unlock()
}

// HasErrors returns true if there are any error issues.
func (r *Result) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, issue := range r.Issues {
		if issue.IsError() {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error issues.
func (r *Result) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, issue := range r.Issues {
		if issue.IsError() {
			count++
		}
	}
	return count
}

// Errors returns all error issues in order.
func (r *Result) Errors() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errors []Issue
	for _, issue := range r.Issues {
		if issue.IsError() {
			errors = append(errors, issue)
		}
	}
	return errors
}

// Messages renders every error issue as a human-readable string, in
// evaluation order.
func (r *Result) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.IsError() {
			msgs = append(msgs, issue.String())
		}
	}
	return msgs
}

// Clone creates a copy of the result (not pooled).
func (r *Result) Clone() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := &Result{
		Valid:         r.Valid,
		Issues:        make([]Issue, len(r.Issues)),
		JobID:         r.JobID,
		FallbackCount: r.FallbackCount,
	}
	copy(clone.Issues, r.Issues)
	return clone
}
