package worker

import fv "github.com/fieldsafe/validator"

// Job represents one record to validate.
type Job struct {
	// ID is a caller-chosen identifier carried onto the result.
	ID string

	// Record is the record to validate against the pool's schema.
	Record any
}

// JobResult represents the outcome of one job.
type JobResult struct {
	// ID matches the Job.ID that produced this result.
	ID string

	// Result contains the validation outcome.
	Result *fv.Result

	// Duration is the time taken to validate (in nanoseconds).
	Duration int64
}

// BatchResult aggregates results from multiple jobs.
type BatchResult struct {
	// Results contains all job results, in submission order for batch
	// validation and completion order for pool draining.
	Results []*JobResult

	// TotalJobs is the number of jobs submitted.
	TotalJobs int

	// CompletedJobs is the number of jobs completed.
	CompletedJobs int

	// InvalidJobs is the number of jobs whose record failed validation.
	InvalidJobs int

	// FallbackCount sums the fallback resolutions across all results.
	FallbackCount int

	// TotalDuration is the total time across all validations
	// (in nanoseconds).
	TotalDuration int64
}

// HasErrors returns true if any record failed validation.
func (br *BatchResult) HasErrors() bool {
	for _, r := range br.Results {
		if r.Result != nil && r.Result.HasErrors() {
			return true
		}
	}
	return false
}

// ErrorCount returns the total number of field errors across all
// results.
func (br *BatchResult) ErrorCount() int {
	count := 0
	for _, r := range br.Results {
		if r.Result != nil {
			count += r.Result.ErrorCount()
		}
	}
	return count
}
