// Package worker provides a worker pool for parallel batch validation.
//
// Batch validation is the easiest way to drive the admission pool into
// contention on purpose: N workers racing for MaxConcurrent permits
// exercise the shed-to-fallback path exactly the way a burst of
// traffic would in production.
//
// Example usage:
//
//	pool := worker.NewPool(validateFn, 4)
//	defer pool.Close()
//
//	for id, record := range records {
//	    pool.Submit(worker.Job{ID: id, Record: record})
//	}
//
//	for result := range pool.Results() {
//	    // Process result.Result
//	}
package worker
