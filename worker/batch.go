package worker

import (
	"context"
	"runtime"
	"strconv"
	"sync"

	fv "github.com/fieldsafe/validator"
)

// BatchValidator validates a slice of records in parallel and returns
// results in submission order.
type BatchValidator struct {
	validate ValidateFunc
	workers  int
}

// NewBatchValidator creates a new batch validator.
func NewBatchValidator(validate ValidateFunc, workers int) *BatchValidator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchValidator{
		validate: validate,
		workers:  workers,
	}
}

// ValidateBatch validates multiple records in parallel.
func (bv *BatchValidator) ValidateBatch(ctx context.Context, records []any) *BatchResult {
	if len(records) == 0 {
		return &BatchResult{
			Results: make([]*JobResult, 0),
		}
	}

	// For small batches, don't use parallelism
	if len(records) <= 2 {
		return bv.validateSequential(ctx, records)
	}

	return bv.validateParallel(ctx, records)
}

func (bv *BatchValidator) validateSequential(ctx context.Context, records []any) *BatchResult {
	results := make([]*JobResult, 0, len(records))

	for i, record := range records {
		select {
		case <-ctx.Done():
			return summarize(results, len(records))
		default:
		}

		outcome := bv.validate(ctx, record)
		results = append(results, &JobResult{
			ID:     strconv.Itoa(i),
			Result: outcome,
		})
	}

	return summarize(results, len(records))
}

func (bv *BatchValidator) validateParallel(ctx context.Context, records []any) *BatchResult {
	numWorkers := bv.workers
	if numWorkers > len(records) {
		numWorkers = len(records)
	}

	jobs := make(chan indexedRecord, len(records))
	resultsChan := make(chan *indexedResult, len(records))

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				resultsChan <- &indexedResult{
					index:  job.index,
					result: bv.validate(ctx, job.record),
				}
			}
		}()
	}

	go func() {
		for i, record := range records {
			select {
			case <-ctx.Done():
			case jobs <- indexedRecord{index: i, record: record}:
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Collect results back into submission order
	ordered := make([]*JobResult, len(records))
	for ir := range resultsChan {
		ordered[ir.index] = &JobResult{
			ID:     strconv.Itoa(ir.index),
			Result: ir.result,
		}
	}

	completed := make([]*JobResult, 0, len(records))
	for _, r := range ordered {
		if r != nil {
			completed = append(completed, r)
		}
	}
	return summarize(completed, len(records))
}

func summarize(results []*JobResult, total int) *BatchResult {
	br := &BatchResult{
		Results:       results,
		TotalJobs:     total,
		CompletedJobs: len(results),
	}
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		if r.Result.HasErrors() {
			br.InvalidJobs++
		}
		br.FallbackCount += r.Result.FallbackCount
		br.TotalDuration += r.Duration
	}
	return br
}

type indexedRecord struct {
	index  int
	record any
}

type indexedResult struct {
	index  int
	result *fv.Result
}

// ValidateBatchSimple is a convenience function for one-off batches.
func ValidateBatchSimple(ctx context.Context, validate ValidateFunc, records []any) *BatchResult {
	bv := NewBatchValidator(validate, runtime.NumCPU())
	return bv.ValidateBatch(ctx, records)
}
