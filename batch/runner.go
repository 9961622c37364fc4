// Package batch scores every image pair of an input file and collects
// the results in input order.
package batch

import (
	"sync"
	"time"

	"imagediffer/imageprocessor"
	"imagediffer/logging"
	"imagediffer/types"
)

// Runner drives a Scorer over a list of image pairs
type Runner struct {
	scorer  Scorer
	options RunOptions
}

// NewRunner creates a runner for the given scorer
func NewRunner(scorer Scorer, options RunOptions) *Runner {
	return &Runner{scorer: scorer, options: options}
}

// Run scores every pair. A row whose comparison fails is logged with its
// line number and left out of the result; it never stops the batch.
func (r *Runner) Run(pairs []types.ImagePair) ([]types.ResultRecord, Stats) {
	tracker := NewProgressTracker(len(pairs), r.options.ShowProgress)

	var records []types.ResultRecord
	if r.options.Workers > 1 {
		records = r.runConcurrent(pairs, tracker)
	} else {
		records = r.runSequential(pairs, tracker)
	}

	stats := tracker.Stop()
	logging.LogInfo("Batch finished. Rows: %d, processed: %d, errors: %d",
		stats.Total, stats.Processed, stats.Failed)
	return records, stats
}

func (r *Runner) runSequential(pairs []types.ImagePair, tracker *ProgressTracker) []types.ResultRecord {
	records := make([]types.ResultRecord, 0, len(pairs))
	for _, pair := range pairs {
		rec, result := r.processPair(pair)
		tracker.Record(result)
		if result.Success {
			records = append(records, rec)
		}
	}
	return records
}

// runConcurrent bounds the number of rows in flight with a semaphore and
// stores each outcome at its row index so output order matches input
func (r *Runner) runConcurrent(pairs []types.ImagePair, tracker *ProgressTracker) []types.ResultRecord {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, r.options.Workers)
	slots := make([]*types.ResultRecord, len(pairs))

	for i, pair := range pairs {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(idx int, p types.ImagePair) {
			defer wg.Done()
			defer func() { <-semaphore }()

			rec, result := r.processPair(p)
			tracker.Record(result)
			if result.Success {
				slots[idx] = &rec
			}
		}(i, pair)
	}

	wg.Wait()

	records := make([]types.ResultRecord, 0, len(pairs))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

// processPair times one comparison. Elapsed covers the similarity call
// only, not normalization.
func (r *Runner) processPair(pair types.ImagePair) (types.ResultRecord, rowResult) {
	start := time.Now()

	ratio, err := r.scorer.Similarity(pair.Image1, pair.Image2)
	if err != nil {
		return types.ResultRecord{}, rowResult{Line: pair.Line, Error: err}
	}

	elapsed := time.Since(start)

	return types.ResultRecord{
		Image1:  pair.Image1,
		Image2:  pair.Image2,
		Similar: imageprocessor.NormalizeScore(ratio),
		Elapsed: elapsed.Seconds(),
		Line:    pair.Line,
	}, rowResult{Line: pair.Line, Success: true}
}
