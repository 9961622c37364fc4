package batch

import (
	"os"
	"sync"

	"imagediffer/logging"

	"github.com/schollz/progressbar/v3"
)

// ProgressTracker counts row outcomes and optionally drives a progress bar
type ProgressTracker struct {
	mu        sync.Mutex
	total     int
	processed int
	errors    int
	bar       *progressbar.ProgressBar
}

// NewProgressTracker creates a tracker for total rows
func NewProgressTracker(total int, showBar bool) *ProgressTracker {
	tracker := &ProgressTracker{total: total}
	if showBar && total > 0 {
		tracker.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Comparing images"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("rows"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
	}
	return tracker
}

// Record updates the counters with a finished row. Failed rows are
// logged with their line number.
func (p *ProgressTracker) Record(result rowResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if result.Success {
		p.processed++
	} else {
		p.errors++
		if result.Error != nil {
			logging.LogRowFailure(result.Line, result.Error)
		}
	}

	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// Stop finishes the progress bar and returns the final counts
func (p *ProgressTracker) Stop() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		_ = p.bar.Finish()
	}

	return Stats{
		Total:     p.total,
		Processed: p.processed,
		Failed:    p.errors,
	}
}
