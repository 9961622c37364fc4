package signalhandler

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

// SetupHandler runs cleanup and exits when the process receives SIGINT
// or SIGTERM. OpenCV calls cannot be interrupted, so the batch is not
// drained first.
func SetupHandler(cleanup func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		if cleanup != nil {
			cleanup()
		}
		os.Exit(1)
	}()
}

// GetOptimalProcs returns the largest useful number of concurrent rows
func GetOptimalProcs() int {
	numCPU := runtime.NumCPU()

	// For image processing with CGo, using too many goroutines can cause issues
	maxProcs := (numCPU * 3) / 4
	if maxProcs < 1 {
		maxProcs = 1
	}

	return maxProcs
}

// ClampWorkers limits a requested worker count to [1, GetOptimalProcs()]
func ClampWorkers(requested int) int {
	if requested < 1 {
		return 1
	}
	if limit := GetOptimalProcs(); requested > limit {
		return limit
	}
	return requested
}
