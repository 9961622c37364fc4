package batch

// Scorer returns the raw match ratio for two image paths
type Scorer interface {
	Similarity(pathA, pathB string) (float64, error)
}

// RunOptions configures a batch run
type RunOptions struct {
	Workers      int  // rows processed concurrently; <= 1 means sequential
	ShowProgress bool // draw a progress bar on stderr
}

// Stats summarizes a finished run
type Stats struct {
	Total     int
	Processed int
	Failed    int
}

// rowResult is the outcome of a single row
type rowResult struct {
	Line    int
	Success bool
	Error   error
}
