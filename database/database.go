package database

import (
	"database/sql"
	"fmt"
	"time"

	"imagediffer/logging"
	"imagediffer/types"

	_ "github.com/mattn/go-sqlite3"
)

// RunInfo describes one batch run
type RunInfo struct {
	InputPath  string
	OutputPath string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Failed     int
}

// RunStats contains statistics for a stored run
type RunStats struct {
	RunID       int64
	Results     int
	Failed      int
	FullMatches int // SIMILAR == 0.0
	NoMatches   int // SIMILAR == 1.0
	MeanElapsed float64
}

// InitDatabase opens the run history database and creates its tables
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		started_at TEXT,
		finished_at TEXT,
		total INTEGER,
		failed INTEGER
	);
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		line INTEGER,
		image1 TEXT NOT NULL,
		image2 TEXT NOT NULL,
		similar REAL,
		elapse REAL
	);
	CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
	CREATE INDEX IF NOT EXISTS idx_results_images ON results(image1, image2);`

	if _, err = db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// StoreRun stores a run and its result records in one transaction and
// returns the new run ID
func StoreRun(db *sql.DB, run RunInfo, records []types.ResultRecord) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (input_path, output_path, started_at, finished_at, total, failed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.InputPath,
		run.OutputPath,
		run.StartedAt.Format(time.RFC3339),
		run.FinishedAt.Format(time.RFC3339),
		run.Total,
		run.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("cannot insert run for %s: %w", run.InputPath, err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("cannot get run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO results (run_id, line, image1, image2, similar, elapse)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("cannot prepare result statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(runID, rec.Line, rec.Image1, rec.Image2, rec.Similar, rec.Elapsed); err != nil {
			return 0, fmt.Errorf("cannot insert result for line %d: %w", rec.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("cannot commit run: %w", err)
	}

	logging.DebugLog("Stored run %d with %d results", runID, len(records))
	return runID, nil
}

// GetRunStats retrieves statistics about a stored run
func GetRunStats(db *sql.DB, runID int64) (*RunStats, error) {
	stats := RunStats{RunID: runID}

	err := db.QueryRow("SELECT failed FROM runs WHERE id = ?", runID).Scan(&stats.Failed)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}

	var meanElapsed sql.NullFloat64
	err = db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN similar = 0.0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN similar = 1.0 THEN 1 ELSE 0 END), 0),
		       AVG(elapse)
		FROM results WHERE run_id = ?`, runID).
		Scan(&stats.Results, &stats.FullMatches, &stats.NoMatches, &meanElapsed)
	if err != nil {
		return nil, fmt.Errorf("failed to get results for run %d: %w", runID, err)
	}
	stats.MeanElapsed = meanElapsed.Float64

	return &stats, nil
}
