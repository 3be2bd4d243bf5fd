// Package resultstore keeps a local history of analysis runs in SQLite so
// past footprints can be listed and compared without re-reading result files.
package resultstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ecolens/carbon-csv/internal/logging"

	_ "modernc.org/sqlite" // SQLite driver
)

// Run is one persisted analysis run.
type Run struct {
	ID                 int64     `json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	SourceFile         string    `json:"source_file"`
	PeriodDays         int       `json:"period_days"`
	TotalEmissionsKg   float64   `json:"total_emissions_kg"`
	AnnualProjectionKg float64   `json:"annual_projection_kg"`
	Degraded           bool      `json:"degraded"`
}

// Store persists analysis runs.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	source_file TEXT NOT NULL,
	period_days INTEGER NOT NULL,
	total_emissions_kg REAL NOT NULL,
	annual_projection_kg REAL NOT NULL,
	degraded INTEGER NOT NULL DEFAULT 0,
	document TEXT NOT NULL
);
`

// Open opens (and if needed creates) the history database at dbPath.
func Open(dbPath string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a run together with its full JSON document and returns its ID.
func (s *Store) Save(run Run, document interface{}) (int64, error) {
	data, err := json.Marshal(document)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal analysis document: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO analysis_runs
		 (created_at, source_file, period_days, total_emissions_kg, annual_projection_kg, degraded, document)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.CreatedAt.UTC().Format(time.RFC3339),
		run.SourceFile,
		run.PeriodDays,
		run.TotalEmissionsKg,
		run.AnnualProjectionKg,
		boolToInt(run.Degraded),
		string(data),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted run id: %w", err)
	}

	s.logger.Info("Analysis run saved to history",
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "source_file", Value: run.SourceFile})
	return id, nil
}

// List returns all runs, most recent first.
func (s *Store) List() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, source_file, period_days, total_emissions_kg, annual_projection_kg, degraded
		 FROM analysis_runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close rows")
		}
	}()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Document returns the stored JSON document for one run.
func (s *Store) Document(id int64) ([]byte, error) {
	var document string
	err := s.db.QueryRow(`SELECT document FROM analysis_runs WHERE id = ?`, id).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis run %d: %w", id, err)
	}
	return []byte(document), nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var createdAt string
	var degraded int
	if err := rows.Scan(&run.ID, &createdAt, &run.SourceFile, &run.PeriodDays,
		&run.TotalEmissionsKg, &run.AnnualProjectionKg, &degraded); err != nil {
		return Run{}, fmt.Errorf("failed to scan analysis run: %w", err)
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("failed to parse run timestamp: %w", err)
	}
	run.CreatedAt = t
	run.Degraded = degraded != 0
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
