// Package runlog records the history of simulation runs in SQLite: one row
// per run, one per generation with its summary statistics, and one per backup
// written.
package runlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run statuses.
const (
	StatusRunning  = "running"
	StatusStable   = "stable"
	StatusFinished = "finished"
	StatusFailed   = "failed"
	// StatusOverBudget ends a run whose next growth would exceed its memory budget.
	StatusOverBudget = "over_budget"
	StatusTimedOut   = "timed_out"
)

type DB struct {
	*sql.DB
}

// Open opens the database at path and migrates it to the latest schema.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps per-connection pragmas in force.
	sqlDB.SetMaxOpenConns(1)
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	db := &DB{sqlDB}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Run is one simulation run.
type Run struct {
	ID          string
	Name        string
	ValueType   string
	Grains      string
	StartedAt   time.Time
	FinishedAt  time.Time // zero while running
	Status      string
	Generations int64
}

// GenerationStat summarises one generation. Values are decimal strings so the
// arbitrary-precision variant records exactly.
type GenerationStat struct {
	Generation     int64
	Changed        bool
	Side           int
	Total          string
	Min            string
	Max            string
	FootprintBytes int64
	Elapsed        time.Duration
}

// Backup is a backup file written during a run.
type Backup struct {
	Generation int64
	Path       string
	Reason     string
	WrittenAt  time.Time
}

// StartRun creates a run record and returns its ID.
func (db *DB) StartRun(name, valueType, grains string) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO runs (run_id, name, value_type, grains, started_at, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, name, valueType, grains, time.Now().UnixNano(), StatusRunning)
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	return id, nil
}

// FinishRun records the final status and generation of a run.
func (db *DB) FinishRun(runID, status string, generations int64) error {
	res, err := db.Exec(`
		UPDATE runs SET finished_at = ?, status = ?, generations = ?
		WHERE run_id = ?
	`, time.Now().UnixNano(), status, generations, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run %s: %w", runID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("failed to finish run %s: %w", runID, sql.ErrNoRows)
	}
	return nil
}

// RecordGeneration stores the statistics of one generation.
func (db *DB) RecordGeneration(runID string, s GenerationStat) error {
	_, err := db.Exec(`
		INSERT INTO generations
			(run_id, generation, changed, side, total, min_value, max_value, footprint_bytes, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, s.Generation, s.Changed, s.Side, s.Total, s.Min, s.Max, s.FootprintBytes, s.Elapsed.Nanoseconds())
	if err != nil {
		return fmt.Errorf("failed to record generation %d of run %s: %w", s.Generation, runID, err)
	}
	return nil
}

// RecordBackup stores a backup written at generation.
func (db *DB) RecordBackup(runID string, generation int64, path, reason string) error {
	_, err := db.Exec(`
		INSERT INTO backups (run_id, generation, path, reason, written_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, generation, path, reason, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record backup of run %s: %w", runID, err)
	}
	return nil
}

// GetRun returns a run by ID.
func (db *DB) GetRun(runID string) (Run, error) {
	var r Run
	var started int64
	var finished sql.NullInt64
	err := db.QueryRow(`
		SELECT run_id, name, value_type, grains, started_at, finished_at, status, generations
		FROM runs WHERE run_id = ?
	`, runID).Scan(&r.ID, &r.Name, &r.ValueType, &r.Grains, &started, &finished, &r.Status, &r.Generations)
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	r.StartedAt = time.Unix(0, started)
	if finished.Valid {
		r.FinishedAt = time.Unix(0, finished.Int64)
	}
	return r, nil
}

// Generations returns the statistics of a run ordered by generation.
func (db *DB) Generations(runID string) ([]GenerationStat, error) {
	rows, err := db.Query(`
		SELECT generation, changed, side, total, min_value, max_value, footprint_bytes, elapsed_ns
		FROM generations
		WHERE run_id = ?
		ORDER BY generation
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	var out []GenerationStat
	for rows.Next() {
		var s GenerationStat
		var elapsed int64
		if err := rows.Scan(&s.Generation, &s.Changed, &s.Side, &s.Total, &s.Min, &s.Max, &s.FootprintBytes, &elapsed); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		s.Elapsed = time.Duration(elapsed)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Backups returns the backups of a run ordered by generation.
func (db *DB) Backups(runID string) ([]Backup, error) {
	rows, err := db.Query(`
		SELECT generation, path, reason, written_at
		FROM backups
		WHERE run_id = ?
		ORDER BY generation, backup_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query backups: %w", err)
	}
	defer rows.Close()

	var out []Backup
	for rows.Next() {
		var b Backup
		var written int64
		if err := rows.Scan(&b.Generation, &b.Path, &b.Reason, &written); err != nil {
			return nil, fmt.Errorf("failed to scan backup: %w", err)
		}
		b.WrittenAt = time.Unix(0, written)
		out = append(out, b)
	}
	return out, rows.Err()
}
