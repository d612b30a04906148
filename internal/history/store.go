// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history appends census runs to a local SQLite database so
// counts can be compared across runs.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/dataset-census/internal/census"
)

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ecosystem TEXT NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS counts (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			dataset TEXT NOT NULL,
			total_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_counts_run ON counts(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun appends one ecosystem's table as a new run and returns the
// run ID. The whole run is written in a single transaction.
func (s *Store) RecordRun(ecosystem string, startedAt time.Time, table census.Table) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO runs (ecosystem, started_at) VALUES (?, ?)`,
		ecosystem, startedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO counts (run_id, dataset, total_count) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("preparing count insert: %w", err)
	}
	for _, row := range table {
		if _, err := stmt.Exec(runID, row.Dataset, row.TotalCount); err != nil {
			stmt.Close()
			tx.Rollback()
			return 0, fmt.Errorf("inserting count for %s: %w", row.Dataset, err)
		}
	}
	stmt.Close()

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Run summarizes one recorded census run.
type Run struct {
	ID        int64
	Ecosystem string
	StartedAt time.Time
	Datasets  int
}

// Runs lists recorded runs, newest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.ecosystem, r.started_at, COUNT(c.dataset)
		FROM runs r
		LEFT JOIN counts c ON c.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &r.Ecosystem, &started, &r.Datasets); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Counts returns the table recorded for a run, in insertion order.
func (s *Store) Counts(runID int64) (census.Table, error) {
	rows, err := s.db.Query(
		`SELECT dataset, total_count FROM counts WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing counts: %w", err)
	}
	defer rows.Close()

	var table census.Table
	for rows.Next() {
		var row census.Row
		if err := rows.Scan(&row.Dataset, &row.TotalCount); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		table = append(table, row)
	}
	return table, rows.Err()
}
