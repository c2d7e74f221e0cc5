// Package storage persists session results: a SQLite archive spanning runs
// and a per-run CSV export.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MarkTee/Psych403-FinalProject/experiment"
)

// Store handles SQLite database operations for session archiving.
type Store struct {
	db *sql.DB
}

// New opens (and if needed creates) the archive database at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// migrate creates the schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		subject INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ended_at DATETIME,
		n_blocks INTEGER NOT NULL,
		n_trials INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		block INTEGER NOT NULL,
		trial INTEGER NOT NULL,
		n_objects_actual INTEGER NOT NULL,
		n_objects_guessed INTEGER NOT NULL,
		correct INTEGER NOT NULL,
		rt REAL NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_trials_session ON trials(session_id);
	CREATE INDEX IF NOT EXISTS idx_trials_actual ON trials(n_objects_actual);
	CREATE INDEX IF NOT EXISTS idx_sessions_subject ON sessions(subject);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// CreateSession records the start of a run.
func (s *Store) CreateSession(id string, subject int, seed int64, blocks, trials int) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, subject, seed, started_at, n_blocks, n_trials)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, subject, seed, time.Now().UTC(), blocks, trials,
	)
	return err
}

// SaveResults batch-inserts the ordered trial records of one session and
// stamps the session as ended, all in one transaction.
func (s *Store) SaveResults(sessionID string, records experiment.Results) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO trials (session_id, block, trial, n_objects_actual, n_objects_guessed, correct, rt)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(sessionID, rec.Block, rec.Trial,
			rec.Actual, rec.Guessed, rec.Correct, rec.RT); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`UPDATE sessions SET ended_at = ? WHERE id = ?`,
		time.Now().UTC(), sessionID); err != nil {
		return err
	}
	return tx.Commit()
}

// SessionTrials returns the ordered records of one session.
func (s *Store) SessionTrials(sessionID string) (experiment.Results, error) {
	rows, err := s.db.Query(
		`SELECT block, trial, n_objects_actual, n_objects_guessed, correct, rt
		 FROM trials WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results experiment.Results
	for rows.Next() {
		var rec experiment.TrialRecord
		if err := rows.Scan(&rec.Block, &rec.Trial, &rec.Actual,
			&rec.Guessed, &rec.Correct, &rec.RT); err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	return results, rows.Err()
}
