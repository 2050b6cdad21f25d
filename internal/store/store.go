// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/QS3H/quizdeck/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session state and run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			quiz_title TEXT NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			percentage INTEGER NOT NULL,
			finished_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_finished_at ON runs(finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the stored value for key. ok is false when the key is
// absent or the read fails; callers fall back to their default.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		return "", false
	}
	return value, true
}

// Set upserts the value for key. Errors are returned so callers can log
// them; in-memory state stays authoritative regardless.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// Delete removes a key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// InsertRun stores a completed quiz run.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (quiz_title, correct, total, percentage, finished_at)
		 VALUES (?, ?, ?, ?, ?)`,
		run.QuizTitle,
		run.Correct,
		run.Total,
		run.Percentage,
		run.FinishedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns completed runs ordered oldest first, optionally
// filtered by quiz title.
func (s *Store) ListRuns(ctx context.Context, quizTitle string) ([]model.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_title, correct, total, percentage, finished_at
		 FROM runs
		 WHERE (? = '' OR quiz_title = ?)
		 ORDER BY finished_at ASC`,
		quizTitle, quizTitle)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		var finishedAt string
		if err := rows.Scan(&run.ID, &run.QuizTitle, &run.Correct, &run.Total, &run.Percentage, &finishedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		run.FinishedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
