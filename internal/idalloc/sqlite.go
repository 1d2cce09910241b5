package idalloc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion.
var _ Allocator = (*SQLite)(nil)

// SQLite persists per-prefix counters in a single SQLite table so allocated
// sequences survive process restarts.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (creating if needed) a SQLite-backed allocator at path.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		path = "genomecore-ids.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS id_counters (
		prefix TEXT PRIMARY KEY,
		next INTEGER NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create id_counters table: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

// AllocateIDRange reserves count ids for prefix inside a transaction.
func (s *SQLite) AllocateIDRange(ctx context.Context, prefix string, count int) (int, error) {
	if err := validateRequest(prefix, count); err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var start int
	err = tx.QueryRowContext(ctx, `SELECT next FROM id_counters WHERE prefix = ?`, prefix).Scan(&start)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		start = 1
		if _, err := tx.ExecContext(ctx, `INSERT INTO id_counters (prefix, next) VALUES (?, ?)`, prefix, start+count); err != nil {
			return 0, fmt.Errorf("insert counter %s: %w", prefix, err)
		}
	case err != nil:
		return 0, fmt.Errorf("select counter %s: %w", prefix, err)
	default:
		if _, err := tx.ExecContext(ctx, `UPDATE id_counters SET next = ? WHERE prefix = ?`, start+count, prefix); err != nil {
			return 0, fmt.Errorf("update counter %s: %w", prefix, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return start, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
