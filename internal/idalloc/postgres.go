package idalloc

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion.
var _ Allocator = (*Postgres)(nil)

const (
	postgresDriver = "pgx"
	// Default DSN matches local development; deployments override via config.
	defaultPostgresDSN = "postgres://localhost/genomecore?sslmode=disable"
)

// Postgres keeps per-prefix counters in a shared table. A single UPSERT with
// RETURNING advances the counter, so concurrent allocators against the same
// database never receive overlapping ranges for a prefix.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a Postgres-backed allocator using the provided DSN
// (falls back to a localhost default) and ensures the counter table exists.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	db, err := sql.Open(postgresDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS id_counters (
		prefix TEXT PRIMARY KEY,
		next BIGINT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure id_counters table: %w", err)
	}
	return &Postgres{db: db}, nil
}

// AllocateIDRange reserves count ids for prefix atomically.
func (p *Postgres) AllocateIDRange(ctx context.Context, prefix string, count int) (int, error) {
	if err := validateRequest(prefix, count); err != nil {
		return 0, err
	}
	var nextAfter int
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO id_counters (prefix, next) VALUES ($1, $2)
		ON CONFLICT (prefix) DO UPDATE SET next = id_counters.next + $3
		RETURNING next`, prefix, 1+count, count).Scan(&nextAfter)
	if err != nil {
		return 0, fmt.Errorf("advance counter %s: %w", prefix, err)
	}
	return nextAfter - count, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (p *Postgres) DB() *sql.DB { return p.db }

// Close releases the underlying database handle.
func (p *Postgres) Close() error {
	return p.db.Close()
}
