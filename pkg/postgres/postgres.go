package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jakechorley/worship-roster/pkg/core/schedule"
	"github.com/jakechorley/worship-roster/pkg/errs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const uniqueViolation = "23505"

// DB provides database operations using PostgreSQL
type DB struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewDB creates a new PostgreSQL database connection.
// Every query issued through the DB is bounded by timeout.
func NewDB(ctx context.Context, connString string, timeout time.Duration) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool, timeout: timeout}, nil
}

// Close closes the database connection pool
func (d *DB) Close() {
	d.pool.Close()
}

func (d *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.timeout)
}

// RunMigrations executes all pending SQL migration files in order and returns the applied filenames.
// It tracks which migrations have been applied in a schema_migrations table.
func (d *DB) RunMigrations(ctx context.Context) ([]string, error) {
	// Create migrations tracking table if it doesn't exist
	_, err := d.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	rows, err := d.pool.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	applied, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan migration filename: %w", err)
	}

	pending, err := pendingMigrations(migrationsFS, applied)
	if err != nil {
		return nil, err
	}

	for _, filename := range pending {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		// Each migration and its bookkeeping row commit together
		err = pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(content)); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", filename, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (filename) VALUES ($1)`, filename); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", filename, err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return pending, nil
}

// pendingMigrations lists the .sql files under migrations/ not yet in applied, sorted by name
func pendingMigrations(fsys fs.FS, applied []string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	done := make(map[string]bool, len(applied))
	for _, f := range applied {
		done[f] = true
	}

	var pending []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") || done[entry.Name()] {
			continue
		}
		pending = append(pending, entry.Name())
	}
	sort.Strings(pending)

	return pending, nil
}

// readErr classifies a failed query
func readErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NotFound(op, "no matching row")
	}
	return errs.RemoteRead(op, err)
}

// writeErr classifies a failed insert, update, delete or commit
func writeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.Conflict(op, "row already exists")
	}
	return errs.RemoteWrite(op, err)
}

// toDate converts a YYYY-MM-DD string into a value pgx encodes as a DATE
func toDate(op, s string) (time.Time, error) {
	t, err := time.Parse(schedule.DateLayout, s)
	if err != nil {
		return time.Time{}, errs.Validation(op, fmt.Sprintf("invalid date %q", s))
	}
	return t, nil
}

func fromDate(t time.Time) string {
	return t.Format(schedule.DateLayout)
}
