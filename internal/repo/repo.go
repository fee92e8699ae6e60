// Package repo contains all database access logic for the trip planner.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so Transactor works the same way inside a test transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Transactor runs a unit of work that touches more than one table.
// Either every write made through the repos handed to fn commits, or none does.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(trips TripRepo, activities ActivityRepo) error) error
}

type pgTransactor struct {
	db db
}

// NewTransactor constructs a Transactor backed by the provided db connection.
func NewTransactor(db db) Transactor {
	return &pgTransactor{db: db}
}

// WithinTx begins a transaction, runs fn with repos bound to it, and commits
// if fn returns nil. Any error rolls the transaction back.
func (t *pgTransactor) WithinTx(ctx context.Context, fn func(TripRepo, ActivityRepo) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Transactor.WithinTx: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTripRepo(tx), NewActivityRepo(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Transactor.WithinTx: commit: %w", err)
	}
	return nil
}
