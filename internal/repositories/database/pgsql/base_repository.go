package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the store reacts to.
const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
	pgDeadlockDetected = "40P01"
	pgQueryCanceled    = "57014"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var (
	_ querier = (*pgxpool.Pool)(nil)
	_ querier = (pgx.Tx)(nil)

	_ portsrepo.TransactionManager = (*BaseRepository)(nil)
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrPersistence, err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrPersistence, err)
	}
	return nil
}

// Rollback rolls back a transaction. Rolling back an already finished
// transaction is not an error.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("%w: failed to rollback transaction: %w", apperrors.ErrPersistence, err)
	}
	return nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapWriteError translates driver errors from inserts and updates.
func mapWriteError(err error, what string) error {
	if err == nil {
		return nil
	}
	if pgErrorCode(err) == pgUniqueViolation {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
	}
	return fmt.Errorf("%w: failed to write %s: %w", apperrors.ErrPersistence, what, err)
}

// mapLockError translates failures while waiting on a row lock.
func mapLockError(err error, invoiceID string) error {
	switch pgErrorCode(err) {
	case pgLockNotAvailable, pgDeadlockDetected, pgQueryCanceled:
		return fmt.Errorf("%w: invoice %s: %v", apperrors.ErrBusy, invoiceID, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: invoice %s: %v", apperrors.ErrBusy, invoiceID, err)
	}
	return fmt.Errorf("%w: failed to lock invoice %s: %w", apperrors.ErrPersistence, invoiceID, err)
}
