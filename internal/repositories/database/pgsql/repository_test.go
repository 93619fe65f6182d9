package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBuildListInvoicesQuery(t *testing.T) {
	vendor := "v1"
	status := domain.StatusPaid
	cursorAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    portsrepo.InvoiceFilter
		cursorAt  *time.Time
		wantWhere string
		wantArgs  []any
	}{
		{
			name:     "no filter",
			wantArgs: []any{21},
		},
		{
			name:      "vendor and status",
			filter:    portsrepo.InvoiceFilter{VendorID: &vendor, Status: &status},
			wantWhere: "WHERE vendor_id = $1 AND status = $2 ORDER BY",
			wantArgs:  []any{"v1", "paid", 21},
		},
		{
			name:      "cursor only",
			cursorAt:  &cursorAt,
			wantWhere: "WHERE (created_at, invoice_id) < ($1, $2) ORDER BY",
			wantArgs:  []any{cursorAt, "inv_9", 21},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListInvoicesQuery(tt.filter, 20, tt.cursorAt, "inv_9")

			assert.Contains(t, query, "ORDER BY created_at DESC, invoice_id DESC")
			assert.Contains(t, query, fmt.Sprintf("LIMIT $%d", len(args)))
			if tt.wantWhere == "" {
				assert.NotContains(t, query, "WHERE")
			} else {
				assert.Contains(t, query, tt.wantWhere)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestMapLockError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"lock timeout", &pgconn.PgError{Code: pgLockNotAvailable}, apperrors.ErrBusy},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, apperrors.ErrBusy},
		{"statement cancelled", &pgconn.PgError{Code: pgQueryCanceled}, apperrors.ErrBusy},
		{"context deadline", fmt.Errorf("scan: %w", context.DeadlineExceeded), apperrors.ErrBusy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapLockError(tt.err, "inv_1"), tt.want)
		})
	}

	other := errors.New("connection reset")
	err := mapLockError(other, "inv_1")
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, apperrors.ErrBusy)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
}

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil, "payment"))
	assert.ErrorIs(t, mapWriteError(&pgconn.PgError{Code: pgUniqueViolation}, "payment"), apperrors.ErrDuplicate)

	other := errors.New("disk full")
	err := mapWriteError(other, "payment")
	assert.ErrorIs(t, err, other)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)

	dropped := mapWriteError(&pgconn.PgError{Code: "08006"}, "payment")
	assert.ErrorIs(t, dropped, apperrors.ErrPersistence)
	assert.True(t, apperrors.IsRetryable(dropped))
}

// brokenQuerier fails every statement with err.
type brokenQuerier struct {
	err error
}

type brokenRow struct {
	err error
}

func (r brokenRow) Scan(...any) error { return r.err }

func (q brokenQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q brokenQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q brokenQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return brokenRow{err: q.err}
}

func (q brokenQuerier) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	return nil
}

func TestReadPathsClassifyDriverErrors(t *testing.T) {
	ctx := context.Background()
	connLost := brokenQuerier{err: &pgconn.PgError{Code: "08006", Message: "connection failure"}}

	_, err := findInvoice(ctx, connLost, "inv_1")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.True(t, apperrors.IsRetryable(err))

	_, err = findLineItems(ctx, connLost, []string{"inv_1"})
	assert.ErrorIs(t, err, apperrors.ErrPersistence)

	_, err = queryPayments(ctx, connLost, "SELECT 1")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)

	_, err = findPayment(ctx, connLost, "SELECT 1", "pay_1")
	assert.ErrorIs(t, err, apperrors.ErrPersistence)

	missing := brokenQuerier{err: pgx.ErrNoRows}
	_, err = findInvoice(ctx, missing, "inv_1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrPersistence)

	_, err = findPayment(ctx, missing, "SELECT 1", "pay_1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
