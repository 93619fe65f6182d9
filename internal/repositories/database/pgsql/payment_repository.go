package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/SscSPs/vendor_invoicing/internal/models"
	"github.com/SscSPs/vendor_invoicing/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	paymentsTable = "payments"

	selectPaymentFields = `
		payment_id, invoice_id, amount, payment_date, method, reference_number, notes,
		status, processed_by_user_id, processed_at, reversed_by_user_id, reversed_at,
		created_at, created_by, last_updated_at, last_updated_by
	`

	insertPaymentQuery = `
		INSERT INTO ` + paymentsTable + ` (` + selectPaymentFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	findPaymentByIDQuery = `
		SELECT ` + selectPaymentFields + `
		FROM ` + paymentsTable + `
		WHERE payment_id = $1
	`

	findPaymentOnInvoiceQuery = `
		SELECT ` + selectPaymentFields + `
		FROM ` + paymentsTable + `
		WHERE payment_id = $1 AND invoice_id = $2
	`

	listPaymentsByInvoiceQuery = `
		SELECT ` + selectPaymentFields + `
		FROM ` + paymentsTable + `
		WHERE invoice_id = $1
		ORDER BY created_at, payment_id
	`

	listProcessedPaymentsQuery = `
		SELECT ` + selectPaymentFields + `
		FROM ` + paymentsTable + `
		WHERE invoice_id = $1 AND status = 'processed'
		ORDER BY created_at, payment_id
	`

	processedTotalsQuery = `
		SELECT invoice_id, SUM(amount)
		FROM ` + paymentsTable + `
		WHERE invoice_id = ANY($1) AND status = 'processed'
		GROUP BY invoice_id
	`

	updatePaymentStatusQuery = `
		UPDATE ` + paymentsTable + ` SET
			status = $3, reversed_by_user_id = $4, reversed_at = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE payment_id = $1 AND invoice_id = $2
	`
)

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.InvoiceID,
		&m.Amount,
		&m.PaymentDate,
		&m.Method,
		&m.ReferenceNumber,
		&m.Notes,
		&m.Status,
		&m.ProcessedByUserID,
		&m.ProcessedAt,
		&m.ReversedByUserID,
		&m.ReversedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func queryPayments(ctx context.Context, q querier, query string, args ...any) ([]domain.Payment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query payments: %w", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan payment: %w", apperrors.ErrPersistence, err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating payments: %w", apperrors.ErrPersistence, err)
	}
	return payments, nil
}

func findPayment(ctx context.Context, q querier, query string, args ...any) (*domain.Payment, error) {
	m, err := scanPayment(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment not found: %v", args[0]))
		}
		return nil, fmt.Errorf("%w: failed to find payment %v: %w", apperrors.ErrPersistence, args[0], err)
	}
	p := mapping.ToDomainPayment(m)
	return &p, nil
}

// FindPaymentByID retrieves a single payment.
func (r *PgxInvoiceRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return findPayment(ctx, r.Pool, findPaymentByIDQuery, paymentID)
}

// ListPaymentsByInvoice retrieves every payment of an invoice, oldest first.
func (r *PgxInvoiceRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	return queryPayments(ctx, r.Pool, listPaymentsByInvoiceQuery, invoiceID)
}

// ProcessedTotalsByInvoiceIDs sums processed payments per invoice.
func (r *PgxInvoiceRepository) ProcessedTotalsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.Money, error) {
	totals := make(map[string]domain.Money, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return totals, nil
	}

	rows, err := r.Pool.Query(ctx, processedTotalsQuery, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to sum payments: %w", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			invoiceID string
			sum       decimal.Decimal
		)
		if err := rows.Scan(&invoiceID, &sum); err != nil {
			return nil, fmt.Errorf("%w: failed to scan payment total: %w", apperrors.ErrPersistence, err)
		}
		totals[invoiceID] = domain.MoneyFromNumeric(sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating payment totals: %w", apperrors.ErrPersistence, err)
	}
	return totals, nil
}
