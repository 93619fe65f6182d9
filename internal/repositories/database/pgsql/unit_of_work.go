package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	"github.com/SscSPs/vendor_invoicing/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// pgxUnitOfWork runs reads and writes on the transaction that holds the invoice row lock.
type pgxUnitOfWork struct {
	tx        pgx.Tx
	invoiceID string
}

var _ portsrepo.InvoiceUnitOfWork = (*pgxUnitOfWork)(nil)

func (u *pgxUnitOfWork) LoadInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return findInvoice(ctx, u.tx, invoiceID)
}

func (u *pgxUnitOfWork) LoadProcessedPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	return queryPayments(ctx, u.tx, listProcessedPaymentsQuery, invoiceID)
}

func (u *pgxUnitOfWork) LoadPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return findPayment(ctx, u.tx, findPaymentOnInvoiceQuery, paymentID, u.invoiceID)
}

// SaveInvoice updates the header guarded by its version, then replaces the line items.
func (u *pgxUnitOfWork) SaveInvoice(ctx context.Context, inv *domain.Invoice) error {
	if inv.InvoiceID != u.invoiceID {
		return fmt.Errorf("%w: invoice %s saved under lock for %s", apperrors.ErrInvariantViolation, inv.InvoiceID, u.invoiceID)
	}

	m := mapping.ToModelInvoice(*inv)
	var version int64
	err := u.tx.QueryRow(ctx, updateInvoiceQuery,
		m.InvoiceID,
		m.InvoiceNumber,
		m.Subtotal,
		m.TaxAmount,
		m.Total,
		m.Status,
		m.SubmittedAt,
		m.ApprovedByAdminID,
		m.ApprovedAt,
		m.ApprovedByAccountantID,
		m.SentToAccountingAt,
		m.RejectionActor,
		m.RejectionReason,
		m.PaidAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: stale invoice version %d for %s", apperrors.ErrConflict, inv.Version, inv.InvoiceID)
		}
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: invoice number %q already used by vendor", apperrors.ErrDuplicate, inv.InvoiceNumber)
		}
		return fmt.Errorf("%w: failed to update invoice %s: %w", apperrors.ErrPersistence, inv.InvoiceID, err)
	}

	if _, err := u.tx.Exec(ctx, deleteLineItemsQuery, inv.InvoiceID); err != nil {
		return fmt.Errorf("%w: failed to clear line items of invoice %s: %w", apperrors.ErrPersistence, inv.InvoiceID, err)
	}
	if err := insertLineItems(ctx, u.tx, mapping.ToModelLineItems(inv.LineItems)); err != nil {
		return err
	}

	inv.Version = version
	return nil
}

func (u *pgxUnitOfWork) InsertPayment(ctx context.Context, p domain.Payment) error {
	if p.InvoiceID != u.invoiceID {
		return fmt.Errorf("%w: payment for %s inserted under lock for %s", apperrors.ErrInvariantViolation, p.InvoiceID, u.invoiceID)
	}
	m := mapping.ToModelPayment(p)
	_, err := u.tx.Exec(ctx, insertPaymentQuery,
		m.PaymentID,
		m.InvoiceID,
		m.Amount,
		m.PaymentDate,
		m.Method,
		m.ReferenceNumber,
		m.Notes,
		m.Status,
		m.ProcessedByUserID,
		m.ProcessedAt,
		m.ReversedByUserID,
		m.ReversedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapWriteError(err, "payment "+p.PaymentID)
}

func (u *pgxUnitOfWork) UpdatePaymentStatus(ctx context.Context, p domain.Payment) error {
	m := mapping.ToModelPayment(p)
	tag, err := u.tx.Exec(ctx, updatePaymentStatusQuery,
		m.PaymentID,
		u.invoiceID,
		m.Status,
		m.ReversedByUserID,
		m.ReversedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update payment %s: %w", apperrors.ErrPersistence, p.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment not found on invoice: " + p.PaymentID)
	}
	return nil
}
