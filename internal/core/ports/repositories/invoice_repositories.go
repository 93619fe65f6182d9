package repositories

import (
	"context"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
)

// InvoiceFilter narrows ListInvoices. Nil fields do not filter.
type InvoiceFilter struct {
	VendorID *string
	Status   *domain.InvoiceStatus
}

// InvoiceReader defines read operations for invoice data outside any lock.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its line items.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a page of invoices, newest first, using token-based pagination.
	// It returns the invoices, a token for the next page, and an error.
	ListInvoices(ctx context.Context, filter InvoiceFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// PaymentReader defines read operations for payment data outside any lock.
type PaymentReader interface {
	// FindPaymentByID retrieves a single payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPaymentsByInvoice retrieves every payment of an invoice, in any status, oldest first.
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// ProcessedTotalsByInvoiceIDs sums processed payments for several invoices at once.
	// Invoices without processed payments are absent from the map.
	ProcessedTotalsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string]domain.Money, error)
}

// InvoiceWriter defines write operations that do not need the invoice lock.
type InvoiceWriter interface {
	// CreateInvoice persists a new invoice and its line items.
	// Returns apperrors.ErrDuplicate if the vendor already used the invoice number.
	CreateInvoice(ctx context.Context, invoice domain.Invoice) error
}

// InvoiceUnitOfWork is the set of reads and writes available while an
// invoice's lock is held. Writes become visible to other callers only when
// the enclosing WithInvoiceLock returns without error.
type InvoiceUnitOfWork interface {
	// LoadInvoice reads the locked invoice with its line items.
	LoadInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// LoadProcessedPayments reads the payments that currently count toward the paid total.
	LoadProcessedPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// LoadPayment reads one payment of the locked invoice.
	LoadPayment(ctx context.Context, paymentID string) (*domain.Payment, error)

	// SaveInvoice writes the invoice header and line items and bumps invoice.Version.
	SaveInvoice(ctx context.Context, invoice *domain.Invoice) error

	// InsertPayment appends a payment row.
	InsertPayment(ctx context.Context, payment domain.Payment) error

	// UpdatePaymentStatus writes a payment's status and reversal provenance.
	UpdatePaymentStatus(ctx context.Context, payment domain.Payment) error
}

// InvoiceLocker serializes mutations per invoice.
type InvoiceLocker interface {
	// WithInvoiceLock acquires the invoice's exclusive lock, runs fn, and commits
	// fn's writes atomically if fn returns nil. Any error from fn discards every
	// write. Returns apperrors.ErrBusy if the lock is not acquired within the
	// store's lock timeout and apperrors.ErrPersistence if the commit fails.
	WithInvoiceLock(ctx context.Context, invoiceID string, fn func(ctx context.Context, uow InvoiceUnitOfWork) error) error
}

// InvoiceStore combines all invoice-related repository interfaces.
// This is a facade for clients that need access to all operations
type InvoiceStore interface {
	InvoiceReader
	PaymentReader
	InvoiceWriter
	InvoiceLocker
}
