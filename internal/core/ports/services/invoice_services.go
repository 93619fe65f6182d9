package services

import (
	"context"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/SscSPs/vendor_invoicing/internal/dto"
)

// InvoiceDraftSvc defines the vendor-side draft operations.
type InvoiceDraftSvc interface {
	// CreateInvoice creates a draft invoice in pending_submission owned by the calling vendor.
	CreateInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.InvoiceProjection, error)

	// EditInvoice replaces the editable fields of a draft the vendor owns.
	EditInvoice(ctx context.Context, invoiceID string, actor domain.Actor, req dto.UpdateInvoiceRequest) (*domain.InvoiceProjection, error)
}

// InvoiceTransitionSvc defines the status-changing workflow commands.
// Each command runs under the invoice's lock and emits exactly one event after commit.
type InvoiceTransitionSvc interface {
	Submit(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.InvoiceProjection, error)
	Approve(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.InvoiceProjection, error)
	Reject(ctx context.Context, invoiceID string, actor domain.Actor, reason string) (*domain.InvoiceProjection, error)
	Resubmit(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.InvoiceProjection, error)
}

// PaymentLedgerSvc defines the accountant's ledger commands.
type PaymentLedgerSvc interface {
	// RecordPayment posts a processed payment and moves the invoice to paid when settled.
	RecordPayment(ctx context.Context, invoiceID string, actor domain.Actor, req dto.RecordPaymentRequest) (*domain.PaymentResult, error)

	// ReversePayment marks a processed payment reversed and recomputes the invoice.
	ReversePayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.PaymentResult, error)
}

// InvoiceWorkflowSvcFacade combines all invoice command interfaces
// This is a facade for clients that need access to all operations
type InvoiceWorkflowSvcFacade interface {
	InvoiceDraftSvc
	InvoiceTransitionSvc
	PaymentLedgerSvc
}

// InvoiceQuerySvcFacade defines the read side. Vendors only see their own invoices.
type InvoiceQuerySvcFacade interface {
	// GetInvoice retrieves an invoice with its derived totals.
	GetInvoice(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.InvoiceProjection, error)

	// ListInvoices retrieves a page of invoices visible to actor.
	ListInvoices(ctx context.Context, actor domain.Actor, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListPayments retrieves every payment of an invoice in any status.
	ListPayments(ctx context.Context, invoiceID string, actor domain.Actor) (*dto.ListPaymentsResponse, error)

	// ListInvoiceEvents retrieves the invoice's audit trail.
	ListInvoiceEvents(ctx context.Context, invoiceID string, actor domain.Actor) ([]domain.WorkflowEvent, error)
}
