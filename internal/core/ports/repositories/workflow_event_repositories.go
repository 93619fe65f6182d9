package repositories

import (
	"context"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
)

// WorkflowEventReader reads the durable audit trail.
type WorkflowEventReader interface {
	// ListEventsByInvoice retrieves an invoice's workflow events, oldest first.
	ListEventsByInvoice(ctx context.Context, invoiceID string) ([]domain.WorkflowEvent, error)
}
