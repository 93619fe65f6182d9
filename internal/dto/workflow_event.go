package dto

import "github.com/SscSPs/vendor_invoicing/internal/core/domain"

// ListWorkflowEventsResponse wraps an invoice's audit trail.
type ListWorkflowEventsResponse struct {
	Events []domain.WorkflowEvent `json:"events"`
}
