package dto

import (
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one billed line supplied by the vendor.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"quantity" swaggertype:"string" example:"2"`
	UnitPrice   domain.Money    `json:"unitPrice" swaggertype:"string" example:"75.00"`
}

// CreateInvoiceRequest defines the data needed to create a draft invoice.
// The vendor is always the authenticated caller.
type CreateInvoiceRequest struct {
	InvoiceNumber string            `json:"invoiceNumber" binding:"required,max=64"`
	TaxAmount     domain.Money      `json:"taxAmount" swaggertype:"string" example:"12.50"`
	LineItems     []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest replaces a draft's editable fields.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string            `json:"invoiceNumber" binding:"omitempty,max=64"`
	TaxAmount     *domain.Money      `json:"taxAmount" swaggertype:"string"`
	LineItems     *[]LineItemRequest `json:"lineItems" binding:"omitempty,dive"`
}

// RejectInvoiceRequest carries the reviewer's reason. The reason is checked by
// the workflow rather than by binding so that an empty reason maps to its own error.
type RejectInvoiceRequest struct {
	Reason string `json:"reason"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitPrice   domain.Money    `json:"unitPrice" swaggertype:"string"`
	Amount      domain.Money    `json:"amount" swaggertype:"string"`
}

// InvoiceResponse defines the data returned for an invoice, including its
// derived ledger figures.
type InvoiceResponse struct {
	InvoiceID              string               `json:"invoiceID"`
	VendorID               string               `json:"vendorID"`
	InvoiceNumber          string               `json:"invoiceNumber"`
	Status                 domain.InvoiceStatus `json:"status"`
	Subtotal               domain.Money         `json:"subtotal" swaggertype:"string"`
	TaxAmount              domain.Money         `json:"taxAmount" swaggertype:"string"`
	Total                  domain.Money         `json:"total" swaggertype:"string"`
	TotalPaid              domain.Money         `json:"totalPaid" swaggertype:"string"`
	BalanceDue             domain.Money         `json:"balanceDue" swaggertype:"string"`
	LineItems              []LineItemResponse   `json:"lineItems"`
	SubmittedAt            *time.Time           `json:"submittedAt,omitempty"`
	ApprovedByAdminID      *string              `json:"approvedByAdminID,omitempty"`
	ApprovedAt             *time.Time           `json:"approvedAt,omitempty"`
	ApprovedByAccountantID *string              `json:"approvedByAccountantID,omitempty"`
	SentToAccountingAt     *time.Time           `json:"sentToAccountingAt,omitempty"`
	RejectionActor         *domain.Role         `json:"rejectionActor,omitempty"`
	RejectionReason        *string              `json:"rejectionReason,omitempty"`
	PaidAt                 *time.Time           `json:"paidAt,omitempty"`
	Version                int64                `json:"version"`
	CreatedAt              time.Time            `json:"createdAt"`
	CreatedBy              string               `json:"createdBy"`
	LastUpdatedAt          time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy          string               `json:"lastUpdatedBy"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
	VendorID  *string `form:"vendorID"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToLineItems converts request lines into domain line items numbered from 1.
func ToLineItems(reqs []LineItemRequest) []domain.LineItem {
	items := make([]domain.LineItem, len(reqs))
	for i, r := range reqs {
		items[i] = domain.LineItem{
			Position:    i + 1,
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		}
	}
	return items
}

// ToInvoiceResponse converts a domain.InvoiceProjection to InvoiceResponse DTO.
func ToInvoiceResponse(p *domain.InvoiceProjection) InvoiceResponse {
	lines := make([]LineItemResponse, len(p.LineItems))
	for i, li := range p.LineItems {
		lines[i] = LineItemResponse{
			LineItemID:  li.LineItemID,
			Position:    li.Position,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		}
	}
	return InvoiceResponse{
		InvoiceID:              p.InvoiceID,
		VendorID:               p.VendorID,
		InvoiceNumber:          p.InvoiceNumber,
		Status:                 p.Status,
		Subtotal:               p.Subtotal,
		TaxAmount:              p.TaxAmount,
		Total:                  p.Total,
		TotalPaid:              p.TotalPaid,
		BalanceDue:             p.BalanceDue,
		LineItems:              lines,
		SubmittedAt:            p.SubmittedAt,
		ApprovedByAdminID:      p.ApprovedByAdminID,
		ApprovedAt:             p.ApprovedAt,
		ApprovedByAccountantID: p.ApprovedByAccountantID,
		SentToAccountingAt:     p.SentToAccountingAt,
		RejectionActor:         p.RejectionActor,
		RejectionReason:        p.RejectionReason,
		PaidAt:                 p.PaidAt,
		Version:                p.Version,
		CreatedAt:              p.CreatedAt,
		CreatedBy:              p.CreatedBy,
		LastUpdatedAt:          p.LastUpdatedAt,
		LastUpdatedBy:          p.LastUpdatedBy,
	}
}
