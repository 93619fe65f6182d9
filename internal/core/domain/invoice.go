package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the position of an invoice in the approval pipeline.
type InvoiceStatus string

const (
	StatusPendingSubmission     InvoiceStatus = "pending_submission"
	StatusSubmittedToAdmin      InvoiceStatus = "submitted_to_admin"
	StatusSubmittedToAccounting InvoiceStatus = "submitted_to_accounting"
	StatusRejectedByAdmin       InvoiceStatus = "rejected_by_admin"
	StatusRejectedByAccountant  InvoiceStatus = "rejected_by_accountant"
	StatusPaid                  InvoiceStatus = "paid"
)

// AllInvoiceStatuses lists every InvoiceStatus.
var AllInvoiceStatuses = []InvoiceStatus{
	StatusPendingSubmission,
	StatusSubmittedToAdmin,
	StatusSubmittedToAccounting,
	StatusRejectedByAdmin,
	StatusRejectedByAccountant,
	StatusPaid,
}

// ParseInvoiceStatus validates a status string.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	for _, st := range AllInvoiceStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, s)
}

// IsRejected reports whether the status is one of the rejection states.
func (s InvoiceStatus) IsRejected() bool {
	return s == StatusRejectedByAdmin || s == StatusRejectedByAccountant
}

// LineItem is one billed line on an invoice.
type LineItem struct {
	LineItemID  string          `json:"lineItemID"`
	InvoiceID   string          `json:"invoiceID"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   Money           `json:"unitPrice"`
	Amount      Money           `json:"amount"` // Quantity x UnitPrice, rounded to cents
}

// Invoice is a vendor's bill moving through admin and accounting approval to payment.
// It is the aggregate root for its line items and payments.
type Invoice struct {
	InvoiceID     string        `json:"invoiceID"`
	VendorID      string        `json:"vendorID"`
	InvoiceNumber string        `json:"invoiceNumber"` // Unique per vendor
	Subtotal      Money         `json:"subtotal"`
	TaxAmount     Money         `json:"taxAmount"`
	Total         Money         `json:"total"`
	Status        InvoiceStatus `json:"status"`
	LineItems     []LineItem    `json:"lineItems"`

	SubmittedAt            *time.Time `json:"submittedAt,omitempty"`
	ApprovedByAdminID      *string    `json:"approvedByAdminID,omitempty"`
	ApprovedAt             *time.Time `json:"approvedAt,omitempty"`
	ApprovedByAccountantID *string    `json:"approvedByAccountantID,omitempty"`
	SentToAccountingAt     *time.Time `json:"sentToAccountingAt,omitempty"`
	RejectionActor         *Role      `json:"rejectionActor,omitempty"`
	RejectionReason        *string    `json:"rejectionReason,omitempty"`
	PaidAt                 *time.Time `json:"paidAt,omitempty"`

	// Version is bumped on every save and guards against lost updates.
	Version int64 `json:"version"`
	AuditFields
}

// RecalculateTotals derives line amounts, subtotal and total from the line items and tax.
// It returns ErrValidation when a quantity, line amount or sum does not fit its column;
// the invoice is left unchanged in that case.
func (i *Invoice) RecalculateTotals() error {
	amounts := make([]Money, len(i.LineItems))
	subtotal := ZeroMoney
	for idx, li := range i.LineItems {
		if err := CheckQuantity(li.Quantity); err != nil {
			return fmt.Errorf("line item %d: %w", idx+1, err)
		}
		amount, err := li.UnitPrice.MulQuantity(li.Quantity)
		if err != nil {
			return fmt.Errorf("line item %d: %w", idx+1, err)
		}
		if subtotal, err = subtotal.CheckedAdd(amount); err != nil {
			return fmt.Errorf("subtotal: %w", err)
		}
		amounts[idx] = amount
	}
	total, err := subtotal.CheckedAdd(i.TaxAmount)
	if err != nil {
		return fmt.Errorf("total: %w", err)
	}
	for idx := range i.LineItems {
		i.LineItems[idx].Amount = amounts[idx]
	}
	i.Subtotal = subtotal
	i.Total = total
	return nil
}

// ClearRejection removes the rejection provenance fields.
func (i *Invoice) ClearRejection() {
	i.RejectionActor = nil
	i.RejectionReason = nil
}

// Validate checks the monetary invariants of the invoice itself.
func (i Invoice) Validate() error {
	if i.InvoiceNumber == "" {
		return fmt.Errorf("%w: invoice number is required", apperrors.ErrValidation)
	}
	if i.VendorID == "" {
		return fmt.Errorf("%w: vendor id is required", apperrors.ErrValidation)
	}
	if i.TaxAmount.IsNegative() || i.Subtotal.IsNegative() {
		return fmt.Errorf("%w: subtotal and tax must not be negative", apperrors.ErrValidation)
	}
	if !i.Total.Equal(i.Subtotal.Add(i.TaxAmount)) {
		return fmt.Errorf("%w: total %s does not equal subtotal %s + tax %s", apperrors.ErrInvariantViolation, i.Total, i.Subtotal, i.TaxAmount)
	}
	for _, li := range i.LineItems {
		if li.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line item quantity must be positive", apperrors.ErrValidation)
		}
		if li.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: line item unit price must not be negative", apperrors.ErrValidation)
		}
	}
	return nil
}

// InvoiceProjection is an invoice together with its ledger figures derived
// from processed payments.
type InvoiceProjection struct {
	Invoice
	TotalPaid  Money `json:"totalPaid"`
	BalanceDue Money `json:"balanceDue"`
}

// PaymentResult is the outcome of a payment command: the payment row and the
// invoice it settled against.
type PaymentResult struct {
	Payment Payment           `json:"payment"`
	Invoice InvoiceProjection `json:"invoice"`
}
