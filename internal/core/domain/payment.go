package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
)

// PaymentMethod is how a payment was remitted.
type PaymentMethod string

const (
	MethodCheck         PaymentMethod = "check"
	MethodDirectDeposit PaymentMethod = "direct_deposit"
	MethodWireTransfer  PaymentMethod = "wire_transfer"
)

// ParsePaymentMethod validates a payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	switch m {
	case MethodCheck, MethodDirectDeposit, MethodWireTransfer:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, s)
}

// PaymentStatus is the ledger state of a single payment posting.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentProcessed PaymentStatus = "processed"
	PaymentReversed  PaymentStatus = "reversed"
)

// Payment is one posting of money against an invoice. Payments are never
// deleted; a reversal flips the status to reversed.
type Payment struct {
	PaymentID         string        `json:"paymentID"`
	InvoiceID         string        `json:"invoiceID"`
	Amount            Money         `json:"amount"`
	PaymentDate       time.Time     `json:"paymentDate"`
	Method            PaymentMethod `json:"method"`
	ReferenceNumber   *string       `json:"referenceNumber,omitempty"`
	Notes             string        `json:"notes"`
	Status            PaymentStatus `json:"status"`
	ProcessedByUserID string        `json:"processedByUserID"`
	ProcessedAt       *time.Time    `json:"processedAt,omitempty"`
	ReversedByUserID  *string       `json:"reversedByUserID,omitempty"`
	ReversedAt        *time.Time    `json:"reversedAt,omitempty"`
	AuditFields
}

// IsProcessed reports whether the payment counts toward the invoice's paid total.
func (p Payment) IsProcessed() bool {
	return p.Status == PaymentProcessed
}
