package dto

import (
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
)

// RecordPaymentRequest defines the data needed to record a payment.
type RecordPaymentRequest struct {
	Amount          domain.Money `json:"amount" swaggertype:"string" example:"250.00"`
	PaymentDate     time.Time    `json:"paymentDate" binding:"required"`
	Method          string       `json:"method" binding:"required,payment_method" enums:"check,direct_deposit,wire_transfer"`
	ReferenceNumber *string      `json:"referenceNumber" binding:"omitempty,max=128"`
	Notes           string       `json:"notes" binding:"max=1000"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID         string               `json:"paymentID"`
	InvoiceID         string               `json:"invoiceID"`
	Amount            domain.Money         `json:"amount" swaggertype:"string"`
	PaymentDate       time.Time            `json:"paymentDate"`
	Method            domain.PaymentMethod `json:"method"`
	ReferenceNumber   *string              `json:"referenceNumber,omitempty"`
	Notes             string               `json:"notes"`
	Status            domain.PaymentStatus `json:"status"`
	ProcessedByUserID string               `json:"processedByUserID"`
	ProcessedAt       *time.Time           `json:"processedAt,omitempty"`
	ReversedByUserID  *string              `json:"reversedByUserID,omitempty"`
	ReversedAt        *time.Time           `json:"reversedAt,omitempty"`
}

// PaymentResultResponse is returned by payment commands: the payment and the
// invoice as it stands after the command.
type PaymentResultResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

// ListPaymentsResponse wraps an invoice's payments.
type ListPaymentsResponse struct {
	Payments   []PaymentResponse `json:"payments"`
	TotalPaid  domain.Money      `json:"totalPaid" swaggertype:"string"`
	BalanceDue domain.Money      `json:"balanceDue" swaggertype:"string"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:         p.PaymentID,
		InvoiceID:         p.InvoiceID,
		Amount:            p.Amount,
		PaymentDate:       p.PaymentDate,
		Method:            p.Method,
		ReferenceNumber:   p.ReferenceNumber,
		Notes:             p.Notes,
		Status:            p.Status,
		ProcessedByUserID: p.ProcessedByUserID,
		ProcessedAt:       p.ProcessedAt,
		ReversedByUserID:  p.ReversedByUserID,
		ReversedAt:        p.ReversedAt,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to []PaymentResponse.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = ToPaymentResponse(&p)
	}
	return res
}

// ToPaymentResultResponse converts a domain.PaymentResult to its DTO.
func ToPaymentResultResponse(r *domain.PaymentResult) PaymentResultResponse {
	return PaymentResultResponse{
		Payment: ToPaymentResponse(&r.Payment),
		Invoice: ToInvoiceResponse(&r.Invoice),
	}
}
