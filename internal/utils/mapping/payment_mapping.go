package mapping

import (
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/SscSPs/vendor_invoicing/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:         d.PaymentID,
		InvoiceID:         d.InvoiceID,
		Amount:            d.Amount.Decimal(),
		PaymentDate:       d.PaymentDate,
		Method:            string(d.Method),
		ReferenceNumber:   d.ReferenceNumber,
		Notes:             d.Notes,
		Status:            string(d.Status),
		ProcessedByUserID: d.ProcessedByUserID,
		ProcessedAt:       d.ProcessedAt,
		ReversedByUserID:  d.ReversedByUserID,
		ReversedAt:        d.ReversedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:         m.PaymentID,
		InvoiceID:         m.InvoiceID,
		Amount:            domain.MoneyFromNumeric(m.Amount),
		PaymentDate:       m.PaymentDate,
		Method:            domain.PaymentMethod(m.Method),
		ReferenceNumber:   m.ReferenceNumber,
		Notes:             m.Notes,
		Status:            domain.PaymentStatus(m.Status),
		ProcessedByUserID: m.ProcessedByUserID,
		ProcessedAt:       m.ProcessedAt,
		ReversedByUserID:  m.ReversedByUserID,
		ReversedAt:        m.ReversedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
