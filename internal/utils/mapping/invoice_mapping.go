package mapping

import (
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/SscSPs/vendor_invoicing/internal/models"
)

// ToModelInvoice converts a domain Invoice header to a model Invoice.
// Line items are mapped separately with ToModelLineItems.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	var rejectionActor *string
	if d.RejectionActor != nil {
		role := string(*d.RejectionActor)
		rejectionActor = &role
	}
	return models.Invoice{
		InvoiceID:              d.InvoiceID,
		VendorID:               d.VendorID,
		InvoiceNumber:          d.InvoiceNumber,
		Subtotal:               d.Subtotal.Decimal(),
		TaxAmount:              d.TaxAmount.Decimal(),
		Total:                  d.Total.Decimal(),
		Status:                 string(d.Status),
		SubmittedAt:            d.SubmittedAt,
		ApprovedByAdminID:      d.ApprovedByAdminID,
		ApprovedAt:             d.ApprovedAt,
		ApprovedByAccountantID: d.ApprovedByAccountantID,
		SentToAccountingAt:     d.SentToAccountingAt,
		RejectionActor:         rejectionActor,
		RejectionReason:        d.RejectionReason,
		PaidAt:                 d.PaidAt,
		Version:                d.Version,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice and its line item rows to a domain Invoice.
func ToDomainInvoice(m models.Invoice, items []models.LineItem) domain.Invoice {
	var rejectionActor *domain.Role
	if m.RejectionActor != nil {
		role := domain.Role(*m.RejectionActor)
		rejectionActor = &role
	}
	return domain.Invoice{
		InvoiceID:              m.InvoiceID,
		VendorID:               m.VendorID,
		InvoiceNumber:          m.InvoiceNumber,
		Subtotal:               domain.MoneyFromNumeric(m.Subtotal),
		TaxAmount:              domain.MoneyFromNumeric(m.TaxAmount),
		Total:                  domain.MoneyFromNumeric(m.Total),
		Status:                 domain.InvoiceStatus(m.Status),
		LineItems:              ToDomainLineItems(items),
		SubmittedAt:            m.SubmittedAt,
		ApprovedByAdminID:      m.ApprovedByAdminID,
		ApprovedAt:             m.ApprovedAt,
		ApprovedByAccountantID: m.ApprovedByAccountantID,
		SentToAccountingAt:     m.SentToAccountingAt,
		RejectionActor:         rejectionActor,
		RejectionReason:        m.RejectionReason,
		PaidAt:                 m.PaidAt,
		Version:                m.Version,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItems converts domain line items to model rows.
func ToModelLineItems(items []domain.LineItem) []models.LineItem {
	result := make([]models.LineItem, len(items))
	for i, li := range items {
		result[i] = models.LineItem{
			LineItemID:  li.LineItemID,
			InvoiceID:   li.InvoiceID,
			Position:    li.Position,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice.Decimal(),
			Amount:      li.Amount.Decimal(),
		}
	}
	return result
}

// ToDomainLineItems converts model line item rows to domain line items.
func ToDomainLineItems(items []models.LineItem) []domain.LineItem {
	result := make([]domain.LineItem, len(items))
	for i, li := range items {
		result[i] = domain.LineItem{
			LineItemID:  li.LineItemID,
			InvoiceID:   li.InvoiceID,
			Position:    li.Position,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   domain.MoneyFromNumeric(li.UnitPrice),
			Amount:      domain.MoneyFromNumeric(li.Amount),
		}
	}
	return result
}
