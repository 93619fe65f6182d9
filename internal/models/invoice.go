package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the row shape of the invoices table. Monetary columns are NUMERIC(14,2).
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	VendorID      string          `db:"vendor_id"`
	InvoiceNumber string          `db:"invoice_number"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	Total         decimal.Decimal `db:"total"`
	Status        string          `db:"status"`

	SubmittedAt            *time.Time `db:"submitted_at"`
	ApprovedByAdminID      *string    `db:"approved_by_admin_id"`
	ApprovedAt             *time.Time `db:"approved_at"`
	ApprovedByAccountantID *string    `db:"approved_by_accountant_id"`
	SentToAccountingAt     *time.Time `db:"sent_to_accounting_at"`
	RejectionActor         *string    `db:"rejection_actor"`
	RejectionReason        *string    `db:"rejection_reason"`
	PaidAt                 *time.Time `db:"paid_at"`

	Version int64 `db:"version"`
	AuditFields
}

// LineItem is the row shape of invoice_line_items.
type LineItem struct {
	LineItemID  string          `db:"line_item_id"`
	InvoiceID   string          `db:"invoice_id"`
	Position    int             `db:"position"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Amount      decimal.Decimal `db:"amount"`
}
