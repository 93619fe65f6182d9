package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the row shape of the payments table.
type Payment struct {
	PaymentID         string          `db:"payment_id"`
	InvoiceID         string          `db:"invoice_id"`
	Amount            decimal.Decimal `db:"amount"`
	PaymentDate       time.Time       `db:"payment_date"`
	Method            string          `db:"method"`
	ReferenceNumber   *string         `db:"reference_number"`
	Notes             string          `db:"notes"`
	Status            string          `db:"status"`
	ProcessedByUserID string          `db:"processed_by_user_id"`
	ProcessedAt       *time.Time      `db:"processed_at"`
	ReversedByUserID  *string         `db:"reversed_by_user_id"`
	ReversedAt        *time.Time      `db:"reversed_at"`
	AuditFields
}
