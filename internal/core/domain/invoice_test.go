package domain_test

import (
	"testing"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoice_RecalculateTotals(t *testing.T) {
	inv := domain.Invoice{
		TaxAmount: domain.MustParseMoney("8.25"),
		LineItems: []domain.LineItem{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: domain.MustParseMoney("40.00")},
			{Description: "Travel", Quantity: decimal.RequireFromString("1.5"), UnitPrice: domain.MustParseMoney("13.33")},
		},
	}

	require.NoError(t, inv.RecalculateTotals())

	assert.Equal(t, "80.00", inv.LineItems[0].Amount.String())
	assert.Equal(t, "20.00", inv.LineItems[1].Amount.String())
	assert.Equal(t, "100.00", inv.Subtotal.String())
	assert.Equal(t, "108.25", inv.Total.String())
}

func TestInvoice_RecalculateTotalsOutOfRange(t *testing.T) {
	line := func(qty, price string) domain.LineItem {
		return domain.LineItem{Description: "Widgets", Quantity: decimal.RequireFromString(qty), UnitPrice: domain.MustParseMoney(price)}
	}

	tests := []struct {
		name  string
		tax   string
		lines []domain.LineItem
	}{
		{name: "quantity past the column", tax: "0.00", lines: []domain.LineItem{line("184467440737095516.17", "1.00")}},
		{name: "line amount past the column", tax: "0.00", lines: []domain.LineItem{line("3", "400000000000.00")}},
		{name: "subtotal past the column", tax: "0.00", lines: []domain.LineItem{
			line("1", "400000000000.00"), line("1", "400000000000.00"), line("1", "400000000000.00"),
		}},
		{name: "tax pushes total past the column", tax: "999999999999.99", lines: []domain.LineItem{line("1", "0.01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := domain.Invoice{TaxAmount: domain.MustParseMoney(tt.tax), LineItems: tt.lines}

			err := inv.RecalculateTotals()

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.True(t, inv.Total.IsZero())
			assert.True(t, inv.LineItems[0].Amount.IsZero())
		})
	}
}

func TestInvoice_Validate(t *testing.T) {
	valid := func() domain.Invoice {
		inv := domain.Invoice{
			InvoiceID:     "inv_1",
			VendorID:      "vendor_1",
			InvoiceNumber: "INV-001",
			TaxAmount:     domain.MustParseMoney("10.00"),
			LineItems: []domain.LineItem{
				{Description: "Widgets", Quantity: decimal.NewFromInt(1), UnitPrice: domain.MustParseMoney("90.00")},
			},
		}
		require.NoError(t, inv.RecalculateTotals())
		return inv
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Invoice)
		wantErr error
	}{
		{name: "valid invoice", mutate: func(*domain.Invoice) {}},
		{name: "missing invoice number", mutate: func(i *domain.Invoice) { i.InvoiceNumber = "" }, wantErr: apperrors.ErrValidation},
		{name: "missing vendor", mutate: func(i *domain.Invoice) { i.VendorID = "" }, wantErr: apperrors.ErrValidation},
		{name: "negative tax", mutate: func(i *domain.Invoice) {
			i.TaxAmount = domain.MustParseMoney("-1.00")
			require.NoError(t, i.RecalculateTotals())
		}, wantErr: apperrors.ErrValidation},
		{name: "total out of sync", mutate: func(i *domain.Invoice) { i.Total = domain.MustParseMoney("1.00") }, wantErr: apperrors.ErrInvariantViolation},
		{name: "zero quantity line", mutate: func(i *domain.Invoice) {
			i.LineItems[0].Quantity = decimal.Zero
			require.NoError(t, i.RecalculateTotals())
		}, wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := valid()
			tt.mutate(&inv)
			err := inv.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInvoice_ClearRejection(t *testing.T) {
	role := domain.RoleAdmin
	reason := "missing PO number"
	inv := domain.Invoice{RejectionActor: &role, RejectionReason: &reason}

	inv.ClearRejection()

	assert.Nil(t, inv.RejectionActor)
	assert.Nil(t, inv.RejectionReason)
}

func TestParseInvoiceStatus(t *testing.T) {
	for _, st := range domain.AllInvoiceStatuses {
		got, err := domain.ParseInvoiceStatus(string(st))
		assert.NoError(t, err)
		assert.Equal(t, st, got)
	}
	_, err := domain.ParseInvoiceStatus("archived")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
