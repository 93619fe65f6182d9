package workflow_test

import (
	"testing"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/SscSPs/vendor_invoicing/internal/core/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceInAccounting(total string) domain.Invoice {
	t := domain.MustParseMoney(total)
	return domain.Invoice{
		InvoiceID: "inv_1",
		VendorID:  vendorID,
		Subtotal:  t,
		Total:     t,
		Status:    domain.StatusSubmittedToAccounting,
	}
}

func processed(id, amount string) domain.Payment {
	return domain.Payment{
		PaymentID: id,
		InvoiceID: "inv_1",
		Amount:    domain.MustParseMoney(amount),
		Status:    domain.PaymentProcessed,
	}
}

func TestTotalPaid_IgnoresNonProcessed(t *testing.T) {
	reversed := processed("p3", "25.00")
	reversed.Status = domain.PaymentReversed
	pending := processed("p4", "5.00")
	pending.Status = domain.PaymentPending

	got := workflow.TotalPaid([]domain.Payment{processed("p1", "10.00"), processed("p2", "20.50"), reversed, pending})

	assert.Equal(t, "30.50", got.String())
}

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name        string
		total       string
		existing    []domain.Payment
		amount      string
		wantBalance string
		wantStatus  domain.InvoiceStatus
		wantErr     error
	}{
		{name: "partial payment", total: "500.00", amount: "200.00", wantBalance: "300.00", wantStatus: domain.StatusSubmittedToAccounting},
		{name: "second payment settles", total: "500.00", existing: []domain.Payment{processed("p1", "200.00")}, amount: "300.00", wantBalance: "0.00", wantStatus: domain.StatusPaid},
		{name: "exact single payment", total: "150.00", amount: "150.00", wantBalance: "0.00", wantStatus: domain.StatusPaid},
		{name: "overpayment rejected", total: "100.00", existing: []domain.Payment{processed("p1", "60.00")}, amount: "60.00", wantErr: apperrors.ErrAmountExceedsBalance},
		{name: "zero amount rejected", total: "100.00", amount: "0", wantErr: apperrors.ErrValidation},
		{name: "negative amount rejected", total: "100.00", amount: "-1.00", wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := workflow.ApplyPayment(invoiceInAccounting(tt.total), tt.existing, domain.MustParseMoney(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, d.BalanceDue.String())
			assert.Equal(t, tt.wantStatus, d.ResultingStatus)
			assert.Equal(t, len(tt.existing)+1, d.ProcessedPayments)
		})
	}
}

func TestApplyPayment_RequiresAccountingOrPaid(t *testing.T) {
	for _, st := range []domain.InvoiceStatus{
		domain.StatusPendingSubmission,
		domain.StatusSubmittedToAdmin,
		domain.StatusRejectedByAdmin,
		domain.StatusRejectedByAccountant,
	} {
		inv := invoiceInAccounting("100.00")
		inv.Status = st
		_, err := workflow.ApplyPayment(inv, nil, domain.MustParseMoney("1.00"))
		assert.ErrorIs(t, err, apperrors.ErrIllegalTransition, st)
	}
}

func TestApplyPayment_OnPaidInvoiceAlwaysExceedsBalance(t *testing.T) {
	inv := invoiceInAccounting("100.00")
	inv.Status = domain.StatusPaid

	_, err := workflow.ApplyPayment(inv, []domain.Payment{processed("p1", "100.00")}, domain.MustParseMoney("0.01"))

	assert.ErrorIs(t, err, apperrors.ErrAmountExceedsBalance)
}

func TestReversePayment(t *testing.T) {
	inv := invoiceInAccounting("100.00")
	inv.Status = domain.StatusPaid
	p1, p2 := processed("p1", "60.00"), processed("p2", "40.00")

	d, err := workflow.ReversePayment(inv, []domain.Payment{p1, p2}, p2)

	require.NoError(t, err)
	assert.Equal(t, "40.00", d.BalanceDue.String())
	assert.Equal(t, "60.00", d.TotalPaid.String())
	assert.Equal(t, 1, d.ProcessedPayments)
	assert.Equal(t, domain.StatusSubmittedToAccounting, d.ResultingStatus)
}

func TestReversePayment_LastPaymentLeavesNothingProcessed(t *testing.T) {
	inv := invoiceInAccounting("100.00")
	inv.Status = domain.StatusPaid
	p1 := processed("p1", "100.00")

	d, err := workflow.ReversePayment(inv, []domain.Payment{p1}, p1)

	require.NoError(t, err)
	assert.Equal(t, "100.00", d.BalanceDue.String())
	assert.Equal(t, 0, d.ProcessedPayments)
	assert.Equal(t, domain.StatusSubmittedToAccounting, d.ResultingStatus)
}

func TestReversePayment_Errors(t *testing.T) {
	inv := invoiceInAccounting("100.00")
	p1 := processed("p1", "60.00")

	t.Run("already reversed", func(t *testing.T) {
		reversed := p1
		reversed.Status = domain.PaymentReversed
		_, err := workflow.ReversePayment(inv, nil, reversed)
		assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
	})

	t.Run("belongs to another invoice", func(t *testing.T) {
		foreign := p1
		foreign.InvoiceID = "inv_2"
		_, err := workflow.ReversePayment(inv, []domain.Payment{p1}, foreign)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("processed but missing from ledger", func(t *testing.T) {
		_, err := workflow.ReversePayment(inv, nil, p1)
		assert.ErrorIs(t, err, apperrors.ErrInvariantViolation)
	})
}

func TestCheckInvariants(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.InvoiceStatus
		payments []domain.Payment
		wantErr  bool
	}{
		{name: "open invoice without payments", status: domain.StatusSubmittedToAccounting},
		{name: "open invoice with partial payment", status: domain.StatusSubmittedToAccounting, payments: []domain.Payment{processed("p1", "10.00")}},
		{name: "paid invoice fully settled", status: domain.StatusPaid, payments: []domain.Payment{processed("p1", "100.00")}},
		{name: "paid with balance outstanding", status: domain.StatusPaid, payments: []domain.Payment{processed("p1", "99.99")}, wantErr: true},
		{name: "settled but not marked paid", status: domain.StatusSubmittedToAccounting, payments: []domain.Payment{processed("p1", "100.00")}, wantErr: true},
		{name: "overpaid", status: domain.StatusPaid, payments: []domain.Payment{processed("p1", "100.00"), processed("p2", "0.01")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := invoiceInAccounting("100.00")
			inv.Status = tt.status
			err := workflow.CheckInvariants(inv, tt.payments)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvariantViolation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckInvariants_ZeroTotalDraftIsNotPaid(t *testing.T) {
	inv := domain.Invoice{InvoiceID: "inv_1", Status: domain.StatusPendingSubmission}
	assert.NoError(t, workflow.CheckInvariants(inv, nil))
}
