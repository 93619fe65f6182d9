package workflow

import (
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
)

// Decision is the ledger outcome of a payment command.
type Decision struct {
	TotalPaid         domain.Money
	BalanceDue        domain.Money
	ProcessedPayments int
	ResultingStatus   domain.InvoiceStatus
}

// Snapshot returns the guard snapshot for inv with this decision's ledger figures.
func (d Decision) Snapshot(inv domain.Invoice) Snapshot {
	snap := SnapshotOf(inv, nil)
	snap.BalanceDue = d.BalanceDue
	snap.ProcessedPayments = d.ProcessedPayments
	return snap
}

// SnapshotOf builds the guard snapshot from the stored invoice and its processed payments.
func SnapshotOf(inv domain.Invoice, processed []domain.Payment) Snapshot {
	return Snapshot{
		VendorID:          inv.VendorID,
		LineItemCount:     len(inv.LineItems),
		Total:             inv.Total,
		BalanceDue:        BalanceDue(inv, processed),
		ProcessedPayments: countProcessed(processed),
	}
}

// TotalPaid sums the processed payments. Pending and reversed rows are ignored.
func TotalPaid(payments []domain.Payment) domain.Money {
	paid := domain.ZeroMoney
	for _, p := range payments {
		if p.IsProcessed() {
			paid = paid.Add(p.Amount)
		}
	}
	return paid
}

// BalanceDue is total minus the processed payments.
func BalanceDue(inv domain.Invoice, payments []domain.Payment) domain.Money {
	return inv.Total.Sub(TotalPaid(payments))
}

// Project attaches the derived ledger figures to inv.
func Project(inv domain.Invoice, payments []domain.Payment) domain.InvoiceProjection {
	paid := TotalPaid(payments)
	return domain.InvoiceProjection{
		Invoice:    inv,
		TotalPaid:  paid,
		BalanceDue: inv.Total.Sub(paid),
	}
}

// ApplyPayment decides the effect of recording amount against inv given its
// currently processed payments. An overpayment is rejected, never clamped.
func ApplyPayment(inv domain.Invoice, processed []domain.Payment, amount domain.Money) (Decision, error) {
	if inv.Status != domain.StatusSubmittedToAccounting && inv.Status != domain.StatusPaid {
		return Decision{}, apperrors.NewIllegalTransition(string(inv.Status), string(domain.RoleAccountant), string(CommandRecordPayment))
	}
	if !amount.IsPositive() {
		return Decision{}, fmt.Errorf("%w: payment amount must be greater than zero", apperrors.ErrValidation)
	}

	newPaid := TotalPaid(processed).Add(amount)
	if newPaid.GreaterThan(inv.Total) {
		return Decision{}, fmt.Errorf("%w: payment %s exceeds balance due %s", apperrors.ErrAmountExceedsBalance, amount, BalanceDue(inv, processed))
	}

	d := Decision{
		TotalPaid:         newPaid,
		BalanceDue:        inv.Total.Sub(newPaid),
		ProcessedPayments: countProcessed(processed) + 1,
	}
	d.ResultingStatus = SettledStatus(Snapshot{BalanceDue: d.BalanceDue, ProcessedPayments: d.ProcessedPayments})
	return d, nil
}

// ReversePayment decides the effect of reversing target. Figures are
// recomputed from the processed payments that remain.
func ReversePayment(inv domain.Invoice, processed []domain.Payment, target domain.Payment) (Decision, error) {
	if target.InvoiceID != inv.InvoiceID {
		return Decision{}, fmt.Errorf("%w: payment %s does not belong to invoice %s", apperrors.ErrValidation, target.PaymentID, inv.InvoiceID)
	}
	if !target.IsProcessed() {
		return Decision{}, fmt.Errorf("%w: payment %s is %s, only processed payments can be reversed",
			apperrors.NewIllegalTransition(string(inv.Status), string(domain.RoleAccountant), string(CommandReversePayment)), target.PaymentID, target.Status)
	}
	if inv.Status != domain.StatusSubmittedToAccounting && inv.Status != domain.StatusPaid {
		return Decision{}, apperrors.NewIllegalTransition(string(inv.Status), string(domain.RoleAccountant), string(CommandReversePayment))
	}

	remaining := make([]domain.Payment, 0, len(processed))
	found := false
	for _, p := range processed {
		if p.PaymentID == target.PaymentID {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return Decision{}, fmt.Errorf("%w: processed payment %s missing from ledger", apperrors.ErrInvariantViolation, target.PaymentID)
	}

	d := Decision{
		TotalPaid:         TotalPaid(remaining),
		ProcessedPayments: countProcessed(remaining),
	}
	d.BalanceDue = inv.Total.Sub(d.TotalPaid)
	if d.BalanceDue.IsNegative() {
		return Decision{}, fmt.Errorf("%w: balance due %s after reversal", apperrors.ErrInvariantViolation, d.BalanceDue)
	}
	d.ResultingStatus = SettledStatus(Snapshot{BalanceDue: d.BalanceDue, ProcessedPayments: d.ProcessedPayments})
	return d, nil
}

// CheckInvariants verifies the ledger rules for an invoice about to be persisted.
// An invoice is paid exactly when its balance is zero with at least one
// processed payment.
func CheckInvariants(inv domain.Invoice, processed []domain.Payment) error {
	if !inv.Total.Equal(inv.Subtotal.Add(inv.TaxAmount)) {
		return fmt.Errorf("%w: total %s != subtotal %s + tax %s", apperrors.ErrInvariantViolation, inv.Total, inv.Subtotal, inv.TaxAmount)
	}
	if inv.Total.IsNegative() {
		return fmt.Errorf("%w: negative total %s", apperrors.ErrInvariantViolation, inv.Total)
	}
	for _, p := range processed {
		if p.InvoiceID != inv.InvoiceID {
			return fmt.Errorf("%w: payment %s belongs to invoice %s", apperrors.ErrInvariantViolation, p.PaymentID, p.InvoiceID)
		}
		if !p.Amount.IsPositive() {
			return fmt.Errorf("%w: payment %s has non-positive amount", apperrors.ErrInvariantViolation, p.PaymentID)
		}
	}

	balance := BalanceDue(inv, processed)
	if balance.IsNegative() {
		return fmt.Errorf("%w: invoice %s overpaid by %s", apperrors.ErrInvariantViolation, inv.InvoiceID, domain.ZeroMoney.Sub(balance))
	}
	settled := balance.IsZero() && countProcessed(processed) > 0
	if settled != (inv.Status == domain.StatusPaid) {
		return fmt.Errorf("%w: status %s with balance due %s and %d processed payments",
			apperrors.ErrInvariantViolation, inv.Status, balance, countProcessed(processed))
	}
	return nil
}

func countProcessed(payments []domain.Payment) int {
	n := 0
	for _, p := range payments {
		if p.IsProcessed() {
			n++
		}
	}
	return n
}
