package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
)

// unitOfWork buffers writes made under one invoice lock. Reads see the
// buffered writes layered over committed state.
type unitOfWork struct {
	store     *Store
	invoiceID string

	invoice  *domain.Invoice
	inserted []domain.Payment
	updated  map[string]domain.Payment
}

var _ portsrepo.InvoiceUnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) LoadInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if u.invoice != nil && u.invoice.InvoiceID == invoiceID {
		return cloneInvoice(u.invoice), nil
	}
	return u.store.FindInvoiceByID(ctx, invoiceID)
}

func (u *unitOfWork) LoadProcessedPayments(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	committed, err := u.store.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	all := append(committed, u.inserted...)

	result := make([]domain.Payment, 0, len(all))
	for _, p := range all {
		if p.InvoiceID != invoiceID {
			continue
		}
		if pending, ok := u.updated[p.PaymentID]; ok {
			p = pending
		}
		if p.IsProcessed() {
			result = append(result, *clonePayment(&p))
		}
	}
	return result, nil
}

func (u *unitOfWork) LoadPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if p, ok := u.updated[paymentID]; ok {
		return clonePayment(&p), nil
	}
	for i := range u.inserted {
		if u.inserted[i].PaymentID == paymentID {
			return clonePayment(&u.inserted[i]), nil
		}
	}
	p, err := u.store.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.InvoiceID != u.invoiceID {
		return nil, apperrors.NewNotFoundError("payment not found on invoice: " + paymentID)
	}
	return p, nil
}

func (u *unitOfWork) SaveInvoice(_ context.Context, inv *domain.Invoice) error {
	if inv.InvoiceID != u.invoiceID {
		return fmt.Errorf("%w: invoice %s saved under lock for %s", apperrors.ErrInvariantViolation, inv.InvoiceID, u.invoiceID)
	}

	u.store.mu.RLock()
	current, ok := u.store.invoices[inv.InvoiceID]
	taken := u.store.numberTakenLocked(inv.VendorID, inv.InvoiceNumber, inv.InvoiceID)
	u.store.mu.RUnlock()

	if !ok {
		return apperrors.NewNotFoundError("invoice not found: " + inv.InvoiceID)
	}
	if taken {
		return fmt.Errorf("%w: invoice number %q already used by vendor", apperrors.ErrDuplicate, inv.InvoiceNumber)
	}
	if u.invoice == nil && current.Version != inv.Version {
		return fmt.Errorf("%w: stale invoice version %d, current is %d", apperrors.ErrConflict, inv.Version, current.Version)
	}

	inv.Version = current.Version + 1
	u.invoice = cloneInvoice(inv)
	return nil
}

func (u *unitOfWork) InsertPayment(_ context.Context, p domain.Payment) error {
	if p.InvoiceID != u.invoiceID {
		return fmt.Errorf("%w: payment for %s inserted under lock for %s", apperrors.ErrInvariantViolation, p.InvoiceID, u.invoiceID)
	}
	u.inserted = append(u.inserted, *clonePayment(&p))
	return nil
}

func (u *unitOfWork) UpdatePaymentStatus(ctx context.Context, p domain.Payment) error {
	for i := range u.inserted {
		if u.inserted[i].PaymentID == p.PaymentID {
			u.inserted[i] = *clonePayment(&p)
			return nil
		}
	}
	if _, err := u.LoadPayment(ctx, p.PaymentID); err != nil {
		return err
	}
	u.updated[p.PaymentID] = *clonePayment(&p)
	return nil
}
