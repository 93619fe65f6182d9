package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInvoice(t *testing.T, s *Store, id, vendor, number string, createdAt time.Time) domain.Invoice {
	t.Helper()
	inv := domain.Invoice{
		InvoiceID:     id,
		VendorID:      vendor,
		InvoiceNumber: number,
		Subtotal:      domain.MustParseMoney("100.00"),
		Total:         domain.MustParseMoney("100.00"),
		Status:        domain.StatusSubmittedToAccounting,
		Version:       1,
		AuditFields:   domain.AuditFields{CreatedAt: createdAt},
	}
	require.NoError(t, s.CreateInvoice(context.Background(), inv))
	return inv
}

func TestCreateInvoice_Duplicate(t *testing.T) {
	s := New()
	seedInvoice(t, s, "inv_1", "vendor_1", "INV-1", time.Now())

	err := s.CreateInvoice(context.Background(), domain.Invoice{InvoiceID: "inv_2", VendorID: "vendor_1", InvoiceNumber: "INV-1"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	// Another vendor may reuse the number
	err = s.CreateInvoice(context.Background(), domain.Invoice{InvoiceID: "inv_3", VendorID: "vendor_2", InvoiceNumber: "INV-1"})
	assert.NoError(t, err)
}

func TestFindInvoiceByID_ReturnsCopy(t *testing.T) {
	s := New()
	seedInvoice(t, s, "inv_1", "vendor_1", "INV-1", time.Now())

	inv, err := s.FindInvoiceByID(context.Background(), "inv_1")
	require.NoError(t, err)
	inv.Status = domain.StatusPaid

	again, err := s.FindInvoiceByID(context.Background(), "inv_1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmittedToAccounting, again.Status)

	_, err = s.FindInvoiceByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWithInvoiceLock_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedInvoice(t, s, "inv_1", "vendor_1", "INV-1", time.Now())

	err := s.WithInvoiceLock(ctx, "inv_1", func(ctx context.Context, uow portsrepo.InvoiceUnitOfWork) error {
		inv, err := uow.LoadInvoice(ctx, "inv_1")
		require.NoError(t, err)
		require.NoError(t, uow.InsertPayment(ctx, domain.Payment{
			PaymentID: "pay_1", InvoiceID: "inv_1", Amount: domain.MustParseMoney("100.00"), Status: domain.PaymentProcessed,
		}))
		inv.Status = domain.StatusPaid
		require.NoError(t, uow.SaveInvoice(ctx, inv))
		assert.Equal(t, int64(2), inv.Version)

		// Reads inside the unit of work see its own writes
		processed, err := uow.LoadProcessedPayments(ctx, "inv_1")
		require.NoError(t, err)
		assert.Len(t, processed, 1)
		return nil
	})
	require.NoError(t, err)

	inv, err := s.FindInvoiceByID(ctx, "inv_1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, inv.Status)
	assert.Equal(t, int64(2), inv.Version)

	payments, err := s.ListPaymentsByInvoice(ctx, "inv_1")
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestWithInvoiceLock_DiscardsOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedInvoice(t, s, "inv_1", "vendor_1", "INV-1", time.Now())
	boom := errors.New("boom")

	err := s.WithInvoiceLock(ctx, "inv_1", func(ctx context.Context, uow portsrepo.InvoiceUnitOfWork) error {
		inv, _ := uow.LoadInvoice(ctx, "inv_1")
		inv.Status = domain.StatusPaid
		_ = uow.SaveInvoice(ctx, inv)
		_ = uow.InsertPayment(ctx, domain.Payment{PaymentID: "pay_1", InvoiceID: "inv_1", Amount: domain.MustParseMoney("1.00"), Status: domain.PaymentProcessed})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	inv, err := s.FindInvoiceByID(ctx, "inv_1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmittedToAccounting, inv.Status)
	assert.Equal(t, int64(1), inv.Version)
	payments, _ := s.ListPaymentsByInvoice(ctx, "inv_1")
	assert.Empty(t, payments)
}

func TestWithInvoiceLock_BusyAfterTimeout(t *testing.T) {
	ctx := context.Background()
	s := New(WithLockTimeout(20 * time.Millisecond))
	seedInvoice(t, s, "inv_1", "vendor_1", "INV-1", time.Now())

	holding := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.WithInvoiceLock(ctx, "inv_1", func(context.Context, portsrepo.InvoiceUnitOfWork) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	err := s.WithInvoiceLock(ctx, "inv_1", func(context.Context, portsrepo.InvoiceUnitOfWork) error {
		t.Fatal("must not run while the lock is held")
		return nil
	})
	assert.ErrorIs(t, err, apperrors.ErrBusy)

	// A different invoice is not blocked
	seedInvoice(t, s, "inv_2", "vendor_1", "INV-2", time.Now())
	assert.NoError(t, s.WithInvoiceLock(ctx, "inv_2", func(context.Context, portsrepo.InvoiceUnitOfWork) error { return nil }))

	close(release)
	wg.Wait()
	assert.Empty(t, s.locks)
}

func TestWithInvoiceLock_ForgetsIdleLocks(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("inv_missing_%d", i)
		err := s.WithInvoiceLock(ctx, id, func(_ context.Context, uow portsrepo.InvoiceUnitOfWork) error {
			_, err := uow.LoadInvoice(ctx, id)
			return err
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	}
	assert.Empty(t, s.locks)

	seedInvoice(t, s, "inv_1", "vendor_1", "INV-1", time.Now())
	var wg sync.WaitGroup
	var mu sync.Mutex
	inside := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.WithInvoiceLock(ctx, "inv_1", func(context.Context, portsrepo.InvoiceUnitOfWork) error {
				mu.Lock()
				inside++
				mu.Unlock()
				return nil
			}))
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, inside)
	assert.Empty(t, s.locks)
}

func TestWithInvoiceLock_CancelledContext(t *testing.T) {
	s := New()
	seedInvoice(t, s, "inv_1", "vendor_1", "INV-1", time.Now())

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.WithInvoiceLock(context.Background(), "inv_1", func(context.Context, portsrepo.InvoiceUnitOfWork) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.WithInvoiceLock(ctx, "inv_1", func(context.Context, portsrepo.InvoiceUnitOfWork) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrBusy)

	close(release)
	<-done
}

func TestListInvoices_Pagination(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	seedInvoice(t, s, "inv_a", "vendor_1", "A", base)
	seedInvoice(t, s, "inv_b", "vendor_1", "B", base.Add(time.Hour))
	seedInvoice(t, s, "inv_c", "vendor_1", "C", base.Add(2*time.Hour))
	seedInvoice(t, s, "inv_x", "vendor_2", "X", base.Add(3*time.Hour))

	vendor := "vendor_1"
	filter := portsrepo.InvoiceFilter{VendorID: &vendor}

	page1, next, err := s.ListInvoices(ctx, filter, 2, nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	require.Len(t, page1, 2)
	assert.Equal(t, "inv_c", page1[0].InvoiceID)
	assert.Equal(t, "inv_b", page1[1].InvoiceID)

	page2, next, err := s.ListInvoices(ctx, filter, 2, next)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, page2, 1)
	assert.Equal(t, "inv_a", page2[0].InvoiceID)

	bad := "%%%"
	_, _, err = s.ListInvoices(ctx, filter, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestProcessedTotalsByInvoiceIDs(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedInvoice(t, s, "inv_1", "vendor_1", "INV-1", time.Now())

	require.NoError(t, s.WithInvoiceLock(ctx, "inv_1", func(ctx context.Context, uow portsrepo.InvoiceUnitOfWork) error {
		require.NoError(t, uow.InsertPayment(ctx, domain.Payment{PaymentID: "p1", InvoiceID: "inv_1", Amount: domain.MustParseMoney("30.00"), Status: domain.PaymentProcessed}))
		require.NoError(t, uow.InsertPayment(ctx, domain.Payment{PaymentID: "p2", InvoiceID: "inv_1", Amount: domain.MustParseMoney("20.00"), Status: domain.PaymentReversed}))
		return nil
	}))

	totals, err := s.ProcessedTotalsByInvoiceIDs(ctx, []string{"inv_1", "inv_missing"})
	require.NoError(t, err)
	assert.Equal(t, "30.00", totals["inv_1"].String())
	_, ok := totals["inv_missing"]
	assert.False(t, ok)
}

func TestEventLog(t *testing.T) {
	ctx := context.Background()
	log := NewEventLog()
	require.NoError(t, log.Record(ctx, domain.WorkflowEvent{EventID: "e1", InvoiceID: "inv_1"}))
	require.NoError(t, log.Record(ctx, domain.WorkflowEvent{EventID: "e2", InvoiceID: "inv_1"}))
	require.NoError(t, log.Record(ctx, domain.WorkflowEvent{EventID: "e3", InvoiceID: "inv_2"}))

	events, err := log.ListEventsByInvoice(ctx, "inv_1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].EventID)
	assert.Equal(t, "e2", events[1].EventID)
}
