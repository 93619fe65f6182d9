// Package memory is an in-process invoice store. It honours the same locking
// and all-or-nothing commit contract as the Postgres store and backs the
// service when no database is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	"github.com/SscSPs/vendor_invoicing/internal/utils/pagination"
)

const defaultLockTimeout = 5 * time.Second

type Store struct {
	mu sync.RWMutex

	invoices map[string]*domain.Invoice

	// Payments, plus per-invoice IDs in insertion order
	payments  map[string]*domain.Payment
	byInvoice map[string][]string

	locksMu     sync.Mutex
	locks       map[string]*invoiceLock
	lockTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout bounds how long WithInvoiceLock waits before returning ErrBusy.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		invoices:    make(map[string]*domain.Invoice),
		payments:    make(map[string]*domain.Payment),
		byInvoice:   make(map[string][]string),
		locks:       make(map[string]*invoiceLock),
		lockTimeout: defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portsrepo.InvoiceStore = (*Store)(nil)

// Invoice store implementation

func (s *Store) CreateInvoice(_ context.Context, inv domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.InvoiceID]; exists {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, inv.InvoiceID)
	}
	if s.numberTakenLocked(inv.VendorID, inv.InvoiceNumber, inv.InvoiceID) {
		return fmt.Errorf("%w: invoice number %q already used by vendor", apperrors.ErrDuplicate, inv.InvoiceNumber)
	}
	s.invoices[inv.InvoiceID] = cloneInvoice(&inv)
	return nil
}

func (s *Store) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if inv, ok := s.invoices[invoiceID]; ok {
		return cloneInvoice(inv), nil
	}
	return nil, apperrors.NewNotFoundError("invoice not found: " + invoiceID)
}

func (s *Store) ListInvoices(_ context.Context, filter portsrepo.InvoiceFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	var (
		cursorAt  time.Time
		cursorID  string
		hasCursor bool
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursorAt, cursorID, hasCursor = at, id, true
	}

	s.mu.RLock()
	matched := make([]*domain.Invoice, 0)
	for _, inv := range s.invoices {
		if filter.VendorID != nil && inv.VendorID != *filter.VendorID {
			continue
		}
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		if hasCursor && !pagination.After(inv.CreatedAt, inv.InvoiceID, cursorAt, cursorID) {
			continue
		}
		matched = append(matched, inv)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].InvoiceID > matched[j].InvoiceID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	var next *string
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
		last := matched[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.InvoiceID)
		next = &token
	}

	result := make([]domain.Invoice, len(matched))
	for i, inv := range matched {
		result[i] = *cloneInvoice(inv)
	}
	return result, next, nil
}

// Payment store implementation

func (s *Store) FindPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.payments[paymentID]; ok {
		return clonePayment(p), nil
	}
	return nil, apperrors.NewNotFoundError("payment not found: " + paymentID)
}

func (s *Store) ListPaymentsByInvoice(_ context.Context, invoiceID string) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byInvoice[invoiceID]
	result := make([]domain.Payment, 0, len(ids))
	for _, id := range ids {
		result = append(result, *clonePayment(s.payments[id]))
	}
	return result, nil
}

func (s *Store) ProcessedTotalsByInvoiceIDs(_ context.Context, invoiceIDs []string) (map[string]domain.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]domain.Money)
	for _, invoiceID := range invoiceIDs {
		for _, id := range s.byInvoice[invoiceID] {
			if p := s.payments[id]; p.IsProcessed() {
				totals[invoiceID] = totals[invoiceID].Add(p.Amount)
			}
		}
	}
	return totals, nil
}

// Locking

// invoiceLock is a one-slot semaphore shared by every caller currently
// waiting on or holding the same invoice. It is dropped when refs reaches zero.
type invoiceLock struct {
	sem  chan struct{}
	refs int
}

func (s *Store) acquireRef(invoiceID string) *invoiceLock {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l, ok := s.locks[invoiceID]
	if !ok {
		l = &invoiceLock{sem: make(chan struct{}, 1)}
		s.locks[invoiceID] = l
	}
	l.refs++
	return l
}

func (s *Store) releaseRef(invoiceID string, l *invoiceLock) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(s.locks, invoiceID)
	}
}

// WithInvoiceLock runs fn while holding the invoice's semaphore. fn's writes
// are buffered and applied together only if fn returns nil.
func (s *Store) WithInvoiceLock(ctx context.Context, invoiceID string, fn func(ctx context.Context, uow portsrepo.InvoiceUnitOfWork) error) error {
	l := s.acquireRef(invoiceID)
	defer s.releaseRef(invoiceID, l)

	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()

	select {
	case l.sem <- struct{}{}:
	case <-timer.C:
		return fmt.Errorf("%w: invoice %s still locked after %s", apperrors.ErrBusy, invoiceID, s.lockTimeout)
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", apperrors.ErrBusy, ctx.Err())
	}
	defer func() { <-l.sem }()

	uow := &unitOfWork{store: s, invoiceID: invoiceID, updated: make(map[string]domain.Payment)}
	if err := fn(ctx, uow); err != nil {
		return err
	}
	return s.commit(uow)
}

func (s *Store) commit(u *unitOfWork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.invoice != nil {
		current, ok := s.invoices[u.invoice.InvoiceID]
		if !ok {
			return fmt.Errorf("%w: invoice %s vanished before commit", apperrors.ErrPersistence, u.invoice.InvoiceID)
		}
		if current.Version != u.invoice.Version-1 {
			return fmt.Errorf("%w: invoice %s version %d changed underneath to %d", apperrors.ErrPersistence, u.invoice.InvoiceID, u.invoice.Version-1, current.Version)
		}
		s.invoices[u.invoice.InvoiceID] = u.invoice
	}
	for i := range u.inserted {
		p := u.inserted[i]
		s.payments[p.PaymentID] = &p
		s.byInvoice[p.InvoiceID] = append(s.byInvoice[p.InvoiceID], p.PaymentID)
	}
	for id, p := range u.updated {
		if _, ok := s.payments[id]; ok {
			updated := p
			s.payments[id] = &updated
		}
	}
	return nil
}

func (s *Store) numberTakenLocked(vendorID, number, exceptID string) bool {
	for id, other := range s.invoices {
		if id != exceptID && other.VendorID == vendorID && other.InvoiceNumber == number {
			return true
		}
	}
	return false
}
