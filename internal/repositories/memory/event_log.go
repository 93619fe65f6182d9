package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
)

// EventLog is an in-process audit trail: a sink that can also be read back.
type EventLog struct {
	mu        sync.RWMutex
	byInvoice map[string][]domain.WorkflowEvent
}

func NewEventLog() *EventLog {
	return &EventLog{byInvoice: make(map[string][]domain.WorkflowEvent)}
}

var (
	_ portsevents.AuditSink         = (*EventLog)(nil)
	_ portsrepo.WorkflowEventReader = (*EventLog)(nil)
)

func (l *EventLog) Record(_ context.Context, event domain.WorkflowEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.byInvoice[event.InvoiceID] = append(l.byInvoice[event.InvoiceID], event)
	return nil
}

func (l *EventLog) ListEventsByInvoice(_ context.Context, invoiceID string) ([]domain.WorkflowEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]domain.WorkflowEvent{}, l.byInvoice[invoiceID]...), nil
}
