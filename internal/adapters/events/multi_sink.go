// Package events holds the delivery adapters for committed workflow events.
package events

import (
	"context"
	"errors"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
)

// MultiSink delivers every event to all of its sinks. One sink failing does
// not stop delivery to the others.
type MultiSink struct {
	sinks []portsevents.AuditSink
}

var _ portsevents.AuditSink = (*MultiSink)(nil)

func NewMultiSink(sinks ...portsevents.AuditSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Record returns every sink error joined together.
func (m *MultiSink) Record(ctx context.Context, event domain.WorkflowEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len is the number of sinks.
func (m *MultiSink) Len() int {
	return len(m.sinks)
}
