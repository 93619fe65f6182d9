// Package events defines where committed workflow events are delivered.
package events

import (
	"context"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
)

// AuditSink receives one WorkflowEvent per committed command.
// Record is called after the commit; its error never undoes the command.
type AuditSink interface {
	Record(ctx context.Context, event domain.WorkflowEvent) error
}

// SinkFunc adapts a function to AuditSink.
type SinkFunc func(ctx context.Context, event domain.WorkflowEvent) error

// Record calls f.
func (f SinkFunc) Record(ctx context.Context, event domain.WorkflowEvent) error {
	return f(ctx, event)
}
