package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
)

// LogSink writes each workflow event as a structured log line.
type LogSink struct {
	logger *slog.Logger
}

var _ portsevents.AuditSink = (*LogSink)(nil)

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With(slog.String("component", "workflow_events"))}
}

func (l *LogSink) Record(ctx context.Context, event domain.WorkflowEvent) error {
	attrs := []any{
		slog.String("event_id", event.EventID),
		slog.String("event_type", string(event.EventType)),
		slog.String("invoice_id", event.InvoiceID),
		slog.String("actor_id", event.ActorID),
		slog.String("actor_role", string(event.ActorRole)),
		slog.String("command", event.Command),
		slog.String("from_status", string(event.FromStatus)),
		slog.String("to_status", string(event.ToStatus)),
		slog.Time("timestamp", event.Timestamp),
	}
	if event.PaymentID != nil {
		attrs = append(attrs, slog.String("payment_id", *event.PaymentID))
	}
	if len(event.Payload) > 0 {
		attrs = append(attrs, slog.Any("payload", event.Payload))
	}
	l.logger.InfoContext(ctx, "Workflow event", attrs...)
	return nil
}
