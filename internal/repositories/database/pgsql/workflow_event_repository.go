package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	"github.com/SscSPs/vendor_invoicing/internal/models"
	"github.com/SscSPs/vendor_invoicing/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	workflowEventsTable = "invoice_workflow_events"

	selectWorkflowEventFields = `
		event_id, event_type, invoice_id, payment_id, actor_id, actor_role,
		command, from_status, to_status, occurred_at, payload
	`

	// Redelivery of the same event is a no-op.
	insertWorkflowEventQuery = `
		INSERT INTO ` + workflowEventsTable + ` (` + selectWorkflowEventFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (event_id) DO NOTHING
	`

	listWorkflowEventsQuery = `
		SELECT ` + selectWorkflowEventFields + `
		FROM ` + workflowEventsTable + `
		WHERE invoice_id = $1
		ORDER BY occurred_at, event_id
	`
)

// PgxWorkflowEventRepository persists the audit trail. It is both an audit
// sink and the reader behind the invoice history endpoint.
type PgxWorkflowEventRepository struct {
	BaseRepository
}

// NewWorkflowEventRepository creates the Postgres audit trail.
func NewWorkflowEventRepository(pool *pgxpool.Pool) *PgxWorkflowEventRepository {
	return &PgxWorkflowEventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsevents.AuditSink         = (*PgxWorkflowEventRepository)(nil)
	_ portsrepo.WorkflowEventReader = (*PgxWorkflowEventRepository)(nil)
)

// Record appends one event to the audit table.
func (r *PgxWorkflowEventRepository) Record(ctx context.Context, event domain.WorkflowEvent) error {
	m, err := mapping.ToModelWorkflowEvent(event)
	if err != nil {
		return err
	}
	_, err = r.Pool.Exec(ctx, insertWorkflowEventQuery,
		m.EventID,
		m.EventType,
		m.InvoiceID,
		m.PaymentID,
		m.ActorID,
		m.ActorRole,
		m.Command,
		m.FromStatus,
		m.ToStatus,
		m.OccurredAt,
		m.Payload,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to record %s event for invoice %s: %w", apperrors.ErrPersistence, m.EventType, m.InvoiceID, err)
	}
	return nil
}

// ListEventsByInvoice retrieves an invoice's workflow events, oldest first.
func (r *PgxWorkflowEventRepository) ListEventsByInvoice(ctx context.Context, invoiceID string) ([]domain.WorkflowEvent, error) {
	rows, err := r.Pool.Query(ctx, listWorkflowEventsQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query workflow events: %w", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	events := make([]domain.WorkflowEvent, 0)
	for rows.Next() {
		var m models.WorkflowEvent
		if err := rows.Scan(
			&m.EventID,
			&m.EventType,
			&m.InvoiceID,
			&m.PaymentID,
			&m.ActorID,
			&m.ActorRole,
			&m.Command,
			&m.FromStatus,
			&m.ToStatus,
			&m.OccurredAt,
			&m.Payload,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan workflow event: %w", apperrors.ErrPersistence, err)
		}
		event, err := mapping.ToDomainWorkflowEvent(m)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating workflow events: %w", apperrors.ErrPersistence, err)
	}
	return events, nil
}
