package models

import "time"

// WorkflowEvent is the row shape of invoice_workflow_events. Payload is raw JSONB.
type WorkflowEvent struct {
	EventID    string    `db:"event_id"`
	EventType  string    `db:"event_type"`
	InvoiceID  string    `db:"invoice_id"`
	PaymentID  *string   `db:"payment_id"`
	ActorID    string    `db:"actor_id"`
	ActorRole  string    `db:"actor_role"`
	Command    string    `db:"command"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	OccurredAt time.Time `db:"occurred_at"`
	Payload    []byte    `db:"payload"`
}
