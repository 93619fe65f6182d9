package domain

import "time"

// EventType names the notification-worthy outcome of a workflow command.
type EventType string

const (
	EventInvoiceCreated     EventType = "InvoiceCreated"
	EventInvoiceEdited      EventType = "InvoiceEdited"
	EventInvoiceSubmitted   EventType = "InvoiceSubmitted"
	EventInvoiceApproved    EventType = "InvoiceApproved"
	EventInvoiceRejected    EventType = "InvoiceRejected"
	EventInvoiceResubmitted EventType = "InvoiceResubmitted"
	EventPaymentRecorded    EventType = "PaymentRecorded"
	EventInvoicePaid        EventType = "InvoicePaid"
	EventPaymentReversed    EventType = "PaymentReversed"
)

// WorkflowEvent is the single audit + notification record emitted after a
// command commits.
type WorkflowEvent struct {
	EventID    string         `json:"eventID"`
	EventType  EventType      `json:"eventType"`
	InvoiceID  string         `json:"invoiceID"`
	PaymentID  *string        `json:"paymentID,omitempty"`
	ActorID    string         `json:"actorID"`
	ActorRole  Role           `json:"actorRole"`
	Command    string         `json:"command"`
	FromStatus InvoiceStatus  `json:"fromStatus"`
	ToStatus   InvoiceStatus  `json:"toStatus"`
	Timestamp  time.Time      `json:"timestamp"`
	Payload    map[string]any `json:"payload,omitempty"`
}
