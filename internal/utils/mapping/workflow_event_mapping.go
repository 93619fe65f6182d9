package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/SscSPs/vendor_invoicing/internal/models"
)

// ToModelWorkflowEvent converts a domain WorkflowEvent to a model row, encoding the payload as JSON.
func ToModelWorkflowEvent(d domain.WorkflowEvent) (models.WorkflowEvent, error) {
	payload := []byte("{}")
	if len(d.Payload) > 0 {
		var err error
		payload, err = json.Marshal(d.Payload)
		if err != nil {
			return models.WorkflowEvent{}, fmt.Errorf("failed to encode payload of event %s: %w", d.EventID, err)
		}
	}
	return models.WorkflowEvent{
		EventID:    d.EventID,
		EventType:  string(d.EventType),
		InvoiceID:  d.InvoiceID,
		PaymentID:  d.PaymentID,
		ActorID:    d.ActorID,
		ActorRole:  string(d.ActorRole),
		Command:    d.Command,
		FromStatus: string(d.FromStatus),
		ToStatus:   string(d.ToStatus),
		OccurredAt: d.Timestamp,
		Payload:    payload,
	}, nil
}

// ToDomainWorkflowEvent converts a model row to a domain WorkflowEvent.
func ToDomainWorkflowEvent(m models.WorkflowEvent) (domain.WorkflowEvent, error) {
	var payload map[string]any
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			return domain.WorkflowEvent{}, fmt.Errorf("failed to decode payload of event %s: %w", m.EventID, err)
		}
	}
	if len(payload) == 0 {
		payload = nil
	}
	return domain.WorkflowEvent{
		EventID:    m.EventID,
		EventType:  domain.EventType(m.EventType),
		InvoiceID:  m.InvoiceID,
		PaymentID:  m.PaymentID,
		ActorID:    m.ActorID,
		ActorRole:  domain.Role(m.ActorRole),
		Command:    m.Command,
		FromStatus: domain.InvoiceStatus(m.FromStatus),
		ToStatus:   domain.InvoiceStatus(m.ToStatus),
		Timestamp:  m.OccurredAt,
		Payload:    payload,
	}, nil
}
