package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceMapping_KeepsCentsAndProvenance(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	role := domain.RoleAdmin
	reason := "wrong PO"
	inv := domain.Invoice{
		InvoiceID:       "inv_1",
		VendorID:        "v1",
		InvoiceNumber:   "INV-001",
		Subtotal:        domain.MustParseMoney("140.00"),
		TaxAmount:       domain.MustParseMoney("10.00"),
		Total:           domain.MustParseMoney("150.00"),
		Status:          domain.StatusRejectedByAdmin,
		RejectionActor:  &role,
		RejectionReason: &reason,
		Version:         3,
		AuditFields:     domain.AuditFields{CreatedAt: now, CreatedBy: "v1", LastUpdatedAt: now, LastUpdatedBy: "adm"},
	}
	items := []domain.LineItem{{
		LineItemID:  "li_1",
		InvoiceID:   "inv_1",
		Position:    1,
		Description: "Widgets",
		Quantity:    decimal.NewFromInt(2),
		UnitPrice:   domain.MustParseMoney("70.00"),
		Amount:      domain.MustParseMoney("140.00"),
	}}

	model := ToModelInvoice(inv)
	assert.Equal(t, "150", model.Total.String())
	require.NotNil(t, model.RejectionActor)
	assert.Equal(t, "admin", *model.RejectionActor)

	back := ToDomainInvoice(model, ToModelLineItems(items))
	assert.True(t, back.Total.Equal(inv.Total))
	assert.Equal(t, inv.Status, back.Status)
	assert.Equal(t, &role, back.RejectionActor)
	assert.Equal(t, int64(3), back.Version)
	require.Len(t, back.LineItems, 1)
	assert.True(t, back.LineItems[0].Amount.Equal(items[0].Amount))
}

func TestWorkflowEventMapping_Payload(t *testing.T) {
	event := domain.WorkflowEvent{
		EventID:   "evt_1",
		EventType: domain.EventInvoiceCreated,
		InvoiceID: "inv_1",
		ActorID:   "v1",
		ActorRole: domain.RoleVendor,
		Command:   "create",
		ToStatus:  domain.StatusPendingSubmission,
		Timestamp: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	model, err := ToModelWorkflowEvent(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(model.Payload))

	back, err := ToDomainWorkflowEvent(model)
	require.NoError(t, err)
	assert.Equal(t, event, back)

	event.Payload = map[string]any{"reason": "duplicate"}
	model, err = ToModelWorkflowEvent(event)
	require.NoError(t, err)
	back, err = ToDomainWorkflowEvent(model)
	require.NoError(t, err)
	assert.Equal(t, "duplicate", back.Payload["reason"])
}

func TestWorkflowEventMapping_BadPayload(t *testing.T) {
	model, err := ToModelWorkflowEvent(domain.WorkflowEvent{EventID: "evt_1"})
	require.NoError(t, err)
	model.Payload = []byte("{not json")

	_, err = ToDomainWorkflowEvent(model)
	assert.Error(t, err)
}
