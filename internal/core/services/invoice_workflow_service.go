package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vendor_invoicing/internal/core/ports/services"
	"github.com/SscSPs/vendor_invoicing/internal/core/workflow"
	"github.com/SscSPs/vendor_invoicing/internal/dto"
	"github.com/google/uuid"
)

// invoiceWorkflowService coordinates every invoice command: lock, load, decide,
// verify, persist, then emit exactly one event after the commit.
type invoiceWorkflowService struct {
	BaseService
	store portsrepo.InvoiceStore
	sink  portsevents.AuditSink
	now   func() time.Time
}

// WorkflowOption is a functional option for configuring the workflow service
type WorkflowOption func(*invoiceWorkflowService)

// WithAuditSink sets where committed workflow events are delivered
func WithAuditSink(sink portsevents.AuditSink) WorkflowOption {
	return func(s *invoiceWorkflowService) {
		s.sink = sink
	}
}

// WithClock overrides the time source used for provenance timestamps
func WithClock(now func() time.Time) WorkflowOption {
	return func(s *invoiceWorkflowService) {
		s.now = now
	}
}

// NewInvoiceWorkflowService creates the invoice workflow coordinator with the provided options
func NewInvoiceWorkflowService(store portsrepo.InvoiceStore, options ...WorkflowOption) portssvc.InvoiceWorkflowSvcFacade {
	svc := &invoiceWorkflowService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.InvoiceWorkflowSvcFacade = (*invoiceWorkflowService)(nil)

// commandOutcome is what a mutation decided. The coordinator verifies and
// saves invoice and turns the rest into the command's event.
type commandOutcome struct {
	invoice   domain.Invoice
	processed []domain.Payment
	payment   *domain.Payment
	eventType domain.EventType
	payload   map[string]any
	event     domain.WorkflowEvent
}

// mutation computes the command's effect on the locked invoice. Payment rows
// are written through uow; the invoice itself is saved by run.
type mutation func(ctx context.Context, uow portsrepo.InvoiceUnitOfWork, inv *domain.Invoice, processed []domain.Payment, now time.Time) (*commandOutcome, error)

func (s *invoiceWorkflowService) run(ctx context.Context, invoiceID string, actor domain.Actor, cmd workflow.Command, mutate mutation) (*commandOutcome, error) {
	var outcome *commandOutcome

	err := s.store.WithInvoiceLock(ctx, invoiceID, func(ctx context.Context, uow portsrepo.InvoiceUnitOfWork) error {
		inv, err := uow.LoadInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}
		processed, err := uow.LoadProcessedPayments(ctx, invoiceID)
		if err != nil {
			return err
		}

		from := inv.Status
		now := s.now()
		out, err := mutate(ctx, uow, inv, processed, now)
		if err != nil {
			return err
		}

		if err := workflow.CheckInvariants(out.invoice, out.processed); err != nil {
			return err
		}
		out.invoice.Touch(actor.UserID, now)
		if err := uow.SaveInvoice(ctx, &out.invoice); err != nil {
			return err
		}

		out.event = newWorkflowEvent(out.eventType, out.invoice.InvoiceID, actor, cmd, from, out.invoice.Status, now, out.payload)
		if out.payment != nil {
			pid := out.payment.PaymentID
			out.event.PaymentID = &pid
		}
		outcome = out
		return nil
	})
	if err != nil {
		s.logCommandFailure(ctx, err, invoiceID, actor, cmd)
		return nil, err
	}

	s.dispatch(ctx, outcome.event)
	s.LogInfo(ctx, "Invoice command committed",
		slog.String("invoice_id", invoiceID),
		slog.String("command", string(cmd)),
		slog.String("actor_id", actor.UserID),
		slog.String("from_status", string(outcome.event.FromStatus)),
		slog.String("to_status", string(outcome.event.ToStatus)))
	return outcome, nil
}

// dispatch hands a committed event to the sink. Delivery failures are logged
// and never undo the command.
func (s *invoiceWorkflowService) dispatch(ctx context.Context, event domain.WorkflowEvent) {
	if s.sink == nil {
		return
	}
	if err := s.sink.Record(context.WithoutCancel(ctx), event); err != nil {
		s.LogError(ctx, err, "Failed to deliver workflow event",
			slog.String("event_id", event.EventID),
			slog.String("event_type", string(event.EventType)),
			slog.String("invoice_id", event.InvoiceID))
	}
}

func (s *invoiceWorkflowService) logCommandFailure(ctx context.Context, err error, invoiceID string, actor domain.Actor, cmd workflow.Command) {
	attrs := []any{
		slog.String("invoice_id", invoiceID),
		slog.String("command", string(cmd)),
		slog.String("actor_id", actor.UserID),
		slog.String("role", string(actor.Role)),
	}
	if apperrors.IsValidation(err) || errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrBusy) {
		s.LogWarn(ctx, err, "Invoice command rejected", attrs...)
		return
	}
	s.LogError(ctx, err, "Invoice command failed", attrs...)
}

func newWorkflowEvent(eventType domain.EventType, invoiceID string, actor domain.Actor, cmd workflow.Command, from, to domain.InvoiceStatus, at time.Time, payload map[string]any) domain.WorkflowEvent {
	return domain.WorkflowEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		InvoiceID:  invoiceID,
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
		Command:    string(cmd),
		FromStatus: from,
		ToStatus:   to,
		Timestamp:  at,
		Payload:    payload,
	}
}

func project(out *commandOutcome) *domain.InvoiceProjection {
	p := workflow.Project(out.invoice, out.processed)
	return &p
}

// CreateInvoice creates a draft invoice owned by the calling vendor.
func (s *invoiceWorkflowService) CreateInvoice(ctx context.Context, actor domain.Actor, req dto.CreateInvoiceRequest) (*domain.InvoiceProjection, error) {
	if err := s.RequireRole(ctx, actor, domain.RoleVendor); err != nil {
		return nil, err
	}

	now := s.now()
	inv := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		VendorID:      actor.UserID,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		TaxAmount:     req.TaxAmount,
		Status:        domain.StatusPendingSubmission,
		Version:       1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	inv.LineItems = newLineItems(inv.InvoiceID, req.LineItems)
	if err := inv.RecalculateTotals(); err != nil {
		s.LogWarn(ctx, err, "Invoice amounts out of range", slog.String("vendor_id", actor.UserID))
		return nil, err
	}

	if err := inv.Validate(); err != nil {
		s.LogWarn(ctx, err, "Invalid invoice", slog.String("vendor_id", actor.UserID))
		return nil, err
	}
	if err := workflow.CheckInvariants(inv, nil); err != nil {
		s.LogError(ctx, err, "New invoice breaks ledger invariants", slog.String("vendor_id", actor.UserID))
		return nil, err
	}

	if err := s.store.CreateInvoice(ctx, inv); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, err, "Duplicate invoice number", slog.String("invoice_number", inv.InvoiceNumber))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to create invoice", slog.String("vendor_id", actor.UserID))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.dispatch(ctx, newWorkflowEvent(domain.EventInvoiceCreated, inv.InvoiceID, actor, "create", "", inv.Status, now,
		map[string]any{"invoiceNumber": inv.InvoiceNumber, "total": inv.Total.String()}))
	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", inv.InvoiceID), slog.String("vendor_id", actor.UserID))

	p := workflow.Project(inv, nil)
	return &p, nil
}

// EditInvoice replaces the editable fields of a draft.
func (s *invoiceWorkflowService) EditInvoice(ctx context.Context, invoiceID string, actor domain.Actor, req dto.UpdateInvoiceRequest) (*domain.InvoiceProjection, error) {
	out, err := s.run(ctx, invoiceID, actor, workflow.CommandEdit, func(_ context.Context, _ portsrepo.InvoiceUnitOfWork, inv *domain.Invoice, processed []domain.Payment, _ time.Time) (*commandOutcome, error) {
		// Ownership and status first, so nothing about the draft leaks to others.
		if _, err := workflow.Transition(inv.Status, actor, workflow.CommandEdit, workflow.SnapshotOf(*inv, processed)); err != nil {
			return nil, err
		}

		if req.InvoiceNumber != nil {
			inv.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
		}
		if req.TaxAmount != nil {
			inv.TaxAmount = *req.TaxAmount
		}
		if req.LineItems != nil {
			inv.LineItems = newLineItems(inv.InvoiceID, *req.LineItems)
		}
		if err := inv.RecalculateTotals(); err != nil {
			return nil, err
		}
		if err := inv.Validate(); err != nil {
			return nil, err
		}

		next, err := workflow.Transition(inv.Status, actor, workflow.CommandEdit, workflow.SnapshotOf(*inv, processed))
		if err != nil {
			return nil, err
		}
		inv.Status = next

		return &commandOutcome{
			invoice:   *inv,
			processed: processed,
			eventType: domain.EventInvoiceEdited,
			payload:   map[string]any{"total": inv.Total.String(), "lineItems": len(inv.LineItems)},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return project(out), nil
}

// Submit sends a draft to the admin.
func (s *invoiceWorkflowService) Submit(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.InvoiceProjection, error) {
	return s.transition(ctx, invoiceID, actor, workflow.CommandSubmit, "")
}

// Approve forwards a submitted invoice to accounting.
func (s *invoiceWorkflowService) Approve(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.InvoiceProjection, error) {
	return s.transition(ctx, invoiceID, actor, workflow.CommandApprove, "")
}

// Reject sends an invoice back to the vendor with a reason.
func (s *invoiceWorkflowService) Reject(ctx context.Context, invoiceID string, actor domain.Actor, reason string) (*domain.InvoiceProjection, error) {
	return s.transition(ctx, invoiceID, actor, workflow.CommandReject, reason)
}

// Resubmit reopens a rejected invoice as a draft.
func (s *invoiceWorkflowService) Resubmit(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.InvoiceProjection, error) {
	return s.transition(ctx, invoiceID, actor, workflow.CommandResubmit, "")
}

// transition runs one of the commands that only change status and provenance.
func (s *invoiceWorkflowService) transition(ctx context.Context, invoiceID string, actor domain.Actor, cmd workflow.Command, reason string) (*domain.InvoiceProjection, error) {
	out, err := s.run(ctx, invoiceID, actor, cmd, func(_ context.Context, _ portsrepo.InvoiceUnitOfWork, inv *domain.Invoice, processed []domain.Payment, now time.Time) (*commandOutcome, error) {
		snap := workflow.SnapshotOf(*inv, processed)
		snap.Reason = reason
		next, err := workflow.Transition(inv.Status, actor, cmd, snap)
		if err != nil {
			return nil, err
		}

		var payload map[string]any
		switch cmd {
		case workflow.CommandSubmit:
			inv.SubmittedAt = &now
		case workflow.CommandApprove:
			adminID := actor.UserID
			inv.ApprovedByAdminID = &adminID
			inv.ApprovedAt = &now
			inv.SentToAccountingAt = &now
		case workflow.CommandReject:
			role := actor.Role
			trimmed := strings.TrimSpace(reason)
			inv.RejectionActor = &role
			inv.RejectionReason = &trimmed
			payload = map[string]any{"reason": trimmed}
		case workflow.CommandResubmit:
			inv.ClearRejection()
		}
		inv.Status = next

		return &commandOutcome{
			invoice:   *inv,
			processed: processed,
			eventType: transitionEventTypes[cmd],
			payload:   payload,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return project(out), nil
}

var transitionEventTypes = map[workflow.Command]domain.EventType{
	workflow.CommandSubmit:   domain.EventInvoiceSubmitted,
	workflow.CommandApprove:  domain.EventInvoiceApproved,
	workflow.CommandReject:   domain.EventInvoiceRejected,
	workflow.CommandResubmit: domain.EventInvoiceResubmitted,
}

// RecordPayment posts a processed payment against an invoice in accounting.
func (s *invoiceWorkflowService) RecordPayment(ctx context.Context, invoiceID string, actor domain.Actor, req dto.RecordPaymentRequest) (*domain.PaymentResult, error) {
	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	out, err := s.run(ctx, invoiceID, actor, workflow.CommandRecordPayment, func(ctx context.Context, uow portsrepo.InvoiceUnitOfWork, inv *domain.Invoice, processed []domain.Payment, now time.Time) (*commandOutcome, error) {
		if !workflow.Allowed(inv.Status, actor.Role, workflow.CommandRecordPayment) {
			return nil, apperrors.NewIllegalTransition(string(inv.Status), string(actor.Role), string(workflow.CommandRecordPayment))
		}

		decision, err := workflow.ApplyPayment(*inv, processed, req.Amount)
		if err != nil {
			return nil, err
		}
		next, err := workflow.Transition(inv.Status, actor, workflow.CommandRecordPayment, decision.Snapshot(*inv))
		if err != nil {
			return nil, err
		}
		if next != decision.ResultingStatus {
			return nil, fmt.Errorf("%w: ledger settles to %s but workflow moves to %s", apperrors.ErrInvariantViolation, decision.ResultingStatus, next)
		}

		payment := domain.Payment{
			PaymentID:         uuid.NewString(),
			InvoiceID:         inv.InvoiceID,
			Amount:            req.Amount,
			PaymentDate:       req.PaymentDate,
			Method:            method,
			ReferenceNumber:   req.ReferenceNumber,
			Notes:             req.Notes,
			Status:            domain.PaymentProcessed,
			ProcessedByUserID: actor.UserID,
			ProcessedAt:       &now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		if err := uow.InsertPayment(ctx, payment); err != nil {
			return nil, err
		}

		eventType := domain.EventPaymentRecorded
		if next == domain.StatusPaid {
			eventType = domain.EventInvoicePaid
			accountantID := actor.UserID
			inv.PaidAt = &now
			inv.ApprovedByAccountantID = &accountantID
		}
		inv.Status = next

		return &commandOutcome{
			invoice:   *inv,
			processed: append(processed, payment),
			payment:   &payment,
			eventType: eventType,
			payload: map[string]any{
				"amount":     payment.Amount.String(),
				"method":     string(payment.Method),
				"balanceDue": decision.BalanceDue.String(),
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.PaymentResult{Payment: *out.payment, Invoice: *project(out)}, nil
}

// ReversePayment marks a processed payment reversed and recomputes the invoice
// from the payments that remain.
func (s *invoiceWorkflowService) ReversePayment(ctx context.Context, paymentID string, actor domain.Actor) (*domain.PaymentResult, error) {
	target, err := s.store.FindPaymentByID(ctx, paymentID)
	if err != nil {
		s.LogWarn(ctx, err, "Payment lookup failed", slog.String("payment_id", paymentID))
		return nil, err
	}

	out, err := s.run(ctx, target.InvoiceID, actor, workflow.CommandReversePayment, func(ctx context.Context, uow portsrepo.InvoiceUnitOfWork, inv *domain.Invoice, processed []domain.Payment, now time.Time) (*commandOutcome, error) {
		if !workflow.Allowed(inv.Status, actor.Role, workflow.CommandReversePayment) {
			return nil, apperrors.NewIllegalTransition(string(inv.Status), string(actor.Role), string(workflow.CommandReversePayment))
		}

		payment, err := uow.LoadPayment(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		decision, err := workflow.ReversePayment(*inv, processed, *payment)
		if err != nil {
			return nil, err
		}
		next, err := workflow.Transition(inv.Status, actor, workflow.CommandReversePayment, decision.Snapshot(*inv))
		if err != nil {
			return nil, err
		}
		if next != decision.ResultingStatus {
			return nil, fmt.Errorf("%w: ledger settles to %s but workflow moves to %s", apperrors.ErrInvariantViolation, decision.ResultingStatus, next)
		}

		reversedBy := actor.UserID
		payment.Status = domain.PaymentReversed
		payment.ReversedByUserID = &reversedBy
		payment.ReversedAt = &now
		payment.Touch(actor.UserID, now)
		if err := uow.UpdatePaymentStatus(ctx, *payment); err != nil {
			return nil, err
		}

		remaining := make([]domain.Payment, 0, len(processed))
		for _, p := range processed {
			if p.PaymentID != paymentID {
				remaining = append(remaining, p)
			}
		}
		if next != domain.StatusPaid {
			inv.PaidAt = nil
			inv.ApprovedByAccountantID = nil
		}
		inv.Status = next

		return &commandOutcome{
			invoice:   *inv,
			processed: remaining,
			payment:   payment,
			eventType: domain.EventPaymentReversed,
			payload: map[string]any{
				"amount":     payment.Amount.String(),
				"balanceDue": decision.BalanceDue.String(),
			},
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &domain.PaymentResult{Payment: *out.payment, Invoice: *project(out)}, nil
}

func newLineItems(invoiceID string, reqs []dto.LineItemRequest) []domain.LineItem {
	items := dto.ToLineItems(reqs)
	for i := range items {
		items[i].LineItemID = uuid.NewString()
		items[i].InvoiceID = invoiceID
		items[i].Description = strings.TrimSpace(items[i].Description)
	}
	return items
}
