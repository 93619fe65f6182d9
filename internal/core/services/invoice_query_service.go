package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vendor_invoicing/internal/core/ports/services"
	"github.com/SscSPs/vendor_invoicing/internal/core/workflow"
	"github.com/SscSPs/vendor_invoicing/internal/dto"
)

type invoiceQueryService struct {
	BaseService
	store  portsrepo.InvoiceStore
	events portsrepo.WorkflowEventReader
}

// NewInvoiceQueryService creates the read side over the invoice store and audit trail.
func NewInvoiceQueryService(store portsrepo.InvoiceStore, events portsrepo.WorkflowEventReader) portssvc.InvoiceQuerySvcFacade {
	return &invoiceQueryService{
		store:  store,
		events: events,
	}
}

var _ portssvc.InvoiceQuerySvcFacade = (*invoiceQueryService)(nil)

// findVisible loads an invoice and hides it from vendors who do not own it.
func (s *invoiceQueryService) findVisible(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.Invoice, error) {
	inv, err := s.store.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, inv) {
		s.LogDebug(ctx, "Invoice hidden from actor", slog.String("invoice_id", invoiceID), slog.String("user_id", actor.UserID))
		return nil, apperrors.NewNotFoundError("invoice not found: " + invoiceID)
	}
	return inv, nil
}

func (s *invoiceQueryService) GetInvoice(ctx context.Context, invoiceID string, actor domain.Actor) (*domain.InvoiceProjection, error) {
	inv, err := s.findVisible(ctx, invoiceID, actor)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	p := workflow.Project(*inv, payments)
	return &p, nil
}

func (s *invoiceQueryService) ListInvoices(ctx context.Context, actor domain.Actor, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	filter := portsrepo.InvoiceFilter{VendorID: params.VendorID}
	if actor.Role == domain.RoleVendor {
		own := actor.UserID
		filter.VendorID = &own
	}
	if params.Status != nil && *params.Status != "" {
		st, err := domain.ParseInvoiceStatus(*params.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	invoices, nextToken, err := s.store.ListInvoices(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}

	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.InvoiceID
	}
	paid := map[string]domain.Money{}
	if len(ids) > 0 {
		paid, err = s.store.ProcessedTotalsByInvoiceIDs(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to sum payments", slog.Int("invoice_count", len(ids)))
			return nil, fmt.Errorf("failed to retrieve payment totals: %w", err)
		}
	}

	resp := &dto.ListInvoicesResponse{
		Invoices:  make([]dto.InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i, inv := range invoices {
		p := domain.InvoiceProjection{Invoice: inv, TotalPaid: paid[inv.InvoiceID]}
		p.BalanceDue = inv.Total.Sub(p.TotalPaid)
		resp.Invoices[i] = dto.ToInvoiceResponse(&p)
	}

	s.LogDebug(ctx, "Invoices listed", slog.Int("count", len(invoices)))
	return resp, nil
}

func (s *invoiceQueryService) ListPayments(ctx context.Context, invoiceID string, actor domain.Actor) (*dto.ListPaymentsResponse, error) {
	inv, err := s.findVisible(ctx, invoiceID, actor)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	p := workflow.Project(*inv, payments)
	return &dto.ListPaymentsResponse{
		Payments:   dto.ToPaymentResponses(payments),
		TotalPaid:  p.TotalPaid,
		BalanceDue: p.BalanceDue,
	}, nil
}

func (s *invoiceQueryService) ListInvoiceEvents(ctx context.Context, invoiceID string, actor domain.Actor) ([]domain.WorkflowEvent, error) {
	if _, err := s.findVisible(ctx, invoiceID, actor); err != nil {
		return nil, err
	}
	if s.events == nil {
		return []domain.WorkflowEvent{}, nil
	}
	events, err := s.events.ListEventsByInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workflow events", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to retrieve workflow events: %w", err)
	}
	return events, nil
}
