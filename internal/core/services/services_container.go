package services

import (
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vendor_invoicing/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, sink portsevents.AuditSink) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Workflow: NewInvoiceWorkflowService(repos.InvoiceStore, WithAuditSink(sink)),
		Query:    NewInvoiceQueryService(repos.InvoiceStore, repos.EventReader),
	}
}
