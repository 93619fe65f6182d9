package repositories

// RepositoryProvider holds the repositories the service layer is built from.
// EventReader is nil when the audit trail is not persisted.
type RepositoryProvider struct {
	InvoiceStore InvoiceStore
	EventReader  WorkflowEventReader
}
