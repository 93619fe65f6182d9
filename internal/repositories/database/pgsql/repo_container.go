package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds the Postgres-backed repositories.
// lockTimeout bounds how long a command waits on an invoice row lock.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceStore: newPgxInvoiceRepository(dbPool, lockTimeout),
		EventReader:  NewWorkflowEventRepository(dbPool),
	}
}
