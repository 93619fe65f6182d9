package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by stores that hand out explicit database
// transactions. The invoice lock runs its unit of work inside one.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
