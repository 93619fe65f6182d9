package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	"github.com/SscSPs/vendor_invoicing/internal/models"
	"github.com/SscSPs/vendor_invoicing/internal/utils/mapping"
	"github.com/SscSPs/vendor_invoicing/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultLockTimeout = 5 * time.Second

const (
	invoicesTable  = "invoices"
	lineItemsTable = "invoice_line_items"

	selectInvoiceFields = `
		invoice_id, vendor_id, invoice_number, subtotal, tax_amount, total, status,
		submitted_at, approved_by_admin_id, approved_at, approved_by_accountant_id,
		sent_to_accounting_at, rejection_actor, rejection_reason, paid_at, version,
		created_at, created_by, last_updated_at, last_updated_by
	`

	insertInvoiceQuery = `
		INSERT INTO ` + invoicesTable + ` (` + selectInvoiceFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	findInvoiceByIDQuery = `
		SELECT ` + selectInvoiceFields + `
		FROM ` + invoicesTable + `
		WHERE invoice_id = $1
	`

	lockInvoiceQuery = `
		SELECT version FROM ` + invoicesTable + `
		WHERE invoice_id = $1
		FOR UPDATE
	`

	updateInvoiceQuery = `
		UPDATE ` + invoicesTable + ` SET
			invoice_number = $2, subtotal = $3, tax_amount = $4, total = $5, status = $6,
			submitted_at = $7, approved_by_admin_id = $8, approved_at = $9,
			approved_by_accountant_id = $10, sent_to_accounting_at = $11,
			rejection_actor = $12, rejection_reason = $13, paid_at = $14,
			last_updated_at = $15, last_updated_by = $16,
			version = version + 1
		WHERE invoice_id = $1 AND version = $17
		RETURNING version
	`

	selectLineItemFields = `line_item_id, invoice_id, position, description, quantity, unit_price, amount`

	insertLineItemQuery = `
		INSERT INTO ` + lineItemsTable + ` (` + selectLineItemFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	findLineItemsQuery = `
		SELECT ` + selectLineItemFields + `
		FROM ` + lineItemsTable + `
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position
	`

	deleteLineItemsQuery = `DELETE FROM ` + lineItemsTable + ` WHERE invoice_id = $1`
)

// PgxInvoiceRepository is the Postgres InvoiceStore. Mutations run inside a
// transaction holding the invoice row lock (SELECT ... FOR UPDATE).
type PgxInvoiceRepository struct {
	BaseRepository
	lockTimeout time.Duration
}

// newPgxInvoiceRepository creates a new repository for invoices and their payments.
func newPgxInvoiceRepository(pool *pgxpool.Pool, lockTimeout time.Duration) *PgxInvoiceRepository {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
		lockTimeout:    lockTimeout,
	}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceStore
var _ portsrepo.InvoiceStore = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.VendorID,
		&m.InvoiceNumber,
		&m.Subtotal,
		&m.TaxAmount,
		&m.Total,
		&m.Status,
		&m.SubmittedAt,
		&m.ApprovedByAdminID,
		&m.ApprovedAt,
		&m.ApprovedByAccountantID,
		&m.SentToAccountingAt,
		&m.RejectionActor,
		&m.RejectionReason,
		&m.PaidAt,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func invoiceArgs(m models.Invoice) []any {
	return []any{
		m.InvoiceID,
		m.VendorID,
		m.InvoiceNumber,
		m.Subtotal,
		m.TaxAmount,
		m.Total,
		m.Status,
		m.SubmittedAt,
		m.ApprovedByAdminID,
		m.ApprovedAt,
		m.ApprovedByAccountantID,
		m.SentToAccountingAt,
		m.RejectionActor,
		m.RejectionReason,
		m.PaidAt,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// findInvoice loads one invoice header and its line items through q.
func findInvoice(ctx context.Context, q querier, invoiceID string) (*domain.Invoice, error) {
	m, err := scanInvoice(q.QueryRow(ctx, findInvoiceByIDQuery, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice not found: " + invoiceID)
		}
		return nil, fmt.Errorf("%w: failed to find invoice %s: %w", apperrors.ErrPersistence, invoiceID, err)
	}

	items, err := findLineItems(ctx, q, []string{invoiceID})
	if err != nil {
		return nil, err
	}
	inv := mapping.ToDomainInvoice(m, items[invoiceID])
	return &inv, nil
}

// findLineItems loads the line items of several invoices, grouped by invoice ID.
func findLineItems(ctx context.Context, q querier, invoiceIDs []string) (map[string][]models.LineItem, error) {
	rows, err := q.Query(ctx, findLineItemsQuery, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query line items: %w", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	result := make(map[string][]models.LineItem, len(invoiceIDs))
	for rows.Next() {
		var li models.LineItem
		if err := rows.Scan(&li.LineItemID, &li.InvoiceID, &li.Position, &li.Description, &li.Quantity, &li.UnitPrice, &li.Amount); err != nil {
			return nil, fmt.Errorf("%w: failed to scan line item: %w", apperrors.ErrPersistence, err)
		}
		result[li.InvoiceID] = append(result[li.InvoiceID], li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating line items: %w", apperrors.ErrPersistence, err)
	}
	return result, nil
}

func insertLineItems(ctx context.Context, q querier, items []models.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, li := range items {
		batch.Queue(insertLineItemQuery,
			li.LineItemID,
			li.InvoiceID,
			li.Position,
			li.Description,
			li.Quantity,
			li.UnitPrice,
			li.Amount,
		)
	}
	// Close reports the first failing statement in the batch
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "invoice line items")
	}
	return nil
}

// CreateInvoice inserts the invoice header and line items in one transaction.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	model := mapping.ToModelInvoice(invoice)
	if _, err := tx.Exec(ctx, insertInvoiceQuery, invoiceArgs(model)...); err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: invoice number %q already used by vendor", apperrors.ErrDuplicate, invoice.InvoiceNumber)
		}
		return fmt.Errorf("%w: failed to insert invoice %s: %w", apperrors.ErrPersistence, invoice.InvoiceID, err)
	}
	if err := insertLineItems(ctx, tx, mapping.ToModelLineItems(invoice.LineItems)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice with its line items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return findInvoice(ctx, r.Pool, invoiceID)
}

// buildListInvoicesQuery assembles the keyset-paginated list query. It fetches
// one row more than limit so the caller can tell whether another page exists.
func buildListInvoicesQuery(filter portsrepo.InvoiceFilter, limit int, cursorAt *time.Time, cursorID string) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.VendorID != nil {
		conditions = append(conditions, "vendor_id = "+next(*filter.VendorID))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = "+next(string(*filter.Status)))
	}
	if cursorAt != nil {
		conditions = append(conditions, "(created_at, invoice_id) < ("+next(*cursorAt)+", "+next(cursorID)+")")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.TrimSpace(selectInvoiceFields))
	sb.WriteString(" FROM " + invoicesTable)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, invoice_id DESC")
	sb.WriteString(" LIMIT " + next(limit+1))
	return sb.String(), args
}

// ListInvoices retrieves a page of invoices, newest first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		cursorAt *time.Time
		cursorID string
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursorAt, cursorID = &at, id
	}

	query, args := buildListInvoicesQuery(filter, limit, cursorAt, cursorID)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to list invoices: %w", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	headers := make([]models.Invoice, 0, limit+1)
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to scan invoice: %w", apperrors.ErrPersistence, err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: error iterating invoices: %w", apperrors.ErrPersistence, err)
	}

	var next *string
	if len(headers) > limit {
		headers = headers[:limit]
		last := headers[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.InvoiceID)
		next = &token
	}
	if len(headers) == 0 {
		return []domain.Invoice{}, nil, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.InvoiceID
	}
	items, err := findLineItems(ctx, r.Pool, ids)
	if err != nil {
		return nil, nil, err
	}

	result := make([]domain.Invoice, len(headers))
	for i, h := range headers {
		result[i] = mapping.ToDomainInvoice(h, items[h.InvoiceID])
	}
	return result, next, nil
}

// WithInvoiceLock opens a transaction, locks the invoice row and runs fn
// against a unit of work bound to that transaction. The transaction commits
// only if fn returns nil.
func (r *PgxInvoiceRepository) WithInvoiceLock(ctx context.Context, invoiceID string, fn func(ctx context.Context, uow portsrepo.InvoiceUnitOfWork) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// SET does not take bind parameters
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("%w: failed to set lock timeout: %w", apperrors.ErrPersistence, err)
	}

	var version int64
	if err := tx.QueryRow(ctx, lockInvoiceQuery, invoiceID).Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("invoice not found: " + invoiceID)
		}
		return mapLockError(err, invoiceID)
	}

	if err := fn(ctx, &pgxUnitOfWork{tx: tx, invoiceID: invoiceID}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
