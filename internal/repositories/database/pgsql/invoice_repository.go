package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
	"github.com/schoolfees/school_fees_app/internal/models"
	"github.com/schoolfees/school_fees_app/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, invoice_number, student_id, parent_id, subtotal, tax, discount, total,
	due_date, status, academic_year, term, created_at, created_by, last_updated_at, last_updated_by`

// scanInvoice reads one invoices row in invoiceColumns order.
func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	var term sql.NullString
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.StudentID,
		&m.ParentID,
		&m.Subtotal,
		&m.Tax,
		&m.Discount,
		&m.Total,
		&m.DueDate,
		&m.Status,
		&m.AcademicYear,
		&term,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if term.Valid {
		m.Term = term.String
	}
	return m, err
}

// SaveInvoice inserts the invoice and its items within a DB transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelInvoice := mapping.ToModelInvoice(invoice)
	invoiceQuery := `
		INSERT INTO invoices (
			invoice_id, invoice_number, student_id, parent_id, subtotal, tax, discount, total,
			due_date, status, academic_year, term,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, invoiceQuery,
		modelInvoice.InvoiceID,
		modelInvoice.InvoiceNumber,
		modelInvoice.StudentID,
		modelInvoice.ParentID,
		modelInvoice.Subtotal,
		modelInvoice.Tax,
		modelInvoice.Discount,
		modelInvoice.Total,
		modelInvoice.DueDate,
		modelInvoice.Status,
		modelInvoice.AcademicYear,
		nullableString(modelInvoice.Term),
		modelInvoice.CreatedAt,
		modelInvoice.CreatedBy,
		modelInvoice.LastUpdatedAt,
		modelInvoice.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, modelInvoice.InvoiceNumber)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+modelInvoice.InvoiceID, err)
	}

	if err := insertInvoiceItems(ctx, tx, invoice.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// insertInvoiceItems batch-inserts item rows for an invoice.
func insertInvoiceItems(ctx context.Context, tx pgx.Tx, items []domain.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO invoice_items (item_id, invoice_id, fee_id, description, amount)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, item := range items {
		modelItem := mapping.ToModelInvoiceItem(item)
		batch.Queue(itemQuery,
			modelItem.ItemID,
			modelItem.InvoiceID,
			modelItem.FeeID,
			modelItem.Description,
			modelItem.Amount,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert invoice items", err)
	}
	return nil
}

// UpdateInvoice persists header changes; when replaceItems is true the item
// rows are replaced wholesale with invoice.Items.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, replaceItems bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelInvoice := mapping.ToModelInvoice(invoice)
	updateQuery := `
		UPDATE invoices SET
			subtotal = $2, tax = $3, discount = $4, total = $5,
			due_date = $6, status = $7, academic_year = $8, term = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		modelInvoice.InvoiceID,
		modelInvoice.Subtotal,
		modelInvoice.Tax,
		modelInvoice.Discount,
		modelInvoice.Total,
		modelInvoice.DueDate,
		modelInvoice.Status,
		modelInvoice.AcademicYear,
		nullableString(modelInvoice.Term),
		modelInvoice.LastUpdatedAt,
		modelInvoice.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invoice "+modelInvoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if replaceItems {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
			return apperrors.NewAppError(500, "failed to clear invoice items for "+invoice.InvoiceID, err)
		}
		if err := insertInvoiceItems(ctx, tx, invoice.Items); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteInvoice removes an invoice and its items. The payment-reference guard
// is re-checked inside the transaction so a racing payment insert cannot
// orphan itself.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var paymentCount int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM payments WHERE invoice_id = (
			SELECT invoice_id FROM invoices WHERE invoice_id = $1 FOR UPDATE
		);
	`, invoiceID).Scan(&paymentCount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check payments for invoice "+invoiceID, err)
	}
	if paymentCount > 0 {
		return fmt.Errorf("%w: invoice %s has recorded payments", apperrors.ErrConflict, invoiceID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to delete items for invoice "+invoiceID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice with its items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	modelInvoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	items, err := r.findItemsForInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	domainInvoice := mapping.ToDomainInvoice(modelInvoice)
	domainInvoice.Items = items
	return &domainInvoice, nil
}

// findItemsForInvoice loads the item rows of one invoice.
func (r *PgxInvoiceRepository) findItemsForInvoice(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT item_id, invoice_id, fee_id, description, amount
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY item_id;
	`, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for invoice "+invoiceID, err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.InvoiceItem, error) {
		var item models.InvoiceItem
		err := row.Scan(&item.ItemID, &item.InvoiceID, &item.FeeID, &item.Description, &item.Amount)
		return item, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan items for invoice "+invoiceID, err)
	}

	items := make([]domain.InvoiceItem, 0, len(modelItems))
	for _, m := range modelItems {
		items = append(items, mapping.ToDomainInvoiceItem(m))
	}
	return items, nil
}

// ListInvoices returns one page of filtered invoices plus the total count.
// Items are not loaded for list rows.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.ListInvoicesFilter, limit, offset int) ([]domain.Invoice, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.StudentID != "" {
		where += fmt.Sprintf(" AND student_id = $%d", argPos)
		args = append(args, filter.StudentID)
		argPos++
	}
	if filter.ParentID != "" {
		where += fmt.Sprintf(" AND parent_id = $%d", argPos)
		args = append(args, filter.ParentID)
		argPos++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count invoices", err)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0, limit)
	for rows.Next() {
		modelInvoice, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(modelInvoice))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to iterate invoice rows", err)
	}

	return invoices, total, nil
}

// CountPaymentsForInvoice counts referencing payments of any status.
func (r *PgxInvoiceRepository) CountPaymentsForInvoice(ctx context.Context, invoiceID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE invoice_id = $1;`, invoiceID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count payments for invoice "+invoiceID, err)
	}
	return count, nil
}
