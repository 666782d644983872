package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
	"github.com/schoolfees/school_fees_app/internal/models"
	"github.com/schoolfees/school_fees_app/internal/utils/mapping"
	"github.com/schoolfees/school_fees_app/internal/utils/numbering"
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, payment_number, receipt_number, invoice_id, student_id, parent_id,
	amount, payment_method, transaction_id, transaction_date, cheque_number, cheque_date, bank_name,
	status, remarks, received_by, created_at, created_by, last_updated_at, last_updated_by`

// scanPayment reads one payments row in paymentColumns order.
func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	var transactionID, chequeNumber, bankName, remarks *string
	err := row.Scan(
		&m.PaymentID,
		&m.PaymentNumber,
		&m.ReceiptNumber,
		&m.InvoiceID,
		&m.StudentID,
		&m.ParentID,
		&m.Amount,
		&m.Method,
		&transactionID,
		&m.TransactionDate,
		&chequeNumber,
		&m.ChequeDate,
		&bankName,
		&m.Status,
		&remarks,
		&m.ReceivedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if transactionID != nil {
		m.TransactionID = *transactionID
	}
	if chequeNumber != nil {
		m.ChequeNumber = *chequeNumber
	}
	if bankName != nil {
		m.BankName = *bankName
	}
	if remarks != nil {
		m.Remarks = *remarks
	}
	return m, err
}

// lockInvoiceForReconciliation fetches and row-locks the owning invoice.
// Every reconciliation write goes through this lock, so writes against the
// same invoice queue behind one another.
func lockInvoiceForReconciliation(ctx context.Context, tx pgx.Tx, invoiceID string) (models.Invoice, error) {
	var m models.Invoice
	err := tx.QueryRow(ctx, `
		SELECT invoice_id, invoice_number, student_id, parent_id, total, due_date, status, academic_year
		FROM invoices
		WHERE invoice_id = $1
		FOR UPDATE;
	`, invoiceID).Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.StudentID,
		&m.ParentID,
		&m.Total,
		&m.DueDate,
		&m.Status,
		&m.AcademicYear,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Invoice{}, apperrors.ErrNotFound
		}
		return models.Invoice{}, apperrors.NewAppError(500, "failed to lock invoice "+invoiceID, err)
	}
	return m, nil
}

// sumCompletedInTx sums completed payments for a locked invoice, optionally
// excluding one payment (the row being edited).
func sumCompletedInTx(ctx context.Context, tx pgx.Tx, invoiceID, excludePaymentID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE invoice_id = $1 AND status = 'completed' AND payment_id <> $2;
	`, invoiceID, excludePaymentID).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum payments for invoice "+invoiceID, err)
	}
	return sum, nil
}

// persistInvoiceStatus writes the re-derived status onto the locked invoice.
func persistInvoiceStatus(ctx context.Context, tx pgx.Tx, invoiceID string, status domain.InvoiceStatus, updatedBy string, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE invoices SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1;
	`, invoiceID, string(status), now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of invoice "+invoiceID, err)
	}
	return nil
}

// CreateWithReconciliation inserts a payment and settles the owning invoice's
// status in one transaction. The invoice row lock serializes concurrent
// submissions, so the amount-due check cannot be passed twice for the same
// remainder. Cancelled invoices reject new payments.
func (r *PgxPaymentRepository) CreateWithReconciliation(ctx context.Context, payment domain.Payment) (*portsrepo.ReconciliationResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockedInvoice, err := lockInvoiceForReconciliation(ctx, tx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}
	if lockedInvoice.Status == models.InvoiceCancelled {
		return nil, fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrValidation, payment.InvoiceID)
	}

	alreadyPaid, err := sumCompletedInTx(ctx, tx, payment.InvoiceID, payment.PaymentID)
	if err != nil {
		return nil, err
	}

	amountDue := lockedInvoice.Total.Sub(alreadyPaid)
	if payment.Status == domain.PaymentCompleted && payment.Amount.GreaterThan(amountDue) {
		return nil, fmt.Errorf("%w: payment amount %s exceeds amount due %s",
			apperrors.ErrValidation, payment.Amount.String(), amountDue.String())
	}

	// Display numbers are allocated inside the transaction so a failed
	// insert never burns a visible gap against a committed payment.
	year := payment.TransactionDate.Year()
	paySeq, err := nextSequenceValue(ctx, tx, numbering.PrefixPayment, year)
	if err != nil {
		return nil, err
	}
	recSeq, err := nextSequenceValue(ctx, tx, numbering.PrefixReceipt, year)
	if err != nil {
		return nil, err
	}
	payment.PaymentNumber = numbering.Format(numbering.PrefixPayment, year, paySeq)
	payment.ReceiptNumber = numbering.Format(numbering.PrefixReceipt, year, recSeq)

	// Student and parent references are copied from the locked invoice, not
	// trusted from the caller.
	payment.StudentID = lockedInvoice.StudentID
	payment.ParentID = lockedInvoice.ParentID

	modelPayment := mapping.ToModelPayment(payment)
	insertQuery := `
		INSERT INTO payments (
			payment_id, payment_number, receipt_number, invoice_id, student_id, parent_id,
			amount, payment_method, transaction_id, transaction_date, cheque_number, cheque_date,
			bank_name, status, remarks, received_by,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelPayment.PaymentID,
		modelPayment.PaymentNumber,
		modelPayment.ReceiptNumber,
		modelPayment.InvoiceID,
		modelPayment.StudentID,
		modelPayment.ParentID,
		modelPayment.Amount,
		modelPayment.Method,
		nullableString(modelPayment.TransactionID),
		modelPayment.TransactionDate,
		nullableString(modelPayment.ChequeNumber),
		modelPayment.ChequeDate,
		nullableString(modelPayment.BankName),
		modelPayment.Status,
		nullableString(modelPayment.Remarks),
		modelPayment.ReceivedBy,
		modelPayment.CreatedAt,
		modelPayment.CreatedBy,
		modelPayment.LastUpdatedAt,
		modelPayment.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert payment "+modelPayment.PaymentID, err)
	}

	return r.finishReconciliation(ctx, tx, payment, lockedInvoice, alreadyPaid)
}

// UpdateWithReconciliation persists an edited payment (amount unchanged) and
// re-derives the owning invoice's status under the same invoice lock used by
// creation.
func (r *PgxPaymentRepository) UpdateWithReconciliation(ctx context.Context, payment domain.Payment) (*portsrepo.ReconciliationResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockedInvoice, err := lockInvoiceForReconciliation(ctx, tx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}

	alreadyPaid, err := sumCompletedInTx(ctx, tx, payment.InvoiceID, payment.PaymentID)
	if err != nil {
		return nil, err
	}

	// A status flip to completed must still fit under the total.
	if payment.Status == domain.PaymentCompleted && payment.Amount.GreaterThan(lockedInvoice.Total.Sub(alreadyPaid)) {
		return nil, fmt.Errorf("%w: completing payment %s would exceed invoice total",
			apperrors.ErrValidation, payment.PaymentID)
	}

	modelPayment := mapping.ToModelPayment(payment)
	updateQuery := `
		UPDATE payments SET
			payment_method = $2, transaction_id = $3, cheque_number = $4, cheque_date = $5,
			bank_name = $6, status = $7, remarks = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE payment_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		modelPayment.PaymentID,
		modelPayment.Method,
		nullableString(modelPayment.TransactionID),
		nullableString(modelPayment.ChequeNumber),
		modelPayment.ChequeDate,
		nullableString(modelPayment.BankName),
		modelPayment.Status,
		nullableString(modelPayment.Remarks),
		modelPayment.LastUpdatedAt,
		modelPayment.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update payment "+modelPayment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.finishReconciliation(ctx, tx, payment, lockedInvoice, alreadyPaid)
}

// finishReconciliation derives and persists the invoice status from the new
// completed-payment total, commits, and reports the settled figures.
func (r *PgxPaymentRepository) finishReconciliation(ctx context.Context, tx pgx.Tx, payment domain.Payment, lockedInvoice models.Invoice, alreadyPaid decimal.Decimal) (*portsrepo.ReconciliationResult, error) {
	amountPaid := alreadyPaid
	if payment.Status == domain.PaymentCompleted {
		amountPaid = amountPaid.Add(payment.Amount)
	}

	invoice := mapping.ToDomainInvoice(lockedInvoice)
	if invoice.Status != domain.InvoiceCancelled {
		invoice.Status = domain.DeriveInvoiceStatus(invoice.Total, amountPaid)
		if err := persistInvoiceStatus(ctx, tx, invoice.InvoiceID, invoice.Status, payment.LastUpdatedBy, payment.LastUpdatedAt); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &portsrepo.ReconciliationResult{
		Payment:    payment,
		Invoice:    invoice,
		AmountPaid: amountPaid,
		AmountDue:  invoice.Total.Sub(amountPaid),
	}, nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	modelPayment, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}

	domainPayment := mapping.ToDomainPayment(modelPayment)
	return &domainPayment, nil
}

// ListPayments returns one page of filtered payments plus the total count.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.ListPaymentsFilter, limit, offset int) ([]domain.Payment, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.StudentID != "" {
		where += fmt.Sprintf(" AND student_id = $%d", argPos)
		args = append(args, filter.StudentID)
		argPos++
	}
	if filter.InvoiceID != "" {
		where += fmt.Sprintf(" AND invoice_id = $%d", argPos)
		args = append(args, filter.InvoiceID)
		argPos++
	}
	if filter.ParentID != "" {
		where += fmt.Sprintf(" AND parent_id = $%d", argPos)
		args = append(args, filter.ParentID)
		argPos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Method != "" {
		where += fmt.Sprintf(" AND payment_method = $%d", argPos)
		args = append(args, filter.Method)
		argPos++
	}
	if filter.DateRange.IsSet() {
		where += fmt.Sprintf(" AND transaction_date >= $%d AND transaction_date <= $%d", argPos, argPos+1)
		args = append(args, *filter.DateRange.Start, *filter.DateRange.End)
		argPos += 2
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count payments", err)
	}

	query := `SELECT ` + paymentColumns + ` FROM payments` + where +
		fmt.Sprintf(` ORDER BY transaction_date DESC LIMIT $%d OFFSET $%d;`, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0, limit)
	for rows.Next() {
		modelPayment, err := scanPayment(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, mapping.ToDomainPayment(modelPayment))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to iterate payment rows", err)
	}

	return payments, total, nil
}

// SumCompletedPayments returns the completed-payment total for an invoice.
func (r *PgxPaymentRepository) SumCompletedPayments(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE invoice_id = $1 AND status = 'completed';
	`, invoiceID).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum completed payments for invoice "+invoiceID, err)
	}
	return sum, nil
}
