package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
)

// ReportingRepository runs the read-only aggregation queries behind the
// billing reports. All monetary sums cover completed payments only; the
// summaries always aggregate the entire filtered set.
type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// completedPaymentsWhere builds the shared filter clause for payment-based
// reports. The returned clause assumes payments p joined to students s.
func completedPaymentsWhere(dateRange portsrepo.DateWindow, classFilter string) (string, []any) {
	where := ` WHERE p.status = 'completed'`
	args := []any{}
	argPos := 1

	if dateRange.IsSet() {
		where += fmt.Sprintf(" AND p.transaction_date >= $%d AND p.transaction_date <= $%d", argPos, argPos+1)
		args = append(args, *dateRange.Start, *dateRange.End)
		argPos += 2
	}
	if classFilter != "" {
		where += fmt.Sprintf(" AND s.class = $%d", argPos)
		args = append(args, classFilter)
	}
	return where, args
}

// GetMonthlyCollection buckets completed payments by YYYY-MM of the
// transaction date.
func (r *ReportingRepository) GetMonthlyCollection(ctx context.Context, dateRange portsrepo.DateWindow, classFilter string) ([]domain.MonthlyCollectionRow, error) {
	where, args := completedPaymentsWhere(dateRange, classFilter)
	query := `
		SELECT to_char(p.transaction_date, 'YYYY-MM') AS month,
		       COALESCE(SUM(p.amount), 0),
		       COUNT(*)
		FROM payments p
		JOIN students s ON s.student_id = p.student_id` + where + `
		GROUP BY month
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly collection", err)
	}
	defer rows.Close()

	result := make([]domain.MonthlyCollectionRow, 0)
	for rows.Next() {
		var row domain.MonthlyCollectionRow
		if err := rows.Scan(&row.Month, &row.TotalCollected, &row.PaymentCount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan monthly collection row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate monthly collection rows", err)
	}
	return result, nil
}

// GetClassCollectionBreakdown buckets completed payments by (month, class).
func (r *ReportingRepository) GetClassCollectionBreakdown(ctx context.Context, dateRange portsrepo.DateWindow, classFilter string) ([]domain.ClassCollectionRow, error) {
	where, args := completedPaymentsWhere(dateRange, classFilter)
	query := `
		SELECT to_char(p.transaction_date, 'YYYY-MM') AS month,
		       s.class,
		       COALESCE(SUM(p.amount), 0),
		       COUNT(*)
		FROM payments p
		JOIN students s ON s.student_id = p.student_id` + where + `
		GROUP BY month, s.class
		ORDER BY month, s.class;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query class collection breakdown", err)
	}
	defer rows.Close()

	result := make([]domain.ClassCollectionRow, 0)
	for rows.Next() {
		var row domain.ClassCollectionRow
		if err := rows.Scan(&row.Month, &row.ClassName, &row.TotalCollected, &row.PaymentCount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan class collection row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate class collection rows", err)
	}
	return result, nil
}

// outstandingWhere builds the shared filter clause for the outstanding-dues
// queries over invoices i joined to students s.
func outstandingWhere(filter portsrepo.OutstandingFilter) (string, []any) {
	where := ` WHERE i.status IN ('pending', 'partially_paid')`
	args := []any{}
	if filter.ClassFilter != "" {
		where += fmt.Sprintf(" AND s.class = $%d", len(args)+1)
		args = append(args, filter.ClassFilter)
	}
	return where, args
}

// GetOutstandingInvoices returns one page of not-fully-paid invoices ordered
// by due date ascending, plus the total filtered count.
func (r *ReportingRepository) GetOutstandingInvoices(ctx context.Context, filter portsrepo.OutstandingFilter, limit, offset int) ([]domain.OutstandingInvoiceRow, int, error) {
	where, args := outstandingWhere(filter)

	countQuery := `
		SELECT COUNT(*)
		FROM invoices i
		JOIN students s ON s.student_id = i.student_id` + where + `;`
	var total int
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count outstanding invoices", err)
	}

	argPos := len(args) + 1
	query := `
		SELECT i.invoice_id, i.invoice_number, i.total,
		       COALESCE(paid.amount_paid, 0) AS amount_paid,
		       i.total - COALESCE(paid.amount_paid, 0) AS amount_due,
		       i.due_date, i.status,
		       i.due_date < $` + fmt.Sprint(argPos) + ` AS is_overdue,
		       s.first_name || ' ' || s.last_name AS student_name,
		       s.class, i.parent_id
		FROM invoices i
		JOIN students s ON s.student_id = i.student_id
		LEFT JOIN (
			SELECT invoice_id, SUM(amount) AS amount_paid
			FROM payments
			WHERE status = 'completed'
			GROUP BY invoice_id
		) paid ON paid.invoice_id = i.invoice_id` + where +
		fmt.Sprintf(` ORDER BY i.due_date ASC LIMIT $%d OFFSET $%d;`, argPos+1, argPos+2)
	args = append(args, filter.Now, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query outstanding invoices", err)
	}
	defer rows.Close()

	result := make([]domain.OutstandingInvoiceRow, 0, limit)
	for rows.Next() {
		var row domain.OutstandingInvoiceRow
		if err := rows.Scan(
			&row.InvoiceID,
			&row.InvoiceNumber,
			&row.Total,
			&row.AmountPaid,
			&row.AmountDue,
			&row.DueDate,
			&row.Status,
			&row.IsOverdue,
			&row.StudentName,
			&row.StudentClass,
			&row.ParentID,
		); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan outstanding invoice row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to iterate outstanding invoice rows", err)
	}

	return result, total, nil
}

// GetOutstandingSummary aggregates the entire filtered set. TotalDue is left
// for the caller.
func (r *ReportingRepository) GetOutstandingSummary(ctx context.Context, filter portsrepo.OutstandingFilter) (*domain.OutstandingDuesSummary, error) {
	where, args := outstandingWhere(filter)
	argPos := len(args) + 1

	query := `
		SELECT COALESCE(SUM(i.total), 0),
		       COALESCE(SUM(paid.amount_paid), 0),
		       COUNT(*),
		       COUNT(*) FILTER (WHERE i.due_date < $` + fmt.Sprint(argPos) + `)
		FROM invoices i
		JOIN students s ON s.student_id = i.student_id
		LEFT JOIN (
			SELECT invoice_id, SUM(amount) AS amount_paid
			FROM payments
			WHERE status = 'completed'
			GROUP BY invoice_id
		) paid ON paid.invoice_id = i.invoice_id` + where + `;`
	args = append(args, filter.Now)

	var summary domain.OutstandingDuesSummary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&summary.TotalBilled,
		&summary.TotalPaid,
		&summary.InvoiceCount,
		&summary.OverdueCount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to summarise outstanding invoices", err)
	}
	return &summary, nil
}

// paymentHistoryWhere builds the shared filter clause for the payment-history
// queries over payments p joined to students s.
func paymentHistoryWhere(filter portsrepo.PaymentHistoryFilter) (string, []any) {
	where, args := completedPaymentsWhere(filter.DateRange, filter.ClassFilter)
	if filter.Method != "" {
		where += fmt.Sprintf(" AND p.payment_method = $%d", len(args)+1)
		args = append(args, filter.Method)
	}
	return where, args
}

// GetPaymentHistory returns one page of completed payments ordered by
// transaction date descending, plus the total filtered count.
func (r *ReportingRepository) GetPaymentHistory(ctx context.Context, filter portsrepo.PaymentHistoryFilter, limit, offset int) ([]domain.PaymentHistoryRow, int, error) {
	where, args := paymentHistoryWhere(filter)

	countQuery := `
		SELECT COUNT(*)
		FROM payments p
		JOIN students s ON s.student_id = p.student_id` + where + `;`
	var total int
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count payment history", err)
	}

	argPos := len(args) + 1
	query := `
		SELECT p.payment_id, p.payment_number, p.receipt_number, p.amount, p.payment_method,
		       p.transaction_date, COALESCE(p.remarks, ''),
		       s.first_name || ' ' || s.last_name AS student_name,
		       s.class, i.invoice_number
		FROM payments p
		JOIN students s ON s.student_id = p.student_id
		JOIN invoices i ON i.invoice_id = p.invoice_id` + where +
		fmt.Sprintf(` ORDER BY p.transaction_date DESC LIMIT $%d OFFSET $%d;`, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query payment history", err)
	}
	defer rows.Close()

	result := make([]domain.PaymentHistoryRow, 0, limit)
	for rows.Next() {
		var row domain.PaymentHistoryRow
		if err := rows.Scan(
			&row.PaymentID,
			&row.PaymentNumber,
			&row.ReceiptNumber,
			&row.Amount,
			&row.Method,
			&row.TransactionDate,
			&row.Remarks,
			&row.StudentName,
			&row.StudentClass,
			&row.InvoiceNumber,
		); err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan payment history row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to iterate payment history rows", err)
	}

	return result, total, nil
}

// GetMethodSummary aggregates the full filtered set per payment method.
func (r *ReportingRepository) GetMethodSummary(ctx context.Context, filter portsrepo.PaymentHistoryFilter) ([]domain.MethodSummaryRow, error) {
	where, args := paymentHistoryWhere(filter)
	query := `
		SELECT p.payment_method, COALESCE(SUM(p.amount), 0), COUNT(*)
		FROM payments p
		JOIN students s ON s.student_id = p.student_id` + where + `
		GROUP BY p.payment_method
		ORDER BY SUM(p.amount) DESC;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query method summary", err)
	}
	defer rows.Close()

	result := make([]domain.MethodSummaryRow, 0)
	for rows.Next() {
		var row domain.MethodSummaryRow
		if err := rows.Scan(&row.Method, &row.TotalAmount, &row.Count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan method summary row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate method summary rows", err)
	}
	return result, nil
}

// GetClassFeeSummary aggregates all invoices in the filter by student class.
// Collected amounts count completed payments regardless of when they landed
// relative to the invoice date window.
func (r *ReportingRepository) GetClassFeeSummary(ctx context.Context, filter portsrepo.ClassSummaryFilter) ([]domain.ClassFeeSummaryRow, error) {
	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.DateRange.IsSet() {
		where += fmt.Sprintf(" AND i.created_at >= $%d AND i.created_at <= $%d", argPos, argPos+1)
		args = append(args, *filter.DateRange.Start, *filter.DateRange.End)
		argPos += 2
	}
	if filter.AcademicYear != "" {
		where += fmt.Sprintf(" AND i.academic_year = $%d", argPos)
		args = append(args, filter.AcademicYear)
	}

	query := `
		SELECT s.class,
		       COALESCE(SUM(i.total), 0) AS total_billed,
		       COALESCE(SUM(paid.amount_paid), 0) AS total_collected,
		       COUNT(*) AS invoice_count,
		       COUNT(DISTINCT i.student_id) AS student_count
		FROM invoices i
		JOIN students s ON s.student_id = i.student_id
		LEFT JOIN (
			SELECT invoice_id, SUM(amount) AS amount_paid
			FROM payments
			WHERE status = 'completed'
			GROUP BY invoice_id
		) paid ON paid.invoice_id = i.invoice_id` + where + `
		GROUP BY s.class
		ORDER BY s.class;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query class fee summary", err)
	}
	defer rows.Close()

	result := make([]domain.ClassFeeSummaryRow, 0)
	for rows.Next() {
		var row domain.ClassFeeSummaryRow
		if err := rows.Scan(
			&row.ClassName,
			&row.TotalBilled,
			&row.TotalCollected,
			&row.InvoiceCount,
			&row.StudentCount,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan class fee summary row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate class fee summary rows", err)
	}
	return result, nil
}
