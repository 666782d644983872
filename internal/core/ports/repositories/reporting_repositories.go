package repositories

import (
	"context"
	"time"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
)

// OutstandingFilter narrows the outstanding-dues queries.
type OutstandingFilter struct {
	ClassFilter string
	Now         time.Time // reference instant for the overdue derivation
}

// PaymentHistoryFilter narrows the payment-history queries.
type PaymentHistoryFilter struct {
	DateRange   DateWindow
	ClassFilter string
	Method      string
}

// ClassSummaryFilter narrows the class-wise fee summary. The date window
// applies to the invoice creation date.
type ClassSummaryFilter struct {
	DateRange    DateWindow
	AcademicYear string
}

// ReportingRepository runs the read-only aggregation queries. All monetary
// sums cover payments with status completed only; summaries always cover the
// entire filtered set regardless of pagination.
type ReportingRepository interface {
	// GetMonthlyCollection buckets completed payments by YYYY-MM of the
	// transaction date, ordered by month ascending.
	GetMonthlyCollection(ctx context.Context, dateRange DateWindow, classFilter string) ([]domain.MonthlyCollectionRow, error)
	// GetClassCollectionBreakdown buckets completed payments by
	// (month, student class), ordered by month then class.
	GetClassCollectionBreakdown(ctx context.Context, dateRange DateWindow, classFilter string) ([]domain.ClassCollectionRow, error)
	// GetOutstandingInvoices returns one page of pending/partially_paid
	// invoices ordered by due date ascending, plus the total filtered count.
	GetOutstandingInvoices(ctx context.Context, filter OutstandingFilter, limit, offset int) ([]domain.OutstandingInvoiceRow, int, error)
	// GetOutstandingSummary aggregates the entire filtered set. TotalDue is
	// left for the caller to derive as TotalBilled - TotalPaid.
	GetOutstandingSummary(ctx context.Context, filter OutstandingFilter) (*domain.OutstandingDuesSummary, error)
	// GetPaymentHistory returns one page of completed payments ordered by
	// transaction date descending, plus the total filtered count.
	GetPaymentHistory(ctx context.Context, filter PaymentHistoryFilter, limit, offset int) ([]domain.PaymentHistoryRow, int, error)
	// GetMethodSummary aggregates the full filtered set per payment method,
	// ordered by total amount descending.
	GetMethodSummary(ctx context.Context, filter PaymentHistoryFilter) ([]domain.MethodSummaryRow, error)
	// GetClassFeeSummary aggregates all invoices (any status) in the filter
	// by student class, ordered by class. Pending, rate, and grand totals
	// are derived by the service.
	GetClassFeeSummary(ctx context.Context, filter ClassSummaryFilter) ([]domain.ClassFeeSummaryRow, error)
}
