package dto

import (
	"time"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// DateRange is an optional inclusive [start, end] window. Both ends must be
// present together; a half-open range is rejected by the service.
type DateRange struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
}

// IsSet reports whether a window was supplied.
func (r DateRange) IsSet() bool {
	return r.StartDate != nil && r.EndDate != nil
}

// FeeCollectionReportParams filters the fee collection report.
type FeeCollectionReportParams struct {
	DateRange
	ClassFilter string `form:"classFilter"`
}

// FeeCollectionReportResponse groups completed payments by month and by
// (month, class).
type FeeCollectionReportResponse struct {
	MonthlyCollection []domain.MonthlyCollectionRow `json:"monthlyCollection"`
	ClassBreakdown    []domain.ClassCollectionRow   `json:"classBreakdown"`
	GrandTotal        decimal.Decimal               `json:"grandTotal"`
	TotalPayments     int                           `json:"totalPayments"`
}

// OutstandingDuesParams filters and pages the outstanding dues report.
type OutstandingDuesParams struct {
	ClassFilter string `form:"classFilter"`
	pagination.Params
}

// OutstandingDuesResponse lists not-fully-paid invoices ascending by due
// date; the summary covers the whole filtered set, not just the page.
type OutstandingDuesResponse struct {
	Invoices   []domain.OutstandingInvoiceRow `json:"invoices"`
	Summary    domain.OutstandingDuesSummary  `json:"summary"`
	Pagination pagination.Result              `json:"pagination"`
}

// PaymentHistoryParams filters and pages the payment history report.
type PaymentHistoryParams struct {
	DateRange
	ClassFilter string `form:"classFilter"`
	Method      string `form:"paymentMethod"`
	pagination.Params
}

// PaymentHistoryResponse lists completed payments newest-first with a
// method-wise summary over the whole filtered set.
type PaymentHistoryResponse struct {
	Payments      []domain.PaymentHistoryRow `json:"payments"`
	MethodSummary []domain.MethodSummaryRow  `json:"methodSummary"`
	GrandTotal    decimal.Decimal            `json:"grandTotal"`
	Pagination    pagination.Result          `json:"pagination"`
}

// ClassWiseSummaryParams filters the class-wise fee summary.
type ClassWiseSummaryParams struct {
	DateRange
	AcademicYear string `form:"academicYear"`
}

// ClassWiseSummaryResponse aggregates billing vs. collection per class.
type ClassWiseSummaryResponse struct {
	ClassSummary []domain.ClassFeeSummaryRow  `json:"classSummary"`
	Totals       domain.ClassFeeSummaryTotals `json:"totals"`
}
