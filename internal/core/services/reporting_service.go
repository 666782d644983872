package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
	portssvc "github.com/schoolfees/school_fees_app/internal/core/ports/services"
	"github.com/schoolfees/school_fees_app/internal/dto"
	"github.com/schoolfees/school_fees_app/internal/utils/pagination"
)

const defaultReportPageSize = 20

// reportingService runs the read-only aggregation reports. The repository
// does the grouping; this layer validates parameters, enforces the admin-only
// rule, and derives the figures that follow from the grouped rows.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// validateDateRange rejects half-open windows and inverted windows.
func validateDateRange(r dto.DateRange) (portsrepo.DateWindow, error) {
	if (r.StartDate == nil) != (r.EndDate == nil) {
		return portsrepo.DateWindow{}, fmt.Errorf("%w: startDate and endDate must be provided together", apperrors.ErrValidation)
	}
	if r.IsSet() && r.EndDate.Before(*r.StartDate) {
		return portsrepo.DateWindow{}, fmt.Errorf("%w: endDate must not precede startDate", apperrors.ErrValidation)
	}
	return portsrepo.DateWindow{Start: r.StartDate, End: r.EndDate}, nil
}

// FeeCollection groups completed payments by month and by (month, class).
func (s *reportingService) FeeCollection(ctx context.Context, params dto.FeeCollectionReportParams, actor domain.Actor) (*dto.FeeCollectionReportResponse, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	window, err := validateDateRange(params.DateRange)
	if err != nil {
		return nil, err
	}

	monthly, err := s.reportingRepo.GetMonthlyCollection(ctx, window, params.ClassFilter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate monthly collection")
		return nil, fmt.Errorf("failed to build fee collection report: %w", err)
	}

	breakdown, err := s.reportingRepo.GetClassCollectionBreakdown(ctx, window, params.ClassFilter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate class collection breakdown")
		return nil, fmt.Errorf("failed to build fee collection report: %w", err)
	}

	grandTotal := decimal.Zero
	totalPayments := 0
	for _, row := range monthly {
		grandTotal = grandTotal.Add(row.TotalCollected)
		totalPayments += row.PaymentCount
	}

	s.LogDebug(ctx, "Fee collection report built",
		slog.Int("months", len(monthly)),
		slog.Int("payments", totalPayments))

	return &dto.FeeCollectionReportResponse{
		MonthlyCollection: monthly,
		ClassBreakdown:    breakdown,
		GrandTotal:        grandTotal,
		TotalPayments:     totalPayments,
	}, nil
}

// OutstandingDues lists not-fully-paid invoices by due date ascending. The
// summary covers the entire filtered set, not just the returned page.
func (s *reportingService) OutstandingDues(ctx context.Context, params dto.OutstandingDuesParams, actor domain.Actor) (*dto.OutstandingDuesResponse, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	filter := portsrepo.OutstandingFilter{
		ClassFilter: params.ClassFilter,
		Now:         time.Now().UTC(),
	}
	page := params.Params.Normalize(defaultReportPageSize)

	invoices, total, err := s.reportingRepo.GetOutstandingInvoices(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list outstanding invoices")
		return nil, fmt.Errorf("failed to build outstanding dues report: %w", err)
	}

	summary, err := s.reportingRepo.GetOutstandingSummary(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarise outstanding invoices")
		return nil, fmt.Errorf("failed to build outstanding dues report: %w", err)
	}
	summary.TotalDue = summary.TotalBilled.Sub(summary.TotalPaid)

	return &dto.OutstandingDuesResponse{
		Invoices:   invoices,
		Summary:    *summary,
		Pagination: pagination.NewResult(total, page),
	}, nil
}

// PaymentHistory lists completed payments newest-first; the method-wise
// summary and grand total cover the entire filtered set.
func (s *reportingService) PaymentHistory(ctx context.Context, params dto.PaymentHistoryParams, actor domain.Actor) (*dto.PaymentHistoryResponse, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	window, err := validateDateRange(params.DateRange)
	if err != nil {
		return nil, err
	}
	if params.Method != "" && !domain.ValidPaymentMethod(domain.PaymentMethod(params.Method)) {
		return nil, fmt.Errorf("%w: unrecognised payment method %q", apperrors.ErrValidation, params.Method)
	}

	filter := portsrepo.PaymentHistoryFilter{
		DateRange:   window,
		ClassFilter: params.ClassFilter,
		Method:      params.Method,
	}
	page := params.Params.Normalize(defaultReportPageSize)

	payments, total, err := s.reportingRepo.GetPaymentHistory(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment history")
		return nil, fmt.Errorf("failed to build payment history report: %w", err)
	}

	methodSummary, err := s.reportingRepo.GetMethodSummary(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarise payments by method")
		return nil, fmt.Errorf("failed to build payment history report: %w", err)
	}

	grandTotal := decimal.Zero
	for _, row := range methodSummary {
		grandTotal = grandTotal.Add(row.TotalAmount)
	}

	return &dto.PaymentHistoryResponse{
		Payments:      payments,
		MethodSummary: methodSummary,
		GrandTotal:    grandTotal,
		Pagination:    pagination.NewResult(total, page),
	}, nil
}

// ClassWiseSummary aggregates billing vs. collection per student class and
// derives the pending amount and collection rate for each row.
func (s *reportingService) ClassWiseSummary(ctx context.Context, params dto.ClassWiseSummaryParams, actor domain.Actor) (*dto.ClassWiseSummaryResponse, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	window, err := validateDateRange(params.DateRange)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.ClassSummaryFilter{
		DateRange:    window,
		AcademicYear: params.AcademicYear,
	}

	rows, err := s.reportingRepo.GetClassFeeSummary(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate class fee summary")
		return nil, fmt.Errorf("failed to build class-wise summary: %w", err)
	}

	totals := domain.ClassFeeSummaryTotals{
		TotalBilled:    decimal.Zero,
		TotalCollected: decimal.Zero,
		TotalPending:   decimal.Zero,
	}
	for i := range rows {
		rows[i].TotalPending = rows[i].TotalBilled.Sub(rows[i].TotalCollected)
		rows[i].CollectionRate = domain.CollectionRate(rows[i].TotalBilled, rows[i].TotalCollected)
		totals.TotalBilled = totals.TotalBilled.Add(rows[i].TotalBilled)
		totals.TotalCollected = totals.TotalCollected.Add(rows[i].TotalCollected)
		totals.TotalPending = totals.TotalPending.Add(rows[i].TotalPending)
	}

	s.LogDebug(ctx, "Class-wise summary built", slog.Int("classes", len(rows)))

	return &dto.ClassWiseSummaryResponse{
		ClassSummary: rows,
		Totals:       totals,
	}, nil
}
