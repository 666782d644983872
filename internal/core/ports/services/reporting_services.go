package services

import (
	"context"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/dto"
)

// ReportingSvcFacade produces the read-only billing reports. Every report
// is administrator-only; there are no guardian-scoped reports.
type ReportingSvcFacade interface {
	// FeeCollection groups completed payments by month and (month, class).
	FeeCollection(ctx context.Context, params dto.FeeCollectionReportParams, actor domain.Actor) (*dto.FeeCollectionReportResponse, error)
	// OutstandingDues lists pending/partially_paid invoices by due date with
	// a summary over the full filtered set.
	OutstandingDues(ctx context.Context, params dto.OutstandingDuesParams, actor domain.Actor) (*dto.OutstandingDuesResponse, error)
	// PaymentHistory lists completed payments newest-first with a
	// method-wise summary over the full filtered set.
	PaymentHistory(ctx context.Context, params dto.PaymentHistoryParams, actor domain.Actor) (*dto.PaymentHistoryResponse, error)
	// ClassWiseSummary aggregates billing vs. collection per student class.
	ClassWiseSummary(ctx context.Context, params dto.ClassWiseSummaryParams, actor domain.Actor) (*dto.ClassWiseSummaryResponse, error)
}
