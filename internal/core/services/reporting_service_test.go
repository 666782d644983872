package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portssvc "github.com/schoolfees/school_fees_app/internal/core/ports/services"
	"github.com/schoolfees/school_fees_app/internal/core/services"
	"github.com/schoolfees/school_fees_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade

	admin  domain.Actor
	parent domain.Actor
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.admin = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.parent = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleParent}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestFeeCollection_ForbiddenForParent() {
	ctx := context.Background()

	resp, err := suite.service.FeeCollection(ctx, dto.FeeCollectionReportParams{}, suite.parent)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetMonthlyCollection", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestFeeCollection_HalfOpenDateRangeRejected() {
	ctx := context.Background()
	params := dto.FeeCollectionReportParams{
		DateRange: dto.DateRange{StartDate: datePtr(2026, time.April, 1)},
	}

	resp, err := suite.service.FeeCollection(ctx, params, suite.admin)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestFeeCollection_InvertedDateRangeRejected() {
	ctx := context.Background()
	params := dto.FeeCollectionReportParams{
		DateRange: dto.DateRange{
			StartDate: datePtr(2026, time.June, 1),
			EndDate:   datePtr(2026, time.April, 1),
		},
	}

	resp, err := suite.service.FeeCollection(ctx, params, suite.admin)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestFeeCollection_DerivesGrandTotals() {
	ctx := context.Background()
	monthly := []domain.MonthlyCollectionRow{
		{Month: "2026-04", TotalCollected: decimal.NewFromInt(12000), PaymentCount: 8},
		{Month: "2026-05", TotalCollected: decimal.NewFromInt(9500), PaymentCount: 5},
	}
	breakdown := []domain.ClassCollectionRow{
		{Month: "2026-04", ClassName: "Grade 5", TotalCollected: decimal.NewFromInt(12000), PaymentCount: 8},
	}

	suite.mockRepo.On("GetMonthlyCollection", ctx, mock.AnythingOfType("repositories.DateWindow"), "").
		Return(monthly, nil).Once()
	suite.mockRepo.On("GetClassCollectionBreakdown", ctx, mock.AnythingOfType("repositories.DateWindow"), "").
		Return(breakdown, nil).Once()

	resp, err := suite.service.FeeCollection(ctx, dto.FeeCollectionReportParams{}, suite.admin)

	suite.Require().NoError(err)
	suite.True(resp.GrandTotal.Equal(decimal.NewFromInt(21500)))
	suite.Equal(13, resp.TotalPayments)
	suite.Len(resp.ClassBreakdown, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestOutstandingDues_DerivesTotalDue() {
	ctx := context.Background()
	rows := []domain.OutstandingInvoiceRow{
		{InvoiceNumber: "INV-2026-00001", AmountDue: decimal.NewFromInt(3000), IsOverdue: true},
	}
	summary := &domain.OutstandingDuesSummary{
		TotalBilled:  decimal.NewFromInt(10000),
		TotalPaid:    decimal.NewFromInt(4000),
		InvoiceCount: 3,
		OverdueCount: 1,
	}

	suite.mockRepo.On("GetOutstandingInvoices", ctx,
		mock.AnythingOfType("repositories.OutstandingFilter"), 20, 0).
		Return(rows, 3, nil).Once()
	suite.mockRepo.On("GetOutstandingSummary", ctx,
		mock.AnythingOfType("repositories.OutstandingFilter")).
		Return(summary, nil).Once()

	resp, err := suite.service.OutstandingDues(ctx, dto.OutstandingDuesParams{}, suite.admin)

	suite.Require().NoError(err)
	suite.True(resp.Summary.TotalDue.Equal(decimal.NewFromInt(6000)))
	suite.Equal(1, resp.Summary.OverdueCount)
	suite.Equal(3, resp.Pagination.Total)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestPaymentHistory_UnknownMethodRejected() {
	ctx := context.Background()
	params := dto.PaymentHistoryParams{Method: "barter"}

	resp, err := suite.service.PaymentHistory(ctx, params, suite.admin)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetPaymentHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestPaymentHistory_GrandTotalFromMethodSummary() {
	ctx := context.Background()
	payments := []domain.PaymentHistoryRow{
		{PaymentNumber: "PAY-2026-00003", Amount: decimal.NewFromInt(2000), Method: domain.MethodCash},
	}
	methodSummary := []domain.MethodSummaryRow{
		{Method: domain.MethodOnline, TotalAmount: decimal.NewFromInt(5500), Count: 4},
		{Method: domain.MethodCash, TotalAmount: decimal.NewFromInt(2000), Count: 1},
	}

	suite.mockRepo.On("GetPaymentHistory", ctx,
		mock.AnythingOfType("repositories.PaymentHistoryFilter"), 20, 0).
		Return(payments, 5, nil).Once()
	suite.mockRepo.On("GetMethodSummary", ctx,
		mock.AnythingOfType("repositories.PaymentHistoryFilter")).
		Return(methodSummary, nil).Once()

	resp, err := suite.service.PaymentHistory(ctx, dto.PaymentHistoryParams{}, suite.admin)

	suite.Require().NoError(err)
	suite.True(resp.GrandTotal.Equal(decimal.NewFromInt(7500)))
	suite.Len(resp.MethodSummary, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestClassWiseSummary_DerivesPendingAndRate() {
	ctx := context.Background()
	rows := []domain.ClassFeeSummaryRow{
		{ClassName: "Grade 5", TotalBilled: decimal.NewFromInt(10000), TotalCollected: decimal.NewFromInt(7500)},
		{ClassName: "Grade 6", TotalBilled: decimal.Zero, TotalCollected: decimal.Zero},
	}

	suite.mockRepo.On("GetClassFeeSummary", ctx,
		mock.AnythingOfType("repositories.ClassSummaryFilter")).
		Return(rows, nil).Once()

	resp, err := suite.service.ClassWiseSummary(ctx, dto.ClassWiseSummaryParams{}, suite.admin)

	suite.Require().NoError(err)
	suite.Require().Len(resp.ClassSummary, 2)
	suite.True(resp.ClassSummary[0].TotalPending.Equal(decimal.NewFromInt(2500)))
	suite.True(resp.ClassSummary[0].CollectionRate.Equal(decimal.NewFromInt(75)))
	suite.True(resp.ClassSummary[1].CollectionRate.IsZero())
	suite.True(resp.Totals.TotalBilled.Equal(decimal.NewFromInt(10000)))
	suite.True(resp.Totals.TotalPending.Equal(decimal.NewFromInt(2500)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestClassWiseSummary_ForbiddenForParent() {
	ctx := context.Background()

	resp, err := suite.service.ClassWiseSummary(ctx, dto.ClassWiseSummaryParams{}, suite.parent)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Run Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
