package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
	portssvc "github.com/schoolfees/school_fees_app/internal/core/ports/services"
	"github.com/schoolfees/school_fees_app/internal/core/services"
	"github.com/schoolfees/school_fees_app/internal/dto"
	"github.com/schoolfees/school_fees_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockPaymentRepo  *MockPaymentRepository
	mockStudentRepo  *MockStudentRepository
	mockSequenceRepo *MockSequenceRepository
	service          portssvc.InvoiceSvcFacade

	admin  domain.Actor
	parent domain.Actor
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockStudentRepo = new(MockStudentRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockPaymentRepo,
		suite.mockStudentRepo,
		suite.mockSequenceRepo,
	)
	suite.admin = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.parent = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleParent}
}

func (suite *InvoiceServiceTestSuite) validCreateRequest(parentID string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		StudentID: "student-1",
		ParentID:  parentID,
		Items: []dto.InvoiceItemRequest{
			{Description: "Tuition Fee", Amount: decimal.NewFromInt(5000)},
			{Description: "Library Fee", Amount: decimal.NewFromInt(300)},
		},
		Tax:          decimal.NewFromInt(100),
		Discount:     decimal.NewFromInt(400),
		DueDate:      time.Now().AddDate(0, 1, 0),
		AcademicYear: "2026-2027",
		Term:         "Term 1",
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest("parent-1")

	suite.mockStudentRepo.On("FindStudentByID", ctx, "student-1").
		Return(&domain.Student{StudentID: "student-1", ParentID: "parent-1", ClassName: "Grade 5"}, nil).Once()
	suite.mockSequenceRepo.On("NextValue", ctx, "INV", time.Now().UTC().Year()).
		Return(int64(42), nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Subtotal.Equal(decimal.NewFromInt(5300)) &&
			inv.Total.Equal(decimal.NewFromInt(5000)) &&
			inv.Status == domain.InvoicePending &&
			len(inv.Items) == 2
	})).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.admin)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	// subtotal 5300 + tax 100 - discount 400
	suite.True(invoice.Total.Equal(decimal.NewFromInt(5000)))
	suite.Regexp(`^INV-\d{4}-00042$`, invoice.InvoiceNumber)
	suite.Equal(domain.InvoicePending, invoice.Status)
	suite.Equal(suite.admin.UserID, invoice.CreatedBy)

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockSequenceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_ForbiddenForParent() {
	ctx := context.Background()
	req := suite.validCreateRequest(suite.parent.UserID)

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.parent)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_StudentNotFound() {
	ctx := context.Background()
	req := suite.validCreateRequest("parent-1")

	suite.mockStudentRepo.On("FindStudentByID", ctx, "student-1").
		Return(nil, apperrors.ErrNotFound).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.admin)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_GuardianMismatch() {
	ctx := context.Background()
	req := suite.validCreateRequest("someone-else")

	suite.mockStudentRepo.On("FindStudentByID", ctx, "student-1").
		Return(&domain.Student{StudentID: "student-1", ParentID: "parent-1"}, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.admin)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSequenceRepo.AssertNotCalled(suite.T(), "NextValue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NegativeItemRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest("parent-1")
	req.Items[1].Amount = decimal.NewFromInt(-300)

	suite.mockStudentRepo.On("FindStudentByID", ctx, "student-1").
		Return(&domain.Student{StudentID: "student-1", ParentID: "parent-1"}, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.admin)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInvoiceNegativeItem)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NegativeTotalRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest("parent-1")
	// discount larger than subtotal plus tax
	req.Discount = decimal.NewFromInt(10000)

	suite.mockStudentRepo.On("FindStudentByID", ctx, "student-1").
		Return(&domain.Student{StudentID: "student-1", ParentID: "parent-1"}, nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, req, suite.admin)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, services.ErrInvoiceNegativeTotal)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_RecomputesTotalsOnItemChange() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID: invoiceID,
		ParentID:  "parent-1",
		Subtotal:  decimal.NewFromInt(5000),
		Tax:       decimal.Zero,
		Discount:  decimal.Zero,
		Total:     decimal.NewFromInt(5000),
		Status:    domain.InvoicePending,
	}
	newItems := []dto.InvoiceItemRequest{
		{Description: "Tuition Fee", Amount: decimal.NewFromInt(7000)},
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Subtotal.Equal(decimal.NewFromInt(7000)) && inv.Total.Equal(decimal.NewFromInt(7000))
	}), true).Return(nil).Once()

	invoice, err := suite.service.UpdateInvoice(ctx, invoiceID, dto.UpdateInvoiceRequest{Items: &newItems}, suite.admin)

	suite.Require().NoError(err)
	suite.True(invoice.Total.Equal(decimal.NewFromInt(7000)))
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_NoFieldsIsNoop() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, Total: decimal.NewFromInt(100)}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(existing, nil).Once()

	invoice, err := suite.service.UpdateInvoice(ctx, invoiceID, dto.UpdateInvoiceRequest{}, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(existing, invoice)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_BlockedByPayments() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).
		Return(&domain.Invoice{InvoiceID: invoiceID}, nil).Once()
	suite.mockInvoiceRepo.On("CountPaymentsForInvoice", ctx, invoiceID).Return(1, nil).Once()

	err := suite.service.DeleteInvoice(ctx, invoiceID, suite.admin)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).
		Return(&domain.Invoice{InvoiceID: invoiceID}, nil).Once()
	suite.mockInvoiceRepo.On("CountPaymentsForInvoice", ctx, invoiceID).Return(0, nil).Once()
	suite.mockInvoiceRepo.On("DeleteInvoice", ctx, invoiceID).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, invoiceID, suite.admin)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_AttachesReconciliationFigures() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID: invoiceID,
		ParentID:  suite.parent.UserID,
		Total:     decimal.NewFromInt(5000),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SumCompletedPayments", ctx, invoiceID).
		Return(decimal.NewFromInt(2000), nil).Once()

	detail, err := suite.service.GetInvoiceByID(ctx, invoiceID, suite.parent)

	suite.Require().NoError(err)
	suite.True(detail.AmountPaid.Equal(decimal.NewFromInt(2000)))
	suite.True(detail.AmountDue.Equal(decimal.NewFromInt(3000)))
}

func (suite *InvoiceServiceTestSuite) TestGetInvoiceByID_ForbiddenForOtherGuardian() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{InvoiceID: invoiceID, ParentID: "another-parent"}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()

	detail, err := suite.service.GetInvoiceByID(ctx, invoiceID, suite.parent)

	suite.Require().Error(err)
	suite.Nil(detail)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SumCompletedPayments", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_ParentForcedOntoOwnScope() {
	ctx := context.Background()

	suite.mockInvoiceRepo.On("ListInvoices", ctx,
		mock.MatchedBy(func(f portsrepo.ListInvoicesFilter) bool {
			return f.ParentID == suite.parent.UserID
		}), 10, 0).
		Return([]domain.Invoice{}, 0, nil).Once()

	params := dto.ListInvoicesParams{ParentID: "someone-else"}
	resp, err := suite.service.ListInvoices(ctx, params, suite.parent)

	suite.Require().NoError(err)
	suite.Equal(pagination.Result{Total: 0, Page: 1, Pages: 0}, resp.Pagination)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockInvoiceRepo.On("ListInvoices", ctx, mock.Anything, 10, 0).
		Return(nil, 0, expectedErr).Once()

	resp, err := suite.service.ListInvoices(ctx, dto.ListInvoicesParams{}, suite.admin)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
