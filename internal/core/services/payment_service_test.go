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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockInvoiceRepo *MockInvoiceRepository
	service         portssvc.PaymentSvcFacade

	admin  domain.Actor
	parent domain.Actor
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockInvoiceRepo)
	suite.admin = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.parent = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleParent}
}

func reconResult(payment domain.Payment, total, paid decimal.Decimal) *portsrepo.ReconciliationResult {
	invoice := domain.Invoice{
		InvoiceID: payment.InvoiceID,
		Total:     total,
		Status:    domain.DeriveInvoiceStatus(total, paid),
	}
	return &portsrepo.ReconciliationResult{
		Payment:    payment,
		Invoice:    invoice,
		AmountPaid: paid,
		AmountDue:  total.Sub(paid),
	}
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	req := dto.RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(2000),
		Method:    "cash",
	}

	suite.mockPaymentRepo.On("CreateWithReconciliation", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.InvoiceID == invoiceID &&
			p.Amount.Equal(decimal.NewFromInt(2000)) &&
			p.Method == domain.MethodCash &&
			p.Status == domain.PaymentCompleted &&
			p.ReceivedBy == suite.admin.UserID
	})).Return(reconResult(domain.Payment{
		PaymentID:     uuid.NewString(),
		PaymentNumber: "PAY-2026-00007",
		ReceiptNumber: "REC-2026-00007",
		InvoiceID:     invoiceID,
		Amount:        decimal.NewFromInt(2000),
		Method:        domain.MethodCash,
		Status:        domain.PaymentCompleted,
	}, decimal.NewFromInt(5000), decimal.NewFromInt(2000)), nil).Once()

	resp, err := suite.service.RecordPayment(ctx, req, suite.admin)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.AmountPaid.Equal(decimal.NewFromInt(2000)))
	suite.True(resp.AmountDue.Equal(decimal.NewFromInt(3000)))
	suite.Equal("partially_paid", resp.Status)
	suite.Equal("PAY-2026-00007", resp.Payment.PaymentNumber)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_DefaultsTransactionDate() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	before := time.Now().UTC()

	suite.mockPaymentRepo.On("CreateWithReconciliation", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return !p.TransactionDate.Before(before)
	})).Return(reconResult(domain.Payment{InvoiceID: invoiceID, Amount: decimal.NewFromInt(10)},
		decimal.NewFromInt(10), decimal.NewFromInt(10)), nil).Once()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(10),
		Method:    "online",
	}, suite.admin)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ForbiddenForParent() {
	ctx := context.Background()

	resp, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: uuid.NewString(),
		Amount:    decimal.NewFromInt(100),
		Method:    "cash",
	}, suite.parent)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreateWithReconciliation", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmountRejected() {
	ctx := context.Background()

	resp, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: uuid.NewString(),
		Amount:    decimal.Zero,
		Method:    "cash",
	}, suite.admin)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "CreateWithReconciliation", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_OverpaymentSurfacesValidation() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockPaymentRepo.On("CreateWithReconciliation", ctx, mock.AnythingOfType("domain.Payment")).
		Return(nil, apperrors.ErrValidation).Once()

	resp, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(99999),
		Method:    "cash",
	}, suite.admin)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_StatusChangeReReconciles() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	invoiceID := uuid.NewString()
	existing := &domain.Payment{
		PaymentID: paymentID,
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(2000),
		Method:    domain.MethodCash,
		Status:    domain.PaymentCompleted,
	}
	newStatus := "refunded"

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("UpdateWithReconciliation", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Status == domain.PaymentRefunded && p.Amount.Equal(decimal.NewFromInt(2000))
	})).Return(reconResult(domain.Payment{
		PaymentID: paymentID,
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(2000),
		Status:    domain.PaymentRefunded,
	}, decimal.NewFromInt(5000), decimal.Zero), nil).Once()

	payment, err := suite.service.UpdatePayment(ctx, paymentID, dto.UpdatePaymentRequest{Status: &newStatus}, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRefunded, payment.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdatePayment_NoFieldsIsNoop() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	existing := &domain.Payment{PaymentID: paymentID, Status: domain.PaymentCompleted}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(existing, nil).Once()

	payment, err := suite.service.UpdatePayment(ctx, paymentID, dto.UpdatePaymentRequest{}, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(existing, payment)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdateWithReconciliation", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestGetPaymentByID_ParentSeesOwn() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{PaymentID: paymentID, ParentID: suite.parent.UserID}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()

	got, err := suite.service.GetPaymentByID(ctx, paymentID, suite.parent)

	suite.Require().NoError(err)
	suite.Equal(payment, got)
}

func (suite *PaymentServiceTestSuite) TestGetPaymentByID_ForbiddenForOtherGuardian() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{PaymentID: paymentID, ParentID: "another-parent"}

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()

	got, err := suite.service.GetPaymentByID(ctx, paymentID, suite.parent)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PaymentServiceTestSuite) TestListPayments_ParentForcedOntoOwnScope() {
	ctx := context.Background()

	suite.mockPaymentRepo.On("ListPayments", ctx,
		mock.MatchedBy(func(f portsrepo.ListPaymentsFilter) bool {
			return f.ParentID == suite.parent.UserID
		}), 10, 0).
		Return([]domain.Payment{}, 0, nil).Once()

	resp, err := suite.service.ListPayments(ctx, dto.ListPaymentsParams{}, suite.parent)

	suite.Require().NoError(err)
	suite.Empty(resp.Payments)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestGetAmountDue_Success() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID: invoiceID,
		ParentID:  suite.parent.UserID,
		Total:     decimal.NewFromInt(5000),
	}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("SumCompletedPayments", ctx, invoiceID).
		Return(decimal.NewFromInt(1500), nil).Once()

	resp, err := suite.service.GetAmountDue(ctx, invoiceID, suite.parent)

	suite.Require().NoError(err)
	suite.True(resp.AmountDue.Equal(decimal.NewFromInt(3500)))
	suite.True(resp.AmountPaid.Equal(decimal.NewFromInt(1500)))
}

func (suite *PaymentServiceTestSuite) TestGetAmountDue_RepoError() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(nil, expectedErr).Once()

	resp, err := suite.service.GetAmountDue(ctx, invoiceID, suite.admin)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
