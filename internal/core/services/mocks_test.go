package services_test

import (
	"context"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, replaceItems bool) error {
	args := m.Called(ctx, invoice, replaceItems)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.ListInvoicesFilter, limit, offset int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepository) CountPaymentsForInvoice(ctx context.Context, invoiceID string) (int, error) {
	args := m.Called(ctx, invoiceID)
	return args.Int(0), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreateWithReconciliation(ctx context.Context, payment domain.Payment) (*portsrepo.ReconciliationResult, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.ReconciliationResult), args.Error(1)
}

func (m *MockPaymentRepository) UpdateWithReconciliation(ctx context.Context, payment domain.Payment) (*portsrepo.ReconciliationResult, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.ReconciliationResult), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, filter portsrepo.ListPaymentsFilter, limit, offset int) ([]domain.Payment, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Int(1), args.Error(2)
}

func (m *MockPaymentRepository) SumCompletedPayments(ctx context.Context, invoiceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock FeeRepository ---
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) SaveFee(ctx context.Context, fee domain.Fee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeRepository) UpdateFee(ctx context.Context, fee domain.Fee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeRepository) FindFeeByID(ctx context.Context, feeID string) (*domain.Fee, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fee), args.Error(1)
}

func (m *MockFeeRepository) ListFees(ctx context.Context, activeOnly bool) ([]domain.Fee, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fee), args.Error(1)
}

// --- Mock StudentRepository ---
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextValue(ctx context.Context, prefix string, year int) (int64, error) {
	args := m.Called(ctx, prefix, year)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetMonthlyCollection(ctx context.Context, dateRange portsrepo.DateWindow, classFilter string) ([]domain.MonthlyCollectionRow, error) {
	args := m.Called(ctx, dateRange, classFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyCollectionRow), args.Error(1)
}

func (m *MockReportingRepository) GetClassCollectionBreakdown(ctx context.Context, dateRange portsrepo.DateWindow, classFilter string) ([]domain.ClassCollectionRow, error) {
	args := m.Called(ctx, dateRange, classFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassCollectionRow), args.Error(1)
}

func (m *MockReportingRepository) GetOutstandingInvoices(ctx context.Context, filter portsrepo.OutstandingFilter, limit, offset int) ([]domain.OutstandingInvoiceRow, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.OutstandingInvoiceRow), args.Int(1), args.Error(2)
}

func (m *MockReportingRepository) GetOutstandingSummary(ctx context.Context, filter portsrepo.OutstandingFilter) (*domain.OutstandingDuesSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OutstandingDuesSummary), args.Error(1)
}

func (m *MockReportingRepository) GetPaymentHistory(ctx context.Context, filter portsrepo.PaymentHistoryFilter, limit, offset int) ([]domain.PaymentHistoryRow, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PaymentHistoryRow), args.Int(1), args.Error(2)
}

func (m *MockReportingRepository) GetMethodSummary(ctx context.Context, filter portsrepo.PaymentHistoryFilter) ([]domain.MethodSummaryRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MethodSummaryRow), args.Error(1)
}

func (m *MockReportingRepository) GetClassFeeSummary(ctx context.Context, filter portsrepo.ClassSummaryFilter) ([]domain.ClassFeeSummaryRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassFeeSummaryRow), args.Error(1)
}
