package repositories

import (
	"context"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListPaymentsFilter narrows the payment list. Zero values mean "any"; the
// date window applies to the transaction date and is inclusive.
type ListPaymentsFilter struct {
	StudentID string
	InvoiceID string
	ParentID  string
	Status    string
	Method    string
	DateRange DateWindow
}

// ReconciliationResult reports the owning invoice's figures after a payment
// write. AmountPaid is the sum of completed payments including this one.
type ReconciliationResult struct {
	Payment    domain.Payment
	Invoice    domain.Invoice
	AmountPaid decimal.Decimal
	AmountDue  decimal.Decimal
}

// PaymentRepositoryFacade provides persistence for payments and runs the
// reconciliation critical section.
type PaymentRepositoryFacade interface {
	// CreateWithReconciliation performs the serialized payment write: it
	// locks the invoice row, sums existing completed payments, rejects an
	// amount above the remainder with ErrValidation, allocates payment and
	// receipt numbers, inserts the payment with student/parent copied from
	// the locked invoice, and persists the re-derived invoice status -- all
	// in one transaction. Concurrent writes against the same invoice queue
	// on the row lock.
	CreateWithReconciliation(ctx context.Context, payment domain.Payment) (*ReconciliationResult, error)
	// UpdateWithReconciliation persists an edited payment (amount unchanged)
	// and re-derives the owning invoice's status under the same lock. A
	// status flip to completed that would overshoot the total fails with
	// ErrValidation and persists nothing.
	UpdateWithReconciliation(ctx context.Context, payment domain.Payment) (*ReconciliationResult, error)
	// FindPaymentByID returns the payment or ErrNotFound.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	// ListPayments returns one page plus the total count of the filtered set.
	ListPayments(ctx context.Context, filter ListPaymentsFilter, limit, offset int) ([]domain.Payment, int, error)
	// SumCompletedPayments returns the completed-payment total for an invoice.
	SumCompletedPayments(ctx context.Context, invoiceID string) (decimal.Decimal, error)
}
