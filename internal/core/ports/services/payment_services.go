package services

import (
	"context"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/dto"
)

// PaymentSvcFacade exposes payment recording and the reconciliation reads.
type PaymentSvcFacade interface {
	// RecordPayment creates a payment against an invoice and updates the
	// invoice's status in the same serialized transaction. An amount above
	// the remaining due fails with ErrValidation and persists nothing.
	// Admin only.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actor domain.Actor) (*dto.RecordPaymentResponse, error)
	// UpdatePayment edits method, transaction metadata, remarks, or status.
	// Amount is immutable; status changes re-reconcile the owning invoice.
	// Admin only.
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, actor domain.Actor) (*domain.Payment, error)
	// GetPaymentByID returns a payment, scoped to the actor.
	GetPaymentByID(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error)
	// ListPayments returns a filtered page. Parent actors are forced onto
	// their own guardian reference.
	ListPayments(ctx context.Context, params dto.ListPaymentsParams, actor domain.Actor) (*dto.ListPaymentsResponse, error)
	// GetAmountDue is the pure read used everywhere amount-due is shown:
	// invoice total minus the sum of its completed payments.
	GetAmountDue(ctx context.Context, invoiceID string, actor domain.Actor) (*dto.AmountDueResponse, error)
}
