package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	portsrepo "github.com/schoolfees/school_fees_app/internal/core/ports/repositories"
	portssvc "github.com/schoolfees/school_fees_app/internal/core/ports/services"
	"github.com/schoolfees/school_fees_app/internal/dto"
	"github.com/schoolfees/school_fees_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotPositive = errors.New("payment amount must be positive")
	ErrPaymentExceedsDue  = errors.New("payment amount exceeds amount due")
)

const defaultPaymentPageSize = 10

// paymentService is the reconciliation engine: it maintains the relationship
// between an invoice's total and the completed payments against it.
type paymentService struct {
	BaseService
	paymentRepo portsrepo.PaymentRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, invoiceRepo portsrepo.InvoiceRepositoryFacade) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment creates a payment and updates the owning invoice's status.
// The repository serializes the whole sequence per invoice, so two
// simultaneous submissions cannot both pass the amount-due check.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, actor domain.Actor) (*dto.RecordPaymentResponse, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaymentNotPositive)
	}

	method := domain.PaymentMethod(req.Method)
	if !domain.ValidPaymentMethod(method) {
		// Binding already rejects this; kept for non-HTTP callers.
		return nil, fmt.Errorf("%w: unrecognised payment method %q", apperrors.ErrValidation, req.Method)
	}

	status := domain.PaymentCompleted
	if req.Status != nil {
		status = domain.PaymentStatus(*req.Status)
		if !domain.ValidPaymentStatus(status) {
			return nil, fmt.Errorf("%w: unrecognised payment status %q", apperrors.ErrValidation, *req.Status)
		}
	}

	now := time.Now().UTC()
	transactionDate := now
	if req.TransactionDate != nil {
		transactionDate = *req.TransactionDate
	}

	payment := domain.Payment{
		PaymentID: uuid.NewString(),
		InvoiceID: req.InvoiceID,
		// Student, parent, and the display numbers are filled inside the
		// reconciliation transaction from the locked invoice and the
		// sequence rows.
		Amount:          req.Amount,
		Method:          method,
		TransactionID:   req.TransactionID,
		TransactionDate: transactionDate,
		ChequeNumber:    req.ChequeNumber,
		ChequeDate:      req.ChequeDate,
		BankName:        req.BankName,
		Status:          status,
		Remarks:         req.Remarks,
		ReceivedBy:      actor.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	result, err := s.paymentRepo.CreateWithReconciliation(ctx, payment)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to record payment", slog.String("invoice_id", req.InvoiceID))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", result.Payment.PaymentID),
		slog.String("payment_number", result.Payment.PaymentNumber),
		slog.String("invoice_id", result.Invoice.InvoiceID),
		slog.String("invoice_status", string(result.Invoice.Status)),
		slog.String("amount", result.Payment.Amount.String()))

	return &dto.RecordPaymentResponse{
		Payment:      dto.ToPaymentResponse(&result.Payment),
		InvoiceTotal: result.Invoice.Total,
		AmountPaid:   result.AmountPaid,
		AmountDue:    result.AmountDue,
		Status:       string(result.Invoice.Status),
	}, nil
}

// UpdatePayment edits a payment's metadata or status. Amount is immutable;
// a status change is re-reconciled so the invoice's status and the
// non-overpayment invariant stay intact.
func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, actor domain.Actor) (*domain.Payment, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment for update", slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	updated := false
	if req.Method != nil {
		method := domain.PaymentMethod(*req.Method)
		if !domain.ValidPaymentMethod(method) {
			return nil, fmt.Errorf("%w: unrecognised payment method %q", apperrors.ErrValidation, *req.Method)
		}
		payment.Method = method
		updated = true
	}
	if req.TransactionID != nil {
		payment.TransactionID = *req.TransactionID
		updated = true
	}
	if req.ChequeNumber != nil {
		payment.ChequeNumber = *req.ChequeNumber
		updated = true
	}
	if req.ChequeDate != nil {
		payment.ChequeDate = req.ChequeDate
		updated = true
	}
	if req.BankName != nil {
		payment.BankName = *req.BankName
		updated = true
	}
	if req.Remarks != nil {
		payment.Remarks = *req.Remarks
		updated = true
	}
	if req.Status != nil {
		status := domain.PaymentStatus(*req.Status)
		if !domain.ValidPaymentStatus(status) {
			return nil, fmt.Errorf("%w: unrecognised payment status %q", apperrors.ErrValidation, *req.Status)
		}
		payment.Status = status
		updated = true
	}

	if !updated {
		s.LogDebug(ctx, "No fields provided for payment update", slog.String("payment_id", paymentID))
		return payment, nil
	}

	payment.LastUpdatedAt = time.Now().UTC()
	payment.LastUpdatedBy = actor.UserID

	result, err := s.paymentRepo.UpdateWithReconciliation(ctx, *payment)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save payment update", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to save payment update: %w", err)
	}

	s.LogInfo(ctx, "Payment updated",
		slog.String("payment_id", paymentID),
		slog.String("invoice_status", string(result.Invoice.Status)))
	return &result.Payment, nil
}

// GetPaymentByID returns a payment, scoped to the actor.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string, actor domain.Actor) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	if !actor.CanViewLedgerOf(payment.ParentID) {
		s.LogWarn(ctx, "Actor attempted to view another guardian's payment",
			slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("%w: not authorized to view this payment", apperrors.ErrForbidden)
	}

	return payment, nil
}

// ListPayments returns a filtered page, forcing parent actors onto their own
// guardian reference.
func (s *paymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams, actor domain.Actor) (*dto.ListPaymentsResponse, error) {
	filter := portsrepo.ListPaymentsFilter{
		StudentID: params.StudentID,
		InvoiceID: params.InvoiceID,
		Status:    params.Status,
		Method:    params.Method,
		DateRange: portsrepo.DateWindow{Start: params.StartDate, End: params.EndDate},
	}
	if !actor.IsAdmin() {
		filter.ParentID = actor.UserID
	}

	page := params.Params.Normalize(defaultPaymentPageSize)

	payments, total, err := s.paymentRepo.ListPayments(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}

	resp := &dto.ListPaymentsResponse{
		Payments:   dto.ToPaymentResponses(payments),
		Pagination: pagination.NewResult(total, page),
	}
	s.LogDebug(ctx, "Payments listed", slog.Int("count", len(payments)), slog.Int("total", total))
	return resp, nil
}

// GetAmountDue is the single reconciliation read used everywhere amount-due
// is displayed: invoice total minus the sum of its completed payments.
func (s *paymentService) GetAmountDue(ctx context.Context, invoiceID string, actor domain.Actor) (*dto.AmountDueResponse, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice for amount due", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}

	if !actor.CanViewLedgerOf(invoice.ParentID) {
		return nil, fmt.Errorf("%w: not authorized to view this invoice", apperrors.ErrForbidden)
	}

	amountPaid, err := s.paymentRepo.SumCompletedPayments(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum payments for invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to compute amount paid: %w", err)
	}

	return &dto.AmountDueResponse{
		InvoiceID:    invoiceID,
		InvoiceTotal: invoice.Total,
		AmountPaid:   amountPaid,
		AmountDue:    invoice.Total.Sub(amountPaid),
	}, nil
}
