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
	"github.com/schoolfees/school_fees_app/internal/utils/numbering"
	"github.com/schoolfees/school_fees_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceNoItems       = errors.New("invoice must have at least one line item")
	ErrInvoiceNegativeItem  = errors.New("invoice item amount cannot be negative")
	ErrInvoiceNegativeTotal = errors.New("invoice total cannot be negative")
	ErrInvoiceHasPayments   = errors.New("cannot delete invoice with existing payments")
)

const defaultInvoicePageSize = 10

// invoiceService provides invoice CRUD with computed totals and caller
// scoping.
type invoiceService struct {
	BaseService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	paymentRepo  portsrepo.PaymentRepositoryFacade
	studentRepo  portsrepo.StudentRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	studentRepo portsrepo.StudentRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		studentRepo:  studentRepo,
		sequenceRepo: sequenceRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// computeTotals derives subtotal and total from the items and adjustments.
// The invariant total == subtotal + tax - discount is enforced here and only
// here, for both creates and item-touching updates.
func computeTotals(items []domain.InvoiceItem, tax, discount decimal.Decimal) (subtotal, total decimal.Decimal, err error) {
	if len(items) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInvoiceNoItems)
	}
	subtotal = decimal.Zero
	for _, item := range items {
		if item.Amount.IsNegative() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %w (%s)", apperrors.ErrValidation, ErrInvoiceNegativeItem, item.Description)
		}
		subtotal = subtotal.Add(item.Amount)
	}
	if tax.IsNegative() || discount.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: tax and discount cannot be negative", apperrors.ErrValidation)
	}
	total = subtotal.Add(tax).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvoiceNegativeTotal)
	}
	return subtotal, total, nil
}

func toDomainItems(invoiceID string, reqItems []dto.InvoiceItemRequest) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, len(reqItems))
	for i, item := range reqItems {
		items[i] = domain.InvoiceItem{
			ItemID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			FeeID:       item.FeeID,
			Description: item.Description,
			Amount:      item.Amount,
		}
	}
	return items
}

// CreateInvoice computes totals, allocates an invoice number, and persists
// the invoice. Implements portssvc.InvoiceSvcFacade.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	// Verify the roster references before billing against them.
	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("student %s: %w", req.StudentID, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to resolve student for invoice", slog.String("student_id", req.StudentID))
		return nil, fmt.Errorf("failed to resolve student: %w", err)
	}
	if student.ParentID != "" && student.ParentID != req.ParentID {
		return nil, fmt.Errorf("%w: parent %s is not the guardian of student %s", apperrors.ErrValidation, req.ParentID, req.StudentID)
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	items := toDomainItems(invoiceID, req.Items)
	subtotal, total, err := computeTotals(items, req.Tax, req.Discount)
	if err != nil {
		return nil, err
	}

	seq, err := s.sequenceRepo.NextValue(ctx, numbering.PrefixInvoice, now.Year())
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate invoice number")
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	invoice := domain.Invoice{
		InvoiceID:     invoiceID,
		InvoiceNumber: numbering.Format(numbering.PrefixInvoice, now.Year(), seq),
		StudentID:     req.StudentID,
		ParentID:      req.ParentID,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           req.Tax,
		Discount:      req.Discount,
		Total:         total,
		DueDate:       req.DueDate,
		Status:        domain.InvoicePending,
		AcademicYear:  req.AcademicYear,
		Term:          req.Term,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_number", invoice.InvoiceNumber))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("total", invoice.Total.String()))
	return &invoice, nil
}

// UpdateInvoice applies a partial administrative edit. Touching items, tax,
// or discount forces the totals to be recomputed.
func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice for update", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}

	updated := false
	itemsChanged := false
	if req.Items != nil {
		invoice.Items = toDomainItems(invoice.InvoiceID, *req.Items)
		itemsChanged = true
		updated = true
	}
	if req.Tax != nil {
		invoice.Tax = *req.Tax
		itemsChanged = true
		updated = true
	}
	if req.Discount != nil {
		invoice.Discount = *req.Discount
		itemsChanged = true
		updated = true
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
		updated = true
	}
	if req.Status != nil {
		invoice.Status = domain.InvoiceStatus(*req.Status)
		updated = true
	}
	if req.AcademicYear != nil {
		invoice.AcademicYear = *req.AcademicYear
		updated = true
	}
	if req.Term != nil {
		invoice.Term = *req.Term
		updated = true
	}

	if !updated {
		s.LogDebug(ctx, "No fields provided for invoice update", slog.String("invoice_id", invoiceID))
		return invoice, nil
	}

	if itemsChanged {
		subtotal, total, err := computeTotals(invoice.Items, invoice.Tax, invoice.Discount)
		if err != nil {
			return nil, err
		}
		invoice.Subtotal = subtotal
		invoice.Total = total
	}

	now := time.Now().UTC()
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = actor.UserID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice, req.Items != nil); err != nil {
		s.LogError(ctx, err, "Failed to save invoice update", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to save invoice update: %w", err)
	}

	s.LogInfo(ctx, "Invoice updated", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// DeleteInvoice removes an invoice unless any payment references it.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string, actor domain.Actor) error {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return err
	}

	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID); err != nil {
		return err
	}

	// Any referencing payment blocks deletion, regardless of its status.
	count, err := s.invoiceRepo.CountPaymentsForInvoice(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count payments for invoice", slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to check invoice payments: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrInvoiceHasPayments)
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return err
	}

	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

// GetInvoiceByID returns the invoice with its reconciliation figures,
// scoped to the actor.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string, actor domain.Actor) (*dto.InvoiceDetailResponse, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}

	if !actor.CanViewLedgerOf(invoice.ParentID) {
		s.LogWarn(ctx, "Actor attempted to view another guardian's invoice",
			slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("%w: not authorized to view this invoice", apperrors.ErrForbidden)
	}

	amountPaid, err := s.paymentRepo.SumCompletedPayments(ctx, invoiceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum payments for invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to compute amount paid: %w", err)
	}

	resp := &dto.InvoiceDetailResponse{
		InvoiceResponse: dto.ToInvoiceResponse(invoice),
		AmountPaid:      amountPaid,
		AmountDue:       invoice.Total.Sub(amountPaid),
	}
	return resp, nil
}

// ListInvoices returns a filtered page, forcing parent actors onto their own
// guardian reference.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams, actor domain.Actor) (*dto.ListInvoicesResponse, error) {
	filter := portsrepo.ListInvoicesFilter{
		Status:    params.Status,
		StudentID: params.StudentID,
		ParentID:  params.ParentID,
	}
	if !actor.IsAdmin() {
		filter.ParentID = actor.UserID
	}

	page := params.Params.Normalize(defaultInvoicePageSize)

	invoices, total, err := s.invoiceRepo.ListInvoices(ctx, filter, page.Limit, page.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}

	resp := &dto.ListInvoicesResponse{
		Invoices:   dto.ToInvoiceResponses(invoices),
		Pagination: pagination.NewResult(total, page),
	}
	s.LogDebug(ctx, "Invoices listed", slog.Int("count", len(invoices)), slog.Int("total", total))
	return resp, nil
}
