package services

import (
	"context"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/dto"
)

// InvoiceSvcFacade exposes invoice operations. Every read is scoped by the
// acting caller: parents only ever see their own guardian's invoices.
type InvoiceSvcFacade interface {
	// CreateInvoice computes subtotal/total from the items and persists the
	// invoice with a freshly allocated invoice number. Admin only.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error)
	// UpdateInvoice applies a partial edit, recomputing totals when items,
	// tax, or discount change. Admin only.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, actor domain.Actor) (*domain.Invoice, error)
	// DeleteInvoice removes an invoice; fails with ErrConflict while any
	// payment references it, regardless of payment status. Admin only.
	DeleteInvoice(ctx context.Context, invoiceID string, actor domain.Actor) error
	// GetInvoiceByID returns the invoice with amountPaid/amountDue attached.
	GetInvoiceByID(ctx context.Context, invoiceID string, actor domain.Actor) (*dto.InvoiceDetailResponse, error)
	// ListInvoices returns a filtered page. Parent actors are forced onto
	// their own guardian reference.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams, actor domain.Actor) (*dto.ListInvoicesResponse, error)
}
