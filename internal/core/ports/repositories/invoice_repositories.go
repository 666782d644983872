package repositories

import (
	"context"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
)

// ListInvoicesFilter narrows the invoice list. Zero values mean "any".
type ListInvoicesFilter struct {
	Status    string
	StudentID string
	ParentID  string
}

// InvoiceRepositoryFacade provides persistence for invoices and their items.
type InvoiceRepositoryFacade interface {
	// SaveInvoice inserts the invoice and its items atomically.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	// UpdateInvoice persists header changes; when replaceItems is true the
	// item rows are replaced wholesale with invoice.Items.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, replaceItems bool) error
	// DeleteInvoice removes an invoice with no payments. Callers must apply
	// the payment-reference guard first; the repository re-checks inside the
	// delete transaction and returns ErrConflict on a lost race.
	DeleteInvoice(ctx context.Context, invoiceID string) error
	// FindInvoiceByID returns the invoice with its items, or ErrNotFound.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	// ListInvoices returns one page plus the total count of the filtered set.
	ListInvoices(ctx context.Context, filter ListInvoicesFilter, limit, offset int) ([]domain.Invoice, int, error)
	// CountPaymentsForInvoice counts referencing payments of any status.
	CountPaymentsForInvoice(ctx context.Context, invoiceID string) (int, error)
}
