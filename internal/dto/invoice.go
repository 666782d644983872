package dto

import (
	"time"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one billed line in a create/update invoice request.
type InvoiceItemRequest struct {
	FeeID       *string         `json:"feeID,omitempty"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateInvoiceRequest creates a new invoice. Subtotal and total are always
// computed server-side from the items.
type CreateInvoiceRequest struct {
	StudentID    string               `json:"studentID" binding:"required"`
	ParentID     string               `json:"parentID" binding:"required"`
	Items        []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Tax          decimal.Decimal      `json:"tax"`
	Discount     decimal.Decimal      `json:"discount"`
	DueDate      time.Time            `json:"dueDate" binding:"required"`
	AcademicYear string               `json:"academicYear" binding:"required,academic_year"`
	Term         string               `json:"term,omitempty"`
}

// UpdateInvoiceRequest applies a partial administrative edit. Changing items,
// tax, or discount forces the totals to be recomputed.
type UpdateInvoiceRequest struct {
	Items        *[]InvoiceItemRequest `json:"items,omitempty" binding:"omitempty,min=1,dive"`
	Tax          *decimal.Decimal      `json:"tax,omitempty"`
	Discount     *decimal.Decimal      `json:"discount,omitempty"`
	DueDate      *time.Time            `json:"dueDate,omitempty"`
	Status       *string               `json:"status,omitempty" binding:"omitempty,oneof=pending paid partially_paid cancelled"`
	AcademicYear *string               `json:"academicYear,omitempty" binding:"omitempty,academic_year"`
	Term         *string               `json:"term,omitempty"`
}

// InvoiceItemResponse is one billed line on a returned invoice.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	FeeID       *string         `json:"feeID,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the API shape of an invoice.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	InvoiceNumber string                `json:"invoiceNumber"`
	StudentID     string                `json:"studentID"`
	ParentID      string                `json:"parentID"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Discount      decimal.Decimal       `json:"discount"`
	Total         decimal.Decimal       `json:"total"`
	DueDate       time.Time             `json:"dueDate"`
	Status        string                `json:"status"`
	AcademicYear  string                `json:"academicYear"`
	Term          string                `json:"term,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// InvoiceDetailResponse augments an invoice with its reconciliation figures.
type InvoiceDetailResponse struct {
	InvoiceResponse
	AmountPaid decimal.Decimal `json:"amountPaid"`
	AmountDue  decimal.Decimal `json:"amountDue"`
}

// ListInvoicesParams filters and pages the invoice list.
type ListInvoicesParams struct {
	Status    string `form:"status"`
	StudentID string `form:"studentId"`
	ParentID  string `form:"parentId"`
	pagination.Params
}

// ListInvoicesResponse is a page of invoices.
type ListInvoicesResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	Pagination pagination.Result `json:"pagination"`
}

// ToInvoiceResponse converts a domain invoice to its API shape.
func ToInvoiceResponse(d *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(d.Items))
	for i, item := range d.Items {
		items[i] = InvoiceItemResponse{
			ItemID:      item.ItemID,
			FeeID:       item.FeeID,
			Description: item.Description,
			Amount:      item.Amount,
		}
	}
	return InvoiceResponse{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		StudentID:     d.StudentID,
		ParentID:      d.ParentID,
		Items:         items,
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		Discount:      d.Discount,
		Total:         d.Total,
		DueDate:       d.DueDate,
		Status:        string(d.Status),
		AcademicYear:  d.AcademicYear,
		Term:          d.Term,
		CreatedAt:     d.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain invoices.
func ToInvoiceResponses(ds []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(ds))
	for i := range ds {
		out[i] = ToInvoiceResponse(&ds[i])
	}
	return out
}
