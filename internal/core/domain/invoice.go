package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the settlement state of an invoice.
type InvoiceStatus string

const (
	InvoicePending       InvoiceStatus = "pending"
	InvoicePaid          InvoiceStatus = "paid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceOverdue       InvoiceStatus = "overdue" // derived at read time, never persisted by reconciliation
	InvoiceCancelled     InvoiceStatus = "cancelled"
)

// InvoiceItem is a single billed line on an invoice.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	FeeID       *string         `json:"feeID,omitempty"` // optional link to the fee the line was prefilled from
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // >= 0
}

// Invoice represents a billable charge issued to a guardian for a student.
// Totals always satisfy subtotal == sum(items.amount) and
// total == subtotal + tax - discount.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"` // e.g. INV-2026-00042
	StudentID     string          `json:"studentID"`
	ParentID      string          `json:"parentID"`
	Items         []InvoiceItem   `json:"items,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	DueDate       time.Time       `json:"dueDate"`
	Status        InvoiceStatus   `json:"status"`
	AcademicYear  string          `json:"academicYear"`
	Term          string          `json:"term,omitempty"`
	AuditFields
}

// IsOverdue reports whether the invoice still owes money past its due date.
// Overdue is a display state; the persisted status never transitions to it.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status != InvoicePending && i.Status != InvoicePartiallyPaid {
		return false
	}
	return now.After(i.DueDate)
}

// DeriveInvoiceStatus maps the sum of completed payments against the total
// to the persisted status: pending when nothing is paid, partially_paid
// while 0 < paid < total, paid once paid >= total.
func DeriveInvoiceStatus(total, paid decimal.Decimal) InvoiceStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return InvoicePending
	case paid.LessThan(total):
		return InvoicePartiallyPaid
	default:
		return InvoicePaid
	}
}
