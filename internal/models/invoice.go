package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the settlement state of an invoice row.
type InvoiceStatus string

const (
	InvoicePending       InvoiceStatus = "pending"
	InvoicePaid          InvoiceStatus = "paid"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
	InvoiceCancelled     InvoiceStatus = "cancelled"
)

// InvoiceItem maps to a row in invoice_items.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"` // FK -> Invoice.invoiceID
	FeeID       *string         `json:"feeID"`     // Nullable FK -> Fee.feeID
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice maps to a row in invoices.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`     // Primary Key (UUID)
	InvoiceNumber string          `json:"invoiceNumber"` // Unique display number INV-<year>-<seq>
	StudentID     string          `json:"studentID"`     // Roster reference (Not Null)
	ParentID      string          `json:"parentID"`      // Guardian user reference (Not Null)
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	DueDate       time.Time       `json:"dueDate"`
	Status        InvoiceStatus   `json:"status"` // Default: pending
	AcademicYear  string          `json:"academicYear"`
	Term          string          `json:"term"` // Nullable, e.g. "Term 1"
	AuditFields
}
