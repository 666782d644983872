package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyCollectionRow is one calendar-month bucket of completed payments.
type MonthlyCollectionRow struct {
	Month          string          `json:"month"` // YYYY-MM of the transaction date
	TotalCollected decimal.Decimal `json:"totalCollected"`
	PaymentCount   int             `json:"paymentCount"`
}

// ClassCollectionRow is a (month, class) bucket of completed payments.
type ClassCollectionRow struct {
	Month          string          `json:"month"`
	ClassName      string          `json:"class"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	PaymentCount   int             `json:"paymentCount"`
}

// OutstandingInvoiceRow is one not-fully-paid invoice in the dues report.
type OutstandingInvoiceRow struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	AmountDue     decimal.Decimal `json:"amountDue"`
	DueDate       time.Time       `json:"dueDate"`
	Status        InvoiceStatus   `json:"status"`
	IsOverdue     bool            `json:"isOverdue"` // dueDate < now at query time
	StudentName   string          `json:"studentName"`
	StudentClass  string          `json:"studentClass"`
	ParentID      string          `json:"parentID"`
}

// OutstandingDuesSummary aggregates the entire filtered invoice set,
// independent of the page being returned.
type OutstandingDuesSummary struct {
	TotalBilled  decimal.Decimal `json:"totalBilled"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	TotalDue     decimal.Decimal `json:"totalDue"` // totalBilled - totalPaid
	InvoiceCount int             `json:"invoiceCount"`
	OverdueCount int             `json:"overdueCount"`
}

// PaymentHistoryRow is one completed payment joined to its student and invoice.
type PaymentHistoryRow struct {
	PaymentID       string          `json:"paymentID"`
	PaymentNumber   string          `json:"paymentNumber"`
	ReceiptNumber   string          `json:"receiptNumber"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"paymentMethod"`
	TransactionDate time.Time       `json:"transactionDate"`
	Remarks         string          `json:"remarks,omitempty"`
	StudentName     string          `json:"studentName"`
	StudentClass    string          `json:"studentClass"`
	InvoiceNumber   string          `json:"invoiceNumber"`
}

// MethodSummaryRow aggregates completed payments per payment method over the
// full filtered set.
type MethodSummaryRow struct {
	Method      PaymentMethod   `json:"method"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

// ClassFeeSummaryRow aggregates billing and collection per student class.
// CollectionRate is a percentage rounded to two decimal places, zero when
// nothing was billed.
type ClassFeeSummaryRow struct {
	ClassName      string          `json:"class"`
	TotalBilled    decimal.Decimal `json:"totalBilled"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	TotalPending   decimal.Decimal `json:"totalPending"`
	CollectionRate decimal.Decimal `json:"collectionRate"`
	InvoiceCount   int             `json:"invoiceCount"`
	StudentCount   int             `json:"studentCount"` // distinct students billed
}

// ClassFeeSummaryTotals is the grand-total row across all classes.
type ClassFeeSummaryTotals struct {
	TotalBilled    decimal.Decimal `json:"totalBilled"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	TotalPending   decimal.Decimal `json:"totalPending"`
}

// CollectionRate computes collected/billed as a percentage rounded to two
// decimal places, returning zero when billed is zero.
func CollectionRate(billed, collected decimal.Decimal) decimal.Decimal {
	if billed.IsZero() {
		return decimal.Zero
	}
	return collected.Div(billed).Mul(decimal.NewFromInt(100)).Round(2)
}
