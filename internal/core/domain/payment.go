package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how a payment was settled.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodOnline       PaymentMethod = "online"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheque       PaymentMethod = "cheque"
)

// ValidPaymentMethod reports whether m is one of the recognised methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCard, MethodOnline, MethodBankTransfer, MethodCheque:
		return true
	}
	return false
}

// PaymentStatus indicates the processing state of a payment. Only completed
// payments participate in reconciliation.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether s is one of the recognised statuses.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment is a recorded settlement amount applied against exactly one
// invoice. Student and parent references are copied from the invoice at
// creation time as a query-side cache; the invoice remains the source of
// truth for ownership. Amount is immutable once the payment exists.
type Payment struct {
	PaymentID       string          `json:"paymentID"`
	PaymentNumber   string          `json:"paymentNumber"` // e.g. PAY-2026-00042
	ReceiptNumber   string          `json:"receiptNumber"` // e.g. REC-2026-00042
	InvoiceID       string          `json:"invoiceID"`
	StudentID       string          `json:"studentID"`
	ParentID        string          `json:"parentID"`
	Amount          decimal.Decimal `json:"amount"` // > 0
	Method          PaymentMethod   `json:"paymentMethod"`
	TransactionID   string          `json:"transactionID,omitempty"` // external gateway reference
	TransactionDate time.Time       `json:"transactionDate"`
	ChequeNumber    string          `json:"chequeNumber,omitempty"`
	ChequeDate      *time.Time      `json:"chequeDate,omitempty"`
	BankName        string          `json:"bankName,omitempty"`
	Status          PaymentStatus   `json:"status"`
	Remarks         string          `json:"remarks,omitempty"`
	ReceivedBy      string          `json:"receivedBy"` // UserID of the recording administrator
	AuditFields
}
