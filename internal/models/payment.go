package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how a payment row was settled.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodOnline       PaymentMethod = "online"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheque       PaymentMethod = "cheque"
)

// PaymentStatus indicates the processing state of a payment row.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment maps to a row in payments. Student and parent are denormalized
// copies of the invoice's references, kept for query efficiency.
type Payment struct {
	PaymentID       string          `json:"paymentID"`     // Primary Key (UUID)
	PaymentNumber   string          `json:"paymentNumber"` // Unique display number PAY-<year>-<seq>
	ReceiptNumber   string          `json:"receiptNumber"` // Unique display number REC-<year>-<seq>
	InvoiceID       string          `json:"invoiceID"`     // FK -> Invoice.invoiceID (Not Null)
	StudentID       string          `json:"studentID"`
	ParentID        string          `json:"parentID"`
	Amount          decimal.Decimal `json:"amount"`
	Method          PaymentMethod   `json:"paymentMethod"`
	TransactionID   string          `json:"transactionID"` // Nullable external gateway reference
	TransactionDate time.Time       `json:"transactionDate"`
	ChequeNumber    string          `json:"chequeNumber"` // Nullable, cheque method only
	ChequeDate      *time.Time      `json:"chequeDate"`   // Nullable
	BankName        string          `json:"bankName"`     // Nullable
	Status          PaymentStatus   `json:"status"`       // Default: completed
	Remarks         string          `json:"remarks"`
	ReceivedBy      string          `json:"receivedBy"` // UserID of recording admin
	AuditFields
}
