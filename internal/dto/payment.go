package dto

import (
	"time"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records a settlement against an invoice. Status
// defaults to completed when omitted; student and parent are always copied
// from the invoice, never taken from the request.
type RecordPaymentRequest struct {
	InvoiceID       string          `json:"invoiceID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Method          string          `json:"paymentMethod" binding:"required,oneof=cash card online bank_transfer cheque"`
	TransactionID   string          `json:"transactionID,omitempty"`
	TransactionDate *time.Time      `json:"transactionDate,omitempty"` // defaults to now
	ChequeNumber    string          `json:"chequeNumber,omitempty"`
	ChequeDate      *time.Time      `json:"chequeDate,omitempty"`
	BankName        string          `json:"bankName,omitempty"`
	Status          *string         `json:"status,omitempty" binding:"omitempty,oneof=pending completed failed refunded"`
	Remarks         string          `json:"remarks,omitempty"`
}

// UpdatePaymentRequest applies a partial administrative edit to a payment.
// Amount is not editable; a status change is re-reconciled against the
// owning invoice.
type UpdatePaymentRequest struct {
	Method        *string    `json:"paymentMethod,omitempty" binding:"omitempty,oneof=cash card online bank_transfer cheque"`
	TransactionID *string    `json:"transactionID,omitempty"`
	ChequeNumber  *string    `json:"chequeNumber,omitempty"`
	ChequeDate    *time.Time `json:"chequeDate,omitempty"`
	BankName      *string    `json:"bankName,omitempty"`
	Status        *string    `json:"status,omitempty" binding:"omitempty,oneof=pending completed failed refunded"`
	Remarks       *string    `json:"remarks,omitempty"`
}

// PaymentResponse is the API shape of a payment.
type PaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	PaymentNumber   string          `json:"paymentNumber"`
	ReceiptNumber   string          `json:"receiptNumber"`
	InvoiceID       string          `json:"invoiceID"`
	StudentID       string          `json:"studentID"`
	ParentID        string          `json:"parentID"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"paymentMethod"`
	TransactionID   string          `json:"transactionID,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	ChequeNumber    string          `json:"chequeNumber,omitempty"`
	ChequeDate      *time.Time      `json:"chequeDate,omitempty"`
	BankName        string          `json:"bankName,omitempty"`
	Status          string          `json:"status"`
	Remarks         string          `json:"remarks,omitempty"`
	ReceivedBy      string          `json:"receivedBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// RecordPaymentResponse returns the created payment together with the
// invoice's updated reconciliation figures.
type RecordPaymentResponse struct {
	Payment      PaymentResponse `json:"payment"`
	InvoiceTotal decimal.Decimal `json:"invoiceTotal"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	AmountDue    decimal.Decimal `json:"amountDue"`
	Status       string          `json:"invoiceStatus"`
}

// AmountDueResponse is the pure-read reconciliation view of an invoice.
type AmountDueResponse struct {
	InvoiceID    string          `json:"invoiceID"`
	InvoiceTotal decimal.Decimal `json:"invoiceTotal"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	AmountDue    decimal.Decimal `json:"amountDue"`
}

// ListPaymentsParams filters and pages the payment list.
type ListPaymentsParams struct {
	StudentID string     `form:"studentId"`
	InvoiceID string     `form:"invoiceId"`
	Status    string     `form:"status"`
	Method    string     `form:"method"`
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	pagination.Params
}

// ListPaymentsResponse is a page of payments.
type ListPaymentsResponse struct {
	Payments   []PaymentResponse `json:"payments"`
	Pagination pagination.Result `json:"pagination"`
}

// ToPaymentResponse converts a domain payment to its API shape.
func ToPaymentResponse(d *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       d.PaymentID,
		PaymentNumber:   d.PaymentNumber,
		ReceiptNumber:   d.ReceiptNumber,
		InvoiceID:       d.InvoiceID,
		StudentID:       d.StudentID,
		ParentID:        d.ParentID,
		Amount:          d.Amount,
		Method:          string(d.Method),
		TransactionID:   d.TransactionID,
		TransactionDate: d.TransactionDate,
		ChequeNumber:    d.ChequeNumber,
		ChequeDate:      d.ChequeDate,
		BankName:        d.BankName,
		Status:          string(d.Status),
		Remarks:         d.Remarks,
		ReceivedBy:      d.ReceivedBy,
		CreatedAt:       d.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of domain payments.
func ToPaymentResponses(ds []domain.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(ds))
	for i := range ds {
		out[i] = ToPaymentResponse(&ds[i])
	}
	return out
}
