package mapping

import (
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		PaymentNumber:   d.PaymentNumber,
		ReceiptNumber:   d.ReceiptNumber,
		InvoiceID:       d.InvoiceID,
		StudentID:       d.StudentID,
		ParentID:        d.ParentID,
		Amount:          d.Amount,
		Method:          models.PaymentMethod(d.Method),
		TransactionID:   d.TransactionID,
		TransactionDate: d.TransactionDate,
		ChequeNumber:    d.ChequeNumber,
		ChequeDate:      d.ChequeDate,
		BankName:        d.BankName,
		Status:          models.PaymentStatus(d.Status),
		Remarks:         d.Remarks,
		ReceivedBy:      d.ReceivedBy,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		PaymentNumber:   m.PaymentNumber,
		ReceiptNumber:   m.ReceiptNumber,
		InvoiceID:       m.InvoiceID,
		StudentID:       m.StudentID,
		ParentID:        m.ParentID,
		Amount:          m.Amount,
		Method:          domain.PaymentMethod(m.Method),
		TransactionID:   m.TransactionID,
		TransactionDate: m.TransactionDate,
		ChequeNumber:    m.ChequeNumber,
		ChequeDate:      m.ChequeDate,
		BankName:        m.BankName,
		Status:          domain.PaymentStatus(m.Status),
		Remarks:         m.Remarks,
		ReceivedBy:      m.ReceivedBy,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
