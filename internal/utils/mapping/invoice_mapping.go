package mapping

import (
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		StudentID:     d.StudentID,
		ParentID:      d.ParentID,
		Subtotal:      d.Subtotal,
		Tax:           d.Tax,
		Discount:      d.Discount,
		Total:         d.Total,
		DueDate:       d.DueDate,
		Status:        models.InvoiceStatus(d.Status),
		AcademicYear:  d.AcademicYear,
		Term:          d.Term,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice. Items are
// attached separately by the repository when requested.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		StudentID:     m.StudentID,
		ParentID:      m.ParentID,
		Subtotal:      m.Subtotal,
		Tax:           m.Tax,
		Discount:      m.Discount,
		Total:         m.Total,
		DueDate:       m.DueDate,
		Status:        domain.InvoiceStatus(m.Status),
		AcademicYear:  m.AcademicYear,
		Term:          m.Term,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceItem converts a domain InvoiceItem to a model InvoiceItem.
func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		ItemID:      d.ItemID,
		InvoiceID:   d.InvoiceID,
		FeeID:       d.FeeID,
		Description: d.Description,
		Amount:      d.Amount,
	}
}

// ToDomainInvoiceItem converts a model InvoiceItem to a domain InvoiceItem.
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		ItemID:      m.ItemID,
		InvoiceID:   m.InvoiceID,
		FeeID:       m.FeeID,
		Description: m.Description,
		Amount:      m.Amount,
	}
}
