package mapping

import (
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/models"
)

// ToModelFee converts a domain Fee to a model Fee.
func ToModelFee(d domain.Fee) models.Fee {
	return models.Fee{
		FeeID:             d.FeeID,
		Name:              d.Name,
		Description:       d.Description,
		Amount:            d.Amount,
		Frequency:         models.FeeFrequency(d.Frequency),
		ApplicableClasses: d.ApplicableClasses,
		AcademicYear:      d.AcademicYear,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFee converts a model Fee to a domain Fee.
func ToDomainFee(m models.Fee) domain.Fee {
	return domain.Fee{
		FeeID:             m.FeeID,
		Name:              m.Name,
		Description:       m.Description,
		Amount:            m.Amount,
		Frequency:         domain.FeeFrequency(m.Frequency),
		ApplicableClasses: m.ApplicableClasses,
		AcademicYear:      m.AcademicYear,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStudent converts a model Student to a domain Student.
func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:       m.StudentID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		ClassName:       m.ClassName,
		Section:         m.Section,
		AdmissionNumber: m.AdmissionNumber,
		ParentID:        m.ParentID,
	}
}
