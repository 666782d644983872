package dto

import (
	"time"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFeeRequest creates a fee structure entry.
type CreateFeeRequest struct {
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description,omitempty"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Frequency         string          `json:"frequency" binding:"required,oneof=monthly quarterly half-yearly yearly one-time"`
	ApplicableClasses []string        `json:"applicableClasses,omitempty"`
	AcademicYear      string          `json:"academicYear,omitempty" binding:"omitempty,academic_year"`
}

// UpdateFeeRequest applies a partial edit to a fee structure entry.
type UpdateFeeRequest struct {
	Name              *string          `json:"name,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Amount            *decimal.Decimal `json:"amount,omitempty"`
	Frequency         *string          `json:"frequency,omitempty" binding:"omitempty,oneof=monthly quarterly half-yearly yearly one-time"`
	ApplicableClasses *[]string        `json:"applicableClasses,omitempty"`
	AcademicYear      *string          `json:"academicYear,omitempty" binding:"omitempty,academic_year"`
	IsActive          *bool            `json:"isActive,omitempty"`
}

// FeeResponse is the API shape of a fee.
type FeeResponse struct {
	FeeID             string          `json:"feeID"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Frequency         string          `json:"frequency"`
	ApplicableClasses []string        `json:"applicableClasses,omitempty"`
	AcademicYear      string          `json:"academicYear,omitempty"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ListFeesParams filters the fee list.
type ListFeesParams struct {
	ActiveOnly bool   `form:"activeOnly"`
	Class      string `form:"class"`
}

// ListFeesResponse is the full fee list (reference data, small and unpaged).
type ListFeesResponse struct {
	Fees []FeeResponse `json:"fees"`
}

// ToFeeResponse converts a domain fee to its API shape.
func ToFeeResponse(d *domain.Fee) FeeResponse {
	return FeeResponse{
		FeeID:             d.FeeID,
		Name:              d.Name,
		Description:       d.Description,
		Amount:            d.Amount,
		Frequency:         string(d.Frequency),
		ApplicableClasses: d.ApplicableClasses,
		AcademicYear:      d.AcademicYear,
		IsActive:          d.IsActive,
		CreatedAt:         d.CreatedAt,
	}
}

// ToFeeResponses converts a slice of domain fees.
func ToFeeResponses(ds []domain.Fee) []FeeResponse {
	out := make([]FeeResponse, len(ds))
	for i := range ds {
		out[i] = ToFeeResponse(&ds[i])
	}
	return out
}
