package models

import "github.com/shopspring/decimal"

// FeeFrequency indicates how often a fee recurs.
type FeeFrequency string

const (
	FrequencyMonthly    FeeFrequency = "monthly"
	FrequencyQuarterly  FeeFrequency = "quarterly"
	FrequencyHalfYearly FeeFrequency = "half-yearly"
	FrequencyYearly     FeeFrequency = "yearly"
	FrequencyOneTime    FeeFrequency = "one-time"
)

// Fee maps to a row in fees.
type Fee struct {
	FeeID             string          `json:"feeID"` // Primary Key (UUID)
	Name              string          `json:"name"`
	Description       string          `json:"description"` // Nullable
	Amount            decimal.Decimal `json:"amount"`
	Frequency         FeeFrequency    `json:"frequency"`
	ApplicableClasses []string        `json:"applicableClasses"` // TEXT[] in pg
	AcademicYear      string          `json:"academicYear"`      // Nullable
	IsActive          bool            `json:"isActive"`          // Default: true
	AuditFields
}
