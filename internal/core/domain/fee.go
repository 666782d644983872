package domain

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

// ValidFeeFrequency reports whether f is one of the recognised frequencies.
func ValidFeeFrequency(f FeeFrequency) bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyHalfYearly, FrequencyYearly, FrequencyOneTime:
		return true
	}
	return false
}

// Fee is reference data used to pre-fill invoice line items. It takes no
// part in reconciliation math.
type Fee struct {
	FeeID             string          `json:"feeID"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Amount            decimal.Decimal `json:"amount"` // >= 0
	Frequency         FeeFrequency    `json:"frequency"`
	ApplicableClasses []string        `json:"applicableClasses,omitempty"` // e.g. ["1","2","all"]
	AcademicYear      string          `json:"academicYear,omitempty"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}

// AppliesToClass reports whether the fee applies to the given class. An
// empty list or an "all" entry matches every class.
func (f *Fee) AppliesToClass(class string) bool {
	if len(f.ApplicableClasses) == 0 {
		return true
	}
	for _, c := range f.ApplicableClasses {
		if c == "all" || c == class {
			return true
		}
	}
	return false
}
