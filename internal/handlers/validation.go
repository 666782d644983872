package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// academicYearPattern matches the "2026-2027" shape used across invoices
// and fee structures.
var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// registerCustomValidations adds domain-specific validation tags to gin's
// binding engine. Safe to call more than once.
func registerCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return academicYearPattern.MatchString(fl.Field().String())
	})
}
