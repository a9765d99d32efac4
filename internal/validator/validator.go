// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finboard/internal/taxonomy"
)

var yearMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("taxonomy_category", validateTaxonomyCategory)
		_ = v.RegisterValidation("year_month", validateYearMonth)
	}
}

func validateTaxonomyCategory(fl validator.FieldLevel) bool {
	return taxonomy.Default.HasCategory(fl.Field().String())
}

// validateYearMonth accepts YYYY-MM.
func validateYearMonth(fl validator.FieldLevel) bool {
	return yearMonthRegex.MatchString(fl.Field().String())
}
