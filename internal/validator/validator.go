// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("loan_category", validateLoanCategory)
		_ = v.RegisterValidation("modification_kind", validateModificationKind)
	}
}

func validateLoanCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "home", "car", "education", "personal", "other":
		return true
	}
	return false
}

func validateModificationKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "prepayment", "stepup", "interest_change":
		return true
	}
	return false
}
