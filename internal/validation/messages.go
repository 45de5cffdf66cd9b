package validation

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// message renders a human-readable message for one field error. The upper
// bounds on amounts exist to catch data-entry mistakes, not to express
// business limits, and the wording reflects that.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if fe.Kind() == reflect.String {
			return "Must be at least " + fe.Param() + " character(s)"
		}
		return "Must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "Must be at most " + fe.Param() + " characters"
		}
		return "Cannot exceed " + fe.Param()
	case "gt":
		return "Must be greater than " + fe.Param()
	case "currency":
		return "Must be a valid currency amount with at most 2 decimal places"
	case "debt_category":
		return "Must be a valid debt category"
	case "strategy_type":
		return "Must be avalanche, snowball, or custom"
	case "unique":
		return "Must not contain duplicates"
	case "lte_original_balance":
		return "Current balance cannot exceed original balance"
	case "lte_current_balance":
		return "Minimum payment cannot exceed current balance"
	case "not_future":
		return "Payment date cannot be in the future"
	default:
		return "Invalid value"
	}
}
