package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a binding error into an ErrorDetail. Validator
// failures are listed per field; anything else is reported as a malformed body.
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewErrorDetail(ErrorCodeInvalidRequest, "Invalid request format").
			WithDetails(err.Error())
	}

	fields := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, map[string]string{
			"field":   lowerFirst(fe.Field()),
			"message": formatFieldError(fe),
		})
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(fields)
	if len(fields) == 1 {
		detail = detail.WithField(fields[0]["field"])
	}
	return detail
}

func formatFieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	case "email":
		return field + " must be a valid email address"
	case "isodate":
		return field + " must be a date in YYYY-MM-DD format"
	default:
		return field + " failed " + fe.Tag() + " validation"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
