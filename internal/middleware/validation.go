package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeAndValidate decodes a JSON request body and validates it against the
// struct's validation tags.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationErrors converts validator errors to a readable format
func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   e.Field(),
				Message: fieldErrorMessage(e),
			})
		}
	}

	return errors
}

// RespondWithValidationErrors answers 400 with the offending fields listed
// in the error message.
func RespondWithValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	fields := make([]string, 0, len(errors))
	for _, e := range errors {
		fields = append(fields, e.Field)
	}
	RespondWithError(w, http.StatusBadRequest,
		"missing or invalid fields: "+strings.Join(fields, ", "))
}

func fieldErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "lte":
		return "Value must be less than or equal to " + e.Param()
	case "gt":
		return "Value must be greater than " + e.Param()
	case "lt":
		return "Value must be less than " + e.Param()
	default:
		return "Invalid value"
	}
}
