package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance. Errors are reported with
// the json name of the field so clients see the keys they sent.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validation errors to a user-friendly list
func FormatValidationErrors(err error) []FieldError {
	fields := []FieldError{}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		if err != nil {
			fields = append(fields, FieldError{Field: "body", Message: err.Error()})
		}
		return fields
	}

	for _, e := range validationErrs {
		field := e.Field()
		var msg string
		switch e.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", field)
		case "email":
			msg = "Invalid email format"
		case "url":
			msg = fmt.Sprintf("%s must be a valid URL", field)
		case "min":
			msg = fmt.Sprintf("%s must be at least %s", field, e.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s", field, e.Param())
		case "gte":
			msg = fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
		case "lte":
			msg = fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", field, e.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", field)
		}
		fields = append(fields, FieldError{Field: field, Message: msg})
	}

	return fields
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}

// SanitizePtr applies SanitizeString through a pointer, keeping nil as nil
func SanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := SanitizeString(*s)
	return &v
}
