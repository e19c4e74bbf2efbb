package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-friendly labels
var FieldLabels = map[string]string{
	"name":    "Name",
	"email":   "Email",
	"phone":   "Phone",
	"message": "Message",
}

// FormatBindingErrors converts a request binding failure into field errors the
// caller can display. It never returns an empty list.
func FormatBindingErrors(err error) Errors {
	var (
		syntaxErr    *json.SyntaxError
		typeErr      *json.UnmarshalTypeError
		validatorErr validator.ValidationErrors
		tooLargeErr  *http.MaxBytesError
	)

	switch {
	case errors.As(err, &tooLargeErr):
		return Errors{{Field: "body", Message: "Request body is too large"}}

	case errors.Is(err, io.EOF):
		return Errors{{Field: "body", Message: "Request body is empty"}}

	case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
		return Errors{{Field: "body", Message: "Request body is not valid JSON"}}

	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return Errors{{Field: "body", Message: "Request body must be a JSON object"}}
		}
		return Errors{{Field: field, Message: fmt.Sprintf("%s must be %s", getFieldLabel(field), describeKind(typeErr.Type.Kind().String()))}}

	case errors.As(err, &validatorErr):
		out := make(Errors, 0, len(validatorErr))
		for _, e := range validatorErr {
			out = append(out, formatSingleError(e))
		}
		return out
	}

	return Errors{{Field: "body", Message: "Request body could not be read"}}
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) FieldError {
	field := strings.ToLower(e.Field())
	label := getFieldLabel(field)

	var msg string
	switch e.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", label)
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		msg = fmt.Sprintf("%s must be less than %s characters", label, e.Param())
	case "email":
		msg = "Please enter a valid email address"
	default:
		msg = fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
	return FieldError{Field: field, Message: msg}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

func describeKind(kind string) string {
	switch kind {
	case "string":
		return "text"
	case "struct", "map":
		return "an object"
	case "slice", "array":
		return "a list"
	}
	return "a " + kind
}
