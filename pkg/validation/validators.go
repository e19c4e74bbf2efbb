package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// validate is only used for single-value checks; *validator.Validate is safe for concurrent use.
var validate = validator.New()

// FieldError is one violated rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors holds every violated rule, in the order the rules were checked.
type Errors []FieldError

// Add appends fe unless it is nil.
func (e *Errors) Add(fe *FieldError) {
	if fe != nil {
		*e = append(*e, *fe)
	}
}

// Valid reports whether no rule was violated.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Messages returns the messages without field names.
func (e Errors) Messages() []string {
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Message)
	}
	return messages
}

// For returns the messages reported for a single field.
func (e Errors) For(field string) []string {
	var messages []string
	for _, fe := range e {
		if fe.Field == field {
			messages = append(messages, fe.Message)
		}
	}
	return messages
}

func (e Errors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Length checks that value holds between minLen and maxLen code points inclusive.
func Length(field, value string, minLen, maxLen int, tooShort, tooLong string) *FieldError {
	n := utf8.RuneCountInString(value)
	switch {
	case n < minLen:
		return &FieldError{Field: field, Message: tooShort}
	case n > maxLen:
		return &FieldError{Field: field, Message: tooLong}
	}
	return nil
}

// Email checks value against the validator "email" grammar, which requires a
// local part, an "@" and a dotted domain.
func Email(field, value, message string) *FieldError {
	if value == "" || validate.Var(value, "email") != nil {
		return &FieldError{Field: field, Message: message}
	}
	return nil
}
