package domain

import (
	"context"
	"errors"

	"github.com/James1Law/vibe-test-carpenter-site/pkg/validation"
)

// Validation messages shown next to the contact form fields.
const (
	MsgNameTooShort    = "Name must be at least 2 characters"
	MsgNameTooLong     = "Name must be less than 80 characters"
	MsgEmailInvalid    = "Please enter a valid email address"
	MsgMessageTooShort = "Message must be at least 10 characters"
	MsgMessageTooLong  = "Message must be less than 1000 characters"
)

const (
	NameMinLength    = 2
	NameMaxLength    = 80
	MessageMinLength = 10
	MessageMaxLength = 1000
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailSendFailed    = errors.New("email send failed")
	ErrEmailNotConfigured = errors.New("email service is not configured")
)

// ContactSubmission represents one contact form entry. It only lives for the
// duration of a single request and is never stored.
type ContactSubmission struct {
	Name    string `json:"name" example:"John Smith"`
	Email   string `json:"email" example:"john@example.com"`
	Phone   string `json:"phone,omitempty" example:"07700 900000"`
	Message string `json:"message" example:"I would like a quote for kitchen cabinets."`
}

// Validate runs every rule and reports all violations together.
func (s ContactSubmission) Validate() validation.Errors {
	var errs validation.Errors
	errs.Add(validation.Length("name", s.Name, NameMinLength, NameMaxLength, MsgNameTooShort, MsgNameTooLong))
	errs.Add(validation.Email("email", s.Email, MsgEmailInvalid))
	errs.Add(validation.Length("message", s.Message, MessageMinLength, MessageMaxLength, MsgMessageTooShort, MsgMessageTooLong))
	return errs
}

// ValidationError is returned when a submission breaks one or more rules.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ContactResult is what the caller sees after a successful relay.
type ContactResult struct {
	MessageID string
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage revalidates the submission and relays it to the business owner
	SendContactMessage(ctx context.Context, req *ContactSubmission) (*ContactResult, error)
}
