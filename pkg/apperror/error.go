package apperror

import "net/http"

type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails attaches caller-safe details to the response body.
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// InvalidInput is the 400 returned for submissions that break validation rules.
func InvalidInput(details interface{}) *AppError {
	return BadRequest("Invalid input").WithDetails(details)
}

func MethodNotAllowed() *AppError {
	return New(http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func TooManyRequests() *AppError {
	return New(http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
}

// EmailSendFailed hides the provider's failure behind a generic message.
func EmailSendFailed(err error) *AppError {
	return New(http.StatusInternalServerError, "Failed to send email", err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal server error", err)
}
