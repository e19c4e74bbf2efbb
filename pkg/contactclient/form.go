package contactclient

import (
	"errors"
	"time"

	"github.com/James1Law/vibe-test-carpenter-site/internal/domain"
)

// Form holds what the user typed into one contact form.
type Form struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func (f *Form) Submission() domain.ContactSubmission {
	return domain.ContactSubmission{
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Message: f.Message,
	}
}

// Reset clears every field back to its default.
func (f *Form) Reset() {
	*f = Form{}
}

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is the toast shown after a submission attempt.
type Notification struct {
	Kind        Kind
	Title       string
	Description string
	Duration    time.Duration
	MessageID   string
	// Cause is the relay's error message, for logging only.
	Cause string
}

func successNotification(messageID string) Notification {
	return Notification{
		Kind:        KindSuccess,
		Title:       "Thanks, we'll get back to you shortly.",
		Description: "Your message has been sent successfully.",
		Duration:    notificationDuration,
		MessageID:   messageID,
	}
}

func failureNotification(err error) Notification {
	n := Notification{
		Kind:        KindError,
		Title:       "There was a problem sending your message.",
		Description: "Please try again later or contact us directly.",
		Duration:    notificationDuration,
		Cause:       err.Error(),
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		n.Cause = respErr.Message
	}
	return n
}
