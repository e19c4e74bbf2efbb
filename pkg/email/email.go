package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/James1Law/vibe-test-carpenter-site/config"
)

// Message is a fully composed plaintext email ready for a provider.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
}

// Receipt is returned by a provider that accepted a message.
type Receipt struct {
	ID string
}

// Sender delivers a composed message through one email-delivery provider.
// Implementations make exactly one attempt per call.
type Sender interface {
	Send(ctx context.Context, msg *Message) (Receipt, error)
}

// ProviderError describes a provider rejecting or failing a send. It is only
// ever logged; callers outside the server see a generic message.
type ProviderError struct {
	Provider   string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// newProviderError classifies a transport level failure.
func newProviderError(provider string, err error) *ProviderError {
	pe := &ProviderError{Provider: provider, Message: err.Error(), Err: err}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		pe.Code = "timeout"
	case errors.Is(err, context.Canceled):
		pe.Code = "canceled"
	}
	return pe
}

// EmailService composes contact emails and hands them to the configured provider
type EmailService struct {
	sender     Sender
	configured bool
	fromEmail  string
	toEmail    string
	subject    string
	timeout    time.Duration
}

// NewEmailService creates the email service for the provider named in cfg.EmailProvider
func NewEmailService(cfg *config.Config) *EmailService {
	httpClient := &http.Client{Timeout: cfg.EmailSendTimeout}

	var (
		sender     Sender
		configured bool
	)
	switch cfg.EmailProvider {
	case config.ProviderSMTP:
		sender = NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		configured = cfg.SMTPHost != "" && cfg.SMTPUsername != "" && cfg.SMTPPassword != ""
	default:
		sender = NewResendSender(cfg.ResendAPIKey, httpClient)
		configured = cfg.ResendAPIKey != ""
	}

	svc := NewEmailServiceWithSender(sender, cfg)
	svc.configured = configured
	return svc
}

// NewEmailServiceWithSender wires an arbitrary provider; it is considered configured.
func NewEmailServiceWithSender(sender Sender, cfg *config.Config) *EmailService {
	return &EmailService{
		sender:     sender,
		configured: true,
		fromEmail:  cfg.ContactFromEmail,
		toEmail:    cfg.ContactEmailTo,
		subject:    cfg.ContactSubject,
		timeout:    cfg.EmailSendTimeout,
	}
}

// SendContactEmail composes the enquiry email and sends it once, bounded by the configured timeout
func (s *EmailService) SendContactEmail(ctx context.Context, data ContactEmailData) (Receipt, error) {
	msg, err := ComposeContactEmail(Identity{
		From:    s.fromEmail,
		To:      s.toEmail,
		Subject: s.subject,
	}, data)
	if err != nil {
		return Receipt{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	return s.sender.Send(ctx, msg)
}

// IsConfigured checks if the provider has the credentials it needs
func (s *EmailService) IsConfigured() bool {
	return s.configured
}
