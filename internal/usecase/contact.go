package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/James1Law/vibe-test-carpenter-site/internal/domain"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/email"
)

type contactUsecase struct {
	emailService *email.EmailService
	log          *slog.Logger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(emailService *email.EmailService, log *slog.Logger) domain.ContactUsecase {
	if log == nil {
		log = slog.Default()
	}
	return &contactUsecase{
		emailService: emailService,
		log:          log.With("component", "contact"),
	}
}

// SendContactMessage revalidates the submission and relays it to the business owner.
// The provider is called at most once.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactSubmission) (*domain.ContactResult, error) {
	if req == nil {
		return nil, &domain.ValidationError{}
	}

	// Never trust the browser's checks.
	if errs := req.Validate(); !errs.Valid() {
		return nil, &domain.ValidationError{Fields: errs}
	}

	if !uc.emailService.IsConfigured() {
		uc.log.ErrorContext(ctx, "contact email not sent", "error", domain.ErrEmailNotConfigured)
		return nil, fmt.Errorf("%w: %w", domain.ErrEmailSendFailed, domain.ErrEmailNotConfigured)
	}

	receipt, err := uc.emailService.SendContactEmail(ctx, email.ContactEmailData{
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
	})
	if err != nil {
		attrs := []any{"error", err.Error()}
		var pe *email.ProviderError
		if errors.As(err, &pe) {
			attrs = append(attrs, "provider", pe.Provider, "provider_code", pe.Code, "provider_status", pe.StatusCode)
		}
		uc.log.ErrorContext(ctx, "email provider rejected contact email", attrs...)
		return nil, fmt.Errorf("%w: %w", domain.ErrEmailSendFailed, err)
	}

	uc.log.InfoContext(ctx, "contact email sent", "message_id", receipt.ID)
	return &domain.ContactResult{MessageID: receipt.ID}, nil
}
