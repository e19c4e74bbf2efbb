package usecase

import (
	"context"

	"github.com/James1Law/vibe-test-carpenter-site/internal/domain"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/email"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/redis"
)

type healthUsecase struct {
	emailService *email.EmailService
}

func NewHealthUsecase(emailService *email.EmailService) domain.HealthUsecase {
	return &healthUsecase{emailService: emailService}
}

func (u *healthUsecase) Check(ctx context.Context) domain.HealthReport {
	report := domain.HealthReport{
		Status:         "ok",
		Email:          "not_configured",
		RateLimitStore: "memory",
	}
	if u.emailService != nil && u.emailService.IsConfigured() {
		report.Email = "configured"
	}
	if redis.Client() != nil && redis.HealthCheck(ctx) == nil {
		report.RateLimitStore = "redis"
	}
	return report
}
