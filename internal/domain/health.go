package domain

import "context"

type HealthReport struct {
	Status         string `json:"status"`
	Email          string `json:"email"`
	RateLimitStore string `json:"rate_limit_store"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthReport
}
