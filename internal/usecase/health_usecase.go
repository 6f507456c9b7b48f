package usecase

import (
	"context"
	"time"

	"portfolio-contact-api/internal/domain"
)

type HealthReport struct {
	Status         string `json:"status"`
	Webhook        string `json:"webhook"`
	RateLimitStore string `json:"rate_limit_store"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthReport
}

type healthUsecase struct {
	notifier   domain.Notifier
	redisCheck func(ctx context.Context) error
}

// NewHealthUsecase reports service readiness. redisCheck may be nil when
// rate limiting is in-memory only.
func NewHealthUsecase(notifier domain.Notifier, redisCheck func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{
		notifier:   notifier,
		redisCheck: redisCheck,
	}
}

func (u *healthUsecase) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:         "ok",
		Webhook:        "configured",
		RateLimitStore: "memory",
	}

	if !u.notifier.IsConfigured() {
		report.Status = "degraded"
		report.Webhook = "missing"
	}

	if u.redisCheck != nil {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := u.redisCheck(ctx); err == nil {
			report.RateLimitStore = "redis"
		}
	}

	return report
}
