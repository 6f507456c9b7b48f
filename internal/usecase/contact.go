package usecase

import (
	"context"
	"fmt"
	"time"

	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/logger"
	"portfolio-contact-api/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	notifier  domain.Notifier
	formatter domain.NotificationFormatter
	validate  *validator.Validate
	now       func() time.Time
}

// ContactOption customizes the contact usecase
type ContactOption func(*contactUsecase)

// WithClock overrides the time source used to stamp notifications
func WithClock(now func() time.Time) ContactOption {
	return func(uc *contactUsecase) {
		uc.now = now
	}
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(notifier domain.Notifier, formatter domain.NotificationFormatter, validate *validator.Validate, opts ...ContactOption) domain.ContactUsecase {
	uc := &contactUsecase{
		notifier:  notifier,
		formatter: formatter,
		validate:  validate,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SendContactMessage validates the contact request and relays it to the notifier
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", domain.ErrValidation)
	}
	if err := uc.validate.Struct(req); err != nil {
		logger.Log.Info("Contact request rejected", "reasons", validation.FormatValidationErrors(err))
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if !uc.notifier.IsConfigured() {
		logger.Log.Error("SLACK_WEBHOOK_URL is not configured")
		return domain.ErrNotConfigured
	}

	payload, err := uc.formatter.Format(req, uc.now())
	if err != nil {
		return fmt.Errorf("failed to format notification: %w", err)
	}

	if err := uc.notifier.Notify(ctx, payload); err != nil {
		logger.Log.Error("Contact notification failed", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}

	return nil
}
