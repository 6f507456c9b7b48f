package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrValidation means a required contact field was missing or empty
	ErrValidation = errors.New("contact request is incomplete")
	// ErrNotConfigured means no destination webhook is configured
	ErrNotConfigured = errors.New("notification webhook is not configured")
	// ErrDelivery means the notification channel rejected or never received the message
	ErrDelivery = errors.New("failed to deliver contact notification")
)

// ContactRequest represents a contact form submission.
// Only presence is checked; email format is intentionally not validated.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Notification is an opaque, JSON-serializable payload for a notification channel
type Notification any

// NotificationFormatter renders a contact request into the channel's message format
type NotificationFormatter interface {
	Format(req *ContactRequest, sentAt time.Time) (Notification, error)
}

// Notifier delivers a formatted notification to an external channel
type Notifier interface {
	IsConfigured() bool
	Notify(ctx context.Context, n Notification) error
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates and relays a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
