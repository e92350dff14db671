package service

import (
	"context"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

// OTPSender delivers a one-time code to its owner. Delivery mechanics stay
// outside the auth core.
type OTPSender interface {
	SendOTP(ctx context.Context, email, code string, purpose domain.OTPPurpose) error
}

// PasswordResetSender delivers a reset token to the account email.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// ContactNotifier forwards a stored contact message to the shop inbox.
type ContactNotifier interface {
	SendContactNotification(ctx context.Context, msg *domain.ContactMessage) error
}

// RateLimiter bounds how often a keyed action may run inside a window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// NopLimiter allows everything; used when Redis is not configured.
type NopLimiter struct{}

func (NopLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}
