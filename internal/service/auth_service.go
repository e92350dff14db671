package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/repository/ports"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrPasswordTooWeak    = errors.New("password does not meet requirements")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrTooManyRequests    = errors.New("too many requests")

	ErrResetTokenNotFound = errors.New("reset token not found")
	ErrResetTokenExpired  = errors.New("reset token expired")
	ErrResetTokenUsed     = errors.New("reset token already used")
)

// AuthResult is what every flow that ends in an authenticated user returns.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	users   ports.UserRepository
	resets  ports.ResetTokenRepository
	jwt     *util.JWTManager
	mailer  PasswordResetSender
	limiter RateLimiter

	resetTTL time.Duration
}

func NewAuthService(users ports.UserRepository, resets ports.ResetTokenRepository, jwtManager *util.JWTManager, mailer PasswordResetSender, limiter RateLimiter, resetTTL time.Duration) *AuthService {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &AuthService{
		users:    users,
		resets:   resets,
		jwt:      jwtManager,
		mailer:   mailer,
		limiter:  limiter,
		resetTTL: resetTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, ErrPasswordTooWeak
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, name, normalized, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}

	return s.issueSession(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// Authenticate resolves a bearer token to its user. Bad signatures and
// expired tokens are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email, phone, address *string) (*domain.User, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		name = &trimmed
	}
	if email != nil {
		normalized, err := NormalizeEmail(*email)
		if err != nil {
			return nil, ErrInvalidEmail
		}
		email = &normalized
	}

	user, err := s.users.UpdateProfile(ctx, userID, name, email, phone, address)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, ErrEmailAlreadyUsed
		case isNotFound(err):
			return nil, ErrUserNotFound
		default:
			return nil, err
		}
	}
	return user, nil
}

// RequestPasswordReset silently succeeds for unknown emails so responses
// never reveal whether an account exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}

	allowed, err := s.limiter.Allow(ctx, "pwreset:"+normalized)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrTooManyRequests
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	token, err := util.GenerateOpaqueToken()
	if err != nil {
		return err
	}

	if err := s.resets.InvalidateActive(ctx, user.Email); err != nil {
		return err
	}

	record, err := s.resets.Create(ctx, user.Email, HashResetToken(token), time.Now().Add(s.resetTTL))
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		// An undeliverable token must not stay redeemable.
		_, _ = s.resets.Consume(ctx, record.ID)
		return err
	}
	return nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return ErrPasswordTooWeak
	}

	record, err := s.resets.FindByTokenHash(ctx, HashResetToken(strings.TrimSpace(token)))
	if err != nil {
		if isNotFound(err) {
			return ErrResetTokenNotFound
		}
		return err
	}
	if record.IsConsumed() {
		return ErrResetTokenUsed
	}
	if record.IsExpired(time.Now()) {
		return ErrResetTokenExpired
	}

	consumed, err := s.resets.Consume(ctx, record.ID)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrResetTokenUsed
	}

	user, err := s.users.FindByEmail(ctx, record.Email)
	if err != nil {
		if isNotFound(err) {
			return ErrResetTokenNotFound
		}
		return err
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash, salt)
}

func (s *AuthService) issueSession(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// NormalizeEmail lowercases and trims an address after checking its shape.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

// HashResetToken digests an opaque token into its storage key.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
