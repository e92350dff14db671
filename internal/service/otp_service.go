package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/repository/ports"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/util"
)

var (
	ErrOTPNotFound        = errors.New("no active code for this email")
	ErrOTPExpired         = errors.New("code expired")
	ErrOTPMismatch        = errors.New("incorrect code")
	ErrOTPTooManyAttempts = errors.New("too many incorrect attempts")
	ErrOTPAlreadyUsed     = errors.New("code already used")
)

// OTPService runs the request/verify halves of the passwordless flows. Codes
// are stored hashed and consumed with an atomic conditional update, so a
// burst of concurrent verifies settles with exactly one winner.
type OTPService struct {
	otps    ports.OTPRepository
	users   ports.UserRepository
	jwt     *util.JWTManager
	sender  OTPSender
	limiter RateLimiter

	ttl         time.Duration
	length      int
	maxAttempts int

	// overridable in tests
	generateCode func(int) (string, error)
}

func NewOTPService(otps ports.OTPRepository, users ports.UserRepository, jwtManager *util.JWTManager, sender OTPSender, limiter RateLimiter, ttl time.Duration, length, maxAttempts int) *OTPService {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &OTPService{
		otps:         otps,
		users:        users,
		jwt:          jwtManager,
		sender:       sender,
		limiter:      limiter,
		ttl:          ttl,
		length:       length,
		maxAttempts:  maxAttempts,
		generateCode: util.GenerateNumericOTP,
	}
}

// RequestLoginOTP issues a login code for an existing account.
func (s *OTPService) RequestLoginOTP(ctx context.Context, email string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}

	allowed, err := s.limiter.Allow(ctx, "otp:login:"+normalized)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrTooManyRequests
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := s.issue(ctx, user.Email, domain.OTPPurposeLogin, nil)
	if err != nil {
		return err
	}
	return s.sender.SendOTP(ctx, user.Email, code, domain.OTPPurposeLogin)
}

// RequestRegisterOTP validates the registration input, stashes it as the
// code's payload and mails the code. The password is derived here; plaintext
// never reaches the ledger.
func (s *OTPService) RequestRegisterOTP(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return ErrInvalidEmail
	}
	if err := util.ValidatePassword(password); err != nil {
		return ErrPasswordTooWeak
	}

	allowed, err := s.limiter.Allow(ctx, "otp:register:"+normalized)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrTooManyRequests
	}

	if _, err := s.users.FindByEmail(ctx, normalized); err == nil {
		return ErrEmailAlreadyUsed
	} else if !isNotFound(err) {
		return err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(domain.PendingRegistration{
		Name:         name,
		Email:        normalized,
		PasswordHash: hash,
		PasswordSalt: salt,
	})
	if err != nil {
		return err
	}

	code, err := s.issue(ctx, normalized, domain.OTPPurposeRegister, payload)
	if err != nil {
		return err
	}
	return s.sender.SendOTP(ctx, normalized, code, domain.OTPPurposeRegister)
}

func (s *OTPService) VerifyLoginOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	if _, err := s.verify(ctx, normalized, domain.OTPPurposeLogin, code); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.issueSession(user)
}

// VerifyRegisterOTP consumes the code and materializes the pending account.
// DuplicateEmail still applies when the email was registered between request
// and verify.
func (s *OTPService) VerifyRegisterOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	record, err := s.verify(ctx, normalized, domain.OTPPurposeRegister, code)
	if err != nil {
		return nil, err
	}

	var pending domain.PendingRegistration
	if err := json.Unmarshal(record.Payload, &pending); err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, pending.Name, pending.Email, pending.PasswordHash, pending.PasswordSalt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return s.issueSession(user)
}

// issue generates a fresh code for the key and retires any prior active one,
// so code stacking is impossible.
func (s *OTPService) issue(ctx context.Context, email string, purpose domain.OTPPurpose, payload []byte) (string, error) {
	code, err := s.generateCode(s.length)
	if err != nil {
		return "", err
	}
	hash, salt, err := util.DerivePassword(code)
	if err != nil {
		return "", err
	}

	if err := s.otps.InvalidateActive(ctx, email, purpose); err != nil {
		return "", err
	}
	if _, err := s.otps.Create(ctx, email, purpose, hash, salt, payload, time.Now().Add(s.ttl)); err != nil {
		return "", err
	}
	return code, nil
}

func (s *OTPService) verify(ctx context.Context, email string, purpose domain.OTPPurpose, code string) (*domain.OTPCode, error) {
	record, err := s.otps.FindLatest(ctx, email, purpose)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}

	if record.IsExpired(time.Now()) {
		return nil, ErrOTPExpired
	}

	if !util.VerifyPassword(strings.TrimSpace(code), record.CodeSalt, record.CodeHash) {
		attempts, err := s.otps.IncrementAttempts(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		if attempts >= s.maxAttempts {
			if _, err := s.otps.Consume(ctx, record.ID); err != nil {
				return nil, err
			}
			return nil, ErrOTPTooManyAttempts
		}
		return nil, ErrOTPMismatch
	}

	consumed, err := s.otps.Consume(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, ErrOTPAlreadyUsed
	}
	return record, nil
}

func (s *OTPService) issueSession(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
