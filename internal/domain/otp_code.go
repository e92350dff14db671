package domain

import (
	"time"
)

// OTPPurpose distinguishes what a one-time code proves once verified.
type OTPPurpose string

const (
	OTPPurposeLogin    OTPPurpose = "login"
	OTPPurposeRegister OTPPurpose = "register"
)

// OTPCode is a short-lived single-use code keyed by (email, purpose). The
// code itself is stored as an argon2id hash; at most one unconsumed code per
// key is ever consultable because issuing a new one invalidates the rest.
type OTPCode struct {
	ID         int64      `db:"id" json:"id"`
	Email      string     `db:"email" json:"email"`
	Purpose    OTPPurpose `db:"purpose" json:"purpose"`
	CodeHash   []byte     `db:"code_hash" json:"-"`
	CodeSalt   []byte     `db:"code_salt" json:"-"`
	Payload    []byte     `db:"payload" json:"-"`
	ExpiresAt  time.Time  `db:"expires_at" json:"expires_at"`
	ConsumedAt *time.Time `db:"consumed_at" json:"consumed_at,omitempty"`
	Attempts   int        `db:"attempts" json:"attempts"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

func (c *OTPCode) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

func (c *OTPCode) IsConsumed() bool {
	return c.ConsumedAt != nil
}

// PendingRegistration is the payload stashed alongside a register-purpose
// code. The password is derived before storage so plaintext never persists.
type PendingRegistration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"password_hash"`
	PasswordSalt []byte `json:"password_salt"`
}
