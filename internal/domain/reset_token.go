package domain

import (
	"time"
)

// ResetToken authorizes exactly one password change. Only the SHA-256 digest
// of the opaque token ever reaches storage.
type ResetToken struct {
	ID         int64      `db:"id" json:"id"`
	Email      string     `db:"email" json:"email"`
	TokenHash  string     `db:"token_hash" json:"-"`
	ExpiresAt  time.Time  `db:"expires_at" json:"expires_at"`
	ConsumedAt *time.Time `db:"consumed_at" json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

func (t *ResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t *ResetToken) IsConsumed() bool {
	return t.ConsumedAt != nil
}
