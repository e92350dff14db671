package ports

import (
	"context"
	"time"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

// OTPRepository owns the one-time-code ledger. Consume must be atomic: of
// any number of concurrent calls for the same id, exactly one may succeed.
type OTPRepository interface {
	Create(ctx context.Context, email string, purpose domain.OTPPurpose, codeHash, codeSalt, payload []byte, expiresAt time.Time) (*domain.OTPCode, error)
	// InvalidateActive marks every unconsumed code for (email, purpose) as
	// consumed so only the most recently issued code stays valid.
	InvalidateActive(ctx context.Context, email string, purpose domain.OTPPurpose) error
	// FindLatest returns the newest unconsumed code for the key, expired or
	// not; expiry is the service's call. sql.ErrNoRows when none exists.
	FindLatest(ctx context.Context, email string, purpose domain.OTPPurpose) (*domain.OTPCode, error)
	// IncrementAttempts bumps the mismatch counter and returns the new value.
	IncrementAttempts(ctx context.Context, id int64) (int, error)
	// Consume marks the code consumed if it still is unconsumed. Returns
	// false when another call got there first.
	Consume(ctx context.Context, id int64) (bool, error)
}
