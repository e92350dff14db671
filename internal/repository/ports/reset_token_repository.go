package ports

import (
	"context"
	"time"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

type ResetTokenRepository interface {
	Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*domain.ResetToken, error)
	// InvalidateActive consumes every outstanding token for the email so a
	// newly issued token is the only usable one.
	InvalidateActive(ctx context.Context, email string) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*domain.ResetToken, error)
	// Consume marks the token consumed if it still is unconsumed; false when
	// a concurrent reset already spent it.
	Consume(ctx context.Context, id int64) (bool, error)
}
