package ports

import (
	"context"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, name, email, message string) (*domain.ContactMessage, error)
}
