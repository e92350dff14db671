package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error)
	SummaryByProduct(ctx context.Context, userID uuid.UUID) ([]domain.ProductSummary, error)
}
