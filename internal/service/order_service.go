package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/repository/ports"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderInvalid  = errors.New("order must contain at least one valid item")
)

type OrderService struct {
	orders ports.OrderRepository
}

func NewOrderService(orders ports.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, items []domain.OrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrOrderInvalid
	}

	total := 0.0
	for i := range items {
		items[i].ProductName = strings.TrimSpace(items[i].ProductName)
		if items[i].ProductName == "" || items[i].Quantity <= 0 || items[i].UnitPrice < 0 {
			return nil, ErrOrderInvalid
		}
		total += float64(items[i].Quantity) * items[i].UnitPrice
	}

	order := &domain.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: "placed",
		Total:  total,
		Items:  items,
	}
	return s.orders.Create(ctx, order)
}

// Get returns the order only to its owner; anything else looks absent.
func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	nLimit, nOffset := normalizeOrderPagination(limit, offset)
	return s.orders.ListByUser(ctx, userID, nLimit, nOffset)
}

func (s *OrderService) SummaryByProduct(ctx context.Context, userID uuid.UUID) ([]domain.ProductSummary, error) {
	return s.orders.SummaryByProduct(ctx, userID)
}

func normalizeOrderPagination(limit, offset int) (int, int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
