package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/domain"
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepo(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const orderQuery = `
        INSERT INTO customer_order (id, user_id, status, total)
        VALUES ($1, $2, $3, $4)
        RETURNING id, user_id, status, total, created_at
    `
	created := domain.Order{}
	row := tx.QueryRowxContext(ctx, orderQuery, order.ID, order.UserID, order.Status, order.Total)
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}

	const itemQuery = `
        INSERT INTO order_item (order_id, product_name, quantity, unit_price)
        VALUES ($1, $2, $3, $4)
        RETURNING id, order_id, product_name, quantity, unit_price
    `
	for _, item := range order.Items {
		var inserted domain.OrderItem
		row := tx.QueryRowxContext(ctx, itemQuery, created.ID, item.ProductName, item.Quantity, item.UnitPrice)
		if err := row.StructScan(&inserted); err != nil {
			return nil, err
		}
		created.Items = append(created.Items, inserted)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	const query = `
        SELECT id, user_id, status, total, created_at
        FROM customer_order
        WHERE id = $1
    `
	var order domain.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	const query = `
        SELECT id, user_id, status, total, created_at
        FROM customer_order
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	var orders []domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, userID, limit, offset); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := r.attachItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) SummaryByProduct(ctx context.Context, userID uuid.UUID) ([]domain.ProductSummary, error) {
	const query = `
        SELECT i.product_name,
               SUM(i.quantity) AS total_quantity,
               SUM(i.quantity * i.unit_price) AS total_revenue
        FROM order_item i
        JOIN customer_order o ON o.id = i.order_id
        WHERE o.user_id = $1
        GROUP BY i.product_name
        ORDER BY total_revenue DESC
    `
	var summary []domain.ProductSummary
	if err := r.db.SelectContext(ctx, &summary, query, userID); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, order *domain.Order) error {
	const query = `
        SELECT id, order_id, product_name, quantity, unit_price
        FROM order_item
        WHERE order_id = $1
        ORDER BY id
    `
	return r.db.SelectContext(ctx, &order.Items, query, order.ID)
}
