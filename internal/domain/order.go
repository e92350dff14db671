package domain

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	UserID    uuid.UUID   `db:"user_id" json:"user_id"`
	Status    string      `db:"status" json:"status"`
	Total     float64     `db:"total" json:"total"`
	Items     []OrderItem `db:"-" json:"items"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

type OrderItem struct {
	ID          int64     `db:"id" json:"id"`
	OrderID     uuid.UUID `db:"order_id" json:"order_id"`
	ProductName string    `db:"product_name" json:"product_name"`
	Quantity    int       `db:"quantity" json:"quantity"`
	UnitPrice   float64   `db:"unit_price" json:"unit_price"`
}

// ProductSummary aggregates a user's ordered quantity and revenue per product.
type ProductSummary struct {
	ProductName   string  `db:"product_name" json:"product_name"`
	TotalQuantity int64   `db:"total_quantity" json:"total_quantity"`
	TotalRevenue  float64 `db:"total_revenue" json:"total_revenue"`
}
