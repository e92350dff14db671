package http

import (
	"testing"
)

func TestRequestValidator(t *testing.T) {
	v := NewValidator()

	t.Run("accepts a complete register request", func(t *testing.T) {
		req := RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "Sunrise42"}
		if err := v.Validate(&req); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		req := RegisterRequest{Name: "Asha", Email: "not-an-email", Password: "Sunrise42"}
		if err := v.Validate(&req); err == nil {
			t.Fatal("expected a validation error")
		}
	})

	t.Run("rejects an order with no items", func(t *testing.T) {
		req := CreateOrderRequest{}
		if err := v.Validate(&req); err == nil {
			t.Fatal("expected a validation error")
		}
	})

	t.Run("rejects an order item with zero quantity", func(t *testing.T) {
		req := CreateOrderRequest{Items: []OrderItemRequest{{ProductName: "Neem Oil", Quantity: 0}}}
		if err := v.Validate(&req); err == nil {
			t.Fatal("expected a validation error")
		}
	})
}
