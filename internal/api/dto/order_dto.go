package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/commerce-service/internal/domain"
)

const dateLayout = "2006-01-02"

// Date is a calendar date encoded as "YYYY-MM-DD" on the wire.
type Date struct {
	time.Time
}

// UnmarshalJSON parses "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	d.Time = parsed
	return nil
}

// MarshalJSON renders "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

// OrderCreateRequest payload for new purchase orders.
type OrderCreateRequest struct {
	UserID      int64    `json:"user_id" validate:"required"`
	OrderDate   *Date    `json:"order_date,omitempty"`
	TotalAmount *float64 `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
}

// OrderUpdateRequest payload for order patches.
type OrderUpdateRequest struct {
	UserID      *int64   `json:"user_id,omitempty"`
	OrderDate   *Date    `json:"order_date,omitempty"`
	TotalAmount *float64 `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
}

// OrderResponse is the wire shape of a purchase order.
type OrderResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	OrderDate   Date      `json:"order_date"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.PurchaseOrder) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		OrderDate:   Date{order.OrderDate},
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// NewOrderResponses maps a slice of orders.
func NewOrderResponses(orders []domain.PurchaseOrder) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = NewOrderResponse(&orders[i])
	}
	return out
}

// OrderItemCreateRequest payload for new order lines.
type OrderItemCreateRequest struct {
	OrderID         int64    `json:"order_id" validate:"required"`
	ProductID       int64    `json:"product_id" validate:"required"`
	Quantity        int      `json:"quantity" validate:"required,gt=0"`
	PriceAtPurchase *float64 `json:"price_at_purchase,omitempty" validate:"omitempty,gte=0"`
}

// OrderItemUpdateRequest payload for order line patches.
type OrderItemUpdateRequest struct {
	OrderID         *int64   `json:"order_id,omitempty"`
	ProductID       *int64   `json:"product_id,omitempty"`
	Quantity        *int     `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	PriceAtPurchase *float64 `json:"price_at_purchase,omitempty" validate:"omitempty,gte=0"`
}

// OrderItemResponse is the wire shape of an order line.
type OrderItemResponse struct {
	ID              int64     `json:"id"`
	OrderID         int64     `json:"order_id"`
	ProductID       int64     `json:"product_id"`
	Quantity        int       `json:"quantity"`
	PriceAtPurchase float64   `json:"price_at_purchase"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewOrderItemResponse maps a domain order line.
func NewOrderItemResponse(item *domain.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:              item.ID,
		OrderID:         item.OrderID,
		ProductID:       item.ProductID,
		Quantity:        item.Quantity,
		PriceAtPurchase: item.PriceAtPurchase,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// NewOrderItemResponses maps a slice of order lines.
func NewOrderItemResponses(items []domain.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, len(items))
	for i := range items {
		out[i] = NewOrderItemResponse(&items[i])
	}
	return out
}
