package domain

import "time"

// OrderItem is a line on a purchase order. PriceAtPurchase is frozen when
// the line is created so later product price changes do not rewrite history.
type OrderItem struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	Quantity        int
	PriceAtPurchase float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
