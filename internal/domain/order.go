package domain

import "time"

// PurchaseOrder is owned by the user who placed it.
type PurchaseOrder struct {
	ID          int64
	UserID      int64
	OrderDate   time.Time
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
