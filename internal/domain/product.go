package domain

import "time"

// Product is a sellable catalog entry. Price is the current list price;
// order items capture the price at purchase time separately.
type Product struct {
	ID            int64
	Name          string
	CategoryID    int64
	Price         float64
	StockQuantity *int
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
