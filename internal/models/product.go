package models

import "time"

// DefaultLowStockThreshold applies when a product is created without one.
const DefaultLowStockThreshold = 5

// Product represents a stock-keeping item that appointments may consume.
type Product struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Price             float64   `json:"price"`
	Stock             int       `json:"stock"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	CategoryID        int       `json:"category_id"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (p Product) IsLowStock() bool {
	return p.Stock < p.LowStockThreshold
}
