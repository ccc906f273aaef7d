package model

import "time"

// Product is an inventory item. Stock never goes below zero: any
// decrement is clamped at the registry level.
type Product struct {
	Base
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category"`
	Supplier       string    `json:"supplier"`
	Stock          int       `json:"stock"`
	MinStock       int       `json:"min_stock"`
	CostPrice      float64   `json:"cost_price"`
	SellPrice      float64   `json:"sell_price"`
	ExpirationDate time.Time `json:"expiration_date"`
	Batch          string    `json:"batch"`
}

// LowStock reports whether the product sits at or below its minimum.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

type CreateProductRequest struct {
	Name           string    `json:"name" binding:"required"`
	Description    string    `json:"description"`
	Category       string    `json:"category" binding:"required"`
	Supplier       string    `json:"supplier"`
	Stock          int       `json:"stock" binding:"gte=0"`
	MinStock       int       `json:"min_stock" binding:"gte=0"`
	CostPrice      float64   `json:"cost_price" binding:"gte=0"`
	SellPrice      float64   `json:"sell_price" binding:"gte=0"`
	ExpirationDate time.Time `json:"expiration_date"`
	Batch          string    `json:"batch"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}
