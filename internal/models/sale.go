package models

import "time"

// Sale is append-only history: created in one transaction together with its
// items and the stock deductions, never mutated afterwards.
type Sale struct {
	ID        uint       `gorm:"primaryKey"`
	Timestamp time.Time  `gorm:"index;not null"`
	Total     float64    `gorm:"not null"` // always equals the sum of the item subtotals
	Items     []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// SaleItem keeps no foreign key to products on purpose: deleting a product
// leaves its past sale rows dangling rather than rewriting history.
type SaleItem struct {
	ID        uint    `gorm:"primaryKey"`
	SaleID    uint    `gorm:"index;not null"`
	ProductID uint    `gorm:"index;not null"`
	Quantity  int     `gorm:"not null"`
	Subtotal  float64 `gorm:"not null"`
}
