package models

import "time"

type Product struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null"`
	Price     float64 `gorm:"not null"` // unit price in R$
	Stock     int     `gorm:"not null"` // units on hand, never negative
	CreatedAt time.Time
	UpdatedAt time.Time
}
