package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null;unique"`
	DisplayOrder int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Products []Product
}

type Product struct {
	ID           uint `gorm:"primaryKey"`
	CategoryID   uint `gorm:"index;not null"`
	Category     *Category
	Name         string          `gorm:"size:100;not null"`
	Description  string          `gorm:"size:255"`
	Price        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Available    bool            `gorm:"not null;default:true"` // aparece no cardápio público
	DisplayOrder int             `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
