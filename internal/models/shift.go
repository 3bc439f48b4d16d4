package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "open"
	ShiftStatusClosed ShiftStatus = "closed"
)

// Shift é o caixa de um dia. O nome é a data local no formato DD/MM/YY e é
// único: a constraint no banco é a garantia final contra dois caixas no
// mesmo dia.
type Shift struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"size:10;uniqueIndex;not null"` // "25/12/24"
	Status       ShiftStatus     `gorm:"size:10;index;not null"`
	InitialFloat decimal.Decimal `gorm:"type:decimal(20,4);not null"` // troco inicial
	OpenedAt     time.Time       `gorm:"not null"`
	OpenedBy     uint            `gorm:"not null"`
	Opener       *User           `gorm:"foreignKey:OpenedBy"`
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Orders []Order
}
