package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"   // dinheiro
	PaymentCredit PaymentMethod = "credit" // cartão de crédito
	PaymentDebit  PaymentMethod = "debit"  // cartão de débito
	PaymentPix    PaymentMethod = "pix"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

type Order struct {
	ID           uint   `gorm:"primaryKey"`
	Reference    string `gorm:"size:36;uniqueIndex;not null"` // uuid impresso no recibo
	ShiftID      uint   `gorm:"index;not null"`
	Shift        *Shift
	CustomerName string          `gorm:"size:100"`
	TableNumber  *int            // nil para pedidos no balcão
	Total        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Method       PaymentMethod   `gorm:"column:payment_method;size:20;not null"`
	Status       OrderStatus     `gorm:"size:20;index;not null"`
	CreatedBy    uint            `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []OrderItem
}

type OrderItem struct {
	ID          uint `gorm:"primaryKey"`
	OrderID     uint `gorm:"index;not null"`
	ProductID   uint `gorm:"not null"`
	ProductName string          `gorm:"size:100;not null"` // denormalizado para o recibo
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Note        string          `gorm:"size:255"`
	CreatedAt   time.Time
}
