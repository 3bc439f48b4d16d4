package shift

import (
	"mastercheffpdv-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Summary é o resumo de fechamento mostrado ao administrador antes de
// confirmar. Derivado, nunca persistido.
type Summary struct {
	ShiftID      uint            `json:"shift_id"`
	ShiftName    string          `json:"shift_name"`
	InitialFloat decimal.Decimal `json:"initial_float"`

	Total  decimal.Decimal `json:"total"`
	Cash   decimal.Decimal `json:"cash"`
	Credit decimal.Decimal `json:"credit"`
	Debit  decimal.Decimal `json:"debit"`
	Pix    decimal.Decimal `json:"pix"`
	// Formas de pagamento desconhecidas caem aqui, assim as colunas sempre
	// fecham com o total.
	Other decimal.Decimal `json:"other"`

	Count int `json:"count"`
}

// BuildSummary soma os pedidos em uma única passada. Pedidos cancelados
// ficam fora de todos os números.
func BuildSummary(orders []models.Order) *Summary {
	sum := &Summary{}

	for _, o := range orders {
		if o.Status == models.OrderStatusCanceled {
			continue
		}

		sum.Total = sum.Total.Add(o.Total)
		sum.Count++

		switch o.Method {
		case models.PaymentCash:
			sum.Cash = sum.Cash.Add(o.Total)
		case models.PaymentCredit:
			sum.Credit = sum.Credit.Add(o.Total)
		case models.PaymentDebit:
			sum.Debit = sum.Debit.Add(o.Total)
		case models.PaymentPix:
			sum.Pix = sum.Pix.Add(o.Total)
		default:
			sum.Other = sum.Other.Add(o.Total)
		}
	}

	return sum
}
