package order

import (
	"testing"

	"mastercheffpdv-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOrderTotal(t *testing.T) {
	items := []models.OrderItem{
		{LineTotal: decimal.RequireFromString("10.50")},
		{LineTotal: decimal.RequireFromString("4.25")},
		{LineTotal: decimal.RequireFromString("0.25")},
	}
	require.True(t, orderTotal(items).Equal(decimal.RequireFromString("15")))

	require.True(t, orderTotal(nil).IsZero())
}

func TestValidMethod(t *testing.T) {
	for _, m := range []models.PaymentMethod{
		models.PaymentCash, models.PaymentCredit, models.PaymentDebit, models.PaymentPix,
	} {
		require.True(t, validMethod(m), "%s", m)
	}

	require.False(t, validMethod("voucher"))
	require.False(t, validMethod(""))
}
