package dashboard

import (
	"fmt"
	"sort"
	"time"

	"mastercheffpdv-backend/internal/database"
	"mastercheffpdv-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SalesChartPoint struct {
	Label  string          `json:"label"` // data / início da semana / início do mês
	Cash   decimal.Decimal `json:"cash"`
	Credit decimal.Decimal `json:"credit"`
	Debit  decimal.Decimal `json:"debit"`
	Pix    decimal.Decimal `json:"pix"`
	Total  decimal.Decimal `json:"total"`
}

type SalesChartTotals struct {
	Cash   decimal.Decimal `json:"cash"`
	Credit decimal.Decimal `json:"credit"`
	Debit  decimal.Decimal `json:"debit"`
	Pix    decimal.Decimal `json:"pix"`
	Total  decimal.Decimal `json:"total"`
}

type SalesChartResponse struct {
	Period      string            `json:"period"` // daily | weekly | monthly
	From        string            `json:"from"`
	To          string            `json:"to"`
	Points      []SalesChartPoint `json:"points"`
	GrandTotals SalesChartTotals  `json:"grand_totals"`
}

// GET /api/admin/dashboard/sales-chart?period=daily&count=7
// Receita por forma de pagamento; pedidos cancelados ficam de fora.
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count inválido")
			}
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		switch period {
		case "weekly":
			days := 7 * (count - 1)
			start = end.AddDate(0, 0, -days)
		case "monthly":
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
		default:
			period = "daily"
			start = end.AddDate(0, 0, -(count - 1))
		}

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Method string    `gorm:"column:method"`
			Total  string    `gorm:"column:total"`
		}
		var rows []row

		var sql string
		switch period {
		case "weekly":
			sql = `
				SELECT date_trunc('week', created_at)::date AS bucket,
					   payment_method AS method,
					   SUM(total) AS total
				FROM orders
				WHERE status <> 'canceled' AND created_at >= ? AND created_at < ?
				GROUP BY bucket, method
				ORDER BY bucket ASC;
			`
		case "monthly":
			sql = `
				SELECT date_trunc('month', created_at)::date AS bucket,
					   payment_method AS method,
					   SUM(total) AS total
				FROM orders
				WHERE status <> 'canceled' AND created_at >= ? AND created_at < ?
				GROUP BY bucket, method
				ORDER BY bucket ASC;
			`
		default: // daily
			sql = `
				SELECT created_at::date AS bucket,
					   payment_method AS method,
					   SUM(total) AS total
				FROM orders
				WHERE status <> 'canceled' AND created_at >= ? AND created_at < ?
				GROUP BY bucket, method
				ORDER BY bucket ASC;
			`
		}

		// Limite superior exclusivo: dia seguinte, ou o primeiro dia após o
		// último mês no modo mensal.
		queryEnd := end.AddDate(0, 0, 1)
		if period == "monthly" {
			queryEnd = start.AddDate(0, count, 0)
			end = queryEnd.AddDate(0, 0, -1) // último dia exibido
		}

		if err := database.DB.Raw(sql, start, queryEnd).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível montar o gráfico")
		}

		type bucketAgg struct {
			Bucket time.Time
			Cash   decimal.Decimal
			Credit decimal.Decimal
			Debit  decimal.Decimal
			Pix    decimal.Decimal
		}

		buckets := make(map[time.Time]*bucketAgg)

		for _, r := range rows {
			agg, ok := buckets[r.Bucket]
			if !ok {
				agg = &bucketAgg{Bucket: r.Bucket}
				buckets[r.Bucket] = agg
			}

			total, err := decimal.NewFromString(r.Total)
			if err != nil {
				continue
			}

			switch r.Method {
			case string(models.PaymentCash):
				agg.Cash = agg.Cash.Add(total)
			case string(models.PaymentCredit):
				agg.Credit = agg.Credit.Add(total)
			case string(models.PaymentDebit):
				agg.Debit = agg.Debit.Add(total)
			case string(models.PaymentPix):
				agg.Pix = agg.Pix.Add(total)
			}
		}

		ordered := make([]*bucketAgg, 0, len(buckets))
		for _, v := range buckets {
			ordered = append(ordered, v)
		}
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].Bucket.Before(ordered[j].Bucket)
		})

		points := make([]SalesChartPoint, 0, len(ordered))
		grand := SalesChartTotals{}

		for _, b := range ordered {
			total := b.Cash.Add(b.Credit).Add(b.Debit).Add(b.Pix)
			points = append(points, SalesChartPoint{
				Label:  b.Bucket.Format("2006-01-02"),
				Cash:   b.Cash,
				Credit: b.Credit,
				Debit:  b.Debit,
				Pix:    b.Pix,
				Total:  total,
			})

			grand.Cash = grand.Cash.Add(b.Cash)
			grand.Credit = grand.Credit.Add(b.Credit)
			grand.Debit = grand.Debit.Add(b.Debit)
			grand.Pix = grand.Pix.Add(b.Pix)
			grand.Total = grand.Total.Add(total)
		}

		return c.JSON(SalesChartResponse{
			Period:      period,
			From:        start.Format("2006-01-02"),
			To:          end.Format("2006-01-02"),
			Points:      points,
			GrandTotals: grand,
		})
	}
}
