package dashboard

import (
	"fmt"
	"strings"

	"mastercheffpdv-backend/internal/database"
	"mastercheffpdv-backend/internal/models"
	"mastercheffpdv-backend/internal/shift"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/admin/shifts/:id/report.xlsx
// Planilha de fechamento para conferência contábil: resumo por forma de
// pagamento e a lista de pedidos do caixa.
func ShiftReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		var sh models.Shift
		if err := database.DB.First(&sh, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Caixa não encontrado")
		}

		var orders []models.Order
		if err := database.DB.
			Where("shift_id = ? AND status <> ?", sh.ID, models.OrderStatusCanceled).
			Order("created_at asc, id asc").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar os pedidos")
		}

		sum := shift.BuildSummary(orders)

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Fechamento"
		f.SetSheetName("Sheet1", sheet)

		f.SetCellValue(sheet, "A1", "Caixa")
		f.SetCellValue(sheet, "B1", sh.Name)
		f.SetCellValue(sheet, "A2", "Status")
		f.SetCellValue(sheet, "B2", string(sh.Status))
		f.SetCellValue(sheet, "A3", "Troco inicial")
		f.SetCellValue(sheet, "B3", sh.InitialFloat.InexactFloat64())
		f.SetCellValue(sheet, "A4", "Abertura")
		f.SetCellValue(sheet, "B4", sh.OpenedAt.Format("2006-01-02 15:04"))
		if sh.ClosedAt != nil {
			f.SetCellValue(sheet, "A5", "Fechamento")
			f.SetCellValue(sheet, "B5", sh.ClosedAt.Format("2006-01-02 15:04"))
		}

		f.SetCellValue(sheet, "A7", "Forma de pagamento")
		f.SetCellValue(sheet, "B7", "Total")
		methodRows := []struct {
			label string
			value float64
		}{
			{"Dinheiro", sum.Cash.InexactFloat64()},
			{"Crédito", sum.Credit.InexactFloat64()},
			{"Débito", sum.Debit.InexactFloat64()},
			{"Pix", sum.Pix.InexactFloat64()},
			{"Outros", sum.Other.InexactFloat64()},
		}
		row := 8
		for _, m := range methodRows {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.label)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.value)
			row++
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total geral")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sum.Total.InexactFloat64())
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Pedidos")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sum.Count)

		row += 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Recibo")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Horário")
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Forma")
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Status")
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Valor")
		for _, o := range orders {
			row++
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), o.Reference)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), o.CreatedAt.Format("15:04:05"))
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(o.Method))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(o.Status))
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), o.Total.InexactFloat64())
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar a planilha")
		}

		filename := fmt.Sprintf("fechamento-%s.xlsx", strings.ReplaceAll(sh.Name, "/", "-"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
