package shift

import (
	"errors"
	"fmt"
	"time"

	"mastercheffpdv-backend/internal/audit"
	"mastercheffpdv-backend/internal/auth"
	"mastercheffpdv-backend/internal/database"
	"mastercheffpdv-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type OpenShiftRequest struct {
	InitialFloat string `json:"initial_float"` // texto livre: "100", "100,50", "100.50"
}

type ShiftResponse struct {
	ID           uint               `json:"id"`
	Name         string             `json:"name"`
	Status       models.ShiftStatus `json:"status"`
	InitialFloat decimal.Decimal    `json:"initial_float"`
	OpenedAt     time.Time          `json:"opened_at"`
	OpenedBy     uint               `json:"opened_by"`
	ClosedAt     *time.Time         `json:"closed_at"`
}

func toShiftResponse(sh *models.Shift) ShiftResponse {
	return ShiftResponse{
		ID:           sh.ID,
		Name:         sh.Name,
		Status:       sh.Status,
		InitialFloat: sh.InitialFloat,
		OpenedAt:     sh.OpenedAt,
		OpenedBy:     sh.OpenedBy,
		ClosedAt:     sh.ClosedAt,
	}
}

// Traduz os erros do serviço para respostas HTTP com mensagem para o
// operador. Qualquer outro erro vira a mensagem genérica do chamador.
func toFiberError(err error, generic string) error {
	var dup *DuplicateShiftError
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return fiber.NewError(fiber.StatusBadRequest, "Troco inicial inválido, use um valor maior ou igual a zero")
	case errors.As(err, &dup):
		return fiber.NewError(fiber.StatusConflict, dup.Error())
	case errors.Is(err, ErrNotAllowed):
		return fiber.NewError(fiber.StatusForbidden, "Apenas administradores podem fechar o caixa")
	case errors.Is(err, ErrNoOpenShift):
		return fiber.NewError(fiber.StatusConflict, "Nenhum caixa aberto no momento")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, generic)
	}
}

// Nome do usuário para o audit log (denormalizado, igual ao recibo).
func currentUserName(userID uint) string {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return ""
	}
	return user.Name
}

// -------------------------------------------------
// POST /api/shifts/open
// -------------------------------------------------
func OpenShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OpenShiftRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		svc := NewService(NewStore(database.DB))
		sh, err := svc.Open(userID, body.InitialFloat)
		if err != nil {
			return toFiberError(err, "Não foi possível abrir o caixa")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    currentUserName(userID),
			EntityType:  "shift",
			EntityID:    sh.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Caixa %s aberto com troco %s", sh.Name, sh.InitialFloat.StringFixed(2)),
			After: fiber.Map{
				"id":            sh.ID,
				"name":          sh.Name,
				"status":        sh.Status,
				"initial_float": sh.InitialFloat,
				"opened_at":     sh.OpenedAt,
			},
		}); logErr != nil {
			fmt.Printf("Audit log não pôde ser gravado: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toShiftResponse(sh))
	}
}

// -------------------------------------------------
// GET /api/shifts/active
// -------------------------------------------------
func ActiveShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc := NewService(NewStore(database.DB))
		sh, err := svc.Active()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível consultar o caixa")
		}
		if sh == nil {
			return fiber.NewError(fiber.StatusNotFound, "Nenhum caixa aberto no momento")
		}
		return c.JSON(toShiftResponse(sh))
	}
}

// -------------------------------------------------
// GET /api/shifts?from=2025-12-01&to=2025-12-31
// -------------------------------------------------
func ListShiftsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Shift{})

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Data 'from' inválida, use YYYY-MM-DD")
			}
			dbq = dbq.Where("opened_at >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Data 'to' inválida, use YYYY-MM-DD")
			}
			dbq = dbq.Where("opened_at < ?", to.AddDate(0, 0, 1))
		}

		var shifts []models.Shift
		if err := dbq.Order("opened_at desc").Find(&shifts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os caixas")
		}

		resp := make([]ShiftResponse, 0, len(shifts))
		for i := range shifts {
			resp = append(resp, toShiftResponse(&shifts[i]))
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// GET /api/admin/shifts/close-summary
// Resumo de fechamento do caixa aberto. Só leitura, nada é gravado até a
// confirmação em POST /api/admin/shifts/close.
// -------------------------------------------------
func CloseSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc := NewService(NewStore(database.DB))
		sum, err := svc.RequestClose(auth.CurrentRole(c))
		if err != nil {
			return toFiberError(err, "Não foi possível montar o resumo de fechamento")
		}
		return c.JSON(sum)
	}
}

// -------------------------------------------------
// POST /api/admin/shifts/close
// -------------------------------------------------
func CloseShiftHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		role := auth.CurrentRole(c)
		svc := NewService(NewStore(database.DB))

		// O resumo entra no audit log como registro contábil do fechamento.
		sum, err := svc.RequestClose(role)
		if err != nil {
			return toFiberError(err, "Não foi possível montar o resumo de fechamento")
		}

		sh, err := svc.ConfirmClose(role)
		if err != nil {
			return toFiberError(err, "Não foi possível fechar o caixa")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    currentUserName(userID),
			EntityType:  "shift",
			EntityID:    sh.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Caixa %s fechado, total %s em %d pedidos", sh.Name, sum.Total.StringFixed(2), sum.Count),
			Before:      fiber.Map{"status": models.ShiftStatusOpen},
			After: fiber.Map{
				"status":    sh.Status,
				"closed_at": sh.ClosedAt,
				"summary":   sum,
			},
		}); logErr != nil {
			fmt.Printf("Audit log não pôde ser gravado: %v\n", logErr)
		}

		return c.JSON(fiber.Map{
			"shift":   toShiftResponse(sh),
			"summary": sum,
		})
	}
}
