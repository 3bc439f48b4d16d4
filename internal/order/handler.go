package order

import (
	"errors"
	"fmt"
	"time"

	"mastercheffpdv-backend/internal/audit"
	"mastercheffpdv-backend/internal/auth"
	"mastercheffpdv-backend/internal/database"
	"mastercheffpdv-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateOrderItemRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

type CreateOrderRequest struct {
	CustomerName string                   `json:"customer_name"`
	TableNumber  *int                     `json:"table_number"`
	Method       models.PaymentMethod     `json:"payment_method"`
	Items        []CreateOrderItemRequest `json:"items"`
}

type OrderItemResponse struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Note        string          `json:"note"`
}

type OrderResponse struct {
	ID           uint                 `json:"id"`
	Reference    string               `json:"reference"`
	ShiftID      uint                 `json:"shift_id"`
	CustomerName string               `json:"customer_name"`
	TableNumber  *int                 `json:"table_number"`
	Total        decimal.Decimal      `json:"total"`
	Method       models.PaymentMethod `json:"payment_method"`
	Status       models.OrderStatus   `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	Items        []OrderItemResponse  `json:"items"`
}

func toOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
			Note:        it.Note,
		})
	}
	return OrderResponse{
		ID:           o.ID,
		Reference:    o.Reference,
		ShiftID:      o.ShiftID,
		CustomerName: o.CustomerName,
		TableNumber:  o.TableNumber,
		Total:        o.Total,
		Method:       o.Method,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		Items:        items,
	}
}

func validMethod(m models.PaymentMethod) bool {
	switch m {
	case models.PaymentCash, models.PaymentCredit, models.PaymentDebit, models.PaymentPix:
		return true
	}
	return false
}

// Um pedido inteiro fecha em uma única forma de pagamento, sem divisão.
func orderTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}

// -------------------------------------------------
// POST /api/orders
// Exige um caixa aberto: todo pedido pertence ao caixa do dia.
// -------------------------------------------------
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if !validMethod(body.Method) {
			return fiber.NewError(fiber.StatusBadRequest, "Forma de pagamento inválida (cash|credit|debit|pix)")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "O pedido precisa de pelo menos um item")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var active models.Shift
		if err := database.DB.Where("status = ?", models.ShiftStatusOpen).First(&active).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusConflict, "Nenhum caixa aberto, abra o caixa antes de lançar pedidos")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível consultar o caixa")
		}

		items := make([]models.OrderItem, 0, len(body.Items))
		for _, it := range body.Items {
			if it.Quantity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Quantidade deve ser maior que zero")
			}

			var product models.Product
			if err := database.DB.First(&product, it.ProductID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Produto %d não encontrado", it.ProductID))
			}
			if !product.Available {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Produto %s indisponível", product.Name))
			}

			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    it.Quantity,
				UnitPrice:   product.Price,
				LineTotal:   product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
				Note:        it.Note,
			})
		}

		ord := models.Order{
			Reference:    uuid.NewString(),
			ShiftID:      active.ID,
			CustomerName: body.CustomerName,
			TableNumber:  body.TableNumber,
			Total:        orderTotal(items),
			Method:       body.Method,
			Status:       models.OrderStatusPending,
			CreatedBy:    userID,
			Items:        items,
		}

		if err := database.DB.Create(&ord).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o pedido")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName(userID),
			EntityType:  "order",
			EntityID:    ord.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Pedido %s lançado: %s via %s", ord.Reference, ord.Total.StringFixed(2), ord.Method),
			After: fiber.Map{
				"id":             ord.ID,
				"reference":      ord.Reference,
				"shift_id":       ord.ShiftID,
				"total":          ord.Total,
				"payment_method": ord.Method,
				"status":         ord.Status,
			},
		}); logErr != nil {
			fmt.Printf("Audit log não pôde ser gravado: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toOrderResponse(&ord))
	}
}

// -------------------------------------------------
// GET /api/orders?shift_id=1&status=pending
// Sem shift_id, lista os pedidos do caixa aberto.
// -------------------------------------------------
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var shiftID uint
		if sidStr := c.Query("shift_id"); sidStr != "" {
			if _, err := fmt.Sscan(sidStr, &shiftID); err != nil || shiftID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "shift_id inválido")
			}
		} else {
			var active models.Shift
			if err := database.DB.Where("status = ?", models.ShiftStatusOpen).First(&active).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.JSON([]OrderResponse{})
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível consultar o caixa")
			}
			shiftID = active.ID
		}

		dbq := database.DB.Preload("Items").Where("shift_id = ?", shiftID)
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var orders []models.Order
		if err := dbq.Order("created_at asc, id asc").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os pedidos")
		}

		resp := make([]OrderResponse, 0, len(orders))
		for i := range orders {
			resp = append(resp, toOrderResponse(&orders[i]))
		}
		return c.JSON(resp)
	}
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// -------------------------------------------------
// PUT /api/orders/:id/status
// Cancelamento tem endpoint próprio; aqui só pending <-> completed.
// -------------------------------------------------
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		var body UpdateOrderStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if body.Status != models.OrderStatusPending && body.Status != models.OrderStatusCompleted {
			return fiber.NewError(fiber.StatusBadRequest, "Status inválido (pending|completed)")
		}

		var ord models.Order
		if err := database.DB.First(&ord, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido não encontrado")
		}
		if ord.Status == models.OrderStatusCanceled {
			return fiber.NewError(fiber.StatusConflict, "Pedido cancelado não pode mudar de status")
		}

		if err := database.DB.Model(&ord).Update("status", body.Status).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o pedido")
		}

		ord.Status = body.Status
		return c.JSON(toOrderResponse(&ord))
	}
}

// -------------------------------------------------
// POST /api/orders/:id/cancel
// O pedido permanece no banco e fica fora do fechamento do caixa.
// -------------------------------------------------
func CancelOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id inválido")
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var ord models.Order
		if err := database.DB.First(&ord, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido não encontrado")
		}
		if ord.Status == models.OrderStatusCanceled {
			return fiber.NewError(fiber.StatusConflict, "Pedido já está cancelado")
		}

		before := ord.Status
		if err := database.DB.Model(&ord).Update("status", models.OrderStatusCanceled).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cancelar o pedido")
		}
		ord.Status = models.OrderStatusCanceled

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName(userID),
			EntityType:  "order",
			EntityID:    ord.ID,
			Action:      models.AuditActionCancel,
			Description: fmt.Sprintf("Pedido %s cancelado (%s)", ord.Reference, ord.Total.StringFixed(2)),
			Before:      fiber.Map{"status": before},
			After:       fiber.Map{"status": ord.Status},
		}); logErr != nil {
			fmt.Printf("Audit log não pôde ser gravado: %v\n", logErr)
		}

		return c.JSON(toOrderResponse(&ord))
	}
}

func userName(userID uint) string {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return ""
	}
	return user.Name
}
