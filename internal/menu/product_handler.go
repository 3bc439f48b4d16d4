package menu

import (
	"strings"

	"mastercheffpdv-backend/internal/database"
	"mastercheffpdv-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID           uint            `json:"id"`
	CategoryID   uint            `json:"category_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Available    bool            `json:"available"`
	DisplayOrder int             `json:"display_order"`
}

type CreateProductRequest struct {
	CategoryID   uint   `json:"category_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        string `json:"price"` // aceita vírgula ou ponto, ex.: "24,90"
	Available    *bool  `json:"available"`
	DisplayOrder int    `json:"display_order"`
}

type UpdateProductRequest struct {
	CategoryID   *uint   `json:"category_id"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Price        *string `json:"price"`
	Available    *bool   `json:"available"`
	DisplayOrder *int    `json:"display_order"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Available:    p.Available,
		DisplayOrder: p.DisplayOrder,
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// GET /api/products?category_id=1 (qualquer usuário autenticado, inclui indisponíveis)
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		if cidStr := c.Query("category_id"); cidStr != "" {
			dbq = dbq.Where("category_id = ?", cidStr)
		}

		var products []models.Product
		if err := dbq.Order("display_order asc, name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os produtos")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toProductResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.CategoryID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nome e categoria são obrigatórios")
		}

		price, err := parsePrice(body.Price)
		if err != nil || price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Preço inválido")
		}

		var cat models.Category
		if err := database.DB.First(&cat, body.CategoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Categoria não encontrada")
		}

		available := true
		if body.Available != nil {
			available = *body.Available
		}

		p := models.Product{
			CategoryID:   body.CategoryID,
			Name:         body.Name,
			Description:  strings.TrimSpace(body.Description),
			Price:        price,
			Available:    available,
			DisplayOrder: body.DisplayOrder,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o produto")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(&p))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nome não pode ficar vazio")
			}
			p.Name = name
		}
		if body.Description != nil {
			p.Description = strings.TrimSpace(*body.Description)
		}
		if body.Price != nil {
			price, err := parsePrice(*body.Price)
			if err != nil || price.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Preço inválido")
			}
			p.Price = price
		}
		if body.CategoryID != nil {
			var cat models.Category
			if err := database.DB.First(&cat, *body.CategoryID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Categoria não encontrada")
			}
			p.CategoryID = *body.CategoryID
		}
		if body.Available != nil {
			p.Available = *body.Available
		}
		if body.DisplayOrder != nil {
			p.DisplayOrder = *body.DisplayOrder
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o produto")
		}

		return c.JSON(toProductResponse(&p))
	}
}

// DELETE /api/admin/products/:id
// Produto que já entrou em pedido não é removido, só marcado indisponível.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produto não encontrado")
		}

		var count int64
		database.DB.Model(&models.OrderItem{}).Where("product_id = ?", p.ID).Count(&count)
		if count > 0 {
			p.Available = false
			if err := database.DB.Save(&p).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível desativar o produto")
			}
			return c.JSON(toProductResponse(&p))
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o produto")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
