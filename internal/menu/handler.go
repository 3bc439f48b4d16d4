package menu

import (
	"mastercheffpdv-backend/internal/database"
	"mastercheffpdv-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type MenuProduct struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type MenuCategory struct {
	ID       uint          `json:"id"`
	Name     string        `json:"name"`
	Products []MenuProduct `json:"products"`
}

// -------------------------------------------------
// GET /api/menu
// Cardápio digital público: sem autenticação, só produtos disponíveis.
// -------------------------------------------------
func PublicMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		err := database.DB.
			Preload("Products", "available = ?", true).
			Order("display_order asc, name asc").
			Find(&categories).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível carregar o cardápio")
		}

		resp := make([]MenuCategory, 0, len(categories))
		for _, cat := range categories {
			if len(cat.Products) == 0 {
				continue
			}

			products := make([]MenuProduct, 0, len(cat.Products))
			for _, p := range cat.Products {
				products = append(products, MenuProduct{
					ID:          p.ID,
					Name:        p.Name,
					Description: p.Description,
					Price:       p.Price,
				})
			}

			resp = append(resp, MenuCategory{
				ID:       cat.ID,
				Name:     cat.Name,
				Products: products,
			})
		}

		return c.JSON(resp)
	}
}
