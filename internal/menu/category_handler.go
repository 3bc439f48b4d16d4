package menu

import (
	"strings"

	"mastercheffpdv-backend/internal/database"
	"mastercheffpdv-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

type CreateCategoryRequest struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name"`
	DisplayOrder *int    `json:"display_order"`
}

// GET /api/categories (qualquer usuário autenticado)
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("display_order asc, name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as categorias")
		}

		res := make([]CategoryResponse, 0, len(categories))
		for _, cat := range categories {
			res = append(res, CategoryResponse{
				ID:           cat.ID,
				Name:         cat.Name,
				DisplayOrder: cat.DisplayOrder,
			})
		}
		return c.JSON(res)
	}
}

// POST /api/admin/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nome da categoria é obrigatório")
		}

		cat := models.Category{
			Name:         body.Name,
			DisplayOrder: body.DisplayOrder,
		}

		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a categoria")
		}

		return c.Status(fiber.StatusCreated).JSON(CategoryResponse{
			ID:           cat.ID,
			Name:         cat.Name,
			DisplayOrder: cat.DisplayOrder,
		})
	}
}

// PUT /api/admin/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		var body UpdateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nome da categoria não pode ficar vazio")
			}
			cat.Name = name
		}
		if body.DisplayOrder != nil {
			cat.DisplayOrder = *body.DisplayOrder
		}

		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a categoria")
		}

		return c.JSON(CategoryResponse{
			ID:           cat.ID,
			Name:         cat.Name,
			DisplayOrder: cat.DisplayOrder,
		})
	}
}

// DELETE /api/admin/categories/:id
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Categoria não encontrada")
		}

		var count int64
		database.DB.Model(&models.Product{}).Where("category_id = ?", cat.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Categoria possui produtos, remova-os antes")
		}

		if err := database.DB.Delete(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover a categoria")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
