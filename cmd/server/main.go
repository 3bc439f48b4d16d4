package main

import (
	"log"
	"strings"

	"mastercheffpdv-backend/internal/admin"
	"mastercheffpdv-backend/internal/audit"
	"mastercheffpdv-backend/internal/auth"
	"mastercheffpdv-backend/internal/config"
	"mastercheffpdv-backend/internal/dashboard"
	"mastercheffpdv-backend/internal/database"
	"mastercheffpdv-backend/internal/menu"
	"mastercheffpdv-backend/internal/models"
	"mastercheffpdv-backend/internal/order"
	"mastercheffpdv-backend/internal/shift"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor, recarregue a página",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Público
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Get("/menu", menu.PublicMenuHandler())

	// Autenticado
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Caixa
	protected.Post("/shifts/open", shift.OpenShiftHandler())
	protected.Get("/shifts/active", shift.ActiveShiftHandler())
	protected.Get("/shifts", shift.ListShiftsHandler())

	// Pedidos
	protected.Post("/orders", order.CreateOrderHandler())
	protected.Get("/orders", order.ListOrdersHandler())
	protected.Put("/orders/:id/status", order.UpdateOrderStatusHandler())
	protected.Post("/orders/:id/cancel", order.CancelOrderHandler())

	// Catálogo (leitura para o operador montar o pedido)
	protected.Get("/categories", menu.ListCategoriesHandler())
	protected.Get("/products", menu.ListProductsHandler())

	// Rotas de administrador
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Fechamento de caixa
	adminRoutes.Get("/shifts/close-summary", shift.CloseSummaryHandler())
	adminRoutes.Post("/shifts/close", shift.CloseShiftHandler())
	adminRoutes.Get("/shifts/:id/report.xlsx", dashboard.ShiftReportHandler())

	// Usuários
	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())

	// Cardápio
	adminRoutes.Post("/categories", menu.CreateCategoryHandler())
	adminRoutes.Put("/categories/:id", menu.UpdateCategoryHandler())
	adminRoutes.Delete("/categories/:id", menu.DeleteCategoryHandler())
	adminRoutes.Post("/products", menu.CreateProductHandler())
	adminRoutes.Put("/products/:id", menu.UpdateProductHandler())
	adminRoutes.Delete("/products/:id", menu.DeleteProductHandler())

	// Dashboard
	adminRoutes.Get("/dashboard/sales-chart", dashboard.SalesChartHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
