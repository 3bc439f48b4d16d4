package menu

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"mastercheffpdv-backend/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	database.DB = gormDB
	t.Cleanup(func() {
		database.DB = nil
		sqlDB.Close()
	})

	return mock
}

func TestPublicMenuHandler(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_order"}).
			AddRow(1, "Bebidas", 1).
			AddRow(2, "Lanches", 2))

	mock.ExpectQuery(`SELECT (.+) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name", "description", "price", "available"}).
			AddRow(10, 1, "Suco de Laranja", "300ml", "8.50", true).
			AddRow(11, 2, "X-Burger", "", "24.90", true))

	app := fiber.New()
	app.Get("/api/menu", PublicMenuHandler())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/menu", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var menu []MenuCategory
	require.NoError(t, json.Unmarshal(body, &menu))
	require.Len(t, menu, 2)
	require.Equal(t, "Bebidas", menu[0].Name)
	require.Len(t, menu[0].Products, 1)
	require.Equal(t, "Suco de Laranja", menu[0].Products[0].Name)
	require.True(t, menu[0].Products[0].Price.String() == "8.5" || menu[0].Products[0].Price.String() == "8.50")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicMenuHandler_SkipsEmptyCategories(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_order"}).
			AddRow(1, "Bebidas", 1))

	mock.ExpectQuery(`SELECT (.+) FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name", "description", "price", "available"}))

	app := fiber.New()
	app.Get("/api/menu", PublicMenuHandler())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/menu", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var menu []MenuCategory
	require.NoError(t, json.Unmarshal(body, &menu))
	require.Empty(t, menu, "categoria sem produto disponível fica fora do cardápio")
}
