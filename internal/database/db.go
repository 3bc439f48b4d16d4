package database

import (
	"log"

	"mastercheffpdv-backend/internal/config"
	"mastercheffpdv-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Shift{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	// O AutoMigrate cria o uniqueIndex de shifts.name, mas instalações antigas
	// (criadas antes do índice) podem ter ficado sem ele. Garante aqui.
	if DB.Migrator().HasTable(&models.Shift{}) {
		if err := DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_name ON shifts(name)").Error; err != nil {
			log.Printf("Índice único de shifts.name não pôde ser criado: %v", err)
		}
	}

	log.Println("Conexão com o banco estabelecida. Migration concluída.")
}
