package shift

import (
	"errors"
	"time"

	"mastercheffpdv-backend/internal/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (g *gormStore) FindByName(name string) (*models.Shift, error) {
	var sh models.Shift
	err := g.db.Where("name = ?", name).First(&sh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (g *gormStore) FindOpen() (*models.Shift, error) {
	var sh models.Shift
	err := g.db.Where("status = ?", models.ShiftStatusOpen).First(&sh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (g *gormStore) Create(sh *models.Shift) error {
	return g.db.Create(sh).Error
}

func (g *gormStore) Close(id uint, at time.Time) error {
	return g.db.Model(&models.Shift{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":    models.ShiftStatusClosed,
			"closed_at": at,
		}).Error
}

func (g *gormStore) OrdersForSettlement(shiftID uint) ([]models.Order, error) {
	var orders []models.Order
	err := g.db.
		Where("shift_id = ? AND status <> ?", shiftID, models.OrderStatusCanceled).
		Order("created_at asc, id asc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
