package repository

import (
	"errors"
	"time"

	"restaurant_orders/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SalesRepository interface {
	UpsertDaily(date time.Time, amount decimal.Decimal) error
	GetByDate(date time.Time) (*models.DailySales, error)
	GetRange(from, to *time.Time) ([]models.DailySales, error)
}

type salesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) SalesRepository {
	return &salesRepository{db: db}
}

// UpsertDaily adds amount to the ledger row for the given calendar date,
// creating the row on the day's first closure. The increment happens inside
// the upsert statement itself, so two orders closing at the same moment on
// the same date cannot lose an update.
func (r *salesRepository) UpsertDaily(date time.Time, amount decimal.Decimal) error {
	row := models.DailySales{
		Date:  models.DateOf(date),
		Total: amount,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total":      gorm.Expr("total + ?", amount),
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
}

// GetByDate returns the row for the date, or a zero-total row when no order
// has closed that day yet.
func (r *salesRepository) GetByDate(date time.Time) (*models.DailySales, error) {
	var row models.DailySales
	err := r.db.Where("date = ?", models.DateOf(date)).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.DailySales{Date: models.DateOf(date), Total: decimal.Zero}, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetRange returns daily rows ordered by date ascending, optionally bounded
// by [from, to] inclusive.
func (r *salesRepository) GetRange(from, to *time.Time) ([]models.DailySales, error) {
	q := r.db.Order("date ASC")
	if from != nil {
		q = q.Where("date >= ?", models.DateOf(*from))
	}
	if to != nil {
		q = q.Where("date <= ?", models.DateOf(*to))
	}
	var rows []models.DailySales
	err := q.Find(&rows).Error
	return rows, err
}
