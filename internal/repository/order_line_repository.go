package repository

import (
	"errors"
	"fmt"

	"restaurant_orders/internal/models"

	"gorm.io/gorm"
)

type OrderLineRepository interface {
	Create(line *models.OrderLine) error
	GetByID(id uint) (*models.OrderLine, error)
	GetByIDForUpdate(id uint) (*models.OrderLine, error)
	GetByOrderID(orderID uint) ([]models.OrderLine, error)
	FindPendingMatch(orderID, productID uint, note string) (*models.OrderLine, error)
	UnfulfilledCount(orderID uint) (int64, error)
	Update(line *models.OrderLine) error
	Delete(id uint) error
}

type orderLineRepository struct {
	db *gorm.DB
}

func NewOrderLineRepository(db *gorm.DB) OrderLineRepository {
	return &orderLineRepository{db: db}
}

func (r *orderLineRepository) Create(line *models.OrderLine) error {
	return r.db.Create(line).Error
}

func (r *orderLineRepository) GetByID(id uint) (*models.OrderLine, error) {
	var line models.OrderLine
	if err := r.db.Preload("Product").First(&line, id).Error; err != nil {
		return nil, notFoundOr(err, "order line", id)
	}
	return &line, nil
}

func (r *orderLineRepository) GetByIDForUpdate(id uint) (*models.OrderLine, error) {
	var line models.OrderLine
	if err := lockForUpdate(r.db).First(&line, id).Error; err != nil {
		return nil, notFoundOr(err, "order line", id)
	}
	if err := r.db.Preload("Product").First(&line, line.ID).Error; err != nil {
		return nil, notFoundOr(err, "order line", id)
	}
	return &line, nil
}

func (r *orderLineRepository) GetByOrderID(orderID uint) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	err := r.db.Preload("Product").Where("order_id = ?", orderID).Find(&lines).Error
	return lines, err
}

// FindPendingMatch looks for a still-unconfirmed line of the same product and
// customization note, the merge target for repeated additions. Returns
// (nil, nil) when there is nothing to merge into.
func (r *orderLineRepository) FindPendingMatch(orderID, productID uint, note string) (*models.OrderLine, error) {
	var line models.OrderLine
	err := r.db.Preload("Product").
		Where("order_id = ? AND product_id = ? AND note = ? AND status = ?",
			orderID, productID, note, models.LinePending).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find pending line: %w", err)
	}
	return &line, nil
}

// UnfulfilledCount is the closure guard: an order may only close when this
// reaches zero.
func (r *orderLineRepository) UnfulfilledCount(orderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderLine{}).
		Where("order_id = ? AND status <> ?", orderID, models.LineFulfilled).
		Count(&count).Error
	return count, err
}

func (r *orderLineRepository) Update(line *models.OrderLine) error {
	return r.db.Save(line).Error
}

func (r *orderLineRepository) Delete(id uint) error {
	return r.db.Delete(&models.OrderLine{}, id).Error
}
