package repository

import (
	"errors"
	"fmt"

	"restaurant_orders/internal/apperrors"
	"restaurant_orders/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByIDForUpdate(id uint) (*models.Order, error)
	GetActiveByTable(tableID uint) (*models.Order, error)
	GetKitchenOrder(id uint) (*models.Order, error)
	ListKitchen() ([]models.Order, error)
	Save(order *models.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Lines.Product").Preload("Table").First(&order, id).Error
	if err != nil {
		return nil, notFoundOr(err, "order", id)
	}
	return &order, nil
}

// GetByIDForUpdate locks the order row for the rest of the transaction so a
// fulfillment and a closure against the same order cannot interleave. Lines
// are loaded by separate unlocked queries.
func (r *orderRepository) GetByIDForUpdate(id uint) (*models.Order, error) {
	var order models.Order
	err := lockForUpdate(r.db).First(&order, id).Error
	if err != nil {
		return nil, notFoundOr(err, "order", id)
	}
	err = r.db.Preload("Lines.Product").Preload("Table").First(&order, id).Error
	if err != nil {
		return nil, notFoundOr(err, "order", id)
	}
	return &order, nil
}

// GetActiveByTable returns the single non-delivered order assigned to the
// table, or NotFound when the table has none.
func (r *orderRepository) GetActiveByTable(tableID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Lines.Product").Preload("Table").
		Where("table_id = ? AND status <> ?", tableID, models.OrderDelivered).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundMsg(fmt.Sprintf("active order for table %d", tableID))
		}
		return nil, fmt.Errorf("get active order for table %d: %w", tableID, err)
	}
	return &order, nil
}

// GetKitchenOrder resolves an order through the kitchen scope: confirmed and
// not yet delivered. Anything outside that scope is NotFound, matching the
// lookup-with-filter semantics of the kitchen views.
func (r *orderRepository) GetKitchenOrder(id uint) (*models.Order, error) {
	var order models.Order
	err := lockForUpdate(r.db).
		Where("id = ? AND status IN ?", id, []models.OrderStatus{models.OrderConfirmed, models.OrderAttended}).
		First(&order).Error
	if err != nil {
		return nil, notFoundOr(err, "kitchen order", id)
	}
	if err := r.db.Preload("Lines.Product").Preload("Table").First(&order, order.ID).Error; err != nil {
		return nil, notFoundOr(err, "kitchen order", id)
	}
	return &order, nil
}

// ListKitchen returns all confirmed, undelivered orders oldest first.
func (r *orderRepository) ListKitchen() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Lines.Product").Preload("Table").
		Where("status IN ?", []models.OrderStatus{models.OrderConfirmed, models.OrderAttended}).
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Save(order *models.Order) error {
	return r.db.Save(order).Error
}
