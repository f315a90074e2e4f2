package repository

import (
	"restaurant_orders/internal/models"

	"gorm.io/gorm"
)

type TableRepository interface {
	Create(table *models.Table) error
	GetByID(id uint) (*models.Table, error)
	GetByIDForUpdate(id uint) (*models.Table, error)
	GetAll() ([]models.Table, error)
	SetOccupied(id uint, occupied bool) error
	Delete(id uint) error
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(table *models.Table) error {
	return r.db.Create(table).Error
}

func (r *tableRepository) GetByID(id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.First(&table, id).Error; err != nil {
		return nil, notFoundOr(err, "table", id)
	}
	return &table, nil
}

// GetByIDForUpdate locks the table row for the rest of the transaction. Used
// by the order ledger to keep two waiters from opening duplicate orders on
// the same table.
func (r *tableRepository) GetByIDForUpdate(id uint) (*models.Table, error) {
	var table models.Table
	if err := lockForUpdate(r.db).First(&table, id).Error; err != nil {
		return nil, notFoundOr(err, "table", id)
	}
	return &table, nil
}

func (r *tableRepository) GetAll() ([]models.Table, error) {
	var tables []models.Table
	err := r.db.Order("name").Find(&tables).Error
	return tables, err
}

func (r *tableRepository) SetOccupied(id uint, occupied bool) error {
	return r.db.Model(&models.Table{}).Where("id = ?", id).Update("occupied", occupied).Error
}

func (r *tableRepository) Delete(id uint) error {
	return r.db.Delete(&models.Table{}, id).Error
}
