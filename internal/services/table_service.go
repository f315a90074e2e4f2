package services

import (
	"strings"

	"restaurant_orders/internal/apperrors"
	"restaurant_orders/internal/models"
	"restaurant_orders/internal/repository"
)

// TableService is the table registry. The occupied flag is not exposed for
// mutation here; only the order ledger flips it.
type TableService interface {
	List() ([]models.Table, error)
	Get(id uint) (*models.Table, error)
	Create(name string) (*models.Table, error)
	Delete(id uint) error
}

type tableService struct {
	tableRepo repository.TableRepository
}

func NewTableService(tableRepo repository.TableRepository) TableService {
	return &tableService{tableRepo: tableRepo}
}

func (s *tableService) List() ([]models.Table, error) {
	return s.tableRepo.GetAll()
}

func (s *tableService) Get(id uint) (*models.Table, error) {
	return s.tableRepo.GetByID(id)
}

func (s *tableService) Create(name string) (*models.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("table name is required")
	}
	table := &models.Table{Name: name}
	if err := s.tableRepo.Create(table); err != nil {
		return nil, err
	}
	return table, nil
}

// Delete refuses to remove a table with diners at it.
func (s *tableService) Delete(id uint) error {
	table, err := s.tableRepo.GetByID(id)
	if err != nil {
		return err
	}
	if table.Occupied {
		return apperrors.InvalidState("table is occupied")
	}
	return s.tableRepo.Delete(id)
}
