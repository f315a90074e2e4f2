package services

import (
	"log"
	"strings"
	"time"

	"restaurant_orders/internal/apperrors"
	"restaurant_orders/internal/models"
	"restaurant_orders/internal/repository"

	"github.com/shopspring/decimal"
)

// MenuCache is the slice of the redis client the catalog needs. Satisfied by
// *redis.Client.
type MenuCache interface {
	GetMenu(dest interface{}) error
	SetMenu(menu interface{}, ttl time.Duration) error
	InvalidateMenu() error
}

// CatalogService manages the menu: categories and products. The full menu
// read goes through the redis cache; every mutation invalidates it.
type CatalogService interface {
	MenuByCategory() ([]models.Category, error)
	GetProduct(id uint) (*models.Product, error)
	CreateCategory(name string) (*models.Category, error)
	UpdateCategory(id uint, name string) (*models.Category, error)
	DeleteCategory(id uint) error
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        MenuCache
	cacheTTL     time.Duration
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	cache MenuCache,
	cacheTTL time.Duration,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// MenuByCategory returns every category with its products, cheapest path
// first through the cache. Cache trouble is logged and falls back to the
// database.
func (s *catalogService) MenuByCategory() ([]models.Category, error) {
	var cached []models.Category
	if err := s.cache.GetMenu(&cached); err == nil {
		return cached, nil
	}

	categories, err := s.categoryRepo.GetAllWithProducts()
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetMenu(categories, s.cacheTTL); err != nil {
		log.Printf("Warning: failed to cache menu: %v", err)
	}
	return categories, nil
}

func (s *catalogService) GetProduct(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *catalogService) CreateCategory(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}
	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	s.invalidateMenu()
	return category, nil
}

func (s *catalogService) UpdateCategory(id uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("category name is required")
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	s.invalidateMenu()
	return category, nil
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateMenu()
	return nil
}

func (s *catalogService) CreateProduct(product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
		return err
	}
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	s.invalidateMenu()
	return nil
}

func (s *catalogService) UpdateProduct(product *models.Product) error {
	if err := s.validateProduct(product); err != nil {
		return err
	}
	if _, err := s.productRepo.GetByID(product.ID); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(product.CategoryID); err != nil {
		return err
	}
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.invalidateMenu()
	return nil
}

func (s *catalogService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.GetByID(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateMenu()
	return nil
}

func (s *catalogService) validateProduct(product *models.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return apperrors.Validation("product name is required")
	}
	if product.Price.LessThanOrEqual(decimal.Zero) {
		return apperrors.Validation("product price must be positive")
	}
	return nil
}

func (s *catalogService) invalidateMenu() {
	if err := s.cache.InvalidateMenu(); err != nil {
		log.Printf("Warning: failed to invalidate menu cache: %v", err)
	}
}
