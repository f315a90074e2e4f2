package migrations

import (
	"errors"
	"log"

	"restaurant_orders/internal/apperrors"
	"restaurant_orders/internal/database"
	"restaurant_orders/internal/models"
	"restaurant_orders/internal/repository"
	"restaurant_orders/internal/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds the default data a fresh
// install needs: the admin account, a starter menu and a handful of tables.
func RunMigrations(db *gorm.DB, authService services.AuthService, adminUsername, adminPassword string) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := seedAdmin(db, authService, adminUsername, adminPassword); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}
	if err := seedCatalog(db); err != nil {
		log.Printf("Warning: Failed to seed catalog: %v", err)
	}
	if err := seedTables(db); err != nil {
		log.Printf("Warning: Failed to seed tables: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func seedAdmin(db *gorm.DB, authService services.AuthService, username, password string) error {
	userRepo := repository.NewUserRepository(db)
	if _, err := userRepo.GetByUsername(username); err == nil {
		log.Println("Admin user already exists")
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if _, err := authService.CreateUser(username, password, models.AdminRole); err != nil {
		return err
	}
	log.Printf("Admin user %q created", username)
	return nil
}

func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding starter menu...")
	categories := []models.Category{
		{
			Name: "Mains",
			Products: []models.Product{
				{Name: "Burger", Description: "House burger with fries", Price: decimal.NewFromFloat(8.50)},
				{Name: "Tacos", Description: "Three tacos, choice of filling", Price: decimal.NewFromFloat(7.25)},
			},
		},
		{
			Name: "Drinks",
			Products: []models.Product{
				{Name: "Lemonade", Description: "Fresh squeezed", Price: decimal.NewFromFloat(2.75)},
				{Name: "Coffee", Description: "", Price: decimal.NewFromFloat(2.00)},
			},
		},
	}
	return db.Create(&categories).Error
}

func seedTables(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Table{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding tables...")
	tables := []models.Table{
		{Name: "Table 1"}, {Name: "Table 2"}, {Name: "Table 3"}, {Name: "Table 4"},
	}
	return db.Create(&tables).Error
}
