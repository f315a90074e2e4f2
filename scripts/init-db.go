package main

import (
	"fmt"
	"log"
	"time"

	"restaurant_orders/internal/config"
	"restaurant_orders/internal/database"
	"restaurant_orders/internal/migrations"
	"restaurant_orders/internal/models"
	"restaurant_orders/internal/redis"
	"restaurant_orders/internal/repository"
	"restaurant_orders/internal/services"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Table{},
		&models.Order{},
		&models.OrderLine{},
		&models.DailySales{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Initialize Redis (sessions are required for the auth service)
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, redisClient, time.Duration(cfg.SessionTimeout)*time.Second)

	fmt.Println("Creating tables and seeding defaults...")
	if err := migrations.RunMigrations(db, authService, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Println("Database initialization completed successfully!")
}
