package main

import (
	"log"
	"time"

	"restaurant_orders/internal/config"
	"restaurant_orders/internal/database"
	"restaurant_orders/internal/handlers"
	"restaurant_orders/internal/redis"
	"restaurant_orders/internal/repository"
	"restaurant_orders/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	tableRepo := repository.NewTableRepository(db)
	salesRepo := repository.NewSalesRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, redisClient, time.Duration(cfg.SessionTimeout)*time.Second)
	catalogService := services.NewCatalogService(categoryRepo, productRepo, redisClient, time.Duration(cfg.MenuCacheTTL)*time.Second)
	tableService := services.NewTableService(tableRepo)
	orderService := services.NewOrderService(db)
	kitchenService := services.NewKitchenService(db)
	salesService := services.NewSalesService(salesRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	tableHandler := handlers.NewTableHandler(tableService)
	orderHandler := handlers.NewOrderHandler(orderService)
	kitchenHandler := handlers.NewKitchenHandler(kitchenService, orderService)
	salesHandler := handlers.NewSalesHandler(salesService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// Table selection and diner-side ordering
		api.GET("/menu", catalogHandler.Menu)
		api.GET("/tables", tableHandler.List)
		api.POST("/tables", tableHandler.Create)
		api.DELETE("/tables/:table_id", tableHandler.Delete)
		api.GET("/tables/:table_id/order", orderHandler.GetOrCreate)
		api.POST("/tables/:table_id/order/lines", orderHandler.AddLine)
		api.DELETE("/orders/lines/:line_id", orderHandler.RemoveLine)
		api.POST("/orders/:order_id/confirm", orderHandler.Confirm)
		api.GET("/orders/:order_id/receipt", orderHandler.Receipt)

		// Kitchen screen
		api.GET("/kitchen/orders", kitchenHandler.List)
		api.GET("/kitchen/orders/poll", kitchenHandler.Poll)
		api.POST("/kitchen/orders/:order_id/attend", kitchenHandler.AttendOrder)
		api.POST("/kitchen/lines/:line_id/attend", kitchenHandler.AttendLine)
		api.POST("/kitchen/lines/:line_id/fulfill", kitchenHandler.FulfillLine)
		api.POST("/kitchen/orders/:order_id/close", kitchenHandler.Close)

		// Sales dashboard
		api.GET("/sales/today", salesHandler.Today)
		api.GET("/sales/rollup", salesHandler.Rollup)

		// Catalog administration (authenticated)
		admin := api.Group("")
		admin.Use(handlers.RequireAuth(authService))
		{
			admin.POST("/categories", catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
			admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
			admin.POST("/products", catalogHandler.CreateProduct)
			admin.PUT("/products/:id", catalogHandler.UpdateProduct)
			admin.DELETE("/products/:id", catalogHandler.DeleteProduct)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
