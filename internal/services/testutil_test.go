package services

import (
	"fmt"
	"strings"
	"testing"

	"restaurant_orders/internal/database"
	"restaurant_orders/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database migrated to the
// current schema. cache=shared keeps the database alive across the pool's
// connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type fixture struct {
	table  *models.Table
	burger *models.Product
	tacos  *models.Product
}

// seedFixture creates one table and a two-product menu.
func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	category := &models.Category{Name: "Mains"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	burger := &models.Product{
		CategoryID: category.ID,
		Name:       "Burger",
		Price:      decimal.NewFromFloat(8.50),
	}
	tacos := &models.Product{
		CategoryID: category.ID,
		Name:       "Tacos",
		Price:      decimal.NewFromFloat(7.25),
	}
	if err := db.Create(burger).Error; err != nil {
		t.Fatalf("seed burger: %v", err)
	}
	if err := db.Create(tacos).Error; err != nil {
		t.Fatalf("seed tacos: %v", err)
	}
	table := &models.Table{Name: "Table 1"}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}
	return &fixture{table: table, burger: burger, tacos: tacos}
}

func seedTable(t *testing.T, db *gorm.DB, name string) *models.Table {
	t.Helper()
	table := &models.Table{Name: name}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("seed table %s: %v", name, err)
	}
	return table
}

func reloadTable(t *testing.T, db *gorm.DB, id uint) *models.Table {
	t.Helper()
	var table models.Table
	if err := db.First(&table, id).Error; err != nil {
		t.Fatalf("reload table %d: %v", id, err)
	}
	return &table
}

// confirmedOrder walks an order through open + one burger + confirm.
func confirmedOrder(t *testing.T, svc OrderService, fx *fixture, quantity int) *models.Order {
	t.Helper()
	order, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("open order: %v", err)
	}
	if _, err := svc.AddLine(order.ID, fx.burger.ID, quantity, ""); err != nil {
		t.Fatalf("add line: %v", err)
	}
	order, err = svc.Confirm(order.ID)
	if err != nil {
		t.Fatalf("confirm order: %v", err)
	}
	return order
}

// fulfillAll drives every line of the order through attend + fulfill.
func fulfillAll(t *testing.T, kitchen KitchenService, svc OrderService, orderID uint) {
	t.Helper()
	order, err := svc.Get(orderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	for _, line := range order.Lines {
		if err := kitchen.MarkLineAttended(line.ID); err != nil {
			t.Fatalf("attend line %d: %v", line.ID, err)
		}
		if err := kitchen.FulfillLine(line.ID); err != nil {
			t.Fatalf("fulfill line %d: %v", line.ID, err)
		}
	}
}
