package services

import (
	"errors"
	"testing"
	"time"

	"restaurant_orders/internal/apperrors"
	"restaurant_orders/internal/models"
	"restaurant_orders/internal/repository"

	"github.com/shopspring/decimal"
)

func TestOpenOrGet(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)

	order, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("OpenOrGet returned error: %v", err)
	}
	if order.Status != models.OrderOpen {
		t.Errorf("new order status = %s, want %s", order.Status, models.OrderOpen)
	}
	if !order.Total.IsZero() {
		t.Errorf("new order total = %s, want 0", order.Total)
	}

	again, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("second OpenOrGet returned error: %v", err)
	}
	if again.ID != order.ID {
		t.Errorf("OpenOrGet created a second order: got %d, want %d", again.ID, order.ID)
	}

	if _, err := svc.OpenOrGet(9999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("OpenOrGet for unknown table: err = %v, want NotFound", err)
	}
}

func TestAddLineMergesPendingLines(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)

	order, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("OpenOrGet returned error: %v", err)
	}

	if _, err := svc.AddLine(order.ID, fx.burger.ID, 1, ""); err != nil {
		t.Fatalf("first AddLine returned error: %v", err)
	}
	order, err = svc.AddLine(order.ID, fx.burger.ID, 1, "")
	if err != nil {
		t.Fatalf("second AddLine returned error: %v", err)
	}

	if len(order.Lines) != 1 {
		t.Fatalf("got %d lines, want 1 merged line", len(order.Lines))
	}
	if order.Lines[0].Quantity != 2 {
		t.Errorf("merged quantity = %d, want 2", order.Lines[0].Quantity)
	}
	if order.Lines[0].Note != models.DefaultLineNote {
		t.Errorf("note = %q, want default %q", order.Lines[0].Note, models.DefaultLineNote)
	}

	// A different customization note must not merge.
	order, err = svc.AddLine(order.ID, fx.burger.ID, 1, "no onions")
	if err != nil {
		t.Fatalf("AddLine with note returned error: %v", err)
	}
	if len(order.Lines) != 2 {
		t.Errorf("got %d lines, want 2 after distinct note", len(order.Lines))
	}
}

func TestAddLineValidation(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)

	order, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("OpenOrGet returned error: %v", err)
	}

	if _, err := svc.AddLine(order.ID, fx.burger.ID, 0, ""); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("AddLine qty=0: err = %v, want Validation", err)
	}
	if _, err := svc.AddLine(order.ID, 9999, 1, ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("AddLine unknown product: err = %v, want NotFound", err)
	}
}

func TestAddLineReopensConfirmedOrder(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)

	order := confirmedOrder(t, svc, fx, 1)
	if order.Status != models.OrderConfirmed {
		t.Fatalf("order status = %s, want confirmed", order.Status)
	}

	order, err := svc.AddLine(order.ID, fx.tacos.ID, 1, "")
	if err != nil {
		t.Fatalf("AddLine after confirm returned error: %v", err)
	}
	if order.Status != models.OrderOpen {
		t.Errorf("order status after late add = %s, want open", order.Status)
	}

	statuses := map[models.LineStatus]int{}
	for _, line := range order.Lines {
		statuses[line.Status]++
	}
	if statuses[models.LineConfirmed] != 1 || statuses[models.LinePending] != 1 {
		t.Errorf("line statuses = %v, want one confirmed and one pending", statuses)
	}
}

func TestAddLineRejectedWhenDelivered(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)
	kitchen := NewKitchenService(db)

	order := confirmedOrder(t, svc, fx, 1)
	fulfillAll(t, kitchen, svc, order.ID)
	if _, err := svc.Close(order.ID); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if _, err := svc.AddLine(order.ID, fx.tacos.ID, 1, ""); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("AddLine on delivered order: err = %v, want InvalidState", err)
	}
}

func TestRemoveOrDecrementLine(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)

	order, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("OpenOrGet returned error: %v", err)
	}
	order, err = svc.AddLine(order.ID, fx.burger.ID, 2, "")
	if err != nil {
		t.Fatalf("AddLine returned error: %v", err)
	}
	lineID := order.Lines[0].ID

	order, err = svc.RemoveOrDecrementLine(lineID)
	if err != nil {
		t.Fatalf("first decrement returned error: %v", err)
	}
	if order.Lines[0].Quantity != 1 {
		t.Errorf("quantity after decrement = %d, want 1", order.Lines[0].Quantity)
	}
	if !order.Total.Equal(decimal.NewFromFloat(8.50)) {
		t.Errorf("total after decrement = %s, want 8.50", order.Total)
	}

	order, err = svc.RemoveOrDecrementLine(lineID)
	if err != nil {
		t.Fatalf("second decrement returned error: %v", err)
	}
	if len(order.Lines) != 0 {
		t.Errorf("got %d lines, want line deleted at zero", len(order.Lines))
	}
	if !order.Total.IsZero() {
		t.Errorf("total after delete = %s, want 0", order.Total)
	}
}

func TestRemoveConfirmedLineRejected(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)

	order := confirmedOrder(t, svc, fx, 2)
	lineID := order.Lines[0].ID

	if _, err := svc.RemoveOrDecrementLine(lineID); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("decrement confirmed line: err = %v, want InvalidState", err)
	}

	order, err := svc.Get(order.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if order.Lines[0].Quantity != 2 {
		t.Errorf("quantity changed to %d after rejected decrement, want 2", order.Lines[0].Quantity)
	}
}

func TestConfirm(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)

	order, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("OpenOrGet returned error: %v", err)
	}

	if _, err := svc.Confirm(order.ID); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("Confirm empty order: err = %v, want InvalidState", err)
	}

	if _, err := svc.AddLine(order.ID, fx.burger.ID, 1, ""); err != nil {
		t.Fatalf("AddLine returned error: %v", err)
	}
	order, err = svc.Confirm(order.ID)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if order.Status != models.OrderConfirmed {
		t.Errorf("order status = %s, want confirmed", order.Status)
	}
	for _, line := range order.Lines {
		if line.Status != models.LineConfirmed {
			t.Errorf("line status = %s, want confirmed", line.Status)
		}
	}
	if !reloadTable(t, db, fx.table.ID).Occupied {
		t.Error("table not occupied after confirm")
	}

	if _, err := svc.Confirm(order.ID); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("double Confirm: err = %v, want InvalidState", err)
	}
}

func TestCloseRequiresFulfilledLines(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)
	kitchen := NewKitchenService(db)

	order := confirmedOrder(t, svc, fx, 1)

	if _, err := svc.Close(order.ID); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("Close with unfulfilled lines: err = %v, want InvalidState", err)
	}
	reloaded, err := svc.Get(order.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if reloaded.Status != models.OrderConfirmed {
		t.Errorf("order status changed to %s after rejected close, want confirmed", reloaded.Status)
	}

	fulfillAll(t, kitchen, svc, order.ID)
	receipt, err := svc.Close(order.ID)
	if err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if !receipt.Total.Equal(decimal.NewFromFloat(8.50)) {
		t.Errorf("receipt total = %s, want 8.50", receipt.Total)
	}

	if _, err := svc.Close(order.ID); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Errorf("double Close: err = %v, want InvalidState", err)
	}
}

// The full diner round trip from the table picker to the sales ledger.
func TestOrderLifecycle(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)
	kitchen := NewKitchenService(db)
	sales := NewSalesService(repository.NewSalesRepository(db))

	order, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("OpenOrGet returned error: %v", err)
	}
	if !order.Total.IsZero() {
		t.Errorf("fresh order total = %s, want 0", order.Total)
	}

	order, err = svc.AddLine(order.ID, fx.burger.ID, 1, "")
	if err != nil {
		t.Fatalf("AddLine returned error: %v", err)
	}
	if !order.Total.Equal(decimal.NewFromFloat(8.50)) {
		t.Errorf("total after add = %s, want 8.50", order.Total)
	}

	if _, err := svc.Confirm(order.ID); err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if !reloadTable(t, db, fx.table.ID).Occupied {
		t.Error("table not occupied after confirm")
	}

	fulfillAll(t, kitchen, svc, order.ID)

	receipt, err := svc.Close(order.ID)
	if err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if !receipt.Total.Equal(decimal.NewFromFloat(8.50)) {
		t.Errorf("receipt total = %s, want 8.50", receipt.Total)
	}
	if receipt.Table != fx.table.Name {
		t.Errorf("receipt table = %q, want %q", receipt.Table, fx.table.Name)
	}

	if reloadTable(t, db, fx.table.ID).Occupied {
		t.Error("table still occupied after close")
	}

	today, err := sales.Today()
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if !today.Total.Equal(decimal.NewFromFloat(8.50)) {
		t.Errorf("daily sales total = %s, want 8.50", today.Total)
	}

	// A closed table gets a brand new order next time.
	fresh, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("OpenOrGet after close returned error: %v", err)
	}
	if fresh.ID == order.ID {
		t.Error("OpenOrGet reused a delivered order")
	}
}

func TestSameDayClosuresAccumulate(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)
	kitchen := NewKitchenService(db)
	table2 := seedTable(t, db, "Table 2")

	// Two orders with custom-priced products so the totals are 50.00 and
	// 75.25.
	cheap := &models.Product{CategoryID: fx.burger.CategoryID, Name: "Set menu", Price: decimal.NewFromFloat(50.00)}
	dear := &models.Product{CategoryID: fx.burger.CategoryID, Name: "Tasting menu", Price: decimal.NewFromFloat(75.25)}
	if err := db.Create(cheap).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := db.Create(dear).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	closeOrder := func(tableID, productID uint) {
		t.Helper()
		order, err := svc.OpenOrGet(tableID)
		if err != nil {
			t.Fatalf("OpenOrGet returned error: %v", err)
		}
		if _, err := svc.AddLine(order.ID, productID, 1, ""); err != nil {
			t.Fatalf("AddLine returned error: %v", err)
		}
		if _, err := svc.Confirm(order.ID); err != nil {
			t.Fatalf("Confirm returned error: %v", err)
		}
		fulfillAll(t, kitchen, svc, order.ID)
		if _, err := svc.Close(order.ID); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}
	}

	closeOrder(fx.table.ID, cheap.ID)
	closeOrder(table2.ID, dear.ID)

	var row models.DailySales
	if err := db.Where("date = ?", models.DateOf(time.Now())).First(&row).Error; err != nil {
		t.Fatalf("load daily sales: %v", err)
	}
	if !row.Total.Equal(decimal.NewFromFloat(125.25)) {
		t.Errorf("daily total = %s, want 125.25", row.Total)
	}
}

func TestTotalAlwaysMatchesLines(t *testing.T) {
	db := newTestDB(t)
	fx := seedFixture(t, db)
	svc := NewOrderService(db)

	order, err := svc.OpenOrGet(fx.table.ID)
	if err != nil {
		t.Fatalf("OpenOrGet returned error: %v", err)
	}
	order, err = svc.AddLine(order.ID, fx.burger.ID, 2, "")
	if err != nil {
		t.Fatalf("AddLine returned error: %v", err)
	}
	order, err = svc.AddLine(order.ID, fx.tacos.ID, 3, "extra salsa")
	if err != nil {
		t.Fatalf("AddLine returned error: %v", err)
	}

	want := decimal.NewFromFloat(8.50).Mul(decimal.NewFromInt(2)).
		Add(decimal.NewFromFloat(7.25).Mul(decimal.NewFromInt(3)))
	if !order.Total.Equal(want) {
		t.Errorf("total = %s, want %s", order.Total, want)
	}

	var tacosLine *models.OrderLine
	for i := range order.Lines {
		if order.Lines[i].ProductID == fx.tacos.ID {
			tacosLine = &order.Lines[i]
		}
	}
	if tacosLine == nil {
		t.Fatal("tacos line not found")
	}
	order, err = svc.RemoveOrDecrementLine(tacosLine.ID)
	if err != nil {
		t.Fatalf("RemoveOrDecrementLine returned error: %v", err)
	}
	want = want.Sub(decimal.NewFromFloat(7.25))
	if !order.Total.Equal(want) {
		t.Errorf("total after decrement = %s, want %s", order.Total, want)
	}

	// The stored total and a fresh read agree.
	reloaded, err := svc.Get(order.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !reloaded.Total.Equal(want) {
		t.Errorf("reloaded total = %s, want %s", reloaded.Total, want)
	}
}
