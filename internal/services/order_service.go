package services

import (
	"errors"
	"strings"
	"time"

	"restaurant_orders/internal/apperrors"
	"restaurant_orders/internal/models"
	"restaurant_orders/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService is the order ledger: it owns the order and line state
// machines, the table occupancy side effects, and the sales posting on
// closure. Every mutation runs inside a transaction with the order (or
// table) row locked, so a failed step leaves no partial state behind.
type OrderService interface {
	OpenOrGet(tableID uint) (*models.Order, error)
	Get(orderID uint) (*models.Order, error)
	AddLine(orderID, productID uint, quantity int, note string) (*models.Order, error)
	RemoveOrDecrementLine(lineID uint) (*models.Order, error)
	Confirm(orderID uint) (*models.Order, error)
	Close(orderID uint) (*models.Receipt, error)
	Receipt(orderID uint) (*models.Receipt, error)
}

type orderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db}
}

// OpenOrGet returns the table's current non-delivered order, creating an
// open one when the table has none. The table row is locked so two waiters
// hitting the same table cannot create duplicate orders.
func (s *orderService) OpenOrGet(tableID uint) (*models.Order, error) {
	var out *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		tables := repository.NewTableRepository(tx)
		orders := repository.NewOrderRepository(tx)

		if _, err := tables.GetByIDForUpdate(tableID); err != nil {
			return err
		}

		order, err := orders.GetActiveByTable(tableID)
		if err == nil {
			order.RecomputeTotal()
			out = order
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		order = &models.Order{
			TableID: &tableID,
			Status:  models.OrderOpen,
			Total:   decimal.Zero,
		}
		if err := orders.Create(order); err != nil {
			return err
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *orderService) Get(orderID uint) (*models.Order, error) {
	order, err := repository.NewOrderRepository(s.db).GetByID(orderID)
	if err != nil {
		return nil, err
	}
	order.RecomputeTotal()
	return order, nil
}

// AddLine appends a product to the order, merging into an existing pending
// line with the same product and note instead of duplicating it. Adding to a
// confirmed order reopens it for another confirmation round; already
// confirmed lines keep their kitchen state.
func (s *orderService) AddLine(orderID, productID uint, quantity int, note string) (*models.Order, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("quantity must be at least 1")
	}
	note = strings.TrimSpace(note)
	if note == "" {
		note = models.DefaultLineNote
	}

	var out *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := repository.NewOrderRepository(tx)
		lines := repository.NewOrderLineRepository(tx)
		products := repository.NewProductRepository(tx)

		order, err := orders.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.Delivered() {
			return apperrors.InvalidState("order already delivered")
		}
		if _, err := products.GetByID(productID); err != nil {
			return err
		}

		line, err := lines.FindPendingMatch(orderID, productID, note)
		if err != nil {
			return err
		}
		if line != nil {
			line.Quantity += quantity
			if err := lines.Update(line); err != nil {
				return err
			}
		} else {
			line = &models.OrderLine{
				OrderID:   orderID,
				ProductID: productID,
				Quantity:  quantity,
				Note:      note,
				Status:    models.LinePending,
			}
			if err := lines.Create(line); err != nil {
				return err
			}
		}

		if order.Status == models.OrderConfirmed || order.Status == models.OrderAttended {
			if err := order.Reopen(); err != nil {
				return err
			}
		}

		return s.refreshTotal(tx, order, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveOrDecrementLine takes one unit off a still-pending line, deleting it
// when the quantity reaches zero. Confirmed lines are already with the
// kitchen and cannot be touched.
func (s *orderService) RemoveOrDecrementLine(lineID uint) (*models.Order, error) {
	var out *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := repository.NewOrderRepository(tx)
		lines := repository.NewOrderLineRepository(tx)

		line, err := lines.GetByID(lineID)
		if err != nil {
			return err
		}
		order, err := orders.GetByIDForUpdate(line.OrderID)
		if err != nil {
			return err
		}
		// Re-read under the order lock.
		line, err = lines.GetByID(lineID)
		if err != nil {
			return err
		}
		if line.Status != models.LinePending {
			return apperrors.InvalidState("line already sent to kitchen")
		}

		if line.Quantity > 1 {
			line.Quantity--
			if err := lines.Update(line); err != nil {
				return err
			}
		} else {
			if err := lines.Delete(line.ID); err != nil {
				return err
			}
		}

		return s.refreshTotal(tx, order, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Confirm commits every pending line to the kitchen, freezes the total and
// marks the table occupied.
func (s *orderService) Confirm(orderID uint) (*models.Order, error) {
	var out *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := repository.NewOrderRepository(tx)
		lines := repository.NewOrderLineRepository(tx)
		tables := repository.NewTableRepository(tx)

		order, err := orders.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.Delivered() {
			return apperrors.InvalidState("order already delivered")
		}
		if order.Status != models.OrderOpen {
			return apperrors.InvalidState("order already confirmed")
		}
		if len(order.Lines) == 0 {
			return apperrors.InvalidState("cannot confirm an empty order")
		}

		for i := range order.Lines {
			l := &order.Lines[i]
			if l.Status != models.LinePending {
				continue
			}
			if err := l.Advance(models.LineConfirmed); err != nil {
				return err
			}
			if err := lines.Update(l); err != nil {
				return err
			}
		}

		if err := order.Advance(models.OrderConfirmed); err != nil {
			return err
		}
		order.RecomputeTotal()
		if err := orders.Save(order); err != nil {
			return err
		}

		if order.TableID != nil {
			if err := tables.SetOccupied(*order.TableID, true); err != nil {
				return err
			}
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close delivers a fully fulfilled order: recomputes the authoritative
// total, frees the table and posts the amount into the daily sales ledger,
// all in one transaction.
func (s *orderService) Close(orderID uint) (*models.Receipt, error) {
	var receipt *models.Receipt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := repository.NewOrderRepository(tx)
		lines := repository.NewOrderLineRepository(tx)
		tables := repository.NewTableRepository(tx)
		sales := repository.NewSalesRepository(tx)

		order, err := orders.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order.Delivered() {
			return apperrors.InvalidState("order already delivered")
		}
		if order.Status == models.OrderOpen {
			return apperrors.InvalidState("order not confirmed")
		}

		unfulfilled, err := lines.UnfulfilledCount(orderID)
		if err != nil {
			return err
		}
		if unfulfilled > 0 {
			return apperrors.InvalidState("order not ready for closure")
		}

		order.RecomputeTotal()
		if order.Status == models.OrderConfirmed {
			if err := order.Advance(models.OrderAttended); err != nil {
				return err
			}
		}
		if err := order.Advance(models.OrderDelivered); err != nil {
			return err
		}
		if err := orders.Save(order); err != nil {
			return err
		}

		if order.TableID != nil {
			if err := tables.SetOccupied(*order.TableID, false); err != nil {
				return err
			}
		}

		closedAt := time.Now()
		if err := sales.UpsertDaily(closedAt, order.Total); err != nil {
			return err
		}
		receipt = models.BuildReceipt(order, closedAt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// Receipt re-renders the ticket of an already delivered order.
func (s *orderService) Receipt(orderID uint) (*models.Receipt, error) {
	order, err := repository.NewOrderRepository(s.db).GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !order.Delivered() {
		return nil, apperrors.InvalidState("order not closed yet")
	}
	order.RecomputeTotal()
	return models.BuildReceipt(order, order.UpdatedAt), nil
}

// refreshTotal reloads the order's lines, recomputes the cached total and
// persists the order, leaving *out with a fully loaded view.
func (s *orderService) refreshTotal(tx *gorm.DB, order *models.Order, out **models.Order) error {
	lines, err := repository.NewOrderLineRepository(tx).GetByOrderID(order.ID)
	if err != nil {
		return err
	}
	order.Lines = lines
	order.RecomputeTotal()
	if err := repository.NewOrderRepository(tx).Save(order); err != nil {
		return err
	}
	*out = order
	return nil
}
