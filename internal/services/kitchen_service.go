package services

import (
	"time"

	"restaurant_orders/internal/models"
	"restaurant_orders/internal/repository"

	"gorm.io/gorm"
)

// KitchenService is a read/transition facade over the order ledger limited
// to confirmed, undelivered orders. Lookups that fall outside that scope
// come back NotFound rather than InvalidState: the object simply does not
// exist as far as the kitchen is concerned.
type KitchenService interface {
	ListPending() ([]models.Order, error)
	Snapshot() (*KitchenSnapshot, error)
	MarkOrderAttended(orderID uint) error
	MarkLineAttended(lineID uint) error
	FulfillLine(lineID uint) error
}

// KitchenSnapshot is the machine-readable payload the kitchen screen polls
// for its periodic refresh.
type KitchenSnapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Orders      []KitchenOrder `json:"orders"`
}

type KitchenOrder struct {
	OrderID  uint               `json:"order_id"`
	Table    string             `json:"table,omitempty"`
	Status   models.OrderStatus `json:"status"`
	PlacedAt time.Time          `json:"placed_at"`
	Lines    []KitchenLine      `json:"lines"`
}

type KitchenLine struct {
	LineID   uint              `json:"line_id"`
	Product  string            `json:"product"`
	Quantity int               `json:"quantity"`
	Note     string            `json:"note"`
	Status   models.LineStatus `json:"status"`
}

type kitchenService struct {
	db *gorm.DB
}

func NewKitchenService(db *gorm.DB) KitchenService {
	return &kitchenService{db: db}
}

// ListPending returns confirmed, undelivered orders oldest first, first in
// first served.
func (s *kitchenService) ListPending() ([]models.Order, error) {
	orders, err := repository.NewOrderRepository(s.db).ListKitchen()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].RecomputeTotal()
	}
	return orders, nil
}

func (s *kitchenService) Snapshot() (*KitchenSnapshot, error) {
	orders, err := s.ListPending()
	if err != nil {
		return nil, err
	}
	snap := &KitchenSnapshot{GeneratedAt: time.Now(), Orders: []KitchenOrder{}}
	for i := range orders {
		o := &orders[i]
		ko := KitchenOrder{
			OrderID:  o.ID,
			Status:   o.Status,
			PlacedAt: o.CreatedAt,
		}
		if o.Table != nil {
			ko.Table = o.Table.Name
		}
		for j := range o.Lines {
			l := &o.Lines[j]
			ko.Lines = append(ko.Lines, KitchenLine{
				LineID:   l.ID,
				Product:  l.Product.Name,
				Quantity: l.Quantity,
				Note:     l.Note,
				Status:   l.Status,
			})
		}
		snap.Orders = append(snap.Orders, ko)
	}
	return snap, nil
}

// MarkOrderAttended records that the kitchen has begun work on the whole
// order.
func (s *kitchenService) MarkOrderAttended(orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		orders := repository.NewOrderRepository(tx)

		order, err := orders.GetKitchenOrder(orderID)
		if err != nil {
			return err
		}
		if err := order.Advance(models.OrderAttended); err != nil {
			return err
		}
		return orders.Save(order)
	})
}

// MarkLineAttended advances one line to attended. The first attended line
// also moves a still-confirmed order to attended.
func (s *kitchenService) MarkLineAttended(lineID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		orders := repository.NewOrderRepository(tx)
		lines := repository.NewOrderLineRepository(tx)

		line, err := lines.GetByID(lineID)
		if err != nil {
			return err
		}
		order, err := orders.GetKitchenOrder(line.OrderID)
		if err != nil {
			return err
		}
		if err := line.Advance(models.LineAttended); err != nil {
			return err
		}
		if err := lines.Update(line); err != nil {
			return err
		}
		if order.Status == models.OrderConfirmed {
			if err := order.Advance(models.OrderAttended); err != nil {
				return err
			}
			return orders.Save(order)
		}
		return nil
	})
}

// FulfillLine records that the kitchen has plated and handed off one line.
func (s *kitchenService) FulfillLine(lineID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		orders := repository.NewOrderRepository(tx)
		lines := repository.NewOrderLineRepository(tx)

		line, err := lines.GetByID(lineID)
		if err != nil {
			return err
		}
		if _, err := orders.GetKitchenOrder(line.OrderID); err != nil {
			return err
		}
		if err := line.Advance(models.LineFulfilled); err != nil {
			return err
		}
		return lines.Update(line)
	})
}
