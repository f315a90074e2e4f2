package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the order lifecycle: open -> confirmed -> attended ->
// delivered. Delivered is terminal. A confirmed or attended order drops back
// to open when the diner adds another line after the first confirmation
// round.
type OrderStatus string

const (
	OrderOpen      OrderStatus = "open"
	OrderConfirmed OrderStatus = "confirmed"
	OrderAttended  OrderStatus = "attended"
	OrderDelivered OrderStatus = "delivered"
)

var orderTransitions = map[OrderStatus]OrderStatus{
	OrderOpen:      OrderConfirmed,
	OrderConfirmed: OrderAttended,
	OrderAttended:  OrderDelivered,
}

type Order struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	TableID   *uint           `json:"table_id" gorm:"index"`
	Table     *Table          `json:"table,omitempty"`
	Status    OrderStatus     `json:"status" gorm:"type:varchar(16);not null;default:'open'"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null;default:0"`
	Lines     []OrderLine     `json:"lines" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Advance is the single mutation point for Status. Any step not in the
// transition table is rejected.
func (o *Order) Advance(next OrderStatus) error {
	if orderTransitions[o.Status] != next {
		return invalidTransition("order", string(o.Status), string(next))
	}
	o.Status = next
	return nil
}

// Reopen drops a confirmed or attended order back to open so the new lines
// can go through another confirmation round. Illegal once delivered.
func (o *Order) Reopen() error {
	if o.Status != OrderConfirmed && o.Status != OrderAttended {
		return invalidTransition("order", string(o.Status), string(OrderOpen))
	}
	o.Status = OrderOpen
	return nil
}

func (o *Order) Delivered() bool {
	return o.Status == OrderDelivered
}

// RecomputeTotal recalculates Total from the loaded lines. Callers must have
// preloaded Lines.Product; the total is a derived field and is never trusted
// as input.
func (o *Order) RecomputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].Subtotal())
	}
	o.Total = total
	return total
}
