package models

import (
	"fmt"
	"time"

	"restaurant_orders/internal/apperrors"

	"github.com/shopspring/decimal"
)

// DefaultLineNote is the customization note applied when the diner leaves the
// field empty.
const DefaultLineNote = "no restrictions"

// LineStatus is the kitchen lifecycle of a single line: pending ->
// confirmed -> attended -> fulfilled. Once confirmed a line is immutable in
// identity; only its status advances.
type LineStatus string

const (
	LinePending   LineStatus = "pending"
	LineConfirmed LineStatus = "confirmed"
	LineAttended  LineStatus = "attended"
	LineFulfilled LineStatus = "fulfilled"
)

var lineTransitions = map[LineStatus]LineStatus{
	LinePending:   LineConfirmed,
	LineConfirmed: LineAttended,
	LineAttended:  LineFulfilled,
}

type OrderLine struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	OrderID   uint       `json:"order_id" gorm:"not null;index"`
	ProductID uint       `json:"product_id" gorm:"not null"`
	Product   Product    `json:"product"`
	Quantity  int        `json:"quantity" gorm:"not null"`
	Note      string     `json:"note" gorm:"not null;default:'no restrictions'"`
	Status    LineStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Advance is the single mutation point for Status.
func (l *OrderLine) Advance(next LineStatus) error {
	if lineTransitions[l.Status] != next {
		return invalidTransition("line", string(l.Status), string(next))
	}
	l.Status = next
	return nil
}

// Subtotal requires Product to be preloaded.
func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func invalidTransition(entity, from, to string) error {
	return apperrors.InvalidState(fmt.Sprintf("%s cannot go from %s to %s", entity, from, to))
}
