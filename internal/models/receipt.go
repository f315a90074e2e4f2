package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the printable ticket emitted when an order is closed.
type Receipt struct {
	OrderID  uint            `json:"order_id"`
	Table    string          `json:"table,omitempty"`
	Lines    []ReceiptLine   `json:"lines"`
	Total    decimal.Decimal `json:"total"`
	ClosedAt time.Time       `json:"closed_at"`
}

type ReceiptLine struct {
	Product   string          `json:"product"`
	Quantity  int             `json:"quantity"`
	Note      string          `json:"note"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// BuildReceipt assumes Lines.Product (and Table, when assigned) are loaded.
func BuildReceipt(o *Order, closedAt time.Time) *Receipt {
	r := &Receipt{
		OrderID:  o.ID,
		Total:    o.Total,
		ClosedAt: closedAt,
	}
	if o.Table != nil {
		r.Table = o.Table.Name
	}
	for i := range o.Lines {
		l := &o.Lines[i]
		r.Lines = append(r.Lines, ReceiptLine{
			Product:   l.Product.Name,
			Quantity:  l.Quantity,
			Note:      l.Note,
			UnitPrice: l.Product.Price,
			Subtotal:  l.Subtotal(),
		})
	}
	return r
}
