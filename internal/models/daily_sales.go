package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySales accumulates the totals of all orders closed on one calendar
// date. Rows are created lazily on the first closure of the day and only
// ever incremented.
type DailySales struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Date      time.Time       `json:"date" gorm:"uniqueIndex;not null"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DateOf truncates t to its calendar date in UTC, the grain of the sales
// ledger.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
