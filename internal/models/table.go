package models

import (
	"time"
)

// Table is a physical dining table. The occupied flag is owned by the order
// ledger: it flips on order confirmation and closure, never by table CRUD.
type Table struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"unique;not null"`
	Occupied  bool      `json:"occupied" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
