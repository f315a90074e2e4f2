package repository

import (
	"errors"
	"fmt"

	"restaurant_orders/internal/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds row-level locking on dialects that support it. The
// sqlite dialect used by the test suites serializes writers on its own and
// rejects FOR UPDATE syntax.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// notFoundOr translates gorm's record-not-found into the service-level
// NotFound class, leaving other errors untouched.
func notFoundOr(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity, id)
	}
	return fmt.Errorf("get %s %d: %w", entity, id, err)
}
