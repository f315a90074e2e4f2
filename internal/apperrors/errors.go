package apperrors

import (
	"errors"
	"fmt"
)

// The three failure classes every service operation can return. Handlers map
// them to HTTP statuses; nothing below the handler layer knows about HTTP.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)

func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

func NotFoundMsg(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrNotFound)
}

func InvalidState(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidState)
}

func Validation(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}
