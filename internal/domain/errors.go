package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("invalid data")
	ErrConflict      = errors.New("concurrent modification")
	ErrAlreadyExists = errors.New("already exists")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrPayment       = errors.New("payment provider failure")
	ErrBadSignature  = errors.New("invalid payment event signature")
	ErrBadEvent      = errors.New("malformed payment event")
)

var (
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrCartNotFound     = fmt.Errorf("cart %w", ErrNotFound)
	ErrCartItemNotFound = fmt.Errorf("cart item %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)

	ErrCartItemNotDeleted = fmt.Errorf("could not delete the item: %w", ErrCartItemNotFound)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field level details and matches ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
