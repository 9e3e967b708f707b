// internal/services/errors.go
package services

import "errors"

// Validation errors: rejected before any store call, no side effect.
var (
	ErrMissingActor = errors.New("actor name is required")
	ErrInvalidInput = errors.New("name, category and a positive quantity are required")
)

// Domain errors: the transaction aborts (or is never opened) and the
// stored state is left untouched.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrCategoryExists    = errors.New("category already exists")
)
