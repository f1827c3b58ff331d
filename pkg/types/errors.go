package types

import "errors"

// Domain errors for type validation
var (
	// Catalog errors
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidPrice    = errors.New("price must be a positive integer")
	ErrInvalidCategory = errors.New("category reference is required")

	// Order errors
	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrTotalMismatch        = errors.New("order total does not match item prices")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)
