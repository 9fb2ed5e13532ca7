package order

import "errors"

var (
	ErrEmptyCart            = errors.New("cart has no lines")
	ErrInvalidQuantity      = errors.New("line quantity must be positive")
	ErrInvalidPrice         = errors.New("line unit price must not be negative")
	ErrInvalidCurrency      = errors.New("invalid currency code")
	ErrInvalidName          = errors.New("invalid customer name")
	ErrInvalidEmail         = errors.New("invalid customer email")
	ErrInvalidPhone         = errors.New("invalid customer phone")
	ErrInvalidAddress       = errors.New("invalid shipping address")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingNetwork       = errors.New("mobile money network is required")

	ErrAmountMismatch   = errors.New("declared total does not match cart total")
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderNumberTaken = errors.New("order number already taken")
	ErrPaymentNotFound  = errors.New("payment not found")

	ErrStatusConflict    = errors.New("order status changed concurrently")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrInvalidStatus     = errors.New("unknown order status")
)
