package order

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrEmptyOrderItems    = errors.New("no items to checkout")
	ErrCheckoutValidation = errors.New("checkout validation failed")
)
