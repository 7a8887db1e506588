package cart

import "errors"

var (
	ErrInvalidVariant = errors.New("size or color not offered for product")
	ErrMissingSession = errors.New("session id is required")
)
