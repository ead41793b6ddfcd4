package order

import "errors"

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrStatusConcurrentlyMoved = errors.New("order status changed concurrently")
)
