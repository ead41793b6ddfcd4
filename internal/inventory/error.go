package inventory

import (
	"errors"
	"fmt"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// StockError names the product whose stock could not cover the requested
// quantity. It unwraps to ErrInsufficientStock so callers can match the kind
// without caring which product failed.
type StockError struct {
	ProductID   int64
	ProductName string
	Requested   int
}

func (e *StockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("insufficient stock for product: %s", e.ProductName)
	}
	return fmt.Sprintf("insufficient stock for product id %d", e.ProductID)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}
