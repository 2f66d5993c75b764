package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmptyOrder       = errors.New("order must contain at least one item")
)

// ProductNotFoundError reports a requested product that does not exist
// in the catalog.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InsufficientStockError reports a requested quantity exceeding the
// product's available stock at validation time.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// StockConflictError reports a conditional stock decrement that
// affected no rows: a concurrent transaction consumed the stock between
// validation and decrement. The whole order rolls back; the caller may
// retry.
type StockConflictError struct {
	ProductID int64
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock conflict for product %d", e.ProductID)
}
