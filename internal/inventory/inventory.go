// Package inventory adjusts per-store on-hand stock and records a
// stock-movement audit row for every adjustment.
package inventory

import (
	"errors"
	"fmt"
	"time"
)

// ErrInsufficientStock is matched by every failed decrement in this package.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError reports a decrement that would take stock negative.
type InsufficientStockError struct {
	StoreID   int64
	ProductID int64
	Requested int
	OnHand    int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d at store %d: requested %d, on hand %d",
		e.ProductID, e.StoreID, e.Requested, e.OnHand)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// StockLevel is the current on-hand quantity of a product at a store.
type StockLevel struct {
	StoreID   int64
	ProductID int64
	Quantity  int
	UpdatedAt time.Time
}

// Movement is the audit record written alongside every stock adjustment.
type Movement struct {
	ID              int64
	StoreID         int64
	ProductID       int64
	Delta           int
	Reason          string
	TransactionType string
	OperatorID      int64
	Reference       string
	CreatedAt       time.Time
}

// AdjustParams describes one signed stock adjustment.
type AdjustParams struct {
	StoreID         int64
	ProductID       int64
	Delta           int
	Reason          string
	TransactionType string
	OperatorID      int64
	Reference       string
}
