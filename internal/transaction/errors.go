package transaction

import (
	"errors"
	"fmt"

	"github.com/chainsynchq/chainsync/internal/money"
)

var (
	// ErrNotFound is matched by every not-found error in this package.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateReference is returned by the store when a generated
	// transaction reference collides with an existing one.
	ErrDuplicateReference = errors.New("duplicate transaction reference")
)

// NotFoundError reports a missing referenced entity by name so callers know
// exactly which precondition failed.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ProductsNotFoundError lists every referenced product id that does not
// exist. The whole operation is rejected, never partially applied.
type ProductsNotFoundError struct {
	IDs []int64
}

func (e *ProductsNotFoundError) Error() string {
	return fmt.Sprintf("products not found: %v", e.IDs)
}

func (e *ProductsNotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidStatusError reports an illegal status transition.
type InvalidStatusError struct {
	From Status
	To   Status
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid transaction status transition %s -> %s", e.From, e.To)
}

// InvalidPaymentAmountError reports payment legs that do not sum to the
// transaction total within tolerance.
type InvalidPaymentAmountError struct {
	Total money.Amount
	Paid  money.Amount
}

func (e *InvalidPaymentAmountError) Error() string {
	return fmt.Sprintf("payments sum to %s but transaction total is %s", e.Paid, e.Total)
}

// InvalidRefundAmountError reports a negative refund or a reversal that
// would exceed a line's remaining reversible quantity.
type InvalidRefundAmountError struct {
	Reason string
}

func (e *InvalidRefundAmountError) Error() string {
	return "invalid refund: " + e.Reason
}

// ValidationError reports a field-level input violation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
