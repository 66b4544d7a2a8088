package transaction

import (
	"time"

	"github.com/chainsynchq/chainsync/internal/money"
)

// Type represents the kind of commercial event a transaction records.
type Type string

const (
	TypeSale       Type = "sale"
	TypeReturn     Type = "return"
	TypeRefund     Type = "refund"
	TypeExchange   Type = "exchange"
	TypePayment    Type = "payment"
	TypeDeposit    Type = "deposit"
	TypeWithdrawal Type = "withdrawal"
	TypeAdjustment Type = "adjustment"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	switch t {
	case TypeSale, TypeReturn, TypeRefund, TypeExchange,
		TypePayment, TypeDeposit, TypeWithdrawal, TypeAdjustment:
		return true
	}

	return false
}

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusPending           Status = "pending"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
	StatusRefunded          Status = "refunded"
	StatusPartiallyRefunded Status = "partially_refunded"
	StatusFailed            Status = "failed"
)

// allowedTransitions is the full status state machine. Statuses missing from
// the map are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:           {StatusCompleted, StatusCancelled, StatusFailed},
	StatusCompleted:         {StatusRefunded, StatusPartiallyRefunded},
	StatusPartiallyRefunded: {StatusRefunded},
}

// CanTransitionTo reports whether moving from s to next is a legal
// status transition.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if next == allowed {
			return true
		}
	}

	return false
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled,
		StatusRefunded, StatusPartiallyRefunded, StatusFailed:
		return true
	}

	return false
}

// Transaction represents one commercial event at a store. Transactions are
// never deleted; they only move through the status state machine.
type Transaction struct {
	ID            int64
	StoreID       int64
	CustomerID    *int64
	OperatorID    int64
	Type          Type
	Status        Status
	Subtotal      money.Amount
	Tax           money.Amount
	Discount      money.Amount
	Total         money.Amount
	PaymentMethod string
	Notes         string
	Reference     string
	Items         []*TransactionItem
	Payments      []*TransactionPayment
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// TransactionItem is one line of a transaction. Immutable once created;
// reversals go through return lines.
type TransactionItem struct {
	ID            int64
	TransactionID int64
	ProductID     int64
	Quantity      int
	UnitPrice     money.Amount
	Discount      money.Amount
	Subtotal      money.Amount
	Notes         string
}

// PaymentStatus is the settlement state of a single payment leg.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// TransactionPayment is one payment leg applied toward a transaction's
// total. A sale may be split across several legs (cash + card, etc.).
type TransactionPayment struct {
	ID                int64
	TransactionID     int64
	Amount            money.Amount
	Method            string
	ProviderReference string
	Status            PaymentStatus
}

// Return represents a reversal against a prior transaction.
type Return struct {
	ID            int64
	TransactionID int64
	StoreID       int64
	OperatorID    int64
	Amount        money.Amount
	Method        string
	Reason        string
	Notes         string
	Status        Status
	Items         []*ReturnItem
	CreatedAt     time.Time
}

// ReturnItem reverses part of an original transaction line.
type ReturnItem struct {
	ID                int64
	ReturnID          int64
	TransactionItemID int64
	ProductID         int64
	Quantity          int
	Amount            money.Amount
}
