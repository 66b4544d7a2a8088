// Package loyalty credits and debits member point balances and keeps a
// ledger of every change. Point accrual is a best-effort side effect of a
// sale: a failure here must never fail the sale itself, so results are
// reported as a typed Outcome instead of an error.
package loyalty

import (
	"errors"
	"time"
)

// ErrNoMembership indicates the customer has no loyalty membership.
var ErrNoMembership = errors.New("customer has no loyalty membership")

// Member is a customer's loyalty membership.
type Member struct {
	ID         int64
	CustomerID int64
	Points     int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// LedgerEntry records one point credit or debit.
type LedgerEntry struct {
	ID                   int64
	MemberID             int64
	Points               int64
	Reason               string
	TransactionReference string
	OperatorID           int64
	CreatedAt            time.Time
}

// Outcome is the result of a best-effort loyalty operation.
type Outcome struct {
	Applied bool
	Points  int64
	Cause   error
}

// Accrued reports points successfully credited.
func Accrued(points int64) Outcome {
	return Outcome{Applied: true, Points: points}
}

// Skipped reports an accrual that was not applied and why.
func Skipped(cause error) Outcome {
	return Outcome{Cause: cause}
}
