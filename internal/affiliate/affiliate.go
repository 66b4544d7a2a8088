// Package affiliate tracks referral-code ownership, click attribution,
// commission accrual and payout batching. Payout settlement is confirmed
// asynchronously by payment-provider webhooks.
package affiliate

import (
	"errors"
	"fmt"
	"time"

	"github.com/chainsynchq/chainsync/internal/money"
)

// ErrNotFound is returned when an account, referral or payout is missing.
var ErrNotFound = errors.New("not found")

// InsufficientBalanceError reports a payout request exceeding the accrued
// unpaid commission balance.
type InsufficientBalanceError struct {
	Available money.Amount
	Minimum   money.Amount
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: %s available, %s minimum payout", e.Available, e.Minimum)
}

// PayoutMethod selects the provider used to disburse commission.
type PayoutMethod string

const (
	PayoutPaystack    PayoutMethod = "paystack"
	PayoutFlutterwave PayoutMethod = "flutterwave"
)

// Account is one user's affiliate record: referral-code ownership,
// aggregate totals and bank payout details. Never deleted.
type Account struct {
	ID              int64
	UserID          int64
	Code            string
	ReferralCount   int
	TotalEarnings   money.Amount
	PendingEarnings money.Amount
	BankName        string
	AccountNumber   string
	AccountName     string
	BankCode        string
	PayoutMethod    PayoutMethod
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// ReferralStatus is the lifecycle state of a referral.
type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralActive    ReferralStatus = "active"
	ReferralCompleted ReferralStatus = "completed"
	ReferralCancelled ReferralStatus = "cancelled"
	ReferralExpired   ReferralStatus = "expired"
)

// Referral links a referring account to a newly signed-up user. Referrals
// expire twelve months after signup.
type Referral struct {
	ID             int64
	AccountID      int64
	ReferredUserID int64
	Status         ReferralStatus
	ExpiresAt      time.Time
	ActivatedAt    *time.Time
	CreatedAt      time.Time
}

// EarningStatus is the payout state of one accrued commission.
type EarningStatus string

const (
	EarningPending       EarningStatus = "pending"
	EarningPendingPayout EarningStatus = "pending_payout"
	EarningPaid          EarningStatus = "paid"
)

// Earning is one accrued commission, created when a referred user's
// subscription payment succeeds.
type Earning struct {
	ID         int64
	AccountID  int64
	ReferralID int64
	Amount     money.Amount
	Currency   string
	Status     EarningStatus
	Reference  string
	CreatedAt  time.Time
}

// PayoutStatus is the settlement state of a payout batch.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutCompleted PayoutStatus = "completed"
	PayoutFailed    PayoutStatus = "failed"
)

// Payout is one disbursement batch of accrued commission, confirmed or
// failed later by the provider webhook.
type Payout struct {
	ID                int64
	AccountID         int64
	Amount            money.Amount
	Currency          string
	Status            PayoutStatus
	Reference         string
	ProviderReference string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// Click is one best-effort click-attribution record.
type Click struct {
	ID        int64
	Code      string
	Source    string
	CookieID  string
	CreatedAt time.Time
}
