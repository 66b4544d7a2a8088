package affiliate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chainsynchq/chainsync/internal/money"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=affiliate
type Repository interface {
	GetAccount(ctx context.Context, id int64) (*Account, error)
	GetAccountByUser(ctx context.Context, userID int64) (*Account, error)
	GetAccountByCode(ctx context.Context, code string) (*Account, error)
	CreateAccount(ctx context.Context, account *Account) error
	UpdateBankDetails(ctx context.Context, account *Account) error

	CreateReferral(ctx context.Context, referral *Referral) error
	FindOpenReferralByUser(ctx context.Context, referredUserID int64) (*Referral, error)
	ActivateReferralWithCommission(ctx context.Context, referralID int64, earning *Earning) error

	InsertClick(ctx context.Context, click *Click) error

	CreatePayout(ctx context.Context, payout *Payout) error
	SetPayoutProvider(ctx context.Context, payoutID int64, providerReference string) error
	GetPayoutByReference(ctx context.Context, reference string) (*Payout, error)
	SettlePayout(ctx context.Context, payoutID int64, succeeded bool, providerReference string) error
}

// ErrDuplicateCode is returned by the store when a generated referral code
// collides with an existing one.
var ErrDuplicateCode = errors.New("duplicate referral code")

// Gateway initiates a funds transfer at a payment provider. The transfer is
// asynchronous; the provider confirms via webhook.
type Gateway interface {
	InitiateTransfer(ctx context.Context, req TransferRequest) (providerReference string, err error)
}

// TransferRequest describes one provider transfer.
type TransferRequest struct {
	Amount        money.Amount
	Currency      string
	Reference     string
	Method        PayoutMethod
	BankCode      string
	AccountNumber string
	AccountName   string
	Narration     string
}

// Publisher emits affiliate domain events.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload []byte) error
}

type Service struct {
	repo    Repository
	gateway Gateway
	events  Publisher

	commissionPct int64
	minPayout     money.Amount
	currency      string
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithGateway(g Gateway) Option { return func(s *Service) { s.gateway = g } }

func WithPublisher(p Publisher) Option { return func(s *Service) { s.events = p } }

// WithCommission sets the commission percentage and minimum payout.
func WithCommission(pct int64, minPayout money.Amount) Option {
	return func(s *Service) {
		s.commissionPct = pct
		s.minPayout = minPayout
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		commissionPct: 10,
		minPayout:     money.FromInt(10),
		currency:      "NGN",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register returns the user's affiliate account, creating one with a fresh
// referral code if none exists. Calling twice for the same user returns the
// existing account.
func (s *Service) Register(ctx context.Context, userID int64) (*Account, error) {
	account, err := s.repo.GetAccountByUser(ctx, userID)
	if err == nil {
		return account, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	account = &Account{
		UserID: userID,
		Code:   GenerateCode(),
	}

	err = s.repo.CreateAccount(ctx, account)
	if errors.Is(err, ErrDuplicateCode) {
		account.Code = GenerateCode()
		err = s.repo.CreateAccount(ctx, account)
	}

	if err != nil {
		return nil, err
	}

	return account, nil
}

// UpdateBankDetails sets the account's payout destination.
func (s *Service) UpdateBankDetails(ctx context.Context, accountID int64, bankName, bankCode, accountNumber, accountName string, method PayoutMethod) (*Account, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account.BankName = bankName
	account.BankCode = bankCode
	account.AccountNumber = accountNumber
	account.AccountName = accountName
	account.PayoutMethod = method

	if err := s.repo.UpdateBankDetails(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// TrackReferral records that newUserID signed up with the given referral
// code. Unknown codes are tolerated and return nil: an invalid code must
// never block a signup.
func (s *Service) TrackReferral(ctx context.Context, code string, newUserID int64) (*Referral, error) {
	account, err := s.repo.GetAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Info("referral code did not resolve", "code", code, "user_id", newUserID)
			return nil, nil
		}

		return nil, err
	}

	referral := &Referral{
		AccountID:      account.ID,
		ReferredUserID: newUserID,
		Status:         ReferralPending,
		// Referrals are valid for twelve months from signup.
		ExpiresAt: time.Now().UTC().AddDate(1, 0, 0),
	}

	if err := s.repo.CreateReferral(ctx, referral); err != nil {
		return nil, err
	}

	return referral, nil
}

// TrackClick records a click attribution. Best-effort: failures are logged
// and never propagated, so the pixel endpoint can always respond.
func (s *Service) TrackClick(ctx context.Context, code, source string) {
	click := &Click{
		Code:     code,
		Source:   source,
		CookieID: uuid.NewString(),
	}

	if err := s.repo.InsertClick(ctx, click); err != nil {
		slog.Warn("click tracking failed", "code", code, "error", err)
	}
}

// CompleteReferralPayment activates the referred user's open referral and
// accrues commission on the referring account. Driven by webhook
// reconciliation when a subscription payment succeeds.
func (s *Service) CompleteReferralPayment(ctx context.Context, referredUserID int64, amount money.Amount, currency, providerReference string) error {
	referral, err := s.repo.FindOpenReferralByUser(ctx, referredUserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Not a referred user; nothing to credit.
			return nil
		}

		return err
	}

	if time.Now().UTC().After(referral.ExpiresAt) {
		slog.Info("referral expired before activation", "referral_id", referral.ID)
		return nil
	}

	earning := &Earning{
		AccountID:  referral.AccountID,
		ReferralID: referral.ID,
		Amount:     amount.Percent(s.commissionPct),
		Currency:   currency,
		Status:     EarningPending,
		Reference:  providerReference,
	}

	if err := s.repo.ActivateReferralWithCommission(ctx, referral.ID, earning); err != nil {
		return err
	}

	s.publish(ctx, "affiliate.referral.activated", providerReference, earning)

	return nil
}

// ProcessPayout batches the account's accrued commission into a pending
// payout and initiates the provider transfer. Funds movement is confirmed
// later by webhook reconciliation.
func (s *Service) ProcessPayout(ctx context.Context, accountID int64) (*Payout, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.PendingEarnings.Cmp(s.minPayout) < 0 {
		return nil, &InsufficientBalanceError{Available: account.PendingEarnings, Minimum: s.minPayout}
	}

	payout := &Payout{
		AccountID: account.ID,
		Amount:    account.PendingEarnings,
		Currency:  s.currency,
		Status:    PayoutPending,
		Reference: "payout-" + uuid.NewString(),
	}

	// CreatePayout atomically inserts the batch, marks the earnings
	// pending-payout and zeroes the account's pending balance.
	if err := s.repo.CreatePayout(ctx, payout); err != nil {
		return nil, err
	}

	if s.gateway != nil {
		providerRef, err := s.gateway.InitiateTransfer(ctx, TransferRequest{
			Amount:        payout.Amount,
			Currency:      payout.Currency,
			Reference:     payout.Reference,
			Method:        account.PayoutMethod,
			BankCode:      account.BankCode,
			AccountNumber: account.AccountNumber,
			AccountName:   account.AccountName,
			Narration:     "ChainSync affiliate payout",
		})
		if err != nil {
			// The batch stays pending; settlement (or failure) arrives
			// via webhook or a retry of the transfer.
			slog.Error("transfer initiation failed", "payout", payout.Reference, "error", err)
		} else {
			payout.ProviderReference = providerRef
			if err := s.repo.SetPayoutProvider(ctx, payout.ID, providerRef); err != nil {
				slog.Error("recording provider reference failed", "payout", payout.Reference, "error", err)
			}
		}
	}

	return payout, nil
}

// SettlePayout finalizes a payout batch from a provider webhook. Failed
// transfers restore the earnings to the account's pending balance. Settling
// an already-settled payout is a no-op.
func (s *Service) SettlePayout(ctx context.Context, reference string, succeeded bool, providerReference string) error {
	payout, err := s.repo.GetPayoutByReference(ctx, reference)
	if err != nil {
		return err
	}

	if payout.Status != PayoutPending {
		return nil
	}

	if err := s.repo.SettlePayout(ctx, payout.ID, succeeded, providerReference); err != nil {
		return err
	}

	s.publish(ctx, "affiliate.payout.settled", reference, map[string]any{
		"reference": reference,
		"succeeded": succeeded,
	})

	return nil
}

// AccountForUser returns the account owned by userID.
func (s *Service) AccountForUser(ctx context.Context, userID int64) (*Account, error) {
	return s.repo.GetAccountByUser(ctx, userID)
}

func (s *Service) publish(ctx context.Context, eventType, key string, payload any) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("event payload marshal failed", "event", eventType, "error", err)
		return
	}

	if err := s.events.Publish(ctx, eventType, key, data); err != nil {
		slog.Warn("event publish failed", "event", eventType, "key", key, "error", err)
	}
}
