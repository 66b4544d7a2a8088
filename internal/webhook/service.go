package webhook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chainsynchq/chainsync/internal/money"
)

// Secrets holds the per-provider shared secrets used to authenticate
// deliveries.
type Secrets struct {
	PaystackSecret        string
	FlutterwaveSecretHash string
}

//go:generate mockgen -source=service.go -destination=service_mock.go -package=webhook

// Ledger records processed provider events so replays are applied at most
// once. Reserve returns false when the event was already recorded.
type Ledger interface {
	Reserve(ctx context.Context, provider Provider, eventType, reference string) (bool, error)
	Release(ctx context.Context, provider Provider, eventType, reference string) error
}

// AffiliateHooks are the domain effects webhook reconciliation can apply.
type AffiliateHooks interface {
	CompleteReferralPayment(ctx context.Context, referredUserID int64, amount money.Amount, currency, providerReference string) error
	SettlePayout(ctx context.Context, reference string, succeeded bool, providerReference string) error
}

type Service struct {
	secrets Secrets
	ledger  Ledger
	hooks   AffiliateHooks
}

func NewService(secrets Secrets, ledger Ledger, hooks AffiliateHooks) *Service {
	return &Service{secrets: secrets, ledger: ledger, hooks: hooks}
}

// Result reports what a delivery did.
type Result struct {
	Event     *Event
	Duplicate bool
	Applied   bool
}

// Handle authenticates, parses and applies one provider delivery.
// Verification runs strictly before parsing; replays of an already-applied
// event short-circuit without re-applying the effect. A failed effect
// releases the ledger reservation so the provider's retry can heal it.
func (s *Service) Handle(ctx context.Context, provider Provider, signature string, payload []byte) (*Result, error) {
	if err := s.verify(provider, signature, payload); err != nil {
		return nil, err
	}

	event, err := parseEvent(provider, payload)
	if err != nil {
		return nil, err
	}

	fresh, err := s.ledger.Reserve(ctx, provider, event.Type, event.Reference)
	if err != nil {
		return nil, fmt.Errorf("reserving event: %w", err)
	}

	if !fresh {
		slog.Info("duplicate webhook delivery ignored",
			"provider", provider, "event", event.Type, "reference", event.Reference)

		return &Result{Event: event, Duplicate: true}, nil
	}

	applied, err := s.apply(ctx, event)
	if err != nil {
		if releaseErr := s.ledger.Release(ctx, provider, event.Type, event.Reference); releaseErr != nil {
			slog.Error("releasing event reservation failed",
				"provider", provider, "reference", event.Reference, "error", releaseErr)
		}

		return nil, err
	}

	return &Result{Event: event, Applied: applied}, nil
}

func (s *Service) verify(provider Provider, signature string, payload []byte) error {
	switch provider {
	case ProviderPaystack:
		return VerifyPaystack(s.secrets.PaystackSecret, payload, signature)
	case ProviderFlutterwave:
		return VerifyFlutterwave(s.secrets.FlutterwaveSecretHash, signature)
	default:
		return ErrUnknownProvider
	}
}

func (s *Service) apply(ctx context.Context, event *Event) (bool, error) {
	if event.IsCharge() {
		if event.UserID == 0 {
			slog.Info("charge event without user metadata", "reference", event.Reference)
			return false, nil
		}

		err := s.hooks.CompleteReferralPayment(ctx, event.UserID, event.Amount, event.Currency, event.Reference)
		if err != nil {
			return false, fmt.Errorf("completing referral payment: %w", err)
		}

		return true, nil
	}

	if ok, succeeded := event.IsTransfer(); ok {
		err := s.hooks.SettlePayout(ctx, event.Reference, succeeded, event.Reference)
		if err != nil {
			return false, fmt.Errorf("settling payout: %w", err)
		}

		return true, nil
	}

	slog.Info("webhook event type not handled", "provider", event.Provider, "event", event.Type)

	return false, nil
}
