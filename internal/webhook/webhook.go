// Package webhook reconciles asynchronous payment-provider callbacks.
// Every delivery is authenticated against the provider's shared secret
// before any parsing or side effect, and applied at most once per provider
// event via a processed-event ledger.
package webhook

import (
	"errors"
	"time"

	"github.com/chainsynchq/chainsync/internal/money"
)

// Provider identifies a payment provider.
type Provider string

const (
	ProviderPaystack    Provider = "paystack"
	ProviderFlutterwave Provider = "flutterwave"
)

var (
	// ErrMissingSignature rejects deliveries with no signature header.
	ErrMissingSignature = errors.New("missing webhook signature")

	// ErrInvalidSignature rejects deliveries whose signature does not
	// match the payload under the provider's shared secret.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrUnknownProvider rejects deliveries for providers we don't know.
	ErrUnknownProvider = errors.New("unknown webhook provider")

	// ErrMalformedPayload rejects payloads that fail to parse.
	ErrMalformedPayload = errors.New("malformed webhook payload")
)

// Event is the provider-independent view of one verified delivery.
type Event struct {
	Provider  Provider
	Type      string
	Reference string
	Amount    money.Amount
	Currency  string

	// UserID is set on subscription-charge events that carry customer
	// metadata; zero otherwise.
	UserID int64

	ReceivedAt time.Time
}

// IsCharge reports whether the event is a successful subscription charge.
func (e *Event) IsCharge() bool {
	return e.Type == "charge.success" || e.Type == "charge.completed"
}

// IsTransfer reports whether the event settles an outbound transfer, and
// whether it succeeded.
func (e *Event) IsTransfer() (ok, succeeded bool) {
	switch e.Type {
	case "transfer.success", "transfer.completed":
		return true, true
	case "transfer.failed", "transfer.reversed":
		return true, false
	}

	return false, false
}
