package webhook

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/chainsynchq/chainsync/internal/money"
)

// paystackPayload is the subset of Paystack's event body we act on.
// Amounts are integer kobo.
type paystackPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string          `json:"reference"`
		Amount    int64           `json:"amount"`
		Currency  string          `json:"currency"`
		Metadata  json.RawMessage `json:"metadata"`
	} `json:"data"`
}

// flutterwavePayload is the subset of Flutterwave's event body we act on.
// Amounts are decimal major units.
type flutterwavePayload struct {
	Event string `json:"event"`
	Data  struct {
		TxRef     string          `json:"tx_ref"`
		Reference string          `json:"reference"`
		Amount    json.Number     `json:"amount"`
		Currency  string          `json:"currency"`
		Status    string          `json:"status"`
		Meta      json.RawMessage `json:"meta"`
	} `json:"data"`
}

func parseEvent(provider Provider, payload []byte) (*Event, error) {
	switch provider {
	case ProviderPaystack:
		return parsePaystack(payload)
	case ProviderFlutterwave:
		return parseFlutterwave(payload)
	default:
		return nil, ErrUnknownProvider
	}
}

func parsePaystack(payload []byte) (*Event, error) {
	var body paystackPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if body.Event == "" || body.Data.Reference == "" {
		return nil, fmt.Errorf("%w: missing event or reference", ErrMalformedPayload)
	}

	return &Event{
		Provider:   ProviderPaystack,
		Type:       body.Event,
		Reference:  body.Data.Reference,
		Amount:     money.FromMinorUnits(body.Data.Amount),
		Currency:   body.Data.Currency,
		UserID:     userIDFromMetadata(body.Data.Metadata),
		ReceivedAt: time.Now().UTC(),
	}, nil
}

func parseFlutterwave(payload []byte) (*Event, error) {
	var body flutterwavePayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	reference := body.Data.TxRef
	if reference == "" {
		reference = body.Data.Reference
	}

	if body.Event == "" || reference == "" {
		return nil, fmt.Errorf("%w: missing event or reference", ErrMalformedPayload)
	}

	amount := money.Zero

	if body.Data.Amount != "" {
		parsed, err := money.ParseRounded(body.Data.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}

		amount = parsed
	}

	return &Event{
		Provider:   ProviderFlutterwave,
		Type:       body.Event,
		Reference:  reference,
		Amount:     amount,
		Currency:   body.Data.Currency,
		UserID:     userIDFromMetadata(body.Data.Meta),
		ReceivedAt: time.Now().UTC(),
	}, nil
}

// userIDFromMetadata digs the customer's user id out of provider metadata.
// Providers echo metadata back as either a number or a string.
func userIDFromMetadata(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}

	// Paystack sends metadata: "" when none was attached, and echoes
	// attached values back as either numbers or strings.
	var meta struct {
		UserID any `json:"user_id"`
	}

	if err := json.Unmarshal(raw, &meta); err != nil {
		return 0
	}

	switch v := meta.UserID.(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}

		return id
	case float64:
		return int64(v)
	}

	return 0
}
