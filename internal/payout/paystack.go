package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chainsynchq/chainsync/internal/affiliate"
)

const paystackBaseURL = "https://api.paystack.co"

// PaystackClient initiates transfers via Paystack's transfer API. Paystack
// requires a transfer recipient to exist before a transfer can reference it,
// so every transfer is a two-call sequence.
type PaystackClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewPaystackClient(secretKey string) *PaystackClient {
	return &PaystackClient{
		secretKey: secretKey,
		baseURL:   paystackBaseURL,
		client:    newHTTPClient(),
	}
}

type paystackRecipientRequest struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	Currency      string `json:"currency"`
}

type paystackRecipientResponse struct {
	Status bool   `json:"status"`
	Message string `json:"message"`
	Data   struct {
		RecipientCode string `json:"recipient_code"`
	} `json:"data"`
}

type paystackTransferRequest struct {
	Source    string `json:"source"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Recipient string `json:"recipient"`
	Reference string `json:"reference"`
	Reason    string `json:"reason,omitempty"`
}

type paystackTransferResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		TransferCode string `json:"transfer_code"`
	} `json:"data"`
}

func (c *PaystackClient) InitiateTransfer(ctx context.Context, req affiliate.TransferRequest) (string, error) {
	recipient, err := c.createRecipient(ctx, req)
	if err != nil {
		return "", err
	}

	body := paystackTransferRequest{
		Source:    "balance",
		Amount:    req.Amount.MinorUnits(),
		Currency:  req.Currency,
		Recipient: recipient,
		Reference: req.Reference,
		Reason:    req.Narration,
	}

	var resp paystackTransferResponse
	if err := c.post(ctx, "/transfer", body, &resp); err != nil {
		return "", fmt.Errorf("initiating paystack transfer: %w", err)
	}

	if !resp.Status {
		return "", fmt.Errorf("initiating paystack transfer: %s", resp.Message)
	}

	return resp.Data.TransferCode, nil
}

func (c *PaystackClient) createRecipient(ctx context.Context, req affiliate.TransferRequest) (string, error) {
	body := paystackRecipientRequest{
		Type:          "nuban",
		Name:          req.AccountName,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		Currency:      req.Currency,
	}

	var resp paystackRecipientResponse
	if err := c.post(ctx, "/transferrecipient", body, &resp); err != nil {
		return "", fmt.Errorf("creating paystack recipient: %w", err)
	}

	if !resp.Status {
		return "", fmt.Errorf("creating paystack recipient: %s", resp.Message)
	}

	return resp.Data.RecipientCode, nil
}

func (c *PaystackClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
