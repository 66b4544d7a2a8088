package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chainsynchq/chainsync/internal/affiliate"
)

const flutterwaveBaseURL = "https://api.flutterwave.com/v3"

// FlutterwaveClient initiates transfers via Flutterwave's transfer API.
type FlutterwaveClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewFlutterwaveClient(secretKey string) *FlutterwaveClient {
	return &FlutterwaveClient{
		secretKey: secretKey,
		baseURL:   flutterwaveBaseURL,
		client:    newHTTPClient(),
	}
}

type flutterwaveTransferRequest struct {
	AccountBank     string          `json:"account_bank"`
	AccountNumber   string          `json:"account_number"`
	Amount          json.RawMessage `json:"amount"`
	Currency        string          `json:"currency"`
	Reference       string          `json:"reference"`
	Narration       string          `json:"narration,omitempty"`
	BeneficiaryName string          `json:"beneficiary_name,omitempty"`
}

type flutterwaveTransferResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID int64 `json:"id"`
	} `json:"data"`
}

func (c *FlutterwaveClient) InitiateTransfer(ctx context.Context, req affiliate.TransferRequest) (string, error) {
	body := flutterwaveTransferRequest{
		AccountBank:     req.BankCode,
		AccountNumber:   req.AccountNumber,
		Amount:          json.RawMessage(req.Amount.String()),
		Currency:        req.Currency,
		Reference:       req.Reference,
		Narration:       req.Narration,
		BeneficiaryName: req.AccountName,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding transfer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfers", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building transfer request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("initiating flutterwave transfer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return "", fmt.Errorf("initiating flutterwave transfer: provider returned status %d", resp.StatusCode)
	}

	var parsed flutterwaveTransferResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding transfer response: %w", err)
	}

	if parsed.Status != "success" {
		return "", fmt.Errorf("initiating flutterwave transfer: %s", parsed.Message)
	}

	return strconv.FormatInt(parsed.Data.ID, 10), nil
}
