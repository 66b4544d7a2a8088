// Package payout initiates bank transfers through the payment providers'
// transfer APIs. The webhook package settles the resulting transfers when the
// provider reports back.
package payout

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chainsynchq/chainsync/internal/affiliate"
)

const defaultTimeout = 15 * time.Second

// Gateway routes transfer requests to the provider the affiliate chose for
// payouts. It implements affiliate.Gateway.
type Gateway struct {
	paystack    *PaystackClient
	flutterwave *FlutterwaveClient
}

func NewGateway(paystack *PaystackClient, flutterwave *FlutterwaveClient) *Gateway {
	return &Gateway{paystack: paystack, flutterwave: flutterwave}
}

func (g *Gateway) InitiateTransfer(ctx context.Context, req affiliate.TransferRequest) (string, error) {
	switch req.Method {
	case affiliate.PayoutPaystack:
		return g.paystack.InitiateTransfer(ctx, req)
	case affiliate.PayoutFlutterwave:
		return g.flutterwave.InitiateTransfer(ctx, req)
	default:
		return "", fmt.Errorf("unsupported payout method %q", req.Method)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}
