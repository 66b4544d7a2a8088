package webhook_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chainsynchq/chainsync/internal/money"
	"github.com/chainsynchq/chainsync/internal/webhook"
)

const paystackSecret = "sk_test_secret"

var secrets = webhook.Secrets{
	PaystackSecret:        paystackSecret,
	FlutterwaveSecretHash: "flw-hash",
}

func TestService_Handle_ChargeSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := webhook.NewMockLedger(ctrl)
	hooks := webhook.NewMockAffiliateHooks(ctrl)
	svc := webhook.NewService(secrets, ledger, hooks)

	// 250000 kobo is 2500.00 naira.
	payload := []byte(`{
		"event": "charge.success",
		"data": {
			"reference": "ref-123",
			"amount": 250000,
			"currency": "NGN",
			"metadata": {"user_id": "77"}
		}
	}`)

	ledger.EXPECT().
		Reserve(gomock.Any(), webhook.ProviderPaystack, "charge.success", "ref-123").
		Return(true, nil)
	hooks.EXPECT().
		CompleteReferralPayment(gomock.Any(), int64(77), gomock.Any(), "NGN", "ref-123").
		DoAndReturn(func(_ context.Context, _ int64, amount money.Amount, _, _ string) error {
			assert.Equal(t, "2500.00", amount.String())
			return nil
		})

	result, err := svc.Handle(context.Background(), webhook.ProviderPaystack, paystackSign(paystackSecret, payload), payload)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.False(t, result.Duplicate)
}

func TestService_Handle_InvalidSignatureBeforeAnySideEffect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := webhook.NewMockLedger(ctrl)
	hooks := webhook.NewMockAffiliateHooks(ctrl)
	svc := webhook.NewService(secrets, ledger, hooks)

	payload := []byte(`{"event":"charge.success","data":{"reference":"ref-123","amount":100}}`)

	// No ledger or hook expectations: nothing may run on a bad signature.
	_, err := svc.Handle(context.Background(), webhook.ProviderPaystack, "deadbeef", payload)
	assert.ErrorIs(t, err, webhook.ErrInvalidSignature)
}

func TestService_Handle_DuplicateDeliveryShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := webhook.NewMockLedger(ctrl)
	hooks := webhook.NewMockAffiliateHooks(ctrl)
	svc := webhook.NewService(secrets, ledger, hooks)

	payload := []byte(`{"event":"charge.success","data":{"reference":"ref-123","amount":100,"metadata":{"user_id":5}}}`)

	ledger.EXPECT().
		Reserve(gomock.Any(), webhook.ProviderPaystack, "charge.success", "ref-123").
		Return(false, nil)

	result, err := svc.Handle(context.Background(), webhook.ProviderPaystack, paystackSign(paystackSecret, payload), payload)
	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.False(t, result.Applied)
}

func TestService_Handle_FailedEffectReleasesReservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := webhook.NewMockLedger(ctrl)
	hooks := webhook.NewMockAffiliateHooks(ctrl)
	svc := webhook.NewService(secrets, ledger, hooks)

	payload := []byte(`{"event":"charge.success","data":{"reference":"ref-123","amount":100,"metadata":{"user_id":5}}}`)

	ledger.EXPECT().
		Reserve(gomock.Any(), webhook.ProviderPaystack, "charge.success", "ref-123").
		Return(true, nil)
	hooks.EXPECT().
		CompleteReferralPayment(gomock.Any(), int64(5), gomock.Any(), gomock.Any(), "ref-123").
		Return(errors.New("db down"))
	ledger.EXPECT().
		Release(gomock.Any(), webhook.ProviderPaystack, "charge.success", "ref-123").
		Return(nil)

	_, err := svc.Handle(context.Background(), webhook.ProviderPaystack, paystackSign(paystackSecret, payload), payload)
	assert.Error(t, err)
}

func TestService_Handle_FlutterwaveTransferSettlesPayout(t *testing.T) {
	for _, tt := range []struct {
		event     string
		succeeded bool
	}{
		{event: "transfer.completed", succeeded: true},
		{event: "transfer.failed", succeeded: false},
	} {
		t.Run(tt.event, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledger := webhook.NewMockLedger(ctrl)
			hooks := webhook.NewMockAffiliateHooks(ctrl)
			svc := webhook.NewService(secrets, ledger, hooks)

			payload := []byte(`{"event":"` + tt.event + `","data":{"reference":"payout-abc","amount":150.5,"currency":"NGN","status":"x"}}`)

			ledger.EXPECT().
				Reserve(gomock.Any(), webhook.ProviderFlutterwave, tt.event, "payout-abc").
				Return(true, nil)
			hooks.EXPECT().
				SettlePayout(gomock.Any(), "payout-abc", tt.succeeded, "payout-abc").
				Return(nil)

			result, err := svc.Handle(context.Background(), webhook.ProviderFlutterwave, "flw-hash", payload)
			require.NoError(t, err)
			assert.True(t, result.Applied)
		})
	}
}

func TestService_Handle_ChargeWithoutUserMetadataIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := webhook.NewMockLedger(ctrl)
	hooks := webhook.NewMockAffiliateHooks(ctrl)
	svc := webhook.NewService(secrets, ledger, hooks)

	payload := []byte(`{"event":"charge.success","data":{"reference":"ref-9","amount":100}}`)

	ledger.EXPECT().
		Reserve(gomock.Any(), webhook.ProviderPaystack, "charge.success", "ref-9").
		Return(true, nil)

	result, err := svc.Handle(context.Background(), webhook.ProviderPaystack, paystackSign(paystackSecret, payload), payload)
	require.NoError(t, err)
	assert.False(t, result.Applied)
}

func TestService_Handle_MalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := webhook.NewMockLedger(ctrl)
	hooks := webhook.NewMockAffiliateHooks(ctrl)
	svc := webhook.NewService(secrets, ledger, hooks)

	payload := []byte(`{"event":"charge.success"`)

	_, err := svc.Handle(context.Background(), webhook.ProviderPaystack, paystackSign(paystackSecret, payload), payload)
	assert.ErrorIs(t, err, webhook.ErrMalformedPayload)
}
