package webhook_test

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	webhookhttp "github.com/chainsynchq/chainsync/internal/http/webhook"
	"github.com/chainsynchq/chainsync/internal/webhook"
)

const paystackSecret = "sk_test_secret"

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)

	return hex.EncodeToString(mac.Sum(nil))
}

func newRouter(t *testing.T) (*chi.Mux, *webhook.MockLedger) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ledger := webhook.NewMockLedger(ctrl)
	hooks := webhook.NewMockAffiliateHooks(ctrl)
	svc := webhook.NewService(webhook.Secrets{PaystackSecret: paystackSecret}, ledger, hooks)

	r := chi.NewRouter()
	r.Route("/webhooks", webhookhttp.NewHandler(svc).Routes)

	return r, ledger
}

func TestHandler_Paystack_SignatureStatusCodes(t *testing.T) {
	payload := `{"event":"charge.success","data":{"reference":"ref-9","amount":100}}`

	t.Run("MissingSignatureAnswers400", func(t *testing.T) {
		r, _ := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/paystack", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidSignatureAnswers401", func(t *testing.T) {
		r, _ := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/paystack", strings.NewReader(payload))
		req.Header.Set("x-paystack-signature", "deadbeef")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidSignatureAnswers200", func(t *testing.T) {
		r, ledger := newRouter(t)

		ledger.EXPECT().
			Reserve(gomock.Any(), webhook.ProviderPaystack, "charge.success", "ref-9").
			Return(true, nil)

		req := httptest.NewRequest(http.MethodPost, "/webhooks/paystack", strings.NewReader(payload))
		req.Header.Set("x-paystack-signature", sign(paystackSecret, []byte(payload)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
