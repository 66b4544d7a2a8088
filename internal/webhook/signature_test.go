package webhook_test

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chainsynchq/chainsync/internal/webhook"
)

func paystackSign(secret string, payload []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaystack(t *testing.T) {
	secret := "sk_test_secret"
	payload := []byte(`{"event":"charge.success"}`)

	t.Run("ValidSignature", func(t *testing.T) {
		err := webhook.VerifyPaystack(secret, payload, paystackSign(secret, payload))
		assert.NoError(t, err)
	})

	t.Run("MissingSignature", func(t *testing.T) {
		err := webhook.VerifyPaystack(secret, payload, "")
		assert.ErrorIs(t, err, webhook.ErrMissingSignature)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		err := webhook.VerifyPaystack(secret, payload, paystackSign("sk_test_other", payload))
		assert.ErrorIs(t, err, webhook.ErrInvalidSignature)
	})

	t.Run("TamperedPayload", func(t *testing.T) {
		signature := paystackSign(secret, payload)
		err := webhook.VerifyPaystack(secret, []byte(`{"event":"charge.success","data":{}}`), signature)
		assert.ErrorIs(t, err, webhook.ErrInvalidSignature)
	})
}

func TestVerifyFlutterwave(t *testing.T) {
	t.Run("MatchingHash", func(t *testing.T) {
		assert.NoError(t, webhook.VerifyFlutterwave("hash-value", "hash-value"))
	})

	t.Run("MissingHash", func(t *testing.T) {
		assert.ErrorIs(t, webhook.VerifyFlutterwave("hash-value", ""), webhook.ErrMissingSignature)
	})

	t.Run("WrongHash", func(t *testing.T) {
		assert.ErrorIs(t, webhook.VerifyFlutterwave("hash-value", "other"), webhook.ErrInvalidSignature)
	})
}
