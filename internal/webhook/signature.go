package webhook

import (
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// VerifyPaystack checks the x-paystack-signature header: hex-encoded
// HMAC-SHA512 of the raw request body under the account's secret key.
func VerifyPaystack(secret string, payload []byte, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		return ErrInvalidSignature
	}

	return nil
}

// VerifyFlutterwave checks the verif-hash header, which Flutterwave sets to
// the literal secret hash configured on the dashboard.
func VerifyFlutterwave(secretHash, signature string) error {
	if signature == "" {
		return ErrMissingSignature
	}

	if subtle.ConstantTimeCompare([]byte(secretHash), []byte(signature)) != 1 {
		return ErrInvalidSignature
	}

	return nil
}
