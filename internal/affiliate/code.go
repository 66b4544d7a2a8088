package affiliate

import "math/rand/v2"

// codeAlphabet avoids 0/O and 1/I so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 8

// GenerateCode returns a new referral code. Uniqueness is enforced by the
// store's unique index; callers regenerate on conflict.
func GenerateCode() string {
	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}

	return string(buf)
}
