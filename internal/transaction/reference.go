package transaction

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// referencePrefix prefixes every generated transaction reference.
const referencePrefix = "TXN"

// GenerateReference builds a reference of the form
// <PREFIX>-<epoch-millis>-<0..999>. The shape matches historical data, so it
// is kept even though it is not collision-proof; the store enforces a unique
// index and the service regenerates once on conflict.
func GenerateReference() string {
	return fmt.Sprintf("%s-%d-%d", referencePrefix, time.Now().UnixMilli(), rand.IntN(1000))
}
