// Package money provides fixed-point monetary amounts with two decimal
// places. Amounts are stored and serialized as decimal strings, never as
// binary floats, so repeated arithmetic cannot drift.
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance is the maximum difference at which two amounts are still
// considered equal for settlement purposes (one cent).
var Tolerance = decimal.New(1, -2)

// Amount is a monetary value at scale 2.
type Amount struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// Parse parses a decimal string into an Amount. Values with more than two
// decimal places are rejected rather than silently rounded.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	if d.Exponent() < -2 {
		return Amount{}, fmt.Errorf("amount %q has more than two decimal places", s)
	}

	return Amount{d: d}, nil
}

// MustParse is Parse for literals in tests and constants; it panics on error.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return a
}

// FromInt returns an Amount of n whole currency units.
func FromInt(n int64) Amount {
	return Amount{d: decimal.NewFromInt(n)}
}

// FromMinorUnits returns an Amount of n hundredths of a currency unit
// (kobo, cents). Providers that quote integer minor units convert here.
func FromMinorUnits(n int64) Amount {
	return Amount{d: decimal.New(n, -2)}
}

// ParseRounded parses a decimal string, rounding half-up to two places.
// Used for provider payloads that quote sub-cent precision.
func ParseRounded(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return Amount{d: d.Round(2)}, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }
func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }

// MulInt multiplies the amount by a quantity.
func (a Amount) MulInt(n int64) Amount {
	return Amount{d: a.d.Mul(decimal.NewFromInt(n))}
}

// DivInt divides the amount by a quantity, rounding half-up to two places.
func (a Amount) DivInt(n int64) Amount {
	return Amount{d: a.d.DivRound(decimal.NewFromInt(n), 2)}
}

// Percent returns p percent of the amount, rounded half-up to two places.
func (a Amount) Percent(p int64) Amount {
	return Amount{d: a.d.Mul(decimal.NewFromInt(p)).DivRound(decimal.NewFromInt(100), 2)}
}

// Cmp returns -1, 0 or 1 comparing a to b.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

func (a Amount) IsNegative() bool { return a.d.IsNegative() }
func (a Amount) IsZero() bool     { return a.d.IsZero() }

// Equals reports whether a and b differ by no more than Tolerance.
func (a Amount) Equals(b Amount) bool {
	return a.d.Sub(b.d).Abs().Cmp(Tolerance) <= 0
}

// WholeUnits returns the amount truncated to whole currency units.
// Used for loyalty point accrual.
func (a Amount) WholeUnits() int64 {
	return a.d.IntPart()
}

// MinorUnits returns the amount in hundredths of a currency unit. Used
// when calling providers that quote integer minor units.
func (a Amount) MinorUnits() int64 {
	return a.d.Shift(2).IntPart()
}

// String renders the amount with exactly two decimal places.
func (a Amount) String() string {
	return a.d.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

// Value implements driver.Valuer so amounts bind to NUMERIC columns as text.
func (a Amount) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (a *Amount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = Zero
		return nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("scanning amount: %w", err)
		}

		*a = Amount{d: d}

		return nil
	case []byte:
		return a.Scan(string(v))
	case int64:
		*a = FromInt(v)
		return nil
	default:
		return fmt.Errorf("scanning amount: unsupported type %T", src)
	}
}

// Sum adds a list of amounts.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}

	return total
}
