package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsynchq/chainsync/internal/money"
)

func TestParse(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "WholeUnits", input: "21", want: "21.00"},
		{name: "TwoPlaces", input: "21.50", want: "21.50"},
		{name: "OnePlace", input: "0.5", want: "0.50"},
		{name: "Negative", input: "-3.25", want: "-3.25"},
		{name: "TooManyPlaces", input: "1.005", wantErr: true},
		{name: "NotANumber", input: "abc", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := money.MustParse("10.00")

	assert.Equal(t, "20.00", a.MulInt(2).String())
	assert.Equal(t, "11.50", a.Add(money.MustParse("1.50")).String())
	assert.Equal(t, "8.25", a.Sub(money.MustParse("1.75")).String())
	assert.Equal(t, "21.50", money.Sum(a, a, money.MustParse("1.50")).String())
}

func TestEquals(t *testing.T) {
	a := money.MustParse("21.50")

	assert.True(t, a.Equals(money.MustParse("21.50")))
	assert.True(t, a.Equals(money.MustParse("21.49")), "one cent inside tolerance")
	assert.False(t, a.Equals(money.MustParse("21.48")))
	assert.False(t, a.Equals(money.MustParse("20.00")))
}

func TestWholeUnits(t *testing.T) {
	assert.Equal(t, int64(21), money.MustParse("21.50").WholeUnits())
	assert.Equal(t, int64(0), money.MustParse("0.99").WholeUnits())
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Total money.Amount `json:"total"`
	}

	data, err := json.Marshal(payload{Total: money.MustParse("21.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":"21.50"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"total":"19.99"}`), &decoded))
	assert.Equal(t, "19.99", decoded.Total.String())
}

func TestScan(t *testing.T) {
	var a money.Amount

	require.NoError(t, a.Scan("12.30"))
	assert.Equal(t, "12.30", a.String())

	require.NoError(t, a.Scan([]byte("7.00")))
	assert.Equal(t, "7.00", a.String())

	assert.Error(t, a.Scan(3.14))
}
