package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePortugal(t *testing.T) {
	cases := []struct {
		name    string
		taxable string
		want    string
	}{
		{"zero", "0", "0"},
		{"negative owes nothing", "-500", "0"},
		{"inside first band", "5000", "662.5"},
		{"spans two bands", "10000", "1434.11"},
		{"top band", "100000", "38163.59"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compute(CountryPortugal, decimal.RequireFromString(tc.taxable))
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"taxable %s: got %s, want %s", tc.taxable, got, tc.want)
		})
	}
}

func TestComputeSpain(t *testing.T) {
	cases := []struct {
		name    string
		taxable string
		want    string
	}{
		{"inside first band", "10000", "1900"},
		{"band boundary", "12450", "2365.5"},
		{"spans three bands", "30000", "7165.5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compute(CountrySpain, decimal.RequireFromString(tc.taxable))
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"taxable %s: got %s, want %s", tc.taxable, got, tc.want)
		})
	}
}

func TestComputeUnknownCountry(t *testing.T) {
	_, err := Compute("FR", decimal.NewFromInt(1000))
	assert.Error(t, err)
}

// Tax owed must never decrease as taxable income grows.
func TestComputeMonotonic(t *testing.T) {
	for _, country := range SupportedCountries() {
		prev := decimal.Zero
		for income := int64(0); income <= 200000; income += 1375 {
			got, err := Compute(country, decimal.NewFromInt(income))
			require.NoError(t, err)
			assert.True(t, got.GreaterThanOrEqual(prev),
				"%s: tax dropped from %s to %s at income %d", country, prev, got, income)
			prev = got
		}
	}
}

// Marginal rates mean the tax can never exceed income times the top rate.
func TestComputeBelowTopRate(t *testing.T) {
	income := decimal.NewFromInt(500000)
	for _, country := range SupportedCountries() {
		brackets, err := BracketsFor(country)
		require.NoError(t, err)
		top := brackets[len(brackets)-1].Rate

		got, err := Compute(country, income)
		require.NoError(t, err)
		assert.True(t, got.LessThan(income.Mul(top)), "%s: %s not below top-rate ceiling", country, got)
	}
}
