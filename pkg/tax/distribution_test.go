package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDistributeTwoOwners(t *testing.T) {
	owners := []OwnerShare{
		{OwnerID: 1, SharePercent: pct("60"), Country: CountryPortugal},
		{OwnerID: 2, SharePercent: pct("40"), Country: CountrySpain},
	}

	res, err := Distribute(decimal.NewFromInt(12000), decimal.NewFromInt(2000), owners)
	require.NoError(t, err)

	assert.True(t, res.Net.Equal(decimal.NewFromInt(10000)))
	require.Len(t, res.Shares, 2)

	pt := res.Shares[0]
	assert.True(t, pt.Gross.Equal(decimal.NewFromInt(6000)))
	assert.True(t, pt.Tax.Equal(pct("795")), "pt tax = %s", pt.Tax)

	es := res.Shares[1]
	assert.True(t, es.Gross.Equal(decimal.NewFromInt(4000)))
	assert.True(t, es.Tax.Equal(pct("760")), "es tax = %s", es.Tax)
}

// Every owner's net must equal their gross share minus their tax, and the
// distribution's total tax must equal the sum over owners.
func TestDistributeAccountingIdentities(t *testing.T) {
	owners := []OwnerShare{
		{OwnerID: 1, SharePercent: pct("33.33"), Country: CountryPortugal},
		{OwnerID: 2, SharePercent: pct("33.33"), Country: CountrySpain},
		{OwnerID: 3, SharePercent: pct("33.34"), Country: CountryPortugal},
	}

	res, err := Distribute(pct("45123.87"), pct("3200.12"), owners)
	require.NoError(t, err)

	taxSum := decimal.Zero
	for _, s := range res.Shares {
		assert.True(t, s.Net.Equal(s.Gross.Sub(s.Tax)), "owner %d: net != gross - tax", s.OwnerID)
		taxSum = taxSum.Add(s.Tax)
	}
	assert.True(t, res.TotalTax.Equal(taxSum))
}

func TestDistributeSharesMustSumToHundred(t *testing.T) {
	owners := []OwnerShare{
		{OwnerID: 1, SharePercent: pct("50"), Country: CountryPortugal},
		{OwnerID: 2, SharePercent: pct("49.5"), Country: CountrySpain},
	}

	_, err := Distribute(decimal.NewFromInt(1000), decimal.Zero, owners)
	assert.Error(t, err)
}

func TestDistributeShareTolerance(t *testing.T) {
	owners := []OwnerShare{
		{OwnerID: 1, SharePercent: pct("50"), Country: CountryPortugal},
		{OwnerID: 2, SharePercent: pct("50.005"), Country: CountrySpain},
	}

	_, err := Distribute(decimal.NewFromInt(1000), decimal.Zero, owners)
	assert.NoError(t, err)
}

func TestDistributeRejectsNonPositiveShare(t *testing.T) {
	owners := []OwnerShare{
		{OwnerID: 1, SharePercent: pct("110"), Country: CountryPortugal},
		{OwnerID: 2, SharePercent: pct("-10"), Country: CountrySpain},
	}

	_, err := Distribute(decimal.NewFromInt(1000), decimal.Zero, owners)
	assert.Error(t, err)
}

func TestDistributeNoOwners(t *testing.T) {
	_, err := Distribute(decimal.NewFromInt(1000), decimal.Zero, nil)
	assert.ErrorIs(t, err, ErrNoOwners)
}

// Expenses above gross leave a loss: shares go negative, tax stays zero.
func TestDistributeNegativeNet(t *testing.T) {
	owners := []OwnerShare{
		{OwnerID: 1, SharePercent: pct("100"), Country: CountryPortugal},
	}

	res, err := Distribute(decimal.NewFromInt(500), decimal.NewFromInt(900), owners)
	require.NoError(t, err)

	assert.True(t, res.Net.Equal(decimal.NewFromInt(-400)))
	assert.True(t, res.Shares[0].Tax.IsZero())
	assert.True(t, res.Shares[0].Net.Equal(decimal.NewFromInt(-400)))
}
