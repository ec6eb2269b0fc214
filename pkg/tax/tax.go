// Package tax implements the progressive tax computation used by the income
// distribution engine. Bracket tables cover rental income taxed at the
// general progressive scale for Portugal (IRS) and Spain (IRPF).
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	CountryPortugal = "PT"
	CountrySpain    = "ES"
)

// Bracket is one progressive band. UpperBound is the cumulative income
// ceiling of the band; a nil UpperBound marks the open-ended top band.
type Bracket struct {
	UpperBound *decimal.Decimal
	Rate       decimal.Decimal // e.g. 0.2300 for 23%
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bound(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// 2024 continental IRS scale.
var portugalBrackets = []Bracket{
	{bound("7703"), d("0.1325")},
	{bound("11623"), d("0.18")},
	{bound("16472"), d("0.23")},
	{bound("21321"), d("0.26")},
	{bound("27146"), d("0.3275")},
	{bound("39791"), d("0.37")},
	{bound("51997"), d("0.435")},
	{bound("81199"), d("0.45")},
	{nil, d("0.48")},
}

// 2024 IRPF general scale (state + autonomous reference rates).
var spainBrackets = []Bracket{
	{bound("12450"), d("0.19")},
	{bound("20200"), d("0.24")},
	{bound("35200"), d("0.30")},
	{bound("60000"), d("0.37")},
	{bound("300000"), d("0.45")},
	{nil, d("0.47")},
}

var bracketTables = map[string][]Bracket{
	CountryPortugal: portugalBrackets,
	CountrySpain:    spainBrackets,
}

// BracketsFor returns the bracket table for an ISO country code.
func BracketsFor(country string) ([]Bracket, error) {
	brackets, ok := bracketTables[country]
	if !ok {
		return nil, fmt.Errorf("no tax table for country %q", country)
	}
	return brackets, nil
}

// SupportedCountries lists the jurisdictions with a bracket table.
func SupportedCountries() []string {
	return []string{CountryPortugal, CountrySpain}
}

// Compute returns the tax owed on taxable income for a country, applying each
// band marginally and rounding the result half-up to cents. Non-positive
// income owes nothing.
func Compute(country string, taxable decimal.Decimal) (decimal.Decimal, error) {
	brackets, err := BracketsFor(country)
	if err != nil {
		return decimal.Zero, err
	}

	if taxable.Sign() <= 0 {
		return decimal.Zero, nil
	}

	total := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		upper := taxable
		if b.UpperBound != nil && b.UpperBound.LessThan(taxable) {
			upper = *b.UpperBound
		}
		if upper.LessThanOrEqual(lower) {
			break
		}
		total = total.Add(upper.Sub(lower).Mul(b.Rate))
		lower = upper
	}

	return total.Round(2), nil
}
