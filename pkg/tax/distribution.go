package tax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ShareTolerance is how far the sum of ownership percentages may drift from
// 100 before a distribution is rejected.
var ShareTolerance = decimal.RequireFromString("0.01")

var ErrNoOwners = errors.New("property has no registered owners")

// OwnerShare is one owner's input to a distribution: their percentage of the
// property and the country whose bracket table taxes their slice.
type OwnerShare struct {
	OwnerID      uint
	SharePercent decimal.Decimal
	Country      string
}

// ShareResult is the computed outcome for a single owner.
type ShareResult struct {
	OwnerID      uint
	SharePercent decimal.Decimal
	Gross        decimal.Decimal
	Tax          decimal.Decimal
	Net          decimal.Decimal
	Country      string
}

// Result is a full distribution: the property-level totals plus one
// ShareResult per owner.
type Result struct {
	Gross    decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	TotalTax decimal.Decimal
	Shares   []ShareResult
}

var hundred = decimal.NewFromInt(100)

// ValidateShares checks that every share is positive and that the shares sum
// to 100 within ShareTolerance.
func ValidateShares(owners []OwnerShare) error {
	if len(owners) == 0 {
		return ErrNoOwners
	}

	sum := decimal.Zero
	for _, o := range owners {
		if o.SharePercent.Sign() <= 0 {
			return fmt.Errorf("owner %d has non-positive share %s", o.OwnerID, o.SharePercent)
		}
		sum = sum.Add(o.SharePercent)
	}

	if sum.Sub(hundred).Abs().GreaterThan(ShareTolerance) {
		return fmt.Errorf("ownership shares sum to %s, expected 100", sum)
	}
	return nil
}

// Distribute splits net income (gross minus expenses) across the owners by
// share percentage and applies each owner's progressive tax. Amounts are
// rounded half-up to cents; a negative net income produces negative gross
// shares and zero tax.
func Distribute(gross, expenses decimal.Decimal, owners []OwnerShare) (*Result, error) {
	if err := ValidateShares(owners); err != nil {
		return nil, err
	}

	net := gross.Sub(expenses)
	result := &Result{
		Gross:    gross.Round(2),
		Expenses: expenses.Round(2),
		Net:      net.Round(2),
		TotalTax: decimal.Zero,
		Shares:   make([]ShareResult, 0, len(owners)),
	}

	for _, o := range owners {
		grossShare := net.Mul(o.SharePercent).Div(hundred).Round(2)

		owed, err := Compute(o.Country, grossShare)
		if err != nil {
			return nil, err
		}

		result.Shares = append(result.Shares, ShareResult{
			OwnerID:      o.OwnerID,
			SharePercent: o.SharePercent,
			Gross:        grossShare,
			Tax:          owed,
			Net:          grossShare.Sub(owed),
			Country:      o.Country,
		})
		result.TotalTax = result.TotalTax.Add(owed)
	}

	return result, nil
}
