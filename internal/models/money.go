package models

import "github.com/shopspring/decimal"

// AmountTolerance is the absolute tolerance used when comparing amounts during
// matching. Amounts are conceptually exact; the tolerance only absorbs
// floating-point noise introduced by upstream systems, it is not a business
// rule permitting near-matches.
var AmountTolerance = decimal.RequireFromString("0.01")

// AmountsEqual reports whether two amounts are equal within AmountTolerance.
func AmountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(AmountTolerance)
}
