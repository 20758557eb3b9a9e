// Package money centralizes monetary arithmetic so every component rounds
// and compares amounts the same way.
package money

import "github.com/shopspring/decimal"

// Epsilon is the reconciliation tolerance: one cent. Split sums and
// percentage sums are allowed to drift at most this far from their targets.
var Epsilon = decimal.New(1, -2)

// Hundred is the percentage base.
var Hundred = decimal.NewFromInt(100)

// FromFloat converts a request-level float into a cent-rounded decimal.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// RoundCents rounds to the minor currency unit (2 decimal places, half up).
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinEpsilon reports whether a and b differ by at most one cent.
func WithinEpsilon(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Epsilon)
}

// ToFloat converts an internally precise amount into the 2-decimal float
// used at the presentation boundary.
func ToFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Format renders an amount with exactly two decimal places.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
