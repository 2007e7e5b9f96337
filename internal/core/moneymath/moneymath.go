// Package moneymath provides exact decimal arithmetic for monetary and mass
// quantities. Every value is a base-10 decimal; nothing in this package
// converts to a binary float, so repeated small operations on gram weights
// never accumulate drift.
package moneymath

import (
	"github.com/goldvault/goldvault/internal/apperrors"
	"github.com/shopspring/decimal"
)

func init() {
	// At least 20 significant digits on division results. All other
	// operations are exact by construction.
	if decimal.DivisionPrecision < 28 {
		decimal.DivisionPrecision = 28
	}
}

// Add returns a + b exactly.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// Sub returns a - b exactly.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b)
}

// Mul returns a * b exactly.
func Mul(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b)
}

// Div returns a / b to the configured division precision.
// Returns apperrors.ErrDivisionByZero if b is zero.
func Div(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, apperrors.ErrDivisionByZero
	}
	return a.Div(b), nil
}

// ToFixed renders v with the given number of decimal places, rounding
// half-away-from-zero. This is the only place rounding happens; it belongs at
// the presentation boundary, never inside a calculation.
func ToFixed(v decimal.Decimal, places int32) string {
	return v.StringFixed(places)
}

// GoldEquivalent converts a physical gold mass to its fine gold equivalent:
// grams multiplied by the purity fraction (e.g. 10g at 0.916 -> 9.16g).
func GoldEquivalent(mass, purity decimal.Decimal) decimal.Decimal {
	return mass.Mul(purity)
}

// FromString parses a decimal from its string form.
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses a decimal literal and panics on malformed input.
// Intended for constants and tests.
func MustFromString(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
