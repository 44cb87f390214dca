// Package money holds the rounding rule shared by every analytics output.
package money

import "github.com/shopspring/decimal"

// Round2 rounds x to two decimal places, half away from zero.
func Round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// Value dereferences an optional amount, treating nil as zero.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Ptr returns a pointer to x. Handy for optional fields in literals.
func Ptr(x float64) *float64 {
	return &x
}
