// Package tax computes the tax component of cart totals.
package tax

import "context"

// Calculator defines the interface for tax calculation.
// Implementations: PercentageCalculator, NoTaxCalculator.
type Calculator interface {
	// CalculateTax computes tax in cents for the given cart amounts.
	CalculateTax(ctx context.Context, params TaxParams) (int64, error)
}

// TaxParams contains the amounts tax applies to.
type TaxParams struct {
	SubtotalCents int64
}
