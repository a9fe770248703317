package tax

import (
	"context"
	"math"
)

// PercentageCalculator calculates tax as a fixed percentage of the cart
// subtotal, rounded to the nearest cent.
type PercentageCalculator struct {
	rate float64 // e.g., 0.08 for 8%
}

// NewPercentageCalculator creates a percentage-based tax calculator.
func NewPercentageCalculator(rate float64) Calculator {
	return &PercentageCalculator{rate: rate}
}

// CalculateTax computes subtotal * rate, rounded to the nearest cent.
func (c *PercentageCalculator) CalculateTax(ctx context.Context, params TaxParams) (int64, error) {
	if params.SubtotalCents <= 0 || c.rate <= 0 {
		return 0, nil
	}
	return int64(math.Round(float64(params.SubtotalCents) * c.rate)), nil
}
