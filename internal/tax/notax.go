package tax

import "context"

// NoTaxCalculator always returns zero tax. The default: the backend prices
// dealer orders tax-inclusive.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a calculator that never charges tax.
func NewNoTaxCalculator() Calculator {
	return &NoTaxCalculator{}
}

// CalculateTax always returns zero.
func (c *NoTaxCalculator) CalculateTax(ctx context.Context, params TaxParams) (int64, error) {
	return 0, nil
}
