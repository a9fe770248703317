// Package shipping computes the shipping component of cart totals.
package shipping

import "context"

// Provider defines the interface for shipping cost calculation.
// Implementations: FlatRateProvider, FreeShippingProvider.
type Provider interface {
	// Cost returns the shipping charge in cents for the given cart.
	Cost(ctx context.Context, params CostParams) (int64, error)
}

// CostParams describes the cart being shipped.
type CostParams struct {
	SubtotalCents int64
	ItemCount     int64
}
