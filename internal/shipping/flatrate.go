package shipping

import "context"

// FlatRateProvider charges a fixed fee whenever the cart is non-empty.
// An empty cart ships nothing and costs nothing.
type FlatRateProvider struct {
	feeCents int64
}

// NewFlatRateProvider creates a flat-rate shipping provider.
func NewFlatRateProvider(feeCents int64) Provider {
	return &FlatRateProvider{feeCents: feeCents}
}

// Cost returns the flat fee for non-empty carts, zero otherwise.
func (p *FlatRateProvider) Cost(ctx context.Context, params CostParams) (int64, error) {
	if params.ItemCount <= 0 {
		return 0, nil
	}
	return p.feeCents, nil
}

// FreeShippingProvider never charges shipping. Used when the backend quotes
// shipping itself at order time.
type FreeShippingProvider struct{}

// NewFreeShippingProvider creates a provider that always returns zero.
func NewFreeShippingProvider() Provider {
	return &FreeShippingProvider{}
}

// Cost always returns zero.
func (p *FreeShippingProvider) Cost(ctx context.Context, params CostParams) (int64, error) {
	return 0, nil
}
