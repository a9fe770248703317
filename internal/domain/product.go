package domain

import "math"

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// Product represents a sellable item as consumed by the storefront screens.
// All monetary amounts are integer cents. Instances are produced exclusively
// by the catalog normalizer; raw API records never leak past that boundary.
type Product struct {
	ID          string
	Name        string
	Description string
	Slug        string
	SKU         string
	Brand       string
	Model       string

	Category   string
	CategoryID string

	// PriceCents is the base price. OfferPriceCents is the promotional
	// price; zero means "no offer".
	PriceCents      int64
	OfferPriceCents int64

	// Image is the primary image URL; empty means no image (UI shows a
	// placeholder). Images is the ordered gallery, possibly empty.
	Image  string
	Images []string

	Rating        float64
	FastDelivery  bool
	InStock       bool
	StockQuantity int64
	IsNew         bool
	IsSale        bool
}

// EffectivePriceCents returns the price actually charged: the offer price
// when set and nonzero, otherwise the base price.
func (p Product) EffectivePriceCents() int64 {
	if p.OfferPriceCents > 0 {
		return p.OfferPriceCents
	}
	return p.PriceCents
}

// DiscountPercentage derives the discount badge value from the current
// price fields. It is computed on every call rather than stored, so it can
// never go stale when prices change. Source data where the offer price
// exceeds the base price is clamped to 0 (no badge), not treated as an
// error.
func (p Product) DiscountPercentage() int {
	if p.PriceCents <= 0 || p.OfferPriceCents <= 0 {
		return 0
	}
	if p.OfferPriceCents >= p.PriceCents {
		return 0
	}
	ratio := float64(p.OfferPriceCents) / float64(p.PriceCents)
	return int(math.Round((1 - ratio) * 100))
}

// HasDiscount reports whether a discount badge should be shown.
func (p Product) HasDiscount() bool {
	return p.DiscountPercentage() > 0
}

// Category groups products for the browse screens. Some API responses nest
// products under categories; others return products as a separately fetched
// flat list, in which case Products is empty.
type Category struct {
	ID           string
	Name         string
	Slug         string
	Image        string
	Description  string
	ProductCount int
	Products     []Product
}
