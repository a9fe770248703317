package domain

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrEmptyCart       = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrInvalidQuantity = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrCartNotFound    = &Error{Code: ENOTFOUND, Message: "Cart not found"}
)

// ProductSnapshot freezes the display-relevant product fields at the moment
// a product enters the cart. Cart lines deliberately do not reference the
// live catalog: a later catalog refresh must not silently change the total
// of a cart the user already built.
type ProductSnapshot struct {
	ID              string `json:"id" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Image           string `json:"image,omitempty"`
	PriceCents      int64  `json:"price_cents"`
	OfferPriceCents int64  `json:"offer_price_cents,omitempty"`
}

// EffectivePriceCents mirrors Product.EffectivePriceCents for frozen lines.
func (s ProductSnapshot) EffectivePriceCents() int64 {
	if s.OfferPriceCents > 0 {
		return s.OfferPriceCents
	}
	return s.PriceCents
}

// Snapshot extracts the frozen cart view of a product.
func (p Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:              p.ID,
		Name:            p.Name,
		Image:           p.Image,
		PriceCents:      p.PriceCents,
		OfferPriceCents: p.OfferPriceCents,
	}
}

// CartLine is one product held in the cart. The cart holds exactly one line
// per distinct product ID; adding an already-present product increments the
// existing line instead of duplicating it.
type CartLine struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int64           `json:"quantity" validate:"gte=1"`
}

// SubtotalCents returns effective price times quantity for this line.
func (l CartLine) SubtotalCents() int64 {
	return l.Product.EffectivePriceCents() * l.Quantity
}

// CartTotals aggregates derived cart amounts. It is recomputed on every
// read and never stored.
type CartTotals struct {
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	TotalCents    int64
	ItemCount     int64
}
