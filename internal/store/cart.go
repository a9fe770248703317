package store

import (
	"context"

	"github.com/smartg5/storefront/internal/domain"
	"github.com/smartg5/storefront/internal/shipping"
	"github.com/smartg5/storefront/internal/tax"
)

// =============================================================================
// CART OPERATIONS
// =============================================================================
// The local cart is authoritative. Every mutation applies in memory first,
// then persists best-effort, then (when enabled) mirrors to the backend
// cart endpoints. A remote failure is returned to the caller but never
// rolls back the local mutation; the backend reconciles at order time.

// AddToCart adds quantity units of product to the cart, merging into the
// existing line when the product is already present. The line freezes a
// snapshot of the product at add time, so later catalog refreshes do not
// reprice items already in the cart.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int64) error {
	if product.ID == "" {
		return domain.Invalid("store.add_to_cart", "product id is required")
	}
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	merged := false
	for i := range s.cart {
		if s.cart[i].Product.ID == product.ID {
			s.cart[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart = append(s.cart, domain.CartLine{
			Product:  product.Snapshot(),
			Quantity: quantity,
		})
	}
	s.mu.Unlock()

	s.persistCart(ctx)
	s.recordCartUpdate("add")

	if s.remoteSync {
		if err := s.client.AddToCart(ctx, product.ID, quantity); err != nil {
			s.logger.Warn("remote cart add failed", "product_id", product.ID, "error", err)
			return err
		}
	}
	return nil
}

// RemoveFromCart deletes the line for productID. Removing an absent product
// is a no-op.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	removed := false
	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		return nil
	}

	s.persistCart(ctx)
	s.recordCartUpdate("remove")

	if s.remoteSync {
		if err := s.client.RemoveFromCart(ctx, productID); err != nil {
			s.logger.Warn("remote cart remove failed", "product_id", productID, "error", err)
			return err
		}
	}
	return nil
}

// UpdateCartQuantity sets the quantity for an existing line. A quantity of
// zero or less removes the line. Updating an absent product returns
// ErrCartNotFound.
func (s *Store) UpdateCartQuantity(ctx context.Context, productID string, quantity int64) error {
	if quantity < 1 {
		return s.RemoveFromCart(ctx, productID)
	}

	s.mu.Lock()
	updated := false
	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			s.cart[i].Quantity = quantity
			updated = true
			break
		}
	}
	s.mu.Unlock()

	if !updated {
		return domain.ErrCartNotFound
	}

	s.persistCart(ctx)
	s.recordCartUpdate("update")
	return nil
}

// ClearCart empties the cart and deletes its durable record.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, cartKey); err != nil {
		s.logger.Warn("failed to delete persisted cart", "error", err)
	}
	if s.metrics != nil {
		s.metrics.CartCleared.Inc()
	}
	return nil
}

// Cart returns a copy of the current cart lines in insertion order.
func (s *Store) Cart() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CartLine(nil), s.cart...)
}

// CartItemCount returns the total unit count across all lines, for the
// cart badge.
func (s *Store) CartItemCount() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return itemCount(s.cart)
}

// CartTotals computes subtotal, shipping, tax and grand total for the
// current cart. Provider failures degrade to a zero component rather than
// blocking the cart screen.
func (s *Store) CartTotals(ctx context.Context) domain.CartTotals {
	s.mu.RLock()
	lines := append([]domain.CartLine(nil), s.cart...)
	s.mu.RUnlock()

	var subtotal int64
	for _, line := range lines {
		subtotal += line.SubtotalCents()
	}
	count := itemCount(lines)

	shippingCents, err := s.shipping.Cost(ctx, shipping.CostParams{
		SubtotalCents: subtotal,
		ItemCount:     count,
	})
	if err != nil {
		s.logger.Warn("shipping cost calculation failed", "error", err)
		shippingCents = 0
	}

	taxCents, err := s.tax.CalculateTax(ctx, tax.TaxParams{SubtotalCents: subtotal})
	if err != nil {
		s.logger.Warn("tax calculation failed", "error", err)
		taxCents = 0
	}

	return domain.CartTotals{
		SubtotalCents: subtotal,
		ShippingCents: shippingCents,
		TaxCents:      taxCents,
		TotalCents:    subtotal + shippingCents + taxCents,
		ItemCount:     count,
	}
}

func itemCount(lines []domain.CartLine) int64 {
	var n int64
	for _, line := range lines {
		n += line.Quantity
	}
	return n
}

func (s *Store) recordCartUpdate(action string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CartUpdates.WithLabelValues(action).Inc()

	s.mu.RLock()
	var subtotal int64
	for _, line := range s.cart {
		subtotal += line.SubtotalCents()
	}
	s.mu.RUnlock()
	s.metrics.CartValue.Observe(float64(subtotal))
}

// =============================================================================
// WISHLIST OPERATIONS
// =============================================================================

// ToggleWishlist adds product to the wishlist, or removes it when already
// present. Set semantics: no duplicates, no quantities.
func (s *Store) ToggleWishlist(ctx context.Context, product domain.Product) error {
	if product.ID == "" {
		return domain.Invalid("store.toggle_wishlist", "product id is required")
	}

	s.mu.Lock()
	removed := false
	for i := range s.wishlist {
		if s.wishlist[i].ID == product.ID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		s.wishlist = append(s.wishlist, product)
	}
	s.mu.Unlock()

	s.persistWishlist(ctx)
	return nil
}

// Wishlist returns a copy of the current wishlist in insertion order.
func (s *Store) Wishlist() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.wishlist...)
}

// InWishlist reports whether productID is wishlisted, for the heart toggle.
func (s *Store) InWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.wishlist {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// =============================================================================
// CHECKOUT
// =============================================================================

// CreateOrder submits the cart as a dealer order. An empty cart is rejected
// before any network call. On success the local cart empties and its
// durable record is deleted; on failure the cart is untouched so the dealer
// can retry.
func (s *Store) CreateOrder(ctx context.Context) (domain.Order, error) {
	s.mu.RLock()
	empty := len(s.cart) == 0
	s.mu.RUnlock()
	if empty {
		return domain.Order{}, domain.ErrEmptyCart
	}

	order, err := s.client.CreateOrder(ctx)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.ClearCart(ctx); err != nil {
		s.logger.Warn("failed to clear cart after order", "order_id", order.ID, "error", err)
	}
	if s.metrics != nil {
		s.metrics.OrdersCreated.Inc()
	}
	return order, nil
}
