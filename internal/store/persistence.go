package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smartg5/storefront/internal/domain"
	"github.com/smartg5/storefront/internal/storage"
)

// Storage keys for the durable device-local cache.
const (
	cartKey     = "smartg5.cart"
	wishlistKey = "smartg5.wishlist"
)

// Load restores the cart and wishlist from durable storage. Called once at
// startup before the store is shared. Missing keys mean a fresh install;
// a corrupt blob is logged and treated as empty rather than blocking
// startup. Individual records that fail validation are dropped, and
// out-of-range quantities are coerced, so one bad record never discards
// the rest.
func (s *Store) Load(ctx context.Context) error {
	cart, err := s.loadCart(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	wishlist, err := s.loadWishlist(ctx)
	if err != nil {
		return fmt.Errorf("failed to load wishlist: %w", err)
	}

	s.mu.Lock()
	s.cart = cart
	s.wishlist = wishlist
	s.mu.Unlock()
	return nil
}

func (s *Store) loadCart(ctx context.Context) ([]domain.CartLine, error) {
	data, err := s.storage.Get(ctx, cartKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var persisted []domain.CartLine
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.logger.Warn("discarding corrupt persisted cart", "error", err)
		return nil, nil
	}

	lines := make([]domain.CartLine, 0, len(persisted))
	for _, line := range persisted {
		if err := s.validate.Struct(line.Product); err != nil {
			s.logger.Warn("dropping invalid cart record", "product_id", line.Product.ID, "error", err)
			continue
		}
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return lines, nil
}

func (s *Store) loadWishlist(ctx context.Context) ([]domain.Product, error) {
	data, err := s.storage.Get(ctx, wishlistKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var persisted []domain.ProductSnapshot
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.logger.Warn("discarding corrupt persisted wishlist", "error", err)
		return nil, nil
	}

	products := make([]domain.Product, 0, len(persisted))
	for _, snap := range persisted {
		if err := s.validate.Struct(snap); err != nil {
			s.logger.Warn("dropping invalid wishlist record", "product_id", snap.ID, "error", err)
			continue
		}
		products = append(products, domain.Product{
			ID:              snap.ID,
			Name:            snap.Name,
			Image:           snap.Image,
			PriceCents:      snap.PriceCents,
			OfferPriceCents: snap.OfferPriceCents,
		})
	}
	if len(products) == 0 {
		return nil, nil
	}
	return products, nil
}

// persistCart writes the current cart to durable storage. Best-effort: a
// write failure is logged, the in-memory state stays authoritative.
func (s *Store) persistCart(ctx context.Context) {
	s.mu.RLock()
	lines := append([]domain.CartLine(nil), s.cart...)
	s.mu.RUnlock()

	data, err := json.Marshal(lines)
	if err != nil {
		s.logger.Warn("failed to encode cart for persistence", "error", err)
		return
	}
	if err := s.storage.Put(ctx, cartKey, data); err != nil {
		s.logger.Warn("failed to persist cart", "error", err)
	}
}

// persistWishlist writes the current wishlist to durable storage as product
// snapshots. Best-effort, same policy as persistCart.
func (s *Store) persistWishlist(ctx context.Context) {
	s.mu.RLock()
	snaps := make([]domain.ProductSnapshot, 0, len(s.wishlist))
	for _, p := range s.wishlist {
		snaps = append(snaps, p.Snapshot())
	}
	s.mu.RUnlock()

	data, err := json.Marshal(snaps)
	if err != nil {
		s.logger.Warn("failed to encode wishlist for persistence", "error", err)
		return
	}
	if err := s.storage.Put(ctx, wishlistKey, data); err != nil {
		s.logger.Warn("failed to persist wishlist", "error", err)
	}
}
