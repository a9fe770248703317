// Package store implements the client-side state store: the single source
// of truth for catalog listings and the dealer's cart and wishlist. It
// mediates between the remote API, the durable device-local cache, and the
// UI screens reading snapshots.
//
// Any goroutine may read a snapshot while mutations serialize behind a
// mutex. Each mutation is one atomic in-memory transition; persistence and
// remote calls happen outside the lock, so readers never observe torn
// state.
package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/smartg5/storefront/internal/domain"
	"github.com/smartg5/storefront/internal/shipping"
	"github.com/smartg5/storefront/internal/storage"
	"github.com/smartg5/storefront/internal/tax"
	"github.com/smartg5/storefront/internal/telemetry"
)

// Client is the slice of the API surface the store consumes.
// *api.Client satisfies it; tests substitute a fake.
type Client interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	NewProducts(ctx context.Context) ([]domain.Product, error)
	SaleProducts(ctx context.Context) ([]domain.Product, error)
	AddToCart(ctx context.Context, productID string, quantity int64) error
	RemoveFromCart(ctx context.Context, productID string) error
	CreateOrder(ctx context.Context) (domain.Order, error)
	DealerStatus(ctx context.Context) (domain.DealerStatus, error)
}

// Resource names a fetched collection for per-resource error flags.
type Resource string

const (
	ResourceCategories  Resource = "categories"
	ResourceProducts    Resource = "products"
	ResourceNewProducts Resource = "new_products"
	ResourceSale        Resource = "sale_products"
)

// Store holds the in-memory application state. Construct with New, load
// the durable cache once with Load, then share freely across goroutines.
type Store struct {
	client   Client
	storage  storage.Storage
	shipping shipping.Provider
	tax      tax.Calculator
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	validate *validator.Validate

	// remoteSync mirrors cart mutations to the backend cart endpoints.
	// Local state is authoritative either way.
	remoteSync bool

	mu          sync.RWMutex
	categories  []domain.Category
	products    []domain.Product
	newProducts []domain.Product
	sale        []domain.Product
	cart        []domain.CartLine
	wishlist    []domain.Product
	errs        map[Resource]error
	searchQuery string
}

// Options configures optional Store collaborators and policies.
type Options struct {
	// Shipping computes the shipping component of totals.
	// Defaults to free shipping.
	Shipping shipping.Provider

	// Tax computes the tax component of totals. Defaults to no tax.
	Tax tax.Calculator

	// Logger receives persistence and reconciliation logs.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics, when set, records cart and fetch activity.
	Metrics *telemetry.Metrics

	// RemoteCartSync mirrors cart adds/removes to the backend.
	RemoteCartSync bool
}

// New creates a Store. client and store are required; everything else has
// a usable default.
func New(apiClient Client, store storage.Storage, opts Options) (*Store, error) {
	if apiClient == nil {
		return nil, domain.Invalid("store.new", "api client is required")
	}
	if store == nil {
		return nil, domain.Invalid("store.new", "storage is required")
	}

	shippingProvider := opts.Shipping
	if shippingProvider == nil {
		shippingProvider = shipping.NewFreeShippingProvider()
	}
	taxCalculator := opts.Tax
	if taxCalculator == nil {
		taxCalculator = tax.NewNoTaxCalculator()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		client:     apiClient,
		storage:    store,
		shipping:   shippingProvider,
		tax:        taxCalculator,
		logger:     logger,
		metrics:    opts.Metrics,
		validate:   validator.New(),
		remoteSync: opts.RemoteCartSync,
		errs:       make(map[Resource]error),
	}, nil
}

// =============================================================================
// CATALOG FETCH OPERATIONS
// =============================================================================
// All fetches share the stale-but-available policy: a failure records the
// per-resource error and leaves previously loaded data intact, so a failed
// refresh never blanks a screen. Retry is always a manual re-invocation.

// FetchCategories refreshes the category collection from the remote API.
func (s *Store) FetchCategories(ctx context.Context) error {
	categories, err := s.client.Categories(ctx)
	if err != nil {
		s.recordFetch(ResourceCategories, err)
		return err
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	s.recordFetch(ResourceCategories, nil)
	return nil
}

// FetchProducts refreshes the product collection. An empty categoryID
// requests the default/general product set.
func (s *Store) FetchProducts(ctx context.Context, categoryID string) error {
	products, err := s.client.ProductsByCategory(ctx, categoryID)
	if err != nil {
		s.recordFetch(ResourceProducts, err)
		return err
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	s.recordFetch(ResourceProducts, nil)
	return nil
}

// FetchNewProducts refreshes the new-arrivals set for the home screen.
func (s *Store) FetchNewProducts(ctx context.Context) error {
	products, err := s.client.NewProducts(ctx)
	if err != nil {
		s.recordFetch(ResourceNewProducts, err)
		return err
	}

	s.mu.Lock()
	s.newProducts = products
	s.mu.Unlock()
	s.recordFetch(ResourceNewProducts, nil)
	return nil
}

// FetchSaleProducts refreshes the sale/deals set.
func (s *Store) FetchSaleProducts(ctx context.Context) error {
	products, err := s.client.SaleProducts(ctx)
	if err != nil {
		s.recordFetch(ResourceSale, err)
		return err
	}

	s.mu.Lock()
	s.sale = products
	s.mu.Unlock()
	s.recordFetch(ResourceSale, nil)
	return nil
}

func (s *Store) recordFetch(resource Resource, err error) {
	s.mu.Lock()
	if err != nil {
		s.errs[resource] = err
	} else {
		delete(s.errs, resource)
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.CatalogFetches.WithLabelValues(string(resource)).Inc()
		if err != nil {
			s.metrics.CatalogFetchErrors.WithLabelValues(string(resource)).Inc()
		}
	}
}

// =============================================================================
// SNAPSHOTS
// =============================================================================
// Snapshot accessors return copies: callers may range over results while
// other goroutines mutate the store.

// Categories returns the current category collection.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

// Products returns the current product collection.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// NewProducts returns the current new-arrivals set.
func (s *Store) NewProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.newProducts...)
}

// SaleProducts returns the current sale set.
func (s *Store) SaleProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.sale...)
}

// LastError returns the recorded error for a resource, or nil if the last
// fetch succeeded (or none happened yet). Prior data stays available even
// while an error is recorded.
func (s *Store) LastError(resource Resource) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs[resource]
}

// =============================================================================
// SEARCH
// =============================================================================

// SetSearchQuery records the active search query.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	s.searchQuery = query
	s.mu.Unlock()
}

// SearchQuery returns the active search query.
func (s *Store) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// SearchProducts filters the product collection by the active query,
// matching name and category case-insensitively. An empty query returns
// everything.
func (s *Store) SearchProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(s.searchQuery))
	if query == "" {
		return append([]domain.Product(nil), s.products...)
	}

	matched := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Category), query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// =============================================================================
// DEALER GATE
// =============================================================================

// CanOrder checks the dealer ordering gate. The gate fails open: when the
// check itself cannot complete, ordering stays enabled and the backend
// remains the real enforcement point.
func (s *Store) CanOrder(ctx context.Context) domain.DealerStatus {
	status, err := s.client.DealerStatus(ctx)
	if err != nil {
		s.logger.Warn("dealer status check failed, failing open", "error", err)
		return domain.DealerStatus{CanOrder: true}
	}
	return status
}
