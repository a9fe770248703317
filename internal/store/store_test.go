package store_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartg5/storefront/internal/domain"
	"github.com/smartg5/storefront/internal/storage"
	"github.com/smartg5/storefront/internal/store"
)

// fakeClient is a scriptable store.Client. Zero value returns empty
// collections; set the error or result fields to steer a test.
type fakeClient struct {
	categories  []domain.Category
	products    []domain.Product
	newProducts []domain.Product
	sale        []domain.Product
	fetchErr    error

	addErr    error
	removeErr error
	addCalls  int
	removes   []string

	order    domain.Order
	orderErr error

	dealer    domain.DealerStatus
	dealerErr error
}

func (f *fakeClient) Categories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, f.fetchErr
}

func (f *fakeClient) ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return f.products, f.fetchErr
}

func (f *fakeClient) NewProducts(ctx context.Context) ([]domain.Product, error) {
	return f.newProducts, f.fetchErr
}

func (f *fakeClient) SaleProducts(ctx context.Context) ([]domain.Product, error) {
	return f.sale, f.fetchErr
}

func (f *fakeClient) AddToCart(ctx context.Context, productID string, quantity int64) error {
	f.addCalls++
	return f.addErr
}

func (f *fakeClient) RemoveFromCart(ctx context.Context, productID string) error {
	f.removes = append(f.removes, productID)
	return f.removeErr
}

func (f *fakeClient) CreateOrder(ctx context.Context) (domain.Order, error) {
	return f.order, f.orderErr
}

func (f *fakeClient) DealerStatus(ctx context.Context) (domain.DealerStatus, error) {
	return f.dealer, f.dealerErr
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, client *fakeClient, st storage.Storage, opts store.Options) *store.Store {
	t.Helper()
	if st == nil {
		st = storage.NewMockStorage()
	}
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	s, err := store.New(client, st, opts)
	require.NoError(t, err)
	return s
}

func testProduct(id, name string, priceCents int64) domain.Product {
	return domain.Product{ID: id, Name: name, PriceCents: priceCents}
}

// Test_Store_New_RequiresDependencies validates constructor input checks.
func Test_Store_New_RequiresDependencies(t *testing.T) {
	_, err := store.New(nil, storage.NewMockStorage(), store.Options{})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	_, err = store.New(&fakeClient{}, nil, store.Options{})
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

// Test_Store_Fetch_StaleButAvailable validates the refresh failure policy:
// a failed fetch records the error but keeps the previously loaded data.
func Test_Store_Fetch_StaleButAvailable(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		products: []domain.Product{testProduct("1", "Drill", 10000)},
	}
	s := newTestStore(t, client, nil, store.Options{})

	require.NoError(t, s.FetchProducts(ctx, ""))
	require.Len(t, s.Products(), 1)
	assert.NoError(t, s.LastError(store.ResourceProducts))

	// Backend goes away; the refresh fails but the screen keeps its data.
	client.fetchErr = domain.Unavailable(nil, "api.products", "backend down")
	err := s.FetchProducts(ctx, "")
	assert.Error(t, err)
	assert.Len(t, s.Products(), 1, "previous data survives a failed refresh")
	assert.Error(t, s.LastError(store.ResourceProducts))

	// Recovery clears the flag.
	client.fetchErr = nil
	require.NoError(t, s.FetchProducts(ctx, ""))
	assert.NoError(t, s.LastError(store.ResourceProducts))
}

// Test_Store_Fetch_PerResourceErrors validates that each collection tracks
// its own error flag independently.
func Test_Store_Fetch_PerResourceErrors(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		categories: []domain.Category{{ID: "7", Name: "Power Tools"}},
	}
	s := newTestStore(t, client, nil, store.Options{})

	require.NoError(t, s.FetchCategories(ctx))

	client.fetchErr = domain.Unavailable(nil, "api.products", "backend down")
	_ = s.FetchNewProducts(ctx)

	assert.NoError(t, s.LastError(store.ResourceCategories))
	assert.Error(t, s.LastError(store.ResourceNewProducts))
	assert.NoError(t, s.LastError(store.ResourceSale), "never fetched, never failed")
}

// Test_Store_Snapshots_AreCopies validates that mutating a returned slice
// does not corrupt store state.
func Test_Store_Snapshots_AreCopies(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		products: []domain.Product{testProduct("1", "Drill", 10000)},
	}
	s := newTestStore(t, client, nil, store.Options{})
	require.NoError(t, s.FetchProducts(ctx, ""))

	snapshot := s.Products()
	snapshot[0].Name = "mutated"

	assert.Equal(t, "Drill", s.Products()[0].Name)
}

// Test_Store_SearchProducts validates query filtering over name and
// category, case-insensitively.
func Test_Store_SearchProducts(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		products: []domain.Product{
			{ID: "1", Name: "Cordless Drill", Category: "Power Tools"},
			{ID: "2", Name: "Hammer", Category: "Hand Tools"},
			{ID: "3", Name: "Circular Saw", Category: "Power Tools"},
		},
	}
	s := newTestStore(t, client, nil, store.Options{})
	require.NoError(t, s.FetchProducts(ctx, ""))

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "empty query returns everything", query: "", wantIDs: []string{"1", "2", "3"}},
		{name: "matches name", query: "drill", wantIDs: []string{"1"}},
		{name: "matches category", query: "power", wantIDs: []string{"1", "3"}},
		{name: "case insensitive", query: "HAMMER", wantIDs: []string{"2"}},
		{name: "whitespace trimmed", query: "  saw  ", wantIDs: []string{"3"}},
		{name: "no match", query: "welder", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetSearchQuery(tt.query)
			got := s.SearchProducts()
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

// Test_Store_CanOrder_FailsOpen validates the advisory ordering gate: an
// unreachable check never locks the dealer out.
func Test_Store_CanOrder_FailsOpen(t *testing.T) {
	ctx := context.Background()

	client := &fakeClient{
		dealer: domain.DealerStatus{CanOrder: false, Reason: "overdue_invoice"},
	}
	s := newTestStore(t, client, nil, store.Options{})
	status := s.CanOrder(ctx)
	assert.False(t, status.CanOrder, "explicit backend block is honored")

	client.dealerErr = domain.Unavailable(nil, "api.dealer_status", "backend down")
	status = s.CanOrder(ctx)
	assert.True(t, status.CanOrder, "check failure fails open")
}
