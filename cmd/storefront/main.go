package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartg5/storefront/internal"
	"github.com/smartg5/storefront/internal/api"
	"github.com/smartg5/storefront/internal/catalog"
	"github.com/smartg5/storefront/internal/shipping"
	"github.com/smartg5/storefront/internal/storage"
	"github.com/smartg5/storefront/internal/store"
	"github.com/smartg5/storefront/internal/tax"
	"github.com/smartg5/storefront/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Metrics
	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(cfg.MetricsNamespace, registry)

	// ==========================================================================
	// Remote API client
	// ==========================================================================

	normalizer := catalog.NewNormalizer(cfg.AssetBaseURL)
	client, err := api.NewClient(cfg.APIBaseURL, normalizer, api.Options{
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second},
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize api client: %w", err)
	}

	// ==========================================================================
	// Durable device-local storage
	// ==========================================================================

	st, err := storage.NewStorage(storage.Config{
		Provider: cfg.Storage.Provider,
		Path:     cfg.Storage.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// ==========================================================================
	// Client state store
	// ==========================================================================

	var shippingProvider shipping.Provider
	if cfg.Checkout.ShippingFlatFeeCents > 0 {
		shippingProvider = shipping.NewFlatRateProvider(cfg.Checkout.ShippingFlatFeeCents)
	} else {
		shippingProvider = shipping.NewFreeShippingProvider()
	}

	var taxCalculator tax.Calculator
	if cfg.Checkout.TaxRate > 0 {
		taxCalculator = tax.NewPercentageCalculator(cfg.Checkout.TaxRate)
	} else {
		taxCalculator = tax.NewNoTaxCalculator()
	}

	appStore, err := store.New(client, st, store.Options{
		Shipping:       shippingProvider,
		Tax:            taxCalculator,
		Logger:         logger,
		Metrics:        metrics,
		RemoteCartSync: cfg.RemoteCartSync,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}

	// Restore the cart and wishlist persisted by previous runs
	if err := appStore.Load(ctx); err != nil {
		return fmt.Errorf("failed to load persisted state: %w", err)
	}
	logger.Info("Persisted state restored",
		"cart_items", appStore.CartItemCount(),
		"wishlist_items", len(appStore.Wishlist()))

	// ==========================================================================
	// Initial catalog fetches (home screen data)
	// ==========================================================================

	if err := appStore.FetchCategories(ctx); err != nil {
		logger.Warn("initial category fetch failed", "error", err)
	}
	if err := appStore.FetchNewProducts(ctx); err != nil {
		logger.Warn("initial new products fetch failed", "error", err)
	}
	if err := appStore.FetchSaleProducts(ctx); err != nil {
		logger.Warn("initial sale products fetch failed", "error", err)
	}
	if err := appStore.FetchProducts(ctx, ""); err != nil {
		logger.Warn("initial product fetch failed", "error", err)
	}

	logger.Info("Catalog loaded",
		"categories", len(appStore.Categories()),
		"products", len(appStore.Products()),
		"new", len(appStore.NewProducts()),
		"sale", len(appStore.SaleProducts()))

	totals := appStore.CartTotals(ctx)
	logger.Info("Cart totals",
		"subtotal_cents", totals.SubtotalCents,
		"shipping_cents", totals.ShippingCents,
		"tax_cents", totals.TaxCents,
		"total_cents", totals.TotalCents,
		"items", totals.ItemCount)

	status := appStore.CanOrder(ctx)
	logger.Info("Dealer status", "can_order", status.CanOrder, "message", status.Message)

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
