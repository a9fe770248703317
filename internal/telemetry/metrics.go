package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for client-side observability: API call
// performance plus cart and catalog activity.
type Metrics struct {
	// Remote API performance
	APIRequestDuration *prometheus.HistogramVec
	APIRequestErrors   *prometheus.CounterVec

	// Catalog fetches
	CatalogFetches     *prometheus.CounterVec
	CatalogFetchErrors *prometheus.CounterVec

	// Cart activity
	CartUpdates *prometheus.CounterVec
	CartValue   prometheus.Histogram
	CartCleared prometheus.Counter

	// Orders
	OrdersCreated prometheus.Counter
}

// NewMetrics creates and registers all client metrics on reg. Pass a
// throwaway registry in tests to avoid duplicate registration panics.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "smartg5"
	}
	factory := promauto.With(reg)

	return &Metrics{
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Remote API call duration by endpoint",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint"},
		),
		APIRequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_errors_total",
				Help:      "Total failed remote API calls by endpoint",
			},
			[]string{"endpoint"},
		),
		CatalogFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "fetches_total",
				Help:      "Total catalog fetches by resource",
			},
			[]string{"resource"}, // resource: categories, products, new_products, sale_products
		),
		CatalogFetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "catalog",
				Name:      "fetch_errors_total",
				Help:      "Total failed catalog fetches by resource",
			},
			[]string{"resource"},
		),
		CartUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "updates_total",
				Help:      "Total cart update operations",
			},
			[]string{"action"}, // action: add, remove, update
		),
		CartValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "value_cents",
				Help:      "Cart subtotal after each mutation",
				Buckets:   []float64{1000, 2500, 5000, 7500, 10000, 25000, 50000, 100000},
			},
		),
		CartCleared: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cart",
				Name:      "cleared_total",
				Help:      "Total carts cleared",
			},
		),
		OrdersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "orders",
				Name:      "created_total",
				Help:      "Total orders created from the cart",
			},
		),
	}
}
