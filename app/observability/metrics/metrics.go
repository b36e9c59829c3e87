package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	CityResolveTotal           metric.Int64Counter
	DatasetLoadDurationSeconds metric.Float64Histogram
	DatasetFallbackTotal       metric.Int64Counter
	PrerenderPagesTotal        metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// NewAppMetrics creates every instrument on the given meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.CityResolveTotal, err = meter.Int64Counter(
		"city_resolve_total",
		metric.WithDescription("Total number of city resolutions by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create city_resolve_total: %w", err)
	}

	m.DatasetLoadDurationSeconds, err = meter.Float64Histogram(
		"dataset_load_duration_seconds",
		metric.WithDescription("Duration of city dataset loads in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset_load_duration_seconds: %w", err)
	}

	m.DatasetFallbackTotal, err = meter.Int64Counter(
		"dataset_fallback_total",
		metric.WithDescription("Total number of times the embedded fallback table was used, by reason"),
		metric.WithUnit("{fallback}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset_fallback_total: %w", err)
	}

	m.PrerenderPagesTotal, err = meter.Int64Counter(
		"prerender_pages_total",
		metric.WithDescription("Total number of city pages written by the pre-renderer"),
		metric.WithUnit("{page}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prerender_pages_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := NewAppMetrics(otel.GetMeterProvider().Meter("green-city-pages"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
