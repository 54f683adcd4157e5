package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the pipeline metric instruments.
type AppMetrics struct {
	GenerationDurationSeconds metric.Float64Histogram
	GenerationFailuresTotal   metric.Int64Counter
	ProviderFailuresTotal     metric.Int64Counter
	ImageFallbacksTotal       metric.Int64Counter
	WeatherFallbacksTotal     metric.Int64Counter
	RecommendationsTotal      metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, from the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TravelRecommendationAPI")
		var err error
		m := &AppMetrics{}

		m.GenerationDurationSeconds, err = meter.Float64Histogram(
			"generation_duration_seconds",
			metric.WithDescription("Duration of LLM generation calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_duration_seconds: %v", err)
		}

		m.GenerationFailuresTotal, err = meter.Int64Counter(
			"generation_failures_total",
			metric.WithDescription("Total generation or schema-validation failures"),
			metric.WithUnit("{failure}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_failures_total: %v", err)
		}

		m.ProviderFailuresTotal, err = meter.Int64Counter(
			"provider_failures_total",
			metric.WithDescription("Total outbound provider call failures"),
			metric.WithUnit("{failure}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create provider_failures_total: %v", err)
		}

		m.ImageFallbacksTotal, err = meter.Int64Counter(
			"image_fallbacks_total",
			metric.WithDescription("Total image lookups served by the placeholder fallback"),
			metric.WithUnit("{fallback}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create image_fallbacks_total: %v", err)
		}

		m.WeatherFallbacksTotal, err = meter.Int64Counter(
			"weather_fallbacks_total",
			metric.WithDescription("Total weather lookups answered with the sentinel"),
			metric.WithUnit("{fallback}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create weather_fallbacks_total: %v", err)
		}

		m.RecommendationsTotal, err = meter.Int64Counter(
			"recommendations_total",
			metric.WithDescription("Total destination recommendations returned"),
			metric.WithUnit("{recommendation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create recommendations_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
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
