package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the portal's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal      metric.Int64Counter
	HTTPRequestDuration    metric.Float64Histogram
	LoginAttemptsTotal     metric.Int64Counter
	GuardDecisionsTotal    metric.Int64Counter
	BackendRequestDuration metric.Float64Histogram
	BackendErrorsTotal     metric.Int64Counter
	TemplateRenderDuration metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics builds the instruments once from the global MeterProvider.
// Call it after the provider is installed; before that the global provider is a no-op.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("lms-portal")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.LoginAttemptsTotal, err = meter.Int64Counter(
			"login_attempts_total",
			metric.WithDescription("Login attempts by outcome"),
			metric.WithUnit("{attempt}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create login_attempts_total: %v", err)
		}

		m.GuardDecisionsTotal, err = meter.Int64Counter(
			"route_guard_decisions_total",
			metric.WithDescription("Route guard decisions by outcome"),
			metric.WithUnit("{decision}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create route_guard_decisions_total: %v", err)
		}

		m.BackendRequestDuration, err = meter.Float64Histogram(
			"backend_request_duration_seconds",
			metric.WithDescription("Duration of calls to the LMS backend in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create backend_request_duration_seconds: %v", err)
		}

		m.BackendErrorsTotal, err = meter.Int64Counter(
			"backend_errors_total",
			metric.WithDescription("Failed calls to the LMS backend"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create backend_errors_total: %v", err)
		}

		m.TemplateRenderDuration, err = meter.Float64Histogram(
			"template_render_duration_seconds",
			metric.WithDescription("Duration of template rendering in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create template_render_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the instruments, initialising them against the current
// global provider on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
