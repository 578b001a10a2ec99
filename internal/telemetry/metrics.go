package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	PatientTotal       metric.Int64Counter
	ConsultationTotal  metric.Int64Counter
	ModelAttemptsTotal metric.Int64Counter
	ModelDurationMs    metric.Float64Histogram
	FallbackExhausted  metric.Int64Counter

	// Auth metrics
	AuthFailuresTotal       metric.Int64Counter
	PermissionCheckDuration metric.Float64Histogram
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/mediassist/clinical-service")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	patientTotal, err := meter.Int64Counter(
		"patient_total",
		metric.WithDescription("Total number of patient record operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	consultationTotal, err := meter.Int64Counter(
		"consultation_total",
		metric.WithDescription("Total number of assistant consultations"),
		metric.WithUnit("{consultation}"),
	)
	if err != nil {
		return nil, err
	}

	modelAttemptsTotal, err := meter.Int64Counter(
		"model_attempts_total",
		metric.WithDescription("Total number of generation attempts per model"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	modelDurationMs, err := meter.Float64Histogram(
		"model_attempt_duration_milliseconds",
		metric.WithDescription("Generation attempt duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	fallbackExhausted, err := meter.Int64Counter(
		"model_fallback_exhausted_total",
		metric.WithDescription("Total number of requests that exhausted every candidate model"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	permissionCheckDuration, err := meter.Float64Histogram(
		"permission_check_duration_ms",
		metric.WithDescription("Permission check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal:       httpRequestsTotal,
		HTTPDurationMs:          httpDurationMs,
		PatientTotal:            patientTotal,
		ConsultationTotal:       consultationTotal,
		ModelAttemptsTotal:      modelAttemptsTotal,
		ModelDurationMs:         modelDurationMs,
		FallbackExhausted:       fallbackExhausted,
		AuthFailuresTotal:       authFailuresTotal,
		PermissionCheckDuration: permissionCheckDuration,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordPatientOperation records a patient record operation metric
func (m *Metrics) RecordPatientOperation(ctx context.Context, operation string) {
	m.PatientTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordConsultation records an assistant consultation metric
func (m *Metrics) RecordConsultation(ctx context.Context, urgent bool) {
	m.ConsultationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("urgent", urgent),
	))
}

// RecordModelAttempt records a single generation attempt against one model
func (m *Metrics) RecordModelAttempt(ctx context.Context, model string, durationMs float64, success bool) {
	attrs := []attribute.KeyValue{
		attribute.String("model", model),
		attribute.Bool("success", success),
	}

	m.ModelAttemptsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.ModelDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordFallbackExhausted records a request that failed on every candidate model
func (m *Metrics) RecordFallbackExhausted(ctx context.Context) {
	m.FallbackExhausted.Add(ctx, 1)
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordPermissionCheck records a permission check duration metric
func (m *Metrics) RecordPermissionCheck(ctx context.Context, permission string, durationMs float64, allowed bool) {
	m.PermissionCheckDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("permission", permission),
		attribute.Bool("allowed", allowed),
	))
}
