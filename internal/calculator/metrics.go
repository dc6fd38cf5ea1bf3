package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments, replaced once via InitMetrics(). They default to no-ops
// so handlers work before telemetry is configured.
var (
	evalCounter   metric.Int64Counter     = noop.Int64Counter{}
	evalHistogram metric.Float64Histogram = noop.Float64Histogram{}
	errorCounter  metric.Int64Counter     = noop.Int64Counter{}
	resultGauge   metric.Float64Gauge     = noop.Float64Gauge{}
)

// InitMetrics registers the calculator metric instruments on the global
// meter provider. Call it once at startup, after the provider is installed.
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	evalCounter, err = meter.Int64Counter("calc.evaluations.total",
		metric.WithDescription("Calculator evaluations by calculator and outcome"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return fmt.Errorf("creating evaluation counter: %w", err)
	}

	evalHistogram, err = meter.Float64Histogram("calc.evaluation.duration",
		metric.WithDescription("Duration of calculator evaluations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating evaluation histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calc.request_errors.total",
		metric.WithDescription("Requests rejected before evaluation (malformed or oversized body)"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calc.last_result",
		metric.WithDescription("Last computed value per calculator output"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
