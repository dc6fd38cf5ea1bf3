package main

import (
	"context"
	"errors"

	"architect-calculators/internal/calculator"
	"architect-calculators/internal/config"
	"architect-calculators/internal/observability"
)

// initTelemetry wires the OTLP trace, metric and log pipelines when enabled
// and registers the domain metric instruments. The returned func shuts the
// pipelines down in reverse order.
func initTelemetry(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.OTelEnabled {
		res, err := observability.NewResource(ctx, cfg.ServiceName)
		if err != nil {
			return nil, err
		}

		traceShutdown, err := observability.InitTracing(ctx, res)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, traceShutdown)

		metricShutdown, err := observability.InitMetrics(ctx, res)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, metricShutdown)

		logShutdown, err := observability.InitLogging(ctx, res, cfg.ServiceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
