package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"architect-calculators/internal/calculator"
	"architect-calculators/internal/handlers"
	"architect-calculators/internal/observability"
)

// Options configures the router.
type Options struct {
	// WebDir is the front end directory served at /. Empty disables it.
	WebDir     string
	Calculator calculator.Options
}

func NewRouter(opts Options) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(observability.MetricsMiddleware)
	// after logging and metrics so preflights are still observed
	r.Use(observability.CORSMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calculator.NewHandler(opts.Calculator))

	if opts.WebDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.WebDir)))
	}

	return r
}
