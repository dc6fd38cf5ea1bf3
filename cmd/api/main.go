package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"architect-calculators/internal/calculator"
	"architect-calculators/internal/config"
	"architect-calculators/internal/observability"
	"architect-calculators/internal/server"
)

func main() {
	os.Exit(run())
}

func run() int {

	ctx := context.Background()

	// Logger
	if err := observability.InitLogger(); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Config
	if err := loadDotEnv(); err != nil {
		observability.Logger.Error("loading .env", zap.Error(err))
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		observability.Logger.Error("loading config", zap.Error(err))
		return 1
	}

	// Telemetry
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Error("initializing telemetry", zap.Error(err))
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := telemetryShutdown(ctx); err != nil {
			observability.Logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	// Router
	router := server.NewRouter(server.Options{
		WebDir: cfg.WebDir,
		Calculator: calculator.Options{
			MaxBodyBytes: cfg.MaxBodyBytes,
			StrictStatus: cfg.StrictStatus,
		},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Bind before serving so a busy port fails startup synchronously.
	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		observability.Logger.Error("failed to start server, port may be in use",
			zap.String("addr", cfg.HTTPAddr),
			zap.Error(err),
		)
		return 1
	}

	serveErr := make(chan error, 1)
	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", ln.Addr().String()),
			zap.String("web_dir", cfg.WebDir),
			zap.Bool("strict_status", cfg.StrictStatus),
		)

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	return waitForShutdown(srv, serveErr, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, serveErr <-chan error, timeout time.Duration) int {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		observability.Logger.Error("server stopped", zap.Error(err))
		return 1
	case sig := <-stop:
		observability.Logger.Info("shutting down", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("graceful shutdown failed", zap.Error(err))
		return 1
	}

	return 0
}
