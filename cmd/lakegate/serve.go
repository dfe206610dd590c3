package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/sagarc03/lakegate"
	"github.com/sagarc03/lakegate/config"
	lakehttp "github.com/sagarc03/lakegate/http"
	"github.com/sagarc03/lakegate/keybackend"
	"github.com/sagarc03/lakegate/obs/metrics"
	"github.com/sagarc03/lakegate/obs/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the lakegate HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 7071, "HTTP server port (env: LAKEGATE_SERVER_PORT)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	shutdownTracing, err := tracing.Init(ctx, tracing.Options{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     cfg.Version,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("tracing shutdown error", "err", err)
		}
	}()

	factory, closeFactory, err := newStorageFactory(cfg)
	if err != nil {
		return fmt.Errorf("create storage factory: %w", err)
	}
	defer func() { _ = closeFactory() }()

	var middlewares []func(http.Handler) http.Handler
	var metricsHandler http.Handler

	if cfg.Metrics.Enabled {
		m := metrics.New()
		factory = metrics.InstrumentFactory(factory, metrics.NewStorageMetrics(m.Registry()))
		middlewares = append(middlewares, m.Middleware)
		metricsHandler = m.Handler()
	}
	if cfg.Tracing.Enabled {
		tp := otel.GetTracerProvider()
		factory = tracing.InstrumentFactory(factory, tp)
		middlewares = append(middlewares, tracing.Middleware(tp))
	}

	if cfg.Storage.Account == "" {
		slog.Warn("storage account not configured; gateway requests will fail until it is set")
	}

	gateway := lakegate.NewGateway(factory, lakegate.GatewayConfig{Account: cfg.Storage.Account})
	health := newHealthChecker(cfg, factory, slog.Default())

	keys, err := keybackend.NewKeyStore(cfg.Auth.Keys)
	if err != nil {
		return fmt.Errorf("load function keys: %w", err)
	}
	if keys.Len() == 0 {
		slog.Warn("no function keys configured; all routes are public")
	}

	handlerConfig := lakehttp.HandlerConfig{
		CORS:          cfg.CORS,
		Keys:          keys,
		MaxUploadSize: cfg.Server.MaxUploadSize,
		Service:       "lakegate",
		Version:       cfg.Version,
		Environment:   cfg.Environment,
		Metrics:       metricsHandler,
		MetricsPath:   cfg.Metrics.Path,
		Middlewares:   middlewares,
	}

	handler := lakehttp.NewHandler(&handlerConfig, gateway, health)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"backend", cfg.Storage.Backend,
		"account", cfg.Storage.Account,
		"environment", cfg.Environment,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
