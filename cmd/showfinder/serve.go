package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/controller"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/reporting"
	"github.com/Belphemur/ShowFinder/internal/server"
	"github.com/Belphemur/ShowFinder/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("catalog_domain", cfg.CatalogDomain).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	catalog := client.NewClient(cfg)
	defer catalog.Close()

	reporter, err := reporting.NewSentryReporter(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Invalid Sentry configuration, error reporting disabled")
	}
	var options []controller.Option
	if reporter != nil {
		options = append(options, controller.WithErrorReporter(reporter))
		defer reporter.Flush(2 * time.Second)
	}

	sessionTTL := 30 * time.Minute
	if cfg.Session.TTL != "" {
		if parsed, err := time.ParseDuration(cfg.Session.TTL); err != nil {
			logger.Warn().Err(err).Str("ttl", cfg.Session.TTL).Msg("Invalid session TTL, using default 30m")
		} else {
			sessionTTL = parsed
		}
	}

	store := session.NewStore(session.Config{
		Size:    cfg.Session.Size,
		TTL:     sessionTTL,
		Catalog: catalog,
		Options: options,
	})

	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	httpServer := server.NewHTTPServer(cfg.Server.Address, cfg.Server.Port, server.New(store))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		}
	}()

	logger.Info().Str("address", httpServer.Addr).Msg("Starting HTTP server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("Failed to serve HTTP")
		return err
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}
