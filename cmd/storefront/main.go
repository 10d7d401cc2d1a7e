package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/307second/storefront-gateway/api/routes"
	"github.com/307second/storefront-gateway/internal/backend"
	"github.com/307second/storefront-gateway/internal/cart"
	"github.com/307second/storefront-gateway/internal/catalog"
	"github.com/307second/storefront-gateway/internal/prefs"
	"github.com/307second/storefront-gateway/internal/session"
	"github.com/307second/storefront-gateway/pkg/config"
	"github.com/307second/storefront-gateway/pkg/logger"
	"github.com/307second/storefront-gateway/pkg/metrics"
	"github.com/307second/storefront-gateway/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	store, err := session.OpenSQLiteStore(cfg.Session.StorePath)
	if err != nil {
		logg.Error(context.Background(), "failed to open session store", err)
		os.Exit(1)
	}

	sessions := session.NewManager(store)

	var catalogCache catalog.Cache
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		catalogCache = redisClient
	}

	backendClient := backend.New(cfg.Backend, logg)

	catalogService := catalog.NewService(catalog.ServiceParams{
		Reader:   backendClient,
		Writer:   backendClient,
		Cache:    catalogCache,
		CacheTTL: cfg.Catalog.CacheTTL,
		Logger:   logg,
	})

	cartController := cart.NewController(backendClient, sessions, logg)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Catalog:     catalogService,
		ProductCRUD: catalogService,
		Cart:        cartController,
		Prefs:       prefs.NewState(),
		HTTPMetrics: httpMetrics,
		Gatherer:    registry,
	})

	addr := ":" + cfg.App.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	cartController.Close()
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	closeErr = multierr.Append(closeErr, store.Close())

	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}
