package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shopcartlabs/shopcart-backend/api/routes"
	"github.com/shopcartlabs/shopcart-backend/internal/admins"
	"github.com/shopcartlabs/shopcart-backend/internal/categories"
	"github.com/shopcartlabs/shopcart-backend/internal/products"
	"github.com/shopcartlabs/shopcart-backend/pkg/config"
	"github.com/shopcartlabs/shopcart-backend/pkg/db"
	"github.com/shopcartlabs/shopcart-backend/pkg/logger"
	"github.com/shopcartlabs/shopcart-backend/pkg/metrics"
	"github.com/shopcartlabs/shopcart-backend/pkg/migrate"
	"github.com/shopcartlabs/shopcart-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "shopcart-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := context.Background()

	dbClient, err := db.New(cfg.DB)
	if err != nil {
		logg.Error(ctx, "database connect failed", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "auto-migration failed", err)
		os.Exit(1)
	}

	redisClient := redis.New(cfg.Redis)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		logg.Warn(logg.WithField(ctx, "error", err.Error()), "redis unreachable, rate limiting degraded")
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTP(promRegistry)

	adminService, err := admins.NewService(admins.NewRepository(dbClient.Gorm()), dbClient, cfg.Password)
	if err != nil {
		logg.Error(ctx, "admin service init failed", err)
		os.Exit(1)
	}
	categoryService, err := categories.NewService(categories.NewRepository(dbClient.Gorm()))
	if err != nil {
		logg.Error(ctx, "category service init failed", err)
		os.Exit(1)
	}
	productService, err := products.NewService(products.NewRepository(dbClient.Gorm()))
	if err != nil {
		logg.Error(ctx, "product service init failed", err)
		os.Exit(1)
	}

	handler := routes.NewRouter(
		cfg,
		logg,
		dbClient,
		redisClient,
		httpMetrics,
		promRegistry,
		adminService,
		categoryService,
		productService,
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		IdleTimeout:  cfg.App.IdleTimeout,
	}

	go func() {
		logg.Info(logg.WithField(ctx, "addr", server.Addr), "server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server stopped", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
	logg.Info(ctx, "server stopped")
}
