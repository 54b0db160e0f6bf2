// Package main is the entry point for the uniformdesk API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"uniformdesk/internal/config"
	"uniformdesk/internal/domain/alerts"
	"uniformdesk/internal/domain/catalogs/school"
	"uniformdesk/internal/domain/catalogs/supplier"
	"uniformdesk/internal/domain/catalogs/uniform"
	"uniformdesk/internal/domain/reports"
	"uniformdesk/internal/domain/sales"
	"uniformdesk/internal/domain/stock"
	"uniformdesk/internal/infrastructure/cache"
	v1 "uniformdesk/internal/infrastructure/http/v1"
	"uniformdesk/internal/infrastructure/jobs"
	"uniformdesk/internal/infrastructure/storage/postgres"
	"uniformdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"uniformdesk/internal/infrastructure/storage/postgres/report_repo"
	"uniformdesk/internal/infrastructure/storage/postgres/sales_repo"
	"uniformdesk/internal/infrastructure/storage/postgres/stock_repo"
	"uniformdesk/pkg/logger"
	"uniformdesk/pkg/numerator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting uniformdesk server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns
	poolCfg.MaxConnLifetime = cfg.DBConnLifetime
	poolCfg.MaxConnIdleTime = cfg.DBConnIdleTime

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	schoolRepo := catalog_repo.NewSchoolRepo(txManager)
	supplierRepo := catalog_repo.NewSupplierRepo(txManager)
	uniformRepo := catalog_repo.NewUniformRepo(txManager)
	stockRepo := stock_repo.NewStockRepo(txManager)
	salesRepo := sales_repo.NewSalesRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	barcodes := numerator.New(pool)

	// --- Alert queue and report cache (both need redis) ---
	var alerter alerts.Alerter = alerts.Noop{}
	var reportCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		enqueuer := jobs.NewEnqueuer(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer enqueuer.Close()
		alerter = enqueuer

		redisCache := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisCache.Close()
		reportCache = redisCache

		log.Infow("redis enabled", "addr", cfg.RedisAddr)
	} else {
		log.Info("redis not configured, alerts and report cache disabled")
	}

	// --- Services ---
	schoolService := school.NewService(schoolRepo, txManager)
	supplierService := supplier.NewService(supplierRepo)
	uniformService := uniform.NewService(uniformRepo, barcodes, txManager)
	stockService := stock.NewService(stockRepo, txManager, alerter)
	salesService := sales.NewService(salesRepo, txManager)
	reportService := reports.NewService(reportRepo, reportCache, cfg.CacheTTL)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:        pool,
		Logger:      log,
		Schools:     schoolService,
		Suppliers:   supplierService,
		Uniforms:    uniformService,
		Sales:       salesService,
		Stock:       stockService,
		Reports:     reportService,
		Development: cfg.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
		IdleTimeout:  cfg.AppIdleTimeout,
	}

	go func() {
		log.Infow("listening", "addr", cfg.AppAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server error", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}
	log.Info("server stopped")
}
