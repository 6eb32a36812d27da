package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/fintrellis/assetbook/internal/adapter/http"
	"github.com/fintrellis/assetbook/internal/adapter/http/handler"
	postgresRepo "github.com/fintrellis/assetbook/internal/adapter/repository/postgres"
	redisRepo "github.com/fintrellis/assetbook/internal/adapter/repository/redis"
	"github.com/fintrellis/assetbook/internal/infrastructure/config"
	"github.com/fintrellis/assetbook/internal/infrastructure/logger"
	"github.com/fintrellis/assetbook/internal/infrastructure/metrics"
	"github.com/fintrellis/assetbook/internal/infrastructure/postgres"
	"github.com/fintrellis/assetbook/internal/infrastructure/poster"
	"github.com/fintrellis/assetbook/internal/infrastructure/redis"
	"github.com/fintrellis/assetbook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zlog := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = zlog
	zerolog.DefaultContextLogger = &zlog

	ctx := context.Background()

	// Run database migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	assetRepo := postgresRepo.NewAssetRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	disposalRepo := postgresRepo.NewDisposalRepository(pool)
	settingRepo := postgresRepo.NewSettingRepository(pool)
	typeRepo := postgresRepo.NewTypeRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()

	appMetrics := metrics.New()

	// Initialize use cases
	ledger := usecase.NewLedger(assetRepo, entryRepo, idGen)
	lifecycleUC := usecase.NewLifecycleUseCase(txManager, assetRepo, entryRepo, disposalRepo, outboxRepo, ledger, cache, idGen, appMetrics)
	assetUC := usecase.NewAssetUseCase(txManager, assetRepo, typeRepo, lifecycleUC, cache, idGen, appMetrics)
	depreciationUC := usecase.NewDepreciationUseCase(txManager, assetRepo, settingRepo, outboxRepo, ledger, retrier, idGen, appMetrics)
	disposalUC := usecase.NewDisposalUseCase(txManager, assetRepo, entryRepo, disposalRepo, settingRepo, outboxRepo, cache, idGen, appMetrics)
	settingUC := usecase.NewSettingUseCase(settingRepo, idGen)
	typeUC := usecase.NewTypeUseCase(typeRepo, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AssetHandler:        handler.NewAssetHandler(assetUC),
		LifecycleHandler:    handler.NewLifecycleHandler(lifecycleUC),
		DepreciationHandler: handler.NewDepreciationHandler(depreciationUC),
		DisposalHandler:     handler.NewDisposalHandler(disposalUC, lifecycleUC),
		SettingHandler:      handler.NewSettingHandler(settingUC),
		TypeHandler:         handler.NewTypeHandler(typeUC),
		AccountHandler:      handler.NewAccountHandler(accountUC),
		HealthHandler:       handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:    idempotencyStore,
		Logger:              zlog,
		RateLimit:           cfg.RateLimit,
		RateBurst:           cfg.RateBurst,
	})

	// Start the journal poster in the background
	posterCtx, stopPoster := context.WithCancel(ctx)
	defer stopPoster()

	journalPoster := poster.New(poster.Config{
		OutboxRepo: outboxRepo,
		Publisher:  poster.NewLogPublisher(nil),
		Metrics:    appMetrics,
		BatchSize:  cfg.PosterBatchSize,
		Interval:   cfg.PosterInterval,
		Retention:  cfg.PosterRetention,
	})
	go journalPoster.Start(posterCtx)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	stopPoster()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
