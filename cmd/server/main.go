package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iho/bookkeep/domain"
	httpAdapter "github.com/iho/bookkeep/internal/adapter/http"
	"github.com/iho/bookkeep/internal/adapter/http/handler"
	postgresRepo "github.com/iho/bookkeep/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/bookkeep/internal/adapter/repository/redis"
	"github.com/iho/bookkeep/internal/infrastructure/config"
	"github.com/iho/bookkeep/internal/infrastructure/logger"
	"github.com/iho/bookkeep/internal/infrastructure/metrics"
	"github.com/iho/bookkeep/internal/infrastructure/postgres"
	"github.com/iho/bookkeep/internal/infrastructure/redis"
	"github.com/iho/bookkeep/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	refs := domain.NewRefRegistry(cfg.RefTypes...)

	// Repositories
	txManager := postgresRepo.NewTxManager(pool, cfg.LockTimeout)
	retrier := postgresRepo.NewRetrier(log, m)
	idGen := postgresRepo.NewULIDGenerator()
	accountRepo := postgresRepo.NewAccountRepository(pool)
	documentTypeRepo := postgresRepo.NewDocumentTypeRepository(pool)
	documentRepo := postgresRepo.NewDocumentRepository(pool)
	personRepo := postgresRepo.NewPersonRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool, log, m)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	resolver := usecase.NewBalanceResolver(balanceRepo, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	documentUC := usecase.NewDocumentUseCase(documentRepo, documentTypeRepo, refs, idGen)
	personUC := usecase.NewPersonUseCase(personRepo, balanceRepo, refs, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, transferRepo, entryRepo, balanceRepo, resolver, retrier, idGen)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, entryRepo, balanceRepo)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC),
		DocumentHandler:  handler.NewDocumentHandler(documentUC),
		PersonHandler:    handler.NewPersonHandler(personUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Logger:           log,
		Metrics:          m,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimit:        cfg.RateLimit,
		RateBurst:        cfg.RateBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
