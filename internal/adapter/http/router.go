package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/bookkeep/internal/adapter/http/handler"
	"github.com/iho/bookkeep/internal/adapter/http/middleware"
	"github.com/iho/bookkeep/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	DocumentHandler  *handler.DocumentHandler
	PersonHandler    *handler.PersonHandler
	TransferHandler  *handler.TransferHandler
	LedgerHandler    *handler.LedgerHandler
	HealthHandler    *handler.HealthHandler
	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	IdempotencyStore middleware.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimit        float64
	RateBurst        int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotency.Wrap)
		}

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Get("/{id}/entries", cfg.LedgerHandler.EntriesByAccount)
			r.Get("/{id}/balance", cfg.LedgerHandler.Balance)
		})

		r.Route("/document-types", func(r chi.Router) {
			r.Post("/", cfg.DocumentHandler.CreateType)
			r.Get("/", cfg.DocumentHandler.ListTypes)
			r.Get("/{id}", cfg.DocumentHandler.GetType)
		})

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", cfg.DocumentHandler.Create)
			r.Get("/{id}", cfg.DocumentHandler.Get)
			r.Get("/{id}/transfers", cfg.TransferHandler.ListByDocument)
		})

		r.Route("/people", func(r chi.Router) {
			r.Post("/", cfg.PersonHandler.FindOrCreate)
			r.Get("/{id}", cfg.PersonHandler.Get)
			r.Get("/{id}/balances", cfg.PersonHandler.ListBalances)
		})

		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/{id}", cfg.TransferHandler.Get)
			r.Get("/{id}/entries", cfg.LedgerHandler.EntriesByTransfer)
		})

		r.Get("/trial-balance", cfg.LedgerHandler.TrialBalance)
	})

	return r
}
