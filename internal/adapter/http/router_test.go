package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/internal/adapter/http/handler"
	apimiddleware "github.com/iho/bookkeep/internal/adapter/http/middleware"
	"github.com/iho/bookkeep/usecase"
	"github.com/iho/bookkeep/usecase/mocks"
)

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	registry := domain.NewRefRegistry("user", "invoice")
	idGen := mocks.NewMockIDGenerator()
	balances := mocks.NewMockBalanceRepository()

	resolver := usecase.NewBalanceResolver(balances, idGen)
	transferUC := usecase.NewTransferUseCase(
		mocks.NewMockTransactionManager(),
		mocks.NewMockTransferRepository(),
		mocks.NewMockEntryRepository(),
		balances,
		resolver,
		mocks.NewMockRetrier(),
		idGen,
	)

	cfg := RouterConfig{
		AccountHandler:  handler.NewAccountHandler(usecase.NewAccountUseCase(mocks.NewMockAccountRepository())),
		DocumentHandler: handler.NewDocumentHandler(usecase.NewDocumentUseCase(mocks.NewMockDocumentRepository(), mocks.NewMockDocumentTypeRepository(), registry, idGen)),
		PersonHandler:   handler.NewPersonHandler(usecase.NewPersonUseCase(mocks.NewMockPersonRepository(), balances, registry, idGen)),
		TransferHandler: handler.NewTransferHandler(transferUC),
		LedgerHandler:   handler.NewLedgerHandler(usecase.NewLedgerUseCase(mocks.NewMockLedgerRepository(), mocks.NewMockEntryRepository(), balances)),
		HealthHandler:   handler.NewHealthHandler(nil, nil),
		Logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimit = 1
		cfg.RateBurst = 1
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"id":100,"name":"Cash","type":"active"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatal("expected idempotency store to be used")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Router")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/entries",
		"GET /api/v1/accounts/{id}/balance",
		"POST /api/v1/document-types/",
		"POST /api/v1/documents/",
		"GET /api/v1/documents/{id}/transfers",
		"POST /api/v1/people/",
		"GET /api/v1/people/{id}/balances",
		"POST /api/v1/transfers/",
		"GET /api/v1/transfers/{id}/entries",
		"GET /api/v1/trial-balance",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
