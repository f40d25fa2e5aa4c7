package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/bookkeep/internal/adapter/http/middleware"
	"github.com/iho/bookkeep/internal/infrastructure/metrics"
)

func newTestMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()

	previous := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	t.Cleanup(func() { prometheus.DefaultRegisterer = previous })

	return metrics.New()
}

func TestMetricsMiddleware_RecordsStatusCode(t *testing.T) {
	m := newTestMetrics(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	middleware.NewMetricsMiddleware(m).Wrap(next).ServeHTTP(rec, req)

	counter := m.HTTPRequests.WithLabelValues(http.MethodGet, "/health", "418")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected counter to be 1, got %v", got)
	}
}

func TestMetricsMiddleware_DefaultsToOK(t *testing.T) {
	m := newTestMetrics(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	middleware.NewMetricsMiddleware(m).Wrap(next).ServeHTTP(rec, req)

	counter := m.HTTPRequests.WithLabelValues(http.MethodGet, "/health", "200")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected counter to be 1, got %v", got)
	}
}

func TestMetricsMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(middleware.NewMetricsMiddleware(m).Wrap)
	r.Get("/accounts/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/4010", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// Raw paths would explode label cardinality, so the route
	// pattern is recorded instead.
	counter := m.HTTPRequests.WithLabelValues(http.MethodGet, "/accounts/{id}", "200")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected counter to be 1, got %v", got)
	}
}
