package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transfer metrics
	TransfersProcessed prometheus.Counter
	TransferErrors     *prometheus.CounterVec
	TransferDuration   prometheus.Histogram
	EntriesCreated     prometheus.Counter

	// Locking and retry metrics. Every deadlock restart and ignored
	// duplicate insert is observed here without changing the retried
	// operation's outcome.
	DeadlockRestarts prometheus.Counter
	DuplicateIgnores prometheus.Counter
	LockWaitTimeouts prometheus.Counter
	LockAttempts     prometheus.Counter

	// Balance metrics
	BalancesCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransfersProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeep_transfers_processed_total",
			Help: "Total number of transfers committed",
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeep_transfer_errors_total",
				Help: "Total number of rejected transfers by error type",
			},
			[]string{"error_type"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeep_transfer_duration_seconds",
			Help:    "Duration of transfer processing",
			Buckets: prometheus.DefBuckets,
		}),
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeep_entries_created_total",
			Help: "Total number of ledger entries created",
		}),

		DeadlockRestarts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeep_deadlock_restarts_total",
			Help: "Total number of transactions restarted after a deadlock",
		}),
		DuplicateIgnores: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeep_duplicate_ignores_total",
			Help: "Total number of duplicate balance inserts resolved to the winner's row",
		}),
		LockWaitTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeep_lock_wait_timeouts_total",
			Help: "Total number of lock waits that timed out",
		}),
		LockAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeep_lock_attempts_total",
			Help: "Total number of balance lock acquisition attempts",
		}),

		BalancesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeep_balances_created_total",
			Help: "Total number of account balance rows created",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeep_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookkeep_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeep_db_errors_total",
				Help: "Total database errors by operation",
			},
			[]string{"operation"},
		),
	}
}
