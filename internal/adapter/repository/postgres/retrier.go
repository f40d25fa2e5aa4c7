package postgres

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/iho/bookkeep/internal/infrastructure/metrics"
)

// Retrier implements usecase.Retrier with exponential backoff.
type Retrier struct {
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// NewRetrier creates a new PostgreSQL retrier with default settings.
func NewRetrier(logger zerolog.Logger, m *metrics.Metrics) *Retrier {
	return &Retrier{
		initialInterval: 5 * time.Millisecond,
		maxInterval:     250 * time.Millisecond,
		logger:          logger,
		metrics:         m,
	}
}

// RestartOnDeadlock runs op until it finishes without a deadlock or
// serialization failure. Deadlocks between transactions that lock rows
// in canonical order resolve on replay, so restarts are not capped;
// any other error aborts immediately.
func (r *Retrier) RestartOnDeadlock(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = 0

	restarts := 0

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		restarts++
		if r.metrics != nil {
			r.metrics.DeadlockRestarts.Inc()
		}

		r.logger.Warn().
			Err(err).
			Int("restart", restarts).
			Msg("deadlock detected, restarting transaction")

		return err
	}, backoff.WithContext(b, ctx))
}
