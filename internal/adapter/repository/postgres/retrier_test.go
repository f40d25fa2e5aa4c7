package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestRetrier() *Retrier {
	r := NewRetrier(zerolog.Nop(), nil)
	r.initialInterval = 1 * time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	return r
}

func TestRetrierRestartsOnDeadlock(t *testing.T) {
	r := newTestRetrier()

	attempts := 0
	err := r.RestartOnDeadlock(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return &pgconn.PgError{Code: pgErrDeadlock}
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestRetrierRestartsOnSerializationFailure(t *testing.T) {
	r := newTestRetrier()

	attempts := 0
	err := r.RestartOnDeadlock(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return &pgconn.PgError{Code: pgErrSerializationFailure}
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 2, attempts)
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	r := newTestRetrier()

	attempts := 0
	permanentErr := errors.New("permanent")

	err := r.RestartOnDeadlock(context.Background(), func() error {
		attempts++
		return permanentErr
	})

	require.ErrorIs(t, err, permanentErr)
	require.Equal(t, 1, attempts)
}

func TestRetrierStopsOnCancelledContext(t *testing.T) {
	r := newTestRetrier()

	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := r.RestartOnDeadlock(ctx, func() error {
		attempts++
		cancel()
		return &pgconn.PgError{Code: pgErrDeadlock}
	})

	require.Error(t, err)
	require.Equal(t, 1, attempts)
}

func TestIsRetryableError(t *testing.T) {
	require.True(t, isRetryableError(&pgconn.PgError{Code: pgErrDeadlock}))
	require.True(t, isRetryableError(&pgconn.PgError{Code: pgErrSerializationFailure}))

	// Wrapped storage errors still count.
	wrapped := fmt.Errorf("create transfer: %w", &pgconn.PgError{Code: pgErrDeadlock})
	require.True(t, isRetryableError(wrapped))

	require.False(t, isRetryableError(errors.New("other")))
	require.False(t, isRetryableError(&pgconn.PgError{Code: pgErrUniqueViolation}))
}

func TestUniqueViolationAndLockTimeout(t *testing.T) {
	require.True(t, isUniqueViolation(&pgconn.PgError{Code: pgErrUniqueViolation}))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: pgErrDeadlock}))

	require.True(t, isLockNotAvailable(&pgconn.PgError{Code: pgErrLockNotAvailable}))
	require.False(t, isLockNotAvailable(errors.New("other")))
}
