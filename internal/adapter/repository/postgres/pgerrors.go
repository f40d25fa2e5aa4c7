package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the engine reacts to.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrUniqueViolation      = "23505"
	pgErrLockNotAvailable     = "55P03"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// isRetryableError reports whether the transaction that produced err can
// be replayed from scratch with a chance of succeeding.
func isRetryableError(err error) bool {
	switch pgErrCode(err) {
	case pgErrDeadlock, pgErrSerializationFailure:
		return true
	}

	return false
}

func isUniqueViolation(err error) bool {
	return pgErrCode(err) == pgErrUniqueViolation
}

func isLockNotAvailable(err error) bool {
	return pgErrCode(err) == pgErrLockNotAvailable
}
