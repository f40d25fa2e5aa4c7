package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/internal/infrastructure/metrics"
	"github.com/iho/bookkeep/usecase"
)

// BalanceRepository implements usecase.BalanceRepository on the
// ledger_account_balances table, the only table the engine row-locks.
type BalanceRepository struct {
	pool    *pgxpool.Pool
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool, logger zerolog.Logger, m *metrics.Metrics) *BalanceRepository {
	return &BalanceRepository{pool: pool, logger: logger, metrics: m}
}

const balanceColumns = `id, ledger_person_id, ledger_account_id, balance_cents, balance_currency, date, created_at, updated_at`

const findBalanceQuery = `
SELECT ` + balanceColumns + `
FROM ledger_account_balances
WHERE ledger_account_id = $1 AND ledger_person_id = $2 AND balance_currency = $3 AND date = $4`

// Find retrieves the balance row identified by key.
func (r *BalanceRepository) Find(ctx context.Context, key domain.BalanceKey) (*domain.AccountBalance, error) {
	row := r.pool.QueryRow(ctx, findBalanceQuery,
		key.AccountID, key.PersonID, key.Currency, key.Period.Start())

	balance, err := scanBalance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBalanceNotFound
		}

		return nil, err
	}

	return balance, nil
}

const lockBalanceQuery = findBalanceQuery + `
FOR UPDATE`

// LockForUpdate locks the rows for the given keys one at a time, in the
// order given. Callers pass keys in canonical order so that concurrent
// sessions queue instead of deadlocking. Keys without a row yet are
// left out of the result.
func (r *BalanceRepository) LockForUpdate(ctx context.Context, tx usecase.Transaction, keys []domain.BalanceKey) ([]*domain.AccountBalance, error) {
	pgxTx := tx.(*Tx).PgxTx()

	balances := make([]*domain.AccountBalance, 0, len(keys))

	for _, key := range keys {
		if r.metrics != nil {
			r.metrics.LockAttempts.Inc()
		}

		row := pgxTx.QueryRow(ctx, lockBalanceQuery,
			key.AccountID, key.PersonID, key.Currency, key.Period.Start())

		balance, err := scanBalance(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}

			if isLockNotAvailable(err) {
				if r.metrics != nil {
					r.metrics.LockWaitTimeouts.Inc()
				}

				r.logger.Error().
					Str("balance", key.String()).
					Msg("lock wait timed out")

				return nil, fmt.Errorf("%w: %s", domain.ErrLockWaitTimeout, key)
			}

			return nil, err
		}

		balances = append(balances, balance)
	}

	return balances, nil
}

const createBalanceQuery = `
INSERT INTO ledger_account_balances
	(id, ledger_person_id, ledger_account_id, balance_cents, balance_currency, date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// CreateIgnoringDuplicates inserts the balance row outside any caller
// transaction. A uniqueness violation means a concurrent session
// created the row first, which is just as good; it reports whether
// this call did the insert.
func (r *BalanceRepository) CreateIgnoringDuplicates(ctx context.Context, balance *domain.AccountBalance) (bool, error) {
	_, err := r.pool.Exec(ctx, createBalanceQuery,
		balance.ID,
		balance.PersonID,
		balance.AccountID,
		balance.Balance.Cents,
		balance.Balance.Currency,
		balance.Date,
		balance.CreatedAt,
		balance.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if r.metrics != nil {
				r.metrics.DuplicateIgnores.Inc()
			}

			r.logger.Debug().
				Str("balance", balance.Key().String()).
				Msg("balance row already created concurrently")

			return false, nil
		}

		return false, err
	}

	if r.metrics != nil {
		r.metrics.BalancesCreated.Inc()
	}

	return true, nil
}

const updateBalanceQuery = `
UPDATE ledger_account_balances
SET balance_cents = $2, updated_at = $3
WHERE id = $1`

// UpdateBalance writes the new balance inside tx. The row must already
// be locked by the same transaction.
func (r *BalanceRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, balance *domain.AccountBalance) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, updateBalanceQuery,
		balance.ID, balance.Balance.Cents, time.Now().UTC())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBalanceNotFound
	}

	return nil
}

const latestDateQuery = `
SELECT MAX(date)
FROM ledger_account_balances
WHERE ledger_account_id = $1 AND ledger_person_id = $2`

// LatestDate returns the newest period date recorded for the
// (account, person) pair.
func (r *BalanceRepository) LatestDate(ctx context.Context, accountID int64, personID string) (time.Time, error) {
	var latest *time.Time

	err := r.pool.QueryRow(ctx, latestDateQuery, accountID, personID).Scan(&latest)
	if err != nil {
		return time.Time{}, err
	}

	if latest == nil {
		return time.Time{}, domain.ErrBalanceNotFound
	}

	return *latest, nil
}

const listByPersonQuery = `
SELECT ` + balanceColumns + `
FROM ledger_account_balances
WHERE ledger_person_id = $1
ORDER BY ledger_account_id, balance_currency, date`

// ListByPerson returns all balance rows of a person.
func (r *BalanceRepository) ListByPerson(ctx context.Context, personID string) ([]*domain.AccountBalance, error) {
	rows, err := r.pool.Query(ctx, listByPersonQuery, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*domain.AccountBalance

	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}

		balances = append(balances, balance)
	}

	return balances, rows.Err()
}

func scanBalance(row pgx.Row) (*domain.AccountBalance, error) {
	balance := &domain.AccountBalance{}

	err := row.Scan(
		&balance.ID,
		&balance.PersonID,
		&balance.AccountID,
		&balance.Balance.Cents,
		&balance.Balance.Currency,
		&balance.Date,
		&balance.CreatedAt,
		&balance.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return balance, nil
}
