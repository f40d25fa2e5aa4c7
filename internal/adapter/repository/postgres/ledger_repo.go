package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookkeep/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const trialBalanceQuery = `
SELECT amount_currency,
	COALESCE(SUM(amount_cents) FILTER (WHERE is_debit), 0)     AS debit_cents,
	COALESCE(SUM(amount_cents) FILTER (WHERE NOT is_debit), 0) AS credit_cents
FROM ledger_entries
GROUP BY amount_currency
ORDER BY amount_currency`

// TrialBalance sums debit and credit entries per currency.
func (r *LedgerRepository) TrialBalance(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	rows, err := r.pool.Query(ctx, trialBalanceQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []domain.TrialBalanceRow

	for rows.Next() {
		var row domain.TrialBalanceRow

		err := rows.Scan(&row.Currency, &row.DebitCents, &row.CreditCents)
		if err != nil {
			return nil, err
		}

		report = append(report, row)
	}

	return report, rows.Err()
}
