package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const createEntryQuery = `
INSERT INTO ledger_entries
	(id, ledger_transfer_id, ledger_account_id, ledger_person_id, is_debit, amount_cents, amount_currency, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Create persists an entry inside tx.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createEntryQuery,
		entry.ID,
		entry.TransferID,
		entry.AccountID,
		nullable(entry.PersonID),
		entry.IsDebit,
		entry.Amount.Cents,
		entry.Amount.Currency,
		entry.CreatedAt,
	)

	return err
}

const entryColumns = `id, ledger_transfer_id, ledger_account_id, ledger_person_id, is_debit, amount_cents, amount_currency, created_at`

const getEntriesByTransferQuery = `
SELECT ` + entryColumns + `
FROM ledger_entries
WHERE ledger_transfer_id = $1
ORDER BY is_debit DESC, id`

// GetByTransfer returns the entries of a transfer, debit side first.
func (r *EntryRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, getEntriesByTransferQuery, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

const getEntriesByAccountQuery = `
SELECT ` + entryColumns + `
FROM ledger_entries
WHERE ledger_account_id = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3`

// GetByAccount returns an account's entries, newest first.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, getEntriesByAccountQuery, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry

	for rows.Next() {
		entry := &domain.Entry{}

		var personID *string

		err := rows.Scan(
			&entry.ID,
			&entry.TransferID,
			&entry.AccountID,
			&personID,
			&entry.IsDebit,
			&entry.Amount.Cents,
			&entry.Amount.Currency,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entry.PersonID = orEmpty(personID)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
