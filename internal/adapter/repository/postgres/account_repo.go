package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookkeep/domain"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const createAccountQuery = `
INSERT INTO ledger_accounts (id, name, account_type, official_code, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, createAccountQuery,
		account.ID,
		account.Name,
		string(account.Type),
		account.OfficialCode,
		account.CreatedAt,
		account.UpdatedAt,
	)

	return err
}

const getAccountQuery = `
SELECT id, name, account_type, official_code, created_at, updated_at
FROM ledger_accounts
WHERE id = $1`

// GetByID retrieves an account by its number.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	account := &domain.Account{}

	var accountType string

	err := r.pool.QueryRow(ctx, getAccountQuery, id).Scan(
		&account.ID,
		&account.Name,
		&accountType,
		&account.OfficialCode,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Type = domain.AccountType(accountType)

	return account, nil
}

const listAccountsQuery = `
SELECT id, name, account_type, official_code, created_at, updated_at
FROM ledger_accounts
ORDER BY id
LIMIT $1 OFFSET $2`

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, listAccountsQuery, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account

	for rows.Next() {
		account := &domain.Account{}

		var accountType string

		err := rows.Scan(
			&account.ID,
			&account.Name,
			&accountType,
			&account.OfficialCode,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		account.Type = domain.AccountType(accountType)
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}
