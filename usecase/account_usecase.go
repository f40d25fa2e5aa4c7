package usecase

import (
	"context"
	"time"

	"github.com/iho/bookkeep/domain"
)

// AccountUseCase handles chart-of-accounts management.
type AccountUseCase struct {
	accounts AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accounts AccountRepository) *AccountUseCase {
	return &AccountUseCase{accounts: accounts}
}

// CreateAccountInput represents input for creating an account. The id
// is the bookkeeper's own account number, not generated.
type CreateAccountInput struct {
	ID           int64
	Name         string
	OfficialCode string
	Type         domain.AccountType
}

// CreateAccount registers an account in the chart of accounts.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()
	account := &domain.Account{
		ID:           input.ID,
		Name:         input.Name,
		OfficialCode: input.OfficialCode,
		Type:         input.Type,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by its number.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return uc.accounts.GetByID(ctx, id)
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return uc.accounts.List(ctx, limit, offset)
}
