package usecase

import (
	"context"
	"time"

	"github.com/iho/bookkeep/domain"
)

// LedgerUseCase handles ledger-wide queries and audits.
type LedgerUseCase struct {
	ledger   LedgerRepository
	entries  EntryRepository
	balances BalanceRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledger LedgerRepository, entries EntryRepository, balances BalanceRepository) *LedgerUseCase {
	return &LedgerUseCase{ledger: ledger, entries: entries, balances: balances}
}

// TrialBalanceReport is the outcome of the zero-sum audit.
type TrialBalanceReport struct {
	Rows     []domain.TrialBalanceRow
	Balanced bool
}

// TrialBalance sums debit and credit entries per currency. Every
// committed transfer nets to zero, so an unbalanced row means corrupt
// data.
func (uc *LedgerUseCase) TrialBalance(ctx context.Context) (*TrialBalanceReport, error) {
	rows, err := uc.ledger.TrialBalance(ctx)
	if err != nil {
		return nil, err
	}

	report := &TrialBalanceReport{Rows: rows, Balanced: true}
	for _, row := range rows {
		if !row.Balanced() {
			report.Balanced = false
		}
	}

	return report, nil
}

// EntriesByTransfer returns the entry pair(s) of a transfer.
func (uc *LedgerUseCase) EntriesByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error) {
	return uc.entries.GetByTransfer(ctx, transferID)
}

// EntriesByAccount returns an account's entries with pagination.
func (uc *LedgerUseCase) EntriesByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	return uc.entries.GetByAccount(ctx, accountID, limit, offset)
}

// Balance returns the balance row of (person, account, currency, month)
// or domain.ErrBalanceNotFound when no transfer has touched it yet.
func (uc *LedgerUseCase) Balance(ctx context.Context, accountID int64, personID, currency string, date time.Time) (*domain.AccountBalance, error) {
	key := domain.BalanceKey{
		AccountID: accountID,
		PersonID:  personID,
		Currency:  currency,
		Period:    domain.PeriodOf(date),
	}

	return uc.balances.Find(ctx, key)
}
