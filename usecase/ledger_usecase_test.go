package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/usecase"
	"github.com/iho/bookkeep/usecase/mocks"
)

func newLedgerUseCase() (*usecase.LedgerUseCase, *mocks.MockLedgerRepository, *mocks.MockBalanceRepository) {
	ledger := mocks.NewMockLedgerRepository()
	balances := mocks.NewMockBalanceRepository()
	uc := usecase.NewLedgerUseCase(ledger, mocks.NewMockEntryRepository(), balances)
	return uc, ledger, balances
}

func TestTrialBalance_Balanced(t *testing.T) {
	uc, ledger, _ := newLedgerUseCase()
	ledger.Rows = []domain.TrialBalanceRow{
		{Currency: "EUR", DebitCents: 5000, CreditCents: 5000},
		{Currency: "USD", DebitCents: 120, CreditCents: 120},
	}

	report, err := uc.TrialBalance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Balanced {
		t.Error("expected a balanced report")
	}
	if len(report.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(report.Rows))
	}
}

func TestTrialBalance_Unbalanced(t *testing.T) {
	uc, ledger, _ := newLedgerUseCase()
	ledger.Rows = []domain.TrialBalanceRow{
		{Currency: "EUR", DebitCents: 5000, CreditCents: 5000},
		{Currency: "USD", DebitCents: 120, CreditCents: 100},
	}

	report, err := uc.TrialBalance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Balanced {
		t.Error("a mismatched currency line must flag the report")
	}
}

func TestTrialBalance_EmptyLedger(t *testing.T) {
	uc, _, _ := newLedgerUseCase()

	report, err := uc.TrialBalance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Balanced || len(report.Rows) != 0 {
		t.Errorf("an empty ledger is trivially balanced, got %+v", report)
	}
}

func TestLedgerBalanceLookup(t *testing.T) {
	uc, _, balances := newLedgerUseCase()
	balances.Seed(&domain.AccountBalance{
		ID:        "bal-1",
		PersonID:  "p1",
		AccountID: 100,
		Balance:   domain.NewMoney(3000, "EUR"),
		Date:      time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
	})

	// Any date within the month resolves to the month's row.
	row, err := uc.Balance(context.Background(), 100, "p1", "EUR", time.Date(2026, time.May, 20, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Balance.Cents != 3000 {
		t.Errorf("expected 3000, got %d", row.Balance.Cents)
	}
}
