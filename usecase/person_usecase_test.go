package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/usecase"
	"github.com/iho/bookkeep/usecase/mocks"
)

func newPersonUseCase() (*usecase.PersonUseCase, *mocks.MockBalanceRepository) {
	balances := mocks.NewMockBalanceRepository()
	uc := usecase.NewPersonUseCase(
		mocks.NewMockPersonRepository(),
		balances,
		domain.NewRefRegistry("user"),
		mocks.NewMockIDGenerator(),
	)
	return uc, balances
}

func TestFindOrCreatePerson(t *testing.T) {
	uc, _ := newPersonUseCase()
	ref := domain.Ref{Type: "user", ID: "42"}

	created, err := uc.FindOrCreatePerson(context.Background(), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" || created.Personable != ref {
		t.Fatalf("unexpected person: %+v", created)
	}

	// The same reference resolves to the same record.
	found, err := uc.FindOrCreatePerson(context.Background(), ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected the existing person %s, got %s", created.ID, found.ID)
	}
}

func TestFindOrCreatePerson_UnknownRefType(t *testing.T) {
	uc, _ := newPersonUseCase()

	_, err := uc.FindOrCreatePerson(context.Background(), domain.Ref{Type: "ghost", ID: "1"})
	if !errors.Is(err, domain.ErrUnknownRefType) {
		t.Errorf("expected ErrUnknownRefType, got %v", err)
	}
}

func TestListBalances(t *testing.T) {
	uc, balances := newPersonUseCase()
	balances.Seed(&domain.AccountBalance{
		ID:        "bal-1",
		PersonID:  "p1",
		AccountID: 100,
		Balance:   domain.NewMoney(2000, "EUR"),
		Date:      time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	balances.Seed(&domain.AccountBalance{
		ID:        "bal-2",
		PersonID:  "p2",
		AccountID: 100,
		Balance:   domain.NewMoney(900, "EUR"),
		Date:      time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
	})

	rows, err := uc.ListBalances(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "bal-1" {
		t.Fatalf("expected only p1's row, got %+v", rows)
	}
}
