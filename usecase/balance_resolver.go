package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iho/bookkeep/domain"
)

// BalanceResolver finds or creates the balance row for a balance key.
// Any number of concurrent callers converge on a single row: the insert
// ignores duplicates and re-fetches the winner.
type BalanceResolver struct {
	balances BalanceRepository
	idGen    IDGenerator
}

// NewBalanceResolver creates a new BalanceResolver.
func NewBalanceResolver(balances BalanceRepository, idGen IDGenerator) *BalanceResolver {
	return &BalanceResolver{balances: balances, idGen: idGen}
}

// Resolve returns the balance row for key, creating a zero-balance row
// when none exists. The key's period is taken as given (callers build
// keys with domain.PeriodOf, which normalizes to the month).
func (r *BalanceResolver) Resolve(ctx context.Context, key domain.BalanceKey) (*domain.AccountBalance, error) {
	existing, err := r.balances.Find(ctx, key)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, domain.ErrBalanceNotFound) {
		return nil, err
	}

	if err := r.checkPeriodOrder(ctx, key); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &domain.AccountBalance{
		ID:        r.idGen.Generate(),
		PersonID:  key.PersonID,
		AccountID: key.AccountID,
		Balance:   domain.Zero(key.Currency),
		Date:      key.Period.Start(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := r.balances.CreateIgnoringDuplicates(ctx, row)
	if err != nil {
		return nil, err
	}

	if created {
		return row, nil
	}

	// Lost the race; the winner's row exists now.
	return r.balances.Find(ctx, key)
}

// checkPeriodOrder enforces the monotonic-period invariant: a new row's
// month may not precede the latest recorded month for the same
// (account, person).
func (r *BalanceResolver) checkPeriodOrder(ctx context.Context, key domain.BalanceKey) error {
	latest, err := r.balances.LatestDate(ctx, key.AccountID, key.PersonID)
	if err != nil {
		if errors.Is(err, domain.ErrBalanceNotFound) {
			return nil
		}

		return err
	}

	if key.Period.Start().Before(latest) {
		return fmt.Errorf("%w: %s is before %s", domain.ErrPeriodOutOfOrder, key.Period, latest.Format("2006-01"))
	}

	return nil
}
