package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/iho/bookkeep/domain"
)

// LockSession serializes all mutations to the balance rows touched by
// one transfer. It acquires row locks in the canonical key order inside
// a single outermost transaction, creates balance rows that do not exist
// yet, and hands out locked handles that are the only way to mutate a
// balance. One session is created per transfer call and discarded; there
// is no process-wide lock table.
type LockSession struct {
	txm      TransactionManager
	balances BalanceRepository
	resolver *BalanceResolver
	retrier  Retrier
	fixtures bool

	keys    []domain.BalanceKey
	missing []domain.BalanceKey
	tx      Transaction
	locked  map[domain.BalanceKey]*domain.AccountBalance
	active  bool
}

// WritePermit proves a lock session is open. Repositories that persist
// transfers demand one; the zero value never passes, and only a session
// issues non-zero permits, so raw transfer persistence always fails.
type WritePermit struct {
	session *LockSession
}

// Held reports whether the permit belongs to an open lock session.
func (p WritePermit) Held() bool {
	return p.session != nil && p.session.active
}

// lockedFunc runs with all session locks held, inside the session
// transaction.
type lockedFunc func(ctx context.Context, tx Transaction, permit WritePermit) error

func newLockSession(
	txm TransactionManager,
	balances BalanceRepository,
	resolver *BalanceResolver,
	retrier Retrier,
	fixtures bool,
	keys []domain.BalanceKey,
) *LockSession {
	deduped := make([]domain.BalanceKey, 0, len(keys))
	seen := make(map[domain.BalanceKey]struct{}, len(keys))

	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		deduped = append(deduped, key)
	}

	// Canonical order; two sessions over overlapping rows always lock
	// the shared rows in the same relative order.
	sort.Slice(deduped, func(i, j int) bool { return deduped[i].Less(deduped[j]) })

	return &LockSession{
		txm:      txm,
		balances: balances,
		resolver: resolver,
		retrier:  retrier,
		fixtures: fixtures,
		keys:     deduped,
	}
}

// Run locks the session's keys and calls fn with the locks held. The
// whole attempt, fn included, restarts from scratch when the storage
// engine reports a deadlock. Run must start the outermost transaction;
// a transaction already carried by ctx is rejected unless the session
// was configured for transactional test fixtures.
func (s *LockSession) Run(ctx context.Context, fn lockedFunc) error {
	if outer := TransactionFromContext(ctx); outer != nil {
		if !s.fixtures {
			return domain.ErrLockMustBeOutermostTransaction
		}

		return s.runInFixture(ctx, outer, fn)
	}

	return s.retrier.RestartOnDeadlock(ctx, func() error {
		return s.attempt(ctx, fn)
	})
}

// attempt is one full locking attempt: lock and call, and when balance
// rows are missing, create them and try exactly once more. Rows are
// never deleted, so a second miss means something is badly wrong.
func (s *LockSession) attempt(ctx context.Context, fn lockedFunc) error {
	locked, err := s.lockAndCall(ctx, fn)
	if err != nil || locked {
		return err
	}

	if err := s.createMissingBalances(ctx); err != nil {
		return err
	}

	locked, err = s.lockAndCall(ctx, fn)
	if err != nil {
		return err
	}

	if !locked {
		return domain.ErrLockDisaster
	}

	return nil
}

// lockAndCall begins a transaction, grabs the row locks, and calls fn
// inside it. When some balance row does not exist it rolls back without
// side effects and reports locked=false; fn is not called.
func (s *LockSession) lockAndCall(ctx context.Context, fn lockedFunc) (bool, error) {
	tx, err := s.txm.Begin(ctx)
	if err != nil {
		return false, err
	}

	complete, err := s.grabLocks(ctx, tx)
	if err != nil {
		_ = tx.Rollback(ctx)
		return false, err
	}

	if !complete {
		_ = tx.Rollback(ctx)
		return false, nil
	}

	s.tx = tx
	s.active = true

	callErr := fn(ContextWithTransaction(ctx, tx), tx, WritePermit{session: s})
	if callErr == nil {
		callErr = tx.Commit(ctx)
	} else {
		_ = tx.Rollback(ctx)
	}

	s.release()

	return true, callErr
}

// runInFixture locks inside the test fixture's transaction instead of
// opening one; commit and rollback stay with the fixture.
func (s *LockSession) runInFixture(ctx context.Context, outer Transaction, fn lockedFunc) error {
	complete, err := s.grabLocks(ctx, outer)
	if err != nil {
		return err
	}

	if !complete {
		if err := s.createMissingBalances(ctx); err != nil {
			return err
		}

		complete, err = s.grabLocks(ctx, outer)
		if err != nil {
			return err
		}

		if !complete {
			return domain.ErrLockDisaster
		}
	}

	s.tx = outer
	s.active = true
	defer s.release()

	return fn(ContextWithTransaction(ctx, outer), outer, WritePermit{session: s})
}

// grabLocks acquires a row lock per key in canonical order. Keys without
// a balance row are collected for createMissingBalances and complete is
// false.
func (s *LockSession) grabLocks(ctx context.Context, tx Transaction) (bool, error) {
	rows, err := s.balances.LockForUpdate(ctx, tx, s.keys)
	if err != nil {
		return false, err
	}

	byKey := make(map[domain.BalanceKey]*domain.AccountBalance, len(rows))
	for _, row := range rows {
		byKey[row.Key()] = row
	}

	s.missing = s.missing[:0]
	for _, key := range s.keys {
		if _, ok := byKey[key]; !ok {
			s.missing = append(s.missing, key)
		}
	}

	if len(s.missing) > 0 {
		return false, nil
	}

	s.locked = byKey

	return true, nil
}

// createMissingBalances creates zero-balance rows for the keys the last
// grab found absent. Runs outside any transaction; a concurrent creator
// winning the insert is fine.
func (s *LockSession) createMissingBalances(ctx context.Context) error {
	for _, key := range s.missing {
		if _, err := s.resolver.Resolve(ctx, key); err != nil {
			return err
		}
	}

	return nil
}

func (s *LockSession) release() {
	s.active = false
	s.locked = nil
	s.tx = nil
}

// IsLocked reports whether the session currently holds the row lock for
// key.
func (s *LockSession) IsLocked(key domain.BalanceKey) bool {
	if !s.active {
		return false
	}

	_, ok := s.locked[key]

	return ok
}

// BalanceFor returns the locked handle for key, or ErrLockNotHeld.
func (s *LockSession) BalanceFor(key domain.BalanceKey) (*LockedBalance, error) {
	if !s.IsLocked(key) {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockNotHeld, key)
	}

	return &LockedBalance{session: s, row: s.locked[key]}, nil
}

// LockedBalance is the handle to a balance row while its lock is held.
// Mutation is only possible through it, which makes writing to an
// unlocked balance a compile-time impossibility rather than a runtime
// accident.
type LockedBalance struct {
	session *LockSession
	row     *domain.AccountBalance
}

// Balance returns the current amount.
func (lb *LockedBalance) Balance() domain.Money { return lb.row.Balance }

// Credit adds amount to the balance.
func (lb *LockedBalance) Credit(amount domain.Money) error {
	sum, err := lb.row.Balance.Add(amount)
	if err != nil {
		return err
	}

	lb.row.Balance = sum

	return nil
}

// Debit subtracts amount from the balance, refusing to take it below
// zero.
func (lb *LockedBalance) Debit(amount domain.Money) error {
	diff, err := lb.row.Balance.Sub(amount)
	if err != nil {
		return err
	}

	if diff.IsNegative() {
		return fmt.Errorf("%w: %s on %s", domain.ErrInsufficientFunds, lb.row.Balance, lb.row.Key())
	}

	lb.row.Balance = diff

	return nil
}

// Save persists the mutated row inside the session transaction.
func (lb *LockedBalance) Save(ctx context.Context) error {
	if !lb.session.active {
		return fmt.Errorf("%w: %s", domain.ErrLockNotHeld, lb.row.Key())
	}

	return lb.session.balances.UpdateBalance(ctx, lb.session.tx, lb.row)
}

// Snapshot returns a copy of the row as it stands now.
func (lb *LockedBalance) Snapshot() *domain.AccountBalance {
	copied := *lb.row
	return &copied
}
