package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/bookkeep/domain"
)

// TransactionSpec is one elementary transaction: an amount moving from a
// debit account to a credit account, optionally against a person's
// balance on either side. The struct is comparable so specs can be
// deduplicated by value.
type TransactionSpec struct {
	Amount          domain.Money
	DebitAccountID  int64
	CreditAccountID int64
	DebitPersonID   string
	CreditPersonID  string
}

// TransactionResult carries what one spec produced: the paired entries
// and, for sides that named a person, the balance row as it stood right
// after that transaction was applied.
type TransactionResult struct {
	Debit         *domain.Entry
	Credit        *domain.Entry
	DebitBalance  *domain.AccountBalance
	CreditBalance *domain.AccountBalance
}

// TransferUseCase orchestrates the transfer protocol. It resolves the
// balance rows the transactions touch, locks them, persists the transfer
// with its paired entries, and mutates the locked balances inside one
// transaction that either commits whole or leaves nothing behind.
type TransferUseCase struct {
	txm       TransactionManager
	transfers TransferRepository
	entries   EntryRepository
	balances  BalanceRepository
	resolver  *BalanceResolver
	retrier   Retrier
	idGen     IDGenerator
	fixtures  bool
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txm TransactionManager,
	transfers TransferRepository,
	entries EntryRepository,
	balances BalanceRepository,
	resolver *BalanceResolver,
	retrier Retrier,
	idGen IDGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		txm:       txm,
		transfers: transfers,
		entries:   entries,
		balances:  balances,
		resolver:  resolver,
		retrier:   retrier,
		idGen:     idGen,
	}
}

// AllowFixtureTransactions tolerates a transaction already carried by
// the context. Set this in tests that run inside a per-test transaction;
// the lock session then locks within it instead of failing with
// ErrLockMustBeOutermostTransaction.
func (uc *TransferUseCase) AllowFixtureTransactions() {
	uc.fixtures = true
}

// Transfer records transfer together with the entries and balance
// updates of every transaction spec, atomically. The transfer must not
// have been persisted before, and this is the only code path that
// persists one.
func (uc *TransferUseCase) Transfer(ctx context.Context, transfer *domain.Transfer, specs []TransactionSpec) ([]TransactionResult, error) {
	if transfer.Persisted() {
		return nil, domain.ErrTransferAlreadyExists
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := checkDuplicateSpecs(specs); err != nil {
		return nil, err
	}

	keys := balanceKeys(transfer.Date, specs)
	session := newLockSession(uc.txm, uc.balances, uc.resolver, uc.retrier, uc.fixtures, keys)

	var results []TransactionResult

	err := session.Run(ctx, func(ctx context.Context, tx Transaction, permit WritePermit) error {
		// A deadlock restart re-enters here from scratch.
		now := time.Now().UTC()
		transfer.ID = uc.idGen.Generate()
		transfer.CreatedAt = now

		if err := uc.transfers.Create(ctx, tx, permit, transfer); err != nil {
			return err
		}

		results = results[:0]
		for _, spec := range specs {
			res, err := uc.applyTransaction(ctx, tx, session, transfer, spec, now)
			if err != nil {
				return err
			}

			results = append(results, res)
		}

		return nil
	})
	if err != nil {
		// Nothing was retained; the object must not look persisted.
		transfer.ID = ""
		transfer.CreatedAt = time.Time{}

		return nil, err
	}

	return results, nil
}

// TransferOne records a transfer consisting of a single transaction.
func (uc *TransferUseCase) TransferOne(ctx context.Context, transfer *domain.Transfer, spec TransactionSpec) (TransactionResult, error) {
	results, err := uc.Transfer(ctx, transfer, []TransactionSpec{spec})
	if err != nil {
		return TransactionResult{}, err
	}

	return results[0], nil
}

// GetTransfer retrieves a transfer by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	return uc.transfers.GetByID(ctx, id)
}

// ListByDocument lists the transfers recorded under a document.
func (uc *TransferUseCase) ListByDocument(ctx context.Context, documentID string) ([]*domain.Transfer, error) {
	return uc.transfers.ListByDocument(ctx, documentID)
}

func (uc *TransferUseCase) applyTransaction(
	ctx context.Context,
	tx Transaction,
	session *LockSession,
	transfer *domain.Transfer,
	spec TransactionSpec,
	now time.Time,
) (TransactionResult, error) {
	if !spec.Amount.IsPositive() {
		return TransactionResult{}, fmt.Errorf("%w: %s", domain.ErrTransactionNegative, spec.Amount)
	}

	debit := &domain.Entry{
		ID:         uc.idGen.Generate(),
		TransferID: transfer.ID,
		AccountID:  spec.DebitAccountID,
		PersonID:   spec.DebitPersonID,
		IsDebit:    true,
		Amount:     spec.Amount,
		CreatedAt:  now,
	}
	credit := &domain.Entry{
		ID:         uc.idGen.Generate(),
		TransferID: transfer.ID,
		AccountID:  spec.CreditAccountID,
		PersonID:   spec.CreditPersonID,
		IsDebit:    false,
		Amount:     spec.Amount,
		CreatedAt:  now,
	}

	if err := uc.entries.Create(ctx, tx, debit); err != nil {
		return TransactionResult{}, err
	}

	if err := uc.entries.Create(ctx, tx, credit); err != nil {
		return TransactionResult{}, err
	}

	res := TransactionResult{Debit: debit, Credit: credit}
	period := domain.PeriodOf(transfer.Date)

	// Debit side first, credit second; committed totals do not depend
	// on the order.
	if spec.DebitPersonID != "" {
		key := domain.BalanceKey{
			AccountID: spec.DebitAccountID,
			PersonID:  spec.DebitPersonID,
			Currency:  spec.Amount.Currency,
			Period:    period,
		}

		snapshot, err := uc.applySide(ctx, session, key, spec.Amount, true)
		if err != nil {
			return TransactionResult{}, err
		}

		res.DebitBalance = snapshot
	}

	if spec.CreditPersonID != "" {
		key := domain.BalanceKey{
			AccountID: spec.CreditAccountID,
			PersonID:  spec.CreditPersonID,
			Currency:  spec.Amount.Currency,
			Period:    period,
		}

		snapshot, err := uc.applySide(ctx, session, key, spec.Amount, false)
		if err != nil {
			return TransactionResult{}, err
		}

		res.CreditBalance = snapshot
	}

	return res, nil
}

// applySide mutates one locked balance: debit subtracts, credit adds.
// The key carries the spec's currency, so each transaction only ever
// meets its own currency's row; Money arithmetic rejects anything else.
func (uc *TransferUseCase) applySide(
	ctx context.Context,
	session *LockSession,
	key domain.BalanceKey,
	amount domain.Money,
	isDebit bool,
) (*domain.AccountBalance, error) {
	locked, err := session.BalanceFor(key)
	if err != nil {
		return nil, err
	}

	if isDebit {
		err = locked.Debit(amount)
	} else {
		err = locked.Credit(amount)
	}

	if err != nil {
		return nil, err
	}

	if err := locked.Save(ctx); err != nil {
		return nil, err
	}

	return locked.Snapshot(), nil
}

// checkDuplicateSpecs rejects structurally equal specs (by value, not
// identity).
func checkDuplicateSpecs(specs []TransactionSpec) error {
	seen := make(map[TransactionSpec]struct{}, len(specs))

	for _, spec := range specs {
		if _, ok := seen[spec]; ok {
			return domain.ErrDuplicateTransactions
		}

		seen[spec] = struct{}{}
	}

	return nil
}

// balanceKeys collects the balance keys of every transaction side that
// names a person. Duplicates are fine; the lock session dedups.
func balanceKeys(date time.Time, specs []TransactionSpec) []domain.BalanceKey {
	period := domain.PeriodOf(date)

	var keys []domain.BalanceKey
	for _, spec := range specs {
		if spec.DebitPersonID != "" {
			keys = append(keys, domain.BalanceKey{
				AccountID: spec.DebitAccountID,
				PersonID:  spec.DebitPersonID,
				Currency:  spec.Amount.Currency,
				Period:    period,
			})
		}

		if spec.CreditPersonID != "" {
			keys = append(keys, domain.BalanceKey{
				AccountID: spec.CreditAccountID,
				PersonID:  spec.CreditPersonID,
				Currency:  spec.Amount.Currency,
				Period:    period,
			})
		}
	}

	return keys
}
