package usecase

import (
	"context"
	"time"

	"github.com/iho/bookkeep/domain"
)

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier restarts a transactional unit of work when the storage engine
// reports a deadlock or serialization failure. The unit must be free of
// side effects outside its transaction, since it re-runs from the start.
type Retrier interface {
	RestartOnDeadlock(ctx context.Context, op func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// AccountRepository defines data access for chart-of-accounts entries.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// DocumentTypeRepository defines data access for document types.
type DocumentTypeRepository interface {
	Create(ctx context.Context, documentType *domain.DocumentType) error
	GetByID(ctx context.Context, id string) (*domain.DocumentType, error)
	GetByName(ctx context.Context, name string) (*domain.DocumentType, error)
	List(ctx context.Context, limit, offset int) ([]*domain.DocumentType, error)
}

// DocumentRepository defines data access for documents.
type DocumentRepository interface {
	Create(ctx context.Context, document *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByType(ctx context.Context, documentTypeID string, limit, offset int) ([]*domain.Document, error)
}

// PersonRepository defines data access for people.
type PersonRepository interface {
	Create(ctx context.Context, person *domain.Person) error
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	GetByPersonable(ctx context.Context, ref domain.Ref) (*domain.Person, error)
}

// TransferRepository defines data access for transfers. Create demands a
// write permit issued by an open lock session; implementations reject
// calls without one, so a transfer can never be saved outside the
// transfer protocol.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, permit WritePermit, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
	ListByDocument(ctx context.Context, documentID string) ([]*domain.Transfer, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error)
	GetByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error)
}

// BalanceRepository defines data access for account balance rows.
type BalanceRepository interface {
	Find(ctx context.Context, key domain.BalanceKey) (*domain.AccountBalance, error)
	// LockForUpdate acquires row locks for the given keys, one by one in
	// the order given, inside tx. Keys whose rows do not exist yet are
	// simply absent from the result.
	LockForUpdate(ctx context.Context, tx Transaction, keys []domain.BalanceKey) ([]*domain.AccountBalance, error)
	// CreateIgnoringDuplicates inserts the row, treating a uniqueness
	// violation as success by a concurrent creator. It reports whether
	// this call inserted the row.
	CreateIgnoringDuplicates(ctx context.Context, balance *domain.AccountBalance) (bool, error)
	UpdateBalance(ctx context.Context, tx Transaction, balance *domain.AccountBalance) error
	// LatestDate returns the newest period date recorded for the
	// (account, person) pair, or domain.ErrBalanceNotFound.
	LatestDate(ctx context.Context, accountID int64, personID string) (time.Time, error)
	ListByPerson(ctx context.Context, personID string) ([]*domain.AccountBalance, error)
}

// LedgerRepository defines ledger-wide queries.
type LedgerRepository interface {
	TrialBalance(ctx context.Context) ([]domain.TrialBalanceRow, error)
}

type txContextKey struct{}

// ContextWithTransaction marks ctx as running inside tx. The lock
// session uses the mark to refuse nested acquisition.
func ContextWithTransaction(ctx context.Context, tx Transaction) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TransactionFromContext returns the transaction ctx runs inside, if any.
func TransactionFromContext(ctx context.Context) Transaction {
	tx, _ := ctx.Value(txContextKey{}).(Transaction)
	return tx
}
