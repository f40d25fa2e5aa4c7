// Package bookkeep is a double-entry bookkeeping engine. Transfers move
// money between accounts as paired debit and credit entries, optionally
// tracked per person in monthly balance rows that are never allowed to
// go negative. The engine embeds into a host application as a library;
// cmd/server wraps it in a reference HTTP service.
package bookkeep

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/bookkeep/domain"
	postgresRepo "github.com/iho/bookkeep/internal/adapter/repository/postgres"
	"github.com/iho/bookkeep/internal/infrastructure/metrics"
	"github.com/iho/bookkeep/internal/infrastructure/postgres"
	"github.com/iho/bookkeep/usecase"
)

// Config configures an embedded ledger.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string. Ignored when Pool
	// is set.
	DatabaseURL string
	// Pool lets the host share its own connection pool.
	Pool *pgxpool.Pool

	MaxConns int
	MinConns int

	// LockTimeout bounds how long a transfer waits for balance row
	// locks. Zero keeps the server default.
	LockTimeout time.Duration

	// RefTypes are the host entity tags accepted in documentable and
	// personable references.
	RefTypes []string

	Logger  zerolog.Logger
	Metrics *metrics.Metrics

	// FixtureTransactions tolerates an ambient transaction on the
	// context, for test suites that wrap each test in one.
	FixtureTransactions bool
}

// Ledger is the embedded bookkeeping engine.
type Ledger struct {
	pool     *pgxpool.Pool
	ownsPool bool
	refs     *domain.RefRegistry

	accounts  *usecase.AccountUseCase
	documents *usecase.DocumentUseCase
	people    *usecase.PersonUseCase
	transfers *usecase.TransferUseCase
	ledger    *usecase.LedgerUseCase
}

// New connects to storage and wires up the engine.
func New(ctx context.Context, cfg Config) (*Ledger, error) {
	pool := cfg.Pool
	ownsPool := false

	if pool == nil {
		maxConns := cfg.MaxConns
		if maxConns == 0 {
			maxConns = 10
		}

		minConns := cfg.MinConns
		if minConns == 0 {
			minConns = 2
		}

		var err error

		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, maxConns, minConns)
		if err != nil {
			return nil, err
		}

		ownsPool = true
	}

	refs := domain.NewRefRegistry(cfg.RefTypes...)

	txManager := postgresRepo.NewTxManager(pool, cfg.LockTimeout)
	retrier := postgresRepo.NewRetrier(cfg.Logger, cfg.Metrics)
	idGen := postgresRepo.NewULIDGenerator()

	accountRepo := postgresRepo.NewAccountRepository(pool)
	documentTypeRepo := postgresRepo.NewDocumentTypeRepository(pool)
	documentRepo := postgresRepo.NewDocumentRepository(pool)
	personRepo := postgresRepo.NewPersonRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool, cfg.Logger, cfg.Metrics)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)

	resolver := usecase.NewBalanceResolver(balanceRepo, idGen)

	transferUC := usecase.NewTransferUseCase(txManager, transferRepo, entryRepo, balanceRepo, resolver, retrier, idGen)
	if cfg.FixtureTransactions {
		transferUC.AllowFixtureTransactions()
	}

	return &Ledger{
		pool:      pool,
		ownsPool:  ownsPool,
		refs:      refs,
		accounts:  usecase.NewAccountUseCase(accountRepo),
		documents: usecase.NewDocumentUseCase(documentRepo, documentTypeRepo, refs, idGen),
		people:    usecase.NewPersonUseCase(personRepo, balanceRepo, refs, idGen),
		transfers: transferUC,
		ledger:    usecase.NewLedgerUseCase(ledgerRepo, entryRepo, balanceRepo),
	}, nil
}

// Close releases the connection pool if the ledger owns it.
func (l *Ledger) Close() {
	if l.ownsPool {
		l.pool.Close()
	}
}

// RegisterRefType adds a host entity tag at runtime.
func (l *Ledger) RegisterRefType(typeTag string) {
	l.refs.Register(typeTag)
}

// Accounts returns the chart-of-accounts operations.
func (l *Ledger) Accounts() *usecase.AccountUseCase { return l.accounts }

// Documents returns document and document type operations.
func (l *Ledger) Documents() *usecase.DocumentUseCase { return l.documents }

// People returns person operations.
func (l *Ledger) People() *usecase.PersonUseCase { return l.people }

// Transfers returns the transfer protocol operations.
func (l *Ledger) Transfers() *usecase.TransferUseCase { return l.transfers }

// Reports returns ledger-wide queries and audits.
func (l *Ledger) Reports() *usecase.LedgerUseCase { return l.ledger }

// Transfer records a transfer with its transactions atomically.
func (l *Ledger) Transfer(ctx context.Context, transfer *domain.Transfer, specs []usecase.TransactionSpec) ([]usecase.TransactionResult, error) {
	return l.transfers.Transfer(ctx, transfer, specs)
}

// TransferOne records a transfer consisting of a single transaction.
func (l *Ledger) TransferOne(ctx context.Context, transfer *domain.Transfer, spec usecase.TransactionSpec) (usecase.TransactionResult, error) {
	return l.transfers.TransferOne(ctx, transfer, spec)
}
