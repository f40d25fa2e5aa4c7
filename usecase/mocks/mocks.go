package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/usecase"
)

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	mu         sync.Mutex
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu      sync.Mutex
	Started []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Started = append(m.Started, tx)
	return tx, nil
}

// MockRetrier is a mock implementation of Retrier. By default it runs
// the operation once, without any restarts.
type MockRetrier struct {
	mu    sync.Mutex
	Calls int

	RestartOnDeadlockFunc func(ctx context.Context, op func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) RestartOnDeadlock(ctx context.Context, op func() error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.RestartOnDeadlockFunc != nil {
		return m.RestartOnDeadlockFunc(ctx, op)
	}
	return op()
}

// MockIDGenerator generates deterministic sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%04d", m.next)
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]*domain.Account

	CreateFunc  func(ctx context.Context, account *domain.Account) error
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Account, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[int64]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockDocumentTypeRepository is a mock implementation of DocumentTypeRepository.
type MockDocumentTypeRepository struct {
	mu    sync.RWMutex
	types map[string]*domain.DocumentType

	CreateFunc    func(ctx context.Context, documentType *domain.DocumentType) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.DocumentType, error)
	GetByNameFunc func(ctx context.Context, name string) (*domain.DocumentType, error)
	ListFunc      func(ctx context.Context, limit, offset int) ([]*domain.DocumentType, error)
}

func NewMockDocumentTypeRepository() *MockDocumentTypeRepository {
	return &MockDocumentTypeRepository{
		types: make(map[string]*domain.DocumentType),
	}
}

func (m *MockDocumentTypeRepository) Create(ctx context.Context, documentType *domain.DocumentType) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, documentType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[documentType.ID] = documentType
	return nil
}

func (m *MockDocumentTypeRepository) GetByID(ctx context.Context, id string) (*domain.DocumentType, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.types[id]; ok {
		return t, nil
	}
	return nil, domain.ErrDocumentTypeNotFound
}

func (m *MockDocumentTypeRepository) GetByName(ctx context.Context, name string) (*domain.DocumentType, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.types {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, domain.ErrDocumentTypeNotFound
}

func (m *MockDocumentTypeRepository) List(ctx context.Context, limit, offset int) ([]*domain.DocumentType, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var types []*domain.DocumentType
	for _, t := range m.types {
		types = append(types, t)
	}
	return types, nil
}

// MockDocumentRepository is a mock implementation of DocumentRepository.
type MockDocumentRepository struct {
	mu        sync.RWMutex
	documents map[string]*domain.Document

	CreateFunc     func(ctx context.Context, document *domain.Document) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Document, error)
	ListByTypeFunc func(ctx context.Context, documentTypeID string, limit, offset int) ([]*domain.Document, error)
}

func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{
		documents: make(map[string]*domain.Document),
	}
}

func (m *MockDocumentRepository) Create(ctx context.Context, document *domain.Document) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, document)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[document.ID] = document
	return nil
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.documents[id]; ok {
		return d, nil
	}
	return nil, domain.ErrDocumentNotFound
}

func (m *MockDocumentRepository) ListByType(ctx context.Context, documentTypeID string, limit, offset int) ([]*domain.Document, error) {
	if m.ListByTypeFunc != nil {
		return m.ListByTypeFunc(ctx, documentTypeID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var documents []*domain.Document
	for _, d := range m.documents {
		if d.DocumentTypeID == documentTypeID {
			documents = append(documents, d)
		}
	}
	return documents, nil
}

// MockPersonRepository is a mock implementation of PersonRepository.
type MockPersonRepository struct {
	mu     sync.RWMutex
	people map[string]*domain.Person

	CreateFunc          func(ctx context.Context, person *domain.Person) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Person, error)
	GetByPersonableFunc func(ctx context.Context, ref domain.Ref) (*domain.Person, error)
}

func NewMockPersonRepository() *MockPersonRepository {
	return &MockPersonRepository{
		people: make(map[string]*domain.Person),
	}
}

func (m *MockPersonRepository) Create(ctx context.Context, person *domain.Person) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, person)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people[person.ID] = person
	return nil
}

func (m *MockPersonRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.people[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPersonNotFound
}

func (m *MockPersonRepository) GetByPersonable(ctx context.Context, ref domain.Ref) (*domain.Person, error) {
	if m.GetByPersonableFunc != nil {
		return m.GetByPersonableFunc(ctx, ref)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.people {
		if p.Personable == ref {
			return p, nil
		}
	}
	return nil, domain.ErrPersonNotFound
}

// MockTransferRepository is a mock implementation of TransferRepository.
// Like the real one, it refuses to persist a transfer without a held
// write permit.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.Transfer

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, permit usecase.WritePermit, transfer *domain.Transfer) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Transfer, error)
	ListByDocumentFunc func(ctx context.Context, documentID string) ([]*domain.Transfer, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.Transfer),
	}
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, permit usecase.WritePermit, transfer *domain.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, permit, transfer)
	}
	if !permit.Held() {
		return domain.ErrTransferNotAllowed
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *transfer
	m.transfers[transfer.ID] = &copied
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) ListByDocument(ctx context.Context, documentID string) ([]*domain.Transfer, error) {
	if m.ListByDocumentFunc != nil {
		return m.ListByDocumentFunc(ctx, documentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.Transfer
	for _, t := range m.transfers {
		if t.DocumentID == documentID {
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

// Count returns the number of stored transfers.
func (m *MockTransferRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transfers)
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByTransferFunc func(ctx context.Context, transferID string) ([]*domain.Entry, error)
	GetByAccountFunc  func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.entries = append(m.entries, &copied)
	return nil
}

func (m *MockEntryRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.Entry, error) {
	if m.GetByTransferFunc != nil {
		return m.GetByTransferFunc(ctx, transferID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.TransferID == transferID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) GetByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// All returns every stored entry.
func (m *MockEntryRepository) All() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Entry(nil), m.entries...)
}

// MockBalanceRepository is an in-memory mock of BalanceRepository keyed
// the same way the table is.
type MockBalanceRepository struct {
	mu   sync.RWMutex
	rows map[domain.BalanceKey]*domain.AccountBalance

	FindFunc                     func(ctx context.Context, key domain.BalanceKey) (*domain.AccountBalance, error)
	LockForUpdateFunc            func(ctx context.Context, tx usecase.Transaction, keys []domain.BalanceKey) ([]*domain.AccountBalance, error)
	CreateIgnoringDuplicatesFunc func(ctx context.Context, balance *domain.AccountBalance) (bool, error)
	UpdateBalanceFunc            func(ctx context.Context, tx usecase.Transaction, balance *domain.AccountBalance) error
	LatestDateFunc               func(ctx context.Context, accountID int64, personID string) (time.Time, error)
	ListByPersonFunc             func(ctx context.Context, personID string) ([]*domain.AccountBalance, error)
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		rows: make(map[domain.BalanceKey]*domain.AccountBalance),
	}
}

// Seed stores a row directly, bypassing the creation protocol.
func (m *MockBalanceRepository) Seed(balance *domain.AccountBalance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[balance.Key()] = balance
}

// Row returns the stored row for key, or nil.
func (m *MockBalanceRepository) Row(key domain.BalanceKey) *domain.AccountBalance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rows[key]
}

func (m *MockBalanceRepository) Find(ctx context.Context, key domain.BalanceKey) (*domain.AccountBalance, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if row, ok := m.rows[key]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, domain.ErrBalanceNotFound
}

func (m *MockBalanceRepository) LockForUpdate(ctx context.Context, tx usecase.Transaction, keys []domain.BalanceKey) ([]*domain.AccountBalance, error) {
	if m.LockForUpdateFunc != nil {
		return m.LockForUpdateFunc(ctx, tx, keys)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rows []*domain.AccountBalance
	for _, key := range keys {
		if row, ok := m.rows[key]; ok {
			copied := *row
			rows = append(rows, &copied)
		}
	}
	return rows, nil
}

func (m *MockBalanceRepository) CreateIgnoringDuplicates(ctx context.Context, balance *domain.AccountBalance) (bool, error) {
	if m.CreateIgnoringDuplicatesFunc != nil {
		return m.CreateIgnoringDuplicatesFunc(ctx, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := balance.Key()
	if _, ok := m.rows[key]; ok {
		return false, nil
	}
	copied := *balance
	m.rows[key] = &copied
	return true, nil
}

func (m *MockBalanceRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, balance *domain.AccountBalance) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, row := range m.rows {
		if row.ID == balance.ID {
			copied := *balance
			m.rows[key] = &copied
			return nil
		}
	}
	return domain.ErrBalanceNotFound
}

func (m *MockBalanceRepository) LatestDate(ctx context.Context, accountID int64, personID string) (time.Time, error) {
	if m.LatestDateFunc != nil {
		return m.LatestDateFunc(ctx, accountID, personID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest time.Time
	found := false
	for _, row := range m.rows {
		if row.AccountID == accountID && row.PersonID == personID {
			if !found || row.Date.After(latest) {
				latest = row.Date
				found = true
			}
		}
	}
	if !found {
		return time.Time{}, domain.ErrBalanceNotFound
	}
	return latest, nil
}

func (m *MockBalanceRepository) ListByPerson(ctx context.Context, personID string) ([]*domain.AccountBalance, error) {
	if m.ListByPersonFunc != nil {
		return m.ListByPersonFunc(ctx, personID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var balances []*domain.AccountBalance
	for _, row := range m.rows {
		if row.PersonID == personID {
			copied := *row
			balances = append(balances, &copied)
		}
	}
	return balances, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	Rows []domain.TrialBalanceRow

	TrialBalanceFunc func(ctx context.Context) ([]domain.TrialBalanceRow, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) TrialBalance(ctx context.Context) ([]domain.TrialBalanceRow, error) {
	if m.TrialBalanceFunc != nil {
		return m.TrialBalanceFunc(ctx)
	}
	return m.Rows, nil
}
