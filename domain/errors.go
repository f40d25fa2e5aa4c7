package domain

import "errors"

var (
	// Transfer protocol errors
	ErrTransferAlreadyExists = errors.New("transfer is already recorded")
	ErrDuplicateTransactions = errors.New("transactions contain duplicates")
	ErrTransactionNegative   = errors.New("transaction amount must be positive")
	ErrMismatchedCurrencies  = errors.New("mismatched currencies")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrTransferNotAllowed    = errors.New("transfers may only be persisted through the transfer protocol")

	// Locking protocol errors
	ErrLockMustBeOutermostTransaction = errors.New("locking must start the outermost transaction")
	ErrLockNotHeld                    = errors.New("no lock held for balance")
	ErrLockDisaster                   = errors.New("balance rows disappeared while locking")
	ErrLockWaitTimeout                = errors.New("timed out waiting for balance locks")

	// Balance errors
	ErrBalanceNotFound   = errors.New("account balance not found")
	ErrPeriodOutOfOrder  = errors.New("accounting period predates the latest balance")
	ErrNegativeBalance   = errors.New("account balance cannot be negative")
	ErrInvalidPeriodDate = errors.New("accounting period must start on the first day of a month")

	// Entity validation and lookup errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrTransferNotFound     = errors.New("transfer not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrDocumentTypeNotFound = errors.New("document type not found")
	ErrPersonNotFound       = errors.New("person not found")
	ErrInvalidAccount       = errors.New("invalid account")
	ErrInvalidDocument      = errors.New("invalid document")
	ErrInvalidDocumentType  = errors.New("invalid document type")
	ErrInvalidPerson        = errors.New("invalid person")
	ErrInvalidTransfer      = errors.New("invalid transfer")
	ErrInvalidEntry         = errors.New("invalid entry")
	ErrUnknownRefType       = errors.New("unregistered reference type")
)
