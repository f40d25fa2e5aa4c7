package domain

import (
	"fmt"
	"time"
)

// Entry is one immutable ledger line. Entries are created in
// debit/credit pairs sharing an amount and a transfer, and are never
// updated or deleted.
type Entry struct {
	ID         string
	TransferID string
	AccountID  int64
	PersonID   string
	IsDebit    bool
	Amount     Money
	CreatedAt  time.Time
}

// Validate checks the entry's field invariants.
func (e *Entry) Validate() error {
	if e.TransferID == "" {
		return fmt.Errorf("%w: transfer is required", ErrInvalidEntry)
	}

	if e.AccountID == 0 {
		return fmt.Errorf("%w: account is required", ErrInvalidEntry)
	}

	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidEntry)
	}

	if len(e.Amount.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidEntry)
	}

	return nil
}
