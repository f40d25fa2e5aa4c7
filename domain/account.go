package domain

import (
	"fmt"
	"time"
)

// AccountType classifies a bookkeeping account.
type AccountType string

const (
	AccountTypeActive  AccountType = "active"
	AccountTypePassive AccountType = "passive"
	AccountTypeMixed   AccountType = "mixed"
)

// Valid reports whether the account type is one of the known values.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeActive, AccountTypePassive, AccountTypeMixed:
		return true
	}

	return false
}

// Account is one account of the chart of accounts. The id is assigned by
// the bookkeeper (account 100, 4010, ...), not generated, and both id and
// name are unique. Accounts referenced by entries are immutable by
// convention.
type Account struct {
	ID           int64
	Name         string
	OfficialCode string
	Type         AccountType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the account's field invariants.
func (a *Account) Validate() error {
	if a.ID == 0 {
		return fmt.Errorf("%w: id must be assigned", ErrInvalidAccount)
	}

	if a.Name == "" || len(a.Name) > 255 {
		return fmt.Errorf("%w: name must be 1..255 characters", ErrInvalidAccount)
	}

	if len(a.OfficialCode) > 20 {
		return fmt.Errorf("%w: official code must be at most 20 characters", ErrInvalidAccount)
	}

	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown account type %q", ErrInvalidAccount, a.Type)
	}

	return nil
}
