package domain

import (
	"fmt"
	"time"
)

// Period is one accounting period: a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the accounting period a date falls in.
func PeriodOf(date time.Time) Period {
	return Period{Year: date.Year(), Month: date.Month()}
}

// Start returns the first day of the period, the normalized form every
// balance row's date is stored in.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Before reports whether p precedes other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}

	return p.Month < other.Month
}

func (p Period) String() string {
	return p.Start().Format("2006-01")
}

// BalanceKey identifies one balance row: the running total of a person
// on an account in one currency for one accounting period. It is the
// unit of locking.
type BalanceKey struct {
	AccountID int64
	PersonID  string
	Currency  string
	Period    Period
}

// Less defines the canonical lock order: account, then person, then
// currency, then period. Every lock session acquires row locks in this
// order, which is what keeps concurrent transfers over overlapping rows
// from deadlocking.
func (k BalanceKey) Less(other BalanceKey) bool {
	if k.AccountID != other.AccountID {
		return k.AccountID < other.AccountID
	}

	if k.PersonID != other.PersonID {
		return k.PersonID < other.PersonID
	}

	if k.Currency != other.Currency {
		return k.Currency < other.Currency
	}

	return k.Period.Before(other.Period)
}

func (k BalanceKey) String() string {
	return fmt.Sprintf("account %d, person %s, %s, %s", k.AccountID, k.PersonID, k.Currency, k.Period)
}

// AccountBalance is the mutable per-(person, account, currency, month)
// running total, and the sole target of row locking. Rows are created
// lazily by the first transfer that touches the key, updated in place by
// later transfers in the same period, and never deleted. The balance
// never goes below zero; the business layer raises ErrInsufficientFunds
// before the storage CHECK would fire.
type AccountBalance struct {
	ID        string
	PersonID  string
	AccountID int64
	Balance   Money
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the row's balance key.
func (b *AccountBalance) Key() BalanceKey {
	return BalanceKey{
		AccountID: b.AccountID,
		PersonID:  b.PersonID,
		Currency:  b.Balance.Currency,
		Period:    PeriodOf(b.Date),
	}
}

// Validate checks the balance row's field invariants.
func (b *AccountBalance) Validate() error {
	if b.PersonID == "" || b.AccountID == 0 {
		return fmt.Errorf("%w: person and account are required", ErrBalanceNotFound)
	}

	if b.Balance.IsNegative() {
		return ErrNegativeBalance
	}

	if b.Date.Day() != 1 {
		return ErrInvalidPeriodDate
	}

	return nil
}
