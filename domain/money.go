package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount in the smallest currency unit
// together with its ISO 4217 code. All arithmetic is integer-only.
type Money struct {
	Cents    int64
	Currency string
}

// Minor-unit exponents for currencies that do not use two decimal places.
var currencyExponents = map[string]int32{
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "OMR": 3, "TND": 3,
	"JPY": 0, "KRW": 0, "VND": 0, "CLP": 0, "ISK": 0,
}

// NewMoney creates a Money value from minor units and a currency code.
func NewMoney(cents int64, currency string) Money {
	return Money{Cents: cents, Currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency string) Money {
	return Money{Currency: currency}
}

// Add returns m + other. Fails when the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrMismatchedCurrencies, m.Currency, other.Currency)
	}

	return Money{Cents: m.Cents + other.Cents, Currency: m.Currency}, nil
}

// Sub returns m - other. Fails when the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrMismatchedCurrencies, m.Currency, other.Currency)
	}

	return Money{Cents: m.Cents - other.Cents, Currency: m.Currency}, nil
}

// Negate returns the amount with its sign flipped.
func (m Money) Negate() Money {
	return Money{Cents: -m.Cents, Currency: m.Currency}
}

// Cmp compares two amounts of the same currency: -1 if m < other,
// 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) (int, error) {
	if m.Currency != other.Currency {
		return 0, fmt.Errorf("%w: %s and %s", ErrMismatchedCurrencies, m.Currency, other.Currency)
	}

	switch {
	case m.Cents < other.Cents:
		return -1, nil
	case m.Cents > other.Cents:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.Cents == other.Cents && m.Currency == other.Currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.Cents == 0 }

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m.Cents > 0 }

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool { return m.Cents < 0 }

// Decimal returns the amount in major units, shifted by the currency's
// minor-unit exponent (2000 USD cents -> 20.00).
func (m Money) Decimal() decimal.Decimal {
	exp, ok := currencyExponents[m.Currency]
	if !ok {
		exp = 2
	}

	return decimal.NewFromInt(m.Cents).Shift(-exp)
}

// String formats the amount for display, e.g. "20.00 USD".
func (m Money) String() string {
	return m.Decimal().String() + " " + m.Currency
}
