package domain

import (
	"errors"
	"testing"
)

func TestMoney_AddSub(t *testing.T) {
	a := NewMoney(1500, "EUR")
	b := NewMoney(500, "EUR")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Cents != 2000 || sum.Currency != "EUR" {
		t.Errorf("expected 2000 EUR, got %s", sum)
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff.Cents != 1000 {
		t.Errorf("expected 1000, got %d", diff.Cents)
	}

	neg, err := b.Sub(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !neg.IsNegative() {
		t.Errorf("expected negative result, got %d", neg.Cents)
	}
}

func TestMoney_MismatchedCurrencies(t *testing.T) {
	a := NewMoney(100, "EUR")
	b := NewMoney(100, "USD")

	if _, err := a.Add(b); !errors.Is(err, ErrMismatchedCurrencies) {
		t.Errorf("expected ErrMismatchedCurrencies, got %v", err)
	}

	if _, err := a.Sub(b); !errors.Is(err, ErrMismatchedCurrencies) {
		t.Errorf("expected ErrMismatchedCurrencies, got %v", err)
	}

	if _, err := a.Cmp(b); !errors.Is(err, ErrMismatchedCurrencies) {
		t.Errorf("expected ErrMismatchedCurrencies, got %v", err)
	}
}

func TestMoney_Predicates(t *testing.T) {
	if !Zero("EUR").IsZero() {
		t.Error("zero amount should be zero")
	}

	if !NewMoney(1, "EUR").IsPositive() {
		t.Error("1 cent should be positive")
	}

	if !NewMoney(-1, "EUR").IsNegative() {
		t.Error("-1 cent should be negative")
	}

	if !NewMoney(100, "EUR").Negate().Equal(NewMoney(-100, "EUR")) {
		t.Error("negate should flip the sign")
	}
}

func TestMoney_Decimal(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		expected string
	}{
		{"two decimals default", NewMoney(2000, "EUR"), "20"},
		{"two decimals with fraction", NewMoney(2050, "USD"), "20.5"},
		{"zero-decimal currency", NewMoney(2000, "JPY"), "2000"},
		{"three-decimal currency", NewMoney(2000, "KWD"), "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.money.Decimal().String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
