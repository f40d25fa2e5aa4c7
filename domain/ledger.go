package domain

// TrialBalanceRow is the per-currency sum of debit and credit entries
// across the whole ledger. Every committed transfer nets to zero, so
// debits and credits must agree in every currency.
type TrialBalanceRow struct {
	Currency    string
	DebitCents  int64
	CreditCents int64
}

// Debits returns the debit total as Money.
func (r TrialBalanceRow) Debits() Money { return NewMoney(r.DebitCents, r.Currency) }

// Credits returns the credit total as Money.
func (r TrialBalanceRow) Credits() Money { return NewMoney(r.CreditCents, r.Currency) }

// Balanced reports whether the row nets to zero.
func (r TrialBalanceRow) Balanced() bool { return r.DebitCents == r.CreditCents }
