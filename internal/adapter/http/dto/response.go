package dto

import (
	"time"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/usecase"
)

// MoneyResponse renders an amount both in integer minor units and as a
// decimal string scaled for the currency.
type MoneyResponse struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// MoneyFromDomain converts domain money to a response.
func MoneyFromDomain(m domain.Money) MoneyResponse {
	return MoneyResponse{
		Cents:    m.Cents,
		Currency: m.Currency,
		Amount:   m.Decimal().String(),
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	OfficialCode string    `json:"official_code,omitempty"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:           a.ID,
		Name:         a.Name,
		OfficialCode: a.OfficialCode,
		Type:         string(a.Type),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}

	return result
}

// DocumentTypeResponse represents a document type in API responses.
type DocumentTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentTypeFromDomain converts a domain document type to a response.
func DocumentTypeFromDomain(t *domain.DocumentType) *DocumentTypeResponse {
	return &DocumentTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// DocumentTypesFromDomain converts domain document types to responses.
func DocumentTypesFromDomain(types []*domain.DocumentType) []*DocumentTypeResponse {
	result := make([]*DocumentTypeResponse, len(types))
	for i, t := range types {
		result[i] = DocumentTypeFromDomain(t)
	}

	return result
}

// RefResponse represents a polymorphic reference in API responses.
type RefResponse struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// DocumentResponse represents a document in API responses.
type DocumentResponse struct {
	ID               string       `json:"id"`
	Date             time.Time    `json:"date"`
	Number           string       `json:"number,omitempty"`
	Description      string       `json:"description"`
	Comments         string       `json:"comments,omitempty"`
	InternalComments string       `json:"internal_comments,omitempty"`
	Documentable     *RefResponse `json:"documentable,omitempty"`
	ExternalID       string       `json:"external_id,omitempty"`
	DocumentTypeID   string       `json:"document_type_id"`
	CreatedAt        time.Time    `json:"created_at"`
}

// DocumentFromDomain converts a domain document to a response.
func DocumentFromDomain(d *domain.Document) *DocumentResponse {
	resp := &DocumentResponse{
		ID:               d.ID,
		Date:             d.Date,
		Number:           d.Number,
		Description:      d.Description,
		Comments:         d.Comments,
		InternalComments: d.InternalComments,
		ExternalID:       d.ExternalID,
		DocumentTypeID:   d.DocumentTypeID,
		CreatedAt:        d.CreatedAt,
	}

	if !d.Documentable.IsZero() {
		resp.Documentable = &RefResponse{Type: d.Documentable.Type, ID: d.Documentable.ID}
	}

	return resp
}

// PersonResponse represents a person in API responses.
type PersonResponse struct {
	ID         string      `json:"id"`
	Personable RefResponse `json:"personable"`
	CreatedAt  time.Time   `json:"created_at"`
}

// PersonFromDomain converts a domain person to a response.
func PersonFromDomain(p *domain.Person) *PersonResponse {
	return &PersonResponse{
		ID:         p.ID,
		Personable: RefResponse{Type: p.Personable.Type, ID: p.Personable.ID},
		CreatedAt:  p.CreatedAt,
	}
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	DocumentID  string    `json:"document_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransferFromDomain converts a domain transfer to a response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:          t.ID,
		Date:        t.Date,
		DocumentID:  t.DocumentID,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}

	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID         string        `json:"id"`
	TransferID string        `json:"transfer_id"`
	AccountID  int64         `json:"account_id"`
	PersonID   string        `json:"person_id,omitempty"`
	Side       string        `json:"side"`
	Amount     MoneyResponse `json:"amount"`
	CreatedAt  time.Time     `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	side := "credit"
	if e.IsDebit {
		side = "debit"
	}

	return &EntryResponse{
		ID:         e.ID,
		TransferID: e.TransferID,
		AccountID:  e.AccountID,
		PersonID:   e.PersonID,
		Side:       side,
		Amount:     MoneyFromDomain(e.Amount),
		CreatedAt:  e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}

	return result
}

// BalanceResponse represents an account balance row in API responses.
type BalanceResponse struct {
	ID        string        `json:"id"`
	AccountID int64         `json:"account_id"`
	PersonID  string        `json:"person_id"`
	Balance   MoneyResponse `json:"balance"`
	Period    string        `json:"period"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BalanceFromDomain converts a domain balance row to a response.
func BalanceFromDomain(b *domain.AccountBalance) *BalanceResponse {
	return &BalanceResponse{
		ID:        b.ID,
		AccountID: b.AccountID,
		PersonID:  b.PersonID,
		Balance:   MoneyFromDomain(b.Balance),
		Period:    b.Key().Period.String(),
		UpdatedAt: b.UpdatedAt,
	}
}

// BalancesFromDomain converts domain balance rows to responses.
func BalancesFromDomain(balances []*domain.AccountBalance) []*BalanceResponse {
	result := make([]*BalanceResponse, len(balances))
	for i, b := range balances {
		result[i] = BalanceFromDomain(b)
	}

	return result
}

// TransactionResultResponse represents the outcome of one transaction.
type TransactionResultResponse struct {
	Debit         *EntryResponse   `json:"debit"`
	Credit        *EntryResponse   `json:"credit"`
	DebitBalance  *BalanceResponse `json:"debit_balance,omitempty"`
	CreditBalance *BalanceResponse `json:"credit_balance,omitempty"`
}

// TransferResultResponse represents a committed transfer with the
// outcome of each of its transactions.
type TransferResultResponse struct {
	Transfer *TransferResponse           `json:"transfer"`
	Results  []TransactionResultResponse `json:"results"`
}

// TransferResultFromDomain builds the response for a committed transfer.
func TransferResultFromDomain(t *domain.Transfer, results []usecase.TransactionResult) *TransferResultResponse {
	resp := &TransferResultResponse{
		Transfer: TransferFromDomain(t),
		Results:  make([]TransactionResultResponse, len(results)),
	}

	for i, res := range results {
		item := TransactionResultResponse{
			Debit:  EntryFromDomain(res.Debit),
			Credit: EntryFromDomain(res.Credit),
		}

		if res.DebitBalance != nil {
			item.DebitBalance = BalanceFromDomain(res.DebitBalance)
		}

		if res.CreditBalance != nil {
			item.CreditBalance = BalanceFromDomain(res.CreditBalance)
		}

		resp.Results[i] = item
	}

	return resp
}

// TrialBalanceRowResponse represents one currency line of the trial
// balance.
type TrialBalanceRowResponse struct {
	Currency    string `json:"currency"`
	DebitCents  int64  `json:"debit_cents"`
	CreditCents int64  `json:"credit_cents"`
	Balanced    bool   `json:"balanced"`
}

// TrialBalanceResponse represents the trial balance report.
type TrialBalanceResponse struct {
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Balanced bool                      `json:"balanced"`
}

// TrialBalanceFromDomain converts a trial balance report to a response.
func TrialBalanceFromDomain(report *usecase.TrialBalanceReport) *TrialBalanceResponse {
	resp := &TrialBalanceResponse{
		Rows:     make([]TrialBalanceRowResponse, len(report.Rows)),
		Balanced: report.Balanced,
	}

	for i, row := range report.Rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			Currency:    row.Currency,
			DebitCents:  row.DebitCents,
			CreditCents: row.CreditCents,
			Balanced:    row.Balanced(),
		}
	}

	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
