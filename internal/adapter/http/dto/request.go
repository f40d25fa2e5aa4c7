package dto

import (
	"time"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/usecase"
)

// RefRequest represents a polymorphic reference into the host system.
type RefRequest struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ToDomain converts to a domain reference.
func (r RefRequest) ToDomain() domain.Ref {
	return domain.Ref{Type: r.Type, ID: r.ID}
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	OfficialCode string `json:"official_code,omitempty"`
	Type         string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		ID:           r.ID,
		Name:         r.Name,
		OfficialCode: r.OfficialCode,
		Type:         domain.AccountType(r.Type),
	}
}

// CreateDocumentTypeRequest represents a request to create a document type.
type CreateDocumentTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateDocumentRequest represents a request to create a document.
type CreateDocumentRequest struct {
	Date             time.Time   `json:"date"`
	Number           string      `json:"number,omitempty"`
	Description      string      `json:"description"`
	Comments         string      `json:"comments,omitempty"`
	InternalComments string      `json:"internal_comments,omitempty"`
	Documentable     *RefRequest `json:"documentable,omitempty"`
	ExternalID       string      `json:"external_id,omitempty"`
	DocumentTypeID   string      `json:"document_type_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDocumentRequest) ToUseCaseInput() usecase.CreateDocumentInput {
	input := usecase.CreateDocumentInput{
		Date:             r.Date,
		Number:           r.Number,
		Description:      r.Description,
		Comments:         r.Comments,
		InternalComments: r.InternalComments,
		ExternalID:       r.ExternalID,
		DocumentTypeID:   r.DocumentTypeID,
	}

	if r.Documentable != nil {
		input.Documentable = r.Documentable.ToDomain()
	}

	return input
}

// CreatePersonRequest represents a request to find or create a person.
type CreatePersonRequest struct {
	Personable RefRequest `json:"personable"`
}

// TransactionRequest represents one elementary transaction of a transfer.
type TransactionRequest struct {
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
	DebitAccountID  int64  `json:"debit_account_id"`
	CreditAccountID int64  `json:"credit_account_id"`
	DebitPersonID   string `json:"debit_person_id,omitempty"`
	CreditPersonID  string `json:"credit_person_id,omitempty"`
}

// ToSpec converts to a transaction spec.
func (r TransactionRequest) ToSpec() usecase.TransactionSpec {
	return usecase.TransactionSpec{
		Amount:          domain.NewMoney(r.AmountCents, r.Currency),
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		DebitPersonID:   r.DebitPersonID,
		CreditPersonID:  r.CreditPersonID,
	}
}

// CreateTransferRequest represents a request to record a transfer.
type CreateTransferRequest struct {
	Date         time.Time            `json:"date"`
	DocumentID   string               `json:"document_id"`
	Description  string               `json:"description"`
	Transactions []TransactionRequest `json:"transactions"`
}

// ToDomain converts to an unpersisted domain transfer plus its specs.
func (r *CreateTransferRequest) ToDomain() (*domain.Transfer, []usecase.TransactionSpec) {
	transfer := &domain.Transfer{
		Date:        r.Date,
		DocumentID:  r.DocumentID,
		Description: r.Description,
	}

	specs := make([]usecase.TransactionSpec, len(r.Transactions))
	for i, t := range r.Transactions {
		specs[i] = t.ToSpec()
	}

	return transfer, specs
}
