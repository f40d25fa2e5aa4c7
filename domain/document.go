package domain

import (
	"fmt"
	"time"
)

// DocumentType classifies documents (invoice, receipt, payroll, ...).
type DocumentType struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the document type's field invariants.
func (t *DocumentType) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDocumentType)
	}

	if t.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidDocumentType)
	}

	return nil
}

// Document is the real-world cause of a transfer: an invoice, a receipt,
// a payroll run. It may point back at a host entity via Documentable.
type Document struct {
	ID               string
	Date             time.Time
	Number           string
	Description      string
	Comments         string
	InternalComments string
	Documentable     Ref
	ExternalID       string
	DocumentTypeID   string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the document's field invariants.
func (d *Document) Validate() error {
	if d.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDocument)
	}

	if d.Description == "" || len(d.Description) > 300 {
		return fmt.Errorf("%w: description must be 1..300 characters", ErrInvalidDocument)
	}

	if len(d.Number) > 100 {
		return fmt.Errorf("%w: number must be at most 100 characters", ErrInvalidDocument)
	}

	if len(d.ExternalID) > 255 {
		return fmt.Errorf("%w: external id must be at most 255 characters", ErrInvalidDocument)
	}

	if d.DocumentTypeID == "" {
		return fmt.Errorf("%w: document type is required", ErrInvalidDocument)
	}

	return nil
}
