package usecase

import (
	"context"
	"time"

	"github.com/iho/bookkeep/domain"
)

// DocumentUseCase handles documents and document types.
type DocumentUseCase struct {
	documents DocumentRepository
	types     DocumentTypeRepository
	refs      *domain.RefRegistry
	idGen     IDGenerator
}

// NewDocumentUseCase creates a new DocumentUseCase.
func NewDocumentUseCase(
	documents DocumentRepository,
	types DocumentTypeRepository,
	refs *domain.RefRegistry,
	idGen IDGenerator,
) *DocumentUseCase {
	return &DocumentUseCase{
		documents: documents,
		types:     types,
		refs:      refs,
		idGen:     idGen,
	}
}

// CreateDocumentType registers a document classification.
func (uc *DocumentUseCase) CreateDocumentType(ctx context.Context, name, description string) (*domain.DocumentType, error) {
	now := time.Now().UTC()
	documentType := &domain.DocumentType{
		ID:          uc.idGen.Generate(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := documentType.Validate(); err != nil {
		return nil, err
	}

	if err := uc.types.Create(ctx, documentType); err != nil {
		return nil, err
	}

	return documentType, nil
}

// GetDocumentType retrieves a document type by ID.
func (uc *DocumentUseCase) GetDocumentType(ctx context.Context, id string) (*domain.DocumentType, error) {
	return uc.types.GetByID(ctx, id)
}

// ListDocumentTypes lists document types with pagination.
func (uc *DocumentUseCase) ListDocumentTypes(ctx context.Context, limit, offset int) ([]*domain.DocumentType, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	return uc.types.List(ctx, limit, offset)
}

// CreateDocumentInput represents input for creating a document.
type CreateDocumentInput struct {
	Date             time.Time
	Number           string
	Description      string
	Comments         string
	InternalComments string
	Documentable     domain.Ref
	ExternalID       string
	DocumentTypeID   string
}

// CreateDocument records the real-world cause of upcoming transfers.
func (uc *DocumentUseCase) CreateDocument(ctx context.Context, input CreateDocumentInput) (*domain.Document, error) {
	if err := uc.refs.Validate(input.Documentable); err != nil {
		return nil, err
	}

	if _, err := uc.types.GetByID(ctx, input.DocumentTypeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	document := &domain.Document{
		ID:               uc.idGen.Generate(),
		Date:             input.Date,
		Number:           input.Number,
		Description:      input.Description,
		Comments:         input.Comments,
		InternalComments: input.InternalComments,
		Documentable:     input.Documentable,
		ExternalID:       input.ExternalID,
		DocumentTypeID:   input.DocumentTypeID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := document.Validate(); err != nil {
		return nil, err
	}

	if err := uc.documents.Create(ctx, document); err != nil {
		return nil, err
	}

	return document, nil
}

// GetDocument retrieves a document by ID.
func (uc *DocumentUseCase) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	return uc.documents.GetByID(ctx, id)
}
