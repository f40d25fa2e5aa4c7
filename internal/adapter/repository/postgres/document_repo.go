package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookkeep/domain"
)

// DocumentTypeRepository implements usecase.DocumentTypeRepository.
type DocumentTypeRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentTypeRepository creates a new DocumentTypeRepository.
func NewDocumentTypeRepository(pool *pgxpool.Pool) *DocumentTypeRepository {
	return &DocumentTypeRepository{pool: pool}
}

const createDocumentTypeQuery = `
INSERT INTO ledger_document_types (id, name, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

// Create creates a new document type.
func (r *DocumentTypeRepository) Create(ctx context.Context, documentType *domain.DocumentType) error {
	_, err := r.pool.Exec(ctx, createDocumentTypeQuery,
		documentType.ID,
		documentType.Name,
		documentType.Description,
		documentType.CreatedAt,
		documentType.UpdatedAt,
	)

	return err
}

const getDocumentTypeQuery = `
SELECT id, name, description, created_at, updated_at
FROM ledger_document_types
WHERE id = $1`

// GetByID retrieves a document type by ID.
func (r *DocumentTypeRepository) GetByID(ctx context.Context, id string) (*domain.DocumentType, error) {
	return r.getDocumentType(ctx, getDocumentTypeQuery, id)
}

const getDocumentTypeByNameQuery = `
SELECT id, name, description, created_at, updated_at
FROM ledger_document_types
WHERE name = $1`

// GetByName retrieves a document type by its unique name.
func (r *DocumentTypeRepository) GetByName(ctx context.Context, name string) (*domain.DocumentType, error) {
	return r.getDocumentType(ctx, getDocumentTypeByNameQuery, name)
}

func (r *DocumentTypeRepository) getDocumentType(ctx context.Context, query string, arg any) (*domain.DocumentType, error) {
	documentType := &domain.DocumentType{}

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&documentType.ID,
		&documentType.Name,
		&documentType.Description,
		&documentType.CreatedAt,
		&documentType.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDocumentTypeNotFound
		}

		return nil, err
	}

	return documentType, nil
}

const listDocumentTypesQuery = `
SELECT id, name, description, created_at, updated_at
FROM ledger_document_types
ORDER BY name
LIMIT $1 OFFSET $2`

// List lists document types with pagination.
func (r *DocumentTypeRepository) List(ctx context.Context, limit, offset int) ([]*domain.DocumentType, error) {
	rows, err := r.pool.Query(ctx, listDocumentTypesQuery, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*domain.DocumentType

	for rows.Next() {
		documentType := &domain.DocumentType{}

		err := rows.Scan(
			&documentType.ID,
			&documentType.Name,
			&documentType.Description,
			&documentType.CreatedAt,
			&documentType.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		types = append(types, documentType)
	}

	return types, rows.Err()
}

// DocumentRepository implements usecase.DocumentRepository.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

const createDocumentQuery = `
INSERT INTO ledger_documents
	(id, date, number, description, comments, internal_comments,
	 documentable_type, documentable_id, external_id, ledger_document_type_id,
	 created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// Create creates a new document.
func (r *DocumentRepository) Create(ctx context.Context, document *domain.Document) error {
	_, err := r.pool.Exec(ctx, createDocumentQuery,
		document.ID,
		document.Date,
		document.Number,
		document.Description,
		nullable(document.Comments),
		nullable(document.InternalComments),
		nullable(document.Documentable.Type),
		nullable(document.Documentable.ID),
		document.ExternalID,
		document.DocumentTypeID,
		document.CreatedAt,
		document.UpdatedAt,
	)

	return err
}

const documentColumns = `id, date, number, description, comments, internal_comments,
	documentable_type, documentable_id, external_id, ledger_document_type_id,
	created_at, updated_at`

const getDocumentQuery = `
SELECT ` + documentColumns + `
FROM ledger_documents
WHERE id = $1`

// GetByID retrieves a document by ID.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	document, err := scanDocument(r.pool.QueryRow(ctx, getDocumentQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}

		return nil, err
	}

	return document, nil
}

const listDocumentsByTypeQuery = `
SELECT ` + documentColumns + `
FROM ledger_documents
WHERE ledger_document_type_id = $1
ORDER BY date DESC, id
LIMIT $2 OFFSET $3`

// ListByType lists documents of a type, newest first.
func (r *DocumentRepository) ListByType(ctx context.Context, documentTypeID string, limit, offset int) ([]*domain.Document, error) {
	rows, err := r.pool.Query(ctx, listDocumentsByTypeQuery, documentTypeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*domain.Document

	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}

		documents = append(documents, document)
	}

	return documents, rows.Err()
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	document := &domain.Document{}

	var comments, internalComments, documentableType, documentableID *string

	err := row.Scan(
		&document.ID,
		&document.Date,
		&document.Number,
		&document.Description,
		&comments,
		&internalComments,
		&documentableType,
		&documentableID,
		&document.ExternalID,
		&document.DocumentTypeID,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	document.Comments = orEmpty(comments)
	document.InternalComments = orEmpty(internalComments)
	document.Documentable = domain.Ref{
		Type: orEmpty(documentableType),
		ID:   orEmpty(documentableID),
	}

	return document, nil
}
