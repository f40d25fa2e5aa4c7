package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

const createTransferQuery = `
INSERT INTO ledger_transfers (id, date, ledger_document_id, description, created_at)
VALUES ($1, $2, $3, $4, $5)`

// Create persists a transfer inside tx. The permit must come from the
// lock session running the transfer; a zero permit is refused so no
// caller can write a transfer outside the protocol.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, permit usecase.WritePermit, transfer *domain.Transfer) error {
	if !permit.Held() {
		return domain.ErrTransferNotAllowed
	}

	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createTransferQuery,
		transfer.ID,
		transfer.Date,
		transfer.DocumentID,
		transfer.Description,
		transfer.CreatedAt,
	)

	return err
}

const getTransferQuery = `
SELECT id, date, ledger_document_id, description, created_at
FROM ledger_transfers
WHERE id = $1`

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	transfer := &domain.Transfer{}

	err := r.pool.QueryRow(ctx, getTransferQuery, id).Scan(
		&transfer.ID,
		&transfer.Date,
		&transfer.DocumentID,
		&transfer.Description,
		&transfer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return transfer, nil
}

const listTransfersByDocumentQuery = `
SELECT id, date, ledger_document_id, description, created_at
FROM ledger_transfers
WHERE ledger_document_id = $1
ORDER BY created_at`

// ListByDocument returns all transfers recorded against a document.
func (r *TransferRepository) ListByDocument(ctx context.Context, documentID string) ([]*domain.Transfer, error) {
	rows, err := r.pool.Query(ctx, listTransfersByDocumentQuery, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer

	for rows.Next() {
		transfer := &domain.Transfer{}

		err := rows.Scan(
			&transfer.ID,
			&transfer.Date,
			&transfer.DocumentID,
			&transfer.Description,
			&transfer.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}
