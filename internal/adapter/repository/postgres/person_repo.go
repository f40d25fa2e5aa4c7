package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bookkeep/domain"
)

// PersonRepository implements usecase.PersonRepository.
type PersonRepository struct {
	pool *pgxpool.Pool
}

// NewPersonRepository creates a new PersonRepository.
func NewPersonRepository(pool *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{pool: pool}
}

const createPersonQuery = `
INSERT INTO ledger_people (id, personable_type, personable_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`

// Create creates a new person.
func (r *PersonRepository) Create(ctx context.Context, person *domain.Person) error {
	_, err := r.pool.Exec(ctx, createPersonQuery,
		person.ID,
		person.Personable.Type,
		person.Personable.ID,
		person.CreatedAt,
		person.UpdatedAt,
	)

	return err
}

const getPersonQuery = `
SELECT id, personable_type, personable_id, created_at, updated_at
FROM ledger_people
WHERE id = $1`

// GetByID retrieves a person by ID.
func (r *PersonRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	return r.getPerson(ctx, getPersonQuery, id)
}

const getPersonByPersonableQuery = `
SELECT id, personable_type, personable_id, created_at, updated_at
FROM ledger_people
WHERE personable_type = $1 AND personable_id = $2`

// GetByPersonable retrieves the person wrapping a host reference.
func (r *PersonRepository) GetByPersonable(ctx context.Context, ref domain.Ref) (*domain.Person, error) {
	return r.getPerson(ctx, getPersonByPersonableQuery, ref.Type, ref.ID)
}

func (r *PersonRepository) getPerson(ctx context.Context, query string, args ...any) (*domain.Person, error) {
	person := &domain.Person{}

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&person.ID,
		&person.Personable.Type,
		&person.Personable.ID,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPersonNotFound
		}

		return nil, err
	}

	return person, nil
}
