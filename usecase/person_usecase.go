package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/bookkeep/domain"
)

// PersonUseCase handles the engine's person records, each wrapping a
// host-side identity.
type PersonUseCase struct {
	people   PersonRepository
	balances BalanceRepository
	refs     *domain.RefRegistry
	idGen    IDGenerator
}

// NewPersonUseCase creates a new PersonUseCase.
func NewPersonUseCase(
	people PersonRepository,
	balances BalanceRepository,
	refs *domain.RefRegistry,
	idGen IDGenerator,
) *PersonUseCase {
	return &PersonUseCase{
		people:   people,
		balances: balances,
		refs:     refs,
		idGen:    idGen,
	}
}

// FindOrCreatePerson returns the person wrapping the given host
// reference, creating the record on first sight.
func (uc *PersonUseCase) FindOrCreatePerson(ctx context.Context, personable domain.Ref) (*domain.Person, error) {
	if err := uc.refs.Validate(personable); err != nil {
		return nil, err
	}

	existing, err := uc.people.GetByPersonable(ctx, personable)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, domain.ErrPersonNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	person := &domain.Person{
		ID:         uc.idGen.Generate(),
		Personable: personable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := person.Validate(); err != nil {
		return nil, err
	}

	if err := uc.people.Create(ctx, person); err != nil {
		return nil, err
	}

	return person, nil
}

// GetPerson retrieves a person by ID.
func (uc *PersonUseCase) GetPerson(ctx context.Context, id string) (*domain.Person, error) {
	return uc.people.GetByID(ctx, id)
}

// ListBalances returns all balance rows of a person, across accounts
// and periods.
func (uc *PersonUseCase) ListBalances(ctx context.Context, personID string) ([]*domain.AccountBalance, error) {
	return uc.balances.ListByPerson(ctx, personID)
}
