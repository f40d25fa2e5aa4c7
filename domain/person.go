package domain

import (
	"fmt"
	"time"
)

// Person is the engine's opaque identity for the host application's
// "who": it wraps a polymorphic reference to whatever entity the host
// keeps balances for (a user, a company, a cost center).
type Person struct {
	ID         string
	Personable Ref
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the person's field invariants.
func (p *Person) Validate() error {
	if p.Personable.IsZero() {
		return fmt.Errorf("%w: personable reference is required", ErrInvalidPerson)
	}

	return nil
}
