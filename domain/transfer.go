package domain

import (
	"fmt"
	"time"
)

// Transfer is one atomic batch of transactions sharing a document, date
// and description. A transfer is only ever persisted by the transfer
// protocol together with its paired entries; saving one on its own would
// break the zero-sum invariant.
type Transfer struct {
	ID          string
	Date        time.Time
	DocumentID  string
	Description string
	CreatedAt   time.Time
}

// Persisted reports whether the transfer has been recorded. The protocol
// assigns the id at persist time, so an unsaved transfer has none.
func (t *Transfer) Persisted() bool { return t.ID != "" }

// Validate checks the transfer's field invariants.
func (t *Transfer) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTransfer)
	}

	if len(t.Description) < 5 || len(t.Description) > 255 {
		return fmt.Errorf("%w: description must be 5..255 characters", ErrInvalidTransfer)
	}

	if t.DocumentID == "" {
		return fmt.Errorf("%w: document is required", ErrInvalidTransfer)
	}

	return nil
}
