package domain

import (
	"fmt"
	"sort"
	"sync"
)

// Ref is a tagged reference to an entity owned by the host application
// (the "documentable" and "personable" associations). The engine stores
// and returns it but never dereferences it.
type Ref struct {
	Type string
	ID   string
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool { return r.Type == "" && r.ID == "" }

func (r Ref) String() string {
	return r.Type + "/" + r.ID
}

// RefRegistry holds the reference type tags the host has declared.
// Writes that carry a Ref with an unregistered tag are rejected, so a
// typo in a tag fails loudly instead of fragmenting the ledger.
type RefRegistry struct {
	mu    sync.RWMutex
	types map[string]struct{}
}

// NewRefRegistry creates a registry with the given type tags.
func NewRefRegistry(types ...string) *RefRegistry {
	r := &RefRegistry{types: make(map[string]struct{}, len(types))}
	for _, t := range types {
		r.types[t] = struct{}{}
	}

	return r
}

// Register adds a type tag.
func (r *RefRegistry) Register(typeTag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[typeTag] = struct{}{}
}

// Validate checks that a non-zero reference uses a registered tag.
func (r *RefRegistry) Validate(ref Ref) error {
	if ref.IsZero() {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.types[ref.Type]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRefType, ref.Type)
	}

	return nil
}

// Types returns the registered tags, sorted.
func (r *RefRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.types))
	for t := range r.types {
		out = append(out, t)
	}
	sort.Strings(out)

	return out
}
