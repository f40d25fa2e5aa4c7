package domain

import (
	"errors"
	"testing"
)

func TestRefRegistry_Validate(t *testing.T) {
	registry := NewRefRegistry("user", "invoice")

	if err := registry.Validate(Ref{Type: "user", ID: "42"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// A zero reference is simply absent, not invalid.
	if err := registry.Validate(Ref{}); err != nil {
		t.Errorf("unexpected error for zero ref: %v", err)
	}

	if err := registry.Validate(Ref{Type: "payroll", ID: "7"}); !errors.Is(err, ErrUnknownRefType) {
		t.Errorf("expected ErrUnknownRefType, got %v", err)
	}
}

func TestRefRegistry_Register(t *testing.T) {
	registry := NewRefRegistry("user")

	if err := registry.Validate(Ref{Type: "invoice", ID: "7"}); !errors.Is(err, ErrUnknownRefType) {
		t.Fatalf("expected ErrUnknownRefType before registering, got %v", err)
	}

	registry.Register("invoice")

	if err := registry.Validate(Ref{Type: "invoice", ID: "7"}); err != nil {
		t.Errorf("unexpected error after registering: %v", err)
	}

	types := registry.Types()
	if len(types) != 2 || types[0] != "invoice" || types[1] != "user" {
		t.Errorf("expected sorted [invoice user], got %v", types)
	}
}

func TestRef_String(t *testing.T) {
	ref := Ref{Type: "user", ID: "42"}
	if ref.String() != "user/42" {
		t.Errorf("expected user/42, got %s", ref.String())
	}
	if ref.IsZero() {
		t.Error("non-empty ref should not be zero")
	}
}
