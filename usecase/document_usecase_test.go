package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/bookkeep/domain"
	"github.com/iho/bookkeep/usecase"
	"github.com/iho/bookkeep/usecase/mocks"
)

func newDocumentUseCase() (*usecase.DocumentUseCase, *mocks.MockDocumentTypeRepository) {
	types := mocks.NewMockDocumentTypeRepository()
	uc := usecase.NewDocumentUseCase(
		mocks.NewMockDocumentRepository(),
		types,
		domain.NewRefRegistry("invoice"),
		mocks.NewMockIDGenerator(),
	)
	return uc, types
}

func TestCreateDocumentType(t *testing.T) {
	uc, _ := newDocumentUseCase()

	documentType, err := uc.CreateDocumentType(context.Background(), "invoice", "Incoming invoices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if documentType.ID == "" {
		t.Error("document type must get an id")
	}

	got, err := uc.GetDocumentType(context.Background(), documentType.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "invoice" {
		t.Errorf("expected name invoice, got %s", got.Name)
	}
}

func TestCreateDocumentType_Invalid(t *testing.T) {
	uc, _ := newDocumentUseCase()

	if _, err := uc.CreateDocumentType(context.Background(), "", "desc"); !errors.Is(err, domain.ErrInvalidDocumentType) {
		t.Errorf("expected ErrInvalidDocumentType, got %v", err)
	}
}

func TestCreateDocument(t *testing.T) {
	uc, types := newDocumentUseCase()
	types.Create(context.Background(), &domain.DocumentType{ID: "dt-1", Name: "invoice", Description: "Invoices"})

	input := usecase.CreateDocumentInput{
		Date:           time.Date(2026, time.May, 12, 0, 0, 0, 0, time.UTC),
		Number:         "INV-42",
		Description:    "May invoice",
		Documentable:   domain.Ref{Type: "invoice", ID: "42"},
		DocumentTypeID: "dt-1",
	}

	document, err := uc.CreateDocument(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if document.ID == "" || document.Documentable.ID != "42" {
		t.Errorf("unexpected document: %+v", document)
	}
}

func TestCreateDocument_UnknownRefType(t *testing.T) {
	uc, types := newDocumentUseCase()
	types.Create(context.Background(), &domain.DocumentType{ID: "dt-1", Name: "invoice", Description: "Invoices"})

	input := usecase.CreateDocumentInput{
		Date:           time.Now(),
		Description:    "May invoice",
		Documentable:   domain.Ref{Type: "payroll", ID: "7"},
		DocumentTypeID: "dt-1",
	}

	if _, err := uc.CreateDocument(context.Background(), input); !errors.Is(err, domain.ErrUnknownRefType) {
		t.Errorf("expected ErrUnknownRefType, got %v", err)
	}
}

func TestCreateDocument_MissingType(t *testing.T) {
	uc, _ := newDocumentUseCase()

	input := usecase.CreateDocumentInput{
		Date:           time.Now(),
		Description:    "May invoice",
		DocumentTypeID: "missing",
	}

	if _, err := uc.CreateDocument(context.Background(), input); !errors.Is(err, domain.ErrDocumentTypeNotFound) {
		t.Errorf("expected ErrDocumentTypeNotFound, got %v", err)
	}
}
