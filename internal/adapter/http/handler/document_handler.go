package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bookkeep/internal/adapter/http/dto"
	"github.com/iho/bookkeep/usecase"
)

// DocumentHandler handles document and document type HTTP requests.
type DocumentHandler struct {
	documentUC *usecase.DocumentUseCase
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentUC *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{documentUC: documentUC}
}

// CreateType creates a new document type.
func (h *DocumentHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDocumentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	documentType, err := h.documentUC.CreateDocumentType(r.Context(), req.Name, req.Description)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create document type", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.DocumentTypeFromDomain(documentType))
}

// GetType retrieves a document type by ID.
func (h *DocumentHandler) GetType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document type ID", "")
		return
	}

	documentType, err := h.documentUC.GetDocumentType(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get document type", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DocumentTypeFromDomain(documentType))
}

// ListTypes lists document types.
func (h *DocumentHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	types, err := h.documentUC.ListDocumentTypes(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list document types", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DocumentTypesFromDomain(types))
}

// Create creates a new document.
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	document, err := h.documentUC.CreateDocument(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create document", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.DocumentFromDomain(document))
}

// Get retrieves a document by ID.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document ID", "")
		return
	}

	document, err := h.documentUC.GetDocument(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get document", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DocumentFromDomain(document))
}
