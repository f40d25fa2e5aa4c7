package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bookkeep/internal/adapter/http/dto"
	"github.com/iho/bookkeep/usecase"
)

// PersonHandler handles person-related HTTP requests.
type PersonHandler struct {
	personUC *usecase.PersonUseCase
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(personUC *usecase.PersonUseCase) *PersonHandler {
	return &PersonHandler{personUC: personUC}
}

// FindOrCreate returns the person wrapping the given host reference,
// creating it on first sight. Replays return the same person.
func (h *PersonHandler) FindOrCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	person, err := h.personUC.FindOrCreatePerson(r.Context(), req.Personable.ToDomain())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create person", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PersonFromDomain(person))
}

// Get retrieves a person by ID.
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing person ID", "")
		return
	}

	person, err := h.personUC.GetPerson(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get person", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PersonFromDomain(person))
}

// ListBalances lists all balance rows of a person.
func (h *PersonHandler) ListBalances(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing person ID", "")
		return
	}

	balances, err := h.personUC.ListBalances(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromDomain(balances))
}
