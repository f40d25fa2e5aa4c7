package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bookkeep/internal/adapter/http/dto"
	"github.com/iho/bookkeep/usecase"
)

// LedgerHandler handles ledger-wide queries.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// TrialBalance reports per-currency debit and credit totals. An
// unbalanced row means corrupt data, so the status degrades to 409.
func (h *LedgerHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.TrialBalance(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute trial balance", err.Error())
		return
	}

	status := http.StatusOK
	if !report.Balanced {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.TrialBalanceFromDomain(report))
}

// EntriesByTransfer lists the entries of a transfer.
func (h *LedgerHandler) EntriesByTransfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	entries, err := h.ledgerUC.EntriesByTransfer(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// EntriesByAccount lists an account's entries.
func (h *LedgerHandler) EntriesByAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.ledgerUC.EntriesByAccount(r.Context(), accountID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// Balance returns one balance row of (account, person, currency, month).
func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	accountID, err := parseAccountID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	personID := r.URL.Query().Get("person_id")
	currency := r.URL.Query().Get("currency")

	if personID == "" || currency == "" {
		writeError(w, http.StatusBadRequest, "missing parameters", "person_id and currency are required")
		return
	}

	date := time.Now().UTC()

	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
	}

	balance, err := h.ledgerUC.Balance(r.Context(), accountID, personID, currency, date)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(balance))
}
