package loyalty

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chainsynchq/chainsync/internal/loyalty"
)

type Handler struct {
	svc *loyalty.Service
}

func NewHandler(svc *loyalty.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.member)
	r.Get("/ledger", h.ledger)
}

type memberResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Points     int64     `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handler) member(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	member, err := h.svc.Member(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, loyalty.ErrNoMembership) {
			http.Error(w, "no loyalty membership", http.StatusNotFound)
			return
		}

		slog.Error("membership lookup failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, memberResponse{
		ID:         member.ID,
		CustomerID: member.CustomerID,
		Points:     member.Points,
		CreatedAt:  member.CreatedAt,
	})
}

type ledgerEntryResponse struct {
	ID                   int64     `json:"id"`
	Points               int64     `json:"points"`
	Reason               string    `json:"reason"`
	TransactionReference string    `json:"transaction_reference,omitempty"`
	OperatorID           int64     `json:"operator_id"`
	CreatedAt            time.Time `json:"created_at"`
}

func (h *Handler) ledger(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid customer id", http.StatusBadRequest)
		return
	}

	member, err := h.svc.Member(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, loyalty.ErrNoMembership) {
			http.Error(w, "no loyalty membership", http.StatusNotFound)
			return
		}

		slog.Error("membership lookup failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	entries, err := h.svc.Ledger(r.Context(), member.ID, limit)
	if err != nil {
		slog.Error("ledger list failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]ledgerEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = ledgerEntryResponse{
			ID:                   e.ID,
			Points:               e.Points,
			Reason:               e.Reason,
			TransactionReference: e.TransactionReference,
			OperatorID:           e.OperatorID,
			CreatedAt:            e.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
