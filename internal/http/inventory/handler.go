package inventory

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chainsynchq/chainsync/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/products/{productID}", h.onHand)
	r.Get("/products/{productID}/movements", h.movements)
	r.Post("/adjustments", h.adjust)
}

func (h *Handler) onHand(w http.ResponseWriter, r *http.Request) {
	storeID, productID, ok := pathIDs(w, r)
	if !ok {
		return
	}

	quantity, err := h.svc.OnHand(r.Context(), storeID, productID)
	if err != nil {
		slog.Error("stock lookup failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"store_id":   storeID,
		"product_id": productID,
		"quantity":   quantity,
	})
}

type movementResponse struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"product_id"`
	Delta           int       `json:"delta"`
	Reason          string    `json:"reason"`
	TransactionType string    `json:"transaction_type,omitempty"`
	OperatorID      int64     `json:"operator_id"`
	Reference       string    `json:"reference,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func (h *Handler) movements(w http.ResponseWriter, r *http.Request) {
	storeID, productID, ok := pathIDs(w, r)
	if !ok {
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	movements, err := h.svc.Movements(r.Context(), storeID, productID, limit)
	if err != nil {
		slog.Error("movement list failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]movementResponse, len(movements))
	for i, m := range movements {
		resp[i] = movementResponse{
			ID:              m.ID,
			ProductID:       m.ProductID,
			Delta:           m.Delta,
			Reason:          m.Reason,
			TransactionType: m.TransactionType,
			OperatorID:      m.OperatorID,
			Reference:       m.Reference,
			CreatedAt:       m.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type adjustRequest struct {
	ProductID  int64  `json:"product_id"`
	Delta      int    `json:"delta"`
	Reason     string `json:"reason"`
	OperatorID int64  `json:"operator_id"`
	Reference  string `json:"reference,omitempty"`
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "storeID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}

	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Reason == "" {
		http.Error(w, "reason is required", http.StatusBadRequest)
		return
	}

	err = h.svc.Adjust(r.Context(), inventory.AdjustParams{
		StoreID:    storeID,
		ProductID:  req.ProductID,
		Delta:      req.Delta,
		Reason:     req.Reason,
		OperatorID: req.OperatorID,
		Reference:  req.Reference,
	})
	if err != nil {
		if errors.Is(err, inventory.ErrInsufficientStock) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		slog.Error("stock adjustment failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathIDs(w http.ResponseWriter, r *http.Request) (storeID, productID int64, ok bool) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "storeID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return 0, 0, false
	}

	productID, err = strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return 0, 0, false
	}

	return storeID, productID, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
