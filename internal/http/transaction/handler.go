package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chainsynchq/chainsync/internal/inventory"
	"github.com/chainsynchq/chainsync/internal/money"
	"github.com/chainsynchq/chainsync/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/refund", h.refund)
}

// AnalyticsRoute serves the per-store rollup; mounted under the store
// route group.
func (h *Handler) AnalyticsRoute(r chi.Router) {
	r.Get("/analytics", h.analytics)
}

type itemRequest struct {
	ProductID int64        `json:"product_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice money.Amount `json:"unit_price"`
	Discount  money.Amount `json:"discount"`
	Notes     string       `json:"notes,omitempty"`
}

type paymentRequest struct {
	Amount            money.Amount `json:"amount"`
	Method            string       `json:"method"`
	ProviderReference string       `json:"provider_reference,omitempty"`
}

type createTransactionRequest struct {
	StoreID       int64              `json:"store_id"`
	OperatorID    int64              `json:"operator_id"`
	CustomerID    *int64             `json:"customer_id,omitempty"`
	Type          transaction.Type   `json:"type"`
	Status        transaction.Status `json:"status,omitempty"`
	Items         []itemRequest      `json:"items"`
	Payments      []paymentRequest   `json:"payments,omitempty"`
	Tax           money.Amount       `json:"tax"`
	Discount      money.Amount       `json:"discount"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes,omitempty"`
	Reference     string             `json:"reference,omitempty"`
	EarnPoints    bool               `json:"earn_points"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]transaction.ItemParams, len(req.Items))
	for i, item := range req.Items {
		items[i] = transaction.ItemParams{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Notes:     item.Notes,
		}
	}

	payments := make([]transaction.PaymentParams, len(req.Payments))
	for i, p := range req.Payments {
		payments[i] = transaction.PaymentParams{
			Amount:            p.Amount,
			Method:            p.Method,
			ProviderReference: p.ProviderReference,
		}
	}

	result, err := h.svc.Create(r.Context(), transaction.CreateParams{
		StoreID:       req.StoreID,
		OperatorID:    req.OperatorID,
		CustomerID:    req.CustomerID,
		Type:          req.Type,
		Status:        req.Status,
		Items:         items,
		Payments:      payments,
		Tax:           req.Tax,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Reference:     req.Reference,
		EarnPoints:    req.EarnPoints,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCreateResponse(result))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}
	query := r.URL.Query()

	if s := query.Get("store_id"); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			filter.StoreID = &id
		}
	}

	if s := query.Get("status"); s != "" {
		status := transaction.Status(s)
		filter.Status = &status
	}

	if s := query.Get("type"); s != "" {
		t := transaction.Type(s)
		filter.Type = &t
	}

	if s := query.Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := query.Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	if s := query.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Limit = n
		}
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	OperatorID int64               `json:"operator_id"`
	Status     *transaction.Status `json:"status,omitempty"`
	Notes      *string             `json:"notes,omitempty"`
	CustomerID *int64              `json:"customer_id,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Update(r.Context(), id, transaction.UpdateParams{
		OperatorID: req.OperatorID,
		Status:     req.Status,
		Notes:      req.Notes,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(tx))
}

type refundLineRequest struct {
	TransactionItemID int64 `json:"transaction_item_id"`
	Quantity          int   `json:"quantity"`
}

type refundRequest struct {
	OperatorID int64               `json:"operator_id"`
	Method     string              `json:"method"`
	Reason     string              `json:"reason"`
	Notes      string              `json:"notes,omitempty"`
	FullRefund bool                `json:"full_refund"`
	Lines      []refundLineRequest `json:"lines,omitempty"`
}

func (h *Handler) refund(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines := make([]transaction.RefundLine, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = transaction.RefundLine{
			TransactionItemID: line.TransactionItemID,
			Quantity:          line.Quantity,
		}
	}

	ret, err := h.svc.ProcessRefund(r.Context(), transaction.RefundParams{
		TransactionID: id,
		OperatorID:    req.OperatorID,
		Method:        req.Method,
		Reason:        req.Reason,
		Notes:         req.Notes,
		FullRefund:    req.FullRefund,
		Lines:         lines,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReturnResponse(ret))
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(chi.URLParam(r, "storeID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid store id", http.StatusBadRequest)
		return
	}

	var start, end *time.Time
	query := r.URL.Query()

	if s := query.Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}

		start = &t
	}

	if s := query.Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		end = &t
	}

	result, err := h.svc.Analytics(r.Context(), storeID, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr   *transaction.ValidationError
		productsErr     *transaction.ProductsNotFoundError
		paymentErr      *transaction.InvalidPaymentAmountError
		refundErr       *transaction.InvalidRefundAmountError
		statusErr       *transaction.InvalidStatusError
		insufficientErr *inventory.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &productsErr),
		errors.As(err, &paymentErr),
		errors.As(err, &refundErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &statusErr),
		errors.As(err, &insufficientErr):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, transaction.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("transaction request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
