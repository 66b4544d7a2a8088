package affiliate

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chainsynchq/chainsync/internal/affiliate"
	"github.com/chainsynchq/chainsync/internal/http/middleware"
	"github.com/chainsynchq/chainsync/internal/money"
)

type Handler struct {
	svc *affiliate.Service
}

func NewHandler(svc *affiliate.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.register)
	r.Get("/me", h.me)
	r.Patch("/me/bank-details", h.updateBankDetails)
	r.Post("/referrals", h.trackReferral)
	r.Post("/payouts", h.processPayout)
}

// ClickRoute serves the public click-tracking pixel.
func (h *Handler) ClickRoute(r chi.Router) {
	r.Get("/{code}", h.trackClick)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	account, err := h.svc.Register(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	account, err := h.svc.AccountForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

type bankDetailsRequest struct {
	BankName      string                 `json:"bank_name"`
	BankCode      string                 `json:"bank_code"`
	AccountNumber string                 `json:"account_number"`
	AccountName   string                 `json:"account_name"`
	PayoutMethod  affiliate.PayoutMethod `json:"payout_method"`
}

func (h *Handler) updateBankDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req bankDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.PayoutMethod != affiliate.PayoutPaystack && req.PayoutMethod != affiliate.PayoutFlutterwave {
		http.Error(w, "unknown payout method", http.StatusBadRequest)
		return
	}

	account, err := h.svc.AccountForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	account, err = h.svc.UpdateBankDetails(r.Context(), account.ID,
		req.BankName, req.BankCode, req.AccountNumber, req.AccountName, req.PayoutMethod)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

type trackReferralRequest struct {
	Code   string `json:"code"`
	UserID int64  `json:"user_id"`
}

func (h *Handler) trackReferral(w http.ResponseWriter, r *http.Request) {
	var req trackReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Code == "" || req.UserID == 0 {
		http.Error(w, "code and user_id are required", http.StatusBadRequest)
		return
	}

	referral, err := h.svc.TrackReferral(r.Context(), req.Code, req.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Unknown codes are tolerated; the signup proceeds unattributed.
	if referral == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, toReferralResponse(referral))
}

// clickPixel is a 1x1 transparent GIF.
var clickPixel = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

func (h *Handler) trackClick(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	source := r.URL.Query().Get("source")

	h.svc.TrackClick(r.Context(), code, source)

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store")

	if _, err := w.Write(clickPixel); err != nil {
		slog.Debug("failed to write click pixel", "error", err)
	}
}

func (h *Handler) processPayout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	account, err := h.svc.AccountForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	payout, err := h.svc.ProcessPayout(r.Context(), account.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, toPayoutResponse(payout))
}

type accountResponse struct {
	ID              int64                  `json:"id"`
	Code            string                 `json:"code"`
	ReferralCount   int                    `json:"referral_count"`
	TotalEarnings   money.Amount           `json:"total_earnings"`
	PendingEarnings money.Amount           `json:"pending_earnings"`
	BankName        string                 `json:"bank_name,omitempty"`
	AccountNumber   string                 `json:"account_number,omitempty"`
	AccountName     string                 `json:"account_name,omitempty"`
	PayoutMethod    affiliate.PayoutMethod `json:"payout_method,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

func toAccountResponse(a *affiliate.Account) accountResponse {
	return accountResponse{
		ID:              a.ID,
		Code:            a.Code,
		ReferralCount:   a.ReferralCount,
		TotalEarnings:   a.TotalEarnings,
		PendingEarnings: a.PendingEarnings,
		BankName:        a.BankName,
		AccountNumber:   a.AccountNumber,
		AccountName:     a.AccountName,
		PayoutMethod:    a.PayoutMethod,
		CreatedAt:       a.CreatedAt,
	}
}

type referralResponse struct {
	ID        int64                    `json:"id"`
	AccountID int64                    `json:"account_id"`
	Status    affiliate.ReferralStatus `json:"status"`
	ExpiresAt time.Time                `json:"expires_at"`
	CreatedAt time.Time                `json:"created_at"`
}

func toReferralResponse(ref *affiliate.Referral) referralResponse {
	return referralResponse{
		ID:        ref.ID,
		AccountID: ref.AccountID,
		Status:    ref.Status,
		ExpiresAt: ref.ExpiresAt,
		CreatedAt: ref.CreatedAt,
	}
}

type payoutResponse struct {
	ID        int64                  `json:"id"`
	Amount    money.Amount           `json:"amount"`
	Currency  string                 `json:"currency"`
	Status    affiliate.PayoutStatus `json:"status"`
	Reference string                 `json:"reference"`
	CreatedAt time.Time              `json:"created_at"`
}

func toPayoutResponse(p *affiliate.Payout) payoutResponse {
	return payoutResponse{
		ID:        p.ID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
		Reference: p.Reference,
		CreatedAt: p.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	var balanceErr *affiliate.InsufficientBalanceError

	switch {
	case errors.As(err, &balanceErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, affiliate.ErrNotFound):
		http.Error(w, "affiliate account not found", http.StatusNotFound)
	default:
		slog.Error("affiliate request failed", "error", err)
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
