package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chainsynchq/chainsync/internal/webhook"
)

// maxBodyBytes caps webhook payloads; providers send small JSON bodies.
const maxBodyBytes = 1 << 20

type Handler struct {
	svc *webhook.Service
}

func NewHandler(svc *webhook.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/paystack", h.paystack)
	r.Post("/flutterwave", h.flutterwave)
}

func (h *Handler) paystack(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, webhook.ProviderPaystack, r.Header.Get("x-paystack-signature"))
}

func (h *Handler) flutterwave(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, webhook.ProviderFlutterwave, r.Header.Get("verif-hash"))
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, provider webhook.Provider, signature string) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Handle(r.Context(), provider, signature, payload)
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrMissingSignature):
			http.Error(w, "missing signature", http.StatusBadRequest)
		case errors.Is(err, webhook.ErrInvalidSignature):
			http.Error(w, "invalid signature", http.StatusUnauthorized)
		case errors.Is(err, webhook.ErrMalformedPayload):
			http.Error(w, "malformed payload", http.StatusBadRequest)
		default:
			// The reservation was released; a non-2xx response makes the
			// provider redeliver.
			slog.Error("webhook processing failed", "provider", provider, "error", err)
			http.Error(w, "processing failed", http.StatusInternalServerError)
		}

		return
	}

	slog.Info("webhook processed",
		"provider", provider,
		"event", result.Event.Type,
		"reference", result.Event.Reference,
		"duplicate", result.Duplicate,
		"applied", result.Applied)

	w.WriteHeader(http.StatusOK)
}
