package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	affiliateHandler "github.com/chainsynchq/chainsync/internal/http/affiliate"
	inventoryHandler "github.com/chainsynchq/chainsync/internal/http/inventory"
	loyaltyHandler "github.com/chainsynchq/chainsync/internal/http/loyalty"
	chainsyncMiddleware "github.com/chainsynchq/chainsync/internal/http/middleware"
	transactionHandler "github.com/chainsynchq/chainsync/internal/http/transaction"
	webhookHandler "github.com/chainsynchq/chainsync/internal/http/webhook"
)

func New(
	jwtSecret string,
	transactionsV1 *transactionHandler.Handler,
	inventoryV1 *inventoryHandler.Handler,
	loyaltyV1 *loyaltyHandler.Handler,
	affiliatesV1 *affiliateHandler.Handler,
	webhooksV1 *webhookHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Webhooks and the click pixel stay outside JWT auth: webhooks are
	// authenticated by provider signature, the pixel by nothing at all.
	router.Route("/webhooks", webhooksV1.Routes)
	router.Route("/r", affiliatesV1.ClickRoute)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chainsyncMiddleware.Auth(jwtSecret))

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Route("/stores/{storeID}", func(r chi.Router) {
			transactionsV1.AnalyticsRoute(r)
			r.Route("/inventory", inventoryV1.Routes)
		})

		r.Route("/customers/{customerID}/loyalty", loyaltyV1.Routes)

		r.Route("/affiliates", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			affiliatesV1.Routes(r)
		})
	})

	return router
}
