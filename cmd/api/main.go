package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/chainsynchq/chainsync/internal/affiliate"
	affStore "github.com/chainsynchq/chainsync/internal/affiliate/store"
	"github.com/chainsynchq/chainsync/internal/cache"
	"github.com/chainsynchq/chainsync/internal/config"
	"github.com/chainsynchq/chainsync/internal/database"
	"github.com/chainsynchq/chainsync/internal/events"
	chainsyncHttp "github.com/chainsynchq/chainsync/internal/http"
	affiliateHandler "github.com/chainsynchq/chainsync/internal/http/affiliate"
	inventoryHandler "github.com/chainsynchq/chainsync/internal/http/inventory"
	loyaltyHandler "github.com/chainsynchq/chainsync/internal/http/loyalty"
	txHandler "github.com/chainsynchq/chainsync/internal/http/transaction"
	webhookHandler "github.com/chainsynchq/chainsync/internal/http/webhook"
	"github.com/chainsynchq/chainsync/internal/inventory"
	invStore "github.com/chainsynchq/chainsync/internal/inventory/store"
	"github.com/chainsynchq/chainsync/internal/loyalty"
	loyaltyStore "github.com/chainsynchq/chainsync/internal/loyalty/store"
	"github.com/chainsynchq/chainsync/internal/money"
	"github.com/chainsynchq/chainsync/internal/payout"
	"github.com/chainsynchq/chainsync/internal/transaction"
	txStore "github.com/chainsynchq/chainsync/internal/transaction/store"
	"github.com/chainsynchq/chainsync/internal/webhook"
	webhookStore "github.com/chainsynchq/chainsync/internal/webhook/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var publisher transaction.Publisher = events.LogPublisher{}

	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.Brokers[0] != "" {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()

		publisher = kafkaPublisher
	}

	loyaltyService := loyalty.NewService(loyaltyStore.New(db))
	inventoryService := inventory.NewService(invStore.New(db))

	minPayout, err := money.Parse(cfg.Affiliate.MinPayout)
	if err != nil {
		slog.Error("invalid minimum payout", "error", err)
		os.Exit(1)
	}

	affiliateOpts := []affiliate.Option{
		affiliate.WithPublisher(publisher),
		affiliate.WithCommission(cfg.Affiliate.CommissionPct, minPayout),
	}

	if cfg.Paystack.SecretKey != "" || cfg.Flutterwave.SecretKey != "" {
		gateway := payout.NewGateway(
			payout.NewPaystackClient(cfg.Paystack.SecretKey),
			payout.NewFlutterwaveClient(cfg.Flutterwave.SecretKey),
		)
		affiliateOpts = append(affiliateOpts, affiliate.WithGateway(gateway))
	}

	affiliateService := affiliate.NewService(affStore.New(db), affiliateOpts...)

	transactionOpts := []transaction.Option{
		transaction.WithLoyalty(loyaltyService),
		transaction.WithPublisher(publisher),
	}

	if cfg.Redis.URL != "" {
		analyticsCache, err := cache.Connect(context.Background(), cfg.Redis.URL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer analyticsCache.Close()

		transactionOpts = append(transactionOpts, transaction.WithCache(analyticsCache, cfg.Redis.TTL))
	}

	transactionService := transaction.NewService(txStore.New(db), transactionOpts...)

	webhookService := webhook.NewService(
		webhook.Secrets{
			PaystackSecret:        cfg.Paystack.SecretKey,
			FlutterwaveSecretHash: cfg.Flutterwave.SecretHash,
		},
		webhookStore.New(db),
		affiliateService,
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		inventoryH   = inventoryHandler.NewHandler(inventoryService)
		loyaltyH     = loyaltyHandler.NewHandler(loyaltyService)
		affiliateH   = affiliateHandler.NewHandler(affiliateService)
		webhookH     = webhookHandler.NewHandler(webhookService)
	)

	router := chainsyncHttp.New(cfg.Auth.JWTSecret, transactionH, inventoryH, loyaltyH, affiliateH, webhookH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
