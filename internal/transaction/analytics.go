package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chainsynchq/chainsync/internal/money"
)

// Bucket is one amount-and-count pair in an analytics breakdown.
type Bucket struct {
	Amount money.Amount `json:"amount"`
	Count  int          `json:"count"`
}

// Analytics is the per-store rollup over a date window.
type Analytics struct {
	StoreID                 int64             `json:"store_id"`
	StartDate               time.Time         `json:"start_date"`
	EndDate                 time.Time         `json:"end_date"`
	TotalSales              money.Amount      `json:"total_sales"`
	TotalRefunds            money.Amount      `json:"total_refunds"`
	NetSales                money.Amount      `json:"net_sales"`
	AverageTransactionValue money.Amount      `json:"average_transaction_value"`
	TransactionCount        int               `json:"transaction_count"`
	RefundCount             int               `json:"refund_count"`
	ByPaymentMethod         map[string]Bucket `json:"by_payment_method"`
	ByHour                  []Bucket          `json:"by_hour"`
	ByWeekday               []Bucket          `json:"by_weekday"`
}

// Analytics aggregates completed sales and refunds for a store. The window
// defaults to the trailing 30 days. Results are served read-through from
// the cache when one is configured; writes invalidate the store's key.
func (s *Service) Analytics(ctx context.Context, storeID int64, start, end *time.Time) (*Analytics, error) {
	now := time.Now().UTC()

	endDate := now
	if end != nil {
		endDate = *end
	}

	startDate := endDate.AddDate(0, 0, -30)
	if start != nil {
		startDate = *start
	}

	key := analyticsKey(storeID)

	if s.cache != nil && start == nil && end == nil {
		var cached Analytics

		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			slog.Warn("analytics cache read failed", "store_id", storeID, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	result, err := s.repo.Analytics(ctx, storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && start == nil && end == nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			slog.Warn("analytics cache write failed", "store_id", storeID, "error", err)
		}
	}

	return result, nil
}

func analyticsKey(storeID int64) string {
	return fmt.Sprintf("chainsync:analytics:store:%d", storeID)
}
