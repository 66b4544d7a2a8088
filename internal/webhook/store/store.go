package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chainsynchq/chainsync/internal/webhook"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Reserve records the event in the processed ledger. The unique index on
// (provider, event_type, reference) makes concurrent same-reference
// deliveries serialize: exactly one insert wins, every other delivery sees
// zero affected rows.
func (s *Store) Reserve(ctx context.Context, provider webhook.Provider, eventType, reference string) (bool, error) {
	query := `
		INSERT INTO processed_webhook_events (provider, event_type, reference, processed_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (provider, event_type, reference) DO NOTHING
	`

	res, err := s.db.ExecContext(ctx, query, provider, eventType, reference)
	if err != nil {
		return false, fmt.Errorf("reserving webhook event: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reserving webhook event: %w", err)
	}

	return affected == 1, nil
}

// Release removes a reservation after a failed effect so the provider's
// retry can reprocess the event.
func (s *Store) Release(ctx context.Context, provider webhook.Provider, eventType, reference string) error {
	query := `
		DELETE FROM processed_webhook_events
		WHERE provider = $1 AND event_type = $2 AND reference = $3
	`

	if _, err := s.db.ExecContext(ctx, query, provider, eventType, reference); err != nil {
		return fmt.Errorf("releasing webhook event: %w", err)
	}

	return nil
}
