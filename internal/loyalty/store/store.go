package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chainsynchq/chainsync/internal/loyalty"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetMemberByCustomer(ctx context.Context, customerID int64) (*loyalty.Member, error) {
	query := `
		SELECT id, customer_id, points, created_at, updated_at
		FROM loyalty_members
		WHERE customer_id = $1
	`

	var m loyalty.Member

	err := s.db.QueryRowContext(ctx, query, customerID).Scan(
		&m.ID, &m.CustomerID, &m.Points, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, loyalty.ErrNoMembership
		}

		return nil, fmt.Errorf("getting loyalty member: %w", err)
	}

	return &m, nil
}

// AddPoints updates the balance and appends the ledger entry atomically.
func (s *Store) AddPoints(ctx context.Context, memberID, points int64, reason, reference string, operatorID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning points update: %w", err)
	}
	defer tx.Rollback()

	update := `
		UPDATE loyalty_members
		SET points = points + $1, updated_at = NOW()
		WHERE id = $2
	`
	if _, err := tx.ExecContext(ctx, update, points, memberID); err != nil {
		return fmt.Errorf("updating points balance: %w", err)
	}

	insert := `
		INSERT INTO loyalty_ledger (member_id, points, reason, transaction_reference, operator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	if _, err := tx.ExecContext(ctx, insert, memberID, points, reason, reference, operatorID); err != nil {
		return fmt.Errorf("appending ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing points update: %w", err)
	}

	return nil
}

func (s *Store) ListLedger(ctx context.Context, memberID int64, limit int) ([]*loyalty.LedgerEntry, error) {
	query := `
		SELECT id, member_id, points, reason, transaction_reference, operator_id, created_at
		FROM loyalty_ledger
		WHERE member_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing ledger: %w", err)
	}
	defer rows.Close()

	var entries []*loyalty.LedgerEntry

	for rows.Next() {
		var e loyalty.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.MemberID, &e.Points, &e.Reason,
			&e.TransactionReference, &e.OperatorID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger: %w", err)
	}

	return entries, nil
}
