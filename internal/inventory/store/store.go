package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chainsynchq/chainsync/internal/inventory"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so adjustments can run
// standalone or inside a caller-owned database transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Adjust(ctx context.Context, params inventory.AdjustParams) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning adjustment: %w", err)
	}
	defer tx.Rollback()

	if err := Adjust(ctx, tx, params); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing adjustment: %w", err)
	}

	return nil
}

// Adjust applies a signed stock delta on q and records the movement row.
// The decrement is a single conditional UPDATE, so concurrent sales against
// the same product cannot oversell: the losing request sees zero affected
// rows and fails with ErrInsufficientStock.
func Adjust(ctx context.Context, q Querier, params inventory.AdjustParams) error {
	if params.Delta >= 0 {
		upsert := `
			INSERT INTO stock_levels (store_id, product_id, quantity, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (store_id, product_id)
			DO UPDATE SET quantity = stock_levels.quantity + EXCLUDED.quantity, updated_at = NOW()
		`
		if _, err := q.ExecContext(ctx, upsert, params.StoreID, params.ProductID, params.Delta); err != nil {
			return fmt.Errorf("incrementing stock: %w", err)
		}
	} else {
		decrement := `
			UPDATE stock_levels
			SET quantity = quantity + $3, updated_at = NOW()
			WHERE store_id = $1 AND product_id = $2 AND quantity >= -$3
		`

		res, err := q.ExecContext(ctx, decrement, params.StoreID, params.ProductID, params.Delta)
		if err != nil {
			return fmt.Errorf("decrementing stock: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("decrementing stock: %w", err)
		}

		if affected == 0 {
			onHand, err := onHand(ctx, q, params.StoreID, params.ProductID)
			if err != nil {
				return err
			}

			return &inventory.InsufficientStockError{
				StoreID:   params.StoreID,
				ProductID: params.ProductID,
				Requested: -params.Delta,
				OnHand:    onHand,
			}
		}
	}

	movement := `
		INSERT INTO stock_movements (store_id, product_id, delta, reason, transaction_type, operator_id, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := q.ExecContext(ctx, movement,
		params.StoreID,
		params.ProductID,
		params.Delta,
		params.Reason,
		params.TransactionType,
		params.OperatorID,
		params.Reference,
	)
	if err != nil {
		return fmt.Errorf("recording stock movement: %w", err)
	}

	return nil
}

func (s *Store) OnHand(ctx context.Context, storeID, productID int64) (int, error) {
	return onHand(ctx, s.db, storeID, productID)
}

func onHand(ctx context.Context, q Querier, storeID, productID int64) (int, error) {
	query := `SELECT quantity FROM stock_levels WHERE store_id = $1 AND product_id = $2`

	var quantity int

	err := q.QueryRowContext(ctx, query, storeID, productID).Scan(&quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}

		return 0, fmt.Errorf("reading stock level: %w", err)
	}

	return quantity, nil
}

func (s *Store) ListMovements(ctx context.Context, storeID, productID int64, limit int) ([]*inventory.Movement, error) {
	query := `
		SELECT id, store_id, product_id, delta, reason, transaction_type, operator_id, reference, created_at
		FROM stock_movements
		WHERE store_id = $1 AND product_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, storeID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing stock movements: %w", err)
	}
	defer rows.Close()

	var movements []*inventory.Movement

	for rows.Next() {
		var m inventory.Movement
		if err := rows.Scan(
			&m.ID, &m.StoreID, &m.ProductID, &m.Delta, &m.Reason,
			&m.TransactionType, &m.OperatorID, &m.Reference, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning stock movement: %w", err)
		}

		movements = append(movements, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock movements: %w", err)
	}

	return movements, nil
}
