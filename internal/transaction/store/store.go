package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chainsynchq/chainsync/internal/inventory"
	invstore "github.com/chainsynchq/chainsync/internal/inventory/store"
	"github.com/chainsynchq/chainsync/internal/money"
	"github.com/chainsynchq/chainsync/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) StoreExists(ctx context.Context, storeID int64) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS (SELECT 1 FROM stores WHERE id = $1)`, storeID)
}

func (s *Store) OperatorExists(ctx context.Context, operatorID int64) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, operatorID)
}

func (s *Store) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	return exists(ctx, s.db, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, customerID)
}

func exists(ctx context.Context, db *sql.DB, query string, id int64) (bool, error) {
	var ok bool
	if err := db.QueryRowContext(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("checking existence: %w", err)
	}

	return ok, nil
}

// MissingProducts returns the requested ids that have no product row.
func (s *Store) MissingProducts(ctx context.Context, productIDs []int64) ([]int64, error) {
	query := `
		SELECT wanted.id
		FROM UNNEST($1::bigint[]) AS wanted(id)
		LEFT JOIN products p ON p.id = wanted.id
		WHERE p.id IS NULL
	`

	rows, err := s.db.QueryContext(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("checking products: %w", err)
	}
	defer rows.Close()

	var missing []int64

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning missing product: %w", err)
		}

		missing = append(missing, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating missing products: %w", err)
	}

	return missing, nil
}

const selectTransactionColumns = `
	t.id, t.store_id, t.customer_id, t.operator_id, t.type, t.status,
	t.subtotal, t.tax, t.discount, t.total, t.payment_method, t.notes,
	t.reference, t.created_at, t.updated_at
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr, statusStr string

	if err := s.Scan(
		&tx.ID, &tx.StoreID, &tx.CustomerID, &tx.OperatorID, &typeStr, &statusStr,
		&tx.Subtotal, &tx.Tax, &tx.Discount, &tx.Total, &tx.PaymentMethod, &tx.Notes,
		&tx.Reference, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.Status = transaction.Status(statusStr)

	return &tx, nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions t WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &transaction.NotFoundError{Entity: "transaction", ID: id}
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	if tx.Items, err = s.itemsFor(ctx, id); err != nil {
		return nil, err
	}

	if tx.Payments, err = s.paymentsFor(ctx, id); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Store) itemsFor(ctx context.Context, transactionID int64) ([]*transaction.TransactionItem, error) {
	query := `
		SELECT id, transaction_id, product_id, quantity, unit_price, discount, subtotal, notes
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*transaction.TransactionItem

	for rows.Next() {
		var item transaction.TransactionItem
		if err := rows.Scan(
			&item.ID, &item.TransactionID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.Discount, &item.Subtotal, &item.Notes,
		); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return items, nil
}

func (s *Store) paymentsFor(ctx context.Context, transactionID int64) ([]*transaction.TransactionPayment, error) {
	query := `
		SELECT id, transaction_id, amount, method, provider_reference, status
		FROM transaction_payments
		WHERE transaction_id = $1
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*transaction.TransactionPayment

	for rows.Next() {
		var p transaction.TransactionPayment

		var statusStr string

		if err := rows.Scan(&p.ID, &p.TransactionID, &p.Amount, &p.Method, &p.ProviderReference, &statusStr); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Status = transaction.PaymentStatus(statusStr)
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $1, notes = $2, customer_id = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := s.db.ExecContext(ctx, query, tx.Status, tx.Notes, tx.CustomerID, tx.ID)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions t WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.StoreID != nil {
		query += fmt.Sprintf(" AND t.store_id = $%d", argIdx)

		args = append(args, *filter.StoreID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.created_at <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) Begin(ctx context.Context) (transaction.UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning unit of work: %w", err)
	}

	return &uow{tx: tx}, nil
}

type uow struct {
	tx *sql.Tx
}

func (u *uow) Commit() error   { return u.tx.Commit() }
func (u *uow) Rollback() error { return u.tx.Rollback() }

func (u *uow) InsertTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (store_id, customer_id, operator_id, type, status,
			subtotal, tax, discount, total, payment_method, notes, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, created_at
	`

	err := u.tx.QueryRowContext(ctx, query,
		tx.StoreID, tx.CustomerID, tx.OperatorID, tx.Type, tx.Status,
		tx.Subtotal, tx.Tax, tx.Discount, tx.Total, tx.PaymentMethod, tx.Notes, tx.Reference,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "transactions_reference_key") {
			return transaction.ErrDuplicateReference
		}

		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

func (u *uow) InsertItems(ctx context.Context, transactionID int64, items []*transaction.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (transaction_id, product_id, quantity, unit_price, discount, subtotal, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	for _, item := range items {
		item.TransactionID = transactionID

		err := u.tx.QueryRowContext(ctx, query,
			transactionID, item.ProductID, item.Quantity,
			item.UnitPrice, item.Discount, item.Subtotal, item.Notes,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("inserting item: %w", err)
		}
	}

	return nil
}

func (u *uow) InsertPayments(ctx context.Context, transactionID int64, payments []*transaction.TransactionPayment) error {
	query := `
		INSERT INTO transaction_payments (transaction_id, amount, method, provider_reference, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for _, p := range payments {
		p.TransactionID = transactionID

		err := u.tx.QueryRowContext(ctx, query,
			transactionID, p.Amount, p.Method, p.ProviderReference, p.Status,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("inserting payment: %w", err)
		}
	}

	return nil
}

func (u *uow) InsertReturn(ctx context.Context, ret *transaction.Return) error {
	query := `
		INSERT INTO returns (transaction_id, store_id, operator_id, amount, method, reason, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := u.tx.QueryRowContext(ctx, query,
		ret.TransactionID, ret.StoreID, ret.OperatorID, ret.Amount,
		ret.Method, ret.Reason, ret.Notes, ret.Status,
	).Scan(&ret.ID, &ret.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting return: %w", err)
	}

	return nil
}

func (u *uow) InsertReturnItems(ctx context.Context, returnID int64, items []*transaction.ReturnItem) error {
	query := `
		INSERT INTO return_items (return_id, transaction_item_id, product_id, quantity, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for _, item := range items {
		item.ReturnID = returnID

		err := u.tx.QueryRowContext(ctx, query,
			returnID, item.TransactionItemID, item.ProductID, item.Quantity, item.Amount,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("inserting return item: %w", err)
		}
	}

	return nil
}

func (u *uow) AdjustStock(ctx context.Context, params inventory.AdjustParams) error {
	return invstore.Adjust(ctx, u.tx, params)
}

func (u *uow) ReversedQuantity(ctx context.Context, transactionItemID int64) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM return_items
		WHERE transaction_item_id = $1
	`

	var reversed int
	if err := u.tx.QueryRowContext(ctx, query, transactionItemID).Scan(&reversed); err != nil {
		return 0, fmt.Errorf("summing reversed quantity: %w", err)
	}

	return reversed, nil
}

func (u *uow) RefundedTotal(ctx context.Context, transactionID int64) (money.Amount, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM returns
		WHERE transaction_id = $1
	`

	var total money.Amount
	if err := u.tx.QueryRowContext(ctx, query, transactionID).Scan(&total); err != nil {
		return money.Zero, fmt.Errorf("summing refunds: %w", err)
	}

	return total, nil
}

func (u *uow) SetStatus(ctx context.Context, transactionID int64, status transaction.Status) error {
	query := `UPDATE transactions SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := u.tx.ExecContext(ctx, query, status, transactionID); err != nil {
		return fmt.Errorf("setting status: %w", err)
	}

	return nil
}

func (s *Store) Analytics(ctx context.Context, storeID int64, start, end time.Time) (*transaction.Analytics, error) {
	result := &transaction.Analytics{
		StoreID:         storeID,
		StartDate:       start,
		EndDate:         end,
		ByPaymentMethod: make(map[string]transaction.Bucket),
		ByHour:          make([]transaction.Bucket, 24),
		ByWeekday:       make([]transaction.Bucket, 7),
	}

	totals := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM transactions
		WHERE store_id = $1 AND type = 'sale'
		  AND status IN ('completed', 'partially_refunded', 'refunded')
		  AND created_at >= $2 AND created_at <= $3
	`

	if err := s.db.QueryRowContext(ctx, totals, storeID, start, end).
		Scan(&result.TotalSales, &result.TransactionCount); err != nil {
		return nil, fmt.Errorf("aggregating sales: %w", err)
	}

	refunds := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM returns
		WHERE store_id = $1 AND created_at >= $2 AND created_at <= $3
	`

	if err := s.db.QueryRowContext(ctx, refunds, storeID, start, end).
		Scan(&result.TotalRefunds, &result.RefundCount); err != nil {
		return nil, fmt.Errorf("aggregating refunds: %w", err)
	}

	result.NetSales = result.TotalSales.Sub(result.TotalRefunds)

	if result.TransactionCount > 0 {
		result.AverageTransactionValue = result.TotalSales.DivInt(int64(result.TransactionCount))
	}

	byMethod := `
		SELECT payment_method, COALESCE(SUM(total), 0), COUNT(*)
		FROM transactions
		WHERE store_id = $1 AND type = 'sale'
		  AND status IN ('completed', 'partially_refunded', 'refunded')
		  AND created_at >= $2 AND created_at <= $3
		GROUP BY payment_method
	`

	rows, err := s.db.QueryContext(ctx, byMethod, storeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("aggregating by payment method: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var method string

		var bucket transaction.Bucket

		if err := rows.Scan(&method, &bucket.Amount, &bucket.Count); err != nil {
			return nil, fmt.Errorf("scanning payment method bucket: %w", err)
		}

		result.ByPaymentMethod[method] = bucket
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment method buckets: %w", err)
	}

	if err := s.timeBuckets(ctx, storeID, start, end, "HOUR", result.ByHour); err != nil {
		return nil, err
	}

	if err := s.timeBuckets(ctx, storeID, start, end, "DOW", result.ByWeekday); err != nil {
		return nil, err
	}

	return result, nil
}

// timeBuckets fills dest (indexed by hour 0-23 or weekday 0-6) from sales
// grouped by the given date part.
func (s *Store) timeBuckets(ctx context.Context, storeID int64, start, end time.Time, part string, dest []transaction.Bucket) error {
	query := fmt.Sprintf(`
		SELECT EXTRACT(%s FROM created_at)::int, COALESCE(SUM(total), 0), COUNT(*)
		FROM transactions
		WHERE store_id = $1 AND type = 'sale'
		  AND status IN ('completed', 'partially_refunded', 'refunded')
		  AND created_at >= $2 AND created_at <= $3
		GROUP BY 1
	`, part)

	rows, err := s.db.QueryContext(ctx, query, storeID, start, end)
	if err != nil {
		return fmt.Errorf("aggregating by %s: %w", part, err)
	}
	defer rows.Close()

	for rows.Next() {
		var idx int

		var bucket transaction.Bucket

		if err := rows.Scan(&idx, &bucket.Amount, &bucket.Count); err != nil {
			return fmt.Errorf("scanning %s bucket: %w", part, err)
		}

		if idx >= 0 && idx < len(dest) {
			dest[idx] = bucket
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating %s buckets: %w", part, err)
	}

	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}

	return false
}
