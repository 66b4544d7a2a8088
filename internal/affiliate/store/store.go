package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chainsynchq/chainsync/internal/affiliate"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectAccountColumns = `
	id, user_id, code, referral_count, total_earnings, pending_earnings,
	bank_name, account_number, account_name, bank_code, payout_method,
	created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*affiliate.Account, error) {
	var a affiliate.Account

	var method string

	if err := s.Scan(
		&a.ID, &a.UserID, &a.Code, &a.ReferralCount, &a.TotalEarnings, &a.PendingEarnings,
		&a.BankName, &a.AccountNumber, &a.AccountName, &a.BankCode, &method,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.PayoutMethod = affiliate.PayoutMethod(method)

	return &a, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*affiliate.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM affiliate_accounts WHERE id = $1`
	return s.getAccount(ctx, query, id)
}

func (s *Store) GetAccountByUser(ctx context.Context, userID int64) (*affiliate.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM affiliate_accounts WHERE user_id = $1`
	return s.getAccount(ctx, query, userID)
}

func (s *Store) GetAccountByCode(ctx context.Context, code string) (*affiliate.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM affiliate_accounts WHERE code = $1`
	return s.getAccount(ctx, query, code)
}

func (s *Store) getAccount(ctx context.Context, query string, arg any) (*affiliate.Account, error) {
	account, err := scanAccount(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, affiliate.ErrNotFound
		}

		return nil, fmt.Errorf("getting affiliate account: %w", err)
	}

	return account, nil
}

func (s *Store) CreateAccount(ctx context.Context, account *affiliate.Account) error {
	query := `
		INSERT INTO affiliate_accounts (user_id, code, referral_count, total_earnings, pending_earnings,
			bank_name, account_number, account_name, bank_code, payout_method, created_at)
		VALUES ($1, $2, 0, 0, 0, '', '', '', '', '', NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, account.UserID, account.Code).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "affiliate_accounts_code_key" {
			return affiliate.ErrDuplicateCode
		}

		return fmt.Errorf("creating affiliate account: %w", err)
	}

	return nil
}

func (s *Store) UpdateBankDetails(ctx context.Context, account *affiliate.Account) error {
	query := `
		UPDATE affiliate_accounts
		SET bank_name = $1, account_number = $2, account_name = $3, bank_code = $4,
			payout_method = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		account.BankName, account.AccountNumber, account.AccountName,
		account.BankCode, account.PayoutMethod, account.ID,
	)
	if err != nil {
		return fmt.Errorf("updating bank details: %w", err)
	}

	return nil
}

// CreateReferral inserts the referral and bumps the account's referral
// count atomically.
func (s *Store) CreateReferral(ctx context.Context, referral *affiliate.Referral) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning referral insert: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO referrals (account_id, referred_user_id, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, insert,
		referral.AccountID, referral.ReferredUserID, referral.Status, referral.ExpiresAt,
	).Scan(&referral.ID, &referral.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting referral: %w", err)
	}

	bump := `UPDATE affiliate_accounts SET referral_count = referral_count + 1, updated_at = NOW() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, bump, referral.AccountID); err != nil {
		return fmt.Errorf("bumping referral count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing referral insert: %w", err)
	}

	return nil
}

// FindOpenReferralByUser returns the user's pending or active referral.
func (s *Store) FindOpenReferralByUser(ctx context.Context, referredUserID int64) (*affiliate.Referral, error) {
	query := `
		SELECT id, account_id, referred_user_id, status, expires_at, activated_at, created_at
		FROM referrals
		WHERE referred_user_id = $1 AND status IN ('pending', 'active')
		ORDER BY created_at DESC
		LIMIT 1
	`

	var r affiliate.Referral

	var status string

	err := s.db.QueryRowContext(ctx, query, referredUserID).Scan(
		&r.ID, &r.AccountID, &r.ReferredUserID, &status, &r.ExpiresAt, &r.ActivatedAt, &r.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, affiliate.ErrNotFound
		}

		return nil, fmt.Errorf("finding referral: %w", err)
	}

	r.Status = affiliate.ReferralStatus(status)

	return &r, nil
}

// ActivateReferralWithCommission marks the referral active and accrues the
// earning on the account in one database transaction.
func (s *Store) ActivateReferralWithCommission(ctx context.Context, referralID int64, earning *affiliate.Earning) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning commission accrual: %w", err)
	}
	defer tx.Rollback()

	activate := `
		UPDATE referrals
		SET status = 'active', activated_at = COALESCE(activated_at, NOW())
		WHERE id = $1 AND status IN ('pending', 'active')
	`
	if _, err := tx.ExecContext(ctx, activate, referralID); err != nil {
		return fmt.Errorf("activating referral: %w", err)
	}

	insert := `
		INSERT INTO affiliate_earnings (account_id, referral_id, amount, currency, status, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, insert,
		earning.AccountID, earning.ReferralID, earning.Amount,
		earning.Currency, earning.Status, earning.Reference,
	).Scan(&earning.ID, &earning.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting earning: %w", err)
	}

	accrue := `
		UPDATE affiliate_accounts
		SET total_earnings = total_earnings + $1,
			pending_earnings = pending_earnings + $1,
			updated_at = NOW()
		WHERE id = $2
	`
	if _, err := tx.ExecContext(ctx, accrue, earning.Amount, earning.AccountID); err != nil {
		return fmt.Errorf("accruing commission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing commission accrual: %w", err)
	}

	return nil
}

func (s *Store) InsertClick(ctx context.Context, click *affiliate.Click) error {
	query := `
		INSERT INTO affiliate_clicks (code, source, cookie_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, click.Code, click.Source, click.CookieID).
		Scan(&click.ID, &click.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting click: %w", err)
	}

	return nil
}

// CreatePayout inserts the payout batch, marks the account's pending
// earnings as pending-payout and zeroes the pending balance atomically.
func (s *Store) CreatePayout(ctx context.Context, payout *affiliate.Payout) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning payout: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO affiliate_payouts (account_id, amount, currency, status, reference, provider_reference, created_at)
		VALUES ($1, $2, $3, $4, $5, '', NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, insert,
		payout.AccountID, payout.Amount, payout.Currency, payout.Status, payout.Reference,
	).Scan(&payout.ID, &payout.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting payout: %w", err)
	}

	mark := `
		UPDATE affiliate_earnings
		SET status = 'pending_payout'
		WHERE account_id = $1 AND status = 'pending'
	`
	if _, err := tx.ExecContext(ctx, mark, payout.AccountID); err != nil {
		return fmt.Errorf("marking earnings: %w", err)
	}

	zero := `
		UPDATE affiliate_accounts
		SET pending_earnings = 0, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, zero, payout.AccountID); err != nil {
		return fmt.Errorf("zeroing pending balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing payout: %w", err)
	}

	return nil
}

func (s *Store) SetPayoutProvider(ctx context.Context, payoutID int64, providerReference string) error {
	query := `UPDATE affiliate_payouts SET provider_reference = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, providerReference, payoutID); err != nil {
		return fmt.Errorf("setting provider reference: %w", err)
	}

	return nil
}

func (s *Store) GetPayoutByReference(ctx context.Context, reference string) (*affiliate.Payout, error) {
	query := `
		SELECT id, account_id, amount, currency, status, reference, provider_reference, created_at, updated_at
		FROM affiliate_payouts
		WHERE reference = $1
	`

	var p affiliate.Payout

	var status string

	err := s.db.QueryRowContext(ctx, query, reference).Scan(
		&p.ID, &p.AccountID, &p.Amount, &p.Currency, &status,
		&p.Reference, &p.ProviderReference, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, affiliate.ErrNotFound
		}

		return nil, fmt.Errorf("getting payout: %w", err)
	}

	p.Status = affiliate.PayoutStatus(status)

	return &p, nil
}

// SettlePayout finalizes the batch. Success marks the batched earnings
// paid; failure restores them (and the account balance) to pending.
func (s *Store) SettlePayout(ctx context.Context, payoutID int64, succeeded bool, providerReference string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning settlement: %w", err)
	}
	defer tx.Rollback()

	status := affiliate.PayoutCompleted
	if !succeeded {
		status = affiliate.PayoutFailed
	}

	update := `
		UPDATE affiliate_payouts
		SET status = $1, provider_reference = CASE WHEN $2 <> '' THEN $2 ELSE provider_reference END, updated_at = NOW()
		WHERE id = $3 AND status = 'pending'
		RETURNING account_id, amount
	`

	var accountID int64

	var amount string

	err = tx.QueryRowContext(ctx, update, status, providerReference, payoutID).Scan(&accountID, &amount)
	if err != nil {
		if err == sql.ErrNoRows {
			// Already settled; idempotent no-op.
			return nil
		}

		return fmt.Errorf("updating payout: %w", err)
	}

	earningStatus := "paid"
	if !succeeded {
		earningStatus = "pending"
	}

	mark := `
		UPDATE affiliate_earnings
		SET status = $1
		WHERE account_id = $2 AND status = 'pending_payout'
	`
	if _, err := tx.ExecContext(ctx, mark, earningStatus, accountID); err != nil {
		return fmt.Errorf("marking earnings: %w", err)
	}

	if !succeeded {
		restore := `
			UPDATE affiliate_accounts
			SET pending_earnings = pending_earnings + $1, updated_at = NOW()
			WHERE id = $2
		`
		if _, err := tx.ExecContext(ctx, restore, amount, accountID); err != nil {
			return fmt.Errorf("restoring pending balance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing settlement: %w", err)
	}

	return nil
}
