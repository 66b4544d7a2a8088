package loyalty

import (
	"context"
	"log/slog"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=loyalty
type Repository interface {
	GetMemberByCustomer(ctx context.Context, customerID int64) (*Member, error)
	AddPoints(ctx context.Context, memberID, points int64, reason, reference string, operatorID int64) error
	ListLedger(ctx context.Context, memberID int64, limit int) ([]*LedgerEntry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AccrueParams describes one point accrual against a customer.
type AccrueParams struct {
	CustomerID int64
	Points     int64
	Reason     string
	Reference  string
	OperatorID int64
}

// Accrue credits points to the customer's membership. Customers without a
// membership and storage failures are reported through the Outcome, never
// as an error: a missed accrual is a recoverable business issue, not a
// transactional one.
func (s *Service) Accrue(ctx context.Context, params AccrueParams) Outcome {
	if params.Points <= 0 {
		return Skipped(nil)
	}

	member, err := s.repo.GetMemberByCustomer(ctx, params.CustomerID)
	if err != nil {
		slog.Warn("loyalty accrual skipped",
			"customer_id", params.CustomerID,
			"reference", params.Reference,
			"error", err)

		return Skipped(err)
	}

	if err := s.repo.AddPoints(ctx, member.ID, params.Points, params.Reason, params.Reference, params.OperatorID); err != nil {
		slog.Warn("loyalty accrual failed",
			"member_id", member.ID,
			"reference", params.Reference,
			"error", err)

		return Skipped(err)
	}

	return Accrued(params.Points)
}

// Member returns the customer's loyalty membership.
func (s *Service) Member(ctx context.Context, customerID int64) (*Member, error) {
	return s.repo.GetMemberByCustomer(ctx, customerID)
}

// Ledger lists the most recent ledger entries for a member.
func (s *Service) Ledger(ctx context.Context, memberID int64, limit int) ([]*LedgerEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return s.repo.ListLedger(ctx, memberID, limit)
}
