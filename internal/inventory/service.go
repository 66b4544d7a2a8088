package inventory

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=inventory
type Repository interface {
	Adjust(ctx context.Context, params AdjustParams) error
	OnHand(ctx context.Context, storeID, productID int64) (int, error)
	ListMovements(ctx context.Context, storeID, productID int64, limit int) ([]*Movement, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Adjust applies a signed stock delta and records the movement. Negative
// deltas fail with ErrInsufficientStock rather than taking stock negative.
func (s *Service) Adjust(ctx context.Context, params AdjustParams) error {
	if params.Delta == 0 {
		return nil
	}

	return s.repo.Adjust(ctx, params)
}

// OnHand returns the current stock for a product at a store. Products with
// no stock row report zero.
func (s *Service) OnHand(ctx context.Context, storeID, productID int64) (int, error) {
	return s.repo.OnHand(ctx, storeID, productID)
}

// Movements lists the most recent stock movements for a product at a store.
func (s *Service) Movements(ctx context.Context, storeID, productID int64, limit int) ([]*Movement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return s.repo.ListMovements(ctx, storeID, productID, limit)
}
