package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chainsynchq/chainsync/internal/inventory"
)

func TestService_Adjust(t *testing.T) {
	t.Run("ZeroDeltaIsNoOp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := inventory.NewMockRepository(ctrl)
		svc := inventory.NewService(repo)

		err := svc.Adjust(context.Background(), inventory.AdjustParams{StoreID: 1, ProductID: 2, Delta: 0})
		assert.NoError(t, err)
	})

	t.Run("DecrementBelowZeroFails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := inventory.NewMockRepository(ctrl)
		svc := inventory.NewService(repo)

		params := inventory.AdjustParams{StoreID: 1, ProductID: 2, Delta: -5, Reason: "sale"}
		repo.EXPECT().Adjust(gomock.Any(), params).
			Return(&inventory.InsufficientStockError{StoreID: 1, ProductID: 2, Requested: 5, OnHand: 3})

		err := svc.Adjust(context.Background(), params)
		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	})
}

func TestService_Movements_ClampsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	svc := inventory.NewService(repo)

	repo.EXPECT().ListMovements(gomock.Any(), int64(1), int64(2), 50).
		Return([]*inventory.Movement{{ID: 1, Delta: -2}}, nil)

	movements, err := svc.Movements(context.Background(), 1, 2, 500)
	require.NoError(t, err)
	assert.Len(t, movements, 1)
}
