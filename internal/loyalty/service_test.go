package loyalty_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chainsynchq/chainsync/internal/loyalty"
)

func TestService_Accrue(t *testing.T) {
	params := loyalty.AccrueParams{
		CustomerID: 9,
		Points:     25,
		Reason:     "sale",
		Reference:  "TXN-1",
		OperatorID: 2,
	}

	t.Run("CreditsMemberAndWritesLedger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := loyalty.NewMockRepository(ctrl)
		svc := loyalty.NewService(repo)

		repo.EXPECT().GetMemberByCustomer(gomock.Any(), int64(9)).
			Return(&loyalty.Member{ID: 4, CustomerID: 9}, nil)
		repo.EXPECT().AddPoints(gomock.Any(), int64(4), int64(25), "sale", "TXN-1", int64(2)).
			Return(nil)

		outcome := svc.Accrue(context.Background(), params)
		assert.True(t, outcome.Applied)
		assert.Equal(t, int64(25), outcome.Points)
	})

	t.Run("NoMembershipIsSkippedNotFailed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := loyalty.NewMockRepository(ctrl)
		svc := loyalty.NewService(repo)

		repo.EXPECT().GetMemberByCustomer(gomock.Any(), int64(9)).
			Return(nil, loyalty.ErrNoMembership)

		outcome := svc.Accrue(context.Background(), params)
		assert.False(t, outcome.Applied)
		assert.ErrorIs(t, outcome.Cause, loyalty.ErrNoMembership)
	})

	t.Run("StorageFailureIsSkippedNotFailed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := loyalty.NewMockRepository(ctrl)
		svc := loyalty.NewService(repo)

		repo.EXPECT().GetMemberByCustomer(gomock.Any(), int64(9)).
			Return(&loyalty.Member{ID: 4}, nil)
		repo.EXPECT().AddPoints(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("db down"))

		outcome := svc.Accrue(context.Background(), params)
		assert.False(t, outcome.Applied)
		assert.Error(t, outcome.Cause)
	})

	t.Run("ZeroPointsSkipsWithoutLookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := loyalty.NewMockRepository(ctrl)
		svc := loyalty.NewService(repo)

		zero := params
		zero.Points = 0

		outcome := svc.Accrue(context.Background(), zero)
		assert.False(t, outcome.Applied)
		assert.NoError(t, outcome.Cause)
	})
}

func TestService_Ledger_ClampsLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := loyalty.NewMockRepository(ctrl)
	svc := loyalty.NewService(repo)

	repo.EXPECT().ListLedger(gomock.Any(), int64(4), 50).
		Return([]*loyalty.LedgerEntry{{ID: 1}}, nil)

	entries, err := svc.Ledger(context.Background(), 4, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
