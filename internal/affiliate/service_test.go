package affiliate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chainsynchq/chainsync/internal/affiliate"
	"github.com/chainsynchq/chainsync/internal/money"
)

func TestService_Register(t *testing.T) {
	t.Run("CreatesAccountWithFreshCode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		repo.EXPECT().GetAccountByUser(gomock.Any(), int64(1)).Return(nil, affiliate.ErrNotFound)
		repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *affiliate.Account) error {
				assert.Len(t, a.Code, 8)
				a.ID = 10
				return nil
			})

		account, err := svc.Register(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(10), account.ID)
		assert.NotEmpty(t, account.Code)
	})

	t.Run("DoubleRegistrationReturnsExistingAccount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		existing := &affiliate.Account{ID: 10, UserID: 1, Code: "ABCD2345"}
		repo.EXPECT().GetAccountByUser(gomock.Any(), int64(1)).Return(existing, nil)

		account, err := svc.Register(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, existing, account)
	})

	t.Run("CodeCollisionRetriesWithNewCode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		repo.EXPECT().GetAccountByUser(gomock.Any(), int64(1)).Return(nil, affiliate.ErrNotFound)

		var codes []string
		repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *affiliate.Account) error {
				codes = append(codes, a.Code)
				return affiliate.ErrDuplicateCode
			})
		repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *affiliate.Account) error {
				codes = append(codes, a.Code)
				return nil
			})

		_, err := svc.Register(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, codes, 2)
		assert.NotEqual(t, codes[0], codes[1])
	})
}

func TestService_TrackReferral(t *testing.T) {
	t.Run("RecordsPendingReferralWithExpiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		repo.EXPECT().GetAccountByCode(gomock.Any(), "ABCD2345").
			Return(&affiliate.Account{ID: 10}, nil)
		repo.EXPECT().CreateReferral(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *affiliate.Referral) error {
				r.ID = 20
				return nil
			})

		referral, err := svc.TrackReferral(context.Background(), "ABCD2345", 55)
		require.NoError(t, err)
		assert.Equal(t, affiliate.ReferralPending, referral.Status)
		assert.Equal(t, int64(10), referral.AccountID)
		assert.Equal(t, int64(55), referral.ReferredUserID)
		assert.WithinDuration(t, time.Now().UTC().AddDate(1, 0, 0), referral.ExpiresAt, time.Minute)
	})

	t.Run("UnknownCodeIsToleratedSilently", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		repo.EXPECT().GetAccountByCode(gomock.Any(), "NOPE1234").Return(nil, affiliate.ErrNotFound)

		referral, err := svc.TrackReferral(context.Background(), "NOPE1234", 55)
		require.NoError(t, err)
		assert.Nil(t, referral)
	})
}

func TestService_CompleteReferralPayment(t *testing.T) {
	t.Run("AccruesTenPercentCommission", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		repo.EXPECT().FindOpenReferralByUser(gomock.Any(), int64(55)).
			Return(&affiliate.Referral{
				ID:        20,
				AccountID: 10,
				Status:    affiliate.ReferralPending,
				ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
			}, nil)
		repo.EXPECT().ActivateReferralWithCommission(gomock.Any(), int64(20), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, earning *affiliate.Earning) error {
				assert.Equal(t, "250.00", earning.Amount.String())
				assert.Equal(t, affiliate.EarningPending, earning.Status)
				assert.Equal(t, "ref-123", earning.Reference)
				return nil
			})

		err := svc.CompleteReferralPayment(context.Background(), 55, money.MustParse("2500.00"), "NGN", "ref-123")
		require.NoError(t, err)
	})

	t.Run("NonReferredUserIsNoOp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		repo.EXPECT().FindOpenReferralByUser(gomock.Any(), int64(55)).Return(nil, affiliate.ErrNotFound)

		err := svc.CompleteReferralPayment(context.Background(), 55, money.MustParse("100.00"), "NGN", "ref-1")
		assert.NoError(t, err)
	})

	t.Run("ExpiredReferralAccruesNothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		repo.EXPECT().FindOpenReferralByUser(gomock.Any(), int64(55)).
			Return(&affiliate.Referral{
				ID:        20,
				ExpiresAt: time.Now().UTC().Add(-time.Hour),
			}, nil)

		err := svc.CompleteReferralPayment(context.Background(), 55, money.MustParse("100.00"), "NGN", "ref-1")
		assert.NoError(t, err)
	})
}

func TestService_ProcessPayout(t *testing.T) {
	account := func() *affiliate.Account {
		return &affiliate.Account{
			ID:              10,
			PendingEarnings: money.MustParse("150.00"),
			PayoutMethod:    affiliate.PayoutPaystack,
			BankCode:        "058",
			AccountNumber:   "0123456789",
			AccountName:     "Ada Obi",
		}
	}

	t.Run("BelowMinimumRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo, affiliate.WithCommission(10, money.MustParse("200.00")))

		repo.EXPECT().GetAccount(gomock.Any(), int64(10)).Return(account(), nil)

		_, err := svc.ProcessPayout(context.Background(), 10)

		var balanceErr *affiliate.InsufficientBalanceError
		require.ErrorAs(t, err, &balanceErr)
		assert.Equal(t, "150.00", balanceErr.Available.String())
		assert.Equal(t, "200.00", balanceErr.Minimum.String())
	})

	t.Run("InitiatesTransferAndRecordsProviderReference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		gateway := affiliate.NewMockGateway(ctrl)
		svc := affiliate.NewService(repo, affiliate.WithGateway(gateway))

		repo.EXPECT().GetAccount(gomock.Any(), int64(10)).Return(account(), nil)
		repo.EXPECT().CreatePayout(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *affiliate.Payout) error {
				assert.Equal(t, "150.00", p.Amount.String())
				assert.Equal(t, affiliate.PayoutPending, p.Status)
				p.ID = 30
				return nil
			})
		gateway.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req affiliate.TransferRequest) (string, error) {
				assert.Equal(t, affiliate.PayoutPaystack, req.Method)
				assert.Equal(t, "0123456789", req.AccountNumber)
				return "TRF_abc", nil
			})
		repo.EXPECT().SetPayoutProvider(gomock.Any(), int64(30), "TRF_abc").Return(nil)

		payout, err := svc.ProcessPayout(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, "TRF_abc", payout.ProviderReference)
	})

	t.Run("TransferFailureLeavesPayoutPending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		gateway := affiliate.NewMockGateway(ctrl)
		svc := affiliate.NewService(repo, affiliate.WithGateway(gateway))

		repo.EXPECT().GetAccount(gomock.Any(), int64(10)).Return(account(), nil)
		repo.EXPECT().CreatePayout(gomock.Any(), gomock.Any()).Return(nil)
		gateway.EXPECT().InitiateTransfer(gomock.Any(), gomock.Any()).
			Return("", errors.New("provider unavailable"))

		payout, err := svc.ProcessPayout(context.Background(), 10)
		require.NoError(t, err)
		assert.Equal(t, affiliate.PayoutPending, payout.Status)
		assert.Empty(t, payout.ProviderReference)
	})
}

func TestService_SettlePayout(t *testing.T) {
	t.Run("SettlesPendingPayout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		repo.EXPECT().GetPayoutByReference(gomock.Any(), "payout-abc").
			Return(&affiliate.Payout{ID: 30, Status: affiliate.PayoutPending}, nil)
		repo.EXPECT().SettlePayout(gomock.Any(), int64(30), true, "TRF_abc").Return(nil)

		err := svc.SettlePayout(context.Background(), "payout-abc", true, "TRF_abc")
		assert.NoError(t, err)
	})

	t.Run("AlreadySettledIsNoOp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := affiliate.NewMockRepository(ctrl)
		svc := affiliate.NewService(repo)

		repo.EXPECT().GetPayoutByReference(gomock.Any(), "payout-abc").
			Return(&affiliate.Payout{ID: 30, Status: affiliate.PayoutCompleted}, nil)

		err := svc.SettlePayout(context.Background(), "payout-abc", true, "TRF_abc")
		assert.NoError(t, err)
	})
}

func TestGenerateCode(t *testing.T) {
	for range 50 {
		code := affiliate.GenerateCode()
		assert.Len(t, code, 8)
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}
