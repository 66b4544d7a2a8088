package transaction_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chainsynchq/chainsync/internal/inventory"
	"github.com/chainsynchq/chainsync/internal/money"
	"github.com/chainsynchq/chainsync/internal/transaction"
)

func completedSale() *transaction.Transaction {
	return &transaction.Transaction{
		ID:        1,
		StoreID:   3,
		Type:      transaction.TypeSale,
		Status:    transaction.StatusCompleted,
		Subtotal:  money.MustParse("40.00"),
		Total:     money.MustParse("40.00"),
		Reference: "TXN-1",
		Items: []*transaction.TransactionItem{
			{ID: 100, ProductID: 10, Quantity: 2, UnitPrice: money.MustParse("15.00"), Subtotal: money.MustParse("30.00")},
			{ID: 101, ProductID: 11, Quantity: 1, UnitPrice: money.MustParse("10.00"), Subtotal: money.MustParse("10.00")},
		},
	}
}

func TestService_ProcessRefund_Partial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	uow := transaction.NewMockUnitOfWork(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().GetTransaction(gomock.Any(), int64(1)).Return(completedSale(), nil)
	repo.EXPECT().OperatorExists(gomock.Any(), int64(2)).Return(true, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(uow, nil)

	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(100)).Return(0, nil)
	uow.EXPECT().RefundedTotal(gomock.Any(), int64(1)).Return(money.Zero, nil)
	uow.EXPECT().InsertReturn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ret *transaction.Return) error {
			ret.ID = 50
			return nil
		})
	uow.EXPECT().InsertReturnItems(gomock.Any(), int64(50), gomock.Len(1)).Return(nil)
	uow.EXPECT().AdjustStock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p inventory.AdjustParams) error {
			assert.Equal(t, 1, p.Delta)
			assert.Equal(t, int64(10), p.ProductID)
			assert.Equal(t, "return", p.Reason)
			return nil
		})
	uow.EXPECT().SetStatus(gomock.Any(), int64(1), transaction.StatusPartiallyRefunded).Return(nil)
	uow.EXPECT().Commit().Return(nil)
	uow.EXPECT().Rollback().Return(nil)

	ret, err := svc.ProcessRefund(context.Background(), transaction.RefundParams{
		TransactionID: 1,
		OperatorID:    2,
		Method:        "cash",
		Reason:        "damaged",
		Lines:         []transaction.RefundLine{{TransactionItemID: 100, Quantity: 1}},
	})
	require.NoError(t, err)

	// One of two units of a 30.00 line refunds 15.00.
	assert.Equal(t, "15.00", ret.Amount.String())
	assert.Len(t, ret.Items, 1)
	assert.Equal(t, int64(50), ret.ID)
}

func TestService_ProcessRefund_FullMarksRefunded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	uow := transaction.NewMockUnitOfWork(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().GetTransaction(gomock.Any(), int64(1)).Return(completedSale(), nil)
	repo.EXPECT().OperatorExists(gomock.Any(), int64(2)).Return(true, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(uow, nil)

	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(100)).Return(0, nil)
	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(101)).Return(0, nil)
	uow.EXPECT().RefundedTotal(gomock.Any(), int64(1)).Return(money.Zero, nil)
	uow.EXPECT().InsertReturn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ret *transaction.Return) error {
			ret.ID = 51
			return nil
		})
	uow.EXPECT().InsertReturnItems(gomock.Any(), int64(51), gomock.Len(2)).Return(nil)
	uow.EXPECT().AdjustStock(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	uow.EXPECT().SetStatus(gomock.Any(), int64(1), transaction.StatusRefunded).Return(nil)
	uow.EXPECT().Commit().Return(nil)
	uow.EXPECT().Rollback().Return(nil)

	ret, err := svc.ProcessRefund(context.Background(), transaction.RefundParams{
		TransactionID: 1,
		OperatorID:    2,
		Method:        "cash",
		FullRefund:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "40.00", ret.Amount.String())
}

func TestService_ProcessRefund_FullAfterPartialReversesRemainder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	uow := transaction.NewMockUnitOfWork(ctrl)
	svc := transaction.NewService(repo)

	sale := completedSale()
	sale.Status = transaction.StatusPartiallyRefunded

	repo.EXPECT().GetTransaction(gomock.Any(), int64(1)).Return(sale, nil)
	repo.EXPECT().OperatorExists(gomock.Any(), int64(2)).Return(true, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(uow, nil)

	// One of the two units on line 100 was already reversed; a full refund
	// reverses the remaining unit plus all of line 101.
	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(100)).Return(1, nil)
	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(101)).Return(0, nil)
	uow.EXPECT().RefundedTotal(gomock.Any(), int64(1)).Return(money.MustParse("15.00"), nil)
	uow.EXPECT().InsertReturn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ret *transaction.Return) error {
			ret.ID = 53
			return nil
		})
	uow.EXPECT().InsertReturnItems(gomock.Any(), int64(53), gomock.Len(2)).Return(nil)
	uow.EXPECT().AdjustStock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p inventory.AdjustParams) error {
			assert.Equal(t, 1, p.Delta)
			return nil
		}).Times(2)
	uow.EXPECT().SetStatus(gomock.Any(), int64(1), transaction.StatusRefunded).Return(nil)
	uow.EXPECT().Commit().Return(nil)
	uow.EXPECT().Rollback().Return(nil)

	ret, err := svc.ProcessRefund(context.Background(), transaction.RefundParams{
		TransactionID: 1,
		OperatorID:    2,
		Method:        "cash",
		FullRefund:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "25.00", ret.Amount.String())
	assert.Len(t, ret.Items, 2)
}

func TestService_ProcessRefund_FullWithNothingRemainingRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	uow := transaction.NewMockUnitOfWork(ctrl)
	svc := transaction.NewService(repo)

	sale := completedSale()
	sale.Status = transaction.StatusPartiallyRefunded

	repo.EXPECT().GetTransaction(gomock.Any(), int64(1)).Return(sale, nil)
	repo.EXPECT().OperatorExists(gomock.Any(), int64(2)).Return(true, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(uow, nil)

	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(100)).Return(2, nil)
	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(101)).Return(1, nil)
	uow.EXPECT().Rollback().Return(nil)

	_, err := svc.ProcessRefund(context.Background(), transaction.RefundParams{
		TransactionID: 1,
		OperatorID:    2,
		FullRefund:    true,
	})

	var refundErr *transaction.InvalidRefundAmountError
	require.ErrorAs(t, err, &refundErr)
}

func TestService_ProcessRefund_SecondPartialCompletesRefund(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	uow := transaction.NewMockUnitOfWork(ctrl)
	svc := transaction.NewService(repo)

	sale := completedSale()
	sale.Status = transaction.StatusPartiallyRefunded

	repo.EXPECT().GetTransaction(gomock.Any(), int64(1)).Return(sale, nil)
	repo.EXPECT().OperatorExists(gomock.Any(), int64(2)).Return(true, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(uow, nil)

	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(100)).Return(1, nil)
	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(101)).Return(0, nil)
	uow.EXPECT().RefundedTotal(gomock.Any(), int64(1)).Return(money.MustParse("15.00"), nil)
	uow.EXPECT().InsertReturn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ret *transaction.Return) error {
			ret.ID = 52
			return nil
		})
	uow.EXPECT().InsertReturnItems(gomock.Any(), int64(52), gomock.Len(2)).Return(nil)
	uow.EXPECT().AdjustStock(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	uow.EXPECT().SetStatus(gomock.Any(), int64(1), transaction.StatusRefunded).Return(nil)
	uow.EXPECT().Commit().Return(nil)
	uow.EXPECT().Rollback().Return(nil)

	ret, err := svc.ProcessRefund(context.Background(), transaction.RefundParams{
		TransactionID: 1,
		OperatorID:    2,
		Method:        "cash",
		Lines: []transaction.RefundLine{
			{TransactionItemID: 100, Quantity: 1},
			{TransactionItemID: 101, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "25.00", ret.Amount.String())
}

func TestService_ProcessRefund_OverReversalRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	uow := transaction.NewMockUnitOfWork(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().GetTransaction(gomock.Any(), int64(1)).Return(completedSale(), nil)
	repo.EXPECT().OperatorExists(gomock.Any(), int64(2)).Return(true, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(uow, nil)

	// One unit already reversed; reversing two more exceeds the line.
	uow.EXPECT().ReversedQuantity(gomock.Any(), int64(100)).Return(1, nil)
	uow.EXPECT().Rollback().Return(nil)

	_, err := svc.ProcessRefund(context.Background(), transaction.RefundParams{
		TransactionID: 1,
		OperatorID:    2,
		Lines:         []transaction.RefundLine{{TransactionItemID: 100, Quantity: 2}},
	})

	var refundErr *transaction.InvalidRefundAmountError
	require.ErrorAs(t, err, &refundErr)
}

func TestService_ProcessRefund_StatusGuards(t *testing.T) {
	for _, status := range []transaction.Status{
		transaction.StatusPending,
		transaction.StatusCancelled,
		transaction.StatusRefunded,
		transaction.StatusFailed,
	} {
		t.Run(string(status), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			svc := transaction.NewService(repo)

			sale := completedSale()
			sale.Status = status

			repo.EXPECT().GetTransaction(gomock.Any(), int64(1)).Return(sale, nil)
			repo.EXPECT().OperatorExists(gomock.Any(), int64(2)).Return(true, nil)

			_, err := svc.ProcessRefund(context.Background(), transaction.RefundParams{
				TransactionID: 1,
				OperatorID:    2,
				FullRefund:    true,
			})

			var statusErr *transaction.InvalidStatusError
			require.ErrorAs(t, err, &statusErr)
		})
	}
}

func TestService_ProcessRefund_UnknownLineRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	uow := transaction.NewMockUnitOfWork(ctrl)
	svc := transaction.NewService(repo)

	repo.EXPECT().GetTransaction(gomock.Any(), int64(1)).Return(completedSale(), nil)
	repo.EXPECT().OperatorExists(gomock.Any(), int64(2)).Return(true, nil)
	repo.EXPECT().Begin(gomock.Any()).Return(uow, nil)
	uow.EXPECT().Rollback().Return(nil)

	_, err := svc.ProcessRefund(context.Background(), transaction.RefundParams{
		TransactionID: 1,
		OperatorID:    2,
		Lines:         []transaction.RefundLine{{TransactionItemID: 999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}
