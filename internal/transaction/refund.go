package transaction

import (
	"context"
	"fmt"

	"github.com/chainsynchq/chainsync/internal/inventory"
	"github.com/chainsynchq/chainsync/internal/money"
)

// RefundLine requests the reversal of part of one original line.
type RefundLine struct {
	TransactionItemID int64
	Quantity          int
}

// RefundParams describes a refund against a prior transaction. FullRefund
// reverses every line's remaining quantity; otherwise Lines must name the
// lines to reverse.
type RefundParams struct {
	TransactionID int64
	OperatorID    int64
	Method        string
	Reason        string
	Notes         string
	FullRefund    bool
	Lines         []RefundLine
}

// ProcessRefund reverses part or all of a completed transaction: a Return
// row, its ReturnItems, positive stock deltas and the original
// transaction's status rollup are written in one atomic unit of work.
// Reversing more than a line's remaining quantity is rejected.
func (s *Service) ProcessRefund(ctx context.Context, params RefundParams) (*Return, error) {
	original, err := s.repo.GetTransaction(ctx, params.TransactionID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.OperatorExists(ctx, params.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("checking operator: %w", err)
	}

	if !exists {
		return nil, &NotFoundError{Entity: "operator", ID: params.OperatorID}
	}

	if original.Status != StatusCompleted && original.Status != StatusPartiallyRefunded {
		return nil, &InvalidStatusError{From: original.Status, To: StatusRefunded}
	}

	if !params.FullRefund && len(params.Lines) == 0 {
		return nil, &InvalidRefundAmountError{Reason: "no lines requested"}
	}

	itemsByID := make(map[int64]*TransactionItem, len(original.Items))
	for _, item := range original.Items {
		itemsByID[item.ID] = item
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	uow, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning unit of work: %w", err)
	}
	defer uow.Rollback()

	reversedByItem := make(map[int64]int)

	lines := params.Lines
	if params.FullRefund {
		// A full refund reverses whatever remains on each line, so it
		// also completes a transaction that was partially refunded before.
		lines = make([]RefundLine, 0, len(original.Items))

		for _, item := range original.Items {
			reversed, err := uow.ReversedQuantity(ctx, item.ID)
			if err != nil {
				return nil, err
			}

			reversedByItem[item.ID] = reversed

			if remaining := item.Quantity - reversed; remaining > 0 {
				lines = append(lines, RefundLine{TransactionItemID: item.ID, Quantity: remaining})
			}
		}

		if len(lines) == 0 {
			return nil, &InvalidRefundAmountError{Reason: "no reversible quantity remains"}
		}
	}

	ret := &Return{
		TransactionID: original.ID,
		StoreID:       original.StoreID,
		OperatorID:    params.OperatorID,
		Method:        params.Method,
		Reason:        params.Reason,
		Notes:         params.Notes,
		Status:        StatusCompleted,
	}

	returnItems := make([]*ReturnItem, 0, len(lines))
	amount := money.Zero

	for _, line := range lines {
		item, ok := itemsByID[line.TransactionItemID]
		if !ok {
			return nil, &NotFoundError{Entity: "transaction item", ID: line.TransactionItemID}
		}

		if line.Quantity <= 0 {
			return nil, &InvalidRefundAmountError{Reason: "reversed quantity must be positive"}
		}

		reversed, ok := reversedByItem[item.ID]
		if !ok {
			if reversed, err = uow.ReversedQuantity(ctx, item.ID); err != nil {
				return nil, err
			}
		}

		if line.Quantity > item.Quantity-reversed {
			return nil, &InvalidRefundAmountError{
				Reason: fmt.Sprintf("line %d has %d reversible units, requested %d",
					item.ID, item.Quantity-reversed, line.Quantity),
			}
		}

		// Refund the line's share of what was actually charged, so
		// per-line discounts are reversed proportionally.
		lineAmount := item.Subtotal.MulInt(int64(line.Quantity)).DivInt(int64(item.Quantity))
		amount = amount.Add(lineAmount)

		returnItems = append(returnItems, &ReturnItem{
			TransactionItemID: item.ID,
			ProductID:         item.ProductID,
			Quantity:          line.Quantity,
			Amount:            lineAmount,
		})
	}

	if amount.IsNegative() {
		return nil, &InvalidRefundAmountError{Reason: "refund amount must not be negative"}
	}

	ret.Amount = amount
	ret.Items = returnItems

	refundedBefore, err := uow.RefundedTotal(ctx, original.ID)
	if err != nil {
		return nil, err
	}

	if err := uow.InsertReturn(ctx, ret); err != nil {
		return nil, err
	}

	if err := uow.InsertReturnItems(ctx, ret.ID, returnItems); err != nil {
		return nil, err
	}

	for _, item := range returnItems {
		err := uow.AdjustStock(ctx, inventory.AdjustParams{
			StoreID:         original.StoreID,
			ProductID:       item.ProductID,
			Delta:           item.Quantity,
			Reason:          "return",
			TransactionType: string(TypeReturn),
			OperatorID:      params.OperatorID,
			Reference:       original.Reference,
		})
		if err != nil {
			return nil, err
		}
	}

	next := StatusPartiallyRefunded
	if refundedBefore.Add(amount).Cmp(original.Total) >= 0 {
		next = StatusRefunded
	}

	if original.Status.CanTransitionTo(next) {
		if err := uow.SetStatus(ctx, original.ID, next); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("committing unit of work: %w", err)
	}

	s.invalidateAnalytics(ctx, original.StoreID)
	s.publish(ctx, "transaction.refunded", original.Reference, ret)

	return ret, nil
}
