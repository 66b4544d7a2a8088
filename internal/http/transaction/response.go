package transaction

import (
	"time"

	"github.com/chainsynchq/chainsync/internal/loyalty"
	"github.com/chainsynchq/chainsync/internal/money"
	"github.com/chainsynchq/chainsync/internal/transaction"
)

type transactionResponse struct {
	ID            int64              `json:"id"`
	StoreID       int64              `json:"store_id"`
	CustomerID    *int64             `json:"customer_id,omitempty"`
	OperatorID    int64              `json:"operator_id"`
	Type          transaction.Type   `json:"type"`
	Status        transaction.Status `json:"status"`
	Subtotal      money.Amount       `json:"subtotal"`
	Tax           money.Amount       `json:"tax"`
	Discount      money.Amount       `json:"discount"`
	Total         money.Amount       `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes,omitempty"`
	Reference     string             `json:"reference"`
	Items         []itemResponse     `json:"items"`
	Payments      []paymentResponse  `json:"payments,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

type itemResponse struct {
	ID        int64        `json:"id"`
	ProductID int64        `json:"product_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice money.Amount `json:"unit_price"`
	Discount  money.Amount `json:"discount"`
	Subtotal  money.Amount `json:"subtotal"`
	Notes     string       `json:"notes,omitempty"`
}

type paymentResponse struct {
	ID                int64                     `json:"id"`
	Amount            money.Amount              `json:"amount"`
	Method            string                    `json:"method"`
	ProviderReference string                    `json:"provider_reference,omitempty"`
	Status            transaction.PaymentStatus `json:"status"`
}

type loyaltyResponse struct {
	Applied bool   `json:"applied"`
	Points  int64  `json:"points,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type createResponse struct {
	Transaction transactionResponse `json:"transaction"`
	Loyalty     loyaltyResponse     `json:"loyalty"`
}

type returnItemResponse struct {
	ID                int64        `json:"id"`
	TransactionItemID int64        `json:"transaction_item_id"`
	ProductID         int64        `json:"product_id"`
	Quantity          int          `json:"quantity"`
	Amount            money.Amount `json:"amount"`
}

type returnResponse struct {
	ID            int64                `json:"id"`
	TransactionID int64                `json:"transaction_id"`
	StoreID       int64                `json:"store_id"`
	OperatorID    int64                `json:"operator_id"`
	Amount        money.Amount         `json:"amount"`
	Method        string               `json:"method"`
	Reason        string               `json:"reason,omitempty"`
	Notes         string               `json:"notes,omitempty"`
	Status        transaction.Status   `json:"status"`
	Items         []returnItemResponse `json:"items"`
	CreatedAt     time.Time            `json:"created_at"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	items := make([]itemResponse, len(tx.Items))
	for i, item := range tx.Items {
		items[i] = itemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Subtotal:  item.Subtotal,
			Notes:     item.Notes,
		}
	}

	payments := make([]paymentResponse, len(tx.Payments))
	for i, p := range tx.Payments {
		payments[i] = paymentResponse{
			ID:                p.ID,
			Amount:            p.Amount,
			Method:            p.Method,
			ProviderReference: p.ProviderReference,
			Status:            p.Status,
		}
	}

	return transactionResponse{
		ID:            tx.ID,
		StoreID:       tx.StoreID,
		CustomerID:    tx.CustomerID,
		OperatorID:    tx.OperatorID,
		Type:          tx.Type,
		Status:        tx.Status,
		Subtotal:      tx.Subtotal,
		Tax:           tx.Tax,
		Discount:      tx.Discount,
		Total:         tx.Total,
		PaymentMethod: tx.PaymentMethod,
		Notes:         tx.Notes,
		Reference:     tx.Reference,
		Items:         items,
		Payments:      payments,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func toCreateResponse(result *transaction.CreateResult) createResponse {
	return createResponse{
		Transaction: toResponse(result.Transaction),
		Loyalty:     toLoyaltyResponse(result.Loyalty),
	}
}

func toLoyaltyResponse(outcome loyalty.Outcome) loyaltyResponse {
	resp := loyaltyResponse{
		Applied: outcome.Applied,
		Points:  outcome.Points,
	}

	if outcome.Cause != nil {
		resp.Reason = outcome.Cause.Error()
	}

	return resp
}

func toReturnResponse(ret *transaction.Return) returnResponse {
	items := make([]returnItemResponse, len(ret.Items))
	for i, item := range ret.Items {
		items[i] = returnItemResponse{
			ID:                item.ID,
			TransactionItemID: item.TransactionItemID,
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			Amount:            item.Amount,
		}
	}

	return returnResponse{
		ID:            ret.ID,
		TransactionID: ret.TransactionID,
		StoreID:       ret.StoreID,
		OperatorID:    ret.OperatorID,
		Amount:        ret.Amount,
		Method:        ret.Method,
		Reason:        ret.Reason,
		Notes:         ret.Notes,
		Status:        ret.Status,
		Items:         items,
		CreatedAt:     ret.CreatedAt,
	}
}
