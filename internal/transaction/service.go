package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chainsynchq/chainsync/internal/inventory"
	"github.com/chainsynchq/chainsync/internal/loyalty"
	"github.com/chainsynchq/chainsync/internal/money"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=transaction
type Repository interface {
	StoreExists(ctx context.Context, storeID int64) (bool, error)
	OperatorExists(ctx context.Context, operatorID int64) (bool, error)
	CustomerExists(ctx context.Context, customerID int64) (bool, error)
	MissingProducts(ctx context.Context, productIDs []int64) ([]int64, error)

	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	Analytics(ctx context.Context, storeID int64, start, end time.Time) (*Analytics, error)

	Begin(ctx context.Context) (UnitOfWork, error)
}

// UnitOfWork is a single atomic group of writes. Every method runs inside
// the same database transaction; Commit makes all of them visible at once.
type UnitOfWork interface {
	InsertTransaction(ctx context.Context, tx *Transaction) error
	InsertItems(ctx context.Context, transactionID int64, items []*TransactionItem) error
	InsertPayments(ctx context.Context, transactionID int64, payments []*TransactionPayment) error
	InsertReturn(ctx context.Context, ret *Return) error
	InsertReturnItems(ctx context.Context, returnID int64, items []*ReturnItem) error
	AdjustStock(ctx context.Context, params inventory.AdjustParams) error
	ReversedQuantity(ctx context.Context, transactionItemID int64) (int, error)
	RefundedTotal(ctx context.Context, transactionID int64) (money.Amount, error)
	SetStatus(ctx context.Context, transactionID int64, status Status) error
	Commit() error
	Rollback() error
}

// LoyaltyAccruer credits loyalty points after a sale commits. Accrual is
// best-effort: the outcome says whether points were applied.
type LoyaltyAccruer interface {
	Accrue(ctx context.Context, params loyalty.AccrueParams) loyalty.Outcome
}

// Publisher emits domain events after a unit of work commits.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload []byte) error
}

// Cache is a read-through cache for analytics rollups. Stale reads are an
// accepted tradeoff; writes that affect a store's rollup invalidate it.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type Service struct {
	repo    Repository
	loyalty LoyaltyAccruer
	events  Publisher
	cache   Cache

	timeout  time.Duration
	cacheTTL time.Duration
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLoyalty(l LoyaltyAccruer) Option { return func(s *Service) { s.loyalty = l } }

func WithPublisher(p Publisher) Option { return func(s *Service) { s.events = p } }

func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithTimeout bounds every unit of work with a deadline.
func WithTimeout(d time.Duration) Option { return func(s *Service) { s.timeout = d } }

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		timeout:  5 * time.Second,
		cacheTTL: 5 * time.Minute,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ItemParams is one requested transaction line.
type ItemParams struct {
	ProductID int64
	Quantity  int
	UnitPrice money.Amount
	Discount  money.Amount
	Notes     string
}

// PaymentParams is one requested payment leg.
type PaymentParams struct {
	Amount            money.Amount
	Method            string
	ProviderReference string
}

// CreateParams describes a new transaction. Subtotal and Total are computed
// from the lines; callers supply tax and an order-level discount.
type CreateParams struct {
	StoreID       int64
	OperatorID    int64
	CustomerID    *int64
	Type          Type
	Status        Status
	Items         []ItemParams
	Payments      []PaymentParams
	Tax           money.Amount
	Discount      money.Amount
	PaymentMethod string
	Notes         string
	Reference     string
	EarnPoints    bool
}

// CreateResult is the persisted transaction plus the best-effort loyalty
// outcome, so callers can tell a completed sale with skipped accrual apart
// from one where points landed.
type CreateResult struct {
	Transaction *Transaction
	Loyalty     loyalty.Outcome
}

// Create validates and persists a transaction with its lines and payment
// legs in one atomic unit of work. Sale lines decrement stock inside the
// same unit; any failure rolls everything back.
func (s *Service) Create(ctx context.Context, params CreateParams) (*CreateResult, error) {
	if err := s.validateCreate(ctx, &params); err != nil {
		return nil, err
	}

	tx := buildTransaction(params)

	if len(params.Payments) > 0 {
		paid := money.Zero
		for _, p := range params.Payments {
			paid = paid.Add(p.Amount)
		}

		if !paid.Equals(tx.Total) {
			return nil, &InvalidPaymentAmountError{Total: tx.Total, Paid: paid}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// One regenerate-and-retry covers the rare reference collision.
	persisted, err := s.persist(ctx, tx, params)
	if err != nil && errors.Is(err, ErrDuplicateReference) && params.Reference == "" {
		tx.Reference = GenerateReference()
		persisted, err = s.persist(ctx, tx, params)
	}

	if err != nil {
		return nil, err
	}

	result := &CreateResult{Transaction: persisted}

	if params.EarnPoints && params.CustomerID != nil && s.loyalty != nil {
		result.Loyalty = s.loyalty.Accrue(ctx, loyalty.AccrueParams{
			CustomerID: *params.CustomerID,
			Points:     persisted.Total.WholeUnits(),
			Reason:     "sale",
			Reference:  persisted.Reference,
			OperatorID: params.OperatorID,
		})
	}

	s.invalidateAnalytics(ctx, persisted.StoreID)
	s.publish(ctx, "transaction.completed", persisted.Reference, persisted)

	return result, nil
}

func (s *Service) validateCreate(ctx context.Context, params *CreateParams) error {
	if !params.Type.Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown type %q", params.Type)}
	}

	if params.Status == "" {
		params.Status = StatusCompleted
	}

	if !params.Status.Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", params.Status)}
	}

	if len(params.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "at least one line is required"}
	}

	for i, item := range params.Items {
		if item.Quantity <= 0 {
			return &ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must be positive"}
		}

		if item.UnitPrice.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("items[%d].unit_price", i), Reason: "must not be negative"}
		}
	}

	exists, err := s.repo.StoreExists(ctx, params.StoreID)
	if err != nil {
		return fmt.Errorf("checking store: %w", err)
	}

	if !exists {
		return &NotFoundError{Entity: "store", ID: params.StoreID}
	}

	exists, err = s.repo.OperatorExists(ctx, params.OperatorID)
	if err != nil {
		return fmt.Errorf("checking operator: %w", err)
	}

	if !exists {
		return &NotFoundError{Entity: "operator", ID: params.OperatorID}
	}

	if params.CustomerID != nil {
		exists, err = s.repo.CustomerExists(ctx, *params.CustomerID)
		if err != nil {
			return fmt.Errorf("checking customer: %w", err)
		}

		if !exists {
			return &NotFoundError{Entity: "customer", ID: *params.CustomerID}
		}
	}

	productIDs := make([]int64, len(params.Items))
	for i, item := range params.Items {
		productIDs[i] = item.ProductID
	}

	missing, err := s.repo.MissingProducts(ctx, productIDs)
	if err != nil {
		return fmt.Errorf("checking products: %w", err)
	}

	if len(missing) > 0 {
		return &ProductsNotFoundError{IDs: missing}
	}

	return nil
}

func buildTransaction(params CreateParams) *Transaction {
	items := make([]*TransactionItem, len(params.Items))
	subtotal := money.Zero

	for i, p := range params.Items {
		lineSubtotal := p.UnitPrice.MulInt(int64(p.Quantity)).Sub(p.Discount)
		items[i] = &TransactionItem{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Discount:  p.Discount,
			Subtotal:  lineSubtotal,
			Notes:     p.Notes,
		}
		subtotal = subtotal.Add(lineSubtotal)
	}

	payments := make([]*TransactionPayment, len(params.Payments))
	for i, p := range params.Payments {
		payments[i] = &TransactionPayment{
			Amount:            p.Amount,
			Method:            p.Method,
			ProviderReference: p.ProviderReference,
			Status:            PaymentCompleted,
		}
	}

	reference := params.Reference
	if reference == "" {
		reference = GenerateReference()
	}

	return &Transaction{
		StoreID:       params.StoreID,
		CustomerID:    params.CustomerID,
		OperatorID:    params.OperatorID,
		Type:          params.Type,
		Status:        params.Status,
		Subtotal:      subtotal,
		Tax:           params.Tax,
		Discount:      params.Discount,
		Total:         subtotal.Add(params.Tax).Sub(params.Discount),
		PaymentMethod: params.PaymentMethod,
		Notes:         params.Notes,
		Reference:     reference,
		Items:         items,
		Payments:      payments,
	}
}

func (s *Service) persist(ctx context.Context, tx *Transaction, params CreateParams) (*Transaction, error) {
	uow, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning unit of work: %w", err)
	}
	defer uow.Rollback()

	if err := uow.InsertTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if err := uow.InsertItems(ctx, tx.ID, tx.Items); err != nil {
		return nil, err
	}

	if tx.Type == TypeSale {
		for _, item := range tx.Items {
			err := uow.AdjustStock(ctx, inventory.AdjustParams{
				StoreID:         tx.StoreID,
				ProductID:       item.ProductID,
				Delta:           -item.Quantity,
				Reason:          "sale",
				TransactionType: string(tx.Type),
				OperatorID:      tx.OperatorID,
				Reference:       tx.Reference,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	if len(tx.Payments) > 0 {
		if err := uow.InsertPayments(ctx, tx.ID, tx.Payments); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("committing unit of work: %w", err)
	}

	return tx, nil
}

// UpdateParams carries the fields updateable after creation. Inventory and
// loyalty only ever change through Create and ProcessRefund.
type UpdateParams struct {
	OperatorID int64
	Status     *Status
	Notes      *string
	CustomerID *int64
}

// Update validates a requested status change against the state machine and
// persists the allowed field changes.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
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

	if params.CustomerID != nil {
		exists, err = s.repo.CustomerExists(ctx, *params.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("checking customer: %w", err)
		}

		if !exists {
			return nil, &NotFoundError{Entity: "customer", ID: *params.CustomerID}
		}

		tx.CustomerID = params.CustomerID
	}

	if params.Status != nil && *params.Status != tx.Status {
		if !tx.Status.CanTransitionTo(*params.Status) {
			return nil, &InvalidStatusError{From: tx.Status, To: *params.Status}
		}

		tx.Status = *params.Status
	}

	if params.Notes != nil {
		tx.Notes = *params.Notes
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidateAnalytics(ctx, tx.StoreID)

	return tx, nil
}

// Get returns a transaction with its items and payment legs.
func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

// List returns transactions matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// ListFilter narrows List results. Nil fields are ignored.
type ListFilter struct {
	StoreID   *int64
	Status    *Status
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

func (s *Service) invalidateAnalytics(ctx context.Context, storeID int64) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, analyticsKey(storeID)); err != nil {
		slog.Warn("analytics cache invalidation failed", "store_id", storeID, "error", err)
	}
}

func (s *Service) publish(ctx context.Context, eventType, key string, payload any) {
	if s.events == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("event payload marshal failed", "event", eventType, "error", err)
		return
	}

	if err := s.events.Publish(ctx, eventType, key, data); err != nil {
		slog.Warn("event publish failed", "event", eventType, "key", key, "error", err)
	}
}
