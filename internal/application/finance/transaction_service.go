package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zaoknom/docbox-backend/internal/domain/finance"
	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// BalanceCache caches the cashbox balance between writes. A miss is
// not an error; the balance is recomputed and stored back.
type BalanceCache interface {
	Get(ctx context.Context) (decimal.Decimal, bool, error)
	Set(ctx context.Context, balance decimal.Decimal) error
	Invalidate(ctx context.Context) error
}

// TransactionService handles money movement operations and balance
// roll-ups
type TransactionService struct {
	txRepo    finance.TransactionRepository
	orderRepo order.Repository
	cache     BalanceCache
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(txRepo finance.TransactionRepository, orderRepo order.Repository, cache BalanceCache) *TransactionService {
	return &TransactionService{
		txRepo:    txRepo,
		orderRepo: orderRepo,
		cache:     cache,
	}
}

// Create records a new transaction
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	tx, err := finance.NewTransaction(req.Amount, req.Comment)
	if err != nil {
		return nil, err
	}

	if req.Date != nil && *req.Date != "" {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		tx.OnDate(parsed)
	}
	if req.ClientID != nil {
		tx.ForClient(*req.ClientID)
	}
	if req.ProviderID != nil {
		tx.ForProvider(*req.ProviderID)
	}
	if req.OrderID != nil {
		tx.ForOrder(*req.OrderID)
	}
	if req.Cashbox != nil && !*req.Cashbox {
		tx.OutsideCashbox()
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	s.invalidateBalance(ctx)

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// GetByID retrieves a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// List retrieves transactions with date and cashbox filters
func (s *TransactionService) List(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "date"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	if filter.DateFrom != "" {
		parsed, err := parseDate(filter.DateFrom)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["date_from"] = parsed
	}
	if filter.DateTo != "" {
		parsed, err := parseDate(filter.DateTo)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["date_to"] = parsed
	}
	if filter.Cashbox != nil {
		domainFilter.Filters["cashbox"] = *filter.Cashbox
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.OrderID != nil {
		domainFilter.Filters["order_id"] = *filter.OrderID
	}

	transactions, err := s.txRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTransactionResponses(transactions), total, nil
}

// Update applies a partial update to a transaction
func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.Date != nil && *req.Date != "" {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		tx.Date = parsed
	}
	if req.Comment != nil {
		tx.Comment = *req.Comment
	}
	if req.Cashbox != nil {
		tx.Cashbox = *req.Cashbox
	}
	tx.Touch()

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	s.invalidateBalance(ctx)

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// Delete deletes a transaction. Transactions are leaves, nothing
// depends on them.
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.txRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.txRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateBalance(ctx)
	return nil
}

// Balance returns the cashbox balance, served from cache when warm
func (s *TransactionService) Balance(ctx context.Context) (*BalanceResponse, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx); err == nil && ok {
			return &BalanceResponse{Balance: cached}, nil
		}
	}

	balance, err := s.txRepo.CashboxBalance(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		// best effort; a failed write just means a recompute next time
		_ = s.cache.Set(ctx, balance)
	}
	return &BalanceResponse{Balance: balance}, nil
}

// ClientBalance returns a client's orders/transactions roll-up
func (s *TransactionService) ClientBalance(ctx context.Context, clientID uuid.UUID) (*ClientBalanceResponse, error) {
	transactionsSum, err := s.txRepo.SumByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	ordersSum, err := s.orderRepo.SumTotalsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindByClient(ctx, clientID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	resp := &ClientBalanceResponse{
		ClientID:            clientID,
		TransactionsSum:     transactionsSum,
		OrdersSum:           ordersSum,
		Remaining:           ordersSum.Sub(transactionsSum),
		ProductsPrice:       decimal.Zero,
		ProviderOrdersPrice: decimal.Zero,
		Expenses:            decimal.Zero,
		Profit:              decimal.Zero,
		ExtraCharge:         decimal.Zero,
	}
	for i := range orders {
		o := &orders[i]
		if o.Price == nil {
			continue
		}
		providerOrdersSum := o.ProviderOrdersSum()
		resp.ProductsPrice = resp.ProductsPrice.Add(o.Price.Products())
		resp.ProviderOrdersPrice = resp.ProviderOrdersPrice.Add(providerOrdersSum)
		resp.Expenses = resp.Expenses.Add(o.Price.Expenses(providerOrdersSum))
		resp.Profit = resp.Profit.Add(o.Price.Profit(providerOrdersSum))
	}
	if !resp.Profit.IsZero() && !resp.Expenses.IsZero() {
		resp.ExtraCharge = resp.Profit.Div(resp.Expenses).Mul(decimal.NewFromInt(100)).Round(0)
	}
	return resp, nil
}

func (s *TransactionService) invalidateBalance(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

func parseDate(value string) (parsed time.Time, err error) {
	parsed, err = time.Parse(DateLayout, value)
	if err != nil {
		return parsed, shared.NewDomainError("INVALID_DATE", "Date expected to be in iso format like 'YYYY-MM-DD'")
	}
	return parsed, nil
}
