package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// TransactionRepository defines the interface for transaction persistence
type TransactionRepository interface {
	// FindByID finds a transaction by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindAll finds transactions matching the filter, newest date first
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)

	// FindByOrder finds an order's transactions ordered by date ascending
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Transaction, error)

	// FindByClient finds a client's transactions, newest date first
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Transaction, error)

	// Save creates or updates a transaction
	Save(ctx context.Context, t *Transaction) error

	// Delete deletes a transaction
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts transactions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumByOrder returns the sum of an order's transaction amounts
	SumByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)

	// SumByOrders returns per-order transaction sums for a batch of orders
	SumByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	// SumByClient returns the sum of a client's transaction amounts
	SumByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)

	// CashboxBalance returns the sum over all cashbox transactions
	CashboxBalance(ctx context.Context) (decimal.Decimal, error)
}
