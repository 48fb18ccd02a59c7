package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// Repository defines the interface for order persistence
type Repository interface {
	// FindByID finds an order by ID with its price preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDFull finds an order with price, client, address, mounter,
	// provider and sub-orders preloaded
	FindByIDFull(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll finds orders matching the filter, with price, client and
	// sub-orders preloaded
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindAllFull finds orders matching the filter with every relation
	// preloaded, the way FindByIDFull loads a single order
	FindAllFull(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByClient finds all orders of a client, newest first
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Order, error)

	// SumTotalsByClient returns the sum of price totals over a client's orders
	SumTotalsByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)

	// SearchByProviderCode finds orders whose sub-order codes or legacy
	// provider code contain the substring, with client, price and
	// sub-orders preloaded
	SearchByProviderCode(ctx context.Context, code string) ([]Order, error)

	// Save creates or updates an order together with its price
	Save(ctx context.Context, o *Order) error

	// Delete deletes an order and its price. Returns shared.ErrProtected
	// if transactions still reference the order.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProviderOrderRepository defines the interface for sub-order persistence
type ProviderOrderRepository interface {
	// FindByID finds a sub-order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProviderOrder, error)

	// FindByCodeSince finds the most recent sub-order with the given
	// factory code created on or after the cutoff
	FindByCodeSince(ctx context.Context, code string, since time.Time) (*ProviderOrder, error)

	// FindByOrder finds all sub-orders of an order, newest first
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ProviderOrder, error)

	// FindRecent finds the most recently created sub-orders up to limit
	FindRecent(ctx context.Context, limit int) ([]ProviderOrder, error)

	// Save creates or updates a sub-order
	Save(ctx context.Context, po *ProviderOrder) error

	// Delete deletes a sub-order
	Delete(ctx context.Context, id uuid.UUID) error
}
