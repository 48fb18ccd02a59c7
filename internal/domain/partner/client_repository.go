package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByNameAndPhone finds a client by its natural key
	FindByNameAndPhone(ctx context.Context, name, phone string) (*Client, error)

	// FindAll finds all clients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Delete deletes a client. Returns shared.ErrProtected if the
	// client still has orders or transactions.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts clients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByNameAndPhone checks whether the natural key is taken
	ExistsByNameAndPhone(ctx context.Context, name, phone string) (bool, error)
}
