package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// Provider is a factory the shop orders products from
type Provider struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(64);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Provider) TableName() string {
	return "providers"
}

// NewProvider creates a new provider
func NewProvider(name string) (*Provider, error) {
	if err := validateProviderName(name); err != nil {
		return nil, err
	}

	return &Provider{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Rename updates the provider's name
func (p *Provider) Rename(name string) error {
	if err := validateProviderName(name); err != nil {
		return err
	}

	p.Name = name
	p.Touch()

	return nil
}

func validateProviderName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Provider name cannot be empty")
	}
	if len(name) > 64 {
		return shared.NewDomainError("INVALID_NAME", "Provider name cannot exceed 64 characters")
	}
	return nil
}

// ProviderRepository defines the interface for provider persistence
type ProviderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Provider, error)

	// FindByName finds a provider by its exact name. The supplier feed
	// resolves its configured provider this way.
	FindByName(ctx context.Context, name string) (*Provider, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Provider, error)
	Save(ctx context.Context, provider *Provider) error

	// Delete deletes a provider. Returns shared.ErrProtected if the
	// provider still has sub-orders or transactions.
	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
