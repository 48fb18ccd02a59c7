package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// ProviderService handles provider-related business operations
type ProviderService struct {
	providerRepo partner.ProviderRepository
}

// NewProviderService creates a new ProviderService
func NewProviderService(providerRepo partner.ProviderRepository) *ProviderService {
	return &ProviderService{
		providerRepo: providerRepo,
	}
}

// Create creates a new provider
func (s *ProviderService) Create(ctx context.Context, req CreateProviderRequest) (*ProviderResponse, error) {
	if _, err := s.providerRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Provider with this name already exists")
	} else if err != shared.ErrNotFound {
		return nil, err
	}

	provider, err := partner.NewProvider(req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.providerRepo.Save(ctx, provider); err != nil {
		return nil, err
	}

	response := ToProviderResponse(provider)
	return &response, nil
}

// GetByID retrieves a provider by ID
func (s *ProviderService) GetByID(ctx context.Context, id uuid.UUID) (*ProviderResponse, error) {
	provider, err := s.providerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProviderResponse(provider)
	return &response, nil
}

// GetByName retrieves a provider by its exact name
func (s *ProviderService) GetByName(ctx context.Context, name string) (*ProviderResponse, error) {
	provider, err := s.providerRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	response := ToProviderResponse(provider)
	return &response, nil
}

// List retrieves all providers
func (s *ProviderService) List(ctx context.Context) ([]ProviderResponse, error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	providers, err := s.providerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToProviderResponses(providers), nil
}

// Update renames a provider
func (s *ProviderService) Update(ctx context.Context, id uuid.UUID, req UpdateProviderRequest) (*ProviderResponse, error) {
	provider, err := s.providerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := provider.Rename(req.Name); err != nil {
		return nil, err
	}

	if err := s.providerRepo.Save(ctx, provider); err != nil {
		return nil, err
	}

	response := ToProviderResponse(provider)
	return &response, nil
}

// Delete deletes a provider. The repository refuses while sub-orders
// or transactions still reference it.
func (s *ProviderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.providerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.providerRepo.Delete(ctx, id)
}
