package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// GormProviderRepository implements ProviderRepository using GORM
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a new GormProviderRepository
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// FindByID finds a provider by its ID
func (r *GormProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Provider, error) {
	var provider partner.Provider
	if err := r.db.WithContext(ctx).First(&provider, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &provider, nil
}

// FindByName finds a provider by its exact name
func (r *GormProviderRepository) FindByName(ctx context.Context, name string) (*partner.Provider, error) {
	var provider partner.Provider
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&provider).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &provider, nil
}

// FindAll finds all providers
func (r *GormProviderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Provider, error) {
	var providers []partner.Provider
	query := applyPagination(r.db.WithContext(ctx).Model(&partner.Provider{}), filter)

	if err := query.Order("name ASC").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// Save creates or updates a provider
func (r *GormProviderRepository) Save(ctx context.Context, provider *partner.Provider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

// Delete deletes a provider. A provider with sub-orders or
// transactions on the books stays.
func (r *GormProviderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var refs int64
	if err := r.db.WithContext(ctx).Model(&order.ProviderOrder{}).
		Where("provider_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrProtected
	}
	if err := r.db.WithContext(ctx).Table("transactions").
		Where("provider_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrProtected
	}

	result := r.db.WithContext(ctx).Delete(&partner.Provider{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts providers
func (r *GormProviderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&partner.Provider{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormProviderRepository implements ProviderRepository
var _ partner.ProviderRepository = (*GormProviderRepository)(nil)
