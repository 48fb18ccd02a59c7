package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zaoknom/docbox-backend/internal/domain/order"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// GormProviderOrderRepository implements order.ProviderOrderRepository using GORM
type GormProviderOrderRepository struct {
	db *gorm.DB
}

// NewGormProviderOrderRepository creates a new GormProviderOrderRepository
func NewGormProviderOrderRepository(db *gorm.DB) *GormProviderOrderRepository {
	return &GormProviderOrderRepository{db: db}
}

// FindByID finds a sub-order by ID
func (r *GormProviderOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.ProviderOrder, error) {
	var po order.ProviderOrder
	if err := r.db.WithContext(ctx).First(&po, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindByCodeSince finds the most recent sub-order with the given
// factory code created on or after the cutoff. Factory numbers recycle
// over the years, which is why the cutoff exists.
func (r *GormProviderOrderRepository) FindByCodeSince(ctx context.Context, code string, since time.Time) (*order.ProviderOrder, error) {
	var po order.ProviderOrder
	if err := r.db.WithContext(ctx).
		Where("code = ? AND created_at >= ?", code, since).
		Order("created_at DESC").
		First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindByOrder finds all sub-orders of an order, newest first
func (r *GormProviderOrderRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]order.ProviderOrder, error) {
	var pos []order.ProviderOrder
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

// FindRecent finds the most recently created sub-orders up to limit
func (r *GormProviderOrderRepository) FindRecent(ctx context.Context, limit int) ([]order.ProviderOrder, error) {
	var pos []order.ProviderOrder
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

// Save creates or updates a sub-order
func (r *GormProviderOrderRepository) Save(ctx context.Context, po *order.ProviderOrder) error {
	return r.db.WithContext(ctx).Omit("Provider").Save(po).Error
}

// Delete deletes a sub-order
func (r *GormProviderOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&order.ProviderOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProviderOrderRepository implements order.ProviderOrderRepository
var _ order.ProviderOrderRepository = (*GormProviderOrderRepository)(nil)
