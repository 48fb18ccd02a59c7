package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zaoknom/docbox-backend/internal/domain/partner"
	"github.com/zaoknom/docbox-backend/internal/domain/shared"
)

// GormMounterRepository implements MounterRepository using GORM
type GormMounterRepository struct {
	db *gorm.DB
}

// NewGormMounterRepository creates a new GormMounterRepository
func NewGormMounterRepository(db *gorm.DB) *GormMounterRepository {
	return &GormMounterRepository{db: db}
}

// FindByID finds a mounter by ID with its client preloaded
func (r *GormMounterRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Mounter, error) {
	var mounter partner.Mounter
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&mounter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mounter, nil
}

// FindAll finds all mounters with their clients preloaded
func (r *GormMounterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Mounter, error) {
	var mounters []partner.Mounter
	query := applyPagination(r.db.WithContext(ctx).Model(&partner.Mounter{}).Preload("Client"), filter)

	if err := query.Order("created_at ASC").Find(&mounters).Error; err != nil {
		return nil, err
	}
	return mounters, nil
}

// Save creates or updates a mounter
func (r *GormMounterRepository) Save(ctx context.Context, mounter *partner.Mounter) error {
	return r.db.WithContext(ctx).Omit("Client").Save(mounter).Error
}

// Delete deletes a mounter. Orders referencing it keep their rows; the
// reference is cleared by the schema's ON DELETE SET NULL.
func (r *GormMounterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Mounter{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts mounters
func (r *GormMounterRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&partner.Mounter{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormMounterRepository implements MounterRepository
var _ partner.MounterRepository = (*GormMounterRepository)(nil)
