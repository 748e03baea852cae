package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/media"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormMediaRepository implements MediaRepository using GORM
type GormMediaRepository struct {
	db *gorm.DB
}

// NewGormMediaRepository creates a new GormMediaRepository
func NewGormMediaRepository(db *gorm.DB) *GormMediaRepository {
	return &GormMediaRepository{db: db}
}

// FindByID finds a media record by its ID
func (r *GormMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*media.Media, error) {
	var m media.Media
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindAll finds media records matching the filter, newest first
func (r *GormMediaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]media.Media, error) {
	var records []media.Media
	query := r.db.WithContext(ctx).Model(&media.Media{})

	if filter.Search != "" {
		query = query.Where("file_name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("created_at DESC")

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts media records matching the filter
func (r *GormMediaRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&media.Media{})
	if filter.Search != "" {
		query = query.Where("file_name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a media record
func (r *GormMediaRepository) Save(ctx context.Context, m *media.Media) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete deletes a media record
func (r *GormMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&media.Media{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMediaRepository implements MediaRepository
var _ media.MediaRepository = (*GormMediaRepository)(nil)
