package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/settings"
	"github.com/meditrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSettingRepository implements settings.Repository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindByID finds a setting override by its ID
func (r *GormSettingRepository) FindByID(ctx context.Context, id uuid.UUID) (*settings.Setting, error) {
	var setting settings.Setting
	if err := r.db.WithContext(ctx).First(&setting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// FindByKey returns the override for a key, or shared.ErrNotFound
func (r *GormSettingRepository) FindByKey(ctx context.Context, key string) (*settings.Setting, error) {
	var setting settings.Setting
	if err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// FindByCategory returns all overrides in a category
func (r *GormSettingRepository) FindByCategory(ctx context.Context, category string) ([]settings.Setting, error) {
	var overrides []settings.Setting
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("key ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

// FindAll returns all setting overrides
func (r *GormSettingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]settings.Setting, error) {
	var overrides []settings.Setting
	query := r.db.WithContext(ctx).Model(&settings.Setting{}).Order("key ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

// Save persists a setting override
func (r *GormSettingRepository) Save(ctx context.Context, setting *settings.Setting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

// Delete removes an override by its ID
func (r *GormSettingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&settings.Setting{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByKey removes the override for a key, restoring the default.
// Deleting an override that does not exist is not an error.
func (r *GormSettingRepository) DeleteByKey(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&settings.Setting{}, "key = ?", key).Error
}

// DeleteByCategory removes all overrides in a category
func (r *GormSettingRepository) DeleteByCategory(ctx context.Context, category string) error {
	return r.db.WithContext(ctx).Delete(&settings.Setting{}, "category = ?", category).Error
}

// Count counts all setting overrides
func (r *GormSettingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&settings.Setting{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
