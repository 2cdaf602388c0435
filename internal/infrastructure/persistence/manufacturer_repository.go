package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormManufacturerRepository implements catalog.ManufacturerRepository using GORM
type GormManufacturerRepository struct {
	db *gorm.DB
}

// NewGormManufacturerRepository creates a new GormManufacturerRepository
func NewGormManufacturerRepository(db *gorm.DB) *GormManufacturerRepository {
	return &GormManufacturerRepository{db: db}
}

// FindByID finds a manufacturer by its ID
func (r *GormManufacturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	var m catalog.Manufacturer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByName finds a manufacturer by its exact name
func (r *GormManufacturerRepository) FindByName(ctx context.Context, name string) (*catalog.Manufacturer, error) {
	var m catalog.Manufacturer
	if err := r.db.WithContext(ctx).First(&m, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindAll finds all manufacturers matching the filter
func (r *GormManufacturerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Manufacturer, error) {
	var manufacturers []catalog.Manufacturer
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Manufacturer{}), filter)

	if err := query.Find(&manufacturers).Error; err != nil {
		return nil, err
	}
	return manufacturers, nil
}

// Save persists a manufacturer
func (r *GormManufacturerRepository) Save(ctx context.Context, m *catalog.Manufacturer) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete permanently removes a manufacturer
func (r *GormManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Manufacturer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts manufacturers matching the filter
func (r *GormManufacturerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Manufacturer{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName reports whether a manufacturer with the name exists
func (r *GormManufacturerRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Manufacturer{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormManufacturerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ManufacturerSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormManufacturerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(short_name) LIKE ? OR LOWER(country) LIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "country":
			query = query.Where("country = ?", value)
		}
	}

	return query
}
